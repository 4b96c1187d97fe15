package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestDescribe_PNG(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := encodePNG(t, 40, 20)
	require.NoError(t, afero.WriteFile(fs, "/src/a.png", data, 0o644))

	info, err := Describe(fs, "/src/a.png")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), info.Size)
	require.Equal(t, "image/png", info.MIME)
	require.Equal(t, 40, info.Width)
	require.Equal(t, 20, info.Height)
	require.Contains(t, info.String(), "40x20")
}

func TestDescribe_NotAnImage(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/fake.png", []byte("hello"), 0o644))

	info, err := Describe(fs, "/src/fake.png")
	require.NoError(t, err)
	require.Equal(t, "application/octet-stream", info.MIME)
	require.Zero(t, info.Width)
	require.Zero(t, info.Height)
}

func TestDescribe_Missing(t *testing.T) {
	_, err := Describe(afero.NewMemMapFs(), "/src/none.png")
	require.Error(t, err)
}

func TestRender_FitsArea(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/a.png", encodePNG(t, 100, 50), 0o644))

	out, err := Render(fs, "/src/a.png", 20, 10)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.NotEmpty(t, lines)
	require.LessOrEqual(t, len(lines), 10)
	for _, line := range lines {
		plain := ansi.Strip(line)
		require.LessOrEqual(t, len([]rune(plain)), 20)
		require.Equal(t, strings.Repeat("▀", len([]rune(plain))), plain)
	}
}

func TestRender_InvalidInput(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/fake.png", []byte("not a png"), 0o644))

	_, err := Render(fs, "/src/fake.png", 20, 10)
	require.Error(t, err)

	_, err = Render(fs, "/src/fake.png", 0, 10)
	require.Error(t, err)
}

func TestHumanSize(t *testing.T) {
	require.Equal(t, "512 B", humanSize(512))
	require.Equal(t, "1.5 KiB", humanSize(1536))
	require.Equal(t, "2.0 MiB", humanSize(2*1024*1024))
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 255 / w), uint8(y * 255 / h), 128, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
