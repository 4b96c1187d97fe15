// Package preview 为 TUI 提供当前图片的元信息与字符画预览。
//
// 预览失败不影响浏览状态：调用方只需展示占位内容。
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // 注册 GIF 解码器
	_ "image/jpeg" // 注册 JPEG 解码器（扩展名是 .png 不代表内容一定是 PNG）
	_ "image/png"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/h2non/filetype"
	"github.com/nfnt/resize"
	"github.com/spf13/afero"
)

// headerSize 足够 filetype 判定所有常见图片格式。
const headerSize = 262

// Info 是图片的基础信息。
type Info struct {
	Size   int64
	MIME   string
	Width  int
	Height int
}

func (i Info) String() string {
	if i.Width > 0 && i.Height > 0 {
		return fmt.Sprintf("%dx%d · %s · %s", i.Width, i.Height, i.MIME, humanSize(i.Size))
	}
	return fmt.Sprintf("%s · %s", i.MIME, humanSize(i.Size))
}

// Describe 读取文件大小、MIME 与像素尺寸。
//
// 无法识别尺寸（非图片或损坏）时 Width/Height 为 0，不视为错误。
func Describe(fs afero.Fs, path string) (Info, error) {
	f, err := fs.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return Info{}, err
	}
	if st.IsDir() {
		return Info{}, fmt.Errorf("%q 是目录", path)
	}
	info := Info{Size: st.Size(), MIME: "application/octet-stream"}

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Info{}, err
	}
	if kind, err := filetype.Match(head[:n]); err == nil && kind != filetype.Unknown {
		info.MIME = kind.MIME.Value
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return info, nil
	}
	if cfg, _, err := image.DecodeConfig(f); err == nil {
		info.Width, info.Height = cfg.Width, cfg.Height
	}
	return info, nil
}

// Render 把图片缩放到 cols 列 × rows 行的终端区域内（保持宽高比），
// 每个字符用上半块“▀”表示上下两个像素。
func Render(fs afero.Fs, path string, cols, rows int) (string, error) {
	if cols <= 0 || rows <= 0 {
		return "", errors.New("预览区域尺寸无效")
	}

	f, err := fs.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", err
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return "", errors.New("图片尺寸无效")
	}

	thumb := resize.Thumbnail(uint(cols), uint(rows*2), img, resize.Bilinear)
	return renderHalfBlocks(thumb), nil
}

func renderHalfBlocks(img image.Image) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(toColor(img.At(x, y)))
			if y+1 < b.Max.Y {
				style = style.Background(toColor(img.At(x, y+1)))
			}
			sb.WriteString(style.Render("▀"))
		}
	}
	return sb.String()
}

func toColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
