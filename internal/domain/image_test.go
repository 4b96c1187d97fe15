package domain

import "testing"

func TestSplitExt(t *testing.T) {
	cases := []struct {
		name, stem, ext string
	}{
		{"photo.png", "photo", ".png"},
		{"a.tar.png", "a.tar", ".png"},
		{".png", ".png", ""},
		{"..png", ".", ".png"},
		{"noext", "noext", ""},
		{"trail.", "trail", "."},
	}
	for _, c := range cases {
		stem, ext := SplitExt(c.name)
		if stem != c.stem || ext != c.ext {
			t.Fatalf("%q：期望 (%q,%q)，实际 (%q,%q)", c.name, c.stem, c.ext, stem, ext)
		}
	}
}
