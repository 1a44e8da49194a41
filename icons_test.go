package blog

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smile243/blog/siteconfig"
)

func testPNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return &buf
}

func decodeSize(t *testing.T, file string) (int, int) {
	t.Helper()
	f, err := os.Open(file)
	if err != nil {
		t.Fatalf("open %s: %v", file, err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode %s: %v", file, err)
	}
	return cfg.Width, cfg.Height
}

func TestGenerateIconsDefaultSite(t *testing.T) {
	dir := t.TempDir()
	written, err := GenerateIcons(testPNG(t, 300, 200), dir, siteconfig.Default())
	if err != nil {
		t.Fatalf("GenerateIcons: %v", err)
	}
	if strings.Join(written, ",") != "/favicon.png,/og-image.png" {
		t.Errorf("written = %v", written)
	}
	if w, h := decodeSize(t, filepath.Join(dir, "favicon.png")); w != 512 || h != 512 {
		t.Errorf("favicon size = %dx%d, want 512x512", w, h)
	}
	if w, h := decodeSize(t, filepath.Join(dir, "og-image.png")); w != 1200 || h != 630 {
		t.Errorf("og image size = %dx%d, want 1200x630", w, h)
	}
}

func TestGenerateIconsSeparateAppleTouchIcon(t *testing.T) {
	site := siteconfig.Default()
	site.Site.Favicon.AppleTouchIcon = "/icons/apple-touch-icon.png"
	site.Site.Image = "https://cdn.example.com/og.png"

	dir := t.TempDir()
	written, err := GenerateIcons(testPNG(t, 64, 64), dir, site)
	if err != nil {
		t.Fatalf("GenerateIcons: %v", err)
	}
	if strings.Join(written, ",") != "/favicon.png,/icons/apple-touch-icon.png" {
		t.Errorf("written = %v", written)
	}
	if w, h := decodeSize(t, filepath.Join(dir, "icons", "apple-touch-icon.png")); w != 180 || h != 180 {
		t.Errorf("apple touch icon size = %dx%d, want 180x180", w, h)
	}
}

func TestGenerateIconsTinySources(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {4000, 1}, {1, 4000}} {
		dir := t.TempDir()
		if _, err := GenerateIcons(testPNG(t, size[0], size[1]), dir, siteconfig.Default()); err != nil {
			t.Fatalf("GenerateIcons %dx%d: %v", size[0], size[1], err)
		}
		for _, name := range []string{"favicon.png", "og-image.png"} {
			f, err := os.Open(filepath.Join(dir, name))
			if err != nil {
				t.Fatalf("open %s: %v", name, err)
			}
			img, err := png.Decode(f)
			f.Close()
			if err != nil {
				t.Fatalf("decode %s: %v", name, err)
			}
			b := img.Bounds()
			if _, _, _, a := img.At(b.Dx()/2, b.Dy()/2).RGBA(); a == 0 {
				t.Errorf("%s from %dx%d source is transparent", name, size[0], size[1])
			}
		}
	}
}

func TestGenerateIconsRejectsGarbage(t *testing.T) {
	if _, err := GenerateIcons(strings.NewReader("not an image"), t.TempDir(), siteconfig.Default()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestCoverCrop(t *testing.T) {
	tests := []struct {
		src  image.Rectangle
		w, h int
		want image.Rectangle
	}{
		{image.Rect(0, 0, 300, 200), 1, 1, image.Rect(50, 0, 250, 200)},
		{image.Rect(0, 0, 200, 300), 1, 1, image.Rect(0, 50, 200, 250)},
		{image.Rect(0, 0, 2400, 2400), 1200, 630, image.Rect(0, 570, 2400, 1830)},
		{image.Rect(0, 0, 1, 1), 1200, 630, image.Rect(0, 0, 1, 1)},
		{image.Rect(0, 0, 4000, 1), 1200, 630, image.Rect(1999, 0, 2000, 1)},
		{image.Rect(0, 0, 1, 4000), 1200, 630, image.Rect(0, 1999, 1, 2000)},
	}
	for _, tt := range tests {
		if got := coverCrop(tt.src, tt.w, tt.h); got != tt.want {
			t.Errorf("coverCrop(%v, %d, %d) = %v, want %v", tt.src, tt.w, tt.h, got, tt.want)
		}
	}
}

func TestLocalImagePath(t *testing.T) {
	site := siteconfig.Default()
	tests := []struct {
		image, want string
	}{
		{"https://jialeyu.com/og-image.png", "/og-image.png"},
		{"/cover.png", "/cover.png"},
		{"https://cdn.example.com/og.png", ""},
		{"", ""},
	}
	for _, tt := range tests {
		site.Site.Image = tt.image
		if got := localImagePath(site); got != tt.want {
			t.Errorf("localImagePath(%q) = %q, want %q", tt.image, got, tt.want)
		}
	}
}
