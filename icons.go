package blog

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/smile243/blog/siteconfig"
)

const (
	faviconSize    = 512
	appleTouchSize = 180
	ogImageWidth   = 1200
	ogImageHeight  = 630
	maxUploadSize  = 10 << 20 // 10MB
)

// iconTarget is one image GenerateIcons writes.
type iconTarget struct {
	path          string // site path, e.g. "/favicon.png"
	width, height int
}

// iconTargets lists the images derivable from the site configuration. Paths
// named twice are written once, at the first size.
func iconTargets(site siteconfig.Config) []iconTarget {
	var targets []iconTarget
	seen := map[string]struct{}{}
	add := func(p string, w, h int) {
		if p == "" || !strings.HasSuffix(strings.ToLower(p), ".png") {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		targets = append(targets, iconTarget{path: p, width: w, height: h})
	}
	add(site.Site.Favicon.PNG, faviconSize, faviconSize)
	add(site.Site.Favicon.AppleTouchIcon, appleTouchSize, appleTouchSize)
	add(localImagePath(site), ogImageWidth, ogImageHeight)
	return targets
}

// localImagePath returns the path of site.image when it is served by this
// site, or "" when it lives elsewhere.
func localImagePath(site siteconfig.Config) string {
	img, err := url.Parse(site.Site.Image)
	if err != nil || site.Site.Image == "" {
		return ""
	}
	if !img.IsAbs() {
		if strings.HasPrefix(img.Path, "/") {
			return img.Path
		}
		return ""
	}
	base, err := url.Parse(site.Site.URL)
	if err != nil || !strings.EqualFold(base.Host, img.Host) {
		return ""
	}
	return img.Path
}

// coverCrop returns the centered region of b with the aspect ratio w:h. The
// region is never empty, even for sources thinner than one pixel at that ratio.
func coverCrop(b image.Rectangle, w, h int) image.Rectangle {
	sw, sh := b.Dx(), b.Dy()
	cw, ch := sw, sh
	if sw*h > sh*w {
		cw = sh * w / h
	} else {
		ch = sw * h / w
	}
	cw, ch = max(cw, 1), max(ch, 1)
	x0 := b.Min.X + (sw-cw)/2
	y0 := b.Min.Y + (sh-ch)/2
	return image.Rect(x0, y0, x0+cw, y0+ch)
}

func resize(src image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, coverCrop(src.Bounds(), w, h), draw.Src, nil)
	return dst
}

// GenerateIcons decodes src and writes the favicon, apple touch icon and Open
// Graph image named by site into dir. It returns the site paths written.
func GenerateIcons(src io.Reader, dir string, site siteconfig.Config) ([]string, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode image: empty image")
	}

	var written []string
	for _, t := range iconTargets(site) {
		file := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(t.path, "/")))
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return written, fmt.Errorf("create icon dir: %w", err)
		}
		if err := writePNG(file, resize(img, t.width, t.height)); err != nil {
			return written, err
		}
		written = append(written, t.path)
	}
	return written, nil
}

func writePNG(file string, img image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("create %s: %w", file, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", file, err)
	}
	return f.Close()
}

func (a *App) handleIconUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.String(http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	written, err := GenerateIcons(src, a.Config.StaticDir, a.Site)
	a.metrics.iconRun(err)
	if err != nil {
		a.log.Warn().Err(err).Str("file", file.Filename).Msg("icon generation failed")
		return c.String(http.StatusBadRequest, "Invalid image: "+err.Error())
	}
	a.log.Info().Strs("paths", written).Msg("icons regenerated")
	return redirectWithMessage(c, "icons regenerated")
}
