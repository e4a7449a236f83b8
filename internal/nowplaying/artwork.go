package nowplaying

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/adrg/xdg"
	"github.com/nfnt/resize"
)

const (
	appName        = "awesomeaudio"
	artworkMaxSize = 512
)

// ArtworkCachePath returns the xdg cache location for an exported artwork file.
func ArtworkCachePath(name string) (string, error) {
	return xdg.CacheFile(filepath.Join(appName, name))
}

// ExportArtwork writes img as PNG to path, shrunk to fit 512x512.
func ExportArtwork(img image.Image, path string) error {
	b := img.Bounds()
	if b.Dx() > artworkMaxSize || b.Dy() > artworkMaxSize {
		img = resize.Thumbnail(artworkMaxSize, artworkMaxSize, img, resize.Lanczos3)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// sameImage reports whether a and b are the same image value.
func sameImage(a, b image.Image) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// artworkFile keeps an exported copy of the current artwork so surfaces that
// need a URL can reference it. Exports happen only when the image changes,
// and a failed export is not retried for the same image.
type artworkFile struct {
	name string

	mu     sync.Mutex
	img    image.Image
	path   string
	failed bool
	// resolve maps name to a file path; ArtworkCachePath when nil.
	resolve func(name string) (string, error)
}

// update exports img when it differs from the current image. It returns the
// export error the first time an image fails.
func (a *artworkFile) update(img image.Image) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if sameImage(a.img, img) && (img == nil || a.path != "" || a.failed) {
		return nil
	}
	a.img = img
	a.path = ""
	a.failed = false
	if img == nil {
		return nil
	}
	resolve := a.resolve
	if resolve == nil {
		resolve = ArtworkCachePath
	}
	path, err := resolve(a.name)
	if err == nil {
		err = ExportArtwork(img, path)
	}
	if err != nil {
		a.failed = true
		return err
	}
	a.path = path
	return nil
}

// url returns a file:// URL for the exported artwork, or "".
func (a *artworkFile) url() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.path == "" {
		return ""
	}
	return "file://" + a.path
}
