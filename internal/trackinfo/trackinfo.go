// Package trackinfo reads display metadata and cover art for local media files.
package trackinfo

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg" // decoders for embedded and folder cover art
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Info is the tag metadata shown on the now-playing surface.
type Info struct {
	Path   string
	Title  string
	Artist string
	Album  string
	Year   int
	Track  int
}

// Read returns the tags of the file at path. Files without tags yield the
// file name (without extension) as title and no error.
func Read(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	info := Info{Path: path}
	m, err := tag.ReadFrom(f)
	if err != nil && !errors.Is(err, tag.ErrNoTagsFound) {
		return Info{}, err
	}
	if m != nil {
		info.Title = strings.TrimSpace(m.Title())
		info.Artist = strings.TrimSpace(m.Artist())
		if info.Artist == "" {
			info.Artist = strings.TrimSpace(m.AlbumArtist())
		}
		info.Album = m.Album()
		info.Year = m.Year()
		info.Track, _ = m.Track()
	}
	if info.Title == "" {
		base := filepath.Base(path)
		info.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return info, nil
}

// Common cover art filenames to look for next to the track.
var coverNames = []string{
	"cover.jpg", "cover.jpeg", "cover.png",
	"folder.jpg", "folder.jpeg", "folder.png",
	"album.jpg", "album.jpeg", "album.png",
	"front.jpg", "front.jpeg", "front.png",
}

// Artwork returns the embedded cover of the file at path, falling back to a
// cover image in the same directory. It returns nil when none is found.
func Artwork(path string) (image.Image, error) {
	img, err := embeddedArtwork(path)
	if err != nil {
		return nil, err
	}
	if img != nil {
		return img, nil
	}
	return folderArtwork(filepath.Dir(path))
}

func embeddedArtwork(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return nil, nil
		}
		return nil, err
	}
	pic := m.Picture()
	if pic == nil || len(pic.Data) == 0 {
		return nil, nil
	}
	img, _, err := image.Decode(bytes.NewReader(pic.Data))
	if err != nil {
		// Unreadable embedded art: let the folder lookup try.
		return nil, nil //nolint:nilerr // fallback
	}
	return img, nil
}

// FindAlbumArt returns the path of the first cover image next to trackPath,
// or "" when there is none.
func FindAlbumArt(trackPath string) string {
	dir := filepath.Dir(trackPath)
	for _, name := range coverNames {
		for _, candidate := range []string{name, strings.ToUpper(name)} {
			p := filepath.Join(dir, candidate)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func folderArtwork(dir string) (image.Image, error) {
	p := FindAlbumArt(filepath.Join(dir, "track"))
	if p == "" {
		return nil, nil
	}
	return LoadImage(p)
}

// LoadImage decodes the JPEG or PNG image at path.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}
