package trackinfo

import (
	"encoding/binary"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createMinimalMP3 writes a single MP3 frame, optionally preceded by an
// ID3v2.3 tag holding the given text frames.
func createMinimalMP3(t *testing.T, path string, frames map[string]string) {
	t.Helper()

	var body []byte
	for _, id := range []string{"TIT2", "TPE1", "TALB"} {
		text, ok := frames[id]
		if !ok {
			continue
		}
		payload := append([]byte{0}, text...) // ISO-8859-1
		header := make([]byte, 10)
		copy(header, id)
		binary.BigEndian.PutUint32(header[4:8], uint32(len(payload))) //nolint:gosec // test sizes are small
		body = append(body, header...)
		body = append(body, payload...)
	}

	var data []byte
	if len(body) > 0 {
		size := len(body)
		data = append(data, 'I', 'D', '3', 3, 0, 0,
			byte(size>>21&0x7f), byte(size>>14&0x7f), byte(size>>7&0x7f), byte(size&0x7f))
		data = append(data, body...)
	}

	frame := make([]byte, 417)
	frame[0], frame[1], frame[2] = 0xff, 0xfb, 0x90
	data = append(data, frame...)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to create test MP3: %v", err)
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func TestRead_Tags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	createMinimalMP3(t, path, map[string]string{
		"TIT2": "Sinnerman",
		"TPE1": "Nina Simone",
		"TALB": "Pastel Blues",
	})

	info, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if info.Title != "Sinnerman" || info.Artist != "Nina Simone" || info.Album != "Pastel Blues" {
		t.Errorf("Read() = %+v", info)
	}
}

func TestRead_NoTagsFallsBackToFileName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01 - Intro.mp3")
	createMinimalMP3(t, path, nil)

	info, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if info.Title != "01 - Intro" {
		t.Errorf("Title = %q, want %q", info.Title, "01 - Intro")
	}
	if info.Artist != "" {
		t.Errorf("Artist = %q, want empty", info.Artist)
	}
}

func TestRead_MissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Error("Read() error = nil for a missing file")
	}
}

func TestArtwork_FolderFallback(t *testing.T) {
	dir := t.TempDir()
	track := filepath.Join(dir, "song.mp3")
	createMinimalMP3(t, track, map[string]string{"TIT2": "Song"})
	writePNG(t, filepath.Join(dir, "folder.png"), 30, 20)

	img, err := Artwork(track)
	if err != nil {
		t.Fatalf("Artwork() error = %v", err)
	}
	if img == nil {
		t.Fatal("Artwork() = nil, want folder image")
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("bounds = %v, want 30x20", b)
	}
}

func TestArtwork_None(t *testing.T) {
	track := filepath.Join(t.TempDir(), "song.mp3")
	createMinimalMP3(t, track, nil)

	img, err := Artwork(track)
	if err != nil {
		t.Fatalf("Artwork() error = %v", err)
	}
	if img != nil {
		t.Error("Artwork() returned an image for a bare directory")
	}
}

func TestFindAlbumArt_Priority(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "front.png"), 1, 1)
	writePNG(t, filepath.Join(dir, "cover.png"), 1, 1)

	got := FindAlbumArt(filepath.Join(dir, "song.flac"))
	if got != filepath.Join(dir, "cover.png") {
		t.Errorf("FindAlbumArt() = %q, want cover.png", got)
	}
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "art.png")
	writePNG(t, p, 8, 4)

	img, err := LoadImage(p)
	if err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("bounds = %v, want 8x4", b)
	}

	notImage := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notImage, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(notImage); err == nil {
		t.Error("LoadImage() error = nil for a text file")
	}
}
