package storage

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestHasFile(t *testing.T) {
	dir := t.TempDir()
	s := &Storage{}

	file := filepath.Join(dir, "stopwords.txt")
	if s.HasFile(file) {
		t.Fatal("HasFile() true before file exists")
	}
	if err := s.SaveFile(file, []byte("the\n")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	if !s.HasFile(file) {
		t.Error("HasFile() false after SaveFile")
	}
	if s.HasFile(dir) {
		t.Error("HasFile() true for a directory")
	}
}

func TestSavePNG(t *testing.T) {
	s := &Storage{}
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{255, 0, 0, 255})

	path := filepath.Join(t.TempDir(), "out", "wc.png")
	if err := s.SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer f.Close()

	got, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if got.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", got.Bounds(), img.Bounds())
	}
	r, _, _, _ := got.At(1, 1).RGBA()
	if r>>8 != 255 {
		t.Errorf("pixel red = %d, want 255", r>>8)
	}
}
