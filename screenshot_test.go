package cliffside

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"frame", "frame"},
		{"  ", "unlabeled"},
		{"", "unlabeled"},
		{"cliff/face 2", "cliff_face_2"},
		{"v1.2-final", "v1.2-final"},
		{"../escape", ".._escape"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		100, 50, 0, 200, // half-ish alpha
		255, 255, 255, 255,
		0, 0, 0, 0,
	}
	img := unpremultiply(pixels, 3, 1)
	if got := img.NRGBAAt(0, 0); got.R != 127 || got.G != 63 || got.A != 200 {
		t.Errorf("pixel 0 = %v", got)
	}
	if got := img.NRGBAAt(1, 0); got.R != 255 || got.A != 255 {
		t.Errorf("opaque pixel = %v", got)
	}
	if got := img.NRGBAAt(2, 0); got.A != 0 {
		t.Errorf("transparent pixel = %v", got)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	if err := writePNG(path, src); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != src.Bounds() {
		t.Errorf("bounds = %v, want %v", img.Bounds(), src.Bounds())
	}

	if err := writePNG(filepath.Join(t.TempDir(), "missing", "shot.png"), src); err == nil {
		t.Error("writePNG into a missing directory succeeded")
	}
}

func TestWorldScreenshotQueue(t *testing.T) {
	w := NewWorld(flatGrid(t, 2, 2), nil, nil, DefaultOptions())
	w.Update(Input{Screenshot: true}, 1.0/60)
	w.Screenshot("extra")
	if len(w.screenshotQueue) != 2 || w.screenshotQueue[0] != "frame" {
		t.Errorf("queue = %v, want [frame extra]", w.screenshotQueue)
	}
}
