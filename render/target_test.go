package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestPixmapTargetBasics(t *testing.T) {
	target := NewPixmapTarget(64, 48)

	if target.Width() != 64 || target.Height() != 48 {
		t.Errorf("size = %dx%d, want 64x48", target.Width(), target.Height())
	}
	if target.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("format = %v, want RGBA8Unorm", target.Format())
	}
	if target.TextureView() != nil {
		t.Error("CPU target should have no texture view")
	}
	if got := len(target.Pixels()); got != 64*48*4 {
		t.Errorf("pixel buffer = %d bytes, want %d", got, 64*48*4)
	}
	if target.Stride() < 64*4 {
		t.Errorf("stride = %d, want at least %d", target.Stride(), 64*4)
	}
}

func TestPixmapTargetClear(t *testing.T) {
	target := NewPixmapTarget(8, 8)
	target.Clear(color.RGBA{10, 20, 30, 255})

	for _, p := range [][2]int{{0, 0}, {7, 7}, {3, 5}} {
		got := target.GetPixel(p[0], p[1])
		r, g, b, a := got.RGBA()
		if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 || a>>8 != 255 {
			t.Fatalf("pixel %v = %v, want 10/20/30/255", p, got)
		}
	}
}

func TestPixmapTargetSetPixel(t *testing.T) {
	target := NewPixmapTarget(4, 4)
	target.SetPixel(2, 1, color.RGBA{255, 0, 0, 255})

	r, _, _, _ := target.GetPixel(2, 1).RGBA()
	if r>>8 != 255 {
		t.Errorf("pixel not set: %v", target.GetPixel(2, 1))
	}
	// Out-of-bounds writes are dropped by image.RGBA.
	target.SetPixel(-1, 0, color.RGBA{255, 0, 0, 255})
	target.SetPixel(10, 10, color.RGBA{255, 0, 0, 255})
}

func TestPixmapTargetResize(t *testing.T) {
	target := NewPixmapTarget(4, 4)
	target.Resize(16, 8)
	if target.Width() != 16 || target.Height() != 8 {
		t.Errorf("size after resize = %dx%d", target.Width(), target.Height())
	}
}

func TestPixmapTargetFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	target := NewPixmapTargetFromImage(img)
	if target.Image() != img {
		t.Error("target should wrap the image without copying")
	}
	target.SetPixel(0, 0, color.RGBA{1, 2, 3, 255})
	if img.Pix[0] != 1 {
		t.Error("writes should land in the wrapped image")
	}
}
