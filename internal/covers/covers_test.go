package covers

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodeTestImage(t *testing.T, w, h int, asPNG bool) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 128, 255})
		}
	}
	var buf bytes.Buffer
	if asPNG {
		if err := png.Encode(&buf, img); err != nil {
			t.Fatalf("encoding test PNG: %v", err)
		}
	} else {
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
			t.Fatalf("encoding test JPEG: %v", err)
		}
	}
	return buf.Bytes()
}

func TestProcessAcceptsJPEGAndPNG(t *testing.T) {
	for _, asPNG := range []bool{false, true} {
		data, mime, err := Process(bytes.NewReader(encodeTestImage(t, 120, 180, asPNG)))
		if err != nil {
			t.Fatalf("Process (png=%v): %v", asPNG, err)
		}
		if mime != "image/jpeg" {
			t.Errorf("expected image/jpeg output, got %s", mime)
		}
		if len(data) == 0 {
			t.Error("expected non-empty cover data")
		}
	}
}

func TestProcessDownscalesLargeCovers(t *testing.T) {
	data, _, err := Process(bytes.NewReader(encodeTestImage(t, 900, 1400, false)))
	if err != nil {
		t.Fatalf("Process large cover: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		t.Errorf("expected max %dx%d, got %dx%d", MaxDimension, MaxDimension, bounds.Dx(), bounds.Dy())
	}
	// Portrait aspect ratio should survive the downscale.
	if bounds.Dx() >= bounds.Dy() {
		t.Errorf("expected portrait output, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessKeepsSmallCovers(t *testing.T) {
	data, _, err := Process(bytes.NewReader(encodeTestImage(t, 80, 120, false)))
	if err != nil {
		t.Fatalf("Process small cover: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 80 || bounds.Dy() != 120 {
		t.Errorf("small cover should not be resized: got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessRejectsOtherFormats(t *testing.T) {
	inputs := [][]byte{
		[]byte("not an image"),
		[]byte("GIF89a..."),
	}
	for _, in := range inputs {
		if _, _, err := Process(bytes.NewReader(in)); err == nil {
			t.Errorf("expected error for input %q", in[:6])
		}
	}
}
