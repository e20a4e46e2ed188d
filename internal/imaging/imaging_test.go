package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	return img
}

func TestFit(t *testing.T) {
	cases := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{2400, 1600, 1200, 1200, 800},
		{1600, 2400, 1200, 800, 1200},
		{1000, 500, 1200, 1000, 500},
		{3000, 1000, 800, 800, 267},
		{4000, 1, 1200, 1200, 1},
	}
	for _, tc := range cases {
		w, h := Fit(tc.w, tc.h, tc.max)
		if w != tc.wantW || h != tc.wantH {
			t.Errorf("Fit(%d,%d,%d) = %dx%d, want %dx%d", tc.w, tc.h, tc.max, w, h, tc.wantW, tc.wantH)
		}
	}
}

func TestPrepareScalesAndKeepsAspect(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(2400, 1350)); err != nil {
		t.Fatal(err)
	}

	uri, err := Prepare(&buf, ProjectMaxSide)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/jpeg;base64,") {
		t.Fatalf("unexpected data URI prefix: %.40s", uri)
	}

	img, err := DecodeDataURI(uri)
	if err != nil {
		t.Fatalf("DecodeDataURI failed: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 1200 || b.Dy() != 675 {
		t.Fatalf("got %dx%d, want 1200x675", b.Dx(), b.Dy())
	}
}

func TestPrepareRejectsGarbage(t *testing.T) {
	if _, err := Prepare(strings.NewReader("not an image"), AboutMaxSide); err == nil {
		t.Fatal("expected error for garbage input")
	}
	if _, err := DecodeDataURI("data:text/plain;base64,aGk="); err == nil {
		t.Fatal("expected error for non-image data URI")
	}
}

func TestAspectFor(t *testing.T) {
	want := map[data.Category]Ratio{
		data.CategoryThumbnail:   {16, 9},
		data.CategoryLogoDesign:  {1, 1},
		data.CategoryBranding:    {3, 4},
		data.CategorySocialMedia: {4, 5},
		data.CategoryPackaging:   {4, 5},
		data.CategoryUIUX:        {4, 5},
	}
	for c, r := range want {
		if got := AspectFor(c); got != r {
			t.Errorf("AspectFor(%q) = %v, want %v", c, got, r)
		}
	}
}

func TestCropRect(t *testing.T) {
	bounds := image.Rect(0, 0, 1600, 900)

	// square crop of a wide image keeps full height
	got := CropRect(bounds, RatioSquare, data.PositionTopLeft)
	if got != image.Rect(0, 0, 900, 900) {
		t.Fatalf("top left square = %v", got)
	}
	got = CropRect(bounds, RatioSquare, data.PositionCenter)
	if got != image.Rect(350, 0, 1250, 900) {
		t.Fatalf("center square = %v", got)
	}
	got = CropRect(bounds, RatioSquare, data.PositionBottomRight)
	if got != image.Rect(700, 0, 1600, 900) {
		t.Fatalf("bottom right square = %v", got)
	}

	// a tall crop of a tall image is cut vertically
	tall := image.Rect(0, 0, 800, 2000)
	got = CropRect(tall, RatioTall, data.PositionBottomCenter)
	if got != image.Rect(0, 1000, 800, 2000) {
		t.Fatalf("bottom center 4:5 = %v", got)
	}

	cropped := Crop(solid(160, 90), RatioSquare, "")
	if cropped.Bounds().Dx() != 90 || cropped.Bounds().Dy() != 90 {
		t.Fatalf("Crop size = %v", cropped.Bounds())
	}
}
