package imaging

import (
	"image"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

// Ratio is a width:height aspect ratio.
type Ratio struct {
	W, H int
}

// Gallery tile ratios per category.
var (
	RatioWide     = Ratio{16, 9}
	RatioSquare   = Ratio{1, 1}
	RatioPortrait = Ratio{3, 4}
	RatioTall     = Ratio{4, 5}
)

// AspectFor returns the gallery tile ratio for a category.
func AspectFor(c data.Category) Ratio {
	switch c {
	case data.CategoryThumbnail:
		return RatioWide
	case data.CategoryLogoDesign:
		return RatioSquare
	case data.CategoryBranding:
		return RatioPortrait
	default:
		return RatioTall
	}
}

// anchor returns the horizontal and vertical alignment of a focal point,
// each 0 (start), 0.5 (center) or 1 (end).
func anchor(p data.Position) (float64, float64) {
	switch p.OrDefault() {
	case data.PositionTopLeft:
		return 0, 0
	case data.PositionTopCenter:
		return 0.5, 0
	case data.PositionTopRight:
		return 1, 0
	case data.PositionCenterLeft:
		return 0, 0.5
	case data.PositionCenterRight:
		return 1, 0.5
	case data.PositionBottomLeft:
		return 0, 1
	case data.PositionBottomCenter:
		return 0.5, 1
	case data.PositionBottomRight:
		return 1, 1
	default:
		return 0.5, 0.5
	}
}

// CropRect returns the largest region of bounds with ratio r, placed by
// the focal point the way CSS object-fit: cover with object-position does.
func CropRect(bounds image.Rectangle, r Ratio, p data.Position) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 || r.W <= 0 || r.H <= 0 {
		return bounds
	}
	cw, ch := w, h
	if w*r.H > h*r.W {
		cw = h * r.W / r.H
	} else {
		ch = w * r.H / r.W
	}
	ax, ay := anchor(p)
	x := bounds.Min.X + int(float64(w-cw)*ax)
	y := bounds.Min.Y + int(float64(h-ch)*ay)
	return image.Rect(x, y, x+cw, y+ch)
}

// Crop returns the part of img visible in a gallery tile of ratio r.
func Crop(img image.Image, r Ratio, p data.Position) image.Image {
	rect := CropRect(img.Bounds(), r, p)
	if sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(rect)
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			dst.Set(x, y, img.At(rect.Min.X+x, rect.Min.Y+y))
		}
	}
	return dst
}
