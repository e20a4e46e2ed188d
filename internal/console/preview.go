package console

import (
	"image"
	"image/jpeg"
	"io"
	"os"
	"strings"

	"github.com/juju/errors"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
	"github.com/PaulBabatuyi/portfolio-cms/internal/imaging"
)

// previewMaxSide bounds preview output.
const previewMaxSide = 600

// LoadImage decodes a data URI or an image file.
func LoadImage(src string) (image.Image, error) {
	if strings.HasPrefix(src, "data:") {
		return imaging.DecodeDataURI(src)
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, errors.Annotatef(err, "opening %s", src)
	}
	defer f.Close()
	return imaging.Decode(f)
}

// WritePreview writes the part of img a gallery tile for category c shows
// when anchored at p, as a JPEG.
func WritePreview(out io.Writer, img image.Image, c data.Category, p data.Position) error {
	tile := imaging.Crop(img, imaging.AspectFor(c), p)
	if err := jpeg.Encode(out, imaging.Resize(tile, previewMaxSide), &jpeg.Options{Quality: imaging.JPEGQuality}); err != nil {
		return errors.Annotate(err, "encoding preview")
	}
	return nil
}
