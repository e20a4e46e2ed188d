// Package imaging prepares uploaded images for inline storage: it scales
// them down, re-encodes them as JPEG data URIs and computes the crop a
// focal point selects for a gallery aspect ratio.
package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"math"
	"os"
	"strings"

	// decoders for accepted uploads
	_ "image/gif"
	_ "image/png"

	"github.com/juju/errors"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Longest-side limits and the JPEG quality used for uploads.
const (
	ProjectMaxSide = 1200
	AboutMaxSide   = 800
	JPEGQuality    = 80
)

// Fit returns the size of a w x h image scaled so its longest side is at
// most maxSide. Smaller images keep their size.
func Fit(w, h, maxSide int) (int, int) {
	if w <= 0 || h <= 0 || maxSide <= 0 {
		return w, h
	}
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= maxSide {
		return w, h
	}
	scale := float64(maxSide) / float64(longest)
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	return max(nw, 1), max(nh, 1)
}

// Resize scales img to Fit within maxSide using Catmull-Rom resampling.
// Transparent areas are flattened onto white since JPEG has no alpha.
func Resize(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), maxSide)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// EncodeDataURI encodes img as a base64 JPEG data URI.
func EncodeDataURI(img image.Image, quality int) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return "", errors.Annotate(err, "encoding jpeg")
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Prepare decodes an upload (JPEG, PNG, GIF or WebP), scales it to
// maxSide and returns a JPEG data URI.
func Prepare(r io.Reader, maxSide int) (string, error) {
	img, err := Decode(r)
	if err != nil {
		return "", err
	}
	return EncodeDataURI(Resize(img, maxSide), JPEGQuality)
}

// Decode reads a JPEG, PNG, GIF or WebP image.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.NewNotValid(err, "unsupported or corrupt image")
	}
	return img, nil
}

// PrepareFile is Prepare for a file on disk.
func PrepareFile(path string, maxSide int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Annotatef(err, "opening %s", path)
	}
	defer f.Close()
	return Prepare(f, maxSide)
}

// DecodeDataURI decodes a base64 image data URI.
func DecodeDataURI(uri string) (image.Image, error) {
	meta, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(meta, "data:image/") || !strings.HasSuffix(meta, ";base64") {
		return nil, errors.NotValidf("image data URI")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.NewNotValid(err, "image data URI payload")
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.NewNotValid(err, "image data URI payload")
	}
	return img, nil
}
