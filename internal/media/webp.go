// Package media normalises uploaded images.
package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

const (
	ContentTypeWebP = "image/webp"

	DefaultMaxWidth = 1280
	webpQuality     = 80
)

// ToWebP decodes a JPEG or PNG, scales it down to maxWidth keeping the
// aspect ratio, and encodes it as lossy webp.
func ToWebP(r io.Reader, maxWidth int) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_image")
	}

	img := Fit(src, maxWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Fit returns src unchanged when it is narrow enough, else a scaled copy.
func Fit(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return src
	}

	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
