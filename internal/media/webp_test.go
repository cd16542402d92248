package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFit(t *testing.T) {
	small := image.NewRGBA(image.Rect(0, 0, 100, 50))
	assert.Same(t, small, Fit(small, 1280))

	big := image.NewRGBA(image.Rect(0, 0, 2000, 1000))
	got := Fit(big, 1000)
	assert.Equal(t, 1000, got.Bounds().Dx())
	assert.Equal(t, 500, got.Bounds().Dy())
}

func TestToWebP(t *testing.T) {
	out, err := ToWebP(bytes.NewReader(pngOf(t, 64, 32)), 32)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, 16, cfg.Height)
}

func TestToWebP_RejectsGarbage(t *testing.T) {
	_, err := ToWebP(bytes.NewReader([]byte("not an image")), 100)
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))
}
