package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestToWebPShrinksLongestSide(t *testing.T) {
	out, err := ToWebP(pngOf(t, 1024, 256), MaxSide)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

func TestToWebPKeepsSmallImages(t *testing.T) {
	out, err := ToWebP(pngOf(t, 40, 60), MaxSide)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 60, cfg.Height)
}

func TestToWebPRejectsNonImages(t *testing.T) {
	_, err := ToWebP(strings.NewReader("definitely not an image"), MaxSide)
	assert.ErrorIs(t, err, ErrUnsupported)
}
