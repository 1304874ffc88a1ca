package covers

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/bookselfapp/bookself-server/internal/errors"
)

// pngDataURI builds a data URI for a solid-color PNG of the given size.
func pngDataURI(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestNormalize_Empty(t *testing.T) {
	cover, placeholder, err := Normalize("")
	require.NoError(t, err)
	assert.Empty(t, cover)
	assert.Empty(t, placeholder)
}

func TestNormalize_ValidPNG(t *testing.T) {
	uri := pngDataURI(t, 10, 14)

	cover, placeholder, err := Normalize(uri)
	require.NoError(t, err)
	assert.Equal(t, uri, cover)
	assert.NotEmpty(t, placeholder)
}

func TestNormalize_LargeImageGetsPlaceholder(t *testing.T) {
	uri := pngDataURI(t, 200, 300)

	_, placeholder, err := Normalize(uri)
	require.NoError(t, err)
	assert.NotEmpty(t, placeholder)
}

func TestNormalize_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not a data uri", "https://example.com/cover.png"},
		{"wrong media type", "data:text/plain;base64,aGVsbG8="},
		{"missing comma", "data:image/png;base64"},
		{"not base64", "data:image/png;base64,!!!not-base64!!!"},
		{"not an image", "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("plain text"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Normalize(tt.input)
			require.Error(t, err)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
		})
	}
}

func TestNormalize_OversizedCover(t *testing.T) {
	// Random-ish bytes don't compress; base64 of 3 MiB stays over the cap.
	big := make([]byte, 3<<20)
	for i := range big {
		big[i] = byte(i * 31)
	}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(big)

	_, _, err := Normalize(uri)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}
