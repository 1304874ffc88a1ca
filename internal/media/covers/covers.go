// Package covers validates book cover data URIs and computes BlurHash
// placeholders for them.
package covers

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"strings"

	"github.com/bbrks/go-blurhash"
	_ "golang.org/x/image/webp" // Register WebP decoder

	domainerrors "github.com/bookselfapp/bookself-server/internal/errors"
)

// MaxCoverBytes caps decoded cover size. Covers travel inline with the
// collection record, so an oversized image bloats every load and save.
const MaxCoverBytes = 2 << 20 // 2 MiB

// blurHashSize is the target size for BlurHash computation.
// BlurHash doesn't need high resolution - a small thumbnail produces nearly identical results.
// Using 64x64 reduces computation time from seconds to milliseconds.
const blurHashSize = 64

// Normalize validates a cover data URI and returns it together with a
// BlurHash placeholder. An empty input is allowed and returns empty results.
func Normalize(dataURI string) (cover string, placeholder string, err error) {
	dataURI = strings.TrimSpace(dataURI)
	if dataURI == "" {
		return "", "", nil
	}

	raw, err := decodeDataURI(dataURI)
	if err != nil {
		return "", "", err
	}
	if len(raw) > MaxCoverBytes {
		return "", "", domainerrors.Validationf("cover image exceeds %d bytes", MaxCoverBytes)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", "", domainerrors.Validation("cover image is not a decodable image").WithCause(err)
	}

	hash, err := computeBlurHash(img)
	if err != nil {
		return "", "", fmt.Errorf("compute placeholder: %w", err)
	}

	return dataURI, hash, nil
}

// decodeDataURI extracts the payload from a data:image/...;base64 URI.
func decodeDataURI(dataURI string) ([]byte, error) {
	if !strings.HasPrefix(dataURI, "data:image/") {
		return nil, domainerrors.Validation("cover must be an image data URI")
	}

	idx := strings.Index(dataURI, ",")
	if idx < 0 {
		return nil, domainerrors.Validation("malformed data URI")
	}
	meta, payload := dataURI[:idx], dataURI[idx+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, domainerrors.Validation("cover data URI must be base64 encoded")
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, domainerrors.Validation("cover data URI payload is not valid base64").WithCause(err)
	}
	return raw, nil
}

// computeBlurHash generates a BlurHash string from a decoded image.
// Uses 4x3 components for a good balance of size (~20-30 chars) and detail.
func computeBlurHash(img image.Image) (string, error) {
	thumbnail := resizeForBlurHash(img)

	// 4 horizontal, 3 vertical components - sweet spot for book covers
	hash, err := blurhash.Encode(4, 3, thumbnail)
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}

	return hash, nil
}

// resizeForBlurHash creates a small thumbnail suitable for BlurHash computation.
// Uses simple nearest-neighbor scaling which is fast and sufficient for BlurHash.
func resizeForBlurHash(img image.Image) image.Image {
	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	// If image is already small enough, use it directly
	if srcWidth <= blurHashSize && srcHeight <= blurHashSize {
		return img
	}

	// Calculate target dimensions maintaining aspect ratio
	var dstWidth, dstHeight int
	if srcWidth > srcHeight {
		dstWidth = blurHashSize
		dstHeight = (srcHeight * blurHashSize) / srcWidth
		if dstHeight < 1 {
			dstHeight = 1
		}
	} else {
		dstHeight = blurHashSize
		dstWidth = (srcWidth * blurHashSize) / srcHeight
		if dstWidth < 1 {
			dstWidth = 1
		}
	}

	// Create destination image
	dst := image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))

	// Simple box scaling - fast and sufficient for BlurHash
	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for y := 0; y < dstHeight; y++ {
		for x := 0; x < dstWidth; x++ {
			srcX := int(float64(x) * xRatio)
			srcY := int(float64(y) * yRatio)
			dst.Set(x, y, img.At(bounds.Min.X+srcX, bounds.Min.Y+srcY))
		}
	}

	return dst
}
