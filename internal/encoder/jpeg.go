// Package encoder compresses captured rasters into uploadable frames.
package encoder

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"helmetwatch/internal/model"
)

// DefaultQuality is the compression quality used for uploads, in 0..1.
const DefaultQuality = 0.7

// JPEG encodes rasters as baseline JPEG.
type JPEG struct {
	// Quality in 0..1; values outside the range fall back to DefaultQuality.
	Quality float64
}

// NewJPEG returns an encoder using DefaultQuality.
func NewJPEG() JPEG {
	return JPEG{Quality: DefaultQuality}
}

// Encode compresses img into a Frame.
func (e JPEG) Encode(img image.Image) (model.Frame, error) {
	q := e.Quality
	if q <= 0 || q > 1 {
		q = DefaultQuality
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: int(math.Round(q * 100))}); err != nil {
		return model.Frame{}, fmt.Errorf("failed to encode jpeg: %w", err)
	}

	b := img.Bounds()
	return model.Frame{
		Data:     buf.Bytes(),
		MIMEType: "image/jpeg",
		Width:    b.Dx(),
		Height:   b.Dy(),
		Quality:  q,
	}, nil
}
