package imaging

import (
	"bytes"
	"image"
	"image/color"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/dlifeofjay/payslip/internal/common"
)

// DefaultThreshold is the global binarization cut on a 0-255 grayscale.
// Pixels at or above it become background (white), the rest foreground.
const DefaultThreshold = 150

// Preprocessor turns a raw document page into a binary image that the OCR
// engine reads more reliably than a low-contrast scan.
type Preprocessor struct {
	Threshold uint8
}

func NewPreprocessor() *Preprocessor {
	return &Preprocessor{Threshold: DefaultThreshold}
}

// Binarize decodes the page bytes, converts to grayscale and applies the
// fixed global threshold. The result keeps the source pixel dimensions.
func (p *Preprocessor) Binarize(data []byte) (*image.Gray, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, common.DecodeError("cannot decode page bytes as an image", err)
	}

	bounds := src.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
			if g.Y >= p.Threshold {
				out.SetGray(x, y, color.Gray{Y: 255})
			} else {
				out.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return out, nil
}
