package grayscale

import (
	"fmt"
	"image"
	"image/color"

	"github.com/suyashkumar/dicom/pkg/frame"

	"github.com/JeffCorp/dicom-topng/decoders/render"
	"github.com/JeffCorp/dicom-topng/decoders/types"
)

// DecodeFrame converts a single-sample frame into a normalized grayscale
// PNG. Signed pixel data is reinterpreted through two's complement before
// normalization, and MONOCHROME1 frames are inverted so that low raw
// values render white. Encapsulated frames (JPEG family) are decoded
// through the library's image path, which already yields display-range
// values.
func DecodeFrame(fr *frame.Frame, info types.FrameInfo, config types.Config) (types.DecoderResult, error) {
	if fr.Encapsulated {
		img, err := fr.GetImage()
		if err != nil {
			return types.DecoderResult{}, fmt.Errorf("cannot decode encapsulated frame: %w", err)
		}
		if info.PhotometricInterpretation == "MONOCHROME1" {
			img = invertGray(img)
		}
		return render.FinalizeImage(img, config.DoubleImageSize)
	}

	native, err := fr.GetNativeFrame()
	if err != nil {
		return types.DecoderResult{}, fmt.Errorf("cannot access native pixel data: %w", err)
	}
	if native.Rows <= 0 || native.Cols <= 0 {
		return types.DecoderResult{}, fmt.Errorf("invalid frame dimensions %dx%d", native.Cols, native.Rows)
	}
	if len(native.Data) < native.Rows*native.Cols {
		return types.DecoderResult{}, fmt.Errorf("incomplete pixel data: got %d samples, expected %d", len(native.Data), native.Rows*native.Cols)
	}

	values := make([]float64, native.Rows*native.Cols)
	signed := info.PixelRepresentation == 1 && info.BitsAllocated == 16
	for i := range values {
		raw := native.Data[i][0]
		if signed {
			raw = int(int16(uint16(raw)))
		}
		values[i] = float64(raw)
	}

	if config.WindowCenter != nil && config.WindowWidth != nil {
		applyWindow(values, *config.WindowCenter, *config.WindowWidth)
	}

	img := normalize(values, native.Cols, native.Rows, info.PhotometricInterpretation == "MONOCHROME1")
	return render.FinalizeImage(img, config.DoubleImageSize)
}

// applyWindow clips values to [center - width/2, center + width/2].
func applyWindow(values []float64, center, width int) {
	min := float64(center - width/2)
	max := float64(center + width/2)
	for i, v := range values {
		if v < min {
			values[i] = min
		} else if v > max {
			values[i] = max
		}
	}
}

// normalize scales values to the 0-255 range. A flat frame maps to all
// zeros rather than dividing by zero.
func normalize(values []float64, width, height int, invert bool) *image.Gray {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	if max == min {
		return img
	}

	for i, v := range values {
		scaled := uint8((v - min) / (max - min) * 255)
		if invert {
			scaled = 255 - scaled
		}
		img.Pix[i] = scaled
	}
	return img
}

func invertGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	inverted := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			inverted.SetGray(x, y, color.Gray{Y: 255 - gray.Y})
		}
	}
	return inverted
}
