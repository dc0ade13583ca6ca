package colorimg

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/suyashkumar/dicom/pkg/frame"

	"github.com/JeffCorp/dicom-topng/decoders/render"
	"github.com/JeffCorp/dicom-topng/decoders/types"
)

// DecodeFrame converts an RGB or YBR frame into a PNG. Encapsulated
// frames (JPEG family) are decoded through the library's image path;
// native frames are assembled sample by sample.
func DecodeFrame(fr *frame.Frame, info types.FrameInfo, config types.Config) (types.DecoderResult, error) {
	if fr.Encapsulated {
		img, err := fr.GetImage()
		if err != nil {
			return types.DecoderResult{}, fmt.Errorf("cannot decode encapsulated frame: %w", err)
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

	isYBR := strings.HasPrefix(info.PhotometricInterpretation, "YBR")

	img := image.NewRGBA(image.Rect(0, 0, native.Cols, native.Rows))
	for i := 0; i < native.Rows*native.Cols; i++ {
		px := native.Data[i]
		if len(px) < 3 {
			return types.DecoderResult{}, fmt.Errorf("expected 3 samples per pixel for %s, got %d", info.PhotometricInterpretation, len(px))
		}

		var r, g, b uint8
		if isYBR {
			r, g, b = color.YCbCrToRGB(clamp8(px[0]), clamp8(px[1]), clamp8(px[2]))
		} else {
			r, g, b = clamp8(px[0]), clamp8(px[1]), clamp8(px[2])
		}

		x := i % native.Cols
		y := i / native.Cols
		img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
	}

	return render.FinalizeImage(img, config.DoubleImageSize)
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
