package render

import (
	"bytes"
	"image"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/JeffCorp/dicom-topng/decoders/types"
)

// FinalizeImage optionally doubles the image size and encodes it as PNG.
func FinalizeImage(img image.Image, double bool) (types.DecoderResult, error) {
	output := img
	if double {
		output = doubleSize(img)
	}
	return encodePNG(output)
}

func encodePNG(img image.Image) (types.DecoderResult, error) {
	var buffer bytes.Buffer
	if err := png.Encode(&buffer, img); err != nil {
		return types.DecoderResult{}, err
	}
	return types.DecoderResult{
		Buffer: bytes.NewBuffer(buffer.Bytes()),
	}, nil
}

func doubleSize(img image.Image) image.Image {
	bounds := img.Bounds()
	rect := image.Rect(0, 0, bounds.Dx()*2, bounds.Dy()*2)
	dst := image.NewRGBA(rect)
	draw.ApproxBiLinear.Scale(dst, rect, img, bounds, draw.Over, nil)
	return dst
}
