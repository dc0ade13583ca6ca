package grayscale

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/suyashkumar/dicom/pkg/frame"

	"github.com/JeffCorp/dicom-topng/decoders/types"
)

func nativeFrame(rows, cols int, samples []int) *frame.Frame {
	data := make([][]int, len(samples))
	for i, s := range samples {
		data[i] = []int{s}
	}
	return &frame.Frame{
		Encapsulated: false,
		NativeData: frame.NativeFrame{
			BitsPerSample: 16,
			Rows:          rows,
			Cols:          cols,
			Data:          data,
		},
	}
}

func decodeToGray(t *testing.T, result types.DecoderResult) image.Image {
	t.Helper()
	img, err := png.Decode(result.Buffer)
	assert.NoError(t, err)
	return img
}

func grayAt(img image.Image, x, y int) uint8 {
	return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
}

func TestDecodeFrame_Normalizes(t *testing.T) {
	fr := nativeFrame(2, 2, []int{0, 51, 102, 255})
	info := types.FrameInfo{PhotometricInterpretation: "MONOCHROME2", BitsAllocated: 16}

	result, err := DecodeFrame(fr, info, types.Config{})
	assert.NoError(t, err)

	img := decodeToGray(t, result)
	assert.Equal(t, uint8(0), grayAt(img, 0, 0))
	assert.Equal(t, uint8(51), grayAt(img, 1, 0))
	assert.Equal(t, uint8(102), grayAt(img, 0, 1))
	assert.Equal(t, uint8(255), grayAt(img, 1, 1))
}

func TestDecodeFrame_Windowing(t *testing.T) {
	fr := nativeFrame(2, 2, []int{0, 100, 200, 300})
	info := types.FrameInfo{PhotometricInterpretation: "MONOCHROME2", BitsAllocated: 16}

	center, width := 150, 100
	config := types.Config{WindowCenter: &center, WindowWidth: &width}

	result, err := DecodeFrame(fr, info, config)
	assert.NoError(t, err)

	// clip to [100, 200], then min-max normalize
	img := decodeToGray(t, result)
	assert.Equal(t, uint8(0), grayAt(img, 0, 0))
	assert.Equal(t, uint8(0), grayAt(img, 1, 0))
	assert.Equal(t, uint8(255), grayAt(img, 0, 1))
	assert.Equal(t, uint8(255), grayAt(img, 1, 1))
}

func TestDecodeFrame_FlatFrameIsBlack(t *testing.T) {
	fr := nativeFrame(1, 3, []int{7, 7, 7})
	info := types.FrameInfo{PhotometricInterpretation: "MONOCHROME2", BitsAllocated: 16}

	result, err := DecodeFrame(fr, info, types.Config{})
	assert.NoError(t, err)

	img := decodeToGray(t, result)
	for x := 0; x < 3; x++ {
		assert.Equal(t, uint8(0), grayAt(img, x, 0))
	}
}

func TestDecodeFrame_Monochrome1Inverts(t *testing.T) {
	fr := nativeFrame(1, 2, []int{0, 255})
	info := types.FrameInfo{PhotometricInterpretation: "MONOCHROME1", BitsAllocated: 16}

	result, err := DecodeFrame(fr, info, types.Config{})
	assert.NoError(t, err)

	img := decodeToGray(t, result)
	assert.Equal(t, uint8(255), grayAt(img, 0, 0))
	assert.Equal(t, uint8(0), grayAt(img, 1, 0))
}

func TestDecodeFrame_SignedPixels(t *testing.T) {
	// 0xFFFF is -1 in two's complement and must sort below 0 and 1
	fr := nativeFrame(1, 3, []int{0xFFFF, 0, 1})
	info := types.FrameInfo{
		PhotometricInterpretation: "MONOCHROME2",
		BitsAllocated:             16,
		PixelRepresentation:       1,
	}

	result, err := DecodeFrame(fr, info, types.Config{})
	assert.NoError(t, err)

	img := decodeToGray(t, result)
	assert.Equal(t, uint8(0), grayAt(img, 0, 0))
	assert.Equal(t, uint8(127), grayAt(img, 1, 0))
	assert.Equal(t, uint8(255), grayAt(img, 2, 0))
}

func TestDecodeFrame_DoubleSize(t *testing.T) {
	fr := nativeFrame(2, 2, []int{0, 255, 255, 0})
	info := types.FrameInfo{PhotometricInterpretation: "MONOCHROME2", BitsAllocated: 16}

	result, err := DecodeFrame(fr, info, types.Config{DoubleImageSize: true})
	assert.NoError(t, err)

	img := decodeToGray(t, result)
	bounds := img.Bounds()
	assert.Equal(t, 4, bounds.Dx())
	assert.Equal(t, 4, bounds.Dy())
}

func TestDecodeFrame_IncompletePixelData(t *testing.T) {
	fr := nativeFrame(2, 2, []int{1, 2})

	_, err := DecodeFrame(fr, types.FrameInfo{PhotometricInterpretation: "MONOCHROME2"}, types.Config{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete pixel data")
}

func encapsulatedFrame(t *testing.T, img image.Image) *frame.Frame {
	t.Helper()
	var buf bytes.Buffer
	assert.NoError(t, jpeg.Encode(&buf, img, nil))
	return &frame.Frame{
		Encapsulated:     true,
		EncapsulatedData: frame.EncapsulatedFrame{Data: buf.Bytes()},
	}
}

func uniformGray(width, height int, value uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = value
	}
	return img
}

func TestDecodeFrame_EncapsulatedMonochrome2(t *testing.T) {
	fr := encapsulatedFrame(t, uniformGray(4, 4, 40))
	info := types.FrameInfo{PhotometricInterpretation: "MONOCHROME2", BitsAllocated: 8}

	result, err := DecodeFrame(fr, info, types.Config{})
	assert.NoError(t, err)

	img := decodeToGray(t, result)
	bounds := img.Bounds()
	assert.Equal(t, 4, bounds.Dx())
	assert.Equal(t, 4, bounds.Dy())
	// JPEG is lossy, allow a small tolerance around the source value
	assert.InDelta(t, 40, int(grayAt(img, 1, 1)), 3)
}

func TestDecodeFrame_EncapsulatedMonochrome1Inverts(t *testing.T) {
	fr := encapsulatedFrame(t, uniformGray(4, 4, 0))
	info := types.FrameInfo{PhotometricInterpretation: "MONOCHROME1", BitsAllocated: 8}

	result, err := DecodeFrame(fr, info, types.Config{})
	assert.NoError(t, err)

	img := decodeToGray(t, result)
	assert.InDelta(t, 255, int(grayAt(img, 2, 2)), 3)
}

func TestDecodeFrame_EncapsulatedCorrupt(t *testing.T) {
	fr := &frame.Frame{
		Encapsulated:     true,
		EncapsulatedData: frame.EncapsulatedFrame{Data: []byte("not a jpeg stream")},
	}
	info := types.FrameInfo{PhotometricInterpretation: "MONOCHROME2", BitsAllocated: 8}

	_, err := DecodeFrame(fr, info, types.Config{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot decode encapsulated frame")
}

func TestDecodeFrame_InvalidDimensions(t *testing.T) {
	fr := nativeFrame(0, 0, nil)

	_, err := DecodeFrame(fr, types.FrameInfo{PhotometricInterpretation: "MONOCHROME2"}, types.Config{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid frame dimensions")
}
