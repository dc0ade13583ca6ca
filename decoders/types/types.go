package types

import "bytes"

type Config struct {
	// WindowCenter and WindowWidth clip pixel intensities before
	// normalization. Both must be set for windowing to apply.
	WindowCenter    *int
	WindowWidth     *int
	DoubleImageSize bool
	VerboseOutput   bool
}

// FrameInfo carries the header fields a decoder needs to interpret raw
// pixel samples.
type FrameInfo struct {
	PhotometricInterpretation string
	BitsAllocated             int
	PixelRepresentation       int
	SamplesPerPixel           int
}

type DecoderResult struct {
	Buffer *bytes.Buffer
}
