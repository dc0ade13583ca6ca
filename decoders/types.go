package decoders

import (
	"github.com/suyashkumar/dicom/pkg/frame"

	"github.com/JeffCorp/dicom-topng/decoders/types"
)

type Decoder interface {
	Decode(fr *frame.Frame, info types.FrameInfo, config types.Config) (types.DecoderResult, error)
}

// Type aliases so callers outside the package can use the registry without
// importing decoders/types directly.
type Config = types.Config
type FrameInfo = types.FrameInfo
type DecoderResult = types.DecoderResult
