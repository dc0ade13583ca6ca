package decoders

import (
	"fmt"

	"github.com/suyashkumar/dicom/pkg/frame"

	"github.com/JeffCorp/dicom-topng/decoders/colorimg"
	"github.com/JeffCorp/dicom-topng/decoders/grayscale"
	"github.com/JeffCorp/dicom-topng/decoders/types"
)

type Registry struct {
	decoders map[string]Decoder
}

func NewRegistry() *Registry {
	r := &Registry{
		decoders: make(map[string]Decoder),
	}

	r.Register("MONOCHROME1", &grayscaleDecoder{})
	r.Register("MONOCHROME2", &grayscaleDecoder{})
	// PALETTE COLOR indexes are normalized as raw intensities, matching
	// what the pixel buffer holds before any lookup table is applied.
	r.Register("PALETTE COLOR", &grayscaleDecoder{})
	r.Register("RGB", &colorDecoder{})
	r.Register("YBR_FULL", &colorDecoder{})
	r.Register("YBR_FULL_422", &colorDecoder{})

	return r
}

func (r *Registry) Register(interpretation string, decoder Decoder) {
	r.decoders[interpretation] = decoder
}

// GetDecoder returns a decoder for the given photometric interpretation,
// or an error if not found
func (r *Registry) GetDecoder(interpretation string) (Decoder, error) {
	decoder, exists := r.decoders[interpretation]
	if !exists {
		return nil, fmt.Errorf("unsupported photometric interpretation: %s", interpretation)
	}
	return decoder, nil
}

func (r *Registry) GetSupportedInterpretations() []string {
	interpretations := make([]string, 0, len(r.decoders))
	for interpretation := range r.decoders {
		interpretations = append(interpretations, interpretation)
	}
	return interpretations
}

type grayscaleDecoder struct{}

func (d *grayscaleDecoder) Decode(fr *frame.Frame, info types.FrameInfo, config types.Config) (types.DecoderResult, error) {
	return grayscale.DecodeFrame(fr, info, config)
}

type colorDecoder struct{}

func (d *colorDecoder) Decode(fr *frame.Frame, info types.FrameInfo, config types.Config) (types.DecoderResult, error) {
	return colorimg.DecodeFrame(fr, info, config)
}
