package metadata

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/JeffCorp/dicom-topng/fileutils"
)

// TagEntry is one element of the full metadata dump.
type TagEntry struct {
	Value interface{} `json:"value"`
	VR    string      `json:"VR"`
	Tag   string      `json:"tag"`
}

// AllMetadata returns every non-sequence element keyed by its dictionary
// name. Private tags without a dictionary entry are keyed by their
// (gggg,eeee) number.
func (r *TagReader) AllMetadata() map[string]TagEntry {
	result := make(map[string]TagEntry)
	for _, el := range r.ds.Elements {
		if el.Tag == tag.PixelData {
			continue
		}
		switch el.Value.ValueType() {
		case dicom.Sequences, dicom.SequenceItem, dicom.PixelData:
			continue
		}

		tagNumber := fmt.Sprintf("(%04x,%04x)", el.Tag.Group, el.Tag.Element)
		name := tagNumber
		if info, err := tag.Find(el.Tag); err == nil && info.Name != "" {
			name = info.Name
		}

		result[name] = TagEntry{
			Value: el.Value.GetValue(),
			VR:    el.RawValueRepresentation,
			Tag:   tagNumber,
		}
	}
	return result
}

// SaveJSON writes the full metadata dump. An empty outputPath derives
// <base>_metadata.json next to the DICOM file. Returns the path written.
func (r *TagReader) SaveJSON(outputPath string) (string, error) {
	if outputPath == "" {
		outputPath = fileutils.GenerateOutputFilename(r.path, "_metadata.json")
	}

	data, err := json.MarshalIndent(r.AllMetadata(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata for %s: %w", r.path, err)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write metadata file %s: %w", outputPath, err)
	}
	return outputPath, nil
}
