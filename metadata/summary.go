package metadata

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/suyashkumar/dicom/pkg/tag"
)

// WriteSummary prints a human-readable overview of the file's key tags.
func (r *TagReader) WriteSummary(w io.Writer) {
	fmt.Fprintln(w, "=== DICOM File Summary ===")
	fmt.Fprintf(w, "Filename: %s\n", filepath.Base(r.path))

	fmt.Fprintln(w, "\nPatient Information:")
	writeSortedMap(w, r.PatientInfo())

	fmt.Fprintln(w, "\nStudy Information:")
	writeSortedMap(w, r.StudyInfo())

	fmt.Fprintln(w, "\nImage Information:")
	fmt.Fprintf(w, "Modality: %s\n", orDefault(r.stringValue(tag.Modality)))
	rows, _ := r.intValue(tag.Rows)
	cols, _ := r.intValue(tag.Columns)
	fmt.Fprintf(w, "Image Size: %dx%d\n", rows, cols)
	bits, _ := r.intValue(tag.BitsAllocated)
	fmt.Fprintf(w, "Bits Allocated: %d\n", bits)
	fmt.Fprintf(w, "Number of frames: %s\n", r.NumberOfFrames())
}

// NumberOfFrames returns the frame count tag, defaulting to "1" when the
// tag is absent (single-frame files commonly omit it).
func (r *TagReader) NumberOfFrames() string {
	if frames := r.stringValue(tag.NumberOfFrames); frames != "" {
		return frames
	}
	return "1"
}

func writeSortedMap(w io.Writer, info map[string]string) {
	keys := make([]string, 0, len(info))
	for key := range info {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "%s: %s\n", key, info[key])
	}
}
