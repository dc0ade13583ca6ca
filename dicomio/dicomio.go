// Package dicomio wraps the DICOM parser so that library panics on
// malformed inputs surface as ordinary errors.
package dicomio

import (
	"fmt"

	"github.com/suyashkumar/dicom"
)

// Parse reads a complete DICOM file, pixel data included.
func Parse(path string) (dicom.Dataset, error) {
	return safeParse(path)
}

// ParseHeader reads only the tag dictionary, skipping pixel data. Use this
// for metadata extraction where decoding the image would be wasted work.
func ParseHeader(path string) (dicom.Dataset, error) {
	return safeParse(path, dicom.SkipPixelData())
}

func safeParse(path string, opts ...dicom.ParseOption) (ds dicom.Dataset, err error) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			err = fmt.Errorf("invalid DICOM file %s: %v", path, panicErr)
		}
	}()

	ds, err = dicom.ParseFile(path, nil, opts...)
	if err != nil {
		return dicom.Dataset{}, fmt.Errorf("invalid DICOM file %s: %w", path, err)
	}
	return ds, nil
}
