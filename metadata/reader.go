// Package metadata extracts and rewrites DICOM header information:
// patient/study tag maps, CSV rows for converted images, a JSON dump of
// the full tag dictionary, and laterality/view write-back.
package metadata

import (
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/JeffCorp/dicom-topng/dicomio"
)

// TagReader exposes header information from a single DICOM file.
type TagReader struct {
	path string
	ds   dicom.Dataset
}

// NewTagReader opens a DICOM file for metadata access. Pixel data is
// skipped.
func NewTagReader(path string) (*TagReader, error) {
	ds, err := dicomio.ParseHeader(path)
	if err != nil {
		return nil, err
	}
	return &TagReader{path: path, ds: ds}, nil
}

func (r *TagReader) Path() string {
	return r.path
}

// PatientInfo returns the patient identification tags. Missing tags map
// to empty strings.
func (r *TagReader) PatientInfo() map[string]string {
	return map[string]string{
		"PatientName":      r.stringValue(tag.PatientName),
		"PatientID":        r.stringValue(tag.PatientID),
		"PatientBirthDate": r.stringValue(tag.PatientBirthDate),
		"PatientSex":       r.stringValue(tag.PatientSex),
		"PatientAge":       r.stringValue(tag.PatientAge),
		"PatientWeight":    r.stringValue(tag.PatientWeight),
	}
}

// StudyInfo returns the study tags, with laterality and view position
// refined from the acquisition device processing description when the
// dedicated tags are absent or ambiguous.
func (r *TagReader) StudyInfo() map[string]string {
	info := map[string]string{
		"StudyDate":              r.stringValue(tag.StudyDate),
		"StudyTime":              r.stringValue(tag.StudyTime),
		"StudyDescription":       r.stringValue(tag.StudyDescription),
		"StudyID":                r.stringValue(tag.StudyID),
		"AccessionNumber":        r.stringValue(tag.AccessionNumber),
		"ReferringPhysicianName": r.stringValue(tag.ReferringPhysicianName),
		"Laterality":             r.stringValue(tag.Laterality),
		"ViewPosition":           r.stringValue(tag.ViewPosition),
	}
	refineStudyInfo(info, r.stringValue(tag.AcquisitionDeviceProcessingDescription))
	return info
}

// refineStudyInfo overrides view position and laterality from the
// acquisition description. Mammography devices commonly encode "R CC",
// "L MLO" and similar there instead of the dedicated tags.
func refineStudyInfo(info map[string]string, acquisitionDesc string) {
	if acquisitionDesc == "" {
		return
	}

	if strings.Contains(acquisitionDesc, "MLO") {
		info["ViewPosition"] = "MLO"
	} else if strings.Contains(acquisitionDesc, "CC") {
		info["ViewPosition"] = "CC"
	}

	if strings.Contains(acquisitionDesc, "R ") {
		info["Laterality"] = "R"
	} else if strings.Contains(acquisitionDesc, "L ") {
		info["Laterality"] = "L"
	}
}

// stringValue returns the first string value of a tag, trimmed, or "".
func (r *TagReader) stringValue(t tag.Tag) string {
	el, err := r.ds.FindElementByTag(t)
	if err != nil {
		return ""
	}
	if el.Value.ValueType() != dicom.Strings {
		return ""
	}
	values := dicom.MustGetStrings(el.Value)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

// intValue returns the first integer value of a tag.
func (r *TagReader) intValue(t tag.Tag) (int, bool) {
	el, err := r.ds.FindElementByTag(t)
	if err != nil {
		return 0, false
	}
	if el.Value.ValueType() != dicom.Ints {
		return 0, false
	}
	values := dicom.MustGetInts(el.Value)
	if len(values) == 0 {
		return 0, false
	}
	return values[0], true
}
