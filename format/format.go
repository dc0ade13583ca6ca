package format

import (
	"path/filepath"
	"strings"
)

// DetectFormat identifies the file type from its header bytes, falling
// back to the file extension. An explicit type hint always wins.
func DetectFormat(data []byte, inputFileName string, fileType string) string {
	if len(fileType) > 0 {
		// don't try to detect when file type is passed
		return fileType
	}

	if matchesMagic(data) {
		return FormatDICOM
	}

	extension := strings.ToUpper(strings.TrimLeft(filepath.Ext(inputFileName), "."))
	if extension == "DCM" || extension == "DICOM" {
		return FormatDICOM
	}

	return FormatUnknown
}
