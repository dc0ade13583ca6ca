package format

const (
	// PreambleSize is the size of the DICOM file preamble in bytes.
	PreambleSize = 128

	// FormatDICOM identifies a detected DICOM file.
	FormatDICOM = "DICOM"

	// FormatUnknown identifies a file that could not be detected.
	FormatUnknown = "unknown"
)

// MagicWord follows the 128-byte preamble in a standard DICOM file.
var MagicWord = []byte("DICM")
