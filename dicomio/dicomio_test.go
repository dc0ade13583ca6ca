package dicomio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.dcm"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid DICOM file")
}

func TestParse_GarbageIsErrorNotPanic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.dcm")
	assert.NoError(t, os.WriteFile(path, []byte("this is not dicom at all"), 0o644))

	assert.NotPanics(t, func() {
		_, err := Parse(path)
		assert.Error(t, err)
	})
}

func TestParseHeader_GarbageIsErrorNotPanic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.dcm")
	assert.NoError(t, os.WriteFile(path, []byte{0x00, 0x01, 0x02, 0x03}, 0o644))

	assert.NotPanics(t, func() {
		_, err := ParseHeader(path)
		assert.Error(t, err)
	})
}
