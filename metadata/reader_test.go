package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseStudyInfo() map[string]string {
	return map[string]string{
		"Laterality":   "",
		"ViewPosition": "",
	}
}

func TestRefineStudyInfo_Empty(t *testing.T) {
	info := baseStudyInfo()
	refineStudyInfo(info, "")
	assert.Equal(t, "", info["Laterality"])
	assert.Equal(t, "", info["ViewPosition"])
}

func TestRefineStudyInfo_MLORight(t *testing.T) {
	info := baseStudyInfo()
	refineStudyInfo(info, "R MLO")
	assert.Equal(t, "R", info["Laterality"])
	assert.Equal(t, "MLO", info["ViewPosition"])
}

func TestRefineStudyInfo_CCLeft(t *testing.T) {
	info := baseStudyInfo()
	refineStudyInfo(info, "L CC")
	assert.Equal(t, "L", info["Laterality"])
	assert.Equal(t, "CC", info["ViewPosition"])
}

func TestRefineStudyInfo_MLOWinsOverCC(t *testing.T) {
	info := baseStudyInfo()
	refineStudyInfo(info, "R MLO CC")
	assert.Equal(t, "MLO", info["ViewPosition"])
}

func TestRefineStudyInfo_OverridesExisting(t *testing.T) {
	info := map[string]string{
		"Laterality":   "L",
		"ViewPosition": "AP",
	}
	refineStudyInfo(info, "R MLO")
	assert.Equal(t, "R", info["Laterality"])
	assert.Equal(t, "MLO", info["ViewPosition"])
}

func TestRefineStudyInfo_NoMarkers(t *testing.T) {
	info := map[string]string{
		"Laterality":   "L",
		"ViewPosition": "AP",
	}
	refineStudyInfo(info, "STANDARD PROTOCOL")
	assert.Equal(t, "L", info["Laterality"])
	assert.Equal(t, "AP", info["ViewPosition"])
}

func TestNewTagReader_MissingFile(t *testing.T) {
	_, err := NewTagReader("does/not/exist.dcm")
	assert.Error(t, err)
}
