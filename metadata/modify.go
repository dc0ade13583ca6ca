package metadata

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/JeffCorp/dicom-topng/dicomio"
	"github.com/JeffCorp/dicom-topng/fileutils"
)

// AddMetadata derives laterality and view position for a DICOM file and
// writes them back into it: image laterality into (0020,0062) and the SOP
// class UID string into the series description (0008,103e). The original
// file is kept as <path>.bak.
func AddMetadata(path string, log zerolog.Logger) error {
	ds, err := dicomio.Parse(path)
	if err != nil {
		return err
	}

	reader := &TagReader{path: path, ds: ds}
	studyInfo := reader.StudyInfo()

	laterality := reader.stringValue(tag.ImageLaterality)
	if laterality == "" {
		laterality = studyInfo["Laterality"]
	}
	sopClassUID := reader.stringValue(tag.SOPClassUID)

	if err := backupFile(path); err != nil {
		return err
	}

	if err := setStringElement(&ds, tag.ImageLaterality, laterality); err != nil {
		return err
	}
	if err := setStringElement(&ds, tag.SeriesDescription, sopClassUID); err != nil {
		return err
	}

	if err := rewriteFile(path, ds); err != nil {
		return err
	}

	log.Info().Str("file", path).Str("laterality", laterality).Msg("added metadata")
	return nil
}

// DeleteBackups removes the .bak files created by AddMetadata. Missing
// backups are logged as warnings, not errors.
func DeleteBackups(dicomFiles []string, log zerolog.Logger) {
	log.Info().Msg("deleting backup files")
	for _, file := range dicomFiles {
		backup := file + ".bak"
		if err := os.Remove(backup); err != nil {
			if os.IsNotExist(err) {
				log.Warn().Str("file", backup).Msg("backup file not found")
				continue
			}
			log.Error().Err(err).Str("file", backup).Msg("failed to delete backup")
			continue
		}
		log.Info().Str("file", backup).Msg("deleted backup")
	}
}

func backupFile(path string) error {
	data, err := fileutils.ReadInput(path)
	if err != nil {
		return err
	}
	if err := fileutils.WriteOutputBytes(path+".bak", data); err != nil {
		return fmt.Errorf("failed to create backup of %s: %w", path, err)
	}
	return nil
}

// setStringElement replaces the element in place or inserts it in
// ascending tag order, which the DICOM encoding requires.
func setStringElement(ds *dicom.Dataset, t tag.Tag, value string) error {
	el, err := dicom.NewElement(t, []string{value})
	if err != nil {
		return fmt.Errorf("failed to build element %v: %w", t, err)
	}

	for i, existing := range ds.Elements {
		if existing.Tag == t {
			ds.Elements[i] = el
			return nil
		}
	}

	insertAt := len(ds.Elements)
	for i, existing := range ds.Elements {
		if tagLess(t, existing.Tag) {
			insertAt = i
			break
		}
	}
	ds.Elements = append(ds.Elements, nil)
	copy(ds.Elements[insertAt+1:], ds.Elements[insertAt:])
	ds.Elements[insertAt] = el
	return nil
}

func tagLess(a, b tag.Tag) bool {
	if a.Group != b.Group {
		return a.Group < b.Group
	}
	return a.Element < b.Element
}

// rewriteFile writes the dataset to a temp file first so a failed write
// never clobbers the original.
func rewriteFile(path string, ds dicom.Dataset) error {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create temp file %s: %w", tmp, err)
	}

	if err := dicom.Write(file, ds); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write DICOM file %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close temp file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
