package metadata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/JeffCorp/dicom-topng/fileutils"
)

// frameSuffix matches the _f<NNN> suffix appended to per-frame PNGs of
// multi-frame files.
var frameSuffix = regexp.MustCompile(`_f\d{3}$`)

var csvHeader = []string{"patient_id", "exam_id", "laterality", "view", "file_path"}

// Row is one CSV line describing a converted image.
type Row struct {
	PatientID  string
	ExamID     int
	Laterality string
	View       string
	FilePath   string
}

// WriteCSV writes patient and study information for the given PNG files.
// perFile selects the naming used for explicit file lists
// (patient_info.csv) versus directory conversions (<dirname>.csv).
// Returns the CSV path, or "" when there was nothing to write.
func WriteCSV(pngFiles []string, dicomPath string, perFile bool, savePath string, log zerolog.Logger) (string, error) {
	if len(pngFiles) == 0 {
		log.Warn().Msg("no PNG files found for writing to CSV")
		return "", nil
	}

	dicomPath = strings.TrimRight(dicomPath, "/\\")
	csvPath := csvOutputPath(dicomPath, perFile, savePath)
	if err := fileutils.EnsureDir(filepath.Dir(csvPath)); err != nil {
		return "", err
	}

	rows := BuildRows(pngFiles, dicomPath, log)

	file, err := os.Create(csvPath)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file %s: %w", csvPath, err)
	}
	defer file.Close()

	if err := WriteRows(file, rows); err != nil {
		return "", err
	}

	log.Info().Str("path", csvPath).Msg("CSV file saved")
	return csvPath, nil
}

func csvOutputPath(dicomPath string, perFile bool, savePath string) string {
	if perFile {
		if savePath != "" {
			return filepath.Join(savePath, "patient_info.csv")
		}
		return filepath.Join("output", "patient_info.csv")
	}
	name := filepath.Base(dicomPath) + ".csv"
	if savePath != "" {
		return filepath.Join(savePath, name)
	}
	return filepath.Join("output", name)
}

// sourceRef pairs a source DICOM file with the first PNG derived from it.
type sourceRef struct {
	DicomFile string
	PNGFile   string
}

// groupSourceFiles maps PNGs back to their source DICOM files, collapsing
// the per-frame PNGs of a multi-frame file into a single entry.
func groupSourceFiles(pngFiles []string, dicomDir string) []sourceRef {
	seen := make(map[string]bool)
	refs := make([]sourceRef, 0, len(pngFiles))
	for _, png := range pngFiles {
		base := strings.TrimSuffix(filepath.Base(png), filepath.Ext(png))
		base = frameSuffix.ReplaceAllString(base, "")
		dicomFile := filepath.Join(dicomDir, base+".dcm")
		if seen[dicomFile] {
			continue
		}
		seen[dicomFile] = true
		refs = append(refs, sourceRef{DicomFile: dicomFile, PNGFile: png})
	}
	return refs
}

// BuildRows reads the source DICOM of each PNG and assembles CSV rows,
// one per source file. Files that fail to parse are logged and skipped.
func BuildRows(pngFiles []string, dicomDir string, log zerolog.Logger) []Row {
	refs := groupSourceFiles(pngFiles, dicomDir)
	rows := make([]Row, 0, len(refs))
	for _, ref := range refs {
		reader, err := NewTagReader(ref.DicomFile)
		if err != nil {
			log.Error().Err(err).Str("file", ref.DicomFile).Msg("failed to process file for CSV")
			continue
		}

		patientInfo := reader.PatientInfo()
		studyInfo := reader.StudyInfo()

		rows = append(rows, Row{
			PatientID:  orDefault(patientInfo["PatientID"]),
			ExamID:     0,
			Laterality: orDefault(studyInfo["Laterality"]),
			View:       orDefault(studyInfo["ViewPosition"]),
			FilePath:   filepath.ToSlash(ref.PNGFile),
		})
	}
	return rows
}

// WriteRows writes the header and rows in the fixed column order.
func WriteRows(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.PatientID,
			strconv.Itoa(row.ExamID),
			row.Laterality,
			row.View,
			row.FilePath,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func orDefault(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
