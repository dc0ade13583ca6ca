package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/JeffCorp/dicom-topng/converter"
	"github.com/JeffCorp/dicom-topng/logging"
)

func main() {
	dirFlag := flag.String("d", "", "Directory containing DICOM files")
	fileFlag := flag.String("f", "", "Path(s) to one or more DICOM files, comma separated")
	outputFlag := flag.String("o", "", "Directory for output PNG and CSV files")
	csvFlag := flag.Bool("csv", false, "Write metadata to a CSV file")
	addMetadataFlag := flag.Bool("add-metadata", false, "Write derived laterality/view metadata back into the DICOM files")
	deleteBackupFlag := flag.Bool("delete-backup", false, "Delete .bak backup files after conversion")
	centerFlag := flag.Int("center", 0, "Window center for contrast adjustment (requires -width)")
	widthFlag := flag.Int("width", 0, "Window width for contrast adjustment (requires -center)")
	doubleFlag := flag.Bool("double", false, "Double the image size")
	verboseFlag := flag.Bool("verbose", false, "Verbose output")

	flag.Parse()

	if (*dirFlag == "") == (*fileFlag == "") {
		fmt.Println("Usage: dicom-topng [options] (-d <dicom_dir> | -f <dicom_file>[,<dicom_file>...])")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Error: exactly one of -d or -f must be given")
		os.Exit(1)
	}

	windowCenter, windowWidth := windowArgs(centerFlag, widthFlag)
	if (windowCenter == nil) != (windowWidth == nil) {
		fmt.Println("Error: -center and -width must be given together")
		os.Exit(1)
	}

	log := logging.New(*verboseFlag)

	var inputs []string
	if *fileFlag != "" {
		inputs = strings.Split(*fileFlag, ",")
	}

	conv := converter.NewConverter(log)
	opts := converter.ConvertOptions{
		InputDir:     *dirFlag,
		InputFiles:   inputs,
		OutputDir:    *outputFlag,
		WriteCSV:     *csvFlag,
		AddMetadata:  *addMetadataFlag,
		DeleteBackup: *deleteBackupFlag,
		WindowCenter: windowCenter,
		WindowWidth:  windowWidth,
		DoubleSize:   *doubleFlag,
		Verbose:      *verboseFlag,
	}

	if err := conv.Convert(opts); err != nil {
		log.Fatal().Err(err).Msg("conversion failed")
	}
}

// windowArgs reports the windowing flags only when the user set them, so
// that legitimate zero and negative centers stay usable.
func windowArgs(center, width *int) (*int, *int) {
	var centerSet, widthSet bool
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "center":
			centerSet = true
		case "width":
			widthSet = true
		}
	})

	var c, w *int
	if centerSet {
		c = center
	}
	if widthSet {
		w = width
	}
	return c, w
}
