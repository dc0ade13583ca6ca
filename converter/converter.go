package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/JeffCorp/dicom-topng/decoders"
	"github.com/JeffCorp/dicom-topng/dicomio"
	"github.com/JeffCorp/dicom-topng/fileutils"
	"github.com/JeffCorp/dicom-topng/format"
	"github.com/JeffCorp/dicom-topng/metadata"
)

type Converter struct {
	registry *decoders.Registry
	log      zerolog.Logger
}

func NewConverter(log zerolog.Logger) *Converter {
	return &Converter{
		registry: decoders.NewRegistry(),
		log:      log,
	}
}

type ConvertOptions struct {
	// Exactly one of InputDir and InputFiles is set.
	InputDir   string
	InputFiles []string

	OutputDir    string
	WriteCSV     bool
	AddMetadata  bool
	DeleteBackup bool

	WindowCenter *int
	WindowWidth  *int
	DoubleSize   bool
	Verbose      bool
}

func (c *Converter) Convert(opts ConvertOptions) error {
	if err := fileutils.ValidateOutputPath(opts.OutputDir); err != nil {
		return fmt.Errorf("cannot write to output path: %w", err)
	}

	if opts.InputDir != "" {
		return c.convertDirectory(opts)
	}
	return c.convertFiles(opts)
}

// convertDirectory converts every DICOM file directly inside the input
// directory, continuing past per-file failures.
func (c *Converter) convertDirectory(opts ConvertOptions) error {
	info, err := os.Stat(opts.InputDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("invalid directory path: %s", opts.InputDir)
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join("output", filepath.Base(opts.InputDir))
	}
	pngDir := filepath.Join(outputDir, "png")
	if err := fileutils.EnsureDir(pngDir); err != nil {
		return err
	}

	files, err := fileutils.ListDicomFiles(opts.InputDir)
	if err != nil {
		return err
	}

	c.log.Info().Str("directory", opts.InputDir).Msg("starting conversion for files in directory")

	cfg := c.decoderConfig(opts)
	var converted []string
	var dicomFiles []string
	for _, file := range files {
		base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		outputs, err := c.ConvertFile(file, filepath.Join(pngDir, base+".png"), cfg)
		if err != nil {
			c.log.Error().Err(err).Str("file", file).Msg("failed to convert")
			continue
		}
		converted = append(converted, outputs...)
		dicomFiles = append(dicomFiles, file)
		c.log.Info().Str("file", file).Msg("successfully converted")
	}

	c.log.Info().Int("count", len(converted)).Msg("conversion completed")

	if opts.WriteCSV {
		if _, err := metadata.WriteCSV(converted, opts.InputDir, false, opts.OutputDir, c.log); err != nil {
			return err
		}
	}
	c.finishConversion(dicomFiles, opts)
	return nil
}

// convertFiles converts an explicit list of DICOM files. Invalid paths
// are reported but do not abort the remaining conversions.
func (c *Converter) convertFiles(opts ConvertOptions) error {
	pngDir := filepath.Join("output", "png")
	if opts.OutputDir != "" {
		pngDir = filepath.Join(opts.OutputDir, "png")
	}

	cfg := c.decoderConfig(opts)
	var converted []string
	var invalid []string
	for _, file := range opts.InputFiles {
		info, err := os.Stat(file)
		if err != nil || info.IsDir() {
			invalid = append(invalid, file)
			continue
		}

		outputs, err := c.ConvertFile(file, pngDir, cfg)
		if err != nil {
			c.log.Error().Err(err).Str("file", file).Msg("error converting file")
			fmt.Fprintf(os.Stderr, "Error converting file %s: %v\n", file, err)
			continue
		}
		converted = append(converted, outputs...)
		c.log.Info().Str("file", file).Msg("converted to PNG")
	}

	if opts.WriteCSV && len(converted) > 0 {
		dicomDir := filepath.Dir(opts.InputFiles[0])
		if _, err := metadata.WriteCSV(converted, dicomDir, true, opts.OutputDir, c.log); err != nil {
			return err
		}
	}
	c.finishConversion(opts.InputFiles, opts)

	if len(invalid) > 0 {
		c.log.Warn().Strs("files", invalid).Msg("invalid file paths")
		fmt.Fprintf(os.Stderr, "Invalid file paths: %s\n", strings.Join(invalid, ", "))
	}
	return nil
}

// finishConversion runs the optional metadata write-back and backup
// deletion passes over the source DICOM files.
func (c *Converter) finishConversion(dicomFiles []string, opts ConvertOptions) {
	if opts.AddMetadata {
		for _, file := range dicomFiles {
			if err := metadata.AddMetadata(file, c.log); err != nil {
				c.log.Error().Err(err).Str("file", file).Msg("failed to add metadata")
			}
		}
	}
	if opts.DeleteBackup {
		metadata.DeleteBackups(dicomFiles, c.log)
	}
}

// ConvertFile converts one DICOM file, writing one PNG per frame, and
// returns the paths written. outputPath ending in .png is used verbatim;
// anything else is treated as a directory.
func (c *Converter) ConvertFile(path, outputPath string, cfg decoders.Config) ([]string, error) {
	if err := fileutils.ValidateInputFile(path); err != nil {
		return nil, fmt.Errorf("invalid input file %s: %w", path, err)
	}

	header, err := fileutils.ReadHeader(path, format.PreambleSize+len(format.MagicWord))
	if err != nil {
		return nil, err
	}
	if format.DetectFormat(header, path, "") != format.FormatDICOM {
		return nil, fmt.Errorf("not a DICOM file: %s", path)
	}

	ds, err := dicomio.Parse(path)
	if err != nil {
		return nil, err
	}

	pixelDataElement, err := ds.FindElementByTag(tag.PixelData)
	if err != nil {
		return nil, fmt.Errorf("DICOM file does not contain pixel data: %s", path)
	}
	pixelDataInfo := dicom.MustGetPixelDataInfo(pixelDataElement.Value)
	if len(pixelDataInfo.Frames) == 0 {
		return nil, fmt.Errorf("DICOM file does not contain pixel data: %s", path)
	}

	info := c.frameInfo(ds)
	decoder, err := c.registry.GetDecoder(info.PhotometricInterpretation)
	if err != nil {
		return nil, err
	}

	outputs, err := resolveOutputPaths(path, outputPath, len(pixelDataInfo.Frames))
	if err != nil {
		return nil, err
	}

	for i := range pixelDataInfo.Frames {
		result, err := decoder.Decode(pixelDataInfo.Frames[i], info, cfg)
		if err != nil {
			return nil, fmt.Errorf("decode error for %s frame %d: %w", path, i, err)
		}
		if err := c.writeOutput(outputs[i], result); err != nil {
			return nil, err
		}
	}

	return outputs, nil
}

func (c *Converter) writeOutput(outputFileName string, decoded decoders.DecoderResult) error {
	if err := fileutils.WriteOutputBytes(outputFileName, decoded.Buffer.Bytes()); err != nil {
		return fmt.Errorf("cannot write output: %w", err)
	}
	c.log.Info().Str("path", outputFileName).Msg("saved PNG file")
	return nil
}

// frameInfo collects the header fields decoders interpret pixels with.
// Absent tags get the DICOM defaults.
func (c *Converter) frameInfo(ds dicom.Dataset) decoders.FrameInfo {
	info := decoders.FrameInfo{
		PhotometricInterpretation: "MONOCHROME2",
		BitsAllocated:             16,
		SamplesPerPixel:           1,
	}
	if v, ok := datasetString(ds, tag.PhotometricInterpretation); ok {
		info.PhotometricInterpretation = strings.ToUpper(strings.TrimSpace(v))
	}
	if v, ok := datasetInt(ds, tag.BitsAllocated); ok {
		info.BitsAllocated = v
	}
	if v, ok := datasetInt(ds, tag.PixelRepresentation); ok {
		info.PixelRepresentation = v
	}
	if v, ok := datasetInt(ds, tag.SamplesPerPixel); ok {
		info.SamplesPerPixel = v
	}
	return info
}

func (c *Converter) decoderConfig(opts ConvertOptions) decoders.Config {
	return decoders.Config{
		WindowCenter:    opts.WindowCenter,
		WindowWidth:     opts.WindowWidth,
		DoubleImageSize: opts.DoubleSize,
		VerboseOutput:   opts.Verbose,
	}
}

// resolveOutputPaths maps an input file and output spec to per-frame PNG
// paths, creating directories as needed. Multi-frame files get a _f<NNN>
// suffix per frame.
func resolveOutputPaths(inputFile, outputPath string, frames int) ([]string, error) {
	base := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))

	var dir, name string
	if outputPath == "" {
		dir = filepath.Join("output", "png")
		name = base + ".png"
	} else if strings.HasSuffix(strings.ToLower(outputPath), ".png") {
		dir = filepath.Dir(outputPath)
		name = filepath.Base(outputPath)
	} else {
		dir = outputPath
		name = base + ".png"
	}

	if err := fileutils.EnsureDir(dir); err != nil {
		return nil, err
	}

	if frames == 1 {
		return []string{filepath.Join(dir, name)}, nil
	}

	stem := strings.TrimSuffix(name, ".png")
	paths := make([]string, frames)
	for i := 0; i < frames; i++ {
		paths[i] = filepath.Join(dir, fmt.Sprintf("%s_f%03d.png", stem, i))
	}
	return paths, nil
}

func datasetString(ds dicom.Dataset, t tag.Tag) (string, bool) {
	el, err := ds.FindElementByTag(t)
	if err != nil || el.Value.ValueType() != dicom.Strings {
		return "", false
	}
	values := dicom.MustGetStrings(el.Value)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func datasetInt(ds dicom.Dataset, t tag.Tag) (int, bool) {
	el, err := ds.FindElementByTag(t)
	if err != nil || el.Value.ValueType() != dicom.Ints {
		return 0, false
	}
	values := dicom.MustGetInts(el.Value)
	if len(values) == 0 {
		return 0, false
	}
	return values[0], true
}
