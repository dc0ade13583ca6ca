// Package logging builds the tool's zerolog logger: console output on
// stderr plus a rotating dicom_to_png.log file.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "dicom_to_png.log"

// New returns a logger writing to stderr and to a rotating log file
// (5 MB per file, 5 backups kept).
func New(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	logFile := &lumberjack.Logger{
		Filename:   logFileName,
		MaxSize:    5,
		MaxBackups: 5,
	}

	return zerolog.New(zerolog.MultiLevelWriter(console, logFile)).
		Level(level).
		With().
		Timestamp().
		Logger()
}
