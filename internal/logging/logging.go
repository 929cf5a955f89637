// Package logging builds the process logger: coloured console output and an
// optional rotating log file.
package logging

import (
	"fmt"
	"io"
	"os"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	Level   string
	File    string    // rotating log file, empty disables it
	Console io.Writer // defaults to os.Stderr
}

// New returns a logger writing to the console and, when set, to Options.File.
func New(opts Options) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&formatter.Formatter{
		NoColors:        opts.Console != nil || opts.File != "",
		TimestampFormat: "2006-01-02 15:04:05",
		HideKeys:        false,
		FieldsOrder:     []string{"run_id", "object", "frame"},
	})

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{console}

	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			LocalTime:  true,
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
		})
	}

	logger.SetOutput(io.MultiWriter(writers...))
	return logger, nil
}
