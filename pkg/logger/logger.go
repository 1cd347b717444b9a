// Package logger builds the zerolog logger shared by the application.
//
//	data, err := logger.New().FromPath("surrealblocks.log").WithLevel("debug").Make()
//	if err != nil {
//		return err
//	}
//	defer data.Close()
//	data.Logger.Info().Msg("started")
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

const (
	permission = 0664
)

type LogBuild struct {
	writer io.Writer
	path   string
	level  string
}

type LogData struct {
	LogFile *os.File
	Logger  zerolog.Logger
}

func New() *LogBuild {
	return &LogBuild{}
}

// FromPath appends records to the file at path. It takes precedence over
// FromBuffer.
func (build *LogBuild) FromPath(path string) *LogBuild {
	build.path = path
	return build
}

func (build *LogBuild) FromBuffer(w io.Writer) *LogBuild {
	build.writer = w
	return build
}

// WithLevel sets the minimum level by name ("debug", "info", ...). The empty
// string keeps the default of info.
func (build *LogBuild) WithLevel(level string) *LogBuild {
	build.level = level
	return build
}

func (build *LogBuild) Make() (logData *LogData, err error) {
	level := zerolog.InfoLevel
	if build.level != "" {
		level, err = zerolog.ParseLevel(build.level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", build.level, err)
		}
	}

	logData = new(LogData)
	var w io.Writer = os.Stderr
	if build.writer != nil {
		w = build.writer
	}
	if build.path != "" {
		logData.LogFile, err = os.OpenFile(build.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = zerolog.SyncWriter(logData.LogFile)
	}
	logData.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	return logData, nil
}

// Close closes the log file, if any.
func (data *LogData) Close() error {
	if data.LogFile == nil {
		return nil
	}
	return data.LogFile.Close()
}
