// Package logging builds the job's zerolog logger: human-readable lines on
// stderr, mirrored without colors into a log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const timeFormat = "2006-01-02 15:04:05"

// Setup returns a logger writing to console and, when logFile is set, to
// logFile as well. The returned closer closes the log file.
func Setup(console io.Writer, logFile string, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: console, TimeFormat: timeFormat},
	}

	var closer io.Closer = nopCloser{}
	if logFile != "" {
		if dir := filepath.Dir(logFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: timeFormat})
		closer = f
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
