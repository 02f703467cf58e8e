// internal/logging/logging.go
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Options selects how the logger writes.
type Options struct {
	Verbose bool   // debug level instead of info
	Format  string // "text" or "json"
	File    string // optional log file, appended to alongside stdout
}

// New builds a logrus logger. The returned closer releases the log file and
// is safe to call when no file was opened.
func New(opts Options, stdout io.Writer) (*logrus.Logger, io.Closer, error) {
	if stdout == nil {
		stdout = os.Stdout
	}

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	if opts.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	switch opts.Format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	var closer io.Closer = nopCloser{}
	out := stdout
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(stdout, f)
		closer = f
	}
	logger.SetOutput(out)

	return logger, closer, nil
}

// Discard returns a logger that drops everything, for tests and callers
// that do not configure logging.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
