// Package trace connects filter evaluation to structured logging.
package trace

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the level, format and destination of a logger.
type Config struct {
	Level      string
	LogType    string
	AddSource  bool
	SourcePath string

	// Output defaults to os.Stderr.
	Output io.Writer
}

// New builds a text or JSON slog logger from conf.
func New(conf Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource:   conf.AddSource,
		Level:       ParseLevel(conf.Level),
		ReplaceAttr: replaceAttr(conf.SourcePath),
	}

	out := conf.Output
	if out == nil {
		out = os.Stderr
	}

	return slog.New(newHandler(conf.LogType, out, opts))
}

// ParseLevel maps debug, info, warn and error to slog levels, ignoring
// case. Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newHandler(logType string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(logType, "json") {
		return slog.NewJSONHandler(out, opts)
	}
	return slog.NewTextHandler(out, opts)
}

// replaceAttr shortens source locations to the part after sourcePath.
func replaceAttr(sourcePath string) func(groups []string, a slog.Attr) slog.Attr {
	return func(_ []string, attr slog.Attr) slog.Attr {
		if attr.Key != slog.SourceKey {
			return attr
		}

		source, ok := attr.Value.Any().(*slog.Source)
		if !ok || source == nil {
			return attr
		}

		file := source.File
		if sourcePath != "" {
			if index := strings.Index(file, sourcePath); index >= 0 {
				file = file[index+len(sourcePath):]
			}
		}

		return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", file, source.Line))
	}
}
