package config

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds a console logger on stderr at the configured level. When
// a log file is configured, entries are also appended to a rotating file.
// The returned closer releases the file and is never nil.
func NewLogger(cfg *Config, stderr io.Writer) (zerolog.Logger, io.Closer) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	invalid := err != nil || cfg.Log.Level == ""
	if invalid {
		level = zerolog.InfoLevel
	}

	console := zerolog.ConsoleWriter{Out: stderr, NoColor: !isTerminal(stderr)}

	var out io.Writer = console
	var closer io.Closer = nopCloser{}
	if cfg.Log.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(console, file)
		closer = file
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	if invalid && cfg.Log.Level != "" {
		logger.Warn().Str("invalid_level", cfg.Log.Level).Msg("Invalid log level, using default 'info'")
	}
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
