package cli

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// newLogger builds the console logger used by every command.
func newLogger(w io.Writer, level string, debug bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), errors.Errorf("invalid log level %q: %w", level, err)
	}
	if debug && lvl > zerolog.DebugLevel {
		lvl = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: os.Getenv("NO_COLOR") != ""}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// attachLogger puts the configured logger on the command's context.
func attachLogger(cmd *cobra.Command) error {
	logger, err := newLogger(cmd.ErrOrStderr(), logLevel, verbose)
	if err != nil {
		return err
	}
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}
