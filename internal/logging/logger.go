// Package logging builds the hclog logger shared by the CLI and the
// materializer.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
	"github.com/pkgtmpl/pkgtmpl/internal/branding"
)

// DefaultLevel is used when neither config nor environment set a level.
const DefaultLevel = "warn"

// New creates a logger writing to output (stderr when nil). JSON output is
// selected with <PREFIX>_JSON_LOG=1; color is only enabled on terminals.
func New(name, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}
	if level == "" {
		level = DefaultLevel
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: os.Getenv(branding.EnvVar("json_log")) == "1",
		Output:     output,
		Color:      colorOption(output),
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}

func colorOption(w io.Writer) hclog.ColorOption {
	f, ok := w.(*os.File)
	if !ok {
		return hclog.ColorOff
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return hclog.AutoColor
	}
	return hclog.ColorOff
}
