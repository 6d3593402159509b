package log

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Supported output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options holds logger configuration.
type Options struct {
	// Level is the minimum level to output: debug, info, warn or error.
	Level string `json:"level" mapstructure:"level"`

	// Format is the output encoding, either "console" or "json".
	Format string `json:"format" mapstructure:"format"`

	// EnableColor colorizes level names in console format.
	EnableColor bool `json:"enable-color" mapstructure:"enable-color"`

	// DisableCaller omits the file:line annotation.
	DisableCaller bool `json:"disable-caller" mapstructure:"disable-caller"`

	// OutputPaths lists sinks; "stdout" and "stderr" are recognized.
	OutputPaths []string `json:"output-paths" mapstructure:"output-paths"`
}

// NewOptions returns Options with defaults suitable for driving a robot from
// a terminal.
func NewOptions() *Options {
	return &Options{
		Level:       "info",
		Format:      FormatConsole,
		EnableColor: true,
		OutputPaths: []string{"stdout"},
	}
}

// Validate checks the option values.
func (o *Options) Validate() []error {
	var errs []error
	if o.Format != FormatConsole && o.Format != FormatJSON {
		errs = append(errs, fmt.Errorf("log: unknown format %q", o.Format))
	}
	return errs
}

// AddFlags binds command-line flags to the Options fields.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Level, "log.level", o.Level, "The minimum log level to output (debug, info, warn, error).")
	fs.StringVar(&o.Format, "log.format", o.Format, "The log output format ('console' or 'json').")
	fs.BoolVar(&o.EnableColor, "log.enable-color", o.EnableColor, "Enable colorized output for the console format.")
	fs.BoolVar(&o.DisableCaller, "log.disable-caller", o.DisableCaller, "Disable the caller field in logs.")
	fs.StringSliceVar(&o.OutputPaths, "log.output-paths", o.OutputPaths, "Log output paths (e.g. 'stdout', '/var/log/robot.log').")
}
