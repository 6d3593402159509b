package options

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/team6458/powerup/internal/robot"
	"github.com/team6458/powerup/internal/robot/auto"
	"github.com/team6458/powerup/internal/robot/fms"
	"github.com/team6458/powerup/internal/robot/hal"
	"github.com/team6458/powerup/pkg/log"
)

// gameDataEnv is consulted when neither a static message nor a drop file is
// configured.
const gameDataEnv = "POWERUP_GAME_DATA"

// RobotOptions collects every tunable of the powerup-robot binary. Values
// come from flags, optionally overridden by a YAML config file.
type RobotOptions struct {
	ConfigFile string `json:"-" mapstructure:"-"`

	Position         string        `json:"position" mapstructure:"position"`
	TickPeriod       time.Duration `json:"tick-period" mapstructure:"tick-period"`
	TelemetryAddr    string        `json:"telemetry-addr" mapstructure:"telemetry-addr"`
	CalibrateOnStart bool          `json:"calibrate-on-start" mapstructure:"calibrate-on-start"`

	// GameData forces a static field message; GameDataFile watches a drop
	// file instead. With neither set, the message comes from the
	// POWERUP_GAME_DATA environment variable.
	GameData     string `json:"game-data" mapstructure:"game-data"`
	GameDataFile string `json:"game-data-file" mapstructure:"game-data-file"`

	Throttle            float64 `json:"throttle" mapstructure:"throttle"`
	LastStretchThrottle float64 `json:"last-stretch-throttle" mapstructure:"last-stretch-throttle"`

	Log *log.Options `json:"log" mapstructure:"log"`
}

// NewRobotOptions returns options with match-ready defaults.
func NewRobotOptions() *RobotOptions {
	params := auto.DefaultParams()
	return &RobotOptions{
		Position:            "centre",
		TickPeriod:          20 * time.Millisecond,
		TelemetryAddr:       ":9090",
		CalibrateOnStart:    true,
		Throttle:            params.Throttle,
		LastStretchThrottle: params.LastStretchThrottle,
		Log:                 log.NewOptions(),
	}
}

// AddFlags binds the options to the flag set.
func (o *RobotOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ConfigFile, "config", "c", o.ConfigFile, "Path to a YAML config file overriding the flag defaults.")
	fs.StringVar(&o.Position, "position", o.Position, "Alliance starting position: left, centre or right.")
	fs.DurationVar(&o.TickPeriod, "tick-period", o.TickPeriod, "Control loop tick interval.")
	fs.StringVar(&o.TelemetryAddr, "telemetry-addr", o.TelemetryAddr, "Listen address of the telemetry server; empty disables it.")
	fs.BoolVar(&o.CalibrateOnStart, "calibrate-on-start", o.CalibrateOnStart, "Run the blocking gyro calibration during startup.")
	fs.StringVar(&o.GameData, "game-data", o.GameData, "Force a static field message (e.g. LRL).")
	fs.StringVar(&o.GameDataFile, "game-data-file", o.GameDataFile, "Watch a file for the field message.")
	fs.Float64Var(&o.Throttle, "throttle", o.Throttle, "Throttle cap for the main autonomous drive.")
	fs.Float64Var(&o.LastStretchThrottle, "last-stretch-throttle", o.LastStretchThrottle, "Throttle cap for the final approach segment.")

	o.Log.AddFlags(fs)
}

// Complete layers the config file, when given, over the flag values.
func (o *RobotOptions) Complete() error {
	if o.ConfigFile == "" {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(o.ConfigFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := v.Unmarshal(o); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Validate checks the combined option values.
func (o *RobotOptions) Validate() error {
	var errs []error

	if _, err := auto.ParsePosition(o.Position); err != nil {
		errs = append(errs, err)
	}
	if o.TickPeriod <= 0 {
		errs = append(errs, fmt.Errorf("tick period must be positive, got %v", o.TickPeriod))
	}
	if o.Throttle <= 0 || o.Throttle > 1 {
		errs = append(errs, fmt.Errorf("throttle must be in (0, 1], got %v", o.Throttle))
	}
	if o.LastStretchThrottle <= 0 || o.LastStretchThrottle > 1 {
		errs = append(errs, fmt.Errorf("last stretch throttle must be in (0, 1], got %v", o.LastStretchThrottle))
	}
	if o.GameData != "" && o.GameDataFile != "" {
		errs = append(errs, errors.New("game-data and game-data-file are mutually exclusive"))
	}
	for _, err := range o.Log.Validate() {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Config bridges the options to the robot configuration. The simulated HAL
// stands in for hardware; real drivers replace it at the deployment boundary.
func (o *RobotOptions) Config() (*robot.Config, error) {
	position, err := auto.ParsePosition(o.Position)
	if err != nil {
		return nil, err
	}

	var source fms.Source
	switch {
	case o.GameData != "":
		source = &fms.Static{Raw: o.GameData, Present: true}
	case o.GameDataFile != "":
		source = fms.NewFileSource(o.GameDataFile)
	default:
		source = fms.NewEnv(gameDataEnv)
	}

	params := auto.DefaultParams()
	params.Throttle = o.Throttle
	params.LastStretchThrottle = o.LastStretchThrottle

	sim := hal.NewSim()
	if o.CalibrateOnStart {
		sim.CalibrationDelay = 2 * time.Second
	}

	return &robot.Config{
		Position:         position,
		TickPeriod:       o.TickPeriod,
		TelemetryAddr:    o.TelemetryAddr,
		Params:           params,
		CalibrateOnStart: o.CalibrateOnStart,
		Drivetrain:       sim,
		Gyro:             sim,
		Source:           source,
	}, nil
}
