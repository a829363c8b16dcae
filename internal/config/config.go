// Package config loads stopwatch settings from an optional YAML file and
// command-line flags. Flags that were set explicitly win over the file.
package config

import (
	"bytes"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/comalice/stopwatch/internal/console"
	"github.com/comalice/stopwatch/realtime"
)

// Flag names.
const (
	FlagConfig    = "config"
	FlagTick      = "tick"
	FlagRaw       = "raw"
	FlagDebug     = "debug"
	FlagLogLevel  = "log-level"
	FlagLogOutput = "log-output"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Tick time.Duration   `yaml:"tick"`
	Raw  console.RawMode `yaml:"raw"`
	Log  LogConfig       `yaml:"log"`
}

type LogConfig struct {
	Debug  bool   `yaml:"debug"`
	Level  string `yaml:"level"`
	Output string `yaml:"output"`
}

// Default returns the built-in settings: one-second ticks, raw keys on
// terminals, warnings to stderr.
func Default() Config {
	return Config{
		Tick: realtime.DefaultTickRate,
		Raw:  console.RawAuto,
		Log: LogConfig{
			Level:  "warn",
			Output: "stderr",
		},
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Tick <= 0 {
		return errors.Wrapf(ErrInvalid, "tick must be positive, got %s", c.Tick)
	}
	if !c.Raw.Valid() {
		return errors.Wrapf(ErrInvalid, "raw must be auto, on or off, got %q", c.Raw)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(ErrInvalid, "log level %q", c.Log.Level)
	}
	if c.Log.Output == "" {
		return errors.Wrap(ErrInvalid, "log output is empty")
	}
	return nil
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "yaml decode")
	}
	return cfg, nil
}

// LoadFile reads and parses a YAML config file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// RegisterFlags adds the stopwatch flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	def := Default()
	fs.StringP(FlagConfig, "c", "", "YAML config file")
	fs.Duration(FlagTick, def.Tick, "interval between ticks")
	fs.String(FlagRaw, string(def.Raw), "single-key input while running: auto, on or off")
	fs.BoolP(FlagDebug, "d", false, "development logging at debug level")
	fs.String(FlagLogLevel, def.Log.Level, "log level: debug, info, warn, error")
	fs.String(FlagLogOutput, def.Log.Output, "log destination: stderr, stdout or a file path")
}

// FromFlags loads the file named by --config, if any, then applies every
// flag the user set explicitly, then validates.
func FromFlags(fs *pflag.FlagSet) (Config, error) {
	cfg := Default()

	path, err := fs.GetString(FlagConfig)
	if err != nil {
		return Config{}, errors.Wrap(err, "config flag")
	}
	if path != "" {
		if cfg, err = LoadFile(path); err != nil {
			return Config{}, err
		}
	}

	if fs.Changed(FlagTick) {
		if cfg.Tick, err = fs.GetDuration(FlagTick); err != nil {
			return Config{}, errors.Wrap(err, "tick flag")
		}
	}
	if fs.Changed(FlagRaw) {
		raw, err := fs.GetString(FlagRaw)
		if err != nil {
			return Config{}, errors.Wrap(err, "raw flag")
		}
		cfg.Raw = console.RawMode(raw)
	}
	if fs.Changed(FlagDebug) {
		if cfg.Log.Debug, err = fs.GetBool(FlagDebug); err != nil {
			return Config{}, errors.Wrap(err, "debug flag")
		}
	}
	if fs.Changed(FlagLogLevel) {
		if cfg.Log.Level, err = fs.GetString(FlagLogLevel); err != nil {
			return Config{}, errors.Wrap(err, "log-level flag")
		}
	}
	if fs.Changed(FlagLogOutput) {
		if cfg.Log.Output, err = fs.GetString(FlagLogOutput); err != nil {
			return Config{}, errors.Wrap(err, "log-output flag")
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
