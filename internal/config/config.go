// Package config loads qtermsim settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"qtermsim/internal/format"
	"qtermsim/internal/gate"
	"qtermsim/internal/qerr"
)

// Config holds every tunable the CLI and console read.
type Config struct {
	// Qubits is the default circuit width.
	Qubits int `yaml:"qubits" validate:"min=1,ltefield=MaxQubits"`
	// MaxQubits bounds the width a user may request.
	MaxQubits int `yaml:"max_qubits" validate:"min=1,gatewidth"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"loglevel"`
	// Trace prints every intermediate state during a run.
	Trace bool `yaml:"trace"`
	// Precision is the number of significant digits shown for amplitudes.
	Precision int `yaml:"precision" validate:"min=1,max=17"`
	// AngleUnit is how bare phase angles are read: radians or degrees.
	AngleUnit string `yaml:"angle_unit" validate:"angleunit"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Qubits:    2,
		MaxQubits: 10,
		LogLevel:  "info",
		Trace:     false,
		Precision: format.DefaultPrecision,
		AngleUnit: string(format.Radians),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/qtermsim/config.yaml, falling back to
// ~/.config/qtermsim/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user config directory: %w", err)
	}
	return filepath.Join(dir, "qtermsim", "config.yaml"), nil
}

// Load reads path over the defaults. A missing file yields the defaults; an
// unreadable or invalid one is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, rejecting unknown keys, then validates it.
// Fields absent from data keep their current values.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", qerr.ErrInvalidArgument, err)
	}
	return cfg.Validate()
}

// configValidate checks Config's struct tags. Field errors are reported by
// their YAML names.
var configValidate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		return name
	})
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(v.RegisterValidation("gatewidth", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= gate.MaxQubits
	}))
	must(v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := log.ParseLevel(fl.Field().String())
		return err == nil
	}))
	must(v.RegisterValidation("angleunit", func(fl validator.FieldLevel) bool {
		_, err := format.ParseUnit(fl.Field().String())
		return err == nil
	}))
	return v
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", qerr.ErrInvalidArgument, err)
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "gatewidth":
		return fmt.Errorf("%w: %s %v exceeds the %d-qubit limit", qerr.ErrInvalidArgument, fe.Field(), fe.Value(), gate.MaxQubits)
	case "ltefield":
		return fmt.Errorf("%w: %s %v exceeds max_qubits", qerr.ErrInvalidArgument, fe.Field(), fe.Value())
	case "min", "max":
		return fmt.Errorf("%w: %s %v fails %s=%s", qerr.ErrInvalidArgument, fe.Field(), fe.Value(), fe.Tag(), fe.Param())
	default:
		return fmt.Errorf("%w: %s %q is not recognized", qerr.ErrInvalidArgument, fe.Field(), fe.Value())
	}
}

// Unit returns the parsed angle unit; it assumes Validate passed.
func (c Config) Unit() format.Unit {
	u, _ := format.ParseUnit(c.AngleUnit)
	return u
}

// Level returns the parsed log level; it assumes Validate passed.
func (c Config) Level() log.Level {
	l, _ := log.ParseLevel(c.LogLevel)
	return l
}

// WriteDefault writes the default settings to path, creating its directory.
// An existing file is left alone.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s already exists", fs.ErrExist, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
