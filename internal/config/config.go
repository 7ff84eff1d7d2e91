// Package config provides configuration management for bchctl.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppopth/bch-codec/code/bch"
	"github.com/ppopth/bch-codec/field"
)

// Config represents the tool configuration.
type Config struct {
	Version int           `yaml:"version"`
	Code    CodeConfig    `yaml:"code"`
	Field   FieldConfig   `yaml:"field"`
	Workers int           `yaml:"workers"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// CodeConfig selects the BCH code.
type CodeConfig struct {
	N          int  `yaml:"n"`
	K          int  `yaml:"k"`
	C          int  `yaml:"c"`
	Systematic bool `yaml:"systematic"`
	// Binary defining polynomial written as an integer, e.g. "0x13"
	DefiningPoly     string `yaml:"defining_poly,omitempty"`
	PrimitiveElement uint64 `yaml:"primitive_element,omitempty"`
}

// FieldConfig defines field arithmetic settings.
type FieldConfig struct {
	Strategy string `yaml:"strategy"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	// text or frame
	Format string `yaml:"format"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from the specified file on top of Defaults.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %s: %s", field.ErrInvalidType, path, strings.Join(typeErr.Errors, "; "))
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate checks the values that can be checked without building the code.
func (c *Config) Validate() error {
	if c.Code.N < 0 || c.Code.K < 0 {
		return fmt.Errorf("%w: code dimensions must not be negative", field.ErrInvalidValue)
	}
	if c.Code.C < 1 {
		return fmt.Errorf("%w: c must be at least 1, not %d", field.ErrInvalidValue, c.Code.C)
	}
	if _, err := ParseStrategy(c.Field.Strategy); err != nil {
		return err
	}
	if _, err := c.definingPoly(); err != nil {
		return err
	}
	switch c.Output.Format {
	case FormatText, FormatFrame:
	default:
		return fmt.Errorf("%w: unknown output format %q", field.ErrInvalidValue, c.Output.Format)
	}
	return nil
}

// BCHConfig converts the code section into a bch.Config.
func (c *Config) BCHConfig() (*bch.Config, error) {
	poly, err := c.definingPoly()
	if err != nil {
		return nil, err
	}
	strategy, err := ParseStrategy(c.Field.Strategy)
	if err != nil {
		return nil, err
	}
	return &bch.Config{
		Strategy:         strategy,
		C:                c.Code.C,
		DefiningPoly:     poly,
		PrimitiveElement: field.Element(c.Code.PrimitiveElement),
		Systematic:       c.Code.Systematic,
		Workers:          c.Workers,
	}, nil
}

func (c *Config) definingPoly() (*field.Poly, error) {
	if c.Code.DefiningPoly == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(c.Code.DefiningPoly, 0, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: defining polynomial %q is not an integer", field.ErrInvalidType, c.Code.DefiningPoly)
	}
	poly := field.PolyFromInt(field.GF2(), v)
	return &poly, nil
}

// ParseStrategy maps a strategy name to a field.Strategy. The empty string
// selects field.StrategyAuto.
func ParseStrategy(name string) (field.Strategy, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return field.StrategyAuto, nil
	case "table", "lookup":
		return field.StrategyTable, nil
	case "calculate":
		return field.StrategyCalculate, nil
	default:
		return 0, fmt.Errorf("%w: unknown strategy %q", field.ErrInvalidValue, name)
	}
}
