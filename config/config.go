// Package config loads driver configuration for mpc-collect.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables (a .env file in the working directory is read
// first), then command line flags applied by the caller.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/msgpack-codegen/catalog"
	"github.com/wippyai/msgpack-codegen/errors"
)

// Environment variables read by ApplyEnv.
const (
	EnvInput         = "MPC_INPUT"
	EnvOutput        = "MPC_OUTPUT"
	EnvFormat        = "MPC_FORMAT"
	EnvForceMap      = "MPC_FORCE_MAP"
	EnvAllowInternal = "MPC_ALLOW_INTERNAL"
	EnvWitNamespace  = "MPC_WIT_NAMESPACE"
)

// Config is the driver configuration.
type Config struct {
	// Input is the universe document (.yaml, .yml, .json) or a resolved
	// WIT package graph (.wit.json).
	Input string `yaml:"input"`

	// Output is where the encoded catalogue is written. Empty means stdout.
	Output string `yaml:"output"`

	// Format is the catalogue encoding: json, yaml or cbor.
	Format string `yaml:"format"`

	// ForceMap serializes every object in map mode.
	ForceMap bool `yaml:"forceMap"`

	// AllowInternal admits internal types into the walk.
	AllowInternal bool `yaml:"allowInternal"`

	// WitNamespace prefixes types imported from WIT.
	WitNamespace string `yaml:"witNamespace"`

	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Format: string(catalog.FormatJSON),
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped
// when path is empty) and then the environment.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	_ = godotenv.Load()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New(errors.PhaseConfig, errors.KindNotFound).
			Path(path).Cause(err).Detail("read config file").Build()
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.New(errors.PhaseConfig, errors.KindInvalidData).
			Path(path).Cause(err).Detail("decode config file").Build()
	}
	return nil
}

// ApplyEnv overrides fields from the MPC_* environment variables. Unset or
// blank variables leave the field unchanged.
func (c *Config) ApplyEnv() error {
	setString(&c.Input, EnvInput)
	setString(&c.Output, EnvOutput)
	setString(&c.Format, EnvFormat)
	setString(&c.WitNamespace, EnvWitNamespace)
	if err := setBool(&c.ForceMap, EnvForceMap); err != nil {
		return err
	}
	return setBool(&c.AllowInternal, EnvAllowInternal)
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("input").Detail("an input document is required").Build()
	}
	if _, err := catalog.ParseFormat(c.Format); err != nil {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("format").Value(c.Format).Cause(err).Build()
	}
	return nil
}

// CatalogFormat returns Format as a catalogue encoding. Call Validate first.
func (c *Config) CatalogFormat() catalog.Format {
	return catalog.Format(c.Format)
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path(key).Value(raw).Cause(err).Detail("expected a boolean").Build()
	}
	*dst = v
	return nil
}
