// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/adminkit/internal/console"
	"github.com/matt-FFFFFF/adminkit/internal/output"
	"github.com/matt-FFFFFF/adminkit/internal/timer"
	"github.com/spf13/afero"
	"golang.org/x/text/language"
)

const (
	// DefaultFileName is the config file looked up in the working directory.
	DefaultFileName = ".adminkit.yaml"
	// EnvAppRoot overrides app_root.
	EnvAppRoot = "ADMINKIT_APP_ROOT"
	// EnvLogDir overrides log_dir.
	EnvLogDir = "ADMINKIT_LOG_DIR"

	defaultLocale   = "de"
	defaultTimeUnit = "seconds"
)

var (
	// ErrReadFile is returned when the config file exists but cannot be read.
	ErrReadFile = errors.New("failed to read config file")
	// ErrInvalidYaml is returned when the config file is not valid YAML.
	ErrInvalidYaml = errors.New("invalid YAML")
	// ErrInvalidConfig is returned when a setting has an unusable value.
	ErrInvalidConfig = errors.New("invalid config")
)

// LookupEnv reads environment variables. Tests replace it.
var LookupEnv = os.LookupEnv

// Config holds the resolved settings.
type Config struct {
	AppRoot   string `yaml:"app_root"`
	LogDir    string `yaml:"log_dir"`
	Locale    string `yaml:"locale"`
	TimeUnit  string `yaml:"time_unit"`
	ClockWrap bool   `yaml:"clock_wrap"`
	// Decorated forces colour on or off. Nil leaves it to terminal detection.
	Decorated *bool `yaml:"decorated"`

	// Verbosity is set from the command line only.
	Verbosity console.Verbosity `yaml:"-"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		AppRoot:   ".",
		Locale:    defaultLocale,
		TimeUnit:  defaultTimeUnit,
		Verbosity: console.VerbosityNormal,
	}
}

// Load reads the YAML file at path over the defaults and applies the environment.
// A missing file is only an error when required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultFileName
	}

	data, err := afero.ReadFile(FsFactory(), path)

	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidYaml, path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
	default:
		return nil, fmt.Errorf("%w: %s: %w", ErrReadFile, path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v, ok := LookupEnv(EnvAppRoot); ok && v != "" {
		c.AppRoot = v
	}

	if v, ok := LookupEnv(EnvLogDir); ok && v != "" {
		c.LogDir = v
	}
}

// Validate reports every unusable setting at once.
func (c *Config) Validate() error {
	var result error

	if strings.TrimSpace(c.AppRoot) == "" {
		result = multierror.Append(result, fmt.Errorf("%w: app_root must not be empty", ErrInvalidConfig))
	}

	if _, err := language.Parse(c.Locale); err != nil {
		result = multierror.Append(result, fmt.Errorf("%w: locale %q: %w", ErrInvalidConfig, c.Locale, err))
	}

	if strings.TrimSpace(c.TimeUnit) == "" {
		result = multierror.Append(result, fmt.Errorf("%w: time_unit must not be empty", ErrInvalidConfig))
	}

	return result
}

// Language returns the parsed locale, German if it does not parse.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.German
	}

	return tag
}

// TimerOptions returns the timer registry options for these settings.
func (c *Config) TimerOptions() []timer.Option {
	opts := []timer.Option{
		timer.WithLocale(c.Language()),
		timer.WithUnit(c.TimeUnit),
	}

	if c.ClockWrap {
		opts = append(opts, timer.WithClockWrap())
	}

	return opts
}

// TranscriptDir returns the directory transcripts are written to.
// log_dir wins over the default under app_root; a relative log_dir is taken
// relative to app_root.
func (c *Config) TranscriptDir() string {
	if c.LogDir == "" {
		return output.LogDir(c.AppRoot)
	}

	if filepath.IsAbs(c.LogDir) {
		return c.LogDir
	}

	return filepath.Join(c.AppRoot, c.LogDir)
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying cfg.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext returns the Config stored in ctx, or Default when there is none.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(contextKey{}).(*Config); ok && cfg != nil {
		return cfg
	}

	return Default()
}
