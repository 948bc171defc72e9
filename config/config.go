// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads command defaults from built-ins, an optional TOML
// file and STABLEMATCH_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/someonegg/stablematch/instance"
	"github.com/someonegg/stablematch/logging"
)

const EnvPrefix = "STABLEMATCH_"

// Config holds the tunables shared by the commands. Empty formats mean
// "guess from the file name".
type Config struct {
	Format     string        `koanf:"format"`
	OutFormat  string        `koanf:"out_format"`
	StepBudget int           `koanf:"step_budget"`
	Verify     bool          `koanf:"verify"`
	LogLevel   string        `koanf:"log_level"`
	Timeout    time.Duration `koanf:"timeout"`
}

var ErrInvalid = errors.New("config: invalid value")

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"format":      "",
		"out_format":  "",
		"step_budget": 0,
		"verify":      false,
		"log_level":   "warn",
		"timeout":     "0s",
	}
}

// Load builds the configuration. path may be empty; env controls whether
// environment variables are consulted.
func Load(path string, useEnv bool) (Config, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	// 3. Env vars
	if useEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		}), nil)
		if err != nil {
			return Config{}, fmt.Errorf("failed to load env vars: %w", err)
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown formats or levels and negative limits.
func (c *Config) Validate() error {
	if c.Format != "" {
		if _, err := instance.ParseFormat(c.Format); err != nil {
			return fmt.Errorf("%w: format: %v", ErrInvalid, err)
		}
	}
	if c.OutFormat != "" {
		if _, err := instance.ParseFormat(c.OutFormat); err != nil {
			return fmt.Errorf("%w: out_format: %v", ErrInvalid, err)
		}
	}
	if c.StepBudget < 0 {
		return fmt.Errorf("%w: step_budget %d", ErrInvalid, c.StepBudget)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout %v", ErrInvalid, c.Timeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}
	return nil
}
