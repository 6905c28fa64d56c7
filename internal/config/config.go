//go:build !tinygo

// Package config loads the host emulator's YAML configuration on top of
// the panel defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"ttypanel/app"
	"ttypanel/internal/validate"

	"gopkg.in/yaml.v3"
)

// Load reads path over app.DefaultConfig. An empty path yields the
// defaults.
func Load(path string) (app.Config, error) {
	cfg := app.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (app.Config, error) {
	cfg := app.DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: decode: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func Validate(cfg app.Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// Write encodes cfg as YAML.
func Write(w io.Writer, cfg app.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return enc.Close()
}
