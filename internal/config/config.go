// Package config validates and loads the settings every decoder/codec
// constructor in this module takes: text framing, binary end-of-packet,
// ADPCM channel/width, and ring buffer capacity.
//
// It follows config.go's parse-then-validate shape (read settings, then
// reject the whole configuration eagerly on the first bad value) without
// that file's unit-conversion and APRS-specific surface, which has no home
// in this module.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigError reports an invalid configuration value, raised eagerly at
// construction per spec.md §7.
type ConfigError struct {
	Field string
	Value interface{}
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: field %s=%v: %s", e.Field, e.Value, e.Msg)
}

// Config mirrors every option enumerated in spec.md §6.
type Config struct {
	EOLBytes      string `yaml:"eol_bytes"`
	EOPByte       byte   `yaml:"eop_byte"`
	Encoding      string `yaml:"encoding"`
	LabelsEnabled bool   `yaml:"labels_enabled"`
	Strict        bool   `yaml:"strict"`

	ADPCM struct {
		Channels    int `yaml:"channels"`
		SampleWidth int `yaml:"sample_width"`
	} `yaml:"adpcm"`

	Ring struct {
		NRowsCap int `yaml:"nrows_cap"`
		NColsCap int `yaml:"ncols_cap"`
	} `yaml:"ring"`
}

var validEOLBytes = map[string]bool{
	"":     true,
	"\n":   true,
	"\r":   true,
	"\n\r": true,
	"\r\n": true,
}

// Default returns the configuration spec.md §6 implies when a field is
// left unset: no text framing override, 0x00 binary terminator, UTF-8
// text, labels on, non-strict parsing, mono 16-bit ADPCM, and a modest
// ring buffer.
func Default() Config {
	var c Config
	c.EOLBytes = "\n"
	c.EOPByte = 0x00
	c.Encoding = "utf-8"
	c.LabelsEnabled = true
	c.Strict = false
	c.ADPCM.Channels = 1
	c.ADPCM.SampleWidth = 16
	c.Ring.NRowsCap = 1024
	c.Ring.NColsCap = 8
	return c
}

// Load reads and validates a YAML configuration file, starting from
// Default() and overlaying whatever the file sets.
func Load(path string) (Config, error) {
	var c = Default()

	var raw, err = os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks every field against spec.md §6's enumerated domain,
// returning the first violation found.
func (c Config) Validate() error {
	if !validEOLBytes[c.EOLBytes] {
		return &ConfigError{Field: "eol_bytes", Value: c.EOLBytes, Msg: `must be one of "", "\n", "\r", "\n\r", "\r\n"`}
	}
	if c.EOPByte != 0x00 {
		return &ConfigError{Field: "eop_byte", Value: c.EOPByte, Msg: "must be 0x00"}
	}
	if c.Encoding != "utf-8" {
		return &ConfigError{Field: "encoding", Value: c.Encoding, Msg: "only utf-8 is supported"}
	}
	if c.ADPCM.Channels != 1 && c.ADPCM.Channels != 2 {
		return &ConfigError{Field: "adpcm.channels", Value: c.ADPCM.Channels, Msg: "must be 1 or 2"}
	}
	if c.ADPCM.SampleWidth != 8 && c.ADPCM.SampleWidth != 16 {
		return &ConfigError{Field: "adpcm.sample_width", Value: c.ADPCM.SampleWidth, Msg: "must be 8 or 16"}
	}
	if c.Ring.NRowsCap < 1 {
		return &ConfigError{Field: "ring.nrows_cap", Value: c.Ring.NRowsCap, Msg: "must be >= 1"}
	}
	if c.Ring.NColsCap < 1 {
		return &ConfigError{Field: "ring.ncols_cap", Value: c.Ring.NColsCap, Msg: "must be >= 1"}
	}

	return nil
}
