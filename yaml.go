package numinput

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// LoadConfig decodes a YAML widget configuration and validates it. It is the
// standalone loader for programs that keep widget settings in their own
// files; the numinput command layers files and environment through
// internal/config instead. Unknown keys are rejected. An empty document
// yields DefaultConfig.
//
//	min: 0
//	max: 100
//	step: 5
//	precision: 2
//	prefix: "$ "
func LoadConfig(r io.Reader) (Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("numinput: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg.withDefaults(), nil
}
