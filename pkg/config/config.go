// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads and validates the arena's configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/Thiagos25/llm-chess-arena/pkg/common"
)

type Config struct {
	Event string `yaml:"event"`
	Site  string `yaml:"site"`

	White PlayerConfig `yaml:"white" validate:"required"`
	Black PlayerConfig `yaml:"black" validate:"required"`

	Negotiation NegotiationConfig `yaml:"negotiation"`
	Service     ServiceConfig     `yaml:"service"`

	GamesDir string        `yaml:"games-dir"`
	Display  DisplayConfig `yaml:"display"`
}

type PlayerConfig struct {
	Name string `yaml:"name" validate:"required,max=64"`
	Kind string `yaml:"kind" validate:"required,oneof=human agent"`

	Model       string  `yaml:"model" validate:"required_if=Kind agent"`
	Temperature float32 `yaml:"temperature" validate:"min=0,max=2"`
}

type NegotiationConfig struct {
	// MaxAttempts bounds an agent's attempts per turn, 0 for no bound.
	MaxAttempts int    `yaml:"max-attempts" validate:"min=0"`
	Exhausted   string `yaml:"exhausted" validate:"omitempty,oneof=abandon human"`
}

type ServiceConfig struct {
	BaseURL   string `yaml:"base-url" validate:"omitempty,url"`
	APIKeyEnv string `yaml:"api-key-env"`

	Timeout    time.Duration `yaml:"timeout" validate:"min=0"`
	MaxElapsed time.Duration `yaml:"max-elapsed" validate:"min=0"`

	// Language of the agent's explanations.
	Language string `yaml:"language"`
}

type DisplayConfig struct {
	Theme string `yaml:"theme" validate:"omitempty,oneof=off brown green gray"`
	SVG   string `yaml:"svg"`
}

var validate = validator.New()

func init() {
	// report fields by their names in the file
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})
}

// Default returns the configuration the arena is shipped with.
func Default() *Config {
	config, err := Parse(common.BaseConfigFile)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return config, nil
}

// Parse decodes and validates a configuration.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the configuration, usually after flags have been
// applied to it.
func (config *Config) Validate() error {
	if err := validate.Struct(config); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return err
		}

		var details strings.Builder
		for _, err := range errs {
			if details.Len() > 0 {
				details.WriteString("; ")
			}

			field := strings.TrimPrefix(err.Namespace(), "Config.")
			switch err.Tag() {
			case "required", "required_if":
				fmt.Fprintf(&details, "%s is required", field)
			case "oneof":
				fmt.Fprintf(&details, "%s must be one of [%s]", field, err.Param())
			case "min":
				fmt.Fprintf(&details, "%s must be at least %s", field, err.Param())
			case "max":
				fmt.Fprintf(&details, "%s must be at most %s", field, err.Param())
			default:
				fmt.Fprintf(&details, "%s failed %s validation", field, err.Tag())
			}
		}

		return fmt.Errorf("invalid config: %s", details.String())
	}

	if config.Negotiation.Exhausted == "human" && config.White.Kind != "human" && config.Black.Kind != "human" {
		return errors.New("invalid config: negotiation.exhausted is human but no player is")
	}

	return nil
}

// Players returns the configuration of the white and black players, in
// that order.
func (config *Config) Players() [2]*PlayerConfig {
	return [2]*PlayerConfig{&config.White, &config.Black}
}
