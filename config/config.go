// Package config loads and validates the translator lambda settings.
//
// Settings come from one of three sources, checked in order:
//
//   - TRANSLATOR_CONFIG holding the settings as inline JSON
//   - TRANSLATOR_CONFIG_PARAMETER naming an SSM parameter holding JSON
//   - TRANSLATOR_CONFIG_FILE naming a .toml or .json file
//
// With none of them set the defaults are used as they are.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/prognoshealth/apigwtranslator/proxy"
	"github.com/prognoshealth/apigwtranslator/transport"
	"github.com/prognoshealth/apigwtranslator/translator"
)

const (
	EnvConfig          = "TRANSLATOR_CONFIG"
	EnvConfigParameter = "TRANSLATOR_CONFIG_PARAMETER"
	EnvConfigFile      = "TRANSLATOR_CONFIG_FILE"
	EnvLogLevel        = "LOG_LEVEL"
)

var validate = validator.New()

// RouteConfig selects a pipeline for events matching one of Methods and the
// Pattern regex.
type RouteConfig struct {
	Methods  []string          `json:"methods" toml:"methods" validate:"required,min=1,dive,required"`
	Pattern  string            `json:"pattern" toml:"pattern" validate:"required"`
	Pipeline translator.Config `json:"pipeline" toml:"pipeline"`
}

// Settings is the full lambda configuration.
type Settings struct {
	LogLevel  string            `json:"log_level" toml:"log_level" validate:"required,oneof=TRACE DEBUG INFO ERROR"`
	Transport transport.Config  `json:"transport" toml:"transport"`
	Default   translator.Config `json:"default" toml:"default"`
	Routes    []RouteConfig     `json:"routes" toml:"routes" validate:"dive"`
}

// Default returns INFO logging and the default pipeline with no routes.
func Default() Settings {
	return Settings{
		LogLevel: "INFO",
		Default:  translator.DefaultConfig(),
	}
}

// Validate checks every field constraint and that each route method is one the
// router supports.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return errors.Wrap(err, "invalid settings")
	}

	for _, route := range s.Routes {
		for _, method := range route.Methods {
			if _, err := proxy.ParseHttpMethod(method); err != nil {
				return errors.Wrapf(err, "invalid route '%s'", route.Pattern)
			}
		}
	}

	return nil
}

// FromJSON decodes and validates settings layered over the defaults.
func FromJSON(b []byte) (Settings, error) {
	s := Default()

	if err := json.Unmarshal(b, &s); err != nil {
		return Settings{}, errors.Wrap(err, "failed decoding json settings")
	}

	return s, s.Validate()
}

// FromTOML decodes and validates settings layered over the defaults.
func FromTOML(b []byte) (Settings, error) {
	s := Default()

	if err := toml.Unmarshal(b, &s); err != nil {
		return Settings{}, errors.Wrap(err, "failed decoding toml settings")
	}

	return s, s.Validate()
}

// FromFile reads settings from path. Files ending in .toml are decoded as TOML
// and everything else as JSON.
func FromFile(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, errors.Wrapf(err, "failed reading settings file %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FromTOML(b)
	}

	return FromJSON(b)
}

// FromEnv loads settings from the first source set in the environment.
// LOG_LEVEL, when set, overrides the loaded log level.
func FromEnv() (Settings, error) {
	s, err := fromEnvSource()
	if err != nil {
		return Settings{}, err
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		s.LogLevel = strings.ToUpper(level)
		if err := s.Validate(); err != nil {
			return Settings{}, err
		}
	}

	return s, nil
}

func fromEnvSource() (Settings, error) {
	if inline := os.Getenv(EnvConfig); inline != "" {
		return FromJSON([]byte(inline))
	}

	if name := os.Getenv(EnvConfigParameter); name != "" {
		return NewParameterSource(name).Load()
	}

	if path := os.Getenv(EnvConfigFile); path != "" {
		return FromFile(path)
	}

	s := Default()
	return s, s.Validate()
}
