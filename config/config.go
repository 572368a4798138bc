// SPDX-License-Identifier: MIT
// Package config loads the runtime settings of an audit session from YAML and
// builds the zap logger they describe.
//
//	error_floor: 1e-12   # relative error of symbolic dependencies
//	log_level: info      # debug | info | warn | error
//	log_format: json     # json | console
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/provgraph/graph"
)

// ErrInvalidConfig indicates unreadable or out-of-range settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

var validate = newValidate()

// newValidate registers "finite", which rejects NaN and ±Inf floats.
func newValidate() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})

	return v
}

// Config holds the settings shared by graph analysis and logging.
type Config struct {
	ErrorFloor float64 `yaml:"error_floor" validate:"finite,gte=0"`
	LogLevel   string  `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat  string  `yaml:"log_format" validate:"oneof=json console"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		ErrorFloor: graph.DefaultErrorFloor,
		LogLevel:   "info",
		LogFormat:  "json",
	}
}

// Load decodes YAML from r over Default and validates the result.
// Unknown keys are rejected.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	defer f.Close()

	return Load(f)
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// Logger builds a zap logger writing to stderr at the configured level.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	zc := zap.NewProductionConfig()
	if c.LogFormat == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}
