// Package config loads builder-generator settings.
//
// Sources, lowest precedence first:
//  1. Built-in defaults
//  2. A YAML file (.builder-generator.yaml unless another path is given)
//  3. BUILDERGEN_* environment variables
//  4. Command-line flags
package config

import (
	"builder-generator/internal/gen"
	"builder-generator/internal/logger"
)

// DefaultFile is the config file read from the working directory when no
// path is given.
const DefaultFile = ".builder-generator.yaml"

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "BUILDERGEN_"

// Config is the complete generator configuration.
type Config struct {
	// Patterns are the package patterns to load.
	Patterns []string `koanf:"patterns" validate:"required,min=1,dive,required"`
	// Types are the records to generate builders for, either bare names or
	// import-path qualified names.
	Types []string `koanf:"types" validate:"dive,required"`
	// BuildTags are passed to the package loader.
	BuildTags []string `koanf:"build_tags" validate:"dive,required"`
	// ErrorsPackage is the import path generated Build methods use to
	// report unset fields. Empty keeps generated files free of imports
	// outside the standard library.
	ErrorsPackage string       `koanf:"errors_package"`
	Output        OutputConfig `koanf:"output"`
	Log           LogConfig    `koanf:"log"`
}

type OutputConfig struct {
	// Suffix is appended to the snake_case record name.
	Suffix string `koanf:"suffix" validate:"required,endswith=.go"`
	// Comments enables doc comments in generated files.
	Comments bool `koanf:"comments"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error disabled"`
	JSON  bool   `koanf:"json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	gc := gen.DefaultGeneratorConfig()

	return &Config{
		Patterns:      []string{"."},
		Types:         []string{},
		BuildTags:     []string{},
		ErrorsPackage: gc.ErrorsPackage,
		Output: OutputConfig{
			Suffix:   gc.FileSuffix,
			Comments: gc.GenerateComments,
		},
		Log: LogConfig{
			Level: string(logger.InfoLevel),
		},
	}
}

// GeneratorConfig returns the code generation settings.
func (c *Config) GeneratorConfig() gen.GeneratorConfig {
	return gen.GeneratorConfig{
		FileSuffix:       c.Output.Suffix,
		GenerateComments: c.Output.Comments,
		ErrorsPackage:    c.ErrorsPackage,
	}
}

// LoggerConfig returns the logger settings.
func (c *Config) LoggerConfig() *logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = logger.LogLevel(c.Log.Level)
	cfg.JSON = c.Log.JSON

	return cfg
}
