/*
Package config loads the engine's YAML configuration: fit loop bounds,
translation settings and logging, and builds the zap logger the CLI logs
through (engine packages trace through their own T() tracers).
*/
package config

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/zenpl/GPTrans/core"
	"github.com/zenpl/GPTrans/core/model"
)

// TranslationConfig holds the source/target languages used by the CLI's
// translation step, and a backend name. The CLI always uses the mock
// backend; it does not read Backend.
type TranslationConfig struct {
	SourceLang string `yaml:"source_lang"`
	TargetLang string `yaml:"target_lang"`
	Backend    string `yaml:"backend"`
}

// LoggingConfig controls the verbosity of the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

// Config is the top-level configuration document.
type Config struct {
	FitLoop     model.FitLoopConfig `yaml:"fit_loop"`
	Translation TranslationConfig   `yaml:"translation"`
	Logging     LoggingConfig       `yaml:"logging"`
	EPUBFixZip  bool                `yaml:"epub_fix_zip"`
}

// Default returns a Config seeded with the engine's baseline fit loop
// parameters and a mock backend.
func Default() Config {
	return Config{
		FitLoop: model.DefaultFitLoopConfig(),
		Translation: TranslationConfig{
			SourceLang: "de",
			TargetLang: "zh-CN",
			Backend:    "mock",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads and parses a YAML config file at path, falling back to
// Default for any field the file doesn't set.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, core.WrapError(err, core.EMISSING, "cannot read config file %q", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, core.WrapError(err, core.EINVALID, "cannot parse config file %q", path)
	}
	if err := cfg.FitLoop.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Logger builds a zap.Logger honoring cfg.Logging.Level.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return zc.Build()
}
