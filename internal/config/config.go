// Package config loads the qrfix command configuration from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/ericlevine/qrfix"
	"github.com/ericlevine/qrfix/binarizer"
	"github.com/ericlevine/qrfix/charset"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of every qrfix command.
type Config struct {
	Fix    FixConfig    `yaml:"fix"`
	Image  ImageConfig  `yaml:"image"`
	Render RenderConfig `yaml:"render"`
}

// FixConfig configures reconstruction.
type FixConfig struct {
	TryAllOrientations bool   `yaml:"try_all_orientations"`
	Parallel           bool   `yaml:"parallel"`
	Interleave         string `yaml:"interleave"`    // paired, blocks
	CharacterSet       string `yaml:"character_set"` // byte segment encoding
}

// ImageConfig configures image sampling.
type ImageConfig struct {
	Statistic      string `yaml:"statistic"` // median, average
	BlackThreshold int    `yaml:"black_threshold"`
	WhiteThreshold int    `yaml:"white_threshold"`
}

// RenderConfig configures matrix rendering.
type RenderConfig struct {
	Scale int `yaml:"scale"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Fix: FixConfig{
			Interleave:   qrfix.InterleavePaired.String(),
			CharacterSet: charset.Default,
		},
		Image: ImageConfig{
			Statistic:      binarizer.StatisticMedian.String(),
			BlackThreshold: binarizer.DefaultBlackThreshold,
			WhiteThreshold: binarizer.DefaultWhiteThreshold,
		},
		Render: RenderConfig{
			Scale: qrfix.DefaultRenderScale,
		},
	}
}

// Load loads configuration from a YAML file over the defaults. An empty
// path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every named option is known.
func (c *Config) Validate() error {
	if _, ok := qrfix.ParseInterleave(c.Fix.Interleave); !ok {
		return fmt.Errorf("config: fix.interleave: unknown layout %q", c.Fix.Interleave)
	}
	if _, ok := charset.Lookup(c.Fix.CharacterSet); !ok {
		return fmt.Errorf("config: fix.character_set: unknown character set %q", c.Fix.CharacterSet)
	}
	if _, err := binarizer.ParseStatistic(c.Image.Statistic); err != nil {
		return fmt.Errorf("config: image.statistic: %w", err)
	}
	if c.Image.BlackThreshold < 0 || c.Image.WhiteThreshold > 255 || c.Image.BlackThreshold > c.Image.WhiteThreshold {
		return fmt.Errorf("config: image thresholds must satisfy 0 <= black (%d) <= white (%d) <= 255",
			c.Image.BlackThreshold, c.Image.WhiteThreshold)
	}
	if c.Render.Scale < 1 {
		return fmt.Errorf("config: render.scale must be positive, got %d", c.Render.Scale)
	}
	return nil
}

// FixOptions converts the fix section into reconstruction options.
func (c *Config) FixOptions(logger *zap.Logger) (*qrfix.FixOptions, error) {
	layout, ok := qrfix.ParseInterleave(c.Fix.Interleave)
	if !ok {
		return nil, fmt.Errorf("config: fix.interleave: unknown layout %q", c.Fix.Interleave)
	}
	return &qrfix.FixOptions{
		TryAllOrientations: c.Fix.TryAllOrientations,
		Parallel:           c.Fix.Parallel,
		Interleave:         layout,
		CharacterSet:       c.Fix.CharacterSet,
		Logger:             logger,
	}, nil
}

// Sampler returns a block sampler over source configured by the image
// section.
func (c *Config) Sampler(source qrfix.LuminanceSource) (*binarizer.BlockSampler, error) {
	stat, err := binarizer.ParseStatistic(c.Image.Statistic)
	if err != nil {
		return nil, err
	}
	s := binarizer.NewBlockSampler(source)
	s.Statistic = stat
	s.BlackThreshold = c.Image.BlackThreshold
	s.WhiteThreshold = c.Image.WhiteThreshold
	return s, nil
}
