// Package config provides configuration loading and management.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/patterncard/pkg/patterncard"
	"github.com/user/patterncard/pkg/ports"
)

// Config represents the full file configuration for patterncard. It supplies
// defaults for the export command; CLI flags override its values.
type Config struct {
	// Input/Output
	InputPath  string `yaml:"input"`
	OutputPath string `yaml:"output"`

	// Playback. Zero means the document's own timing is used.
	TimingMs int `yaml:"timing_ms"`

	// Video
	PixelSize  int    `yaml:"pixel_size"`
	LoopCount  int    `yaml:"loops"`
	IntroTitle string `yaml:"intro_title"`
	OutroTitle string `yaml:"outro_title"`
	Codec      string `yaml:"codec"`

	// Rendering
	Theme string `yaml:"theme"`

	// Encoding
	Quality int `yaml:"quality"`
	Bitrate int `yaml:"bitrate"`

	// Tools
	FFmpegPath string `yaml:"ffmpeg_path"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		// Video
		PixelSize: 1000,
		LoopCount: 1,

		// Rendering
		Theme: string(ports.ThemeDark),

		// Encoding
		Quality: 25,
		Bitrate: 4000,

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file. Fields absent from the
// file keep their Defaults() values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ToBuilder seeds an export config builder with the file values. The caller
// applies flag overrides on top before Build.
func (c Config) ToBuilder() *patterncard.ConfigBuilder {
	b := patterncard.NewConfigBuilder().
		WithPixelSize(c.PixelSize).
		WithLoopCount(c.LoopCount).
		WithTheme(ports.ParseTheme(c.Theme)).
		WithQuality(c.Quality).
		WithBitrate(c.Bitrate)

	if c.TimingMs > 0 {
		b.WithTimingMs(c.TimingMs)
	}
	if c.IntroTitle != "" {
		b.WithIntroTitle(c.IntroTitle)
	}
	if c.OutroTitle != "" {
		b.WithOutroTitle(c.OutroTitle)
	}
	if c.Codec != "" {
		b.WithCodec(ports.VideoCodec(c.Codec))
	}
	if c.FFmpegPath != "" {
		b.WithFFmpegPath(c.FFmpegPath)
	}
	return b
}
