// Package patterncard provides a high-level API for exporting card videos.
package patterncard

import (
	"github.com/user/patterncard/pkg/orchestrator"
	"github.com/user/patterncard/pkg/pattern"
	"github.com/user/patterncard/pkg/ports"
)

// QualityPreset represents a video quality preset name.
type QualityPreset string

const (
	QualityLow    QualityPreset = "low"
	QualityMedium QualityPreset = "medium"
	QualityHigh   QualityPreset = "high"
)

// QualitySettings contains quality parameters for video encoding.
type QualitySettings struct {
	VideoCRF int // CRF value (0-63, lower is better)
	Bitrate  int // target bitrate in kbps
}

// GetQualitySettings returns quality settings for the given preset.
func GetQualitySettings(preset QualityPreset) QualitySettings {
	switch preset {
	case QualityLow:
		return QualitySettings{
			VideoCRF: 35,
			Bitrate:  1500,
		}
	case QualityHigh:
		return QualitySettings{
			VideoCRF: 15,
			Bitrate:  8000,
		}
	default: // medium
		return QualitySettings{
			VideoCRF: 25,
			Bitrate:  4000,
		}
	}
}

// Config represents the configuration for patterncard video generation.
type Config struct {
	// Video size
	PixelSize int // Square frame edge length in pixels (default: 1000)

	// Scenes
	LoopCount  int    // Times the card set repeats (min: 1)
	IntroTitle string // Title card shown before the first card
	OutroTitle string // Title card shown after the last card
	TimingMs   int    // Duration of each scene in milliseconds

	// Rendering
	Theme ports.Theme // Dark or light rendering theme

	// Encoding
	VideoCRF int // CRF value (0-63, lower is better)
	Bitrate  int // Target bitrate in kbps

	// Codec
	Codec      ports.VideoCodec // Preferred codec ("" = automatic)
	FFmpegPath string           // Explicit ffmpeg binary path ("" = discover)
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with full-size defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: fullDefaults(),
	}
}

// NewCompactConfigBuilder creates a new ConfigBuilder with compact preset
// defaults, suited to chat and preview embeds.
func NewCompactConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: compactDefaults(),
	}
}

func fullDefaults() Config {
	return Config{
		PixelSize: 1000,

		LoopCount: 1,
		TimingMs:  pattern.DefaultTimingMs,

		Theme: ports.ThemeDark,

		// Encoding (medium quality preset)
		VideoCRF: 25,
		Bitrate:  4000,
	}
}

func compactDefaults() Config {
	return Config{
		PixelSize: 512,

		LoopCount: 1,
		TimingMs:  pattern.DefaultTimingMs,

		Theme: ports.ThemeDark,

		// Encoding (low quality preset)
		VideoCRF: 35,
		Bitrate:  1500,
	}
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	// Enforce minimum frame size of 64
	if cfg.PixelSize < 64 {
		cfg.PixelSize = 64
	}

	// Enforce minimum loop count of 1
	if cfg.LoopCount < 1 {
		cfg.LoopCount = 1
	}

	if cfg.TimingMs <= 0 {
		cfg.TimingMs = pattern.DefaultTimingMs
	}

	return cfg
}

// WithPixelSize sets the square frame edge length.
// Values below 64 will be forced to 64.
func (b *ConfigBuilder) WithPixelSize(size int) *ConfigBuilder {
	b.config.PixelSize = size
	return b
}

// WithLoopCount sets how many times the card set repeats.
// Values below 1 will be forced to 1.
func (b *ConfigBuilder) WithLoopCount(loops int) *ConfigBuilder {
	b.config.LoopCount = loops
	return b
}

// WithIntroTitle sets the intro title card text.
func (b *ConfigBuilder) WithIntroTitle(title string) *ConfigBuilder {
	b.config.IntroTitle = title
	return b
}

// WithOutroTitle sets the outro title card text.
func (b *ConfigBuilder) WithOutroTitle(title string) *ConfigBuilder {
	b.config.OutroTitle = title
	return b
}

// WithTimingMs sets the per-scene duration in milliseconds.
func (b *ConfigBuilder) WithTimingMs(ms int) *ConfigBuilder {
	b.config.TimingMs = ms
	return b
}

// WithTheme sets the rendering theme.
func (b *ConfigBuilder) WithTheme(theme ports.Theme) *ConfigBuilder {
	b.config.Theme = theme
	return b
}

// WithQuality sets the CRF value.
func (b *ConfigBuilder) WithQuality(crf int) *ConfigBuilder {
	b.config.VideoCRF = crf
	return b
}

// WithBitrate sets the target bitrate in kbps.
func (b *ConfigBuilder) WithBitrate(kbps int) *ConfigBuilder {
	b.config.Bitrate = kbps
	return b
}

// WithQualityPreset applies a named quality preset.
func (b *ConfigBuilder) WithQualityPreset(preset QualityPreset) *ConfigBuilder {
	settings := GetQualitySettings(preset)
	b.config.VideoCRF = settings.VideoCRF
	b.config.Bitrate = settings.Bitrate
	return b
}

// WithCodec sets the preferred video codec.
func (b *ConfigBuilder) WithCodec(codec ports.VideoCodec) *ConfigBuilder {
	b.config.Codec = codec
	return b
}

// WithFFmpegPath sets an explicit ffmpeg binary path.
func (b *ConfigBuilder) WithFFmpegPath(path string) *ConfigBuilder {
	b.config.FFmpegPath = path
	return b
}

// ToOrchestratorConfig converts Config to orchestrator.Config for the given
// output path.
func (c Config) ToOrchestratorConfig(outputPath string) orchestrator.Config {
	return orchestrator.Config{
		OutputPath: outputPath,

		LoopCount:  c.LoopCount,
		IntroTitle: c.IntroTitle,
		OutroTitle: c.OutroTitle,

		PixelSize: c.PixelSize,
		Theme:     c.Theme,

		Bitrate: c.Bitrate,
		Quality: c.VideoCRF,
	}
}
