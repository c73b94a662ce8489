package config

const (
	defaultImageGlyphHeight = 128
	defaultVideoGlyphHeight = 24
	defaultFFmpeg           = "ffmpeg"
	defaultFFprobe          = "ffprobe"
	defaultCRF              = 23
	defaultPreset           = "medium"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultConfigPath       = "~/.config/bitfx/config.toml"
	projectConfigName       = "bitfx.toml"
)

// x264Presets lists the presets libx264 accepts.
var x264Presets = []string{
	"ultrafast", "superfast", "veryfast", "faster", "fast",
	"medium", "slow", "slower", "veryslow", "placebo",
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Image: Image{
			GlyphHeight: defaultImageGlyphHeight,
		},
		Video: Video{
			GlyphHeight: defaultVideoGlyphHeight,
			FFmpeg:      defaultFFmpeg,
			FFprobe:     defaultFFprobe,
			CRF:         defaultCRF,
			Preset:      defaultPreset,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
