package config

import (
	"errors"
	"fmt"
	"slices"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateGlyphHeights(); err != nil {
		return err
	}
	if err := c.validateVideo(); err != nil {
		return err
	}
	if c.Runtime.Workers < 0 {
		return errors.New("runtime.workers must be zero or positive")
	}
	return c.validateLogging()
}

func (c *Config) validateGlyphHeights() error {
	if c.Image.GlyphHeight <= 0 {
		return fmt.Errorf("image.glyph_height must be positive, got %g", c.Image.GlyphHeight)
	}
	if c.Video.GlyphHeight <= 0 {
		return fmt.Errorf("video.glyph_height must be positive, got %g", c.Video.GlyphHeight)
	}
	return nil
}

func (c *Config) validateVideo() error {
	if c.Video.CRF < 0 || c.Video.CRF > 51 {
		return fmt.Errorf("video.crf must be between 0 and 51, got %d", c.Video.CRF)
	}
	if !slices.Contains(x264Presets, c.Video.Preset) {
		return fmt.Errorf("video.preset %q is not an x264 preset", c.Video.Preset)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}
