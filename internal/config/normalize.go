package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeFont(); err != nil {
		return err
	}
	c.normalizeVideo()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeFont() error {
	path := strings.TrimSpace(c.Font.Path)
	if path == "" {
		c.Font.Path = ""
		return nil
	}
	expanded, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("font.path: %w", err)
	}
	c.Font.Path = expanded
	return nil
}

func (c *Config) normalizeVideo() {
	c.Video.FFmpeg = strings.TrimSpace(c.Video.FFmpeg)
	if c.Video.FFmpeg == "" {
		c.Video.FFmpeg = defaultFFmpeg
	}
	c.Video.FFprobe = strings.TrimSpace(c.Video.FFprobe)
	if c.Video.FFprobe == "" {
		c.Video.FFprobe = defaultFFprobe
	}
	c.Video.Preset = strings.ToLower(strings.TrimSpace(c.Video.Preset))
	if c.Video.Preset == "" {
		c.Video.Preset = defaultPreset
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console", "text":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
