package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gogpu/bitfx"
	"github.com/gogpu/bitfx/internal/config"
	"github.com/gogpu/bitfx/internal/logging"
	"github.com/gogpu/bitfx/text"
)

const skipConfigAnnotation = "skipConfigLoad"

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// installLogger builds the process logger from the config, letting the
// --log-level and --log-format flags win. Every record carries a run_id.
func (c *commandContext) installLogger(w io.Writer) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	opts := logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: w,
	}
	if v := flagValue(c.logLevelFlag); v != "" {
		opts.Level = v
	}
	if v := flagValue(c.logFormatFlag); v != "" {
		opts.Format = v
	}
	logger, err := logging.New(opts)
	if err != nil {
		return err
	}
	bitfx.SetLogger(logger.With("run_id", uuid.NewString()))
	return nil
}

// loadFace opens the configured font (or the embedded Go Mono) at the
// given glyph height.
func (c *commandContext) loadFace(glyphHeight float64) (*text.Face, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	var source *text.FontSource
	if cfg.Font.Path != "" {
		source, err = text.NewFontSourceFromFile(cfg.Font.Path)
	} else {
		source, err = text.DefaultFontSource()
	}
	if err != nil {
		return nil, bitfx.NewStageError(bitfx.StageFont, err)
	}

	face, err := source.Face(glyphHeight)
	if err != nil {
		return nil, bitfx.NewStageError(bitfx.StageFont, fmt.Errorf("%s: %w", source.Name(), err))
	}
	return face, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for current := cmd; current != nil; current = current.Parent() {
		if current.Annotations != nil && current.Annotations[skipConfigAnnotation] == "true" {
			return true
		}
	}
	return false
}

func flagValue(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// argOr returns args[i], or fallback when the argument was not given.
func argOr(args []string, i int, fallback string) string {
	if i < len(args) && strings.TrimSpace(args[i]) != "" {
		return args[i]
	}
	return fallback
}
