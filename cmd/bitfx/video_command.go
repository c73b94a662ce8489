package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/bitfx"
	"github.com/gogpu/bitfx/internal/config"
	"github.com/gogpu/bitfx/internal/video"
)

const (
	defaultVideoInput  = "input.mp4"
	defaultVideoOutput = "output.mp4"
)

func newVideoCommand(ctx *commandContext) *cobra.Command {
	var glyphHeight float64
	var crf int
	var preset string

	cmd := &cobra.Command{
		Use:   "video [input] [output]",
		Short: "Apply the digit overlay to every frame of a video",
		Long: "Decode a video with ffmpeg, apply the digit overlay frame by frame, " +
			"and encode the result as H.264. Defaults to input.mp4 and output.mp4.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			settings := cfg.Video
			if cmd.Flags().Changed("glyph-height") {
				settings.GlyphHeight = glyphHeight
			}
			if cmd.Flags().Changed("crf") {
				settings.CRF = crf
			}
			if cmd.Flags().Changed("preset") {
				settings.Preset = preset
			}
			if settings.GlyphHeight <= 0 {
				return fmt.Errorf("glyph height must be positive, got %g", settings.GlyphHeight)
			}

			job := videoJob{
				input:    argOr(args, 0, defaultVideoInput),
				output:   argOr(args, 1, defaultVideoOutput),
				settings: settings,
				workers:  cfg.Runtime.Workers,
			}
			sum, err := job.run(cmd.Context(), ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sum.render())
			return nil
		},
	}

	cmd.Flags().Float64Var(&glyphHeight, "glyph-height", 0, "Glyph height in pixels (overrides video.glyph_height)")
	cmd.Flags().IntVar(&crf, "crf", 0, "x264 constant rate factor (overrides video.crf)")
	cmd.Flags().StringVar(&preset, "preset", "", "x264 preset (overrides video.preset)")
	return cmd
}

type videoJob struct {
	input    string
	output   string
	settings config.Video
	workers  int
}

func (j videoJob) run(ctx context.Context, cc *commandContext, progressOut io.Writer) (sum summary, err error) {
	start := time.Now()
	logger := bitfx.Logger()

	face, err := cc.loadFace(j.settings.GlyphHeight)
	if err != nil {
		return summary{}, err
	}
	defer face.Close()

	metrics, err := face.CellMetrics()
	if err != nil {
		return summary{}, bitfx.NewStageError(bitfx.StageFont, err)
	}

	info, err := video.Probe(ctx, j.settings.FFprobe, j.input)
	if err != nil {
		return summary{}, bitfx.NewStageError(bitfx.StageLoad, err)
	}
	logger.Info("bitfx: processing video",
		"input", j.input,
		"width", info.Width,
		"height", info.Height,
		"rate", info.Rate,
		"frames", info.Frames,
		"glyph_height", j.settings.GlyphHeight,
	)

	decoder, err := video.NewDecoder(ctx, video.DecoderOptions{
		FFmpeg: j.settings.FFmpeg,
		Path:   j.input,
		Info:   info,
	})
	if err != nil {
		return summary{}, bitfx.NewStageError(bitfx.StageDecode, err)
	}
	defer decoder.Close()

	encoder, err := video.NewEncoder(ctx, video.EncoderOptions{
		FFmpeg: j.settings.FFmpeg,
		Path:   j.output,
		Width:  info.Width,
		Height: info.Height,
		Rate:   info.Rate,
		CRF:    j.settings.CRF,
		Preset: j.settings.Preset,
	})
	if err != nil {
		return summary{}, bitfx.NewStageError(bitfx.StageEncode, err)
	}
	// Frames already handed to ffmpeg are kept even when the run fails.
	defer func() {
		if cerr := encoder.Close(); cerr != nil && err == nil {
			err = bitfx.NewStageError(bitfx.StageEncode, cerr)
		}
	}()

	bar := newProgress(progressOut, info.Frames, "encoding")
	defer bar.finish()

	pipeline, err := bitfx.NewPipeline(metrics, face, bitfx.NewRandomSource(bitfx.DefaultSeed),
		bitfx.WithWorkers(j.workers),
		bitfx.WithObserver(func(int, time.Duration) { bar.add() }),
	)
	if err != nil {
		return summary{}, bitfx.NewStageError(bitfx.StageFont, err)
	}
	defer pipeline.Close()

	written, err := pipeline.Run(ctx, decoder, encoder)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("bitfx: run canceled", "frames", written)
		}
		return summary{}, err
	}

	cols, rows := bitfx.GridSize(info.Width, info.Height, metrics)
	return summary{
		input:       j.input,
		output:      j.output,
		width:       info.Width,
		height:      info.Height,
		cols:        cols,
		rows:        rows,
		glyphHeight: j.settings.GlyphHeight,
		frames:      written,
		rate:        info.Rate,
		elapsed:     time.Since(start),
	}, nil
}
