package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/bitfx"
	"github.com/gogpu/bitfx/internal/imageio"
)

const (
	defaultImageInput  = "input.png"
	defaultImageOutput = "output.png"
)

func newImageCommand(ctx *commandContext) *cobra.Command {
	var glyphHeight float64

	cmd := &cobra.Command{
		Use:   "image [input] [output]",
		Short: "Apply the digit overlay to a still image",
		Long: "Darken and blur an image, then cover it with a grid of 0/1 glyphs " +
			"inked with the original colors. Defaults to input.png and output.png.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			height := cfg.Image.GlyphHeight
			if cmd.Flags().Changed("glyph-height") {
				height = glyphHeight
			}
			if height <= 0 {
				return fmt.Errorf("glyph height must be positive, got %g", height)
			}

			job := imageJob{
				input:       argOr(args, 0, defaultImageInput),
				output:      argOr(args, 1, defaultImageOutput),
				glyphHeight: height,
				workers:     cfg.Runtime.Workers,
			}
			sum, err := job.run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sum.render())
			return nil
		},
	}

	cmd.Flags().Float64Var(&glyphHeight, "glyph-height", 0, "Glyph height in pixels (overrides image.glyph_height)")
	return cmd
}

type imageJob struct {
	input       string
	output      string
	glyphHeight float64
	workers     int
}

func (j imageJob) run(ctx *commandContext) (summary, error) {
	start := time.Now()
	logger := bitfx.Logger()

	face, err := ctx.loadFace(j.glyphHeight)
	if err != nil {
		return summary{}, err
	}
	defer face.Close()

	metrics, err := face.CellMetrics()
	if err != nil {
		return summary{}, bitfx.NewStageError(bitfx.StageFont, err)
	}

	img, err := imageio.Load(j.input)
	if err != nil {
		return summary{}, bitfx.NewStageError(bitfx.StageLoad, err)
	}
	frame := bitfx.FrameFromImage(img)

	pipeline, err := bitfx.NewPipeline(metrics, face, bitfx.NewRandomSource(bitfx.DefaultSeed),
		bitfx.WithWorkers(j.workers),
	)
	if err != nil {
		return summary{}, bitfx.NewStageError(bitfx.StageFont, err)
	}
	defer pipeline.Close()

	logger.Info("bitfx: processing image",
		"input", j.input,
		"width", frame.Width(),
		"height", frame.Height(),
		"glyph_height", j.glyphHeight,
	)

	out, err := pipeline.ProcessImage(frame)
	if err != nil {
		return summary{}, err
	}
	if err := imageio.Save(j.output, out.ToImage()); err != nil {
		return summary{}, bitfx.NewStageError(bitfx.StageSave, err)
	}

	cols, rows := bitfx.GridSize(frame.Width(), frame.Height(), metrics)
	return summary{
		input:       j.input,
		output:      j.output,
		width:       frame.Width(),
		height:      frame.Height(),
		cols:        cols,
		rows:        rows,
		glyphHeight: j.glyphHeight,
		frames:      1,
		elapsed:     time.Since(start),
	}, nil
}
