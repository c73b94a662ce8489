package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/bitfx"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevel string
	var logFormat string

	ctx := newCommandContext(&configFlag, &logLevel, &logFormat)

	rootCmd := &cobra.Command{
		Use:           "bitfx",
		Short:         "Overlay a binary digit grid on images and videos",
		Version:       bitfx.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			return ctx.installLogger(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "Log format (console, json)")

	rootCmd.AddCommand(newImageCommand(ctx))
	rootCmd.AddCommand(newVideoCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
