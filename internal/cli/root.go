// Package cli implements the formpreview command tree.
package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/goliatone/go-formpreview/internal/config"
	"github.com/goliatone/go-formpreview/internal/logging"
	"github.com/goliatone/go-formpreview/pkg/renderers/prompt"
)

// ErrInvalid is returned when a checked value or form fails validation. The
// details have already been printed.
var ErrInvalid = errors.New("invalid")

type app struct {
	v        *viper.Viper
	settings config.Settings
	logger   *zap.Logger

	// driver replaces the survey prompts; tests script it.
	driver prompt.PromptDriver
}

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	var (
		cfgPath string
		verbose bool
		dev     bool
	)

	cmd := &cobra.Command{
		Use:           "formpreview",
		Short:         "Validate form input and preview markdown with math",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if err := config.Load(v, cfgPath); err != nil {
				return err
			}
			settings, err := config.FromViper(v)
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Options{
				Level:       settings.LogLevel,
				Verbose:     verbose,
				Development: dev || settings.LogDev,
			})
			if err != nil {
				return err
			}
			a.v, a.settings, a.logger = v, settings, logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|json|toml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().BoolVar(&dev, "dev", false, "human-readable console logs")

	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newClampCmd(a))
	cmd.AddCommand(newFormCmd(a))
	cmd.AddCommand(newPreviewCmd(a))
	cmd.AddCommand(newEditCmd(a))
	cmd.AddCommand(newConfigCmd(a))

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }
	return cmd
}
