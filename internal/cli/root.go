// Package cli provides the command-line interface of scriptbinds-gen.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/term"

	"github.com/example/scriptbinds-gen/internal/logging"
)

// ErrNoArguments is returned when the command is run without any flags.
var ErrNoArguments = errors.Base("no arguments given: pass the Doxygen XML directory with -i and the output directory with -o, or see --help")

// Execute creates and runs the root command.
func Execute() error {
	return newRootCommand().ExecuteContext(context.Background())
}

func newRootCommand() *cobra.Command {
	var config Config

	cmd := &cobra.Command{
		Use:   "scriptbinds-gen",
		Short: "Generate script binding descriptors from Doxygen XML",
		Long: `scriptbinds-gen reads the XML output of Doxygen for the engine sources and
writes a descriptor of every script binding class, its methods, their
parameters and return values, for use by script tooling.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().NFlag() == 0 {
				return errors.WithStack(ErrNoArguments)
			}

			level := slog.LevelInfo
			if config.Debug {
				level = slog.LevelDebug
			}
			ctx := logging.SetupStderr(cmd.Context(), logging.Options{Level: level, NoColor: config.NoColor || !term.IsTerminal(int(os.Stderr.Fd()))})

			if err := loadConfigFile(&config, cmd.Flags().Changed); err != nil {
				return err
			}
			if err := config.Validate(); err != nil {
				return err
			}

			_, err := Generate(ctx, &config)
			return err
		},
	}

	cmd.Flags().StringVarP(&config.InputDir, "input", "i", "", "Directory holding the Doxygen XML output (index.xml and one file per class)")
	cmd.Flags().StringVarP(&config.OutputDir, "output", "o", "", "Directory to write the descriptor to")
	cmd.Flags().StringVarP(&config.Format, "format", "f", FormatJSON, "Output format: json, yaml or cbor")
	cmd.Flags().StringVar(&config.ConfigPath, "config", "", "Path to a YAML or TOML config file")
	cmd.Flags().BoolVar(&config.ValidateOutput, "validate", false, "Re-read the written descriptor and check its structure")
	cmd.Flags().BoolVar(&config.Debug, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&config.NoColor, "no-color", false, "Disable colored log output")

	return cmd
}

