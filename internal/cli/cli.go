// Package cli defines the memscope command-line interface.
package cli

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/vk/memscope/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// NewRootCmd builds the root command. Analysis output goes to outW; logs go
// to errW so records stay pipeable.
func NewRootCmd(outW, errW io.Writer) *cobra.Command {
	var cfg app.Config

	cmd := &cobra.Command{
		Use:   "memscope [PROFILE]",
		Short: "Automated analysis of raw memory images",
		Long: `Memscope resolves the configuration an analysis plugin needs from a single
image location, constructs the plugin, runs it, and prints the flattened
results. PROFILE is an optional HCL run profile; flags override it.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				cfg.ProfilePath = args[0]
			}
			appConfig, err := app.NewConfig(cfg)
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			a := app.NewApp(outW, errW, appConfig)
			return a.Run(cmd.Context(), appConfig)
		},
	}

	cmd.Flags().StringVarP(&cfg.Location, "file", "f", "", "Location of the memory image (path or file:// URI).")
	cmd.Flags().StringVarP(&cfg.Plugin, "plugin", "p", "", "Name of the analysis plugin to run.")
	cmd.Flags().StringVar(&cfg.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", "info", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")

	cmd.SetOut(outW)
	cmd.SetErr(errW)
	return cmd
}
