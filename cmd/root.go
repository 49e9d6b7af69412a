package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/harrisonrobin/ticked/pkg/render"
	"github.com/spf13/cobra"
)

// version will be set by main
var version = "dev"

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	version = v
}

type rootOptions struct {
	configPath string
	verbose    bool
	color      string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ticked",
		Short: "Print your TickTick tasks grouped by due date",
		Long: `ticked signs on to TickTick, fetches your tasks and projects, and prints
them grouped into overdue, today, future and unscheduled.

Credentials are read from ~/.config/ticked/config.yaml:

  login:
    username: you@example.com
    password: secret

or from TICKED_LOGIN_USERNAME and TICKED_LOGIN_PASSWORD.`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(`{{printf "ticked version %s\n" .Version}}`)

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/ticked/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests and timings to stderr")
	cmd.PersistentFlags().StringVar(&opts.color, "color", "", "color output: auto, always or never (overrides config)")

	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errReported):
		return 1
	default:
		render.NewPrinter(stdout, stderr, render.PlainTheme()).Fail(fmt.Sprintf("Error: %v", err))
		return 1
	}
}
