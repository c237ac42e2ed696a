package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/3-lines-studio/vuebuild/internal/adapters/cli"
	"github.com/3-lines-studio/vuebuild/internal/adapters/env"
)

var rootCmd = &cobra.Command{
	Use:           "vuebuild",
	Short:         "Compile Vue single-file components",
	Long:          `vuebuild compiles .vue components into a JavaScript module and sibling stylesheets`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Version = version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every build step")
	rootCmd.PersistentFlags().String("config", "", "config file (default: vuebuild.toml or vuebuild.yaml in the working directory)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newOutput honours --color.
func newOutput(cmd *cobra.Command) (*cli.Output, error) {
	mode, _ := cmd.Flags().GetString("color")
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	switch mode {
	case "on":
		return cli.NewOutputTo(stdout, stderr, true), nil
	case "off":
		return cli.NewOutputTo(stdout, stderr, false), nil
	case "auto":
		return cli.NewOutputTo(stdout, stderr, isTerminal(stdout) && os.Getenv("NO_COLOR") == ""), nil
	default:
		return nil, fmt.Errorf("invalid --color value %q (want auto, on or off)", mode)
	}
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return env.NewLogger(verbose)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
