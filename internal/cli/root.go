// Package cli provides the command-line interface for oncolour.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/oncolour/internal/version"
)

// NewRootCmd builds the oncolour command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "oncolour",
		Short: "Pick readable text colours for any background",
		Long: `oncolour chooses a text colour to place on top of a background colour.

By default it uses the WCAG relative luminance of the background to pick
between a light and a dark colour. Hue strategies instead rotate the
background around the colour wheel (analogous, adjacent, contrast,
complementary or a custom angle), falling back to the luminance choice
for colours without a hue.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress diagnostics")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newRatioCmd())

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// newLogger configures the diagnostic logger from the global verbose/quiet flags.
func newLogger(cmd *cobra.Command) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	switch {
	case quiet:
		return hclog.New(&hclog.LoggerOptions{
			Name:   "oncolour",
			Output: io.Discard,
			Level:  hclog.Off,
		})
	case verbose:
		return hclog.New(&hclog.LoggerOptions{
			Name:   "oncolour",
			Output: cmd.ErrOrStderr(),
			Level:  hclog.Debug,
		})
	default:
		return hclog.New(&hclog.LoggerOptions{
			Name:   "oncolour",
			Output: cmd.ErrOrStderr(),
			Level:  hclog.Warn,
		})
	}
}
