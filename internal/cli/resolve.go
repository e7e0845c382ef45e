package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/oncolour/internal/colour"
	"github.com/jmylchreest/oncolour/internal/contrast"
)

// resolveFlags holds the flags of the resolve command.
type resolveFlags struct {
	strategy  string
	threshold float64
	light     string
	dark      string
	direction string
	degree    float64
	format    string
	preview   bool
}

// resolvedColour is one line of resolve output.
type resolvedColour struct {
	Input string `json:"input"`
	contrast.Result
	ContrastRatio float64 `json:"contrast_ratio,omitempty"`
}

func newResolveCmd() *cobra.Command {
	f := &resolveFlags{}

	cmd := &cobra.Command{
		Use:   "resolve [colour...]",
		Short: "Pick the text colour for one or more backgrounds",
		Long: `Pick a text colour for each background colour given as an argument, or
for each non-empty line of standard input when no arguments are given.

Colours may be hex (#rgb, #rrggbb, #rrggbbaa), rgb()/rgba(), hsl()/hsla()
or CSS colour names. Translucent colours are treated as drawn on white.

Options can also be set with ONCOLOUR_STRATEGY, ONCOLOUR_THRESHOLD,
ONCOLOUR_LIGHT, ONCOLOUR_DARK, ONCOLOUR_DIRECTION and ONCOLOUR_DEGREE.
Flags given on the command line take precedence.

Examples:
  # Black or white text for a background
  oncolour resolve "#3366ff"

  # Bias towards dark text
  oncolour resolve --threshold 0.2 steelblue

  # Complementary hue instead of black/white
  oncolour resolve -s complementary "rgb(255, 0, 0)"

  # Rotate 30 degrees counter-clockwise
  oncolour resolve -s custom --degree 30 -d counterClockwise "#e06c75"

  # Resolve a list of colours as JSON
  cat colours.txt | oncolour resolve -f json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, f)
		},
	}

	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", contrast.StrategyAccessibility.String(),
		"strategy (accessibility, analogous, adjacent, contrast, complementary, custom)")
	cmd.Flags().Float64Var(&f.threshold, "threshold", contrast.DefaultThreshold, "luminance (0-1) above which the dark colour is used")
	cmd.Flags().StringVar(&f.light, "light", contrast.DefaultLightColour, "colour returned for dark backgrounds")
	cmd.Flags().StringVar(&f.dark, "dark", contrast.DefaultDarkColour, "colour returned for light backgrounds and unusable input")
	cmd.Flags().StringVarP(&f.direction, "direction", "d", contrast.DirectionClockwise.String(),
		"hue rotation direction (clockwise, counterClockwise)")
	cmd.Flags().Float64Var(&f.degree, "degree", 0, "hue rotation in degrees for the custom strategy")
	cmd.Flags().StringVarP(&f.format, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&f.preview, "preview", false, "show colour previews (default: on when writing to a terminal)")

	return cmd
}

// runResolve executes the resolve command.
func runResolve(cmd *cobra.Command, args []string, f *resolveFlags) error {
	if f.format != "text" && f.format != "json" {
		return fmt.Errorf("unsupported format: %s (supported: text, json)", f.format)
	}

	envOpts, err := contrast.EnvOptions()
	if err != nil {
		return fmt.Errorf("invalid environment configuration: %w", err)
	}

	flagOpts, err := f.options(cmd.Flags())
	if err != nil {
		return err
	}

	opts := append(envOpts, flagOpts...)
	opts = append(opts, contrast.WithLogger(newLogger(cmd)))
	resolver := contrast.New(opts...)

	inputs := args
	if len(inputs) == 0 {
		if inputs, err = readColours(cmd.InOrStdin()); err != nil {
			return fmt.Errorf("failed to read colours: %w", err)
		}
	}
	if len(inputs) == 0 {
		return errors.New("no colours given")
	}

	results := make([]resolvedColour, 0, len(inputs))
	for _, input := range inputs {
		results = append(results, newResolvedColour(input, resolver.ResolveDetail(input)))
	}

	out := cmd.OutOrStdout()
	if f.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	}

	preview := f.preview
	if !cmd.Flags().Changed("preview") {
		preview = isTerminal(out)
	}

	var sw *swatcher
	if preview {
		sw = newSwatcher(out)
	}

	for _, rc := range results {
		fmt.Fprintln(out, formatResolved(rc, sw))
	}
	return nil
}

// options converts explicitly set flags to resolver options so that unset
// flags do not override environment configuration.
func (f *resolveFlags) options(flags *pflag.FlagSet) ([]contrast.Option, error) {
	var opts []contrast.Option

	if flags.Changed("strategy") {
		s, err := contrast.ParseStrategy(f.strategy)
		if err != nil {
			return nil, fmt.Errorf("invalid --strategy: %w", err)
		}
		opts = append(opts, contrast.WithStrategy(s))
	}
	if flags.Changed("threshold") {
		opts = append(opts, contrast.WithThreshold(f.threshold))
	}
	if flags.Changed("light") {
		opts = append(opts, contrast.WithLightColour(f.light))
	}
	if flags.Changed("dark") {
		opts = append(opts, contrast.WithDarkColour(f.dark))
	}
	if flags.Changed("direction") {
		d, err := contrast.ParseDirection(f.direction)
		if err != nil {
			return nil, fmt.Errorf("invalid --direction: %w", err)
		}
		opts = append(opts, contrast.WithDirection(d))
	}
	if flags.Changed("degree") {
		opts = append(opts, contrast.WithCustomDegree(f.degree))
	}

	return opts, nil
}

func newResolvedColour(input string, res contrast.Result) resolvedColour {
	rc := resolvedColour{Input: input, Result: res}
	if res.Background == "" {
		return rc
	}
	bg, err := colour.Parse(res.Background)
	if err != nil {
		return rc
	}
	if fg, err := colour.Parse(res.Colour); err == nil {
		rc.ContrastRatio = colour.ContrastRatio(fg.Flatten(bg), bg)
	}
	return rc
}

// formatResolved renders one result as "input<TAB>colour", followed by the
// diagnostic when a fallback was taken. sw may be nil.
func formatResolved(rc resolvedColour, sw *swatcher) string {
	var b strings.Builder
	if sw != nil {
		b.WriteString(sw.render(rc.Background, rc.Colour, " Aa "))
		b.WriteString("  ")
	}
	b.WriteString(rc.Input)
	b.WriteString("\t")
	b.WriteString(rc.Colour)
	if rc.Diagnostic != contrast.DiagnosticNone {
		b.WriteString("\t(")
		b.WriteString(rc.Diagnostic.String())
		b.WriteString(")")
	}
	return b.String()
}

// readColours reads one colour per non-empty line.
func readColours(r io.Reader) ([]string, error) {
	var colours []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		colours = append(colours, line)
	}
	return colours, scanner.Err()
}
