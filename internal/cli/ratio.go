package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/oncolour/internal/colour"
)

// wcagLevel is a named WCAG 2.0 contrast requirement.
type wcagLevel struct {
	Name string  `json:"name"`
	Min  float64 `json:"min"`
	Pass bool    `json:"pass"`
}

// ratioReport is the output of the ratio command.
type ratioReport struct {
	Foreground string      `json:"foreground"`
	Background string      `json:"background"`
	Ratio      float64     `json:"ratio"`
	Levels     []wcagLevel `json:"levels"`
}

func newRatioCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "ratio <foreground> <background>",
		Short: "Show the WCAG contrast ratio of two colours",
		Long: `Show the WCAG 2.0 contrast ratio between a foreground and a background
colour and which conformance levels it meets.

A translucent background is drawn on white and a translucent foreground
is drawn on the background before measuring.

Examples:
  oncolour ratio "#ffffff" "#3366ff"
  oncolour ratio -f json black "rgba(255, 200, 0, 0.6)"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRatio(cmd, args, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json)")

	return cmd
}

// runRatio executes the ratio command.
func runRatio(cmd *cobra.Command, args []string, format string) error {
	fg, err := colour.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid foreground: %w", err)
	}
	bg, err := colour.Parse(args[1])
	if err != nil {
		return fmt.Errorf("invalid background: %w", err)
	}

	report := newRatioReport(fg, bg)
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "text":
		fmt.Fprintf(out, "%s on %s: %.2f:1\n", report.Foreground, report.Background, report.Ratio)
		for _, l := range report.Levels {
			result := "fail"
			if l.Pass {
				result = "pass"
			}
			fmt.Fprintf(out, "  %-16s %-4s (%.1f:1)\n", l.Name, result, l.Min)
		}
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", format)
	}

	return nil
}

func newRatioReport(fg, bg colour.Colour) ratioReport {
	bg = bg.Flatten(colour.White)
	fg = fg.Flatten(bg)
	ratio := colour.ContrastRatio(fg, bg)

	levels := []wcagLevel{
		{Name: "AA", Min: colour.ContrastAA},
		{Name: "AA large", Min: colour.ContrastAALarge},
		{Name: "AAA", Min: colour.ContrastAAA},
		{Name: "AAA large", Min: colour.ContrastAAALarge},
	}
	for i := range levels {
		levels[i].Pass = ratio >= levels[i].Min
	}

	return ratioReport{
		Foreground: fg.Hex(),
		Background: bg.Hex(),
		Ratio:      ratio,
		Levels:     levels,
	}
}
