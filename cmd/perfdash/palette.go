package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/performance-dashboard/internal/cli"
	"github.com/Veraticus/performance-dashboard/internal/transform"
)

func paletteCmd() *cobra.Command {
	var (
		name     string
		n        int
		reverse  bool
		gradient string
		to       string
	)

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Preview chart colour palettes",
		Long: `Sample evenly spaced colours from a named sequential scale, or with
--gradient, from a base colour towards another colour.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if n < 0 {
				return fmt.Errorf("-n must not be negative, got %d", n)
			}

			var (
				colors []string
				title  string
				err    error
			)
			if gradient != "" {
				colors, err = transform.GradientColors(gradient, n, to)
				title = fmt.Sprintf("%s → %s", gradient, to)
			} else {
				colors, err = transform.ColorPalette(name, n, reverse)
				title = name
				if reverse {
					title += " (reversed)"
				}
			}
			if err != nil {
				return err
			}
			return cli.RenderSwatches(cmd.OutOrStdout(), title, colors)
		},
	}

	cmd.Flags().StringVar(&name, "name", transform.DefaultPalette,
		"scale name, optionally suffixed _r ("+strings.Join(transform.PaletteNames(), ", ")+")")
	cmd.Flags().IntVarP(&n, "count", "n", 5, "number of colours")
	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "reverse the sampled colours")
	cmd.Flags().StringVar(&gradient, "gradient", "", "gradient base colour (e.g. "+transform.DefaultGradientBase+")")
	cmd.Flags().StringVar(&to, "to", transform.DefaultGradientTo, "gradient target colour")
	return cmd
}
