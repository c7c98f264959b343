package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/performance-dashboard/internal/cli"
	"github.com/Veraticus/performance-dashboard/internal/products"
)

func productsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List product date windows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				file = productDatesPath()
			}
			loader := products.NewLoader(stderrNotifier(cmd.ErrOrStderr()))
			return cli.RenderProducts(cmd.OutOrStdout(), loader.Load(file))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "product dates JSON file (default: products.file setting)")
	return cmd
}
