package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/leadvaulthq/leadvault/client"
)

func newExportCmd() *cobra.Command {
	var outputPath string
	var opts client.BuyerListOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export buyer leads to a CSV file",
		Long: `Export buyer leads matching the given filters to a CSV file with the
standard column layout. Use -o - to write to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if outputPath == "" {
				outputPath = fmt.Sprintf("buyers-%s.csv",
					time.Now().UTC().Format("20060102T150405Z"))
			}

			out := os.Stdout
			if outputPath != "-" {
				f, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer f.Close()
				out = f
			}

			n, err := apiClient.Buyers.Export(ctx, &opts, out)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			if outputPath != "-" {
				fmt.Fprintf(os.Stderr, "Exported %d bytes to %s\n", n, outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: buyers-<timestamp>.csv, use - for stdout)")
	cmd.Flags().StringVar(&opts.City, "city", "", "Filter by city")
	cmd.Flags().StringVar(&opts.PropertyType, "property-type", "", "Filter by property type")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&opts.Timeline, "timeline", "", "Filter by timeline")
	cmd.Flags().StringVar(&opts.Search, "search", "", "Search name, phone, email")

	return cmd
}
