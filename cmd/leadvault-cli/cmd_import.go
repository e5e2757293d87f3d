package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Bulk import buyer leads from a CSV file",
		Long: `Import buyer leads from a CSV file. Every row is validated before any
row is written: a single invalid row rejects the whole file and the errors
are reported per row. Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			src := os.Stdin
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open csv: %w", err)
				}
				defer f.Close()
				src = f
			}

			result, err := apiClient.Buyers.Import(ctx, src)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			for _, re := range result.Errors {
				fmt.Fprintf(os.Stderr, "row %d: %s\n", re.Row, re.Message)
			}

			if result.Rejected {
				fmt.Fprintf(os.Stderr, "import rejected: %d valid rows, %d with errors, nothing written\n",
					result.ValidRows, len(result.Errors))
				os.Exit(1)
			}

			fmt.Fprintf(os.Stderr, "Imported %d buyers\n", result.Created)

			if len(result.Errors) > 0 {
				os.Exit(1)
			}
			return nil
		},
	}
	return cmd
}
