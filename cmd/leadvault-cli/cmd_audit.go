package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/leadvaulthq/leadvault/client"
)

func newAuditCmd() *cobra.Command {
	var opts client.AuditQueryOptions
	var since string

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Query the audit log",
		Run: func(cmd *cobra.Command, args []string) {
			if since != "" {
				t, err := time.Parse(time.RFC3339, since)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error: --since must be RFC3339, e.g. 2026-01-02T15:04:05Z\n")
					os.Exit(1)
				}
				opts.Since = &t
			}
			entries, hasMore, err := apiClient.Audit.Query(context.Background(), &opts)
			if err != nil {
				fatal("query audit", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "ACTION", "BUYER", "ACTOR", "AT"}
				var rows [][]string
				for _, e := range entries {
					buyerID := ""
					if e.BuyerID != nil {
						buyerID = *e.BuyerID
					}
					rows = append(rows, []string{
						fmt.Sprintf("%d", e.ID), e.Action, buyerID, e.Actor,
						e.CreatedAt.Format(time.RFC3339),
					})
				}
				formatTable(headers, rows)
				return
			}
			output(entries, "")
			if hasMore {
				fmt.Fprintln(os.Stderr, "more entries available, raise --limit")
			}
		},
	}

	cmd.Flags().StringVar(&opts.Action, "action", "", "Filter by action, e.g. buyer.update")
	cmd.Flags().StringVar(&opts.BuyerID, "buyer", "", "Filter by buyer ID")
	cmd.Flags().StringVar(&opts.Actor, "actor", "", "Filter by actor ID")
	cmd.Flags().StringVar(&since, "since", "", "Only entries at or after this RFC3339 time")
	cmd.Flags().IntVar(&opts.Limit, "limit", 50, "Max entries")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "Offset")

	return cmd
}
