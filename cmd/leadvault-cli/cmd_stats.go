package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show lead pipeline statistics",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := apiClient.Stats(context.Background())
			if err != nil {
				fatal("stats", err)
			}
			if flagFmt == "table" {
				rows := [][]string{{"Total", fmt.Sprintf("%d", resp.Total)}}
				for status, n := range resp.ByStatus {
					rows = append(rows, []string{"Status: " + status, fmt.Sprintf("%d", n)})
				}
				for city, n := range resp.ByCity {
					rows = append(rows, []string{"City: " + city, fmt.Sprintf("%d", n)})
				}
				formatTable([]string{"METRIC", "VALUE"}, rows)
				return
			}
			output(resp, "")
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := apiClient.Health(context.Background())
			if err != nil {
				fatal("health", err)
			}
			output(resp, resp.Status)
		},
	}
}
