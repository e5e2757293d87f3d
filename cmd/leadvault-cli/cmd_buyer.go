package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leadvaulthq/leadvault/client"
)

func newBuyerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buyer",
		Short: "Manage buyer leads",
	}
	cmd.AddCommand(buyerCreateCmd())
	cmd.AddCommand(buyerGetCmd())
	cmd.AddCommand(buyerUpdateCmd())
	cmd.AddCommand(buyerDeleteCmd())
	cmd.AddCommand(buyerListCmd())
	cmd.AddCommand(buyerHistoryCmd())
	return cmd
}

func buyerCreateCmd() *cobra.Command {
	var req client.CreateBuyerRequest
	var budgetMin, budgetMax int64
	var tags string
	cmd := &cobra.Command{
		Use:   "create <full-name>",
		Short: "Create a buyer lead",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req.FullName = args[0]
			if cmd.Flags().Changed("budget-min") {
				req.BudgetMin = &budgetMin
			}
			if cmd.Flags().Changed("budget-max") {
				req.BudgetMax = &budgetMax
			}
			if tags != "" {
				req.Tags = strings.Split(tags, ",")
			}
			buyer, err := apiClient.Buyers.Create(context.Background(), &req)
			if err != nil {
				fatal("create buyer", err)
			}
			output(buyer, buyer.ID)
		},
	}
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Phone number (required)")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.City, "city", "", "City (required)")
	cmd.Flags().StringVar(&req.PropertyType, "property-type", "", "Property type (required)")
	cmd.Flags().StringVar(&req.BHK, "bhk", "", "BHK (required for Apartment/Villa)")
	cmd.Flags().StringVar(&req.Purpose, "purpose", "", "Buy or Rent (required)")
	cmd.Flags().StringVar(&req.Timeline, "timeline", "", "Purchase timeline (required)")
	cmd.Flags().StringVar(&req.Source, "source", "", "Lead source (required)")
	cmd.Flags().StringVar(&req.Status, "status", "", "Initial status (default: New)")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "Free-form notes")
	cmd.Flags().Int64Var(&budgetMin, "budget-min", 0, "Minimum budget in INR")
	cmd.Flags().Int64Var(&budgetMax, "budget-max", 0, "Maximum budget in INR")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	return cmd
}

func buyerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a buyer lead by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			buyer, err := apiClient.Buyers.Get(context.Background(), args[0])
			if err != nil {
				fatal("get buyer", err)
			}
			output(buyer, buyer.ID)
		},
	}
}

func buyerUpdateCmd() *cobra.Command {
	var fullName, email, phone, city, propertyType, bhk, purpose, timeline, source, status, notes string
	var budgetMin, budgetMax int64
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a buyer lead",
		Long: `Update fields on a buyer lead. The record is fetched first so the
update carries its current version; if someone else changed it in between
the server rejects the write and the record must be re-read.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			current, err := apiClient.Buyers.Get(ctx, args[0])
			if err != nil {
				fatal("get buyer", err)
			}

			req := &client.UpdateBuyerRequest{ExpectedUpdatedAt: current.UpdatedAt}
			setIfChanged := func(flag string, target **string, val *string) {
				if cmd.Flags().Changed(flag) {
					*target = val
				}
			}
			setIfChanged("full-name", &req.FullName, &fullName)
			setIfChanged("email", &req.Email, &email)
			setIfChanged("phone", &req.Phone, &phone)
			setIfChanged("city", &req.City, &city)
			setIfChanged("property-type", &req.PropertyType, &propertyType)
			setIfChanged("bhk", &req.BHK, &bhk)
			setIfChanged("purpose", &req.Purpose, &purpose)
			setIfChanged("timeline", &req.Timeline, &timeline)
			setIfChanged("source", &req.Source, &source)
			setIfChanged("status", &req.Status, &status)
			setIfChanged("notes", &req.Notes, &notes)
			if cmd.Flags().Changed("budget-min") {
				req.BudgetMin = &budgetMin
			}
			if cmd.Flags().Changed("budget-max") {
				req.BudgetMax = &budgetMax
			}

			buyer, err := apiClient.Buyers.Update(ctx, args[0], req)
			if err != nil {
				if client.IsVersionConflict(err) {
					fmt.Fprintln(os.Stderr, "Error: record changed, please refresh and retry")
					os.Exit(1)
				}
				fatal("update buyer", err)
			}
			output(buyer, buyer.ID)
		},
	}
	cmd.Flags().StringVar(&fullName, "full-name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&city, "city", "", "City")
	cmd.Flags().StringVar(&propertyType, "property-type", "", "Property type")
	cmd.Flags().StringVar(&bhk, "bhk", "", "BHK")
	cmd.Flags().StringVar(&purpose, "purpose", "", "Buy or Rent")
	cmd.Flags().StringVar(&timeline, "timeline", "", "Purchase timeline")
	cmd.Flags().StringVar(&source, "source", "", "Lead source")
	cmd.Flags().StringVar(&status, "status", "", "Pipeline status")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().Int64Var(&budgetMin, "budget-min", 0, "Minimum budget in INR")
	cmd.Flags().Int64Var(&budgetMax, "budget-max", 0, "Maximum budget in INR")
	return cmd
}

func buyerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a buyer lead",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Buyers.Delete(context.Background(), args[0]); err != nil {
				fatal("delete buyer", err)
			}
			fmt.Println("deleted")
		},
	}
}

func buyerListCmd() *cobra.Command {
	var opts client.BuyerListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List buyer leads",
		Run: func(cmd *cobra.Command, args []string) {
			if opts.Page < 0 || opts.PageSize < 0 {
				fmt.Fprintf(os.Stderr, "Error: --page and --page-size must be non-negative\n")
				os.Exit(1)
			}
			list, err := apiClient.Buyers.List(context.Background(), &opts)
			if err != nil {
				fatal("list buyers", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "NAME", "PHONE", "CITY", "TYPE", "BUDGET", "STATUS", "UPDATED"}
				var rows [][]string
				for _, b := range list.Buyers {
					rows = append(rows, []string{
						b.ID, b.FullName, b.Phone, b.City, b.PropertyType,
						formatBudget(b.BudgetMin, b.BudgetMax), b.Status,
						b.UpdatedAt.Format(time.RFC3339),
					})
				}
				formatTable(headers, rows)
				fmt.Fprintf(os.Stderr, "%d of %d\n", len(list.Buyers), list.Total)
				return
			}
			if flagFmt == "quiet" {
				for _, b := range list.Buyers {
					fmt.Println(b.ID)
				}
				return
			}
			output(list, "")
		},
	}
	cmd.Flags().StringVar(&opts.City, "city", "", "Filter by city")
	cmd.Flags().StringVar(&opts.PropertyType, "property-type", "", "Filter by property type")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&opts.Timeline, "timeline", "", "Filter by timeline")
	cmd.Flags().StringVar(&opts.Search, "search", "", "Search name, phone, email")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort field (default: updatedAt)")
	cmd.Flags().BoolVar(&opts.Descending, "desc", false, "Sort descending")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "Page size")
	return cmd
}

func buyerHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history <id>",
		Short: "Show field change history for a buyer lead",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			entries, hasMore, err := apiClient.Buyers.History(context.Background(), args[0], limit, 0)
			if err != nil {
				fatal("get history", err)
			}
			output(entries, "")
			if hasMore {
				fmt.Fprintln(os.Stderr, "more entries available, raise --limit")
			}
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 5, "Max entries")
	return cmd
}
