package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"clio/internal/services"
	"clio/internal/services/kleio"
)

func newStylusCommand(ctx *commandContext) *cobra.Command {
	stylusCmd := &cobra.Command{
		Use:   "stylus",
		Short: "Manage the stylus registry",
	}

	stylusCmd.AddCommand(newStylusListCommand(ctx))
	stylusCmd.AddCommand(newStylusAddCommand(ctx))
	stylusCmd.AddCommand(newStylusUpdateCommand(ctx))
	stylusCmd.AddCommand(newStylusDeleteCommand(ctx))
	stylusCmd.AddCommand(newStylusActivateCommand(ctx))

	return stylusCmd
}

func newStylusListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List styluses",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.fetchStore(cmd)
			if err != nil {
				return err
			}
			styluses := store.Snapshot().Styluses

			if jsonOutput {
				return writeJSON(cmd, styluses)
			}

			rows := make([][]string, 0, len(styluses))
			for _, st := range styluses {
				lifespan := "-"
				if st.ExpectedLifespan > 0 {
					lifespan = strconv.Itoa(st.ExpectedLifespan) + "h"
				}
				purchased := "never"
				if st.PurchaseDate != nil {
					purchased = st.PurchaseDate.Time.Local().Format("2006-01-02")
				}
				rows = append(rows, []string{
					st.ID,
					st.Name,
					st.Manufacturer,
					lifespan,
					purchased,
					yesNo(st.Active),
					yesNo(st.Primary),
					yesNo(st.Owned),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Manufacturer", "Lifespan", "Purchased", "Active", "Primary", "Owned"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

type stylusFlags struct {
	manufacturer string
	lifespan     int
	purchased    string
	active       bool
	primary      bool
	owned        bool
}

func (f *stylusFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.manufacturer, "manufacturer", "", "Manufacturer name")
	cmd.Flags().IntVar(&f.lifespan, "lifespan", 0, "Expected lifespan in hours of play")
	cmd.Flags().StringVar(&f.purchased, "purchased", "", "Purchase date (2006-01-02)")
	cmd.Flags().BoolVar(&f.active, "active", false, "Mark as the stylus in use")
	cmd.Flags().BoolVar(&f.primary, "primary", false, "Mark as the primary stylus")
	cmd.Flags().BoolVar(&f.owned, "owned", true, "Mark as owned (as opposed to wishlisted)")
}

func (f *stylusFlags) purchaseDate() (*time.Time, error) {
	if f.purchased == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", f.purchased, time.Local)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "cli", "parse purchase date",
			fmt.Sprintf("unrecognized date %q (expected 2006-01-02)", f.purchased), nil)
	}
	return &parsed, nil
}

func newStylusAddCommand(ctx *commandContext) *cobra.Command {
	var flags stylusFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a stylus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			purchaseDate, err := flags.purchaseDate()
			if err != nil {
				return err
			}

			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			opCtx, cancel, err := ctx.opContext(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			if _, err := client.CreateStylus(opCtx, kleio.StylusRequest{
				Name:             args[0],
				Manufacturer:     flags.manufacturer,
				ExpectedLifespan: flags.lifespan,
				PurchaseDate:     purchaseDate,
				Active:           flags.active,
				Primary:          flags.primary,
				Owned:            flags.owned,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added stylus %s\n", args[0])
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newStylusUpdateCommand(ctx *commandContext) *cobra.Command {
	var flags stylusFlags
	var name string

	cmd := &cobra.Command{
		Use:   "update <stylus-id>",
		Short: "Rewrite an existing stylus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.fetchStore(cmd)
			if err != nil {
				return err
			}
			existing, ok := store.Stylus(args[0])
			if !ok {
				return services.Wrap(services.ErrNotFound, "cli", "find stylus",
					fmt.Sprintf("no stylus with ID %q", args[0]), nil)
			}

			req := kleio.StylusRequest{
				Name:             existing.Name,
				Manufacturer:     existing.Manufacturer,
				ExpectedLifespan: existing.ExpectedLifespan,
				Active:           existing.Active,
				Primary:          existing.Primary,
				Owned:            existing.Owned,
			}
			if existing.PurchaseDate != nil {
				date := existing.PurchaseDate.Time
				req.PurchaseDate = &date
			}
			if cmd.Flags().Changed("name") {
				req.Name = name
			}
			if cmd.Flags().Changed("manufacturer") {
				req.Manufacturer = flags.manufacturer
			}
			if cmd.Flags().Changed("lifespan") {
				req.ExpectedLifespan = flags.lifespan
			}
			if cmd.Flags().Changed("purchased") {
				purchaseDate, err := flags.purchaseDate()
				if err != nil {
					return err
				}
				req.PurchaseDate = purchaseDate
			}
			if cmd.Flags().Changed("active") {
				req.Active = flags.active
			}
			if cmd.Flags().Changed("primary") {
				req.Primary = flags.primary
			}
			if cmd.Flags().Changed("owned") {
				req.Owned = flags.owned
			}

			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			opCtx, cancel, err := ctx.opContext(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			if _, err := client.UpdateStylus(opCtx, existing.ID, req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated stylus %s\n", existing.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New stylus name")
	flags.register(cmd)
	return cmd
}

func newStylusDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <stylus-id>",
		Short: "Remove a stylus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			opCtx, cancel, err := ctx.opContext(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			if _, err := client.DeleteStylus(opCtx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted stylus %s\n", args[0])
			return nil
		},
	}
}

func newStylusActivateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <stylus-id>",
		Short: "Mark a stylus as the one in use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			opCtx, cancel, err := ctx.opContext(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			snap, err := client.ActivateStylus(opCtx, args[0])
			if err != nil {
				return err
			}
			name := args[0]
			if st, ok := snap.ActiveStylus(); ok {
				name = st.Name
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Activated stylus %s\n", name)
			return nil
		},
	}
}
