package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"clio/internal/collection"
	"clio/internal/services/kleio"
)

func newCleaningCommand(ctx *commandContext) *cobra.Command {
	cleaningCmd := &cobra.Command{
		Use:   "cleaning",
		Short: "Log and manage record cleanings",
	}

	cleaningCmd.AddCommand(newCleaningLogCommand(ctx))
	cleaningCmd.AddCommand(newCleaningListCommand(ctx))
	cleaningCmd.AddCommand(newCleaningDeleteCommand(ctx))

	return cleaningCmd
}

func newCleaningLogCommand(ctx *commandContext) *cobra.Command {
	var atFlag string
	var notesFlag string

	cmd := &cobra.Command{
		Use:   "log <release>",
		Short: "Record a cleaning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.fetchStore(cmd)
			if err != nil {
				return err
			}
			rel, err := resolveRelease(store, ctx.matcher(), args[0])
			if err != nil {
				return err
			}
			cleanedAt, err := parseAtFlag(atFlag, time.Now())
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

			if _, err := client.LogCleaning(opCtx, kleio.CleaningRequest{
				ReleaseID: rel.ID,
				CleanedAt: cleanedAt,
				Notes:     notesFlag,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged cleaning of %s at %s\n",
				rel.Title, cleanedAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&atFlag, "at", "", "Cleaning time (default now)")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "Free-form notes for the cleaning")
	return cmd
}

// cleaningRow pairs a cleaning with the release it belongs to for list views.
type cleaningRow struct {
	collection.CleaningEvent
	ReleaseTitle string `json:"releaseTitle"`
}

func newCleaningListCommand(ctx *commandContext) *cobra.Command {
	var query string
	var rangeFlag string
	var fromFlag string
	var toFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cleanings within a time range",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.fetchStore(cmd)
			if err != nil {
				return err
			}
			start, end, err := resolveRange(cfg, rangeFlag, fromFlag, toFlag, time.Now())
			if err != nil {
				return err
			}

			releases := store.Snapshot().Releases
			if trimmed := strings.TrimSpace(query); trimmed != "" {
				releases = ctx.matcher().Releases(releases, trimmed)
			}

			var rowsData []cleaningRow
			for _, rel := range releases {
				for _, cleaning := range rel.CleaningHistory {
					if !cleaning.CleanedAt.Valid() {
						continue
					}
					at := cleaning.CleanedAt.Time
					if at.Before(start) || at.After(end) {
						continue
					}
					rowsData = append(rowsData, cleaningRow{CleaningEvent: cleaning, ReleaseTitle: rel.Title})
				}
			}
			sort.SliceStable(rowsData, func(i, j int) bool {
				return rowsData[i].CleanedAt.Time.After(rowsData[j].CleanedAt.Time)
			})

			if jsonOutput {
				return writeJSON(cmd, rowsData)
			}

			rows := make([][]string, 0, len(rowsData))
			for _, row := range rowsData {
				rows = append(rows, []string{
					row.ID,
					formatTimestamp(row.CleanedAt),
					row.ReleaseTitle,
					row.Notes,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Cleaned At", "Release", "Notes"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d cleanings between %s and %s\n",
				len(rowsData), start.Format("2006-01-02"), end.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Fuzzy filter on the release")
	cmd.Flags().StringVar(&rangeFlag, "range", "", "Preset range: 7d, 30d, 90d, 1y, or all")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Range start (2006-01-02); requires --to")
	cmd.Flags().StringVar(&toFlag, "to", "", "Range end (2006-01-02); requires --from")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newCleaningDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <cleaning-id>",
		Short: "Remove a cleaning",
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

			if _, err := client.DeleteCleaning(opCtx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted cleaning %s\n", args[0])
			return nil
		},
	}
}
