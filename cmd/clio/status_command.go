package main

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"clio/internal/status"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status [release]",
		Short: "Show cleanliness and play recency for releases",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.fetchStore(cmd)
			if err != nil {
				return err
			}
			now := time.Now()

			if len(args) == 1 {
				rel, err := resolveRelease(store, ctx.matcher(), args[0])
				if err != nil {
					return err
				}
				report := status.ForRelease(rel, now)
				if jsonOutput {
					return writeJSON(cmd, report)
				}
				renderStatusDetail(cmd, report)
				return nil
			}

			releases := store.Snapshot().Releases
			reports := make([]status.Report, 0, len(releases))
			for _, rel := range releases {
				reports = append(reports, status.ForRelease(rel, now))
			}
			// Dirtiest first so the records that need attention lead.
			sort.SliceStable(reports, func(i, j int) bool {
				return reports[i].Cleanliness.Score > reports[j].Cleanliness.Score
			})

			if jsonOutput {
				return writeJSON(cmd, reports)
			}

			colorize := shouldColorize(cmd.OutOrStdout())
			rows := make([][]string, 0, len(reports))
			for _, report := range reports {
				rows = append(rows, []string{
					report.Title,
					report.Artist,
					colorizeMetric(report.Cleanliness.Label, report.Cleanliness.Color, colorize),
					strconv.Itoa(report.PlaysSinceCleaning),
					colorizeMetric(report.Recency.Label, report.Recency.Color, colorize),
					formatTime(report.LastPlayed),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Title", "Artist", "Cleanliness", "Plays Since Clean", "Recency", "Last Played"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func renderStatusDetail(cmd *cobra.Command, report status.Report) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	for _, line := range renderSectionHeader(report.Title, colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderDetailLine("Artist", report.Artist))
	fmt.Fprintln(out, renderDetailLine("Cleanliness",
		fmt.Sprintf("%s (%.0f)", colorizeMetric(report.Cleanliness.Label, report.Cleanliness.Color, colorize), report.Cleanliness.Score)))
	fmt.Fprintln(out, renderDetailLine("Plays since clean", strconv.Itoa(report.PlaysSinceCleaning)))
	fmt.Fprintln(out, renderDetailLine("Last cleaned", formatTime(report.LastCleaned)))
	fmt.Fprintln(out, renderDetailLine("Recency",
		fmt.Sprintf("%s (%.0f)", colorizeMetric(report.Recency.Label, report.Recency.Color, colorize), report.Recency.Score)))
	fmt.Fprintln(out, renderDetailLine("Last played", formatTime(report.LastPlayed)))
}
