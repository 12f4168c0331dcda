package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"clio/internal/collection"
)

func newCollectionCommand(ctx *commandContext) *cobra.Command {
	collectionCmd := &cobra.Command{
		Use:   "collection",
		Short: "Browse the vinyl collection",
	}

	collectionCmd.AddCommand(newCollectionListCommand(ctx))
	collectionCmd.AddCommand(newCollectionShowCommand(ctx))

	return collectionCmd
}

func newCollectionListCommand(ctx *commandContext) *cobra.Command {
	var query string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List releases, optionally filtered by a fuzzy query",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.fetchStore(cmd)
			if err != nil {
				return err
			}

			releases := store.Snapshot().Releases
			if trimmed := strings.TrimSpace(query); trimmed != "" {
				releases = ctx.matcher().Releases(releases, trimmed)
			}

			if jsonOutput {
				return writeJSON(cmd, releases)
			}

			rows := make([][]string, 0, len(releases))
			for _, rel := range releases {
				rows = append(rows, []string{
					rel.ID,
					rel.Title,
					rel.PrimaryArtist(),
					formatYear(rel.Year),
					strconv.Itoa(len(rel.PlayHistory)),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Title", "Artist", "Year", "Plays"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			))
			fmt.Fprintf(out, "%d releases\n", len(releases))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Fuzzy filter across title, artist, genre, and label")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newCollectionShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <release>",
		Short: "Show one release by ID or title",
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

			if jsonOutput {
				return writeJSON(cmd, rel)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader(rel.Title, colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderDetailLine("ID", rel.ID))
			fmt.Fprintln(out, renderDetailLine("Artist", rel.PrimaryArtist()))
			fmt.Fprintln(out, renderDetailLine("Year", formatYear(rel.Year)))
			if len(rel.Genres) > 0 {
				fmt.Fprintln(out, renderDetailLine("Genres", strings.Join(rel.Genres, ", ")))
			}
			if len(rel.Labels) > 0 {
				fmt.Fprintln(out, renderDetailLine("Labels", formatLabels(rel.Labels)))
			}
			if len(rel.Formats) > 0 {
				fmt.Fprintln(out, renderDetailLine("Formats", formatFormats(rel.Formats)))
			}
			fmt.Fprintln(out, renderDetailLine("Plays", strconv.Itoa(len(rel.PlayHistory))))
			fmt.Fprintln(out, renderDetailLine("Cleanings", strconv.Itoa(len(rel.CleaningHistory))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a detail view")
	return cmd
}

func formatYear(year *int) string {
	if year == nil || *year == 0 {
		return "-"
	}
	return strconv.Itoa(*year)
}

func formatLabels(labels []collection.Label) string {
	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		if label.CatalogNo != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", label.Name, label.CatalogNo))
			continue
		}
		parts = append(parts, label.Name)
	}
	return strings.Join(parts, ", ")
}

func formatFormats(formats []collection.Format) string {
	parts := make([]string, 0, len(formats))
	for _, format := range formats {
		name := format.Name
		if len(format.Descriptions) > 0 {
			name = fmt.Sprintf("%s (%s)", name, strings.Join(format.Descriptions, ", "))
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, "; ")
}
