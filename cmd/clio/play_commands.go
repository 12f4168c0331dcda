package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"clio/internal/collection"
	"clio/internal/services"
	"clio/internal/services/kleio"
)

func newPlayCommand(ctx *commandContext) *cobra.Command {
	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Log and manage listening sessions",
	}

	playCmd.AddCommand(newPlayLogCommand(ctx))
	playCmd.AddCommand(newPlayListCommand(ctx))
	playCmd.AddCommand(newPlayUpdateCommand(ctx))
	playCmd.AddCommand(newPlayDeleteCommand(ctx))

	return playCmd
}

func newPlayLogCommand(ctx *commandContext) *cobra.Command {
	var atFlag string
	var stylusFlag string
	var notesFlag string
	var cleanFlag bool

	cmd := &cobra.Command{
		Use:   "log <release>",
		Short: "Record a play, optionally with a cleaning in the same action",
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
			stylusID, err := resolveStylus(store, stylusFlag)
			if err != nil {
				return err
			}
			playedAt, err := parseAtFlag(atFlag, time.Now())
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

			if _, err := client.LogPlay(opCtx, kleio.PlayRequest{
				ReleaseID: rel.ID,
				StylusID:  stylusID,
				PlayedAt:  playedAt,
				Notes:     notesFlag,
			}); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Logged play of %s at %s\n", rel.Title, playedAt.Local().Format("2006-01-02 15:04"))

			if cleanFlag {
				// The cleaning shares the play's timestamp so it does not
				// count the play it was logged with.
				if _, err := client.LogCleaning(opCtx, kleio.CleaningRequest{
					ReleaseID: rel.ID,
					CleanedAt: playedAt,
				}); err != nil {
					return err
				}
				fmt.Fprintf(out, "Logged cleaning of %s\n", rel.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&atFlag, "at", "", "Play time (default now; 2006-01-02 or 2006-01-02 15:04)")
	cmd.Flags().StringVar(&stylusFlag, "stylus", "", "Stylus ID, or \"active\" for the active stylus")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "Free-form notes for the play")
	cmd.Flags().BoolVar(&cleanFlag, "clean", false, "Also record a cleaning at the same time")
	return cmd
}

func newPlayListCommand(ctx *commandContext) *cobra.Command {
	var query string
	var rangeFlag string
	var fromFlag string
	var toFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plays within a time range",
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

			plays := filterPlays(store.Plays(), start, end)
			if trimmed := strings.TrimSpace(query); trimmed != "" {
				plays = ctx.matcher().Plays(plays, trimmed)
			} else {
				sort.SliceStable(plays, func(i, j int) bool {
					return plays[i].PlayedAt.Time.After(plays[j].PlayedAt.Time)
				})
			}

			if jsonOutput {
				return writeJSON(cmd, plays)
			}

			rows := make([][]string, 0, len(plays))
			for _, play := range plays {
				rows = append(rows, []string{
					play.ID,
					formatTimestamp(play.PlayedAt),
					playReleaseTitle(play),
					playStylusName(play),
					play.Notes,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Played At", "Release", "Stylus", "Notes"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d plays between %s and %s\n",
				len(plays), start.Format("2006-01-02"), end.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Fuzzy filter across release, stylus, and notes")
	cmd.Flags().StringVar(&rangeFlag, "range", "", "Preset range: 7d, 30d, 90d, 1y, or all")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Range start (2006-01-02); requires --to")
	cmd.Flags().StringVar(&toFlag, "to", "", "Range end (2006-01-02); requires --from")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newPlayUpdateCommand(ctx *commandContext) *cobra.Command {
	var atFlag string
	var stylusFlag string
	var notesFlag string

	cmd := &cobra.Command{
		Use:   "update <play-id>",
		Short: "Rewrite an existing play",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.fetchStore(cmd)
			if err != nil {
				return err
			}
			existing, err := findPlay(store, args[0])
			if err != nil {
				return err
			}

			req := kleio.PlayRequest{
				ReleaseID: existing.ReleaseID,
				StylusID:  existing.StylusID,
				PlayedAt:  existing.PlayedAt.Time,
				Notes:     existing.Notes,
			}
			if cmd.Flags().Changed("at") {
				playedAt, err := parseAtFlag(atFlag, time.Now())
				if err != nil {
					return err
				}
				req.PlayedAt = playedAt
			}
			if cmd.Flags().Changed("stylus") {
				stylusID, err := resolveStylus(store, stylusFlag)
				if err != nil {
					return err
				}
				req.StylusID = stylusID
			}
			if cmd.Flags().Changed("notes") {
				req.Notes = notesFlag
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

			if _, err := client.UpdatePlay(opCtx, existing.ID, req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated play %s\n", existing.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&atFlag, "at", "", "New play time")
	cmd.Flags().StringVar(&stylusFlag, "stylus", "", "New stylus ID, \"active\", or empty to clear")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "New notes")
	return cmd
}

func newPlayDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <play-id>",
		Short: "Remove a play",
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

			if _, err := client.DeletePlay(opCtx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted play %s\n", args[0])
			return nil
		},
	}
}

func findPlay(store *collection.Store, id string) (collection.PlayEvent, error) {
	for _, play := range store.Plays() {
		if play.ID == id {
			return play, nil
		}
	}
	return collection.PlayEvent{}, services.Wrap(services.ErrNotFound, "cli", "find play", fmt.Sprintf("no play with ID %q", id), nil)
}

func playReleaseTitle(play collection.PlayEvent) string {
	if play.Release != nil && play.Release.Title != "" {
		return play.Release.Title
	}
	return play.ReleaseID
}

func playStylusName(play collection.PlayEvent) string {
	if play.Stylus != nil && play.Stylus.Name != "" {
		return play.Stylus.Name
	}
	if play.StylusID != nil {
		return *play.StylusID
	}
	return "-"
}
