package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"clio/internal/analytics"
	"clio/internal/collection"
	"clio/internal/config"
)

var titleCaser = cases.Title(language.English)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Listening statistics",
	}

	statsCmd.AddCommand(newStatsFrequencyCommand(ctx))
	statsCmd.AddCommand(newStatsDurationCommand(ctx))
	statsCmd.AddCommand(newStatsDistributionCommand(ctx))

	return statsCmd
}

type seriesFlags struct {
	group string
	rng   string
	from  string
	to    string
	json  bool
}

func (f *seriesFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.group, "group", "g", "", "Bucket granularity: daily, weekly, or monthly")
	cmd.Flags().StringVar(&f.rng, "range", "", "Preset range: 7d, 30d, 90d, 1y, or all")
	cmd.Flags().StringVar(&f.from, "from", "", "Range start (2006-01-02); requires --to")
	cmd.Flags().StringVar(&f.to, "to", "", "Range end (2006-01-02); requires --from")
	cmd.Flags().BoolVar(&f.json, "json", false, "Emit JSON instead of a table")
}

// resolveSeries turns the shared series flags into concrete buckets.
func (f *seriesFlags) resolveSeries(ctx *commandContext, cmd *cobra.Command, value func(collection.PlayEvent) float64) (analytics.Frequency, []analytics.Bucket, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return "", nil, err
	}
	store, err := ctx.fetchStore(cmd)
	if err != nil {
		return "", nil, err
	}

	grouping := strings.TrimSpace(f.group)
	if grouping == "" {
		grouping = cfg.Analytics.DefaultGrouping
	}
	freq, err := analytics.ParseFrequency(grouping)
	if err != nil {
		return "", nil, err
	}
	start, end, err := resolveRange(cfg, f.rng, f.from, f.to, time.Now())
	if err != nil {
		return "", nil, err
	}

	buckets := analytics.GroupByFrequency(store.Plays(), start, end, freq, value)
	return freq, buckets, nil
}

func renderSeries(cmd *cobra.Command, title string, buckets []analytics.Bucket, valueHeader string, format func(float64) string) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	for _, line := range renderSectionHeader(title, colorize) {
		fmt.Fprintln(out, line)
	}

	var peak float64
	for _, bucket := range buckets {
		if bucket.Value > peak {
			peak = bucket.Value
		}
	}
	rows := make([][]string, 0, len(buckets))
	for _, bucket := range buckets {
		rows = append(rows, []string{
			bucket.Key,
			format(bucket.Value),
			renderBar(bucket.Value, peak),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Bucket", valueHeader, ""},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	))
}

func newStatsFrequencyCommand(ctx *commandContext) *cobra.Command {
	var flags seriesFlags

	cmd := &cobra.Command{
		Use:   "frequency",
		Short: "Plays per day, week, or month",
		RunE: func(cmd *cobra.Command, args []string) error {
			freq, buckets, err := flags.resolveSeries(ctx, cmd, analytics.CountOf)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(cmd, buckets)
			}
			renderSeries(cmd, titleCaser.String(string(freq))+" Play Frequency", buckets, "Plays",
				func(v float64) string { return strconv.Itoa(int(v)) })
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newStatsDurationCommand(ctx *commandContext) *cobra.Command {
	var flags seriesFlags

	cmd := &cobra.Command{
		Use:   "duration",
		Short: "Listening minutes per day, week, or month",
		RunE: func(cmd *cobra.Command, args []string) error {
			freq, buckets, err := flags.resolveSeries(ctx, cmd, analytics.MinutesOf)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(cmd, buckets)
			}
			renderSeries(cmd, titleCaser.String(string(freq))+" Listening Time", buckets, "Minutes",
				func(v float64) string { return strconv.FormatFloat(v, 'f', 0, 64) })
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newStatsDistributionCommand(ctx *commandContext) *cobra.Command {
	var byFlag string
	var topFlag int
	var sortFlag string
	var rangeFlag string
	var fromFlag string
	var toFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "distribution",
		Short: "Play distribution by artist, genre, or release",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.fetchStore(cmd)
			if err != nil {
				return err
			}

			dim, err := analytics.ParseDimension(byFlag)
			if err != nil {
				return err
			}
			start, end, err := resolveRange(cfg, rangeFlag, fromFlag, toFlag, time.Now())
			if err != nil {
				return err
			}

			plays := filterPlays(store.Plays(), start, end)
			slices := analytics.Distribute(plays, dim)
			top := resolveTop(cfg, cmd, topFlag)
			switch strings.ToLower(strings.TrimSpace(sortFlag)) {
			case "", "count":
				slices = analytics.TopByCount(slices, top)
			case "duration", "minutes":
				slices = analytics.TopByMinutes(slices, top)
			default:
				return fmt.Errorf("unknown sort %q (expected count or duration)", sortFlag)
			}
			slices = analytics.Colorize(slices)

			if jsonOutput {
				return writeJSON(cmd, slices)
			}

			var peak float64
			for _, slice := range slices {
				if float64(slice.Count) > peak {
					peak = float64(slice.Count)
				}
			}
			rows := make([][]string, 0, len(slices))
			for _, slice := range slices {
				rows = append(rows, []string{
					slice.Label,
					strconv.Itoa(slice.Count),
					strconv.FormatFloat(slice.Minutes, 'f', 0, 64),
					renderBar(float64(slice.Count), peak),
				})
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Plays By "+titleCaser.String(string(dim)), colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderTable(
				[]string{titleCaser.String(string(dim)), "Plays", "Minutes", ""},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&byFlag, "by", "artist", "Dimension: artist, genre, or release")
	cmd.Flags().IntVar(&topFlag, "top", 0, "Keep only the top N labels (0 uses the configured default)")
	cmd.Flags().StringVar(&sortFlag, "sort", "count", "Order by count or duration")
	cmd.Flags().StringVar(&rangeFlag, "range", "", "Preset range: 7d, 30d, 90d, 1y, or all")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Range start (2006-01-02); requires --to")
	cmd.Flags().StringVar(&toFlag, "to", "", "Range end (2006-01-02); requires --from")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func resolveTop(cfg *config.Config, cmd *cobra.Command, topFlag int) int {
	if cmd.Flags().Changed("top") {
		return topFlag
	}
	return cfg.Analytics.DefaultTop
}
