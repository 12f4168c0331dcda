package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"clio/internal/logging"
	"clio/internal/services"
	"clio/internal/services/kleio"
	"clio/internal/syncwatch"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Trigger a collection resync on the server",
		Long: "Trigger a collection resync on the server. With --watch the command " +
			"holds a local lock and polls sync progress until the server reports " +
			"completion, then prints the refreshed collection summary.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
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
			snap, err := client.Resync(opCtx)
			cancel()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !watch {
				if snap.IsSyncing {
					fmt.Fprintln(out, "Sync started; run with --watch to follow progress")
				} else {
					fmt.Fprintf(out, "Sync complete: %d releases\n", len(snap.Releases))
				}
				return nil
			}

			release, err := syncwatch.AcquireLock(cfg.WatchLockPath())
			if err != nil {
				return err
			}
			defer release()

			watchCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			watchCtx = services.WithRequestID(watchCtx, uuid.NewString())
			watchCtx, cancelWatch := context.WithTimeout(watchCtx, time.Duration(cfg.Sync.WatchTimeoutSeconds)*time.Second)
			defer cancelWatch()

			var lastStatus string
			poller := syncwatch.New(client,
				syncwatch.WithInterval(time.Duration(cfg.Sync.PollIntervalSeconds)*time.Second),
				syncwatch.WithLogger(logging.NewComponentLogger(ctx.ensureLogger(), "syncwatch")),
				syncwatch.WithProgress(func(state kleio.SyncState) {
					if state.Status != lastStatus {
						fmt.Fprintf(out, "  sync status: %s\n", state.Status)
						lastStatus = state.Status
					}
				}),
			)
			fmt.Fprintln(out, "Watching sync progress (Ctrl-C to stop)...")
			final, err := poller.Run(watchCtx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Sync complete: %d releases, %d plays, last synced %s\n",
				len(final.Releases), len(final.PlayHistory), formatTimestamp(final.LastSynced))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Poll until the sync completes")
	return cmd
}
