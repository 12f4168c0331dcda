package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the server's collection export",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			target := strings.TrimSpace(outFlag)
			if target == "" {
				name := fmt.Sprintf("clio-export-%s.json", time.Now().Format("20060102-150405"))
				target = filepath.Join(cfg.Paths.ExportDir, name)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create export directory: %w", err)
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

			file, err := os.Create(target)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			if err := client.Export(opCtx, file); err != nil {
				file.Close()
				os.Remove(target)
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("finish export file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported collection to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Destination path (default under the configured export directory)")
	return cmd
}
