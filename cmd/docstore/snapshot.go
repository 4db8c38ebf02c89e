package main

import (
	"encoding/json"
	"fmt"

	"github.com/gogotex/docstore/internal/snapshot"
	"github.com/spf13/cobra"
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export or inspect store snapshots in object storage",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Write every stored document to object storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()
			exp := a.exporter()
			if exp == nil {
				return fmt.Errorf("object storage is not configured (MINIO_ENDPOINT)")
			}
			key, err := exp.Export(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <key>",
		Short: "Print a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()
			if a.objects == nil {
				return fmt.Errorf("object storage is not configured (MINIO_ENDPOINT)")
			}
			snap, err := snapshot.Read(cmd.Context(), a.objects, args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		},
	})
	return cmd
}
