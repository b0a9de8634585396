package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"keyspace/internal/bundle"
	"keyspace/internal/envelope"
	"keyspace/internal/mapping"
)

func newBundleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Import and export registry bundles",
	}

	cmd.AddCommand(newBundleImportCmd(a), newBundleExportCmd(a))

	return cmd
}

func newBundleImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a bundle's dictionaries into the organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bundle.LoadFile(args[0])
			if err != nil {
				return err
			}

			scope, err := a.scope(cmd.Context())
			if err != nil {
				return err
			}

			res, err := bundle.Import(cmd.Context(), scope, b, a.logger)
			if err != nil {
				return err
			}

			err = writeJSON(cmd.OutOrStdout(), res)
			if err != nil {
				return err
			}

			if len(res.Rejected) > 0 || res.Diagnostics.HasErrors() {
				return errFailed
			}

			return nil
		},
	}
}

func newBundleExportCmd(a *app) *cobra.Command {
	var (
		outPath      string
		mappingPaths []string
		samplePath   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the organization's imported dictionaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := a.scope(cmd.Context())
			if err != nil {
				return err
			}

			var opts []bundle.ExportOption

			for _, path := range mappingPaths {
				spec, err := mapping.LoadFile(path)
				if err != nil {
					return err
				}

				opts = append(opts, bundle.WithMappings(spec))
			}

			if samplePath != "" {
				snap, err := loadSnapshot(samplePath)
				if err != nil {
					return err
				}

				opts = append(opts, bundle.WithSampleSnapshot(snap))
			}

			b, err := bundle.Export(scope, opts...)
			if err != nil {
				return err
			}

			data, err := bundle.Encode(b)
			if err != nil {
				return err
			}

			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			err = os.WriteFile(outPath, data, 0o644)
			if err != nil {
				return fmt.Errorf("write bundle: %w", err)
			}

			a.logger.Info("exported bundle",
				"org_id", b.OrgID,
				"dictionaries", len(b.Dictionaries),
				"path", outPath)

			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to file instead of stdout")
	cmd.Flags().StringArrayVar(&mappingPaths, "mapping", nil, "mapping spec to embed (repeatable)")
	cmd.Flags().StringVar(&samplePath, "sample", "", "snapshot envelope JSON to embed as sample")

	return cmd
}

func loadSnapshot(path string) (*envelope.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sample: %w", err)
	}

	msg, err := envelope.Decode(data)
	if err != nil {
		return nil, err
	}

	snap, ok := msg.(*envelope.Snapshot)
	if !ok {
		return nil, fmt.Errorf("sample %s: want a snapshot envelope, got %s", path, msg.Type())
	}

	return snap, nil
}
