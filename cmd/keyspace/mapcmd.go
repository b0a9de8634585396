package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"keyspace/internal/envelope"
	"keyspace/internal/mapping"
)

func newMapCmd(a *app) *cobra.Command {
	var specPath, payloadPath, sourceID string

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Resolve a provider payload into a snapshot envelope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec, err := mapping.LoadFile(specPath)
			if err != nil {
				return err
			}

			payload, err := os.ReadFile(payloadPath)
			if err != nil {
				return fmt.Errorf("read payload: %w", err)
			}

			scope, err := a.scope(cmd.Context())
			if err != nil {
				return err
			}

			engine := mapping.NewEngine()

			diags := mapping.Validate(spec, scope, engine.Transforms())
			printDiagnostics(cmd.ErrOrStderr(), diags.Items)

			snap, err := engine.ResolveJSON(spec, payload, sourceID)
			if err != nil {
				return err
			}

			data, err := envelope.Encode(snap)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))

			if diags.HasErrors() {
				return errFailed
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&specPath, "spec", "", "mapping spec file (YAML or JSON)")
	cmd.Flags().StringVar(&payloadPath, "payload", "", "provider payload JSON file")
	cmd.Flags().StringVar(&sourceID, "source", "cli", "source id stamped on the snapshot")
	_ = cmd.MarkFlagRequired("spec")
	_ = cmd.MarkFlagRequired("payload")

	return cmd
}
