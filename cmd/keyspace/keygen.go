package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"keyspace/internal/id"
)

func newKeygenCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Print new sortable key ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if n < 1 {
				return fmt.Errorf("-n must be positive, got %d", n)
			}

			for range n {
				k, err := id.NewKeyID()
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), k)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "count", "n", 1, "number of ids")

	return cmd
}
