package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"keyspace/internal/dictionary"
)

func newDictCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Work with key dictionaries",
	}

	cmd.AddCommand(newDictValidateCmd(a), newDictFlattenCmd())

	return cmd
}

func newDictValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate dictionary files against the contract",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0

			for _, path := range args {
				d, err := dictionary.LoadFile(path)
				if err != nil {
					failed++

					fmt.Fprintf(out, "FAIL %s: %v\n", path, err)

					continue
				}

				keys := d.Keys()
				mapped := 0

				for _, k := range keys {
					if k.IsMapped() {
						mapped++
					}
				}

				fmt.Fprintf(out, "ok   %s: %s@%s, %d keys (%d mapped)\n", path, d.ID, d.Version, len(keys), mapped)
			}

			if failed > 0 {
				a.logger.Error("dictionary validation failed", "files", len(args), "failed", failed)
				return errFailed
			}

			return nil
		},
	}
}

func newDictFlattenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flatten <file>",
		Short: "List every key with its breadcrumb",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dictionary.LoadFile(args[0])
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "BREADCRUMB\tKEY\tALIAS\tTYPE\tKIND\tPATH")

			for _, e := range dictionary.Flatten(d) {
				path := e.Key.CanonicalPath
				if path == "" {
					path = "-"
				}

				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					strings.Join(e.Breadcrumb, " > "), e.Key.ID, e.Key.Alias,
					e.Key.ValueType, e.Key.Kind, path)
			}

			return tw.Flush()
		},
	}
}
