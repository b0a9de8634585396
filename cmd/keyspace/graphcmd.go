package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"keyspace/internal/graph"
)

func newGraphCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Work with binding graphs",
	}

	cmd.AddCommand(newGraphCheckCmd(a))

	return cmd
}

func newGraphCheckCmd(a *app) *cobra.Command {
	var (
		graphPath string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report nodes bound to keys the registry cannot resolve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := graph.LoadFile(graphPath)
			if err != nil {
				return err
			}

			scope, err := a.scope(cmd.Context())
			if err != nil {
				return err
			}

			report := graph.Validate(g, scope,
				graph.WithCheck(graph.DanglingEdges),
				graph.WithCheck(graph.UnboundNodes))

			out := cmd.OutOrStdout()

			if asJSON {
				err = writeJSON(out, report)
				if err != nil {
					return err
				}
			} else {
				printDiagnostics(out, report.Results)
				fmt.Fprintf(out, "%s: %d nodes, %d offending\n", report.Status, len(g.Nodes), len(report.Offending))
			}

			if report.Status == graph.StatusFail {
				return errFailed
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&graphPath, "graph", "", "binding graph file (YAML or JSON)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	_ = cmd.MarkFlagRequired("graph")

	return cmd
}
