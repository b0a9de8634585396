package main

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"
)

// run executes the CLI with args.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return (&app{}).run(ctx, args, stdout, stderr)
}

// run executes one command line. The import store is closed on every path,
// including command failures.
func (a *app) run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	defer func() {
		err = errors.Join(err, a.teardown())
	}()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "keyspace",
		Short:         "Key dictionaries, payload mapping and live key distribution",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $KEYSPACE_CONFIG or ./keyspace.yaml)")
	root.PersistentFlags().StringVar(&a.orgID, "org", "", "organization id (overrides org_id)")

	root.AddCommand(
		newDictCmd(a),
		newKeygenCmd(),
		newMapCmd(a),
		newGraphCmd(a),
		newBundleCmd(a),
		newReplayCmd(a),
	)

	return root
}
