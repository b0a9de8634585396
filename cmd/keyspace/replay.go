package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"keyspace/internal/bus"
	"keyspace/internal/canonical"
	"keyspace/internal/envelope"
)

func newReplayCmd(a *app) *cobra.Command {
	var (
		interval time.Duration
		dump     bool
	)

	cmd := &cobra.Command{
		Use:   "replay <envelopes.jsonl>",
		Short: "Publish recorded envelopes to an in-process bus and print the canonical document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open envelopes: %w", err)
			}
			defer f.Close()

			scope, err := a.scope(ctx)
			if err != nil {
				return err
			}

			b, err := bus.New(bus.WithEventCap(a.cfg.Bus.EventCap), bus.WithLogger(a.logger))
			if err != nil {
				return err
			}

			published, rejected, stale := 0, 0, 0

			err = envelope.Scan(f, func(line int, msg envelope.Message, err error) error {
				if err != nil {
					rejected++
					a.logger.Warn("dropped envelope", "line", line, "error", err)

					return nil
				}

				if published > 0 && interval > 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-time.After(interval):
					}
				}

				res, err := b.Publish(msg)
				if err != nil {
					rejected++
					return nil
				}

				published++
				stale += len(res.Stale)

				return nil
			})
			if err != nil {
				return err
			}

			a.logger.Info("replayed envelopes",
				"published", published,
				"rejected", rejected,
				"stale_writes", stale,
				"version", b.Version(),
				"keys", len(b.Keys()))

			proj, err := canonical.Project(b, scope)
			if err != nil {
				return err
			}

			for _, k := range proj.Unknown {
				a.logger.Warn("key not in any dictionary", "key_id", k)
			}

			for _, k := range proj.Conflicts {
				a.logger.Warn("canonical path conflict", "key_id", k)
			}

			if len(proj.Unmapped) > 0 {
				a.logger.Debug("unmapped keys left out of the document", "keys", proj.Unmapped)
			}

			out := cmd.OutOrStdout()

			var doc bytes.Buffer

			err = json.Indent(&doc, proj.JSON, "", "  ")
			if err != nil {
				return fmt.Errorf("format document: %w", err)
			}

			fmt.Fprintln(out, doc.String())

			if dump {
				for _, k := range b.Keys() {
					rec, _ := b.GetValue(k)

					fmt.Fprintf(out, "%s = ", k)
					spew.Fdump(out, rec)
				}
			}

			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "delay between envelopes")
	cmd.Flags().BoolVar(&dump, "dump", false, "dump every bus record after the document")

	return cmd
}
