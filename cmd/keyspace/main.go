// Package main provides the keyspace CLI.
//
// keyspace works with key dictionaries and the live key space built on them:
//   - validates and flattens dictionary files
//   - resolves provider payloads through mapping specs
//   - checks binding graphs for orphaned keys
//   - imports and exports registry bundles
//   - replays recorded envelopes through an in-process bus
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
