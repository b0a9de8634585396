package main

import (
	"encoding/json"
	"fmt"
	"io"

	"keyspace/internal/diagnostic"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func printDiagnostics(w io.Writer, diags []diagnostic.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%-7s %s\n", d.Severity, d)
	}
}
