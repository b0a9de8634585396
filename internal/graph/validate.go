package graph

import (
	"fmt"

	"keyspace/internal/diagnostic"
	"keyspace/internal/registry"
)

// Status is the overall verdict of a validation run.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// Report is the outcome of Validate.
type Report struct {
	Status  Status                  `json:"status"`
	Results []diagnostic.Diagnostic `json:"results"`
	// Offending lists orphaned node ids in node order, without duplicates.
	Offending []string `json:"offendingNodeIds"`
}

// IsOffending reports whether nodeID is an orphan.
func (r Report) IsOffending(nodeID string) bool {
	for _, id := range r.Offending {
		if id == nodeID {
			return true
		}
	}

	return false
}

// Check is an additional editor-level rule. It appends to res; any error
// result fails the report.
type Check func(g *Graph, resolver registry.Resolver, res *diagnostic.Diagnostics)

// Option configures Validate.
type Option func(*options)

type options struct {
	checks []Check
}

// WithCheck runs c after the orphan check.
func WithCheck(c Check) Option {
	return func(o *options) {
		o.checks = append(o.checks, c)
	}
}

// Validate reports nodes bound to key ids the resolver cannot find. A nil
// resolver resolves nothing. A graph without bound nodes passes.
func Validate(g *Graph, resolver registry.Resolver, opts ...Option) Report {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	res := &diagnostic.Diagnostics{}
	report := Report{Status: StatusPass, Offending: []string{}}

	if g == nil {
		report.Results = []diagnostic.Diagnostic{}

		return report
	}

	seen := map[string]struct{}{}

	for _, n := range g.Nodes {
		if !n.IsBound() {
			continue
		}

		if resolver != nil {
			if _, ok := resolver.GetKey(n.KeyID); ok {
				continue
			}
		}

		res.Add(diagnostic.Diagnostic{
			Severity:    diagnostic.SeverityError,
			Code:        "orphaned_binding",
			Message:     fmt.Sprintf("node is bound to unknown key %q", n.KeyID),
			NodeID:      n.ID,
			Subject:     n.KeyID,
			Suggestions: suggest(resolver, n.KeyID),
		})

		if _, dup := seen[n.ID]; !dup {
			seen[n.ID] = struct{}{}
			report.Offending = append(report.Offending, n.ID)
		}
	}

	for _, c := range o.checks {
		c(g, resolver, res)
	}

	report.Results = res.Items
	if report.Results == nil {
		report.Results = []diagnostic.Diagnostic{}
	}

	if res.HasErrors() {
		report.Status = StatusFail
	}

	return report
}

func suggest(resolver registry.Resolver, keyID string) []string {
	if resolver == nil {
		return nil
	}

	return registry.SuggestKeys(resolver, keyID)
}

// DanglingEdges warns about edges whose endpoints are not nodes of the
// graph.
func DanglingEdges(g *Graph, _ registry.Resolver, res *diagnostic.Diagnostics) {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = struct{}{}
	}

	for _, e := range g.Edges {
		for _, end := range []string{e.From, e.To} {
			if _, ok := ids[end]; ok {
				continue
			}

			res.Add(diagnostic.Diagnostic{
				Severity: diagnostic.SeverityWarning,
				Code:     "dangling_edge",
				Message:  fmt.Sprintf("edge %s -> %s references missing node %q", e.From, e.To, end),
				NodeID:   end,
			})
		}
	}
}

// UnboundNodes reports nodes without a key binding as info results.
func UnboundNodes(g *Graph, _ registry.Resolver, res *diagnostic.Diagnostics) {
	for _, n := range g.Nodes {
		if !n.IsBound() {
			res.Add(diagnostic.Diagnostic{
				Severity: diagnostic.SeverityInfo,
				Code:     "unbound_node",
				Message:  "node is not bound to a key",
				NodeID:   n.ID,
			})
		}
	}
}
