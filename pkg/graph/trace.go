package graph

import "github.com/npillmayer/schuko/tracing"

// tracer traces to the "graph" trace key.
func tracer() tracing.Trace {
	return tracing.Select("graph")
}
