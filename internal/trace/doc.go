// Package trace records where the checker spends its time.
//
// Spans nest driver, pass, class and method work:
//
//	decaf check --trace=- --trace-level=detail src/
//
// Tracers are carried through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
//
// StreamTracer writes events as they happen. RingTracer keeps the tail
// in memory and is dumped when a file check panics.
package trace
