// Package trace records what the registry and the dxop commands do.
//
// Tracing is enabled from the command line:
//
//	dxop emit --trace=- --trace-level=debug
//
// A StreamTracer writes events as they happen, a RingTracer keeps the last
// events for a dump at exit, and Tee combines them. Events carry a Scope:
// ScopeDriver for a command, ScopeUnit for one compilation unit and
// ScopeSymbol for each aggregate type or declaration the registry creates or
// adopts. The Level decides the finest scope that is recorded.
//
// The tracer travels on the command context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeUnit, "emit")
//	defer span.End("")
package trace
