// Package diag is the diagnostic model for registry defects, snapshot drift
// and configuration errors.
//
// A Diagnostic names the opcode, symbol or config key it concerns in Subject
// rather than a source position. Producers report through a Reporter (a *Bag
// in practice); rendering lives in diagfmt.
package diag
