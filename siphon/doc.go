// Package siphon implements a typed dataflow pipeline runtime: founts
// (producers), drains (consumers) and tubes (transformation stages) wired
// together by a siphon, the internal coordinator that pulls items from a
// tube, feeds them through user code that may yield zero or more outputs
// -- including not-yet-resolved futures -- and pushes results downstream
// while honoring pause and stop signals in both directions.
//
// The runtime is single-threaded and cooperative: every transition is
// synchronous except waiting on a Future, which completes via a callback
// invoked on the same goroutine that resolves it. There is no locking
// inside a Siphon; callers must not drive the same pipeline concurrently
// from multiple goroutines. This is for single-threaded use.
package siphon
