package siphon

import "github.com/puzpuzpuz/xsync/v3"

// compatible is the process-wide type-tag compatibility registry, backed
// by xsync.MapOf for lock-free concurrent access: a single process may
// run many independent tubeflow pipelines concurrently, each internally
// single-threaded but started from arbitrary goroutines that may
// register subtypes at init time from package-level var blocks.
var compatible = xsync.NewMapOf[TypeTag, []TypeTag]()

// RegisterSubtype records that a fount declaring output type sub may
// flow into a drain declaring input type super. Meant to be called at
// package init time, before any pipeline using the tags is built.
func RegisterSubtype(sub, super TypeTag) {
	existing, _ := compatible.Load(sub)
	for _, t := range existing {
		if t == super {
			return
		}
	}
	next := make([]TypeTag, len(existing), len(existing)+1)
	copy(next, existing)
	next = append(next, super)
	compatible.Store(sub, next)
}

// Compatible reports whether a fount declaring output and a drain
// declaring input may be connected: if either side is undeclared
// (AnyType), the pair is always compatible; otherwise they must be equal
// or related via RegisterSubtype.
func Compatible(output, input TypeTag) bool {
	if output == AnyType || input == AnyType || output == input {
		return true
	}
	supers, _ := compatible.Load(output)
	for _, t := range supers {
		if t == input {
			return true
		}
	}
	return false
}
