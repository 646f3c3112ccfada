package siphon

// Future is a single-shot value that may complete later and may fail.
// There is no goroutine or channel backing it: since the runtime is
// single-threaded and cooperative, a Future completes by having its
// resolver called directly, which runs every registered callback
// synchronously on the caller's goroutine -- as if an ambient event
// reactor were calling back into the engine on the same thread.
type Future struct {
	done    bool
	value   any
	failure *Failure
	pending []func(any, *Failure)
}

// NewFuture returns an unresolved Future along with the resolver funcs
// used to complete it. Exactly one of resolve/fail should be called,
// exactly once; later calls are no-ops.
func NewFuture() (f *Future, resolve func(any), fail func(*Failure)) {
	f = &Future{}
	resolve = func(v any) { f.complete(v, nil) }
	fail = func(failure *Failure) { f.complete(nil, failure) }
	return f, resolve, fail
}

// Resolved returns an already-complete Future wrapping value. Useful for
// tubes that sometimes produce a value synchronously and sometimes not,
// without needing two code paths.
func Resolved(value any) *Future {
	f := &Future{}
	f.complete(value, nil)
	return f
}

// Failed returns an already-complete, failed Future.
func Failed(failure *Failure) *Future {
	f := &Future{}
	f.complete(nil, failure)
	return f
}

func (f *Future) complete(value any, failure *Failure) {
	if f.done {
		return
	}
	f.done = true
	f.value = value
	f.failure = failure
	pending := f.pending
	f.pending = nil
	for _, cb := range pending {
		cb(value, failure)
	}
}

// Then registers cb to run once the future completes: immediately, if it
// already has, or later from within whichever resolve/fail call completes
// it. cb is only ever invoked once.
func (f *Future) Then(cb func(value any, failure *Failure)) {
	if f.done {
		cb(f.value, f.failure)
		return
	}
	f.pending = append(f.pending, cb)
}
