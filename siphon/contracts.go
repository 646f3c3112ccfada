package siphon

// TypeTag identifies the declared shape of items flowing through a fount
// or drain. The zero value, AnyType, means "undeclared" -- a type check only
// applies when *both* sides declare a tag.
type TypeTag string

// AnyType is the wildcard TypeTag: a fount or drain that reports it never
// fails a type check against anything.
const AnyType TypeTag = ""

// Fount is a producer endpoint.
type Fount interface {
	// FlowTo attaches drain as this fount's downstream and returns
	// whatever drain.FlowingFrom(self) returned. Passing nil detaches
	// without calling FlowingFrom.
	FlowTo(drain Drain) (Fount, *Failure)

	// PauseFlow requests this fount to suspend production, returning a
	// handle that resumes it on release.
	PauseFlow() *PauseHandle

	// StopFlow requests this fount (and anything feeding it) to shut down.
	StopFlow()

	// OutputType is this fount's declared output type tag, or AnyType.
	OutputType() TypeTag
}

// Drain is a consumer endpoint.
type Drain interface {
	// FlowingFrom binds fount as this drain's upstream and returns the
	// fount that further downstream consumers should attach to (nil for
	// plain terminal drains).
	FlowingFrom(fount Fount) (Fount, *Failure)

	// Receive delivers one item. Legal only while a fount is attached.
	Receive(item any)

	// FlowStopped is the terminal notification that upstream has
	// finished (successfully or not).
	FlowStopped(reason *Failure)

	// InputType is this drain's declared input type tag, or AnyType.
	InputType() TypeTag
}

// Tube is a user-supplied transformation stage. Each
// method returns a lazy Sequence of outputs; a non-nil error is the
// idiomatic-Go rendering of "the callback raised", chosen over panic/recover.
type Tube interface {
	// InputType is the type tag this tube expects from upstream.
	InputType() TypeTag
	// OutputType is the type tag this tube produces downstream.
	OutputType() TypeTag

	// Started is invoked once per attached (upstream, downstream) pair,
	// lazily on first full attach. May yield initial outputs.
	Started() (Sequence, error)
	// Received is invoked once per item delivered from upstream.
	Received(item any) (Sequence, error)
	// Stopped is invoked when upstream notifies FlowStopped. May yield
	// final outputs before the stop propagates downstream.
	Stopped(reason *Failure) (Sequence, error)
}

// Divertable is a Tube that additionally supports being the target of a
// Diverter's divert operation.
type Divertable interface {
	Tube

	// Reassemble is given every output the tube had already produced but
	// not yet delivered downstream at the moment of diversion (pending
	// plus the suspended tail of any active sequence), and returns a lazy
	// sequence of *inputs* -- i.e. values shaped like what Received
	// expects, not what it produces -- to feed into the new downstream in
	// their place.
	Reassemble(unconsumed []any) (Sequence, error)
}
