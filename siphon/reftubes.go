package siphon

// Passthrough is the reference Divertable tube: received yields its input
// unchanged, and reassemble is the identity, handing back exactly the
// unconsumed values it was given. It doubles as a minimal, ready-to-use
// Tube for pipelines that only need type tags and don't otherwise
// transform anything.
type Passthrough struct {
	In, Out TypeTag
}

// NewPassthrough returns a Passthrough declaring the given input/output
// type tags. Pass AnyType for either to leave it undeclared.
func NewPassthrough(in, out TypeTag) *Passthrough {
	return &Passthrough{In: in, Out: out}
}

func (p *Passthrough) InputType() TypeTag  { return p.In }
func (p *Passthrough) OutputType() TypeTag { return p.Out }

func (p *Passthrough) Started() (Sequence, error) { return Empty(), nil }

func (p *Passthrough) Received(item any) (Sequence, error) {
	return FromValues(item), nil
}

func (p *Passthrough) Stopped(reason *Failure) (Sequence, error) { return Empty(), nil }

// Reassemble hands back exactly what it was given: a Passthrough never
// transforms its input, so there is nothing to redo on diversion.
func (p *Passthrough) Reassemble(unconsumed []any) (Sequence, error) {
	return FromValues(unconsumed...), nil
}

// Fitting is a terminal Drain that records everything it receives and
// every stop it observes, for use as the tail of a Series in tests and
// examples.
type Fitting struct {
	In       TypeTag
	Received []any
	Stopped  *Failure
	stopped  bool
}

// NewFitting returns a Fitting declaring the given input type tag.
func NewFitting(in TypeTag) *Fitting {
	return &Fitting{In: in}
}

func (f *Fitting) InputType() TypeTag { return f.In }

func (f *Fitting) FlowingFrom(fount Fount) (Fount, *Failure) { return nil, nil }

func (f *Fitting) Receive(item any) {
	f.Received = append(f.Received, item)
}

func (f *Fitting) FlowStopped(reason *Failure) {
	f.stopped = true
	f.Stopped = reason
}

// DidStop reports whether FlowStopped has fired yet.
func (f *Fitting) DidStop() bool { return f.stopped }
