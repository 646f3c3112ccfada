package siphon

// Sequence is a finite lazy sequence, pulled one item at a time, where
// each item may be a future. Go 1.21, this module's floor, predates the
// standard library's iter.Seq, so this is a small hand-rolled pull
// iterator instead; see DESIGN.md.
//
// An element yielded by Next is either a plain value, or a *Future whose
// eventual success value is itself a plain value (never another Sequence
// or another Future).
type Sequence interface {
	// Next pulls the next element. ok is false once the sequence is
	// exhausted; err aborts the pull and is treated as a TubeFailure by
	// the engine driving it.
	Next() (element any, ok bool, err error)
}

// Empty returns a Sequence with no elements, for tube methods that have
// nothing to yield.
func Empty() Sequence { return &cursorSeq{} }

// FromValues returns a Sequence yielding exactly the given plain values
// (or futures), in order.
func FromValues(values ...any) Sequence { return &cursorSeq{values: values} }

// cursorSeq is a simple stateful cursor over a fixed slice.
type cursorSeq struct {
	values []any
	pos    int
}

func (c *cursorSeq) Next() (any, bool, error) {
	if c.pos >= len(c.values) {
		return nil, false, nil
	}
	v := c.values[c.pos]
	c.pos++
	return v, true, nil
}

// FuncSequence adapts a plain pull function into a Sequence, for tubes
// that want to generate elements computationally rather than from a
// fixed slice.
type FuncSequence func() (any, bool, error)

func (f FuncSequence) Next() (any, bool, error) { return f() }
