package siphon

// Series is the result of composing tubes (and an optional terminal
// drain) into a single drain.
type Series struct {
	stages []any // flattened original Tube/Drain arguments, for introspection
	head   Drain
	tail   Fount
}

// NewSeries folds stages into a single composite Drain. Each stage is
// either a Tube (wrapped in a fresh Siphon) or a Drain, which must be
// last if present. If stages[0] is itself a *Series built by an earlier
// NewSeries call, it is flattened into this one rather than nested.
func NewSeries(stages ...any) (*Series, *Failure) {
	if len(stages) == 0 {
		return nil, NewFailure(KindTubeFailure, ErrNoStages)
	}

	flat := make([]any, 0, len(stages))
	for i, st := range stages {
		if inner, ok := st.(*Series); ok && i == 0 {
			flat = append(flat, inner.stages...)
			continue
		}
		flat = append(flat, st)
	}

	var (
		firstDrain Drain
		prevFount  Fount
		lastFount  Fount
	)

	for i, st := range flat {
		switch v := st.(type) {
		case Tube:
			sp := NewSiphon(v)
			if i == 0 {
				firstDrain = sp.Drain()
			}
			if prevFount != nil {
				if _, fail := prevFount.FlowTo(sp.Drain()); fail != nil {
					return nil, fail
				}
			}
			prevFount = sp.Fount()
			lastFount = sp.Fount()

		case Drain:
			if i != len(flat)-1 {
				return nil, NewFailure(KindTubeFailure, ErrStageOrder)
			}
			if i == 0 {
				firstDrain = v
			}
			if prevFount != nil {
				if _, fail := prevFount.FlowTo(v); fail != nil {
					return nil, fail
				}
			}
			lastFount = nil

		default:
			return nil, NewFailure(KindTubeFailure, ErrStageType)
		}
	}

	return &Series{stages: flat, head: firstDrain, tail: lastFount}, nil
}

// Stages returns the flattened list of original Tube/Drain arguments
// this series was built from, for introspection and logging.
func (s *Series) Stages() []any {
	return append([]any(nil), s.stages...)
}

func (s *Series) InputType() TypeTag { return s.head.InputType() }

// FlowingFrom binds fount to the first stage, but always hands back this
// series's own tail fount -- not whatever the first stage's FlowingFrom
// returned, which is already spoken for by the second stage wired in at
// construction time.
func (s *Series) FlowingFrom(fount Fount) (Fount, *Failure) {
	if _, fail := s.head.FlowingFrom(fount); fail != nil {
		return nil, fail
	}
	return s.tail, nil
}

func (s *Series) Receive(item any) { s.head.Receive(item) }

func (s *Series) FlowStopped(reason *Failure) { s.head.FlowStopped(reason) }
