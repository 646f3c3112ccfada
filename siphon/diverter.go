package siphon

import "github.com/pkg/errors"

// Diverter wraps a Divertable tube, exposing the same Drain/Fount
// endpoints a plain Siphon would, plus Divert: the operation that
// atomically reroutes everything downstream of it, mid-flow.
type Diverter struct {
	*Siphon
	tube Divertable
}

// NewDiverter wraps tube in a Diverter.
func NewDiverter(tube Divertable, opts ...Option) *Diverter {
	return &Diverter{Siphon: NewSiphon(tube, opts...), tube: tube}
}

// Divert collects every output already produced by the wrapped tube but
// not yet delivered downstream, reassembles it into fresh input values
// via tube.Reassemble, attaches newDownstream in the old downstream's
// place, and feeds the reassembled inputs straight to newDownstream --
// bypassing the tube entirely.
func (d *Diverter) Divert(newDownstream Drain) *Failure {
	s := d.Siphon

	unconsumed := s.collectUnconsumed()

	seq, err := d.tube.Reassemble(unconsumed)
	if err != nil {
		f := NewFailure(KindTubeFailure, errors.Wrap(ErrDivertFailed, err.Error()))
		s.terminalFailureF(f)
		return f
	}

	// From here on, any receive on the drain-half routes straight to
	// newDownstream, bypassing the tube (step 4). The siphon's own
	// fount-half stops producing: detach whatever it was feeding.
	s.divertedTo = newDownstream
	s.downstream = nil

	s.pumpInto(seq)
	return nil
}

// collectUnconsumed gathers the siphon's buffered pending items plus, if a
// sequence is still active, all not-yet-pulled elements from it. A future
// already pulled but not yet resolved can't be materialized without
// blocking, so it (and anything the tube would have produced after it) is
// left out -- those values are lost on diversion mid-future, the same way
// pending values after a failing future are discarded elsewhere.
func (s *Siphon) collectUnconsumed() []any {
	unconsumed := append([]any(nil), s.pending...)
	s.pending = nil

	if s.currentIter != nil && s.currentAwait == nil {
		for {
			out, more, err := s.currentIter.Next()
			if err != nil || !more {
				break
			}
			if _, ok := out.(*Future); ok {
				break
			}
			unconsumed = append(unconsumed, out)
		}
	}
	s.currentIter = nil
	s.currentAwait = nil

	return unconsumed
}

// pumpInto feeds seq's elements to whichever drain deliveryTarget reports
// at the moment each element is ready to deliver -- not the drain that
// was current when Divert was called -- so a re-entrant call to Divert
// that fires mid-reassembly is honored correctly.
//
// Unlike the ordinary pump/tryDeliver path, pumpInto pushes straight
// through regardless of the fount-half's pause state: newDownstream is
// attached and fed synchronously within Divert, with no chance yet for
// it to have requested a pause of its own. A downstream that paused
// before Divert ran would have its pause ignored here.
func (s *Siphon) pumpInto(seq Sequence) {
	out, more, err := seq.Next()
	if err != nil {
		f := NewFailure(KindTubeFailure, err)
		s.logFailure(f)
		if target := s.deliveryTarget(); target != nil {
			target.FlowStopped(f)
		}
		return
	}
	if !more {
		return
	}

	if fut, ok := out.(*Future); ok {
		fut.Then(func(v any, failure *Failure) {
			if failure != nil {
				s.logFailure(failure)
				if target := s.deliveryTarget(); target != nil {
					target.FlowStopped(failure)
				}
				return
			}
			if target := s.deliveryTarget(); target != nil {
				target.Receive(v)
			}
			s.pumpInto(seq)
		})
		return
	}

	if target := s.deliveryTarget(); target != nil {
		target.Receive(out)
	}
	s.pumpInto(seq)
}
