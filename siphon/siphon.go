package siphon

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
)

// Siphon is the internal coordinator bridging one Tube to a drain-half
// and a fount-half. Construct one with NewSiphon and obtain its two
// endpoints via Drain and Fount.
type Siphon struct {
	*zerolog.Logger

	tube Tube

	drainHalf *siphonDrain
	fountHalf *siphonFount

	upstream   Fount
	downstream Drain

	flowWasStopped     bool
	flowStoppingReason *Failure
	stopSeqConsumed    bool
	pendingStopSeq     Sequence

	pending []any

	currentIter  Sequence
	currentAwait *Future

	downstreamPausedBySelf *PauseHandle

	startedFired  bool
	stopRequested bool
	terminal      bool

	divertedTo Drain
}

// NewSiphon wraps tube in a new Siphon, ready to be attached via Drain()
// and Fount().
func NewSiphon(tube Tube, opts ...Option) *Siphon {
	o := DefaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	o = o.apply()

	s := &Siphon{Logger: o.Logger, tube: tube}
	s.drainHalf = &siphonDrain{s: s}
	s.fountHalf = &siphonFount{s: s}
	s.fountHalf.pauser = NewPauser(s.fountHalf.onFirstPause, s.fountHalf.onLastResume)
	return s
}

// Drain returns the drain-half: the endpoint upstream founts attach to.
func (s *Siphon) Drain() Drain { return s.drainHalf }

// Fount returns the fount-half: the endpoint downstream drains attach to.
func (s *Siphon) Fount() Fount { return s.fountHalf }

func (s *Siphon) logFailure(f *Failure) {
	if s.Logger == nil || f == nil {
		return
	}
	s.Logger.Error().
		Str("kind", f.Kind.String()).
		Str("error", cast.ToString(f.Unwrap())).
		Msg("siphon: tube failure")
}

// ---- drain-half ----------------------------------------------------

type siphonDrain struct{ s *Siphon }

func (d *siphonDrain) InputType() TypeTag { return d.s.tube.InputType() }

// FlowingFrom binds newUpstream as this siphon's upstream, checking type
// compatibility and carrying over any pause already in effect.
func (d *siphonDrain) FlowingFrom(newUpstream Fount) (Fount, *Failure) {
	s := d.s

	if newUpstream != nil && !Compatible(newUpstream.OutputType(), s.tube.InputType()) {
		return nil, NewFailure(KindTypeMismatch, ErrTypeMismatch)
	}

	// step 2: release any self-pause tied to the old upstream
	if s.downstreamPausedBySelf != nil {
		s.downstreamPausedBySelf.Unpause()
		s.downstreamPausedBySelf = nil
	}

	s.upstream = newUpstream

	if newUpstream != nil {
		if s.stopRequested {
			s.stopRequested = false
			if s.Logger != nil {
				s.Logger.Info().Str("kind", KindStopBeforeAttach.String()).
					Msg("siphon: deferred stop_flow delivered to newly attached upstream")
			}
			newUpstream.StopFlow()
		}
		// step 4: if our fount-half is currently paused by downstream,
		// pause the new upstream equivalently, releasing the pause held on
		// any previous upstream.
		if s.fountHalf.pauser.Active() {
			old := s.fountHalf.upstreamPause
			s.fountHalf.upstreamPause = newUpstream.PauseFlow()
			if old != nil {
				old.Unpause()
			}
		}
	}

	s.checkAttachState()

	return s.fountHalf, nil
}

func (d *siphonDrain) Receive(item any) {
	s := d.s
	if s.terminal || s.flowWasStopped {
		return
	}
	if s.divertedTo != nil {
		s.divertedTo.Receive(item)
		return
	}
	if s.currentIter != nil || s.currentAwait != nil {
		// Contract violation: upstream should have been paused while a
		// sequence was in flight. Drop defensively rather than corrupt state.
		if s.Logger != nil {
			s.Logger.Warn().Msg("siphon: receive called while a sequence is still in flight; dropping")
		}
		return
	}

	seq, err := s.tube.Received(item)
	if err != nil {
		s.terminalFailure(KindTubeFailure, err)
		return
	}
	s.currentIter = seq
	s.pump()
}

func (d *siphonDrain) FlowStopped(reason *Failure) {
	s := d.s
	if s.terminal {
		return
	}
	s.flowWasStopped = true
	s.flowStoppingReason = reason

	seq, err := s.tube.Stopped(reason)
	if err != nil {
		s.terminalFailure(KindTubeFailure, err)
		return
	}

	if s.currentIter != nil || s.currentAwait != nil {
		s.pendingStopSeq = seq
		return
	}
	s.stopSeqConsumed = true
	s.currentIter = seq
	s.pump()
}

// ---- fount-half ------------------------------------------------------

type siphonFount struct {
	s             *Siphon
	pauser        *Pauser
	upstreamPause *PauseHandle
}

func (f *siphonFount) OutputType() TypeTag { return f.s.tube.OutputType() }

// FlowTo attaches newDownstream (or detaches, if nil) as this siphon's
// downstream, flushing any buffered items once attached.
func (f *siphonFount) FlowTo(newDownstream Drain) (Fount, *Failure) {
	s := f.s

	if newDownstream == nil && s.downstream == nil {
		return nil, nil
	}

	s.downstream = newDownstream

	var (
		next Fount
		fail *Failure
	)
	if newDownstream != nil {
		next, fail = newDownstream.FlowingFrom(f)
		if fail != nil {
			s.downstream = nil
			return nil, fail
		}
	}

	s.drainPending()
	s.checkAttachState()

	return next, nil
}

func (f *siphonFount) PauseFlow() *PauseHandle { return f.pauser.Pause() }

func (f *siphonFount) StopFlow() {
	s := f.s
	if s.upstream != nil {
		s.upstream.StopFlow()
	} else {
		s.stopRequested = true
	}
}

func (f *siphonFount) onFirstPause() {
	s := f.s
	if s.upstream != nil {
		f.upstreamPause = s.upstream.PauseFlow()
	}
}

func (f *siphonFount) onLastResume() {
	s := f.s
	if f.upstreamPause != nil {
		f.upstreamPause.Unpause()
		f.upstreamPause = nil
	}
	s.drainPending()
}

// ---- shared siphon machinery ------------------------------------------

// checkAttachState fires tube.Started the first time both upstream and
// downstream are present, and resets startedFired once either detaches
// so a later full reattach fires it again.
func (s *Siphon) checkAttachState() {
	if s.upstream != nil && s.downstream != nil {
		if !s.startedFired {
			s.fireStarted()
		}
	} else {
		s.startedFired = false
	}
}

func (s *Siphon) fireStarted() {
	s.startedFired = true
	seq, err := s.tube.Started()
	if err != nil {
		s.terminalFailure(KindTubeFailure, err)
		return
	}
	if s.currentIter != nil || s.currentAwait != nil {
		s.pendingStopSeq = seq // unlikely at fresh-attach time, but stay safe
		return
	}
	s.currentIter = seq
	s.pump()
}

// selfPauseUpstream takes (if not already held) a pause on upstream kept
// solely by this siphon, independent of any pause a downstream may hold
// through the fount-half's own Pauser.
func (s *Siphon) selfPauseUpstream() {
	if s.downstreamPausedBySelf != nil || s.upstream == nil {
		return
	}
	s.downstreamPausedBySelf = s.upstream.PauseFlow()
}

// maybeReleaseSelfPause releases the self-pause once neither reason for
// holding it (buffered pending items, an in-flight future) remains.
func (s *Siphon) maybeReleaseSelfPause() {
	if s.downstreamPausedBySelf == nil {
		return
	}
	if len(s.pending) > 0 || s.currentAwait != nil {
		return
	}
	s.downstreamPausedBySelf.Unpause()
	s.downstreamPausedBySelf = nil
}

// deliveryTarget returns the drain that currently receives this siphon's
// output: divertedTo once a Divert has taken effect, otherwise the
// ordinary attached downstream.
func (s *Siphon) deliveryTarget() Drain {
	if s.divertedTo != nil {
		return s.divertedTo
	}
	return s.downstream
}

// tryDeliver attempts to hand value to the current delivery target right
// now. It buffers and self-pauses instead if there is no target or the
// fount-half is itself paused.
func (s *Siphon) tryDeliver(value any) bool {
	target := s.deliveryTarget()
	if target == nil || s.fountHalf.pauser.Active() {
		s.pending = append(s.pending, value)
		s.selfPauseUpstream()
		return false
	}
	target.Receive(value)
	return true
}

// drainPending flushes buffered items FIFO as far as it can, then
// resumes a stalled pump once the buffer fully empties.
func (s *Siphon) drainPending() {
	for len(s.pending) > 0 {
		target := s.deliveryTarget()
		if target == nil || s.fountHalf.pauser.Active() {
			return
		}
		v := s.pending[0]
		s.pending = s.pending[1:]
		target.Receive(v)
	}
	s.maybeReleaseSelfPause()
	if s.currentIter != nil && s.currentAwait == nil {
		s.pump()
	}
}

// pump drives the current lazy sequence, pulling one element at a time
// and either delivering it, buffering it (which stalls the pump until
// drainPending resumes it), or suspending on a future.
func (s *Siphon) pump() {
	for {
		if s.currentIter == nil {
			return
		}
		if s.currentAwait != nil {
			return
		}

		out, more, err := s.currentIter.Next()
		if err != nil {
			s.currentIter = nil
			s.terminalFailure(KindTubeFailure, err)
			return
		}

		if !more {
			s.currentIter = nil
			if s.flowWasStopped && !s.stopSeqConsumed {
				s.stopSeqConsumed = true
				if s.pendingStopSeq != nil {
					s.currentIter = s.pendingStopSeq
					s.pendingStopSeq = nil
					continue
				}
			}
			s.maybeReleaseSelfPause()
			if s.flowWasStopped {
				s.propagateStop()
			}
			return
		}

		if fut, ok := out.(*Future); ok {
			s.currentAwait = fut
			s.selfPauseUpstream()
			fut.Then(func(v any, failure *Failure) {
				if s.currentAwait != fut {
					return // stale callback from a diverted/reset siphon
				}
				s.currentAwait = nil
				if failure != nil {
					s.terminalFailureF(NewFailure(KindAwaitedFutureFailure, failure.Unwrap()))
					return
				}
				if s.tryDeliver(v) {
					s.pump()
				}
			})
			return
		}

		if !s.tryDeliver(out) {
			return
		}
	}
}

func (s *Siphon) propagateStop() {
	if target := s.deliveryTarget(); target != nil {
		target.FlowStopped(s.flowStoppingReason)
	}
	s.terminal = true
}

func (s *Siphon) terminalFailure(kind ErrorKind, err error) {
	s.terminalFailureF(NewFailure(kind, err))
}

func (s *Siphon) terminalFailureF(f *Failure) {
	s.logFailure(f)
	if s.upstream != nil {
		s.upstream.StopFlow()
	} else {
		s.stopRequested = true
	}
	s.pending = nil
	s.currentIter = nil
	s.currentAwait = nil
	s.flowWasStopped = true
	s.flowStoppingReason = f
	s.stopSeqConsumed = true
	s.maybeReleaseSelfPause()
	s.propagateStop()
}
