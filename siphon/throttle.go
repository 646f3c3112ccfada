package siphon

import (
	"time"

	"golang.org/x/time/rate"
)

// Throttle wraps tube so that every plain value it yields is instead
// yielded as a Future that resolves once lim allows it through --
// backpressure expressed natively in the futures vocabulary the runtime
// already defines, rather than as a side channel.
//
// The timer that eventually resolves the future is the one place this
// package touches a second goroutine: time.AfterFunc fires resolve on a
// goroutine owned by the Go runtime's timer machinery, not whatever
// goroutine is driving the rest of the pipeline. resolve re-enters
// Siphon.pump and mutates unsynchronized siphon state, so this is a real
// cross-goroutine write, not merely a same-thread callback -- callers
// must ensure nothing else touches the same pipeline while a throttled
// future is outstanding.
func Throttle(tube Tube, lim *rate.Limiter) Tube {
	return &throttled{Tube: tube, lim: lim}
}

type throttled struct {
	Tube
	lim *rate.Limiter
}

func (t *throttled) Started() (Sequence, error) { return t.wrap(t.Tube.Started()) }

func (t *throttled) Received(item any) (Sequence, error) { return t.wrap(t.Tube.Received(item)) }

func (t *throttled) Stopped(reason *Failure) (Sequence, error) {
	return t.wrap(t.Tube.Stopped(reason))
}

func (t *throttled) wrap(inner Sequence, err error) (Sequence, error) {
	if err != nil {
		return nil, err
	}
	return &throttleSeq{inner: inner, lim: t.lim}, nil
}

type throttleSeq struct {
	inner Sequence
	lim   *rate.Limiter
}

func (s *throttleSeq) Next() (any, bool, error) {
	out, more, err := s.inner.Next()
	if err != nil || !more {
		return out, more, err
	}
	if _, already := out.(*Future); already {
		return out, more, nil // already async; don't double-wrap
	}

	future, resolve, _ := NewFuture()
	delay := s.lim.Reserve().Delay()
	if delay <= 0 {
		resolve(out)
	} else {
		value := out
		time.AfterFunc(delay, func() { resolve(value) })
	}
	return future, true, nil
}
