package siphon

// Pauser is a reference-counted pause token manager.
// Callers stack pauses independently; the underlying resource (whatever
// on_first_pause/on_last_resume represent) is released only when the last
// holder resumes. The counter itself is never exposed; Active reports only
// whether any pause is held (Siphon's fount-half uses it to decide whether
// it is currently holding back delivery).
type Pauser struct {
	onFirstPause func()
	onLastResume func()
	count        int
}

// NewPauser returns a Pauser invoking onFirstPause when its count rises
// from 0 to 1, and onLastResume when it falls back to 0. Either callback
// may be nil.
func NewPauser(onFirstPause, onLastResume func()) *Pauser {
	return &Pauser{onFirstPause: onFirstPause, onLastResume: onLastResume}
}

// Pause increments the counter, firing onFirstPause if it just rose from
// 0 to 1, and returns a single-shot handle for releasing this particular
// pause.
func (p *Pauser) Pause() *PauseHandle {
	p.count++
	if p.count == 1 && p.onFirstPause != nil {
		p.onFirstPause()
	}
	return &PauseHandle{pauser: p}
}

// Active reports whether at least one pause handle is currently held.
func (p *Pauser) Active() bool {
	return p.count > 0
}

// PauseHandle is a single-release ticket acquired from Pauser.Pause.
// Releasing it twice is a usage error.
type PauseHandle struct {
	pauser   *Pauser
	released bool
}

// Unpause releases this handle. Calling it more than once on the same
// handle returns ErrPauseHandleMisuse wrapped in a Failure carrying the
// release-site stack trace, since a double-release is by definition a bug
// in the caller, not a recoverable runtime condition.
func (h *PauseHandle) Unpause() *Failure {
	if h == nil {
		return nil
	}
	if h.released {
		return NewFailure(KindPauseHandleMisuse, ErrPauseHandleMisuse)
	}
	h.released = true
	p := h.pauser
	p.count--
	if p.count == 0 && p.onLastResume != nil {
		p.onLastResume()
	}
	return nil
}
