package siphon

import (
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultOptions is applied once at construction if the caller doesn't
// supply their own Options.
var DefaultOptions = Options{
	Logger: nil, // nil means Nop(), see Options.apply
}

// Options configures a Siphon. NewSiphon starts from a copy of
// DefaultOptions and applies each Option argument to that copy; changes
// made afterwards have no effect on an existing Siphon.
type Options struct {
	// Logger receives TubeFailure/AwaitedFutureFailure diagnostics. A nil
	// Logger disables logging (zerolog.Nop()).
	Logger *zerolog.Logger

	// Limiter is stored with the other options, but nothing reads it:
	// Throttle uses only the rate.Limiter passed to it as an argument.
	Limiter *rate.Limiter
}

func (o Options) apply() Options {
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return o
}

// Option mutates an Options value; used as a functional-option argument
// to NewSiphon.
type Option func(*Options)

// WithLogger sets the Siphon's logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithLimiter sets Options.Limiter. Throttle does not read that field.
func WithLimiter(l *rate.Limiter) Option {
	return func(o *Options) { o.Limiter = l }
}
