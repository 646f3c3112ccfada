// Command tubedemo wires a tiny three-stage pipeline -- a slice-backed
// fount, an uppercasing tube, and a recording Fitting drain -- to
// demonstrate founts, tubes and series end to end.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fountdrain/tubeflow/siphon"
)

// sliceFount is a minimal Fount over a fixed slice of strings, pushing
// everything it has as soon as a downstream attaches.
type sliceFount struct {
	values []string
	pos    int
	pauser *siphon.Pauser
	drain  siphon.Drain
}

func newSliceFount(values []string) *sliceFount {
	f := &sliceFount{values: values}
	f.pauser = siphon.NewPauser(nil, f.resume)
	return f
}

func (f *sliceFount) OutputType() siphon.TypeTag { return siphon.AnyType }

func (f *sliceFount) FlowTo(drain siphon.Drain) (siphon.Fount, *siphon.Failure) {
	f.drain = drain
	next, fail := drain.FlowingFrom(f)
	if fail != nil {
		f.drain = nil
		return nil, fail
	}
	f.pump()
	return next, nil
}

func (f *sliceFount) PauseFlow() *siphon.PauseHandle { return f.pauser.Pause() }

func (f *sliceFount) StopFlow() { f.pos = len(f.values) }

func (f *sliceFount) resume() { f.pump() }

func (f *sliceFount) pump() {
	for f.drain != nil && !f.pauser.Active() && f.pos < len(f.values) {
		v := f.values[f.pos]
		f.pos++
		f.drain.Receive(v)
	}
	if f.pos >= len(f.values) && f.drain != nil {
		f.drain.FlowStopped(nil)
	}
}

// upperTube uppercases every string it receives.
type upperTube struct{}

func (upperTube) InputType() siphon.TypeTag  { return siphon.AnyType }
func (upperTube) OutputType() siphon.TypeTag { return siphon.AnyType }

func (upperTube) Started() (siphon.Sequence, error) { return siphon.Empty(), nil }

func (upperTube) Received(item any) (siphon.Sequence, error) {
	s, _ := item.(string)
	return siphon.FromValues(strings.ToUpper(s)), nil
}

func (upperTube) Stopped(reason *siphon.Failure) (siphon.Sequence, error) {
	return siphon.Empty(), nil
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	fount := newSliceFount([]string{"hello", "from", "tubeflow"})
	sink := siphon.NewFitting(siphon.AnyType)

	series, fail := siphon.NewSeries(upperTube{}, sink)
	if fail != nil {
		logger.Error().Err(fail).Msg("failed to build series")
		os.Exit(1)
	}

	if _, fail := fount.FlowTo(series); fail != nil {
		logger.Error().Err(fail).Msg("failed to attach fount")
		os.Exit(1)
	}

	for _, v := range sink.Received {
		fmt.Println(v)
	}
	logger.Info().Bool("stopped", sink.DidStop()).Int("count", len(sink.Received)).Msg("pipeline drained")
}
