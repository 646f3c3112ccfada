package siphon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivertRoutesSubsequentItemsToNewDownstream(t *testing.T) {
	up := &testFount{}
	div := NewDiverter(&Passthrough{})
	oldSink := NewFitting(AnyType)
	newSink := NewFitting(AnyType)

	_, fail := up.FlowTo(div.Drain())
	require.Nil(t, fail)
	_, fail = div.Fount().FlowTo(oldSink)
	require.Nil(t, fail)

	up.emit("before")
	require.Nil(t, div.Divert(newSink))
	up.emit("after")

	assert.Equal(t, []any{"before"}, oldSink.Received)
	assert.Equal(t, []any{"after"}, newSink.Received)
}

func TestDivertConservesUnconsumedValues(t *testing.T) {
	up := &testFount{}
	div := NewDiverter(&Passthrough{})
	oldSink := NewFitting(AnyType)
	newSink := NewFitting(AnyType)

	_, fail := up.FlowTo(div.Drain())
	require.Nil(t, fail)
	// Pause the fount-half so delivered items stay buffered in s.pending
	// instead of reaching oldSink -- exactly what Divert must conserve.
	handle := div.Fount().PauseFlow()
	_, fail = div.Fount().FlowTo(oldSink)
	require.Nil(t, fail)

	up.emit("stuck-1")
	require.Len(t, div.pending, 1)

	require.Nil(t, div.Divert(newSink))
	assert.Equal(t, []any{"stuck-1"}, newSink.Received)
	assert.Empty(t, oldSink.Received)

	_ = handle.Unpause()
}

func TestDivertReassembleFailurePropagatesToOldDownstream(t *testing.T) {
	failingReassemble := &reassembleFailsTube{Passthrough: Passthrough{}}
	up := &testFount{}
	div := NewDiverter(failingReassemble)
	oldSink := NewFitting(AnyType)

	_, _ = up.FlowTo(div.Drain())
	_, _ = div.Fount().FlowTo(oldSink)

	fail := div.Divert(NewFitting(AnyType))
	require.NotNil(t, fail)
	assert.True(t, oldSink.DidStop())
}

type reassembleFailsTube struct{ Passthrough }

func (r *reassembleFailsTube) Reassemble(unconsumed []any) (Sequence, error) {
	return nil, errors.New("cannot reassemble")
}
