package siphon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassthroughReceivedIsIdentity(t *testing.T) {
	p := NewPassthrough(AnyType, AnyType)
	seq, err := p.Received("x")
	require.NoError(t, err)

	v, ok, err := seq.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok, _ = seq.Next()
	assert.False(t, ok)
}

func TestPassthroughReassembleIsIdentity(t *testing.T) {
	p := NewPassthrough(AnyType, AnyType)
	seq, err := p.Reassemble([]any{"a", "b"})
	require.NoError(t, err)

	var got []any
	for {
		v, ok, err := seq.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []any{"a", "b"}, got)
}

func TestFittingRecordsReceivesAndStop(t *testing.T) {
	f := NewFitting(AnyType)
	f.Receive(1)
	f.Receive(2)
	assert.False(t, f.DidStop())

	failure := NewFailure(KindTubeFailure, ErrTypeMismatch)
	f.FlowStopped(failure)

	assert.Equal(t, []any{1, 2}, f.Received)
	assert.True(t, f.DidStop())
	assert.Equal(t, failure, f.Stopped)
}
