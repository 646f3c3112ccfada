package siphon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureThenBeforeResolve(t *testing.T) {
	f, resolve, _ := NewFuture()

	var got any
	var called bool
	f.Then(func(v any, fail *Failure) {
		called = true
		got = v
	})
	require.False(t, called)

	resolve(42)
	require.True(t, called)
	assert.Equal(t, 42, got)
}

func TestFutureThenAfterResolve(t *testing.T) {
	f := Resolved("done")

	var got any
	f.Then(func(v any, fail *Failure) { got = v })
	assert.Equal(t, "done", got)
}

func TestFutureCompleteIsIdempotent(t *testing.T) {
	f, resolve, fail := NewFuture()
	resolve(1)
	fail(NewFailure(KindTubeFailure, errors.New("too late")))

	var got any
	var failure *Failure
	f.Then(func(v any, fl *Failure) { got, failure = v, fl })
	assert.Equal(t, 1, got)
	assert.Nil(t, failure)
}

func TestFutureFailed(t *testing.T) {
	want := NewFailure(KindTubeFailure, errors.New("boom"))
	f := Failed(want)

	var failure *Failure
	f.Then(func(v any, fl *Failure) { failure = fl })
	require.NotNil(t, failure)
	assert.Equal(t, KindTubeFailure, failure.Kind)
}

func TestFutureMultipleCallbacks(t *testing.T) {
	f, resolve, _ := NewFuture()
	var calls int
	f.Then(func(any, *Failure) { calls++ })
	f.Then(func(any, *Failure) { calls++ })
	resolve(nil)
	assert.Equal(t, 2, calls)
}
