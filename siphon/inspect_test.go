package siphon

import (
	"testing"

	"github.com/buger/jsonparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectReportsPendingCount(t *testing.T) {
	up := &testFount{}
	sp := NewSiphon(&Passthrough{})
	_, fail := up.FlowTo(sp.Drain())
	require.Nil(t, fail)

	up.emit("buffered")

	out := Inspect(sp)
	n, err := jsonparser.GetInt(out, "pending")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	started, err := jsonparser.GetBoolean(out, "started")
	require.NoError(t, err)
	assert.False(t, started, "no downstream attached yet")
}

func TestInspectReportsStartedAfterFullAttach(t *testing.T) {
	up := &testFount{}
	sp := NewSiphon(&Passthrough{})
	sink := NewFitting(AnyType)
	_, _ = up.FlowTo(sp.Drain())
	_, _ = sp.Fount().FlowTo(sink)

	out := Inspect(sp)
	started, err := jsonparser.GetBoolean(out, "started")
	require.NoError(t, err)
	assert.True(t, started)
}
