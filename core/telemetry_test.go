package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingHook struct {
	starts []RequestStartEvent
	ends   []RequestEndEvent
}

func (h *recordingHook) OnRequestStart(e RequestStartEvent) { h.starts = append(h.starts, e) }
func (h *recordingHook) OnRequestEnd(e RequestEndEvent)     { h.ends = append(h.ends, e) }

func TestRequestEndEventDuration(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := RequestEndEvent{Start: start, End: start.Add(1500 * time.Millisecond)}

	assert.Equal(t, 1500*time.Millisecond, e.Duration())
}

func TestTelemetryHookReceivesEvents(t *testing.T) {
	var hook TelemetryHook = &recordingHook{}
	start := time.Now()

	hook.OnRequestStart(RequestStartEvent{ID: "1", Method: "POST", Path: "/v1/chat/completions", Shape: ShapeStream, Start: start})
	hook.OnRequestEnd(RequestEndEvent{ID: "1", Shape: ShapeStream, Start: start, End: time.Now(), Status: 200, Frames: 3})

	rec := hook.(*recordingHook)
	assert.Len(t, rec.starts, 1)
	assert.Len(t, rec.ends, 1)
	assert.Equal(t, rec.starts[0].ID, rec.ends[0].ID)
	assert.Equal(t, 3, rec.ends[0].Frames)
	assert.NoError(t, rec.ends[0].Err)
}

func TestNoopTelemetryHook(t *testing.T) {
	hook := NoopTelemetryHook{}

	assert.NotPanics(t, func() {
		hook.OnRequestStart(RequestStartEvent{})
		hook.OnRequestEnd(RequestEndEvent{Err: errors.New("x")})
	})
}

func TestCallShapes(t *testing.T) {
	assert.Equal(t, "json", string(ShapeJSON))
	assert.Equal(t, "binary", string(ShapeBinary))
	assert.Equal(t, "stream", string(ShapeStream))
}
