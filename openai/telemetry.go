package openai

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petal-labs/openaikit/core"
)

// callTrace reports one call to the telemetry hook and the logger.
type callTrace struct {
	c      *Client
	id     string
	method string
	path   string
	shape  core.CallShape
	start  time.Time
}

func (c *Client) beginCall(d requestDescriptor, shape core.CallShape) *callTrace {
	t := &callTrace{
		c:      c,
		id:     uuid.NewString(),
		method: d.resolvedMethod(),
		path:   d.path,
		shape:  shape,
		start:  time.Now(),
	}

	c.telemetry.OnRequestStart(core.RequestStartEvent{
		ID:     t.id,
		Method: t.method,
		Path:   t.path,
		Shape:  t.shape,
		Start:  t.start,
	})
	c.logger.Debug("request started",
		zap.String("id", t.id),
		zap.String("method", t.method),
		zap.String("path", t.path),
		zap.String("shape", string(t.shape)),
		zap.Stringer("encoding", d.encoding))

	return t
}

func (t *callTrace) finish(status, frames int, err error) {
	end := time.Now()

	t.c.telemetry.OnRequestEnd(core.RequestEndEvent{
		ID:     t.id,
		Method: t.method,
		Path:   t.path,
		Shape:  t.shape,
		Start:  t.start,
		End:    end,
		Status: status,
		Frames: frames,
		Err:    err,
	})

	fields := []zap.Field{
		zap.String("id", t.id),
		zap.String("path", t.path),
		zap.Int("status", status),
		zap.Duration("duration", end.Sub(t.start)),
	}
	if t.shape == core.ShapeStream {
		fields = append(fields, zap.Int("frames", frames))
	}
	if err != nil {
		t.c.logger.Debug("request failed", append(fields, zap.Error(err))...)
		return
	}
	t.c.logger.Debug("request finished", fields...)
}
