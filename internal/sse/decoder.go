// Package sse splits a server-sent-event byte stream into frames.
package sse

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Frame is one event of the stream. Frames are separated by blank lines.
type Frame struct {
	Event string
	ID    string
	Data  string
}

// Decoder reads frames from an event stream.
//
// Supported fields are "data", "event" and "id"; one space after the colon is
// stripped, lines starting with ":" are comments, and consecutive data lines
// are joined with "\n". Frames without data are skipped.
type Decoder struct {
	r    *bufio.Reader
	done bool
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next returns the next frame. At the end of the stream it returns io.EOF;
// a frame still pending when the stream ends is returned first.
func (d *Decoder) Next() (Frame, error) {
	var (
		frame   Frame
		data    strings.Builder
		hasData bool
	)

	for !d.done {
		line, err := d.r.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return Frame{}, err
			}
			d.done = true
			if line == "" {
				break
			}
		}

		line = strings.TrimRight(line, "\r\n")

		// A blank line terminates the frame.
		if line == "" {
			if hasData {
				frame.Data = data.String()
				return frame, nil
			}
			frame = Frame{}
			continue
		}

		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value := parseField(line)
		switch field {
		case "data":
			if hasData {
				data.WriteByte('\n')
			}
			data.WriteString(value)
			hasData = true
		case "event":
			frame.Event = value
		case "id":
			frame.ID = value
		}
	}

	if hasData {
		frame.Data = data.String()
		return frame, nil
	}
	return Frame{}, io.EOF
}

// parseField splits "field: value". A line without a colon is a field with an empty value.
func parseField(line string) (string, string) {
	field, value, found := strings.Cut(line, ":")
	if !found {
		return line, ""
	}
	return field, strings.TrimPrefix(value, " ")
}
