// Package sse writes Server-Sent Events.
//
//	stream, err := sse.New(w)
//	if err != nil {
//	    return
//	}
//	stream.Event("product.created", payload)
package sse

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Heartbeat is how often long-lived streams should send a comment so idle
// proxies keep the connection open.
const Heartbeat = 25 * time.Second

// ErrUnsupported is returned when the writer chain cannot flush.
var ErrUnsupported = errors.New("sse: streaming not supported")

// Stream is one open event stream.
type Stream struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

// New sends the stream headers and an opening comment. The server write
// deadline is lifted for the connection.
func New(w http.ResponseWriter) (*Stream, error) {
	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	s := &Stream{w: w, rc: rc}
	if err := s.Comment("connected"); err != nil {
		if errors.Is(err, http.ErrNotSupported) {
			return nil, ErrUnsupported
		}
		return nil, err
	}
	return s, nil
}

// Event writes one event. name may be empty. Multi-line data is split over
// several data fields.
func (s *Stream) Event(name string, data []byte) error {
	var buf bytes.Buffer
	if name != "" {
		fmt.Fprintf(&buf, "event: %s\n", name)
	}
	for _, line := range bytes.Split(data, []byte("\n")) {
		buf.WriteString("data: ")
		buf.Write(line)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	return s.write(buf.Bytes())
}

// Comment writes a comment line, ignored by clients.
func (s *Stream) Comment(msg string) error {
	return s.write([]byte(": " + msg + "\n\n"))
}

func (s *Stream) write(p []byte) error {
	if _, err := s.w.Write(p); err != nil {
		return err
	}
	return s.rc.Flush()
}
