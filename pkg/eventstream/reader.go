package eventstream

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
	"time"
)

const (
	// maxLineSize bounds a single line of the stream.
	maxLineSize = 1 << 20

	// byteOrderMark may precede the first line of a stream.
	byteOrderMark = "\uFEFF"
)

// Reader decodes events from an event stream.
// It is not safe for concurrent use.
type Reader struct {
	sc      *bufio.Scanner
	lastID  string
	started bool
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &Reader{sc: sc}
}

// Next returns the next dispatched event. It returns io.EOF when the stream
// ends; an event left incomplete at the end of the stream is discarded.
func (r *Reader) Next() (Event, error) {
	var (
		ev      Event
		data    bytes.Buffer
		hasData bool
	)

	for r.sc.Scan() {
		line := r.sc.Text()
		if !r.started {
			r.started = true
			line = strings.TrimPrefix(line, byteOrderMark)
		}

		if line == "" {
			if !hasData {
				ev = Event{}
				continue
			}
			ev.ID = r.lastID
			ev.Data = bytes.TrimSuffix(data.Bytes(), []byte("\n"))
			return ev, nil
		}

		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")

		switch field {
		case "event":
			ev.Name = value
		case "data":
			data.WriteString(value)
			data.WriteByte('\n')
			hasData = true
		case "id":
			if !strings.ContainsRune(value, 0) {
				r.lastID = value
			}
		case "retry":
			if ms, err := strconv.ParseUint(value, 10, 63); err == nil {
				ev.Retry = time.Duration(ms) * time.Millisecond
			}
		}
	}

	if err := r.sc.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}

// LastID returns the last event id seen on the stream.
func (r *Reader) LastID() string {
	return r.lastID
}
