package serial

import (
	"io"
	"strings"
	"sync"

	"segmux/statusline"
)

// LineReader splits a port's byte stream into console lines
type LineReader struct {
	r   io.Reader
	buf *statusline.LineBuffer
	tmp []byte
}

// NewLineReader wraps r with a line buffer of bufSize bytes
func NewLineReader(r io.Reader, bufSize int) *LineReader {
	return &LineReader{
		r:   r,
		buf: statusline.NewLineBuffer(bufSize),
		tmp: make([]byte, 64),
	}
}

// ReadLine blocks until a complete line arrives. A read error is returned
// once any complete line already buffered has been handed out; io.EOF from
// a port read timeout leaves partial data in place for the next call.
func (l *LineReader) ReadLine() (string, error) {
	for {
		if line, ok := l.buf.NextLine(); ok {
			return line, nil
		}
		if l.buf.Free() == 0 {
			// A line longer than the buffer; drop it
			l.buf.Reset()
		}
		n, err := l.r.Read(l.tmp[:min(len(l.tmp), l.buf.Free())])
		if n > 0 {
			l.buf.Write(l.tmp[:n])
		}
		if err != nil {
			if line, ok := l.buf.NextLine(); ok {
				return line, nil
			}
			return "", err
		}
	}
}

// Mirror copies log lines to a port. Write errors are counted, not
// returned, so a missing cable never stalls the caller.
type Mirror struct {
	mu     sync.Mutex
	w      io.Writer
	errors int
}

// NewMirror creates a log mirror writing to w
func NewMirror(w io.Writer) *Mirror {
	return &Mirror{w: w}
}

// WriteLine writes msg terminated by a newline. It matches core.LogWriter.
func (m *Mirror) WriteLine(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	if _, err := io.WriteString(m.w, msg); err != nil {
		m.errors++
	}
}

// Errors returns how many writes failed
func (m *Mirror) Errors() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors
}
