package serial

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// chunkReader hands out its data a few bytes per Read
type chunkReader struct {
	data  []byte
	chunk int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		return 0, io.EOF
	}
	n := min(c.chunk, len(p), len(c.data))
	copy(p, c.data[:n])
	c.data = c.data[n:]
	return n, nil
}

func TestLineReader(t *testing.T) {
	r := NewLineReader(&chunkReader{data: []byte("Go\r\nADC[0]: 0x345\nADC[0]: 0x50\npartial"), chunk: 3}, 64)

	want := []string{"Go", "ADC[0]: 0x345", "ADC[0]: 0x50"}
	for _, w := range want {
		line, err := r.ReadLine()
		if err != nil {
			t.Fatalf("ReadLine failed: %v", err)
		}
		if line != w {
			t.Errorf("ReadLine = %q, want %q", line, w)
		}
	}

	if _, err := r.ReadLine(); !errors.Is(err, io.EOF) {
		t.Errorf("ReadLine at end = %v, want io.EOF", err)
	}
}

func TestLineReaderDropsLongLine(t *testing.T) {
	long := strings.Repeat("x", 40)
	r := NewLineReader(strings.NewReader(long+"\nok\n"), 16)

	line, err := r.ReadLine()
	if err != nil {
		t.Fatalf("ReadLine failed: %v", err)
	}
	if strings.Contains(line, "ok") || len(line) >= 16 {
		t.Errorf("unexpected line %q", line)
	}
	if line, _ = r.ReadLine(); line != "ok" {
		t.Errorf("ReadLine after overflow = %q, want %q", line, "ok")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("unplugged") }

func TestMirror(t *testing.T) {
	var out bytes.Buffer
	m := NewMirror(&out)
	m.WriteLine("Go")
	m.WriteLine("ADC[0]: 0x345\n")

	if got := out.String(); got != "Go\nADC[0]: 0x345\n" {
		t.Errorf("mirror wrote %q", got)
	}

	bad := NewMirror(failWriter{})
	bad.WriteLine("lost")
	bad.WriteLine("lost")
	if bad.Errors() != 2 {
		t.Errorf("Errors() = %d, want 2", bad.Errors())
	}
}
