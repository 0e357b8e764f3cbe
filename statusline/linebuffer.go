package statusline

// LineBuffer is a circular byte buffer that hands back complete lines
// from a serial byte stream.
type LineBuffer struct {
	buf   []byte
	read  int
	write int
	size  int
}

// NewLineBuffer creates a new LineBuffer with the specified capacity
func NewLineBuffer(capacity int) *LineBuffer {
	return &LineBuffer{
		buf:  make([]byte, capacity),
		size: capacity,
	}
}

// Write appends data to the buffer and returns how many bytes fit.
// When the buffer holds a full capacity of bytes with no newline, the
// oldest partial line is discarded so the stream can resynchronize.
func (f *LineBuffer) Write(data []byte) int {
	written := 0
	for _, b := range data {
		nextWrite := (f.write + 1) % f.size
		if nextWrite == f.read {
			if f.hasLine() {
				// Buffer full of unread lines
				break
			}
			f.Reset()
			nextWrite = (f.write + 1) % f.size
		}
		f.buf[f.write] = b
		f.write = nextWrite
		written++
	}
	return written
}

// NextLine pops the oldest complete line without its terminator.
// Carriage returns before the newline are stripped.
func (f *LineBuffer) NextLine() (string, bool) {
	n := 0
	for i := f.read; i != f.write; i = (i + 1) % f.size {
		if f.buf[i] == '\n' {
			line := make([]byte, 0, n)
			for j := f.read; j != i; j = (j + 1) % f.size {
				line = append(line, f.buf[j])
			}
			f.read = (i + 1) % f.size
			for len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			return string(line), true
		}
		n++
	}
	return "", false
}

func (f *LineBuffer) hasLine() bool {
	for i := f.read; i != f.write; i = (i + 1) % f.size {
		if f.buf[i] == '\n' {
			return true
		}
	}
	return false
}

// Available returns the number of bytes available for reading
func (f *LineBuffer) Available() int {
	if f.write >= f.read {
		return f.write - f.read
	}
	return f.size - f.read + f.write
}

// Free returns the number of bytes available for writing
func (f *LineBuffer) Free() int {
	return f.size - f.Available() - 1
}

// IsEmpty returns true if the buffer is empty
func (f *LineBuffer) IsEmpty() bool {
	return f.read == f.write
}

// Reset clears the buffer
func (f *LineBuffer) Reset() {
	f.read = 0
	f.write = 0
}
