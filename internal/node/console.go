package node

// Console line editing bytes.
const (
	byteBS  = 0x08
	byteLF  = 0x0a
	byteCR  = 0x0d
	byteDEL = 0x7f
)

// lineCapacity bounds the administrative input buffer. Characters typed
// past the bound are dropped silently.
const lineCapacity = 80

// lineBuffer accumulates console keystrokes until carriage return.
type lineBuffer struct {
	buf []byte
}

// push appends c and reports whether there was room.
func (b *lineBuffer) push(c byte) bool {
	if len(b.buf) >= lineCapacity {
		return false
	}
	b.buf = append(b.buf, c)
	return true
}

// pop removes the last byte and reports whether there was one.
func (b *lineBuffer) pop() bool {
	if len(b.buf) == 0 {
		return false
	}
	b.buf = b.buf[:len(b.buf)-1]
	return true
}

// takeLine returns the buffered line and resets the buffer.
func (b *lineBuffer) takeLine() string {
	line := string(b.buf)
	b.buf = b.buf[:0]
	return line
}

func (b *lineBuffer) len() int { return len(b.buf) }
