package bcbp

// cursor walks an ASCII payload front to back. Every read either returns a
// slice of the input and advances, or fails and leaves the position alone.
type cursor struct {
	input string
	pos   int
}

func newCursor(input string) *cursor {
	return &cursor{input: input}
}

// remaining returns the number of unread characters.
func (c *cursor) remaining() int {
	return len(c.input) - c.pos
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.input)
}

// take reads the next f.Width() characters.
func (c *cursor) take(f Field) (string, error) {
	return c.takeN(f, f.Width())
}

func (c *cursor) takeN(f Field, n int) (string, error) {
	if n > c.remaining() {
		return "", fieldError(f, ErrUnexpectedEndOfInput)
	}
	s := c.input[c.pos : c.pos+n]
	c.pos += n
	return s, nil
}

// takeHexLength reads a two character upper-case hexadecimal length.
func (c *cursor) takeHexLength(f Field) (int, error) {
	if hexLengthWidth > c.remaining() {
		return 0, fieldError(f, ErrUnexpectedEndOfInput)
	}
	n := 0
	for i := 0; i < hexLengthWidth; i++ {
		d, ok := hexDigit(c.input[c.pos+i])
		if !ok {
			return 0, fieldError(f, ErrExpectedInteger)
		}
		n = n<<4 | d
	}
	c.pos += hexLengthWidth
	return n, nil
}

// takeVariable reads a section whose length was declared by a prefix. A
// declaration longer than the rest of the input is a SubsectionTooLong, not
// an end of input: the prefix itself is what is wrong.
func (c *cursor) takeVariable(f Field, declared int) (string, error) {
	if declared > c.remaining() {
		return "", fieldError(f, ErrSubsectionTooLong)
	}
	return c.takeN(f, declared)
}

// section consumes a length-prefixed block and returns a cursor scoped to
// exactly that block.
func (c *cursor) section(f Field) (*cursor, error) {
	n, err := c.takeHexLength(f)
	if err != nil {
		return nil, err
	}
	s, err := c.takeVariable(f, n)
	if err != nil {
		return nil, err
	}
	return newCursor(s), nil
}

// rest consumes everything that is left.
func (c *cursor) rest() string {
	s := c.input[c.pos:]
	c.pos = len(c.input)
	return s
}

func hexDigit(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	}
	return 0, false
}
