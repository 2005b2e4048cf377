package rapidbase64

import (
	"errors"
	"io"
	"sync"
)

// Encoder is an io.WriteCloser. Writes to it are Base64 encoded and written
// to the underlying writer. Output for a partial final group is not produced
// until Close.
type Encoder struct {
	w          io.Writer
	state      EncodeState
	breakLines bool

	buf []byte

	writeMu sync.Mutex
}

type EncoderOption func(e *Encoder)

// WithLineBreaks makes the Encoder wrap its output at 72 columns.
func WithLineBreaks() EncoderOption {
	return func(e *Encoder) {
		e.breakLines = true
	}
}

// NewEncoder returns a new [Encoder] writing to w.
//
// It is the caller's responsibility to call Close on the [Encoder] when done:
// Close pads any dangling input group and, with [WithLineBreaks], terminates
// the final line.
func NewEncoder(w io.Writer, opts ...EncoderOption) *Encoder {
	e := &Encoder{w: w}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Reset discards the [Encoder] e's state and makes it equivalent to the
// result of its original state from [NewEncoder], but writing to w instead.
// This permits reusing an [Encoder] rather than allocating a new one.
func (e *Encoder) Reset(w io.Writer) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	e.w = w
	e.state = EncodeState{}
}

var errWriterNil = errors.New("writer is nil")

// Write writes the Base64 encoded form of p to the underlying [io.Writer].
// Up to two trailing bytes of p may be held in the encoder state until the
// next Write or Close completes their group.
func (e *Encoder) Write(p []byte) (n int, err error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if e.w == nil {
		return 0, errWriterNil
	}

	if len(p) == 0 {
		return 0, nil
	}

	// Worst-case output for this chunk: the carried state can hold two bytes
	// from the previous Write, each potentially completing a group here.
	if grow := EncodedLen(len(p)+2, e.breakLines) - len(e.buf); grow > 0 {
		e.buf = append(e.buf, make([]byte, grow)...)
	}

	written := EncodeIncremental(e.buf, p, &e.state, e.breakLines)
	if written > 0 {
		if _, err := e.w.Write(e.buf[:written]); err != nil {
			return 0, err
		}
	}

	return len(p), nil
}

// Close flushes any pending partial group, padded with '='. It is an error
// to call Write after calling Close.
func (e *Encoder) Close() error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if e.w == nil {
		return errWriterNil
	}
	defer func() { e.w = nil }()

	// At most 3 padding characters, a newline, and nothing else.
	var tail [5]byte
	n := EncodeFlush(tail[:], &e.state, e.breakLines)
	if n > 0 {
		if _, err := e.w.Write(tail[:n]); err != nil {
			return err
		}
	}

	return nil
}
