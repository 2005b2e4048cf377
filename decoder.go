package rapidbase64

import "io"

// Decoder is an io.Reader that Base64 decodes another reader. Characters
// outside the alphabet, including '=' padding, are skipped rather than
// rejected; the decoder never reports a decoding error of its own, only
// errors from the underlying reader.
type Decoder struct {
	r     io.Reader
	state DecodeState
	rb    readBuffer

	out      []byte // decoded bytes staged for Read
	outStart int
	outEnd   int
	err      error
}

type DecoderOption func(d *Decoder)

// WithBufferSize sets the size of the encoded-input buffer.
func WithBufferSize(size int) DecoderOption {
	return func(d *Decoder) {
		d.rb = readBuffer{buf: make([]byte, size)}
	}
}

func NewDecoder(r io.Reader, opts ...DecoderOption) *Decoder {
	d := &Decoder{r: r}

	for _, opt := range opts {
		opt(d)
	}

	d.rb.init()
	d.out = make([]byte, MaxDecodedLen(len(d.rb.buf)))

	return d
}

func (d *Decoder) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for d.outStart == d.outEnd {
		if d.err != nil {
			// EOF mid-group: bits accumulated for an incomplete byte are
			// discarded, never emitted.
			return 0, d.err
		}

		n, err := d.rb.readMore(d.r)
		if n > 0 {
			src := d.rb.window()
			nd := DecodeIncremental(d.out, src, &d.state)
			d.rb.advance(len(src))
			d.outStart, d.outEnd = 0, nd
		}
		if err != nil {
			d.err = err
		}
	}

	n := copy(p, d.out[d.outStart:d.outEnd])
	d.outStart += n
	return n, nil
}
