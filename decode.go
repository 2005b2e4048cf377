package rapidbase64

// decodeStep is the position within the current 4-character input group that
// the decoder expects next.
type decodeStep int

const (
	decStepA decodeStep = iota // start of group, no pending bits
	decStepB                   // 1 symbol consumed, top 6 bits of byte 1 pending
	decStepC                   // 2 symbols consumed, top 4 bits of byte 2 pending
	decStepD                   // 3 symbols consumed, top 2 bits of byte 3 pending
)

// DecodeState carries decoder progress across calls to [DecodeIncremental].
// The zero value is the start state.
type DecodeState struct {
	step    decodeStep
	pending byte // bits decoded so far for the byte under construction
}

// decodeLUT maps each input byte to its 6-bit alphabet value, or a negative
// sentinel for anything outside the alphabet. Whitespace, newlines, '='
// padding and arbitrary garbage are all skipped identically.
var decodeLUT [256]int8

func init() {
	for i := range decodeLUT {
		decodeLUT[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		decodeLUT[alphabet[i]] = int8(i)
	}
}

// DecodeIncremental decodes src into dst, which must be large enough (see
// [MaxDecodedLen]), and returns the number of bytes written. Bytes outside
// the Base64 alphabet are skipped, never rejected.
//
// It is resumable exactly as [EncodeIncremental] is. There is no flush
// counterpart: input ending mid-group leaves the partial byte in state, and
// it is discarded if no further input arrives.
func DecodeIncremental(dst, src []byte, state *DecodeState) int {
	p := 0

	for _, c := range src {
		v := decodeLUT[c]
		if v < 0 {
			continue
		}

		switch state.step {
		case decStepA:
			state.pending = byte(v) << 2
			state.step = decStepB
		case decStepB:
			dst[p] = state.pending | byte(v)>>4
			p++
			state.pending = byte(v) << 4
			state.step = decStepC
		case decStepC:
			dst[p] = state.pending | byte(v)>>2
			p++
			state.pending = byte(v) << 6
			state.step = decStepD
		case decStepD:
			dst[p] = state.pending | byte(v)
			p++
			state.step = decStepA
		}
	}

	return p
}

// MaxDecodedLen returns an upper bound on the number of bytes produced by
// decoding n input characters: ceil(n*6/8). The actual count is lower
// whenever the input contains padding or skipped characters.
func MaxDecodedLen(n int) int {
	return (n*6 + 7) / 8
}

// Decode decodes src into dst, which must be at least [MaxDecodedLen] bytes,
// and returns the number of bytes written. Decoding cannot fail: malformed or
// truncated input simply yields fewer bytes.
func Decode(dst, src []byte) int {
	var state DecodeState
	return DecodeIncremental(dst, src, &state)
}

// DecodeString returns the bytes encoded by s, ignoring any characters
// outside the Base64 alphabet.
func DecodeString(s string) []byte {
	dst := make([]byte, MaxDecodedLen(len(s)))
	n := Decode(dst, []byte(s))
	return dst[:n]
}
