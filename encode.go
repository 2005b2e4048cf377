package rapidbase64

import "fmt"

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// charsPerLine is the output line width used when line breaking is
// enabled: 18 complete 4-character groups per line, newline after the 72nd
// character.
const (
	charsPerLine  = 72
	groupsPerLine = charsPerLine / 4
)

// encodeStep is the position within the current 3-byte input group that the
// encoder expects next.
type encodeStep int

const (
	encStepA encodeStep = iota // start of group, no pending bits
	encStepB                   // 1 byte consumed, low 2 bits pending
	encStepC                   // 2 bytes consumed, low 4 bits pending
)

// EncodeState carries encoder progress across calls to [EncodeIncremental].
// The zero value is the start state. A state must not be driven by more than
// one goroutine at a time; independent states are fully independent.
type EncodeState struct {
	step    encodeStep
	pending byte // bits shifted out of the previous byte but not yet emitted
	groups  int  // complete output groups since the last newline
}

// EncodeIncremental encodes all of src into dst, which must be large enough
// (see [EncodedLen]), and returns the number of characters written.
//
// It is resumable: calling it again with more input and the same state
// produces output identical to a single call over the concatenated input.
// After the final call, [EncodeFlush] pads any dangling group.
func EncodeIncremental(dst, src []byte, state *EncodeState, breakLines bool) int {
	p := 0

	for _, c := range src {
		switch state.step {
		case encStepA:
			dst[p] = alphabet[c>>2]
			p++
			state.pending = (c & 0x03) << 4
			state.step = encStepB
		case encStepB:
			dst[p] = alphabet[state.pending|c>>4]
			p++
			state.pending = (c & 0x0f) << 2
			state.step = encStepC
		case encStepC:
			dst[p] = alphabet[state.pending|c>>6]
			dst[p+1] = alphabet[c&0x3f]
			p += 2
			state.step = encStepA

			if breakLines {
				state.groups++
				if state.groups == groupsPerLine {
					dst[p] = '\n'
					p++
					state.groups = 0
				}
			}
		}
	}

	return p
}

// EncodeFlush finalizes an encode, emitting the alphabet character for any
// pending bits followed by '=' padding to complete the group. With breakLines
// set it appends a trailing newline unless the output already ends on one.
// It returns the number of characters written, at most 5.
func EncodeFlush(dst []byte, state *EncodeState, breakLines bool) int {
	p := 0

	switch state.step {
	case encStepB:
		dst[p] = alphabet[state.pending]
		dst[p+1] = '='
		dst[p+2] = '='
		p += 3
		state.groups++
	case encStepC:
		dst[p] = alphabet[state.pending]
		dst[p+1] = '='
		p += 2
		state.groups++
	case encStepA:
		// no partial group
	}

	if breakLines && state.groups > 0 {
		dst[p] = '\n'
		p++
	}

	return p
}

// EncodedLen returns the exact length of the encoded form of n input bytes:
// ceil(n/3)*4 characters, plus one newline per complete or partial
// 72-character line when breakLines is set.
func EncodedLen(n int, breakLines bool) int {
	chars := (n + 2) / 3 * 4
	if breakLines {
		lines := chars / charsPerLine
		if chars%charsPerLine > 0 {
			lines++
		}
		chars += lines
	}
	return chars
}

// Encode encodes src into dst, which must be exactly [EncodedLen] bytes, and
// returns the number of characters written. Encoding cannot fail; a mismatch
// between the sizing formula and the state machine is a defect and panics.
func Encode(dst, src []byte, breakLines bool) int {
	var state EncodeState

	n := EncodeIncremental(dst, src, &state, breakLines)
	n += EncodeFlush(dst[n:], &state, breakLines)

	if n != EncodedLen(len(src), breakLines) {
		panic(fmt.Sprintf(
			"[rapidbase64] encoded %d characters for %d input bytes, expected %d",
			n, len(src), EncodedLen(len(src), breakLines),
		))
	}

	return n
}

// EncodeToString returns the Base64 encoding of src, wrapped at 72 columns
// when breakLines is set.
func EncodeToString(src []byte, breakLines bool) string {
	dst := make([]byte, EncodedLen(len(src), breakLines))
	Encode(dst, src, breakLines)
	return string(dst)
}
