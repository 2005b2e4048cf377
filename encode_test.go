package rapidbase64

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type encodeCase struct {
	name     string
	input    []byte
	expected string
}

func TestEncodeVectors(t *testing.T) {
	cases := []encodeCase{
		{"empty", []byte{}, ""},
		{"f", []byte("f"), "Zg=="},
		{"fo", []byte("fo"), "Zm8="},
		{"foo", []byte("foo"), "Zm9v"},
		{"foob", []byte("foob"), "Zm9vYg=="},
		{"fooba", []byte("fooba"), "Zm9vYmE="},
		{"foobar", []byte("foobar"), "Zm9vYmFy"},
		{"NUL", []byte{0x00}, "AA=="},
		{"high bytes", []byte{0xff, 0xfe, 0xfd}, "//79"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, EncodeToString(tc.input, false))
		})
	}
}

func TestEncodedLen(t *testing.T) {
	for n := 0; n <= 300; n++ {
		input := bytes.Repeat([]byte{0xA5}, n)
		for _, breakLines := range []bool{false, true} {
			// EncodeToString panics if the written count disagrees with
			// EncodedLen, so this also exercises the capacity contract.
			got := EncodeToString(input, breakLines)
			require.Equal(t, EncodedLen(n, breakLines), len(got), "n=%d breakLines=%v", n, breakLines)
		}
	}
}

func TestEncodeLineBreaks(t *testing.T) {
	cases := []struct {
		name  string
		size  int
		lines int
	}{
		{"one byte", 1, 1},
		{"exactly one line", 54, 1}, // 54 bytes -> 72 chars
		{"one line plus one group", 57, 2},
		{"two lines", 108, 2},
		{"partial second line", 100, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := make([]byte, tc.size)
			for i := range input {
				input[i] = byte(i)
			}

			encoded := EncodeToString(input, true)
			require.True(t, strings.HasSuffix(encoded, "\n"))

			lines := strings.Split(strings.TrimSuffix(encoded, "\n"), "\n")
			require.Len(t, lines, tc.lines)
			for i, line := range lines {
				if i < len(lines)-1 {
					require.Len(t, line, charsPerLine)
				} else {
					require.LessOrEqual(t, len(line), charsPerLine)
					require.NotEmpty(t, line)
				}
			}

			// Wrapping must not change the decoded content.
			require.Equal(t, input, DecodeString(encoded))
		})
	}
}

func TestEncodeEmptyLineBreaks(t *testing.T) {
	// No characters emitted, so no trailing newline either.
	require.Equal(t, "", EncodeToString(nil, true))
}

func TestEncodeResumable(t *testing.T) {
	input := make([]byte, 95)
	for i := range input {
		input[i] = byte(i * 7)
	}

	for _, breakLines := range []bool{false, true} {
		want := EncodeToString(input, breakLines)

		for split := 0; split <= len(input); split++ {
			var state EncodeState
			dst := make([]byte, EncodedLen(len(input), breakLines))

			n := EncodeIncremental(dst, input[:split], &state, breakLines)
			n += EncodeIncremental(dst[n:], input[split:], &state, breakLines)
			n += EncodeFlush(dst[n:], &state, breakLines)

			require.Equal(t, want, string(dst[:n]), "split=%d breakLines=%v", split, breakLines)
		}
	}
}
