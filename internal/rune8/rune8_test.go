package rune8

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeASCII(t *testing.T) {
	cp, n := Decode([]byte("hello"))
	require.Equal(t, 1, n)
	assert.Equal(t, Codepoint('h'), cp)
}

func TestDecodeMultibyte(t *testing.T) {
	// U+00E9 'é' encodes as 0xC3 0xA9.
	cp, n := Decode([]byte{0xC3, 0xA9})
	require.Equal(t, 2, n)
	assert.Equal(t, Codepoint(0xE9), cp)
}

func TestDecodeEmpty(t *testing.T) {
	cp, n := Decode(nil)
	assert.Equal(t, EOF, cp)
	assert.Equal(t, 0, n)
}

func TestDecodeInvalidLeadByte(t *testing.T) {
	cp, n := Decode([]byte{0x80})
	assert.Equal(t, Invalid, cp)
	assert.Equal(t, 1, n)
}

func TestDecodeSurrogateRejected(t *testing.T) {
	// U+D800 encoded naively as a 3-byte sequence (ED A0 80) must be
	// rejected even though the bit pattern is well-formed.
	cp, n := Decode([]byte{0xED, 0xA0, 0x80})
	assert.Equal(t, Invalid, cp)
	assert.Equal(t, 1, n)
}

func TestDecodeOverlongRejected(t *testing.T) {
	// Overlong 2-byte encoding of NUL: C0 80.
	cp, n := Decode([]byte{0xC0, 0x80})
	assert.Equal(t, Invalid, cp)
	assert.Equal(t, 1, n)
}

func TestDecodeTruncatedSequence(t *testing.T) {
	cp, n := Decode([]byte{0xE2, 0x82}) // truncated € (E2 82 AC)
	assert.Equal(t, Invalid, cp)
	assert.Equal(t, 1, n)
}

func TestLenTable(t *testing.T) {
	assert.Equal(t, 1, Len('a'))
	assert.Equal(t, 2, Len(0xC3))
	assert.Equal(t, 3, Len(0xE2))
	assert.Equal(t, 4, Len(0xF0))
	assert.Equal(t, 0, Len(0x80))
	assert.Equal(t, 0, Len(0xFF))
}

func TestResync(t *testing.T) {
	// "a€b" = 61 E2 82 AC 62; pos 2 and 3 are inside the € sequence.
	buf := []byte{0x61, 0xE2, 0x82, 0xAC, 0x62}
	assert.Equal(t, 1, Resync(buf, 1))
	assert.Equal(t, 1, Resync(buf, 2))
	assert.Equal(t, 1, Resync(buf, 3))
	assert.Equal(t, 4, Resync(buf, 4))
	assert.Equal(t, 0, Resync(buf, 0))
}

func TestCopyChar(t *testing.T) {
	dst := make([]byte, 4)
	n := CopyChar(dst, []byte{0xE2, 0x82, 0xAC, 'x'})
	require.Equal(t, 3, n)
	assert.Equal(t, []byte{0xE2, 0x82, 0xAC}, dst[:n])
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsEOS('.'))
	assert.True(t, IsEOS('?'))
	assert.True(t, IsEOS(0xFF01))
	assert.False(t, IsEOS(','))

	assert.True(t, IsEOSExt('"'))
	assert.True(t, IsEOSExt(0x2019))
	assert.False(t, IsEOSExt('.'))

	assert.True(t, IsHyphen('-'))
	assert.False(t, IsHyphen(0x2011)) // non-breaking hyphen excluded
	assert.False(t, IsHyphen('~'))

	assert.True(t, IsHyphenAdjacent('a'))
	assert.False(t, IsHyphenAdjacent('5'))

	assert.True(t, IsSpace(' '))
	assert.False(t, IsSpace(0x00A0)) // no-break space excluded
	assert.False(t, IsSpace(0xFEFF)) // BOM excluded
	assert.False(t, IsSpace('\n'))

	assert.True(t, IsControl(0x01))
	assert.False(t, IsControl('\n'))
	assert.False(t, IsControl('a'))
}
