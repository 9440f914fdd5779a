package sqltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_UTF8PassThrough(t *testing.T) {
	raw := []byte("héllo")
	out, err := Decode(raw, EncUTF8)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestDecode_Latin1(t *testing.T) {
	// "café" with é as 0xE9 in Windows-1252
	raw := []byte{'c', 'a', 'f', 0xE9}
	out, err := Decode(raw, EncLatin1)
	require.NoError(t, err)
	assert.Equal(t, "café", string(out))
}

func TestDecode_Latin1ASCIIFastPath(t *testing.T) {
	raw := []byte("plain ascii")
	out, err := Decode(raw, EncLatin1)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestDecode_UTF16LE(t *testing.T) {
	// "ok" in UTF-16LE
	raw := []byte{'o', 0x00, 'k', 0x00}
	out, err := Decode(raw, EncUTF16LE)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))
}

func TestDecode_UTF16OddLength(t *testing.T) {
	_, err := Decode([]byte{0x41, 0x00, 0x42}, EncUTF16LE)
	assert.Error(t, err)
}

func TestDecode_UnknownEncoding(t *testing.T) {
	_, err := Decode([]byte("x"), Encoding(99))
	assert.Error(t, err)
}
