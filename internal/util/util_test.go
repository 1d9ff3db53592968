package util

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bytes    int64
		expected string
	}{
		{bytes: 0, expected: "0 B"},
		{bytes: 1023, expected: "1023 B"},
		{bytes: 1024, expected: "1.0 KB"},
		{bytes: 1536, expected: "1.5 KB"},
		{bytes: 5 << 20, expected: "5.0 MB"},
		{bytes: 3 << 30, expected: "3.0 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatBytes(tt.bytes), "bytes=%d", tt.bytes)
	}
}

func TestDigest(t *testing.T) {
	t.Parallel()

	d := NewDigest(strings.NewReader("abc"))
	got, err := io.ReadAll(d)
	require.NoError(t, err)

	assert.Equal(t, "abc", string(got))
	assert.Equal(t, int64(3), d.Size())
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", d.Sum())
}

func TestDigest_Empty(t *testing.T) {
	t.Parallel()

	d := NewDigest(strings.NewReader(""))
	_, err := io.Copy(io.Discard, d)
	require.NoError(t, err)

	assert.Zero(t, d.Size())
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", d.Sum())
}
