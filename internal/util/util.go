// Package util holds small helpers shared by the storage and API layers.
package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
)

// Digest counts and hashes everything read through it.
type Digest struct {
	r io.Reader
	h hash.Hash
	n int64
}

// NewDigest wraps r; read it to the end before calling Sum.
func NewDigest(r io.Reader) *Digest {
	return &Digest{r: r, h: sha256.New()}
}

func (d *Digest) Read(p []byte) (int, error) {
	n, err := d.r.Read(p)
	if n > 0 {
		d.h.Write(p[:n])
		d.n += int64(n)
	}

	return n, err //nolint:wrapcheck // io.Reader contract returns io.EOF unwrapped.
}

// Sum is the hex encoded SHA256 of the bytes read so far.
func (d *Digest) Sum() string {
	return hex.EncodeToString(d.h.Sum(nil))
}

// Size is the number of bytes read so far.
func (d *Digest) Size() int64 {
	return d.n
}

// FormatBytes renders a byte count with a binary unit, e.g. "5.0 MB".
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}
