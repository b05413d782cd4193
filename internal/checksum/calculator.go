package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
)

// Calculator computes the checksum of a file on disk, in the same hex form
// Writer.Sum reports.
type Calculator interface {
	CalculateFile(path string) (string, error)
}

// SHA256 implements checksum calculation using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateFile streams a file through SHA-256.
func (c SHA256) CalculateFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for checksum: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to read %s for checksum: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Writer passes writes through to an underlying writer and hashes them.
type Writer struct {
	w io.Writer
	h hash.Hash
	n int64
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, h: sha256.New()}
}

// Write writes p to the underlying writer and hashes the bytes actually written.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.h.Write(p[:n])
	w.n += int64(n)
	return n, err
}

// Sum returns the hex SHA-256 of everything written so far.
func (w *Writer) Sum() string {
	return hex.EncodeToString(w.h.Sum(nil))
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int64 {
	return w.n
}

// Verify SHA256 implements Calculator at compile time
var _ Calculator = SHA256{}
