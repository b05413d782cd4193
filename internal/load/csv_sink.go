package load

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vvka-141/inetl/internal/checksum"
	"github.com/vvka-141/inetl/pkg/inetl"
)

// IndexHeader is the first artifact column: the zero-based row index.
const IndexHeader = "S/N"

// CSVSink writes records to a CSV artifact.
type CSVSink struct {
	logger     inetl.Logger
	calculator checksum.Calculator
}

// NewCSVSink creates a CSVSink verifying artifacts with SHA-256.
// Panics if logger is nil.
func NewCSVSink(logger inetl.Logger) *CSVSink {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &CSVSink{logger: logger, calculator: checksum.New()}
}

// WithCalculator replaces the calculator used to read the artifact back.
// Panics if c is nil.
func (s *CSVSink) WithCalculator(c checksum.Calculator) *CSVSink {
	if c == nil {
		panic("calculator cannot be nil")
	}
	s.calculator = c
	return s
}

// ArtifactHeader returns the header row of the artifact.
func ArtifactHeader() []string {
	return append([]string{IndexHeader}, inetl.SourceHeaders()...)
}

// Write replaces path with the rendered records and returns the SHA-256 of
// the file. Readers never observe a partially written file: content goes to a
// temporary file in the same directory, which is renamed over path only once
// complete. The renamed file is then read back and its digest compared with
// the digest of the bytes written.
//
// Errors:
//   - inetl.ErrArtifactWrite for any failure; before the rename path is left
//     as it was, after it the file on disk is not trusted
func (s *CSVSink) Write(ctx context.Context, path string, records []inetl.Record) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create directory %s: %v: %w", dir, err, inetl.ErrArtifactWrite)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("cannot create temporary file in %s: %v: %w", dir, err, inetl.ErrArtifactWrite)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	sum, err := s.render(ctx, tmp, records)
	if err != nil {
		return "", fmt.Errorf("writing %s: %w: %w", path, err, inetl.ErrArtifactWrite)
	}

	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("syncing %s: %v: %w", tmpPath, err, inetl.ErrArtifactWrite)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %v: %w", tmpPath, err, inetl.ErrArtifactWrite)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("writing %s: %w: %w", path, err, inetl.ErrArtifactWrite)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("replacing %s: %v: %w", path, err, inetl.ErrArtifactWrite)
	}
	committed = true

	onDisk, err := s.calculator.CalculateFile(path)
	if err != nil {
		return "", fmt.Errorf("verifying %s: %v: %w", path, err, inetl.ErrArtifactWrite)
	}
	if onDisk != sum {
		return "", fmt.Errorf("%s changed on disk: wrote sha256 %s, read back %s: %w", path, sum, onDisk, inetl.ErrArtifactWrite)
	}

	s.logger.Verbose("Wrote %d row(s) to %s (sha256 %s)", len(records), path, sum)
	return sum, nil
}

// render writes header and rows to f, returning the checksum of the bytes written.
func (s *CSVSink) render(ctx context.Context, f *os.File, records []inetl.Record) (string, error) {
	hw := checksum.NewWriter(f)
	buf := bufio.NewWriter(hw)
	w := csv.NewWriter(buf)

	if err := w.Write(ArtifactHeader()); err != nil {
		return "", err
	}

	row := make([]string, 0, len(inetl.Columns)+1)
	for i, rec := range records {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return "", err
			}
		}
		row = append(row[:0], strconv.Itoa(i))
		row = append(row, rec.Strings()...)
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	if err := buf.Flush(); err != nil {
		return "", err
	}
	return hw.Sum(), nil
}

// Verify CSVSink implements inetl.ArtifactWriter at compile time
var _ inetl.ArtifactWriter = (*CSVSink)(nil)
