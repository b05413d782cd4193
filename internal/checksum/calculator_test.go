package checksum

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const (
	emptySHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	abcSHA256   = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artifact.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSHA256Calculator_CalculateFile(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{name: "Empty file", content: "", expected: emptySHA256},
		{name: "abc", content: "abc", expected: abcSHA256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().CalculateFile(writeFile(t, tt.content))
			if err != nil {
				t.Fatalf("CalculateFile() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("CalculateFile() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestSHA256Calculator_DifferentContentDiffers(t *testing.T) {
	a, err := New().CalculateFile(writeFile(t, "S/N,Location\n0,Chad\n"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := New().CalculateFile(writeFile(t, "S/N,Location\n0,Chad \n"))
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("Expected different checksums for different content")
	}
}

func TestSHA256Calculator_MissingFile(t *testing.T) {
	if _, err := New().CalculateFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestWriter_MatchesFileDigest(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	for _, chunk := range []string{"S/N,Location\n", "0,Afghanistan\n", "1,Albania\n"} {
		if _, err := w.Write([]byte(chunk)); err != nil {
			t.Fatal(err)
		}
	}

	want, err := New().CalculateFile(writeFile(t, buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if got := w.Sum(); got != want {
		t.Errorf("Sum() = %s, want %s", got, want)
	}
	if w.Len() != int64(buf.Len()) {
		t.Errorf("Len() = %d, want %d", w.Len(), buf.Len())
	}
}

func TestWriter_Empty(t *testing.T) {
	if got := NewWriter(&bytes.Buffer{}).Sum(); got != emptySHA256 {
		t.Errorf("Sum() = %s, want %s", got, emptySHA256)
	}
}
