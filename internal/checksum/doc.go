// Package checksum fingerprints artifact content with SHA-256.
//
// The CSV sink hashes the bytes it writes as it writes them, so the digest in
// the run result always describes the file that was renamed into place:
//
//	hw := checksum.NewWriter(f)
//	// ... write through hw ...
//	digest := hw.Sum()
//
// After the rename the sink reads the artifact back with CalculateFile and
// compares the two digests.
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines. A Writer is not.
package checksum
