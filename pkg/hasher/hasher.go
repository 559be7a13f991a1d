// Package hasher computes content digests used to verify copies.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// File computes the SHA-256 of filePath as a lowercase hex string.
// It streams the file through io.Copy to avoid loading it into memory.
func File(filePath string) (_ string, err error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("hashing: %w", err) // os.Open already includes the path
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("hashing %s: %w", filePath, closeErr)
		}
	}()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("hashing %s: %w", filePath, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SameContent reports whether two files have identical SHA-256 digests.
func SameContent(a, b string) (bool, error) {
	ha, err := File(a)
	if err != nil {
		return false, err
	}
	hb, err := File(b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}
