package common

import (
	"errors"
	"io"
	"os"

	"github.com/google/uuid"
)

// Sentinel errors shared across the application layers.
var (
	ErrNoFilesProvided = errors.New("no files provided for compression")
	ErrEmptyDocument   = errors.New("document is empty")
)

// GenerateUUID generates a new UUID string
func GenerateUUID() string {
	return uuid.New().String()
}

// CopyFile copies a file from src to dst
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
