// Package fsutil provides file system helpers for reading conversion input
// and writing request bodies safely.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// StdinName is the input path that selects the supplied reader.
const StdinName = "-"

var (
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
)

// ReadFile reads a regular file. Missing files, permission problems and
// directories are reported with the sentinel errors above so callers can
// classify them with errors.Is.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(path, err)
	}
	return content, nil
}

// ReadInput reads path, or all of stdin when path is StdinName.
func ReadInput(ctx context.Context, path string, stdin io.Reader) ([]byte, error) {
	if path != StdinName {
		return ReadFile(ctx, path)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if stdin == nil {
		return nil, errors.New("read stdin: no input stream")
	}
	content, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return content, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
