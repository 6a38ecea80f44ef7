// Package numfile owns the flat integer file that feeds the sort pipeline.
//
// The file is never truncated or rewritten in place. Read opens it for
// read+append (creating it when absent) and Append only ever adds bytes to
// the end. Load combines the two: an exactly-empty file is seeded with
// DefaultSeed before its contents are returned.
package numfile

import (
	"fmt"
	"io"
	"os"
)

// DefaultPath is the input file used when no path is given.
const DefaultPath = "input.txt"

// DefaultSeed is appended to an empty input file.
const DefaultSeed = "10\n9\n8\n7\n6\n5\n4\n3\n2\n1\n"

// Op identifies which file operation failed.
type Op string

const (
	OpOpen  Op = "open"
	OpRead  Op = "read"
	OpWrite Op = "write"
)

// FileError reports a failed file operation.
type FileError struct {
	Op   Op
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Read opens path for read+append, creating it if absent, and returns its
// full contents.
func Read(path string) (string, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return "", &FileError{Op: OpOpen, Path: path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", &FileError{Op: OpRead, Path: path, Err: err}
	}
	return string(data), nil
}

// Append writes text to the end of an existing file.
// It fails if the file does not exist.
func Append(path, text string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return &FileError{Op: OpOpen, Path: path, Err: err}
	}

	if _, err := f.Write([]byte(text)); err != nil {
		f.Close()
		return &FileError{Op: OpWrite, Path: path, Err: err}
	}

	if err := f.Close(); err != nil {
		return &FileError{Op: OpWrite, Path: path, Err: err}
	}
	return nil
}

// Load reads path and seeds it with DefaultSeed when it is exactly empty.
// The returned bool reports whether seeding happened.
func Load(path string) (string, bool, error) {
	buf, err := Read(path)
	if err != nil {
		return "", false, err
	}
	if len(buf) != 0 {
		return buf, false, nil
	}

	if err := Append(path, DefaultSeed); err != nil {
		return "", false, err
	}
	return DefaultSeed, true, nil
}
