// Package fileval validates template files before they are read into the
// diagnostic or rewrite pipelines.
//
// Templates must be UTF-8 text and, when a limit is configured, no larger
// than [file-validation] max-file-size.
package fileval

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// FileTooLargeError is returned when a file exceeds the configured maximum size.
type FileTooLargeError struct {
	Path    string
	Size    int64
	MaxSize int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf(
		"file too large (%d > %d bytes); increase [file-validation] max-file-size in .cheetah-lint.toml to override",
		e.Size, e.MaxSize,
	)
}

// NotUTF8Error is returned when a file is not valid UTF-8 text.
type NotUTF8Error struct {
	Path string
	// Offset is the byte offset of the first invalid sequence.
	Offset int
}

func (e *NotUTF8Error) Error() string {
	return fmt.Sprintf("file is not valid UTF-8 text (invalid byte at offset %d)", e.Offset)
}

// NotRegularError is returned for directories, devices and other
// non-regular paths.
type NotRegularError struct {
	Path string
}

func (e *NotRegularError) Error() string {
	return "not a regular file"
}

// ValidateFile checks the size of the file at path without reading it.
// maxSize <= 0 disables the size limit.
func ValidateFile(path string, maxSize int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return &NotRegularError{Path: path}
	}
	if maxSize > 0 && info.Size() > maxSize {
		return &FileTooLargeError{Path: path, Size: info.Size(), MaxSize: maxSize}
	}
	return nil
}

// ReadFile validates path and returns its contents as a string.
func ReadFile(path string, maxSize int64) (string, error) {
	if err := ValidateFile(path, maxSize); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if off := invalidUTF8Offset(data); off >= 0 {
		return "", &NotUTF8Error{Path: path, Offset: off}
	}
	return string(data), nil
}

// invalidUTF8Offset returns the offset of the first invalid sequence in
// data, or -1 when data is valid UTF-8.
func invalidUTF8Offset(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
