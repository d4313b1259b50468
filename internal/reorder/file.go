package reorder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wharflab/cheetah-lint/internal/imports"
)

// FileChange is the outcome of rewriting one template.
type FileChange struct {
	Path string

	// OriginalContent is the file content before the rewrite.
	OriginalContent string

	// ModifiedContent is the file content after the rewrite.
	ModifiedContent string
}

// HasChanges reports whether the rewrite altered the file.
func (fc *FileChange) HasChanges() bool {
	return fc.OriginalContent != fc.ModifiedContent
}

// RewriteFile reads path and runs the pipeline over it without writing.
func RewriteFile(path string, sorter imports.Sorter) (*FileChange, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Rewrite(path, string(content), sorter), nil
}

// Rewrite runs the pipeline over content already read from path.
func Rewrite(path, content string, sorter imports.Sorter) *FileChange {
	return &FileChange{
		Path:            path,
		OriginalContent: content,
		ModifiedContent: Run(content, sorter),
	}
}

// Write replaces the file with the modified content, preserving its
// permissions. The new content is written to a sibling temp file first and
// renamed into place.
func (fc *FileChange) Write() error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(fc.Path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(fc.Path), "."+filepath.Base(fc.Path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", fc.Path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.WriteString(fc.ModifiedContent); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", fc.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", fc.Path, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", fc.Path, err)
	}
	if err := os.Rename(tmpName, fc.Path); err != nil {
		return fmt.Errorf("failed to write %s: %w", fc.Path, err)
	}
	return nil
}
