package fileval

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.tmpl")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestValidateFile_SizeCheck(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, []byte("#import os\n#import sys\n"))

	require.NoError(t, ValidateFile(path, 0), "zero disables the limit")
	require.NoError(t, ValidateFile(path, 1024))

	err := ValidateFile(path, 5)
	var tooLarge *FileTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, path, tooLarge.Path)
	assert.Equal(t, int64(22), tooLarge.Size)
	assert.Equal(t, int64(5), tooLarge.MaxSize)
	assert.Contains(t, err.Error(), "max-file-size")
}

func TestValidateFile_Directory(t *testing.T) {
	t.Parallel()
	var notRegular *NotRegularError
	require.ErrorAs(t, ValidateFile(t.TempDir(), 0), &notRegular)
}

func TestValidateFile_NonexistentFile(t *testing.T) {
	t.Parallel()
	err := ValidateFile(filepath.Join(t.TempDir(), "missing.tmpl"), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadFile(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		content    []byte
		maxSize    int64
		wantOffset int
		wantErr    bool
	}{
		{name: "ascii", content: []byte("#import os\n$name\n")},
		{name: "multibyte", content: []byte("caf\xc3\xa9 \xe2\x9c\x93\n")},
		{name: "empty", content: []byte{}},
		{name: "latin1", content: []byte("caf\xe9\n"), wantOffset: 3, wantErr: true},
		{name: "truncated", content: []byte("ok\xe2\x9c"), wantOffset: 2, wantErr: true},
		{name: "too large", content: []byte("0123456789"), maxSize: 4, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeTemp(t, tt.content)

			got, err := ReadFile(path, tt.maxSize)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, string(tt.content), got)
				return
			}

			require.Error(t, err)
			var notUTF8 *NotUTF8Error
			if errors.As(err, &notUTF8) {
				assert.Equal(t, tt.wantOffset, notUTF8.Offset)
			}
		})
	}
}

func TestInvalidUTF8Offset(t *testing.T) {
	t.Parallel()
	assert.Equal(t, -1, invalidUTF8Offset([]byte("plain")))
	assert.Equal(t, 0, invalidUTF8Offset([]byte{0xff, 'a'}))
	assert.Equal(t, 4, invalidUTF8Offset([]byte("\xe2\x9c\x93a\x80")))
}
