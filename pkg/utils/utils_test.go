package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimSpaceSlice(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "mixed whitespace and content",
			input:    []string{"  hello  ", "", "  world", "test  ", "   "},
			expected: []string{"hello", "world", "test"},
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "all empty/whitespace",
			input:    []string{"", "  ", "   ", "\t"},
			expected: []string{},
		},
		{
			name:     "no trimming needed",
			input:    []string{"hello", "world"},
			expected: []string{"hello", "world"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrimSpaceSlice(tt.input))
		})
	}
}

func TestParseCommaDelimited(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "normal comma separated",
			input:    "one,two,three",
			expected: []string{"one", "two", "three"},
		},
		{
			name:     "with whitespace",
			input:    " one , two  ,  three ",
			expected: []string{"one", "two", "three"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single item",
			input:    "single",
			expected: []string{"single"},
		},
		{
			name:     "empty items",
			input:    "one,,three,",
			expected: []string{"one", "three"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCommaDelimited(tt.input))
		})
	}
}

func TestSafeCreateFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "report.json")

	f, err := SafeCreateFile(target)
	require.NoError(t, err)
	f.Close()

	assert.True(t, FileExists(target))
}

func TestSafeCreateFileRejectsTraversal(t *testing.T) {
	_, err := SafeCreateFile("../../etc/passwd")
	assert.Error(t, err, "expected SafeCreateFile to reject a path containing '..'")
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	assert.False(t, FileExists(path))

	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	assert.True(t, FileExists(path))
	assert.False(t, FileExists(dir), "expected a directory to not be reported as a file")
}
