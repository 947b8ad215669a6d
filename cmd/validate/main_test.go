package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestValidateFile(t *testing.T) {
	embedded := filepath.Join("..", "..", "pkg", "content")

	for _, name := range []string{"menu.json", "aetherian.json", "chronos.json", "void.json"} {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, validateFile(filepath.Join(embedded, name)))
		})
	}

	tests := []struct {
		name    string
		file    string
		data    string
		wantErr string
	}{
		{"not json extension", "menu.yaml", "{}", ".json extension"},
		{"camel case", "Menu.json", "{}", "snake_case"},
		{"kebab case", "my-menu.json", "{}", "snake_case"},
		{"unknown section", "extra.json", "{}", "validation errors"},
		{"broken json", "menu.json", "{", "validation errors"},
		{"incomplete menu", "menu.json", `{"title":"T","entries":[]}`, "  - "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFile(writeFile(t, tt.file, tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateFile_Missing(t *testing.T) {
	err := validateFile(filepath.Join(t.TempDir(), "void.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}
