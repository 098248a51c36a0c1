package changelog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadPath(t *testing.T) {
	t.Parallel()

	c := New("https://github.com/acme/demo")
	require.NoError(t, c.Release("1.0.0", ReleaseOptions{Date: "2025-02-24"}))

	for _, name := range []string{"CHANGELOG.yml", "CHANGELOG.toml", "CHANGELOG.json"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, SavePath(path, c, true))

			got, err := LoadPath(path)
			require.NoError(t, err)
			assert.Equal(t, c.normalized(), got)
		})
	}
}

func TestSavePath_RejectsInvalidModel(t *testing.T) {
	t.Parallel()

	c := New("")
	c.Versions["1.0.0"] = Release{Tag: "v1.0.0", Date: "not-a-date"}

	path := filepath.Join(t.TempDir(), "CHANGELOG.yml")
	err := SavePath(path, c, true)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	// Nothing was written, not even partially.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSavePath_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "CHANGELOG.yml")
	require.NoError(t, SavePath(path, New(""), true))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "CHANGELOG.yml", entries[0].Name())
}

func TestLoadPath_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadPath(filepath.Join(t.TempDir(), "CHANGELOG.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDetectSource(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		files []string
		want  string
	}{
		"yml":              {files: []string{"CHANGELOG.yml"}, want: "CHANGELOG.yml"},
		"lowercase stem":   {files: []string{"changelog.toml"}, want: "changelog.toml"},
		"json":             {files: []string{"Changelog.json"}, want: "Changelog.json"},
		"ignores markdown": {files: []string{"CHANGELOG.md", "README.md"}, want: ""},
		"empty dir":        {files: nil, want: ""},
		"yml preferred over json": {
			files: []string{"CHANGELOG.json", "CHANGELOG.yml"},
			want:  "CHANGELOG.yml",
		},
		"yaml preferred over toml": {
			files: []string{"CHANGELOG.toml", "CHANGELOG.yaml"},
			want:  "CHANGELOG.yaml",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for _, f := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o644))
			}

			got, err := DetectSource(dir)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, filepath.Join(dir, tt.want), got)
			}
		})
	}
}
