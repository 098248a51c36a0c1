package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// sourceExtensions are the recognized CHANGELOG source extensions, in
// autodetection order.
var sourceExtensions = []string{"yml", "yaml", "toml", "json"}

// LoadPath reads and decodes a CHANGELOG source file. The format is
// determined by the file extension.
func LoadPath(path string) (*Changelog, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading changelog file: %w", err)
	}

	return Decode(data, format)
}

// SavePath validates, encodes, and writes the document to path, with
// the format determined by the extension. The write goes through a
// temporary file in the same directory followed by a rename, so an
// interrupted write never leaves a partially written document behind.
func SavePath(path string, c *Changelog, pretty bool) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	if err := Validate(c); err != nil {
		return err
	}

	data, err := Encode(c, format, pretty)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// DetectSource finds a CHANGELOG source file in dir: any file whose
// stem is "changelog" (case-insensitive) with a recognized extension.
// When several formats coexist the first match in sourceExtensions
// order wins. Returns "" when nothing matches.
func DetectSource(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading directory: %w", err)
	}

	byExt := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if !strings.EqualFold(stem, "changelog") {
			continue
		}
		if _, taken := byExt[ext]; !taken {
			byExt[ext] = name
		}
	}

	for _, ext := range sourceExtensions {
		if name, ok := byExt[ext]; ok {
			return filepath.Join(dir, name), nil
		}
	}
	return "", nil
}
