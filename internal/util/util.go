package util

import (
	"encoding/json"
	"path/filepath"
	"sort"

	"github.com/keshon/fvc/internal/fsio"
)

// WriteJSON writes a JSON file atomically (temp file + rename).
var WriteJSON = func(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := fsio.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := fsio.CreateTempFile(dir, "tmp-*.json")
	if err != nil {
		return err
	}
	defer fsio.Remove(tmp.Name()) // ensure cleanup on error

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return fsio.Rename(tmp.Name(), path)
}

// ReadJSON reads a JSON file and unmarshals it into v.
var ReadJSON = func(path string, v any) error {
	data, err := fsio.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// SortedKeys returns the keys of a map sorted alphabetically.
func SortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
