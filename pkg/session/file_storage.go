package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage keeps the session in a JSON file on disk.
type FileStorage struct {
	path string
}

// NewFileStorage creates the parent directory if missing.
func NewFileStorage(path string) (*FileStorage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("session file path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}
	return &FileStorage{path: path}, nil
}

func (f *FileStorage) Save(data Data) error {
	buf, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(f.path, buf, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (f *FileStorage) Load() (Data, bool, error) {
	buf, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return Data{}, false, nil
	}
	if err != nil {
		return Data{}, false, fmt.Errorf("read session file: %w", err)
	}
	var data Data
	if err := json.Unmarshal(buf, &data); err != nil {
		// A corrupt session file is treated as signed out.
		return Data{}, false, nil
	}
	if data.Token == "" {
		return Data{}, false, nil
	}
	return data, true, nil
}

func (f *FileStorage) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
