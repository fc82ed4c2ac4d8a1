package fileblock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultFileMode os.FileMode = 0o644

// fileState captures the target file before modification.
type fileState struct {
	Path        string
	Exists      bool
	Permissions os.FileMode
	Content     string
}

func readFileState(path string) (*fileState, error) {
	expanded, err := expandPath(path)
	if err != nil {
		return nil, err
	}

	state := &fileState{Path: expanded, Permissions: defaultFileMode}

	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state, nil
		}
		return nil, err
	}

	state.Exists = true
	state.Permissions = info.Mode().Perm()

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, err
	}
	state.Content = string(data)
	return state, nil
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			path = home
		} else if strings.HasPrefix(path, "~/") {
			path = filepath.Join(home, path[2:])
		}
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Abs(path)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".rigup-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
