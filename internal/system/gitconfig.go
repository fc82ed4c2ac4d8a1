package system

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	format "github.com/go-git/go-git/v5/plumbing/format/config"
)

// FileGitConfig implements GitConfig against a gitconfig file, by default
// the user's global one.
type FileGitConfig struct {
	Path string
}

// NewGitConfig builds a facade over the global git configuration.
func NewGitConfig() (*FileGitConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &FileGitConfig{Path: filepath.Join(home, ".gitconfig")}, nil
}

var _ GitConfig = (*FileGitConfig)(nil)

// GetGlobal reads a dotted key ("user.email", "branch.main.rebase") from the
// config file. A missing file or key yields ok=false without an error.
func (g *FileGitConfig) GetGlobal(key string) (string, bool, error) {
	cfg, err := g.load()
	if err != nil {
		return "", false, err
	}

	section, subsection, option, err := splitKey(key)
	if err != nil {
		return "", false, err
	}

	sec := cfg.Section(section)
	if subsection != "" {
		sub := sec.Subsection(subsection)
		if !sub.HasOption(option) {
			return "", false, nil
		}
		return sub.Option(option), true, nil
	}
	if !sec.HasOption(option) {
		return "", false, nil
	}
	return sec.Option(option), true, nil
}

// SetGlobal writes a dotted key, creating the file when absent and
// preserving unrelated sections.
func (g *FileGitConfig) SetGlobal(key, value string) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	section, subsection, option, err := splitKey(key)
	if err != nil {
		return err
	}

	if subsection != "" {
		cfg.Section(section).Subsection(subsection).SetOption(option, value)
	} else {
		cfg.Section(section).SetOption(option, value)
	}

	if err := os.MkdirAll(filepath.Dir(g.Path), 0o755); err != nil {
		return err
	}

	file, err := os.OpenFile(g.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	return format.NewEncoder(file).Encode(cfg)
}

func (g *FileGitConfig) load() (*format.Config, error) {
	cfg := format.New()

	file, err := os.Open(g.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	defer file.Close()

	if err := format.NewDecoder(file).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitKey(key string) (section, subsection, option string, err error) {
	parts := strings.Split(key, ".")
	switch len(parts) {
	case 2:
		return parts[0], "", parts[1], nil
	case 3:
		return parts[0], parts[1], parts[2], nil
	default:
		return "", "", "", fmt.Errorf("invalid git config key %q", key)
	}
}
