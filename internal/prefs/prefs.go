// Package prefs persists shoplens user preferences: the theme and the last
// values typed into the input panel. Preferences live in
// ~/.config/shoplens/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences.
type Prefs struct {
	Theme        string `toml:"theme"`
	LastCSV      string `toml:"last_csv,omitempty"`
	LastProducts string `toml:"last_products,omitempty"`
	LastUserID   string `toml:"last_user_id,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/shoplens/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Default returns the preferences used before anything was saved.
func Default() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Load reads preferences from path (empty means the default location).
// Preferences are a convenience, so a missing, unreadable or malformed file
// yields Default() without an error; only an unusable path is reported.
func Load(path string) (Prefs, error) {
	file, err := Resolve(path)
	if err != nil {
		return Default(), err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return Default(), nil
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p.normalized(), nil
}

// Save writes p to path, creating parent directories. The file is replaced
// atomically so a crash never leaves half-written preferences behind.
func Save(path string, p Prefs) error {
	file, err := Resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(file), ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), file); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

// normalized trims every field and fills in the default theme.
func (p Prefs) normalized() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	p.LastCSV = strings.TrimSpace(p.LastCSV)
	p.LastProducts = strings.TrimSpace(p.LastProducts)
	p.LastUserID = strings.TrimSpace(p.LastUserID)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	return p
}

// Resolve expands ~ and makes path absolute; empty selects DefaultPath.
func Resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPrefsPath
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve prefs path: %w", err)
	}
	return abs, nil
}
