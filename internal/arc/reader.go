package arc

import (
	"fmt"
	"os"
	"path/filepath"
)

// SidebarFilename is the name of Arc's sidebar state file.
const SidebarFilename = "StorableSidebar.json"

// DefaultSidebarPath returns the sidebar file location inside Arc's data
// directory.
func DefaultSidebarPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "Application Support", "Arc", SidebarFilename), nil
}

// ReadSidebar loads the raw sidebar document. An explicit path wins;
// otherwise the current directory is checked before Arc's data directory.
func ReadSidebar(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}

	if data, err := os.ReadFile(SidebarFilename); err == nil {
		return data, nil
	}

	defaultPath, err := DefaultSidebarPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(defaultPath)
	if err != nil {
		return nil, fmt.Errorf("arc: %q not found in the current directory or %s: %w",
			SidebarFilename, filepath.Dir(defaultPath), err)
	}
	return data, nil
}
