package zen

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// FindProfile locates the Zen profile directory, preferring one whose name
// contains "default" and falling back to the first profile found.
func FindProfile() (string, error) {
	root, err := profilesRoot()
	if err != nil {
		return "", err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("zen: no profiles directory at %s: %w", root, err)
	}

	fallback := ""
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name())
		if strings.Contains(strings.ToLower(entry.Name()), "default") {
			return path, nil
		}
		if fallback == "" {
			fallback = path
		}
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("zen: no profile found under %s", root)
}

func profilesRoot() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", "zen", "Profiles"), nil
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "zen", "Profiles"), nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".zen", "Profiles"), nil
	}
}

// SessionPath returns the primary session store of a profile.
func SessionPath(profile string) string {
	return filepath.Join(profile, "zen-sessions.jsonlz4")
}

// RecoveryPath returns the recovery copy of the session.
func RecoveryPath(profile string) string {
	return filepath.Join(profile, "sessionstore-backups", "recovery.jsonlz4")
}

// RecoveryBackupPath returns the backup of the recovery copy.
func RecoveryBackupPath(profile string) string {
	return filepath.Join(profile, "sessionstore-backups", "recovery.baklz4")
}

// ReadSessionSet loads the primary and recovery documents of a profile.
// The recovery backup is regenerated on merge, so it is not read.
func ReadSessionSet(profile string) (SessionSet, error) {
	session, err := os.ReadFile(SessionPath(profile))
	if err != nil {
		return SessionSet{}, fmt.Errorf("zen: read session store: %w", err)
	}
	recovery, err := os.ReadFile(RecoveryPath(profile))
	if err != nil {
		return SessionSet{}, fmt.Errorf("zen: read recovery store: %w", err)
	}
	return SessionSet{Session: session, Recovery: recovery}, nil
}

// WriteFiles persists all three documents of the set. Callers are expected
// to have taken a snapshot first (see internal/backup).
func (s SessionSet) WriteFiles(profile string) error {
	if err := os.WriteFile(SessionPath(profile), s.Session, 0644); err != nil {
		return err
	}
	if err := os.WriteFile(RecoveryPath(profile), s.Recovery, 0644); err != nil {
		return err
	}
	return os.WriteFile(RecoveryBackupPath(profile), s.RecoveryBackup, 0644)
}

// IsRunning reports whether a Zen Browser process appears to be running.
// Process names are matched exactly, never as substrings, so the tool's own
// process (or anything else merely containing "zen") does not count.
func IsRunning() bool {
	self := strconv.Itoa(os.Getpid())
	for _, name := range []string{"zen", "zen-bin", "zen-browser", "Zen Browser"} {
		out, err := exec.Command("pgrep", "-ix", name).Output()
		if err != nil {
			continue
		}
		for _, pid := range strings.Fields(string(out)) {
			if pid != self {
				return true
			}
		}
	}
	return false
}
