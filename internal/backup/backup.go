package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"arczen/internal/zen"
)

// suffix format appended to each session file: .backup_20060102_150405
const stampLayout = "20060102_150405"

// Snapshot copies the profile's three session files side by side with a
// shared timestamp suffix and returns that timestamp. Files that do not
// exist yet are skipped; a snapshot that copies nothing is an error.
func Snapshot(profile string) (string, error) {
	stamp := time.Now().Format(stampLayout)
	copied := 0
	for _, src := range sessionFiles(profile) {
		data, err := os.ReadFile(src)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("backup: read %s: %w", src, err)
		}
		dst := src + ".backup_" + stamp
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return "", fmt.Errorf("backup: write %s: %w", dst, err)
		}
		copied++
	}
	if copied == 0 {
		return "", fmt.Errorf("backup: no session files under %s", profile)
	}
	return stamp, nil
}

// List returns the snapshot timestamps present in a profile, newest first.
func List(profile string) ([]string, error) {
	seen := make(map[string]bool)
	for _, src := range sessionFiles(profile) {
		matches, err := filepath.Glob(src + ".backup_*")
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if i := strings.LastIndex(m, ".backup_"); i >= 0 {
				seen[m[i+len(".backup_"):]] = true
			}
		}
	}

	stamps := make([]string, 0, len(seen))
	for stamp := range seen {
		stamps = append(stamps, stamp)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(stamps)))
	return stamps, nil
}

// Restore puts the files of one snapshot back in place and refreshes the
// recovery backup from the restored recovery file. An empty stamp selects
// the newest snapshot.
func Restore(profile, stamp string) error {
	if stamp == "" {
		stamps, err := List(profile)
		if err != nil {
			return err
		}
		if len(stamps) == 0 {
			return fmt.Errorf("backup: no snapshots under %s", profile)
		}
		stamp = stamps[0]
	}

	restored := 0
	for _, dst := range sessionFiles(profile) {
		data, err := os.ReadFile(dst + ".backup_" + stamp)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("backup: read snapshot: %w", err)
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return fmt.Errorf("backup: restore %s: %w", dst, err)
		}
		restored++
	}
	if restored == 0 {
		return fmt.Errorf("backup: snapshot %s not found under %s", stamp, profile)
	}

	// Keep the recovery backup consistent with the restored recovery file.
	if data, err := os.ReadFile(zen.RecoveryPath(profile)); err == nil {
		if err := os.WriteFile(zen.RecoveryBackupPath(profile), data, 0644); err != nil {
			return fmt.Errorf("backup: refresh recovery backup: %w", err)
		}
	}
	return nil
}

// DeleteAll removes every snapshot file and returns how many were deleted.
func DeleteAll(profile string) (int, error) {
	deleted := 0
	for _, src := range sessionFiles(profile) {
		matches, err := filepath.Glob(src + ".backup_*")
		if err != nil {
			return deleted, err
		}
		for _, m := range matches {
			if err := os.Remove(m); err != nil {
				return deleted, fmt.Errorf("backup: delete %s: %w", m, err)
			}
			deleted++
		}
	}
	return deleted, nil
}

func sessionFiles(profile string) []string {
	return []string{
		zen.SessionPath(profile),
		zen.RecoveryPath(profile),
		zen.RecoveryBackupPath(profile),
	}
}
