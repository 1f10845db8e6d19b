// Package discover lists candidate session logs on disk. It is the catalog
// side of the system: it chooses which files exist, never what they mean.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry is one candidate session log.
type Entry struct {
	Path      string    `json:"path"`
	Project   string    `json:"project"`
	SessionID string    `json:"session_id"`
	Size      int64     `json:"size"`
	ModTime   time.Time `json:"mod_time"`
}

// DefaultRoot returns the Claude Code session directory (~/.claude/projects).
func DefaultRoot() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude", "projects")
}

// Sessions lists every .jsonl session log under root, newest first.
func Sessions(root string) ([]Entry, error) {
	projectDirs, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read projects directory: %w", err)
	}

	var entries []Entry
	for _, d := range projectDirs {
		if !d.IsDir() {
			continue
		}
		dirEntries, err := os.ReadDir(filepath.Join(root, d.Name()))
		if err != nil {
			continue
		}
		for _, de := range dirEntries {
			if de.IsDir() || !strings.HasSuffix(de.Name(), ".jsonl") {
				continue
			}
			info, err := de.Info()
			if err != nil {
				continue
			}
			entries = append(entries, Entry{
				Path:      filepath.Join(root, d.Name(), de.Name()),
				Project:   d.Name(),
				SessionID: strings.TrimSuffix(de.Name(), ".jsonl"),
				Size:      info.Size(),
				ModTime:   info.ModTime(),
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModTime.After(entries[j].ModTime)
	})
	return entries, nil
}

// Find locates a session log by its ID across all projects under root.
func Find(root, sessionID string) (Entry, error) {
	fileName := sessionID + ".jsonl"

	projectDirs, err := os.ReadDir(root)
	if err != nil {
		return Entry{}, fmt.Errorf("read projects directory: %w", err)
	}

	for _, d := range projectDirs {
		if !d.IsDir() {
			continue
		}
		path := filepath.Join(root, d.Name(), fileName)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		return Entry{
			Path:      path,
			Project:   d.Name(),
			SessionID: sessionID,
			Size:      info.Size(),
			ModTime:   info.ModTime(),
		}, nil
	}

	return Entry{}, fmt.Errorf("session %s not found", sessionID)
}

// ProjectName converts an absolute directory path to the project directory
// name Claude Code uses: the path with "/" replaced by "-".
func ProjectName(dir string) string {
	return strings.ReplaceAll(dir, "/", "-")
}
