package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"itinerary-planner/internal/logging"
)

const (
	archivePrefix   = "itineraryserver-"
	maxArchivedLogs = 10
)

// configureLogging archives the previous run's log and tees new entries to
// stdout and logPath.
func configureLogging(logPath string) (*os.File, error) {
	started := time.Now().UTC()
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	if err := rotateExistingLog(logPath, started); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logging.SetDefaultWriter(io.MultiWriter(os.Stdout, file))
	return file, nil
}

func rotateExistingLog(logPath string, started time.Time) error {
	info, err := os.Stat(logPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() == 0 {
		return nil
	}

	archiveDir := filepath.Join(filepath.Dir(logPath), "logs")
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return fmt.Errorf("create log archive dir: %w", err)
	}

	stamp := started.Format("2006-01-02_15-04-05")
	destPath := filepath.Join(archiveDir, archivePrefix+stamp+".log")
	for i := 1; ; i++ {
		if _, err := os.Stat(destPath); errors.Is(err, os.ErrNotExist) {
			break
		}
		destPath = filepath.Join(archiveDir, fmt.Sprintf("%s%s-%d.log", archivePrefix, stamp, i))
	}
	if err := os.Rename(logPath, destPath); err != nil {
		return fmt.Errorf("archive log file: %w", err)
	}
	return pruneArchives(archiveDir, maxArchivedLogs)
}

// pruneArchives keeps the newest keep archives. Names sort chronologically.
func pruneArchives(dir string, keep int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read log archive dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), archivePrefix) {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return nil
	}
	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("prune archived log: %w", err)
		}
	}
	return nil
}
