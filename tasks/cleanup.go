package tasks

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DefiantLabs/pnl-export-cli/config"
	"github.com/DefiantLabs/pnl-export-cli/csv"
	"github.com/go-co-op/gocron"
)

// CleanupExportsTask removes the archive directories under root that are older than
// maxAge. It returns how many directories were removed.
func CleanupExportsTask(root string, maxAge time.Duration) int {
	if root == "" {
		root = os.TempDir()
	}

	config.Log.Debugf("Task started for CleanupExportsTask in %s", root)
	entries, err := os.ReadDir(root)
	if err != nil {
		config.Log.Error("Error listing export root in CleanupExportsTask", err)
		return 0
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), csv.TempDirPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			config.Log.Warnf("Could not stat export directory %s: %v", entry.Name(), err)
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(root, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			config.Log.Error("Error removing stale export directory "+path, err)
			continue
		}
		removed++
	}

	config.Log.Debugf("Task ended for CleanupExportsTask, removed %d directories", removed)
	return removed
}

// ScheduleCleanup registers the cleanup task on the scheduler. An interval of 0 disables it.
func ScheduleCleanup(scheduler *gocron.Scheduler, root string, interval, maxAge time.Duration) error {
	if interval <= 0 {
		config.Log.Info("Export cleanup is disabled")
		return nil
	}
	_, err := scheduler.Every(interval).Do(CleanupExportsTask, root, maxAge)
	return err
}
