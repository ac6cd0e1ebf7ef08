package tasks

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DefiantLabs/pnl-export-cli/csv"
	"github.com/go-co-op/gocron"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkExportDir(t *testing.T, root, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, csv.FilenameZip), []byte("zip"), 0o600))
	modTime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

func TestCleanupExportsTask(t *testing.T) {
	root := t.TempDir()
	stale := mkExportDir(t, root, csv.TempDirPrefix+"stale", 2*time.Hour)
	fresh := mkExportDir(t, root, csv.TempDirPrefix+"fresh", time.Minute)
	unrelated := mkExportDir(t, root, "keep-me", 2*time.Hour)

	removed := CleanupExportsTask(root, time.Hour)
	assert.Equal(t, 1, removed)
	assert.NoDirExists(t, stale)
	assert.DirExists(t, fresh)
	assert.DirExists(t, unrelated, "only export directories are touched")
}

func TestCleanupExportsTaskMissingRoot(t *testing.T) {
	assert.Equal(t, 0, CleanupExportsTask(filepath.Join(t.TempDir(), "missing"), time.Hour))
}

func TestScheduleCleanup(t *testing.T) {
	scheduler := gocron.NewScheduler(time.UTC)
	require.NoError(t, ScheduleCleanup(scheduler, t.TempDir(), 0, time.Hour))
	assert.Empty(t, scheduler.Jobs())

	require.NoError(t, ScheduleCleanup(scheduler, t.TempDir(), time.Hour, time.Hour))
	assert.Len(t, scheduler.Jobs(), 1)
}
