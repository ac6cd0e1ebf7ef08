package csv

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/DefiantLabs/pnl-export-cli/accounting"
	"github.com/DefiantLabs/pnl-export-cli/config"
)

// reportFiles are the files an export may produce, in archive order
var reportFiles = []string{FilenameAllCSV, FilenameAllXLSX}

// CreateZip exports into a fresh temporary directory and packs the produced files into
// csv.zip next to them. It returns the archive path on success.
func (e *Exporter) CreateZip(settings accounting.Settings, events []Event, pnls *accounting.PnlTotals) (bool, string) {
	root := e.TempRoot
	if root != "" {
		if err := os.MkdirAll(root, 0o755); err != nil {
			return false, fmt.Sprintf("could not create export root %s: %v", root, err)
		}
	}
	dirpath, err := os.MkdirTemp(root, TempDirPrefix+"*")
	if err != nil {
		return false, fmt.Sprintf("could not create export directory: %v", err)
	}

	success, msg := e.Export(settings, events, pnls, dirpath)
	if !success {
		removeExportDir(dirpath)
		return false, msg
	}

	zipPath := filepath.Join(dirpath, FilenameZip)
	if err := zipFiles(zipPath, dirpath, reportFiles); err != nil {
		config.Log.Error("Error creating pnl report archive", err)
		removeExportDir(dirpath)
		return false, ""
	}

	absPath, err := filepath.Abs(zipPath)
	if err != nil {
		absPath = zipPath
	}
	return true, absPath
}

func removeExportDir(dirpath string) {
	if err := os.RemoveAll(dirpath); err != nil {
		config.Log.Warnf("Could not remove export directory %s: %v", dirpath, err)
	}
}

// zipFiles adds every existing file of names (relative to dir) into a deflate archive
// at zipPath. Added files are removed once the archive is complete.
func zipFiles(zipPath, dir string, names []string) (err error) {
	out, err := os.Create(zipPath)
	if err != nil {
		return err
	}

	var added []string
	w := zip.NewWriter(out)
	defer func() {
		if closeErr := w.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
		if closeErr := out.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(zipPath)
			return
		}
		for _, path := range added {
			if rmErr := os.Remove(path); rmErr != nil {
				config.Log.Warnf("Could not remove %s after archiving: %v", path, rmErr)
			}
		}
	}()

	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, statErr := os.Stat(path); statErr != nil {
			if errors.Is(statErr, os.ErrNotExist) {
				continue
			}
			return statErr
		}
		if err = addToZip(w, path, name); err != nil {
			return err
		}
		added = append(added, path)
	}

	return nil
}

func addToZip(w *zip.Writer, path, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}
