package layout

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
	"github.com/specialistvlad/buildgridgo/internal/model"
)

// CleanWarning records a directory that could not be removed.
type CleanWarning struct {
	Directory model.Directory `json:"directory"`
	Err       error           `json:"-"`
	Message   string          `json:"message"`
}

// CleanReport is the outcome of a Clean call. Warnings never abort the
// remaining deletions.
type CleanReport struct {
	Removed  []model.Directory `json:"removed"`
	Missing  []model.Directory `json:"missing"`
	Warnings []CleanWarning    `json:"warnings"`
}

// OK reports whether every directory was removed or already absent.
func (r CleanReport) OK() bool {
	return len(r.Warnings) == 0
}

// removeAll is swapped out in tests to simulate directories in use.
var removeAll = os.RemoveAll

// Clean deletes every directory in dirs together with its contents. A missing
// directory is not an error, so calling Clean twice leaves the same state and
// reports no warnings on the second call. Directories are processed in a
// stable order and duplicates are collapsed.
func Clean(ctx context.Context, dirs []model.Directory) CleanReport {
	logger := ctxlog.FromContext(ctx)
	report := CleanReport{}

	for _, dir := range normalize(dirs) {
		dirLogger := logger.With("directory", dir.String())

		if isFilesystemRoot(dir) {
			err := fmt.Errorf("refusing to delete filesystem root")
			dirLogger.Warn("Skipping directory.", "error", err)
			report.Warnings = append(report.Warnings, CleanWarning{Directory: dir, Err: err, Message: err.Error()})
			continue
		}

		if _, err := os.Lstat(string(dir)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				dirLogger.Debug("Directory already absent.")
				report.Missing = append(report.Missing, dir)
				continue
			}
			dirLogger.Warn("Could not inspect directory.", "error", err)
			report.Warnings = append(report.Warnings, CleanWarning{Directory: dir, Err: err, Message: err.Error()})
			continue
		}

		if err := removeAll(string(dir)); err != nil {
			dirLogger.Warn("Could not delete directory.", "error", err)
			report.Warnings = append(report.Warnings, CleanWarning{Directory: dir, Err: err, Message: err.Error()})
			continue
		}
		dirLogger.Info("Deleted directory.")
		report.Removed = append(report.Removed, dir)
	}
	return report
}

func normalize(dirs []model.Directory) []model.Directory {
	seen := make(map[model.Directory]struct{}, len(dirs))
	out := make([]model.Directory, 0, len(dirs))
	for _, d := range dirs {
		if d == "" {
			continue
		}
		d = model.Directory(filepath.Clean(string(d)))
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func isFilesystemRoot(dir model.Directory) bool {
	p := string(dir)
	return filepath.Dir(p) == p
}
