// Package cleanup runs the three-pass repair pipeline over one roll
// directory: assign capture timestamps, remove stray sidecar files,
// rename images into the R<roll>F<frame> scheme.
package cleanup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/filmtools/noritsu-cleanup/pkg/capture"
	"github.com/filmtools/noritsu-cleanup/pkg/plan"
	"github.com/filmtools/noritsu-cleanup/pkg/scan"
)

// SidecarName is the stray file EZController leaves behind when asked
// to always save to HDD without confirming.
const SidecarName = "Info_HD.txt"

// CaptureTagger writes a capture timestamp into one image's metadata.
// The real implementation shells out to exiftool; tests substitute a
// fake.
type CaptureTagger interface {
	SetCaptureTime(path string, t time.Time) error
}

// Action describes what happened to a file.
type Action string

const (
	ActionTagged  Action = "tagged"
	ActionRemoved Action = "removed"
	ActionRenamed Action = "renamed"
	ActionSkipped Action = "skipped"
	ActionFailed  Action = "failed"
)

// Result is the outcome for one file in one pass.
type Result struct {
	Path   string
	Action Action

	Destination string    // set for renames
	CaptureTime time.Time // set for tag writes

	Err error
}

// Options configures a pipeline run.
type Options struct {
	// UseFrameNumbers selects frame numbers parsed from the source
	// filenames instead of a per-roll sequence. Duplicated frame
	// numbers then silently overwrite each other; that's accepted.
	UseFrameNumbers bool

	// RollPadding is the zero-padded width of roll numbers in the
	// new filenames.
	RollPadding int

	// KeepSidecars leaves Info_HD.txt and *.thm files in place.
	KeepSidecars bool

	// DryRun reports what would happen without touching anything.
	DryRun bool

	// Extensions overrides the image extensions to process.
	Extensions []string
}

func DefaultOptions() Options {
	return Options{
		RollPadding: plan.DefaultOptions().RollPadding,
		Extensions:  scan.DefaultOptions().Extensions,
	}
}

// Run executes the pipeline for one directory and returns per-file
// results in pipeline order. Per-file failures are reported in the
// results and never abort the run; only a directory-level listing
// failure returns an error.
func Run(dir string, tagger CaptureTagger, opts Options) ([]Result, error) {
	scanOpts := scan.DefaultOptions()
	if opts.Extensions != nil {
		scanOpts.Extensions = opts.Extensions
	}

	records, err := scan.ListImages(os.DirFS(dir), ".", scanOpts)
	if err != nil {
		return nil, fmt.Errorf("list images in %s: %w", dir, err)
	}
	log.WithFields(log.Fields{"dir": dir, "images": len(records)}).Debug("processing directory")

	var results []Result
	results = append(results, fixTimestamps(dir, records, tagger, opts)...)
	if !opts.KeepSidecars {
		results = append(results, removeSidecars(dir, opts)...)
	}
	results = append(results, renameImages(dir, records, opts)...)

	return results, nil
}

// fixTimestamps applies the synthetic capture-time sequence. The
// assignments are computed up front for the whole set, so one failed
// write never shifts another file's timestamp.
func fixTimestamps(dir string, records []scan.Record, tagger CaptureTagger, opts Options) []Result {
	assignments := capture.Assign(records)

	results := make([]Result, 0, len(assignments))
	for _, a := range assignments {
		path := filepath.Join(dir, filepath.FromSlash(a.Path))
		log.WithFields(log.Fields{"path": path, "capture_time": a.Time}).Debug("assigning capture time")

		if !opts.DryRun {
			if err := tagger.SetCaptureTime(path, a.Time); err != nil {
				results = append(results, Result{
					Path:   path,
					Action: ActionFailed,
					Err:    fmt.Errorf("set capture time: %w", err),
				})
				continue
			}
		}
		results = append(results, Result{Path: path, Action: ActionTagged, CaptureTime: a.Time})
	}
	return results
}

// removeSidecars deletes the Info_HD.txt sidecar and any *.thm
// thumbnails. Absence is not an error, so a second run reports
// nothing here.
func removeSidecars(dir string, opts Options) []Result {
	var results []Result

	candidates := []string{filepath.Join(dir, SidecarName)}
	thumbs, err := filepath.Glob(filepath.Join(dir, "*.thm"))
	if err == nil {
		candidates = append(candidates, thumbs...)
	}

	for _, path := range candidates {
		info, statErr := os.Stat(path)
		if statErr != nil || info.IsDir() {
			continue
		}

		log.WithField("path", path).Debug("deleting sidecar")
		if !opts.DryRun {
			if removeErr := os.Remove(path); removeErr != nil {
				results = append(results, Result{
					Path:   path,
					Action: ActionFailed,
					Err:    fmt.Errorf("remove sidecar: %w", removeErr),
				})
				continue
			}
		}
		results = append(results, Result{Path: path, Action: ActionRemoved})
	}
	return results
}

// renameImages plans and performs the renames in processing order.
func renameImages(dir string, records []scan.Record, opts Options) []Result {
	sources := make([]string, 0, len(records))
	for _, r := range records {
		sources = append(sources, r.Path)
	}

	planOpts := plan.Options{
		UseFrameNumbers: opts.UseFrameNumbers,
		RollPadding:     opts.RollPadding,
	}
	operations, skips := plan.Renames(sources, planOpts)

	var results []Result
	for _, s := range skips {
		results = append(results, Result{
			Path:   filepath.Join(dir, filepath.FromSlash(s.SourcePath)),
			Action: ActionSkipped,
			Err:    errors.New(s.Reason),
		})
	}

	for _, op := range operations {
		src := filepath.Join(dir, filepath.FromSlash(op.SourcePath))
		dst := filepath.Join(dir, filepath.FromSlash(op.DestinationPath))
		if src == dst {
			continue
		}

		log.WithFields(log.Fields{"from": src, "to": dst}).Debug("renaming")
		if !opts.DryRun {
			if err := os.Rename(src, dst); err != nil {
				results = append(results, Result{
					Path:   src,
					Action: ActionFailed,
					Err:    fmt.Errorf("rename: %w", err),
				})
				continue
			}
		}
		results = append(results, Result{Path: src, Action: ActionRenamed, Destination: dst})
	}
	return results
}

// Describe renders a result as a one-line, user-facing message.
func Describe(r Result) string {
	switch r.Action {
	case ActionTagged:
		ms := r.CaptureTime.Nanosecond() / int(time.Millisecond)
		return fmt.Sprintf("%s: capture time %s.%03d", r.Path, r.CaptureTime.Format("2006:01:02 15:04:05"), ms)
	case ActionRemoved:
		return fmt.Sprintf("%s: deleted", r.Path)
	case ActionRenamed:
		return fmt.Sprintf("%s => %s", r.Path, filepath.Base(r.Destination))
	case ActionSkipped:
		return fmt.Sprintf("%s: skipped: %v", r.Path, r.Err)
	case ActionFailed:
		return fmt.Sprintf("%s: failed: %v", r.Path, r.Err)
	}
	return fmt.Sprintf("%s: %s", r.Path, r.Action)
}
