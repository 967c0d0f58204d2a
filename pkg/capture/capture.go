package capture

import (
	"time"

	"github.com/filmtools/noritsu-cleanup/pkg/scan"
)

// Assignment is the capture timestamp chosen for one image.
type Assignment struct {
	Path string
	Time time.Time
}

// Assign computes capture timestamps for records, which must already
// be sorted in scan order (ascending modification time).
//
// The first record keeps its modification time; every subsequent
// record gets the previous assignment plus exactly one millisecond,
// regardless of its own modification time. Assignments are computed
// up front so a failed write for one file never shifts the others.
func Assign(records []scan.Record) []Assignment {
	assignments := make([]Assignment, 0, len(records))

	var base time.Time
	for i, r := range records {
		if i == 0 {
			base = r.ModTime
		}
		assignments = append(assignments, Assignment{
			Path: r.Path,
			Time: base.Add(time.Duration(i) * time.Millisecond),
		})
	}
	return assignments
}
