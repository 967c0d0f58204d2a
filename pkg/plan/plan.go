package plan

import (
	"path"

	"github.com/filmtools/noritsu-cleanup/pkg/rollname"
)

// Operation represents a planned rename within a roll directory.
type Operation struct {
	SourcePath      string
	DestinationPath string

	// MayClobber marks destinations with no overwrite protection.
	// Only set in frame-number mode, where two source files can
	// share a frame number.
	MayClobber bool
}

// Skip records a file left untouched because its name doesn't follow
// the scanner naming scheme.
type Skip struct {
	SourcePath string
	Reason     string
}

// Options configures rename planning.
type Options struct {
	// UseFrameNumbers selects the frame number parsed from the
	// source filename instead of a per-roll sequence. This offers
	// no overwrite protection: duplicated frame numbers silently
	// clobber each other.
	UseFrameNumbers bool

	// RollPadding is the zero-padded width of the roll number in
	// destination names.
	RollPadding int
}

func DefaultOptions() Options {
	return Options{RollPadding: 4}
}

// Renames plans destination paths for sources, which must be in
// processing order. Destinations stay in the source's directory and
// follow R<roll>F<frame><ext>.
//
// In sequence mode the frame is a per-roll counter starting at 1, so
// destinations are unique within a run. In frame-number mode the
// parsed frame number is used verbatim.
func Renames(sources []string, opts Options) ([]Operation, []Skip) {
	operations := make([]Operation, 0, len(sources))
	var skips []Skip

	sequence := make(map[int]int)

	for _, src := range sources {
		id, ok := rollname.Parse(path.Base(src))
		if !ok {
			skips = append(skips, Skip{
				SourcePath: src,
				Reason:     "filename doesn't match the scanner naming scheme",
			})
			continue
		}

		frame := id.Frame
		if !opts.UseFrameNumbers {
			sequence[id.Roll]++
			frame = sequence[id.Roll]
		}

		name := rollname.Format(id.Roll, frame, opts.RollPadding, path.Ext(src))
		operations = append(operations, Operation{
			SourcePath:      src,
			DestinationPath: path.Join(path.Dir(src), name),
			MayClobber:      opts.UseFrameNumbers,
		})
	}

	return operations, skips
}
