package rollname

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// EZController writes images as <roll><frame>[_<frame name>].<ext>,
// where roll is the 8-digit order number and frame is a 4-digit
// counter. The frame name is whatever the DX reader detected on the
// rebate and may be empty.
var reStem = regexp.MustCompile(`^(\d{8})(\d{4})(?:_(.*))?$`)

// Identifier is the roll/frame information parsed from a source filename.
type Identifier struct {
	Roll  int
	Frame int

	// FrameName is the DX reader frame name suffix, without the
	// leading underscore. Empty when the filename has none.
	FrameName string
}

// Parse extracts the roll/frame identifier from a filename.
//
// The extension is ignored; only the stem is matched. It returns
// false when the stem doesn't follow the EZController naming scheme.
func Parse(filename string) (Identifier, bool) {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))

	m := reStem.FindStringSubmatch(stem)
	if m == nil {
		return Identifier{}, false
	}

	roll, err := strconv.Atoi(m[1])
	if err != nil {
		return Identifier{}, false
	}
	frame, err := strconv.Atoi(m[2])
	if err != nil {
		return Identifier{}, false
	}

	return Identifier{Roll: roll, Frame: frame, FrameName: m[3]}, true
}

// Format builds the cleaned-up filename R<roll>F<frame><ext>.
//
// The roll number is zero-padded to rollPadding characters; the frame
// number is rendered without padding. ext includes the dot.
func Format(roll, frame, rollPadding int, ext string) string {
	return fmt.Sprintf("R%0*dF%d%s", rollPadding, roll, frame, ext)
}
