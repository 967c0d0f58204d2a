package capture

import (
	"io"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// ReadCaptureTime extracts the embedded capture timestamp from an
// image stream. It returns (t, true, nil) when a timestamp is found
// and (zero, false, nil) when the image carries none; decode failures
// are treated as "not found" rather than errors.
func ReadCaptureTime(r io.Reader) (time.Time, bool, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return time.Time{}, false, nil
	}

	// Prefer DateTimeOriginal, then DateTimeDigitized, then DateTime.
	if tm, ok := timeFromTag(x, exif.DateTimeOriginal); ok {
		return tm, true, nil
	}
	if tm, ok := timeFromTag(x, exif.DateTimeDigitized); ok {
		return tm, true, nil
	}
	if tm, ok := timeFromTag(x, exif.DateTime); ok {
		return tm, true, nil
	}
	if t, err := x.DateTime(); err == nil {
		return t, true, nil
	}

	return time.Time{}, false, nil
}

func timeFromTag(x *exif.Exif, tag exif.FieldName) (time.Time, bool) {
	f, err := x.Get(tag)
	if err != nil {
		return time.Time{}, false
	}

	s, err := f.StringVal()
	if err != nil {
		return time.Time{}, false
	}

	// EXIF DateTime format: "2006:01:02 15:04:05".
	// It carries no timezone; interpret as Local.
	tm, err := time.ParseInLocation("2006:01:02 15:04:05", s, time.Local)
	if err != nil {
		return time.Time{}, false
	}

	return tm, true
}
