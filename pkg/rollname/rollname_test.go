package rollname

import "testing"

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		filename string
		want     Identifier
		wantOK   bool
	}{
		{
			name:     "roll and frame with frame name",
			filename: "000074660001_1.jpg",
			want:     Identifier{Roll: 7466, Frame: 1, FrameName: "1"},
			wantOK:   true,
		},
		{
			name:     "frame name with letters",
			filename: "000074660038_XA.tif",
			want:     Identifier{Roll: 7466, Frame: 38, FrameName: "XA"},
			wantOK:   true,
		},
		{
			name:     "no frame name suffix",
			filename: "000074670012.jpg",
			want:     Identifier{Roll: 7467, Frame: 12, FrameName: ""},
			wantOK:   true,
		},
		{
			name:     "empty frame name after underscore",
			filename: "000074660002_.jpg",
			want:     Identifier{Roll: 7466, Frame: 2, FrameName: ""},
			wantOK:   true,
		},
		{
			name:     "numeric run too short",
			filename: "07466001.jpg",
			wantOK:   false,
		},
		{
			name:     "non-numeric name",
			filename: "holiday.jpg",
			wantOK:   false,
		},
		{
			name:     "trailing garbage without underscore",
			filename: "000074660001x.jpg",
			wantOK:   false,
		},
		{
			name:     "empty filename",
			filename: "",
			wantOK:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Parse(tc.filename)
			if ok != tc.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tc.filename, ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Fatalf("Parse(%q)\n got: %+v\nwant: %+v", tc.filename, got, tc.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	testCases := []struct {
		name        string
		roll, frame int
		rollPadding int
		ext         string
		want        string
	}{
		{
			name: "default padding",
			roll: 7466, frame: 1, rollPadding: 4, ext: ".jpg",
			want: "R7466F1.jpg",
		},
		{
			name: "roll shorter than padding",
			roll: 12, frame: 36, rollPadding: 4, ext: ".tif",
			want: "R0012F36.tif",
		},
		{
			name: "roll longer than padding",
			roll: 123456, frame: 2, rollPadding: 4, ext: ".jpg",
			want: "R123456F2.jpg",
		},
		{
			name: "frame is never padded",
			roll: 7466, frame: 7, rollPadding: 6, ext: ".jpeg",
			want: "R007466F7.jpeg",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Format(tc.roll, tc.frame, tc.rollPadding, tc.ext)
			if got != tc.want {
				t.Fatalf("Format() = %q, want %q", got, tc.want)
			}
		})
	}
}
