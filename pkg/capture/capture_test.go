package capture

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/filmtools/noritsu-cleanup/pkg/scan"
)

func TestAssign_ArithmeticMillisecondSequence(t *testing.T) {
	base := time.Date(2021, 12, 26, 10, 0, 0, 0, time.UTC)

	records := []scan.Record{
		{Path: "roll/000074660002_1.jpg", ModTime: base},
		{Path: "roll/000074660001_1.jpg", ModTime: base.Add(5 * time.Second)},
		{Path: "roll/000074660003_1.jpg", ModTime: base.Add(9 * time.Second)},
	}

	got := Assign(records)

	want := []Assignment{
		{Path: "roll/000074660002_1.jpg", Time: base},
		{Path: "roll/000074660001_1.jpg", Time: base.Add(1 * time.Millisecond)},
		{Path: "roll/000074660003_1.jpg", Time: base.Add(2 * time.Millisecond)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected assignments (-want +got):\n%s", diff)
	}
}

func TestAssign_StrictlyIncreasing(t *testing.T) {
	base := time.Date(2021, 12, 26, 10, 0, 0, 0, time.UTC)

	records := make([]scan.Record, 50)
	for i := range records {
		// All frames share one mod time; the sequence must still
		// be strictly increasing.
		records[i] = scan.Record{Path: "x.jpg", ModTime: base}
	}

	got := Assign(records)
	for i := 1; i < len(got); i++ {
		diff := got[i].Time.Sub(got[i-1].Time)
		if diff != time.Millisecond {
			t.Fatalf("assignment %d spaced %v from previous, want 1ms", i, diff)
		}
	}
}

func TestAssign_Empty(t *testing.T) {
	if got := Assign(nil); len(got) != 0 {
		t.Fatalf("expected no assignments, got %#v", got)
	}
}

func TestReadCaptureTime_NonExifDataIsNotFound(t *testing.T) {
	tm, ok, err := ReadCaptureTime(bytes.NewReader([]byte("not a jpeg")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected not found, got %v", tm)
	}
}
