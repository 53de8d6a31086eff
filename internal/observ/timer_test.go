package observ

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)
	a := tm.Begin("catalog")
	tm.End(a, "")
	b := tm.Begin("declare")
	tm.End(b, "149 ops")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[1].Note != "149 ops" {
		t.Fatalf("report %+v", r)
	}
	if r.TotalMS != 2 {
		t.Fatalf("total %v ms", r.TotalMS)
	}
}

func TestTrackRecordsFailure(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)
	err := tm.Track("verify", func() error { return errors.New("mismatch") })
	if err == nil || tm.Report().Phases[0].Note != "failed: mismatch" {
		t.Fatalf("failure not recorded: %v %+v", err, tm.Report())
	}
}

func TestSummaryAligns(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)
	tm.End(tm.Begin("a"), "")
	tm.End(tm.Begin("signatures"), "")
	lines := strings.Split(strings.TrimSpace(tm.Summary()), "\n")
	if len(lines) != 4 {
		t.Fatalf("summary:\n%s", tm.Summary())
	}
	col := strings.Index(lines[1], "ms")
	for _, l := range lines[2:] {
		if strings.Index(l, "ms") != col {
			t.Fatalf("columns not aligned:\n%s", tm.Summary())
		}
	}
}
