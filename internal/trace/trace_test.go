package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		lvl, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if lvl.String() != s {
			t.Errorf("round trip %q -> %q", s, lvl.String())
		}
	}
	if lvl, err := ParseLevel(" DEBUG "); err != nil || lvl != LevelDebug {
		t.Fatalf("case-insensitive parse: %v %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []StorageMode{ModeStream, ModeRing, ModeBoth} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMode(%q) = %v, %v", m, got, err)
		}
	}
	if _, err := ParseMode(""); err == nil {
		t.Fatalf("empty mode accepted")
	}
}

func TestLevelScopes(t *testing.T) {
	cases := []struct {
		level  Level
		scope  Scope
		expect bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopeDriver, true},
		{LevelPhase, ScopeUnit, false},
		{LevelDetail, ScopeUnit, true},
		{LevelDetail, ScopeSymbol, false},
		{LevelDebug, ScopeSymbol, true},
		{LevelDebug, 0, false},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.expect {
			t.Errorf("%s.ShouldEmit(%s) = %v", tc.level, tc.scope, got)
		}
	}
}

func TestStreamTracerWritesText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	Point(tr, ScopeSymbol, "symbol.create", "dx.op.unary.f32", F("op", "FAbs"), F("attr", "readnone"))
	want := "#000001 symbol • symbol.create dx.op.unary.f32 op=FAbs attr=readnone\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	root := Begin(tr, ScopeUnit, "emit")
	root.Child(ScopeSymbol, "filtered").End("")
	root.With(F("declared", "3")).End("done")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 events, got %d: %q", len(lines), buf.String())
	}
	var end jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if end.Kind != "end" || end.Detail != "done" || end.Seq != 2 || end.Fields["declared"] != "3" {
		t.Fatalf("unexpected end event: %+v", end)
	}
}

func TestChildSpansCarryParent(t *testing.T) {
	ring := NewRingTracer(8, LevelDebug)
	root := Begin(ring, ScopeDriver, "dxop.check")
	child := root.Child(ScopeUnit, "check.f32")
	child.End("")
	root.End("")
	events := ring.Snapshot()
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[1].ParentID != root.ID() || events[1].SpanID != child.ID() {
		t.Fatalf("child not linked to root: %+v", events[1])
	}
	for i, ev := range events {
		if ev.Seq != uint64(i+1) {
			t.Fatalf("event %d has seq %d", i, ev.Seq)
		}
	}
}

func TestInertSpan(t *testing.T) {
	var s *Span
	if s.End("x") != 0 || s.ID() != 0 {
		t.Fatalf("nil span must be inert")
	}
	off := Begin(Nop, ScopeDriver, "off")
	off.Child(ScopeUnit, "child").With(F("k", "v")).End("")
	if off.ID() != 0 {
		t.Fatalf("span on Nop got an ID")
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(tr, ScopeSymbol, name, "")
	}
	events := tr.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("unexpected ring contents: %+v", events)
	}
	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatText); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("unexpected dump: %q", buf.String())
	}
}

func TestTeeCopiesToEveryTracer(t *testing.T) {
	a := NewRingTracer(4, LevelDebug)
	b := NewRingTracer(4, LevelPhase)
	tr := Tee(a, b)
	if tr.Level() != LevelDebug {
		t.Fatalf("tee level = %s", tr.Level())
	}
	Point(tr, ScopeSymbol, "type.create", "%dx.types.Handle")
	Point(tr, ScopeDriver, "done", "")
	if len(a.Snapshot()) != 2 || len(b.Snapshot()) != 1 {
		t.Fatalf("a=%d b=%d", len(a.Snapshot()), len(b.Snapshot()))
	}
	ev := a.Snapshot()[0]
	if _, ok := ev.Field("missing"); ok {
		t.Fatalf("unexpected field")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr != Nop {
		t.Fatalf("off tracer must be Nop")
	}
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context must yield Nop")
	}
	ring := NewRingTracer(1, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatalf("tracer not propagated through context")
	}
}

func TestNewBothWritesStream(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, Format: FormatNDJSON})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopeDriver, "start", "", F("cmd", "check"))
	if !strings.Contains(buf.String(), `"fields":{"cmd":"check"}`) {
		t.Fatalf("unexpected stream output: %s", buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
