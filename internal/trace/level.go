package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // reserved for failure dumps; emits no scoped events
	LevelPhase        // command boundaries
	LevelDetail       // per-unit events
	LevelDebug        // per-type and per-declaration events
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// finest scope each level lets through; 0 blocks everything
var levelScope = [...]Scope{LevelPhase: ScopeDriver, LevelDetail: ScopeUnit, LevelDebug: ScopeSymbol}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a case-insensitive level name.
func ParseLevel(s string) (Level, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if name == want {
			return Level(i), nil //nolint:gosec // bounded by levelNames
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if scope == 0 || int(l) >= len(levelScope) {
		return false
	}
	return scope <= levelScope[l]
}
