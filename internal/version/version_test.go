package version

import (
	"testing"

	"github.com/fatih/color"
)

func withBuild(t *testing.T, number, commit, date string) {
	t.Helper()
	origNumber, origCommit, origDate := Number, GitCommit, BuildDate
	Number, GitCommit, BuildDate = number, commit, date
	t.Cleanup(func() { Number, GitCommit, BuildDate = origNumber, origCommit, origDate })
}

func TestStringOmitsEmptyMetadata(t *testing.T) {
	withBuild(t, "1.2.3", "", "")
	if got := String(); got != "1.2.3" {
		t.Fatalf("got %q", got)
	}
}

func TestStringShortensCommit(t *testing.T) {
	withBuild(t, "1.2.3", "1234567890abcdef1234567890abcdef12345678", "2024-01-15")
	if got := String(); got != "1.2.3 (1234567890ab, 2024-01-15)" {
		t.Fatalf("got %q", got)
	}
}

func TestColoredWithoutColorMatchesString(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	for _, v := range []string{"0.1.0-dev", "2.0.0", "1.0.0-rc.1", "nightly"} {
		withBuild(t, v, "abc123", "")
		if got, want := Colored(), String(); got != want {
			t.Fatalf("%s: colored %q, plain %q", v, got, want)
		}
	}
}
