// Package version carries dxop build metadata, set with -ldflags -X.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Number is the semantic version of dxop.
	Number = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit subject.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// String returns "0.1.0-dev (commit, date)" with empty parts left out.
func String() string {
	return Number + suffix()
}

// Colored renders the version number with one color per component. It
// honors color.NoColor.
func Colored() string {
	core, pre, _ := strings.Cut(Number, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return String()
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if pre != "" {
		out += "-" + pre
	}
	return out + suffix()
}

func suffix() string {
	var meta []string
	if GitCommit != "" {
		c := GitCommit
		if len(c) > 12 {
			c = c[:12]
		}
		meta = append(meta, c)
	}
	if BuildDate != "" {
		meta = append(meta, BuildDate)
	}
	if len(meta) == 0 {
		return ""
	}
	return " (" + strings.Join(meta, ", ") + ")"
}
