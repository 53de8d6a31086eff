package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/diag"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/diagfmt"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/dxil"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/hlsl"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/version"
)

var (
	headerColor = color.New(color.Bold, color.Underline)
	okColor     = color.New(color.FgGreen, color.Bold)
)

// table renders left-aligned columns measured in terminal cells.
type table struct {
	header []string
	rows   [][]string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer) error {
	widths := make([]int, len(t.header))
	for i, h := range t.header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range t.rows {
		for i, c := range r {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(c))
			}
		}
	}
	line := func(cells []string, paint func(string) string) error {
		var sb strings.Builder
		for i, c := range cells {
			if i > 0 {
				sb.WriteString("  ")
			}
			if i == len(cells)-1 {
				sb.WriteString(paint(c))
				continue
			}
			sb.WriteString(paint(runewidth.FillRight(c, widths[i])))
		}
		sb.WriteByte('\n')
		_, err := io.WriteString(w, sb.String())
		return err
	}
	if err := line(t.header, func(s string) string { return headerColor.Sprint(s) }); err != nil {
		return err
	}
	for _, r := range t.rows {
		if err := line(r, func(s string) string { return s }); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// lookupOpCode accepts a display name (any case) or an ordinal.
func lookupOpCode(arg string) (dxil.OpCode, error) {
	name := norm.NFC.String(strings.TrimSpace(arg))
	if n, err := strconv.Atoi(name); err == nil {
		if op, ok := dxil.OpCodeFromInt(n); ok {
			return op, nil
		}
		return 0, fmt.Errorf("opcode %d out of range [0,%d)", n, dxil.NumOpCodes)
	}
	if op, ok := dxil.OpCodeByName(name); ok {
		return op, nil
	}
	return 0, fmt.Errorf("unknown opcode %q", arg)
}

func lookupOverload(arg string) (dxil.TypeSlot, error) {
	name := norm.NFC.String(strings.ToLower(strings.TrimSpace(arg)))
	if s, ok := dxil.SlotByName(name); ok {
		return s, nil
	}
	if st, ok := hlsl.ScalarByKeyword(name); ok {
		return st.Overload(), nil
	}
	return dxil.SlotInvalid, fmt.Errorf("unknown overload %q (expected a slot such as f32 or i16, or a scalar keyword such as float or min16int)", arg)
}

// printDiagnostics writes items in the --diag-format, falling back to the
// output format. The ok/summary lines stay with the caller.
func printDiagnostics(w io.Writer, items []diag.Diagnostic) error {
	limit := maxDiagnostics()
	switch format := diagnosticFormat(); format {
	case "json":
		return diagfmt.JSON(w, items, diagfmt.JSONOpts{Max: limit, IncludeNotes: true})
	case "sarif":
		return diagfmt.Sarif(w, firstN(items, limit), diagfmt.SarifRunMeta{
			ToolName:       "dxop",
			ToolVersion:    version.Number,
			InvocationArgs: os.Args[1:],
		})
	case "pretty":
		return diagfmt.Pretty(w, items, diagfmt.PrettyOpts{Color: !color.NoColor, ShowNotes: true, Max: limit})
	default:
		return fmt.Errorf("invalid --diag-format %q (expected pretty|json|sarif)", format)
	}
}

func firstN(items []diag.Diagnostic, limit int) []diag.Diagnostic {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func diagnosticFormat() string {
	f, err := rootCmd.PersistentFlags().GetString("diag-format")
	if err != nil || f == "" {
		return outputFormat("")
	}
	return strings.ToLower(f)
}

// machineOutput reports whether stdout carries JSON or SARIF.
func machineOutput() bool {
	return diagnosticFormat() != "pretty"
}

func maxDiagnostics() int {
	n, err := rootCmd.PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 100
	}
	return n
}
