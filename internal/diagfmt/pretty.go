package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/diag"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	infoColor  = color.New(color.FgCyan)
	codeColor  = color.New(color.Faint)
)

// Pretty печатает диагностики в человекочитаемом виде:
//
//	error[DXO9005] 6 FAbs: message
//	  note: subject: message
//
// Ожидается, что items уже отсортированы.
func Pretty(w io.Writer, items []diag.Diagnostic, opts PrettyOpts) error {
	paint := func(c *color.Color, s string) string {
		if !opts.Color {
			return s
		}
		return c.Sprint(s)
	}
	for _, d := range limit(items, opts.Max) {
		label := d.Severity.Label()
		switch d.Severity {
		case diag.SevError:
			label = paint(errorColor, label)
		case diag.SevWarning:
			label = paint(warnColor, label)
		default:
			label = paint(infoColor, label)
		}
		var sb strings.Builder
		sb.WriteString(label)
		sb.WriteString(paint(codeColor, "["+d.Code.ID()+"]"))
		if d.Subject != "" {
			sb.WriteString(" ")
			sb.WriteString(d.Subject)
			sb.WriteString(":")
		}
		sb.WriteString(" ")
		sb.WriteString(d.Message)
		sb.WriteByte('\n')
		if opts.ShowNotes {
			for _, n := range d.Notes {
				sb.WriteString("  ")
				sb.WriteString(paint(infoColor, "note:"))
				if n.Subject != "" {
					sb.WriteString(" ")
					sb.WriteString(n.Subject)
					sb.WriteString(":")
				}
				sb.WriteString(" ")
				sb.WriteString(n.Msg)
				sb.WriteByte('\n')
			}
		}
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return fmt.Errorf("write diagnostic: %w", err)
		}
	}
	return nil
}
