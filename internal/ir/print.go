package ir

import (
	"fmt"
	"io"
	"strings"
)

// String renders the module as textual IR: named types first, then
// declarations, then attribute groups.
func (m *Module) String() string {
	var sb strings.Builder
	if _, err := m.WriteTo(&sb); err != nil {
		return ""
	}
	return sb.String()
}

// WriteTo writes textual IR for the module.
func (m *Module) WriteTo(w io.Writer) (int64, error) {
	var total int64
	write := func(s string) error {
		n, err := io.WriteString(w, s)
		total += int64(n)
		return err
	}
	if m.Name != "" {
		if err := write(fmt.Sprintf("; ModuleID = '%s'\n\n", m.Name)); err != nil {
			return total, err
		}
	}
	for _, id := range m.types {
		info, ok := m.ctx.StructInfo(id)
		if !ok {
			continue
		}
		if err := write(fmt.Sprintf("%%%s = type %s\n", info.Name, m.ctx.StructBody(id))); err != nil {
			return total, err
		}
	}
	if len(m.types) > 0 {
		if err := write("\n"); err != nil {
			return total, err
		}
	}

	groups := make(map[string]int)
	var groupOrder []string
	for _, f := range m.order {
		info, ok := m.ctx.FnInfo(f.Type)
		if !ok {
			continue
		}
		params := make([]string, len(info.Params))
		for i, p := range info.Params {
			params[i] = m.ctx.TypeString(p)
		}
		line := fmt.Sprintf("declare %s @%s(%s)", m.ctx.TypeString(info.Result), f.Name, strings.Join(params, ", "))
		if key := f.attrKey(); key != "" {
			idx, seen := groups[key]
			if !seen {
				idx = len(groupOrder)
				groups[key] = idx
				groupOrder = append(groupOrder, key)
			}
			line += fmt.Sprintf(" #%d", idx)
		}
		if err := write(line + "\n"); err != nil {
			return total, err
		}
	}
	if len(groupOrder) > 0 {
		if err := write("\n"); err != nil {
			return total, err
		}
	}
	for i, key := range groupOrder {
		if err := write(fmt.Sprintf("attributes #%d = { %s }\n", i, key)); err != nil {
			return total, err
		}
	}
	return total, nil
}
