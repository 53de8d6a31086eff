package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/hlsl"
)

var accessFormat string

func init() {
	accessCmd.Flags().StringVar(&accessFormat, "format", "", "output format (pretty|json); defaults to dxop.toml")
}

var accessCmd = &cobra.Command{
	Use:   "access <member>...",
	Short: "Decode vector swizzles and matrix member names",
	Long: `access parses each member name as a vector swizzle (xyzw or rgba) or,
when it starts with an underscore, as a matrix member (_m00 or _11 form) and
prints the packed descriptor.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := make([]accessRow, 0, len(args))
		for _, a := range args {
			row, err := decodeAccess(a)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		out := cmd.OutOrStdout()
		if outputFormat(accessFormat) == "json" {
			return writeJSON(out, rows)
		}
		t := &table{header: []string{"member", "kind", "count", "elements", "bits", "dups"}}
		for _, r := range rows {
			t.add(r.Member, r.Kind, fmt.Sprint(r.Count), strings.Join(r.Elements, " "), fmt.Sprintf("0x%04x", r.Bits), fmt.Sprint(r.Duplicates))
		}
		return t.render(out)
	},
}

type accessRow struct {
	Member     string   `json:"member"`
	Kind       string   `json:"kind"`
	Count      int      `json:"count"`
	Elements   []string `json:"elements"`
	Bits       uint32   `json:"bits"`
	Duplicates bool     `json:"duplicates"`
}

func decodeAccess(member string) (accessRow, error) {
	row := accessRow{Member: member}
	if strings.HasPrefix(member, "_") {
		m := hlsl.ParseMatrixMember(member)
		if !m.IsValid() {
			return row, fmt.Errorf("invalid matrix member %q", member)
		}
		row.Kind, row.Count, row.Bits, row.Duplicates = "matrix", m.Count(), m.Bits(), m.ContainsDuplicateElements()
		for i := range m.Count() {
			r, c, err := m.Position(i)
			if err != nil {
				return row, err
			}
			row.Elements = append(row.Elements, fmt.Sprintf("_m%d%d", r, c))
		}
		return row, nil
	}
	v := hlsl.ParseSwizzle(member)
	if !v.IsValid() {
		return row, fmt.Errorf("invalid swizzle %q", member)
	}
	row.Kind, row.Count, row.Bits, row.Duplicates = "vector", v.Count(), v.Bits(), v.ContainsDuplicateElements()
	for _, r := range v.String() {
		row.Elements = append(row.Elements, string(r))
	}
	return row, nil
}
