package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/dxil"
)

var (
	opsClass    string
	opsOverload string
	opsWave     bool
	opsGradient bool
	opsFormat   string
)

func init() {
	opsCmd.Flags().StringVar(&opsClass, "class", "", "only opcodes of this class (e.g. unary)")
	opsCmd.Flags().StringVar(&opsOverload, "overload", "", "only opcodes legal at this overload")
	opsCmd.Flags().BoolVar(&opsWave, "wave", false, "only wave and quad operations")
	opsCmd.Flags().BoolVar(&opsGradient, "gradient", false, "only operations with implicit derivatives")
	opsCmd.Flags().StringVar(&opsFormat, "format", "", "output format (pretty|json); defaults to dxop.toml")
}

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the operation catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := newOpFilter(opsClass, opsOverload, opsWave, opsGradient)
		if err != nil {
			return err
		}
		var rows []opRow
		if err := track("catalog", func() error {
			for _, op := range dxil.OpCodes() {
				if filter(op) {
					rows = append(rows, newOpRow(op))
				}
			}
			return nil
		}); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if outputFormat(opsFormat) == "json" {
			return writeJSON(out, rows)
		}
		t := &table{header: []string{"#", "name", "class", "overloads", "attr", "shape"}}
		for _, r := range rows {
			t.add(fmt.Sprint(r.OpCode), r.Name, r.Class, strings.Join(r.Overloads, "|"), r.Attr, r.Shape)
		}
		return t.render(out)
	},
}

type opRow struct {
	OpCode    uint32   `json:"opcode"`
	Name      string   `json:"name"`
	Class     string   `json:"class"`
	Overloads []string `json:"overloads"`
	Attr      string   `json:"attr"`
	Shape     string   `json:"shape"`
	Wave      bool     `json:"wave,omitempty"`
	Gradient  bool     `json:"gradient,omitempty"`
}

func newOpRow(op dxil.OpCode) opRow {
	p := dxil.Property(op)
	r := opRow{
		OpCode:   uint32(op),
		Name:     p.Name,
		Class:    p.ClassName(),
		Attr:     p.Attr.String(),
		Shape:    dxil.SignatureOf(op).String(),
		Wave:     dxil.IsWave(op),
		Gradient: dxil.IsGradient(op),
	}
	for _, s := range p.Overloads.Slots() {
		r.Overloads = append(r.Overloads, s.String())
	}
	return r
}

func newOpFilter(class, overload string, wave, gradient bool) (func(dxil.OpCode) bool, error) {
	slot := dxil.SlotInvalid
	if overload != "" {
		s, err := lookupOverload(overload)
		if err != nil {
			return nil, err
		}
		slot = s
	}
	return func(op dxil.OpCode) bool {
		if class != "" && !strings.EqualFold(op.ClassName(), class) {
			return false
		}
		if slot != dxil.SlotInvalid && !op.Overloads().Has(slot) {
			return false
		}
		if wave && !dxil.IsWave(op) {
			return false
		}
		if gradient && !dxil.IsGradient(op) {
			return false
		}
		return true
	}, nil
}

// outputFormat picks the flag value over the config value.
func outputFormat(flag string) string {
	if flag != "" {
		return strings.ToLower(flag)
	}
	return current.cfg.Output.Format
}
