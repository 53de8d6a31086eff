package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/dxil"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/ir"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/trace"
)

var sigFormat string

func init() {
	sigCmd.Flags().StringVar(&sigFormat, "format", "", "output format (pretty|json); defaults to dxop.toml")
}

var sigCmd = &cobra.Command{
	Use:   "sig <opcode> [overload...]",
	Short: "Show the declarations an opcode resolves to",
	Long:  "Show the declaration name, signature and attributes of an opcode at the given overloads, or at every legal overload when none are given.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		op, err := lookupOpCode(args[0])
		if err != nil {
			return err
		}
		slots := op.Overloads().Slots()
		if len(args) > 1 {
			slots = slots[:0:0]
			for _, a := range args[1:] {
				s, err := lookupOverload(a)
				if err != nil {
					return err
				}
				slots = append(slots, s)
			}
		}
		rows, err := signatureRows(trace.FromContext(cmd.Context()), op, slots)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if outputFormat(sigFormat) == "json" {
			return writeJSON(out, rows)
		}
		t := &table{header: []string{"overload", "declaration", "signature", "attrs"}}
		for _, r := range rows {
			t.add(r.Overload, r.Symbol, r.Signature, strings.Join(r.Attrs, " "))
		}
		return t.render(out)
	},
}

type sigRow struct {
	Overload  string   `json:"overload"`
	Symbol    string   `json:"symbol"`
	Signature string   `json:"signature"`
	Attrs     []string `json:"attrs"`
}

func signatureRows(tracer trace.Tracer, op dxil.OpCode, slots []dxil.TypeSlot) ([]sigRow, error) {
	m := ir.NewModule("sig", nil)
	o := dxil.New(m, dxil.WithTracer(tracer))
	ctx := m.Context()
	rows := make([]sigRow, 0, len(slots))
	for _, s := range slots {
		ty := dxil.SlotType(ctx, s)
		if !o.IsOverloadLegal(op, ty) {
			return nil, illegalOverloadError(op, s)
		}
		f := o.GetOpFunc(op, ty)
		r := sigRow{Overload: s.String(), Symbol: f.Name, Signature: ctx.TypeString(f.Type)}
		for _, a := range f.Attrs() {
			r.Attrs = append(r.Attrs, a.String())
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func illegalOverloadError(op dxil.OpCode, s dxil.TypeSlot) error {
	return fmt.Errorf("%s is not defined at %s (legal: %s)", op.Name(), s, op.Overloads())
}
