package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/dxil"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/ir"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/trace"
)

var (
	emitOutput    string
	emitOverloads []string
	emitOpcodes   []string
	emitCalls     bool
)

func init() {
	emitCmd.Flags().StringVarP(&emitOutput, "output", "o", "", "write to file instead of stdout")
	emitCmd.Flags().StringSliceVar(&emitOverloads, "overload", nil, "overloads to declare (default from [emit].overloads)")
	emitCmd.Flags().StringSliceVar(&emitOpcodes, "op", nil, "opcodes to declare (default from [emit].opcodes, else all)")
	emitCmd.Flags().BoolVar(&emitCalls, "calls", false, "append a sample call per declaration as comments")
}

var emitCmd = &cobra.Command{
	Use:   "emit",
	Short: "Emit the declarations for a set of opcodes and overloads as textual IR",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ops, slots, err := emitSelection()
		if err != nil {
			return err
		}
		var res *emitResult
		if err := track("declare", func() error {
			res = buildEmitModule(trace.FromContext(cmd.Context()), ops, slots, emitCalls)
			return nil
		}); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if emitOutput != "" {
			f, err := os.Create(emitOutput)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := f.Close(); closeErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "close %s: %v\n", emitOutput, closeErr)
				}
			}()
			out = f
		}
		return track("print", func() error {
			if _, err := res.module.WriteTo(out); err != nil {
				return err
			}
			for _, c := range res.calls {
				if _, err := fmt.Fprintf(out, "; %s\n", c); err != nil {
					return err
				}
			}
			if !current.quiet && emitOutput != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %d declarations (%d skipped as illegal) -> %s\n",
					okColor.Sprint("emitted"), len(res.module.Functions()), res.skipped, emitOutput)
			}
			return nil
		})
	},
}

func emitSelection() ([]dxil.OpCode, []dxil.TypeSlot, error) {
	ops := current.cfg.OpCodes()
	if len(emitOpcodes) > 0 {
		ops = ops[:0:0]
		for _, name := range emitOpcodes {
			op, err := lookupOpCode(name)
			if err != nil {
				return nil, nil, err
			}
			ops = append(ops, op)
		}
	}
	slots := current.cfg.Slots()
	if len(emitOverloads) > 0 {
		slots = slots[:0:0]
		for _, name := range emitOverloads {
			s, err := lookupOverload(name)
			if err != nil {
				return nil, nil, err
			}
			slots = append(slots, s)
		}
	}
	return ops, slots, nil
}

type emitResult struct {
	module  *ir.Module
	calls   []string
	skipped int
}

// buildEmitModule declares every legal (op, slot) pair. Void-only opcodes
// are declared once whatever slots were requested.
func buildEmitModule(tracer trace.Tracer, ops []dxil.OpCode, slots []dxil.TypeSlot, calls bool) *emitResult {
	m := ir.NewModule("dxop", nil)
	o := dxil.New(m, dxil.WithTracer(tracer))
	ctx := m.Context()
	res := &emitResult{module: m}
	for _, op := range ops {
		want := slots
		if op.Overloads() == dxil.OverloadMask(1<<dxil.SlotVoid) {
			want = []dxil.TypeSlot{dxil.SlotVoid}
		}
		for _, s := range want {
			ty := dxil.SlotType(ctx, s)
			if !o.IsOverloadLegal(op, ty) {
				res.skipped++
				continue
			}
			f := o.GetOpFunc(op, ty)
			if !calls {
				continue
			}
			info, _ := ctx.FnInfo(f.Type)
			args := make([]ir.Value, 0, len(info.Params)-1)
			for i, p := range info.Params[1:] {
				args = append(args, m.Param(fmt.Sprintf("a%d", i), p))
			}
			call, err := o.Call(op, ty, args...)
			if err != nil {
				res.calls = append(res.calls, fmt.Sprintf("%s: %v", op, err))
				continue
			}
			res.calls = append(res.calls, fmt.Sprintf("%s = %s", op, call))
		}
	}
	return res
}
