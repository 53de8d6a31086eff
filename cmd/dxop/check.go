package main

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/diag"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/dxil"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/ir"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/testkit"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/trace"
)

var checkJobs int

func init() {
	checkCmd.Flags().IntVar(&checkJobs, "jobs", runtime.GOMAXPROCS(0), "overload slots checked in parallel")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the catalog and declare every legal overload",
	Long: `check validates the static opcode tables, then for every overload slot
declares each legal opcode into a fresh unit and verifies names, signatures,
attributes, cache identity and adoption by a second registry. Each unit is
finally checked against the declaration invariants.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

type slotResult struct {
	declared int
	diags    []diag.Diagnostic
}

func runCheck(cmd *cobra.Command, args []string) error {
	tracer := trace.FromContext(cmd.Context())
	bag := diag.NewBag(maxDiagnostics())

	if err := track("catalog", dxil.CheckOpCodeTable); err != nil {
		var ie *dxil.InternalError
		if !errors.As(err, &ie) {
			return err
		}
		bag.Add(ie.Diagnostic())
	}

	var results [dxil.NumTypeSlots]slotResult
	if err := track("declare", func() error {
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(max(checkJobs, 1))
		for s := range dxil.NumTypeSlots {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[s] = checkSlot(tracer, s)
				return nil
			})
		}
		return g.Wait()
	}); err != nil {
		return err
	}

	declared := 0
	for _, r := range results {
		declared += r.declared
		for _, d := range r.diags {
			bag.Add(d)
		}
	}
	bag.Sort()
	bag.Dedup()
	out := cmd.OutOrStdout()
	if err := printDiagnostics(out, bag.Items()); err != nil {
		return err
	}
	if bag.HasErrors() {
		return fmt.Errorf("check failed with %d problem(s)", bag.Len())
	}
	if !current.quiet && !machineOutput() {
		fmt.Fprintf(out, "%s %d opcodes, %d declarations across %d overloads\n",
			okColor.Sprint("ok:"), dxil.NumOpCodes, declared, dxil.NumTypeSlots)
	}
	return nil
}

// checkSlot owns its unit and registries, so slots can run in parallel.
func checkSlot(tracer trace.Tracer, s dxil.TypeSlot) slotResult {
	span := trace.Begin(tracer, trace.ScopeUnit, "check."+s.String())
	m := ir.NewModule("check."+s.String(), nil)
	ctx := m.Context()
	ty := dxil.SlotType(ctx, s)
	first := dxil.New(m, dxil.WithTracer(tracer))
	second := dxil.New(m, dxil.WithTracer(tracer))
	var res slotResult
	fail := func(code diag.Code, op dxil.OpCode, format string, args ...any) {
		res.diags = append(res.diags, diag.NewError(code, op.Name()+"@"+s.String(), fmt.Sprintf(format, args...)))
	}

	for _, op := range dxil.OpCodes() {
		if !op.Overloads().Has(s) {
			if first.IsOverloadLegal(op, ty) {
				fail(diag.DxilIllegalOverload, op, "accepted outside its overload mask")
			}
			if _, caught := dxil.CatchInternal(func() { first.GetOpFunc(op, ty) }); !caught {
				fail(diag.DxilIllegalOverload, op, "declared at an illegal overload")
			}
			continue
		}
		d, caught := dxil.CatchInternal(func() {
			f := first.GetOpFunc(op, ty)
			res.declared++
			if want := dxil.OpFuncName(op, s); f.Name != want {
				fail(diag.DxilShapeConflict, op, "declared as %q, want %q", f.Name, want)
			}
			if first.GetOpFunc(op, ty) != f {
				fail(diag.DxilShapeConflict, op, "second request returned a new declaration")
			}
			if second.GetOpFunc(op, ty) != f {
				fail(diag.DxilShapeConflict, op, "second registry did not adopt %s", f.Name)
			}
			result, params := first.Signature(op, ty)
			if f.Type != ctx.RegisterFn(params, result) {
				fail(diag.DxilShapeConflict, op, "%s has type %s, op wants %s",
					f.Name, ctx.TypeString(f.Type), ctx.TypeString(ctx.RegisterFn(params, result)))
			}
			if len(params) == 0 || params[0] != ctx.Builtins().I32 {
				fail(diag.DxilCallOperand, op, "operand 0 is not the i32 selector")
			}
			if !f.HasAttr(ir.AttrNoUnwind) || f.CallConv != ir.CallConvC {
				fail(diag.DxilShapeConflict, op, "%s lacks nounwind or the C calling convention", f.Name)
			}
			if a := op.Attr(); a != ir.AttrNone && !f.HasAttr(a) {
				fail(diag.DxilShapeConflict, op, "%s lacks %s", f.Name, a)
			}
		})
		if caught {
			res.diags = append(res.diags, d)
		}
	}
	if err := testkit.CheckUnitInvariants(m); err != nil {
		res.diags = append(res.diags, diag.NewError(diag.DxilShapeConflict, "unit@"+s.String(), err.Error()))
	}
	span.With(trace.F("declared", fmt.Sprint(res.declared))).End(fmt.Sprintf("%d problem(s)", len(res.diags)))
	return res
}
