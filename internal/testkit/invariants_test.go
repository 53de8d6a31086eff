package testkit

import (
	"strings"
	"testing"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/dxil"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/ir"
)

func populated(t *testing.T) *ir.Module {
	t.Helper()
	m := ir.NewModule("kit", nil)
	o := dxil.New(m)
	for _, op := range dxil.OpCodes() {
		for _, s := range op.Overloads().Slots() {
			o.GetOpFunc(op, dxil.SlotType(m.Context(), s))
		}
	}
	return m
}

func TestRegistryUnitSatisfiesInvariants(t *testing.T) {
	m := populated(t)
	if err := CheckUnitInvariants(m); err != nil {
		t.Fatalf("unexpected violations: %v", err)
	}
	// a second registry adopts everything
	dxil.New(m)
	if err := CheckUnitInvariants(m); err != nil {
		t.Fatalf("violations after adoption: %v", err)
	}
}

func TestForeignDeclarationsAreIgnored(t *testing.T) {
	m := ir.NewModule("kit", nil)
	ctx := m.Context()
	m.DeclareFunction("main", ctx.RegisterFn(nil, ctx.Builtins().Void))
	if err := CheckUnitInvariants(m); err != nil {
		t.Fatalf("unexpected violations: %v", err)
	}
}

func TestDetectsViolations(t *testing.T) {
	cases := []struct {
		name   string
		decl   func(m *ir.Module)
		expect string
	}{
		{
			name: "unknown class",
			decl: func(m *ir.Module) {
				b := m.Context().Builtins()
				f := m.DeclareFunction("dx.op.bogus.f32", m.Context().RegisterFn([]ir.TypeID{b.I32}, b.Float))
				f.AddAttr(ir.AttrNoUnwind)
			},
			expect: "unknown class",
		},
		{
			name: "illegal overload",
			decl: func(m *ir.Module) {
				b := m.Context().Builtins()
				f := m.DeclareFunction("dx.op.unary.i1", m.Context().RegisterFn([]ir.TypeID{b.I32, b.I1}, b.I1))
				f.AddAttr(ir.AttrNoUnwind)
			},
			expect: "legal at i1",
		},
		{
			name: "missing nounwind",
			decl: func(m *ir.Module) {
				b := m.Context().Builtins()
				f := m.DeclareFunction("dx.op.unary.f32", m.Context().RegisterFn([]ir.TypeID{b.I32, b.Float}, b.Float))
				f.AddAttr(ir.AttrReadNone)
			},
			expect: "missing nounwind",
		},
		{
			name: "missing purity",
			decl: func(m *ir.Module) {
				b := m.Context().Builtins()
				f := m.DeclareFunction("dx.op.unary.f32", m.Context().RegisterFn([]ir.TypeID{b.I32, b.Float}, b.Float))
				f.AddAttr(ir.AttrNoUnwind)
			},
			expect: "missing readnone",
		},
		{
			name: "selector type",
			decl: func(m *ir.Module) {
				b := m.Context().Builtins()
				f := m.DeclareFunction("dx.op.unary.f32", m.Context().RegisterFn([]ir.TypeID{b.I64, b.Float}, b.Float))
				f.AddAttr(ir.AttrNoUnwind)
				f.AddAttr(ir.AttrReadNone)
			},
			expect: "want i32",
		},
		{
			name: "arity",
			decl: func(m *ir.Module) {
				b := m.Context().Builtins()
				f := m.DeclareFunction("dx.op.unary.f32", m.Context().RegisterFn([]ir.TypeID{b.I32}, b.Float))
				f.AddAttr(ir.AttrNoUnwind)
				f.AddAttr(ir.AttrReadNone)
			},
			expect: "takes 2",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := ir.NewModule("kit", nil)
			tc.decl(m)
			err := CheckUnitInvariants(m)
			if err == nil {
				t.Fatalf("expected a violation")
			}
			if !strings.Contains(err.Error(), tc.expect) {
				t.Fatalf("error %q does not mention %q", err, tc.expect)
			}
		})
	}
}
