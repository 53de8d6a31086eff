package dxil

import (
	"strings"
	"testing"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/diag"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/ir"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/trace"
)

func newTestOP(t *testing.T) (*OP, *ir.Module) {
	t.Helper()
	m := ir.NewModule("test", nil)
	return New(m), m
}

func TestFAbsEndToEnd(t *testing.T) {
	o, m := newTestOP(t)
	ctx := m.Context()
	b := ctx.Builtins()
	if !IsOverloadLegal(OpFAbs, ctx.MustLookup(b.Float)) {
		t.Fatalf("FAbs@f32 must be legal")
	}
	f := o.GetOpFunc(OpFAbs, b.Float)
	if f.Name != "dx.op.unary.f32" {
		t.Fatalf("name %q", f.Name)
	}
	info, ok := ctx.FnInfo(f.Type)
	if !ok {
		t.Fatalf("declaration has no function type")
	}
	if info.Result != b.Float || len(info.Params) != 2 || info.Params[0] != b.I32 || info.Params[1] != b.Float {
		t.Fatalf("signature %s", ctx.TypeString(f.Type))
	}
	if f.CallConv != ir.CallConvC {
		t.Fatalf("calling convention %s", f.CallConv)
	}
	if !f.HasAttr(ir.AttrReadNone) || !f.HasAttr(ir.AttrNoUnwind) || f.HasAttr(ir.AttrReadOnly) {
		t.Fatalf("attributes %v", f.Attrs())
	}
	if again := o.GetOpFunc(OpFAbs, b.Float); again != f {
		t.Fatalf("second request returned a different declaration")
	}
}

func TestVoidOverloadHasNoSuffix(t *testing.T) {
	o, m := newTestOP(t)
	b := m.Context().Builtins()
	f := o.GetOpFunc(OpCreateHandle, b.Void)
	if f.Name != "dx.op.createHandle" {
		t.Fatalf("name %q", f.Name)
	}
	info, _ := m.Context().FnInfo(f.Type)
	if info.Result != o.HandleType() {
		t.Fatalf("createHandle returns %s", m.Context().TypeString(info.Result))
	}
	if !f.HasAttr(ir.AttrReadOnly) {
		t.Fatalf("createHandle should be readonly: %v", f.Attrs())
	}
}

func TestImpureOpsCarryOnlyNoUnwind(t *testing.T) {
	o, m := newTestOP(t)
	f := o.GetOpFunc(OpBufferStore, m.Context().Builtins().Float)
	attrs := f.Attrs()
	if len(attrs) != 1 || attrs[0] != ir.AttrNoUnwind {
		t.Fatalf("attributes %v", attrs)
	}
}

func TestGetOpFuncStableForEveryLegalOverload(t *testing.T) {
	o, m := newTestOP(t)
	ctx := m.Context()
	seen := map[string]*ir.Function{}
	for _, op := range OpCodes() {
		for _, s := range op.Overloads().Slots() {
			ty := SlotType(ctx, s)
			f := o.GetOpFunc(op, ty)
			if f != o.GetOpFunc(op, ty) {
				t.Fatalf("%s@%s not stable", op, s)
			}
			if want := OpFuncName(op, s); f.Name != want {
				t.Fatalf("%s@%s named %q, want %q", op, s, f.Name, want)
			}
			if prev, ok := seen[f.Name]; ok && prev != f {
				t.Fatalf("%s declared twice", f.Name)
			}
			seen[f.Name] = f
		}
	}
	if len(m.Functions()) != len(seen) {
		t.Fatalf("unit holds %d declarations, registry handed out %d", len(m.Functions()), len(seen))
	}
}

func TestClassMembersShareDeclaration(t *testing.T) {
	o, m := newTestOP(t)
	f32 := m.Context().Builtins().Float
	if o.GetOpFunc(OpFAbs, f32) != o.GetOpFunc(OpSaturate, f32) {
		t.Fatalf("FAbs and Saturate should share dx.op.unary.f32")
	}
	if o.GetOpFunc(OpFAbs, f32) == o.GetOpFunc(OpFAbs, m.Context().Builtins().Half) {
		t.Fatalf("different overloads must not share a declaration")
	}
}

func TestIllegalOverloadPanics(t *testing.T) {
	o, m := newTestOP(t)
	ctx := m.Context()
	d, caught := CatchInternal(func() { o.GetOpFunc(OpFAbs, ctx.Builtins().I32) })
	if !caught || d.Code != diag.DxilIllegalOverload {
		t.Fatalf("expected illegal overload, got %v %s", caught, d)
	}
	vec := ctx.VectorOf(ctx.Builtins().Float, 4)
	if o.IsOverloadLegal(OpFAbs, vec) {
		t.Fatalf("vector overload accepted")
	}
	if _, caught := CatchInternal(func() { o.Signature(OpFAbs, vec) }); !caught {
		t.Fatalf("signature of illegal overload did not panic")
	}
	if len(m.Functions()) != 0 {
		t.Fatalf("failed requests declared %d functions", len(m.Functions()))
	}
}

func TestFixedAggregates(t *testing.T) {
	o, m := newTestOP(t)
	ctx := m.Context()
	cases := []struct {
		id   ir.TypeID
		name string
		body string
	}{
		{o.HandleType(), "dx.types.Handle", "{ i8* }"},
		{o.DimensionsType(), "dx.types.Dimensions", "{ i32, i32, i32, i32 }"},
		{o.SamplePosType(), "dx.types.SamplePos", "{ float, float }"},
		{o.BinaryWithCarryType(), "dx.types.i32c", "{ i32, i1 }"},
		{o.BinaryWithTwoOutputsType(), "dx.types.twoi32", "{ i32, i32 }"},
		{o.SplitDoubleType(), "dx.types.splitdouble", "{ i32, i32 }"},
		{o.Int4Type(), "dx.types.fouri32", "{ i32, i32, i32, i32 }"},
	}
	for _, tc := range cases {
		info, ok := ctx.StructInfo(tc.id)
		if !ok || info.Name != tc.name {
			t.Fatalf("expected %s, got %v", tc.name, info)
		}
		if got := ctx.StructBody(tc.id); got != tc.body {
			t.Fatalf("%s body %q, want %q", tc.name, got, tc.body)
		}
	}
	if o.SplitDoubleType() == o.BinaryWithTwoOutputsType() {
		t.Fatalf("structurally equal aggregates must stay distinct")
	}
}

func TestResRetType(t *testing.T) {
	o, m := newTestOP(t)
	ctx := m.Context()
	f32 := ctx.Builtins().Float
	rr := o.ResRetType(f32)
	info, _ := ctx.StructInfo(rr)
	if info.Name != "dx.types.ResRet.f32" {
		t.Fatalf("name %q", info.Name)
	}
	if got := ctx.StructBody(rr); got != "{ float, float, float, float, i32 }" {
		t.Fatalf("body %q", got)
	}
	if o.ResRetType(f32) != rr {
		t.Fatalf("ResRet identity not stable")
	}
	if o.ResRetType(ctx.Builtins().I32) == rr {
		t.Fatalf("ResRet shared across overloads")
	}
	if _, caught := CatchInternal(func() { o.ResRetType(ctx.Builtins().Void) }); !caught {
		t.Fatalf("void ResRet accepted")
	}
}

func TestCBufferRetType(t *testing.T) {
	o, m := newTestOP(t)
	ctx := m.Context()
	b := ctx.Builtins()
	if got := ctx.StructBody(o.CBufferRetType(b.Double)); got != "{ double, double }" {
		t.Fatalf("f64 row %q", got)
	}
	if got := ctx.StructBody(o.CBufferRetType(b.Float)); got != "{ float, float, float, float }" {
		t.Fatalf("f32 row %q", got)
	}
	info, _ := ctx.StructInfo(o.CBufferRetType(b.Double))
	if info.Name != "dx.types.CBufRet.f64" {
		t.Fatalf("name %q", info.Name)
	}
	f := o.GetOpFunc(OpCBufferLoadLegacy, b.Double)
	fn, _ := ctx.FnInfo(f.Type)
	if fn.Result != o.CBufferRetType(b.Double) || fn.Params[1] != o.HandleType() {
		t.Fatalf("cbufferLoadLegacy.f64 signature %s", ctx.TypeString(f.Type))
	}
}

func TestRegistriesShareUnit(t *testing.T) {
	m := ir.NewModule("shared", nil)
	a := New(m)
	b := New(m)
	if a.HandleType() != b.HandleType() {
		t.Fatalf("second registry created its own handle type")
	}
	f32 := m.Context().Builtins().Float
	if a.ResRetType(f32) != b.ResRetType(f32) {
		t.Fatalf("ResRet duplicated across registries")
	}
	fa := a.GetOpFunc(OpSample, f32)
	fb := b.GetOpFunc(OpSample, f32)
	if fa != fb {
		t.Fatalf("declaration duplicated across registries: %q vs %q", fa.Name, fb.Name)
	}
	// seven fixed aggregates plus ResRet.f32
	if n := len(m.StructTypes()); n != 8 {
		t.Fatalf("expected 8 named types, got %d", n)
	}
	if len(m.Functions()) != 1 {
		t.Fatalf("expected one declaration, got %d", len(m.Functions()))
	}
}

func TestAdoptsExistingDeclaration(t *testing.T) {
	m := ir.NewModule("adopt", nil)
	ctx := m.Context()
	b := ctx.Builtins()
	pre := m.DeclareFunction("dx.op.unary.f32", ctx.RegisterFn([]ir.TypeID{b.I32, b.Float}, b.Float))
	o := New(m)
	if got := o.GetOpFunc(OpFAbs, b.Float); got != pre {
		t.Fatalf("existing declaration not adopted")
	}
	if len(m.Functions()) != 1 {
		t.Fatalf("adopt declared a duplicate")
	}
}

func TestTracerSeesSymbolEvents(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	m := ir.NewModule("traced", nil)
	o := New(m, WithTracer(ring))
	o.GetOpFunc(OpFAbs, m.Context().Builtins().Float)
	New(m, WithTracer(ring)).GetOpFunc(OpFAbs, m.Context().Builtins().Float)

	counts := map[string]int{}
	for _, ev := range ring.Snapshot() {
		if ev.Scope != trace.ScopeSymbol {
			t.Fatalf("unexpected scope %s", ev.Scope)
		}
		counts[ev.Name]++
	}
	if counts["type.create"] != 7 || counts["type.adopt"] != 7 {
		t.Fatalf("type events %v", counts)
	}
	if counts["symbol.create"] != 1 || counts["symbol.adopt"] != 1 {
		t.Fatalf("symbol events %v", counts)
	}
}

func TestConstants(t *testing.T) {
	o, _ := newTestOP(t)
	cases := []struct {
		v    ir.Value
		want string
	}{
		{o.I1Const(true), "i1 true"},
		{o.I1Const(false), "i1 false"},
		{o.I8Const(-1), "i8 -1"},
		{o.U8Const(255), "i8 -1"},
		{o.I16Const(-300), "i16 -300"},
		{o.U16Const(7), "i16 7"},
		{o.I32Const(-5), "i32 -5"},
		{o.U32Const(1 << 31), "i32 -2147483648"},
		{o.U64Const(42), "i64 42"},
		{o.OpCodeConst(OpFAbs), "i32 6"},
		{o.OpCodeConst(OpInnerCoverage), "i32 148"},
	}
	for _, tc := range cases {
		if got := tc.v.String(); got != tc.want {
			t.Errorf("constant %q, want %q", got, tc.want)
		}
	}
	if o.FloatConst(1).Type() != o.Unit().Context().Builtins().Float {
		t.Fatalf("float constant type")
	}
	if o.DoubleConst(1).Type() != o.Unit().Context().Builtins().Double {
		t.Fatalf("double constant type")
	}
}

func TestModuleText(t *testing.T) {
	o, m := newTestOP(t)
	b := m.Context().Builtins()
	o.GetOpFunc(OpFAbs, b.Float)
	o.GetOpFunc(OpBufferLoad, b.I32)
	text := m.String()
	for _, want := range []string{
		"%dx.types.Handle = type { i8* }",
		"%dx.types.ResRet.i32 = type { i32, i32, i32, i32, i32 }",
		"declare float @dx.op.unary.f32(i32, float) #0",
		"declare %dx.types.ResRet.i32 @dx.op.bufferLoad.i32(i32, %dx.types.Handle, i32, i32) #1",
		"attributes #0 = { nounwind readnone }",
		"attributes #1 = { nounwind readonly }",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}
}
