package dxil

import (
	"testing"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/diag"
)

func TestCatalogRowsMatchOrdinals(t *testing.T) {
	for i := range NumOpCodes {
		p := Property(i)
		if p.OpCode != i {
			t.Fatalf("row %d describes %d (%s)", i, p.OpCode, p.Name)
		}
		if p.Name == "" || p.ClassName() == "" {
			t.Fatalf("row %d has an empty name", i)
		}
		if p.Overloads == 0 {
			t.Fatalf("%s has no legal overloads", p.Name)
		}
	}
}

func TestCheckOpCodeTable(t *testing.T) {
	if err := CheckOpCodeTable(); err != nil {
		t.Fatalf("catalog check failed: %v", err)
	}
}

func TestCatalogNames(t *testing.T) {
	cases := []struct {
		op    OpCode
		name  string
		class string
	}{
		{OpTempRegLoad, "TempRegLoad", "tempRegLoad"},
		{OpFAbs, "FAbs", "unary"},
		{OpRoundNE, "Round_ne", "unary"},
		{OpCreateHandle, "CreateHandle", "createHandle"},
		{OpCBufferLoadLegacy, "CBufferLoadLegacy", "cbufferLoadLegacy"},
		{OpWavePrefixBitCount, "WavePrefixBitCount", "wavePrefixOp"},
		{OpInnerCoverage, "InnerCoverage", "innerCoverage"},
	}
	for _, tc := range cases {
		if got := tc.op.Name(); got != tc.name {
			t.Errorf("%d: name %q, want %q", tc.op, got, tc.name)
		}
		if got := tc.op.ClassName(); got != tc.class {
			t.Errorf("%s: class %q, want %q", tc.name, got, tc.class)
		}
	}
}

func TestOpCodeByName(t *testing.T) {
	op, ok := OpCodeByName("FAbs")
	if !ok || op != OpFAbs {
		t.Fatalf("FAbs lookup: %v %v", op, ok)
	}
	op, ok = OpCodeByName("createhandle")
	if !ok || op != OpCreateHandle {
		t.Fatalf("case-insensitive lookup: %v %v", op, ok)
	}
	if _, ok := OpCodeByName("NoSuchOp"); ok {
		t.Fatalf("unknown name resolved")
	}
}

func TestOpCodeFromInt(t *testing.T) {
	if op, ok := OpCodeFromInt(148); !ok || op != OpInnerCoverage {
		t.Fatalf("148: %v %v", op, ok)
	}
	for _, v := range []int{-1, 149, 1 << 40} {
		if _, ok := OpCodeFromInt(v); ok {
			t.Fatalf("%d accepted", v)
		}
	}
}

func TestOutOfRangeOpCodePanics(t *testing.T) {
	d, caught := CatchInternal(func() { _ = OpCode(NumOpCodes).Name() })
	if !caught {
		t.Fatalf("expected an internal error")
	}
	if d.Code != diag.DxilOpCodeOutOfRange || d.Severity != diag.SevError {
		t.Fatalf("unexpected diagnostic %s", d)
	}
}

func TestCatchInternalPassesThroughOtherPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("recovered %v", r)
		}
	}()
	CatchInternal(func() { panic("boom") })
	t.Fatalf("panic swallowed")
}

func TestShapesStartWithSelector(t *testing.T) {
	for _, op := range OpCodes() {
		s := SignatureOf(op)
		if len(s.Params) == 0 || s.Params[0] != ArgSelector {
			t.Fatalf("%s: shape %s", op, s)
		}
	}
	if got := SignatureOf(OpFAbs).String(); got != "$o (i32, $o)" {
		t.Fatalf("FAbs shape %q", got)
	}
}

func TestSignatureOfReturnsCopy(t *testing.T) {
	s := SignatureOf(OpFAbs)
	s.Params[1] = ArgI64
	if SignatureOf(OpFAbs).Params[1] != ArgOverload {
		t.Fatalf("shape table mutated through SignatureOf")
	}
}
