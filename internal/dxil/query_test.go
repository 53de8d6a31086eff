package dxil

import (
	"testing"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/diag"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/ir"
)

func TestIsWaveRanges(t *testing.T) {
	wave := map[OpCode]bool{}
	for op := OpCode(114); op <= 128; op++ {
		wave[op] = true
	}
	for _, op := range []OpCode{130, 131, 144, 145} {
		wave[op] = true
	}
	for _, op := range OpCodes() {
		if IsWave(op) != wave[op] {
			t.Fatalf("IsWave(%d %s) = %v", op, op, IsWave(op))
		}
	}
	for _, op := range []OpCode{113, 129, 132, 143, 146} {
		if IsWave(op) {
			t.Fatalf("%d must not be a wave op", op)
		}
	}
}

func TestIsGradientRanges(t *testing.T) {
	grad := map[OpCode]bool{61: true, 62: true, 65: true, 74: true, 75: true, 84: true, 86: true, 87: true, 88: true, 89: true}
	for _, op := range OpCodes() {
		if IsGradient(op) != grad[op] {
			t.Fatalf("IsGradient(%d %s) = %v", op, op, IsGradient(op))
		}
	}
	for _, op := range []OpCode{60, 63, 64, 66, 73, 76, 85, 90} {
		if IsGradient(op) {
			t.Fatalf("%d must not be a gradient op", op)
		}
	}
}

func TestIsOverloadLegal(t *testing.T) {
	if !IsOverloadLegal(OpFAbs, ir.Type{Kind: ir.KindFloat}) {
		t.Fatalf("FAbs@f32 must be legal")
	}
	if IsOverloadLegal(OpFAbs, ir.MakeInt(32)) {
		t.Fatalf("FAbs@i32 must be illegal")
	}
	if !IsOverloadLegal(OpCreateHandle, ir.Type{Kind: ir.KindVoid}) {
		t.Fatalf("CreateHandle@void must be legal")
	}
	if IsOverloadLegal(NumOpCodes, ir.Type{Kind: ir.KindFloat}) {
		t.Fatalf("out-of-range opcode accepted")
	}
	bad := []ir.Type{ir.MakeInt(24), ir.MakePointer(1), ir.MakeVector(3, 4), {}}
	for _, op := range OpCodes() {
		for _, ty := range bad {
			if IsOverloadLegal(op, ty) {
				t.Fatalf("%s accepted slotless type %+v", op, ty)
			}
		}
	}
}

func TestAtomicOpNames(t *testing.T) {
	if got := AtomicOpName(0); got != "AtomicAdd" {
		t.Fatalf("0 -> %q", got)
	}
	if got := AtomicOpName(AtomicUMax); got != "AtomicUMax" {
		t.Fatalf("UMax -> %q", got)
	}
	if got := AtomicOpName(8); got != "AtomicInvalid" {
		t.Fatalf("8 -> %q", got)
	}
	d, caught := CatchInternal(func() { AtomicOpName(9) })
	if !caught || d.Code != diag.DxilAtomicOutOfRange {
		t.Fatalf("expected atomic range error, got %v %s", caught, d)
	}
}

func TestOpCodeOfCall(t *testing.T) {
	m := ir.NewModule("calls", nil)
	o := New(m)
	f32 := m.Context().Builtins().Float
	call, err := o.Call(OpFAbs, f32, o.FloatConst(1.5))
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if !IsDxilOpFuncCall(call) || !IsDxilOpFunc(call.Callee) {
		t.Fatalf("call not recognized")
	}
	op, ok := OpCodeOfCall(call)
	if !ok || op != OpFAbs {
		t.Fatalf("selector %v %v", op, ok)
	}
	if !IsDxilOpFuncCallOf(call, OpFAbs) || IsDxilOpFuncCallOf(call, OpSaturate) {
		t.Fatalf("IsDxilOpFuncCallOf mismatch")
	}

	other := m.DeclareFunction("main", m.Context().RegisterFn(nil, m.Context().Builtins().Void))
	plain, err := m.NewCall(other)
	if err != nil {
		t.Fatalf("plain call: %v", err)
	}
	if IsDxilOpFuncCall(plain) {
		t.Fatalf("non-operation call recognized")
	}
	if _, ok := OpCodeOfCall(plain); ok {
		t.Fatalf("selector read from a non-operation call")
	}
	if IsDxilOpFuncCall(nil) {
		t.Fatalf("nil call recognized")
	}
}

func TestCallRejectsBadOperands(t *testing.T) {
	m := ir.NewModule("calls", nil)
	o := New(m)
	f32 := m.Context().Builtins().Float
	if _, err := o.Call(OpFAbs, f32); err == nil {
		t.Fatalf("missing operand accepted")
	}
	if _, err := o.Call(OpFAbs, f32, o.I32Const(3)); err == nil {
		t.Fatalf("mistyped operand accepted")
	}
}
