package dxil

import (
	"strings"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/ir"
)

// IsOverloadLegal reports whether t is a legal overload for op. It is total:
// out-of-range opcodes and types without a slot yield false.
func IsOverloadLegal(op OpCode, t ir.Type) bool {
	if op >= NumOpCodes {
		return false
	}
	return opCodeProps[op].Overloads.Has(SlotOf(t))
}

// OverloadTypeName returns the overload name of a slot ("f32", "void", ...).
func OverloadTypeName(s TypeSlot) string {
	return s.String()
}

// IsWave reports whether op is a wave or quad operation.
func IsWave(op OpCode) bool {
	switch {
	case op >= OpWaveCaptureReserved && op <= OpWaveGetOrderedIndex: // 114-128
		return true
	case op >= OpQuadReadLaneAt && op <= OpQuadOp: // 130-131
		return true
	case op >= OpWaveAllBitCount && op <= OpWavePrefixBitCount: // 144-145
		return true
	}
	return false
}

// IsGradient reports whether op computes implicit derivatives.
func IsGradient(op OpCode) bool {
	switch {
	case op >= OpSample && op <= OpSampleBias: // 61-62
		return true
	case op == OpSampleCmp: // 65
		return true
	case op >= OpTextureGather && op <= OpTextureGatherCmp: // 74-75
		return true
	case op == OpCalculateLOD: // 84
		return true
	case op >= OpDerivCoarseX && op <= OpDerivFineY: // 86-89
		return true
	}
	return false
}

// IsDxilOpFunc reports whether fn is an operation declaration.
func IsDxilOpFunc(fn *ir.Function) bool {
	return fn != nil && strings.HasPrefix(fn.Name, OpFuncPrefix)
}

// IsDxilOpFuncCall reports whether call targets an operation declaration.
func IsDxilOpFuncCall(call *ir.Call) bool {
	return call != nil && IsDxilOpFunc(call.Callee)
}

// IsDxilOpFuncCallOf reports whether call targets op.
func IsDxilOpFuncCallOf(call *ir.Call, op OpCode) bool {
	got, ok := OpCodeOfCall(call)
	return ok && got == op
}

// OpCodeOfCall reads the selector operand of an operation call. It reports
// false when the callee is not an operation or operand 0 is not an i32
// constant naming a known opcode.
func OpCodeOfCall(call *ir.Call) (OpCode, bool) {
	if !IsDxilOpFuncCall(call) {
		return 0, false
	}
	c, ok := call.Operand(0).(*ir.ConstInt)
	if !ok || c.Bits != 32 || c.Val >= uint64(NumOpCodes) {
		return 0, false
	}
	return OpCode(c.Val), true
}
