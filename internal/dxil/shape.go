package dxil

import (
	"fmt"
	"math/bits"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/diag"
)

// ArgKind names the type of one signature position. ArgOverload is
// substituted with the overload type when a declaration is synthesized;
// every other kind is fixed.
type ArgKind uint8

const (
	ArgOverload    ArgKind = iota // the overload type itself
	ArgSelector                   // i32 opcode selector, always parameter 0
	ArgVoid                       // void
	ArgI1                         // i1
	ArgI8                         // i8
	ArgI16                        // i16
	ArgI32                        // i32
	ArgI64                        // i64
	ArgF16                        // half
	ArgF32                        // float
	ArgF64                        // double
	ArgF32Ptr                     // float*
	ArgHandle                     // %dx.types.Handle
	ArgDimensions                 // %dx.types.Dimensions
	ArgSamplePos                  // %dx.types.SamplePos
	ArgCarryPair                  // %dx.types.i32c
	ArgTwoI32                     // %dx.types.twoi32
	ArgSplitDouble                // %dx.types.splitdouble
	ArgFourI32                    // %dx.types.fouri32
	ArgResRet                     // %dx.types.ResRet.<overload>
	ArgCBufRet                    // %dx.types.CBufRet.<overload>

	numArgKinds
)

var argKindNames = [numArgKinds]string{
	ArgOverload:    "$o",
	ArgSelector:    "i32",
	ArgVoid:        "void",
	ArgI1:          "i1",
	ArgI8:          "i8",
	ArgI16:         "i16",
	ArgI32:         "i32",
	ArgI64:         "i64",
	ArgF16:         "half",
	ArgF32:         "float",
	ArgF64:         "double",
	ArgF32Ptr:      "float*",
	ArgHandle:      "%dx.types.Handle",
	ArgDimensions:  "%dx.types.Dimensions",
	ArgSamplePos:   "%dx.types.SamplePos",
	ArgCarryPair:   "%dx.types.i32c",
	ArgTwoI32:      "%dx.types.twoi32",
	ArgSplitDouble: "%dx.types.splitdouble",
	ArgFourI32:     "%dx.types.fouri32",
	ArgResRet:      "%dx.types.ResRet.$o",
	ArgCBufRet:     "%dx.types.CBufRet.$o",
}

func (k ArgKind) String() string {
	if k >= numArgKinds {
		return fmt.Sprintf("ArgKind(%d)", uint8(k))
	}
	return argKindNames[k]
}

// Shape is the overload-independent signature template of an opcode.
type Shape struct {
	Result ArgKind
	Params []ArgKind
}

// Equal reports whether both shapes describe the same template.
func (s Shape) Equal(o Shape) bool {
	if s.Result != o.Result || len(s.Params) != len(o.Params) {
		return false
	}
	for i := range s.Params {
		if s.Params[i] != o.Params[i] {
			return false
		}
	}
	return true
}

// String renders the template with "$o" standing for the overload type.
func (s Shape) String() string {
	out := s.Result.String() + " ("
	for i, p := range s.Params {
		if i > 0 {
			out += ", "
		}
		out += p.String()
	}
	return out + ")"
}

// Overloaded reports whether any position depends on the overload.
func (s Shape) Overloaded() bool {
	if s.Result.overloaded() {
		return true
	}
	for _, p := range s.Params {
		if p.overloaded() {
			return true
		}
	}
	return false
}

func (k ArgKind) overloaded() bool {
	return k == ArgOverload || k == ArgResRet || k == ArgCBufRet
}

const (
	aETy  = ArgOverload
	aOp   = ArgSelector
	aVoid = ArgVoid
	aI1   = ArgI1
	aI8   = ArgI8
	aI16  = ArgI16
	aI32  = ArgI32
	aI64  = ArgI64
	aF16  = ArgF16
	aF32  = ArgF32
	aF64  = ArgF64
	aPF32 = ArgF32Ptr
	aRes  = ArgHandle
	aDim  = ArgDimensions
	aPos  = ArgSamplePos
	aI32C = ArgCarryPair
	a2I32 = ArgTwoI32
	aSDT  = ArgSplitDouble
	aI4S  = ArgFourI32
	aRRT  = ArgResRet
	aCBRT = ArgCBufRet
)

func sig(result ArgKind, params ...ArgKind) Shape {
	return Shape{Result: result, Params: params}
}

// opShapes is indexed by OpCode. Parameter 0 is the selector.
var opShapes = [NumOpCodes]Shape{
	// Temporary, indexable, input, output registers
	OpTempRegLoad:      sig(aETy, aOp, aI32),
	OpTempRegStore:     sig(aVoid, aOp, aI32, aETy),
	OpMinPrecXRegLoad:  sig(aETy, aOp, aPF32, aI32, aI8),
	OpMinPrecXRegStore: sig(aVoid, aOp, aPF32, aI32, aI8, aETy),
	OpLoadInput:        sig(aETy, aOp, aI32, aI32, aI8, aI32),
	OpStoreOutput:      sig(aVoid, aOp, aI32, aI32, aI8, aETy),

	// Unary float
	OpFAbs:     sig(aETy, aOp, aETy),
	OpSaturate: sig(aETy, aOp, aETy),
	OpIsNaN:    sig(aI1, aOp, aETy),
	OpIsInf:    sig(aI1, aOp, aETy),
	OpIsFinite: sig(aI1, aOp, aETy),
	OpIsNormal: sig(aI1, aOp, aETy),
	OpCos:      sig(aETy, aOp, aETy),
	OpSin:      sig(aETy, aOp, aETy),
	OpTan:      sig(aETy, aOp, aETy),
	OpAcos:     sig(aETy, aOp, aETy),
	OpAsin:     sig(aETy, aOp, aETy),
	OpAtan:     sig(aETy, aOp, aETy),
	OpHcos:     sig(aETy, aOp, aETy),
	OpHsin:     sig(aETy, aOp, aETy),
	OpExp:      sig(aETy, aOp, aETy),
	OpFrc:      sig(aETy, aOp, aETy),
	OpLog:      sig(aETy, aOp, aETy),
	OpSqrt:     sig(aETy, aOp, aETy),
	OpRsqrt:    sig(aETy, aOp, aETy),

	// Unary float - rounding
	OpRoundNE: sig(aETy, aOp, aETy),
	OpRoundNI: sig(aETy, aOp, aETy),
	OpRoundPI: sig(aETy, aOp, aETy),
	OpRoundZ:  sig(aETy, aOp, aETy),

	// Unary int
	OpBfrev:       sig(aETy, aOp, aETy),
	OpCountbits:   sig(aI32, aOp, aETy),
	OpFirstbitLo:  sig(aI32, aOp, aETy),
	OpFirstbitHi:  sig(aI32, aOp, aETy),
	OpFirstbitSHi: sig(aI32, aOp, aETy),

	// Binary float
	OpFMax: sig(aETy, aOp, aETy, aETy),
	OpFMin: sig(aETy, aOp, aETy, aETy),

	// Binary int
	OpIMax: sig(aETy, aOp, aETy, aETy),
	OpIMin: sig(aETy, aOp, aETy, aETy),
	OpUMax: sig(aETy, aOp, aETy, aETy),
	OpUMin: sig(aETy, aOp, aETy, aETy),

	// Binary int with two outputs
	OpIMul: sig(a2I32, aOp, aETy, aETy),
	OpUMul: sig(a2I32, aOp, aETy, aETy),
	OpUDiv: sig(a2I32, aOp, aETy, aETy),

	// Binary int with carry
	OpIAddc: sig(aI32C, aOp, aETy, aETy),
	OpUAddc: sig(aI32C, aOp, aETy, aETy),
	OpISubc: sig(aI32C, aOp, aETy, aETy),
	OpUSubc: sig(aI32C, aOp, aETy, aETy),

	// Tertiary float
	OpFMad: sig(aETy, aOp, aETy, aETy, aETy),
	OpFma:  sig(aETy, aOp, aETy, aETy, aETy),

	// Tertiary int
	OpIMad: sig(aETy, aOp, aETy, aETy, aETy),
	OpUMad: sig(aETy, aOp, aETy, aETy, aETy),
	OpMsad: sig(aETy, aOp, aETy, aETy, aETy),
	OpIbfe: sig(aETy, aOp, aETy, aETy, aETy),
	OpUbfe: sig(aETy, aOp, aETy, aETy, aETy),

	// Quaternary
	OpBfi: sig(aETy, aOp, aETy, aETy, aETy, aETy),

	// Dot
	OpDot2: sig(aETy, aOp, aETy, aETy, aETy, aETy),
	OpDot3: sig(aETy, aOp, aETy, aETy, aETy, aETy, aETy, aETy),
	OpDot4: sig(aETy, aOp, aETy, aETy, aETy, aETy, aETy, aETy, aETy, aETy),

	// Resources
	OpCreateHandle:      sig(aRes, aOp, aI8, aI32, aI32, aI1),
	OpCBufferLoad:       sig(aETy, aOp, aRes, aI32, aI32),
	OpCBufferLoadLegacy: sig(aCBRT, aOp, aRes, aI32),

	// Resources - sample
	OpSample:             sig(aRRT, aOp, aRes, aRes, aF32, aF32, aF32, aF32, aI32, aI32, aI32, aF32),
	OpSampleBias:         sig(aRRT, aOp, aRes, aRes, aF32, aF32, aF32, aF32, aI32, aI32, aI32, aF32, aF32),
	OpSampleLevel:        sig(aRRT, aOp, aRes, aRes, aF32, aF32, aF32, aF32, aI32, aI32, aI32, aF32),
	OpSampleGrad:         sig(aRRT, aOp, aRes, aRes, aF32, aF32, aF32, aF32, aI32, aI32, aI32, aF32, aF32, aF32, aF32, aF32, aF32, aF32),
	OpSampleCmp:          sig(aRRT, aOp, aRes, aRes, aF32, aF32, aF32, aF32, aI32, aI32, aI32, aF32, aF32),
	OpSampleCmpLevelZero: sig(aRRT, aOp, aRes, aRes, aF32, aF32, aF32, aF32, aI32, aI32, aI32, aF32),

	// Resources
	OpTextureLoad:            sig(aRRT, aOp, aRes, aI32, aI32, aI32, aI32, aI32, aI32, aI32),
	OpTextureStore:           sig(aVoid, aOp, aRes, aI32, aI32, aI32, aETy, aETy, aETy, aETy, aI8),
	OpBufferLoad:             sig(aRRT, aOp, aRes, aI32, aI32),
	OpBufferStore:            sig(aVoid, aOp, aRes, aI32, aI32, aETy, aETy, aETy, aETy, aI8),
	OpBufferUpdateCounter:    sig(aI32, aOp, aRes, aI8),
	OpCheckAccessFullyMapped: sig(aI1, aOp, aI32),
	OpGetDimensions:          sig(aDim, aOp, aRes, aI32),

	// Resources - gather
	OpTextureGather:    sig(aRRT, aOp, aRes, aRes, aF32, aF32, aF32, aF32, aI32, aI32, aI32),
	OpTextureGatherCmp: sig(aRRT, aOp, aRes, aRes, aF32, aF32, aF32, aF32, aI32, aI32, aI32, aF32),

	OpToDelete5: sig(aVoid, aOp),
	OpToDelete6: sig(aVoid, aOp),

	// Resources - sample
	OpTexture2DMSGetSamplePosition:  sig(aPos, aOp, aRes, aI32),
	OpRenderTargetGetSamplePosition: sig(aPos, aOp, aI32),
	OpRenderTargetGetSampleCount:    sig(aI32, aOp),

	// Synchronization
	OpAtomicBinOp:           sig(aI32, aOp, aRes, aI32, aI32, aI32, aI32, aI32),
	OpAtomicCompareExchange: sig(aI32, aOp, aRes, aI32, aI32, aI32, aI32, aI32),
	OpBarrier:               sig(aVoid, aOp, aI32),

	// Pixel shader
	OpCalculateLOD:    sig(aF32, aOp, aRes, aRes, aF32, aF32, aF32, aI1),
	OpDiscard:         sig(aVoid, aOp, aI1),
	OpDerivCoarseX:    sig(aETy, aOp, aETy),
	OpDerivCoarseY:    sig(aETy, aOp, aETy),
	OpDerivFineX:      sig(aETy, aOp, aETy),
	OpDerivFineY:      sig(aETy, aOp, aETy),
	OpEvalSnapped:     sig(aETy, aOp, aI32, aI32, aI8, aI32, aI32),
	OpEvalSampleIndex: sig(aETy, aOp, aI32, aI32, aI8, aI32),
	OpEvalCentroid:    sig(aETy, aOp, aI32, aI32, aI8),

	// Compute shader
	OpThreadId:                 sig(aI32, aOp, aI32),
	OpGroupId:                  sig(aI32, aOp, aI32),
	OpThreadIdInGroup:          sig(aI32, aOp, aI32),
	OpFlattenedThreadIdInGroup: sig(aI32, aOp),

	// Geometry shader
	OpEmitStream:        sig(aVoid, aOp, aI8),
	OpCutStream:         sig(aVoid, aOp, aI8),
	OpEmitThenCutStream: sig(aVoid, aOp, aI8),

	// Double precision
	OpMakeDouble: sig(aF64, aOp, aI32, aI32),

	OpToDelete1: sig(aVoid, aOp),
	OpToDelete2: sig(aVoid, aOp),

	// Double precision
	OpSplitDouble: sig(aSDT, aOp, aF64),

	OpToDelete3: sig(aVoid, aOp),
	OpToDelete4: sig(aVoid, aOp),

	// Domain and hull shader
	OpLoadOutputControlPoint: sig(aETy, aOp, aI32, aI32, aI8, aI32),
	OpLoadPatchConstant:      sig(aETy, aOp, aI32, aI32, aI8),

	// Domain shader
	OpDomainLocation: sig(aF32, aOp, aI8),

	// Hull shader
	OpStorePatchConstant:   sig(aVoid, aOp, aI32, aI32, aI8, aETy),
	OpOutputControlPointID: sig(aI32, aOp),
	OpPrimitiveID:          sig(aI32, aOp),

	// Other
	OpCycleCounterLegacy: sig(a2I32, aOp),

	// Unary float
	OpHtan: sig(aETy, aOp, aETy),

	// Wave
	OpWaveCaptureReserved:      sig(aVoid, aOp),
	OpWaveIsFirstLane:          sig(aI1, aOp),
	OpWaveGetLaneIndex:         sig(aI32, aOp),
	OpWaveGetLaneCount:         sig(aI32, aOp),
	OpWaveIsHelperLaneReserved: sig(aVoid, aOp),
	OpWaveAnyTrue:              sig(aI1, aOp, aI1),
	OpWaveAllTrue:              sig(aI1, aOp, aI1),
	OpWaveActiveAllEqual:       sig(aI1, aOp, aETy),
	OpWaveActiveBallot:         sig(aI4S, aOp, aI1),
	OpWaveReadLaneAt:           sig(aETy, aOp, aETy, aI32),
	OpWaveReadLaneFirst:        sig(aETy, aOp, aETy),
	OpWaveActiveOp:             sig(aETy, aOp, aETy, aI8, aI8),
	OpWaveActiveBit:            sig(aETy, aOp, aETy, aI8),
	OpWavePrefixOp:             sig(aETy, aOp, aETy, aI8, aI8),
	OpWaveGetOrderedIndex:      sig(aVoid, aOp),

	OpGlobalOrderedCountIncReserved: sig(aVoid, aOp),

	// Wave
	OpQuadReadLaneAt: sig(aETy, aOp, aETy, aI32),
	OpQuadOp:         sig(aETy, aOp, aETy, aI8),

	// Bitcasts with different sizes
	OpBitcastI16toF16: sig(aF16, aOp, aI16),
	OpBitcastF16toI16: sig(aI16, aOp, aF16),
	OpBitcastI32toF32: sig(aF32, aOp, aI32),
	OpBitcastF32toI32: sig(aI32, aOp, aF32),
	OpBitcastI64toF64: sig(aF64, aOp, aI64),
	OpBitcastF64toI64: sig(aI64, aOp, aF64),

	// GS
	OpGSInstanceID: sig(aI32, aOp),

	// Legacy floating-point
	OpLegacyF32ToF16: sig(aI32, aOp, aF32),
	OpLegacyF16ToF32: sig(aF32, aOp, aI32),

	// Double precision
	OpLegacyDoubleToFloat:  sig(aF32, aOp, aF64),
	OpLegacyDoubleToSInt32: sig(aI32, aOp, aF64),
	OpLegacyDoubleToUInt32: sig(aI32, aOp, aF64),

	// Wave
	OpWaveAllBitCount:    sig(aI32, aOp, aI1),
	OpWavePrefixBitCount: sig(aI32, aOp, aI1),

	// Pixel shader
	OpSampleIndex:   sig(aI32, aOp),
	OpCoverage:      sig(aI32, aOp),
	OpInnerCoverage: sig(aI32, aOp),}

// SignatureOf returns the signature template of op. Out-of-range opcodes panic.
func SignatureOf(op OpCode) Shape {
	mustProperty(op)
	s := opShapes[op]
	return Shape{Result: s.Result, Params: append([]ArgKind(nil), s.Params...)}
}

func checkShapeTable() error {
	for i := range opShapes {
		op := OpCode(i) //nolint:gosec // i < NumOpCodes
		s := opShapes[i]
		if s.Params == nil {
			return internalf(diag.DxilMissingShape, op.Name(), "no signature shape")
		}
		if s.Params[0] != ArgSelector {
			return internalf(diag.DxilMissingShape, op.Name(), "parameter 0 is %s, want the opcode selector", s.Params[0])
		}
		for j, p := range s.Params {
			if p == ArgVoid {
				return internalf(diag.DxilMissingShape, op.Name(), "parameter %d is void", j)
			}
		}
		if !s.Overloaded() && bits.OnesCount16(uint16(op.Overloads())) != 1 {
			return internalf(diag.DxilMissingShape, op.Name(), "fixed shape %s with overloads %s", s, op.Overloads())
		}
	}
	return nil
}

func init() {
	if err := checkShapeTable(); err != nil {
		panic(err)
	}
}
