package dxil

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/diag"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/ir"
)

// OpCodeProperty is one catalog row.
type OpCodeProperty struct {
	OpCode    OpCode
	Name      string
	Class     OpCodeClass
	Overloads OverloadMask
	Attr      ir.Attribute // purity: AttrNone, AttrReadOnly or AttrReadNone
}

// ClassName returns the declaration base name shared by the row's class.
func (p OpCodeProperty) ClassName() string {
	return opCodeClassNames[p.Class]
}

// opCodeProps is indexed by OpCode; row i must describe opcode i.
// Columns: opcode, name, class, legal overloads, purity.
var opCodeProps = [NumOpCodes]OpCodeProperty{
	// Temporary, indexable, input, output registers
	{OpTempRegLoad, "TempRegLoad", ClassTempRegLoad, oH | oF | oI16 | oI32, ir.AttrReadOnly},
	{OpTempRegStore, "TempRegStore", ClassTempRegStore, oH | oF | oI16 | oI32, ir.AttrNone},
	{OpMinPrecXRegLoad, "MinPrecXRegLoad", ClassMinPrecXRegLoad, oH | oI16, ir.AttrReadOnly},
	{OpMinPrecXRegStore, "MinPrecXRegStore", ClassMinPrecXRegStore, oH | oI16, ir.AttrNone},
	{OpLoadInput, "LoadInput", ClassLoadInput, oH | oF | oI16 | oI32, ir.AttrReadNone},
	{OpStoreOutput, "StoreOutput", ClassStoreOutput, oH | oF | oI16 | oI32, ir.AttrNone},

	// Unary float
	{OpFAbs, "FAbs", ClassUnary, oH | oF | oD, ir.AttrReadNone},
	{OpSaturate, "Saturate", ClassUnary, oH | oF | oD, ir.AttrReadNone},
	{OpIsNaN, "IsNaN", ClassIsSpecialFloat, oH | oF, ir.AttrReadNone},
	{OpIsInf, "IsInf", ClassIsSpecialFloat, oH | oF, ir.AttrReadNone},
	{OpIsFinite, "IsFinite", ClassIsSpecialFloat, oH | oF, ir.AttrReadNone},
	{OpIsNormal, "IsNormal", ClassIsSpecialFloat, oH | oF, ir.AttrReadNone},
	{OpCos, "Cos", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpSin, "Sin", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpTan, "Tan", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpAcos, "Acos", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpAsin, "Asin", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpAtan, "Atan", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpHcos, "Hcos", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpHsin, "Hsin", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpExp, "Exp", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpFrc, "Frc", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpLog, "Log", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpSqrt, "Sqrt", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpRsqrt, "Rsqrt", ClassUnary, oH | oF, ir.AttrReadNone},

	// Unary float - rounding
	{OpRoundNE, "Round_ne", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpRoundNI, "Round_ni", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpRoundPI, "Round_pi", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpRoundZ, "Round_z", ClassUnary, oH | oF, ir.AttrReadNone},

	// Unary int
	{OpBfrev, "Bfrev", ClassUnary, oI16 | oI32 | oI64, ir.AttrReadNone},
	{OpCountbits, "Countbits", ClassUnaryBits, oI16 | oI32 | oI64, ir.AttrReadNone},
	{OpFirstbitLo, "FirstbitLo", ClassUnaryBits, oI16 | oI32 | oI64, ir.AttrReadNone},
	{OpFirstbitHi, "FirstbitHi", ClassUnaryBits, oI16 | oI32 | oI64, ir.AttrReadNone},
	{OpFirstbitSHi, "FirstbitSHi", ClassUnaryBits, oI16 | oI32 | oI64, ir.AttrReadNone},

	// Binary float
	{OpFMax, "FMax", ClassBinary, oH | oF | oD, ir.AttrReadNone},
	{OpFMin, "FMin", ClassBinary, oH | oF | oD, ir.AttrReadNone},

	// Binary int
	{OpIMax, "IMax", ClassBinary, oI16 | oI32 | oI64, ir.AttrReadNone},
	{OpIMin, "IMin", ClassBinary, oI16 | oI32 | oI64, ir.AttrReadNone},
	{OpUMax, "UMax", ClassBinary, oI16 | oI32 | oI64, ir.AttrReadNone},
	{OpUMin, "UMin", ClassBinary, oI16 | oI32 | oI64, ir.AttrReadNone},

	// Binary int with two outputs
	{OpIMul, "IMul", ClassBinaryWithTwoOuts, oI32, ir.AttrReadNone},
	{OpUMul, "UMul", ClassBinaryWithTwoOuts, oI32, ir.AttrReadNone},
	{OpUDiv, "UDiv", ClassBinaryWithTwoOuts, oI32, ir.AttrReadNone},

	// Binary int with carry
	{OpIAddc, "IAddc", ClassBinaryWithCarry, oI32, ir.AttrReadNone},
	{OpUAddc, "UAddc", ClassBinaryWithCarry, oI32, ir.AttrReadNone},
	{OpISubc, "ISubc", ClassBinaryWithCarry, oI32, ir.AttrReadNone},
	{OpUSubc, "USubc", ClassBinaryWithCarry, oI32, ir.AttrReadNone},

	// Tertiary float
	{OpFMad, "FMad", ClassTertiary, oH | oF | oD, ir.AttrReadNone},
	{OpFma, "Fma", ClassTertiary, oD, ir.AttrReadNone},

	// Tertiary int
	{OpIMad, "IMad", ClassTertiary, oI16 | oI32 | oI64, ir.AttrReadNone},
	{OpUMad, "UMad", ClassTertiary, oI16 | oI32 | oI64, ir.AttrReadNone},
	{OpMsad, "Msad", ClassTertiary, oI32 | oI64, ir.AttrReadNone},
	{OpIbfe, "Ibfe", ClassTertiary, oI32 | oI64, ir.AttrReadNone},
	{OpUbfe, "Ubfe", ClassTertiary, oI32 | oI64, ir.AttrReadNone},

	// Quaternary
	{OpBfi, "Bfi", ClassQuaternary, oI32, ir.AttrReadNone},

	// Dot
	{OpDot2, "Dot2", ClassDot2, oH | oF, ir.AttrReadNone},
	{OpDot3, "Dot3", ClassDot3, oH | oF, ir.AttrReadNone},
	{OpDot4, "Dot4", ClassDot4, oH | oF, ir.AttrReadNone},

	// Resources
	{OpCreateHandle, "CreateHandle", ClassCreateHandle, oV, ir.AttrReadOnly},
	{OpCBufferLoad, "CBufferLoad", ClassCBufferLoad, oH | oF | oD | oI8 | oI16 | oI32 | oI64, ir.AttrReadOnly},
	{OpCBufferLoadLegacy, "CBufferLoadLegacy", ClassCBufferLoadLegacy, oH | oF | oD | oI16 | oI32, ir.AttrReadOnly},

	// Resources - sample
	{OpSample, "Sample", ClassSample, oH | oF, ir.AttrReadOnly},
	{OpSampleBias, "SampleBias", ClassSampleBias, oH | oF, ir.AttrReadOnly},
	{OpSampleLevel, "SampleLevel", ClassSampleLevel, oH | oF, ir.AttrReadOnly},
	{OpSampleGrad, "SampleGrad", ClassSampleGrad, oH | oF, ir.AttrReadOnly},
	{OpSampleCmp, "SampleCmp", ClassSampleCmp, oH | oF, ir.AttrReadOnly},
	{OpSampleCmpLevelZero, "SampleCmpLevelZero", ClassSampleCmpLevelZero, oH | oF, ir.AttrReadOnly},

	// Resources
	{OpTextureLoad, "TextureLoad", ClassTextureLoad, oH | oF | oI16 | oI32, ir.AttrReadOnly},
	{OpTextureStore, "TextureStore", ClassTextureStore, oH | oF | oI16 | oI32, ir.AttrNone},
	{OpBufferLoad, "BufferLoad", ClassBufferLoad, oH | oF | oI16 | oI32 | oI64, ir.AttrReadOnly},
	{OpBufferStore, "BufferStore", ClassBufferStore, oH | oF | oI16 | oI32 | oI64, ir.AttrNone},
	{OpBufferUpdateCounter, "BufferUpdateCounter", ClassBufferUpdateCounter, oV, ir.AttrNone},
	{OpCheckAccessFullyMapped, "CheckAccessFullyMapped", ClassCheckAccessFullyMapped, oI32, ir.AttrReadOnly},
	{OpGetDimensions, "GetDimensions", ClassGetDimensions, oV, ir.AttrReadOnly},

	// Resources - gather
	{OpTextureGather, "TextureGather", ClassTextureGather, oF | oI32, ir.AttrReadOnly},
	{OpTextureGatherCmp, "TextureGatherCmp", ClassTextureGatherCmp, oF | oI32, ir.AttrReadOnly},

	{OpToDelete5, "ToDelete5", ClassReserved, oV, ir.AttrNone},
	{OpToDelete6, "ToDelete6", ClassReserved, oV, ir.AttrNone},

	// Resources - sample
	{OpTexture2DMSGetSamplePosition, "Texture2DMSGetSamplePosition", ClassTexture2DMSGetSamplePosition, oV, ir.AttrReadOnly},
	{OpRenderTargetGetSamplePosition, "RenderTargetGetSamplePosition", ClassRenderTargetGetSamplePosition, oV, ir.AttrReadOnly},
	{OpRenderTargetGetSampleCount, "RenderTargetGetSampleCount", ClassRenderTargetGetSampleCount, oV, ir.AttrReadOnly},

	// Synchronization
	{OpAtomicBinOp, "AtomicBinOp", ClassAtomicBinOp, oI32, ir.AttrNone},
	{OpAtomicCompareExchange, "AtomicCompareExchange", ClassAtomicCompareExchange, oI32, ir.AttrNone},
	{OpBarrier, "Barrier", ClassBarrier, oV, ir.AttrNone},

	// Pixel shader
	{OpCalculateLOD, "CalculateLOD", ClassCalculateLOD, oF, ir.AttrReadOnly},
	{OpDiscard, "Discard", ClassDiscard, oV, ir.AttrNone},
	{OpDerivCoarseX, "DerivCoarseX", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpDerivCoarseY, "DerivCoarseY", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpDerivFineX, "DerivFineX", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpDerivFineY, "DerivFineY", ClassUnary, oH | oF, ir.AttrReadNone},
	{OpEvalSnapped, "EvalSnapped", ClassEvalSnapped, oH | oF, ir.AttrReadNone},
	{OpEvalSampleIndex, "EvalSampleIndex", ClassEvalSampleIndex, oH | oF, ir.AttrReadNone},
	{OpEvalCentroid, "EvalCentroid", ClassEvalCentroid, oH | oF, ir.AttrReadNone},

	// Compute shader
	{OpThreadId, "ThreadId", ClassThreadId, oI32, ir.AttrReadNone},
	{OpGroupId, "GroupId", ClassGroupId, oI32, ir.AttrReadNone},
	{OpThreadIdInGroup, "ThreadIdInGroup", ClassThreadIdInGroup, oI32, ir.AttrReadNone},
	{OpFlattenedThreadIdInGroup, "FlattenedThreadIdInGroup", ClassFlattenedThreadIdInGroup, oI32, ir.AttrReadNone},

	// Geometry shader
	{OpEmitStream, "EmitStream", ClassEmitStream, oV, ir.AttrNone},
	{OpCutStream, "CutStream", ClassCutStream, oV, ir.AttrNone},
	{OpEmitThenCutStream, "EmitThenCutStream", ClassEmitThenCutStream, oV, ir.AttrNone},

	// Double precision
	{OpMakeDouble, "MakeDouble", ClassMakeDouble, oD, ir.AttrReadNone},

	{OpToDelete1, "ToDelete1", ClassReserved, oV, ir.AttrNone},
	{OpToDelete2, "ToDelete2", ClassReserved, oV, ir.AttrNone},

	// Double precision
	{OpSplitDouble, "SplitDouble", ClassSplitDouble, oD, ir.AttrReadNone},

	{OpToDelete3, "ToDelete3", ClassReserved, oV, ir.AttrNone},
	{OpToDelete4, "ToDelete4", ClassReserved, oV, ir.AttrNone},

	// Domain and hull shader
	{OpLoadOutputControlPoint, "LoadOutputControlPoint", ClassLoadOutputControlPoint, oH | oF | oI16 | oI32, ir.AttrReadNone},
	{OpLoadPatchConstant, "LoadPatchConstant", ClassLoadPatchConstant, oH | oF | oI16 | oI32, ir.AttrReadNone},

	// Domain shader
	{OpDomainLocation, "DomainLocation", ClassDomainLocation, oF, ir.AttrReadNone},

	// Hull shader
	{OpStorePatchConstant, "StorePatchConstant", ClassStorePatchConstant, oH | oF | oI16 | oI32, ir.AttrNone},
	{OpOutputControlPointID, "OutputControlPointID", ClassOutputControlPointID, oI32, ir.AttrReadNone},
	{OpPrimitiveID, "PrimitiveID", ClassPrimitiveID, oI32, ir.AttrReadNone},

	// Other
	{OpCycleCounterLegacy, "CycleCounterLegacy", ClassCycleCounterLegacy, oV, ir.AttrReadNone},

	// Unary float
	{OpHtan, "Htan", ClassUnary, oH | oF, ir.AttrReadNone},

	// Wave
	{OpWaveCaptureReserved, "WaveCaptureReserved", ClassReserved, oV, ir.AttrNone},
	{OpWaveIsFirstLane, "WaveIsFirstLane", ClassWaveIsFirstLane, oV, ir.AttrReadOnly},
	{OpWaveGetLaneIndex, "WaveGetLaneIndex", ClassWaveGetLaneIndex, oV, ir.AttrReadOnly},
	{OpWaveGetLaneCount, "WaveGetLaneCount", ClassWaveGetLaneCount, oV, ir.AttrReadOnly},
	{OpWaveIsHelperLaneReserved, "WaveIsHelperLaneReserved", ClassReserved, oV, ir.AttrNone},
	{OpWaveAnyTrue, "WaveAnyTrue", ClassWaveAnyTrue, oV, ir.AttrReadOnly},
	{OpWaveAllTrue, "WaveAllTrue", ClassWaveAllTrue, oV, ir.AttrReadOnly},
	{OpWaveActiveAllEqual, "WaveActiveAllEqual", ClassWaveActiveAllEqual, oH | oF | oD | oI1 | oI8 | oI16 | oI32 | oI64, ir.AttrReadOnly},
	{OpWaveActiveBallot, "WaveActiveBallot", ClassWaveActiveBallot, oV, ir.AttrReadOnly},
	{OpWaveReadLaneAt, "WaveReadLaneAt", ClassWaveReadLaneAt, oH | oF | oD | oI1 | oI8 | oI16 | oI32 | oI64, ir.AttrReadOnly},
	{OpWaveReadLaneFirst, "WaveReadLaneFirst", ClassWaveReadLaneFirst, oH | oF | oI1 | oI8 | oI16 | oI32 | oI64, ir.AttrReadOnly},
	{OpWaveActiveOp, "WaveActiveOp", ClassWaveActiveOp, oH | oF | oD | oI1 | oI8 | oI16 | oI32 | oI64, ir.AttrReadOnly},
	{OpWaveActiveBit, "WaveActiveBit", ClassWaveActiveBit, oI8 | oI16 | oI32 | oI64, ir.AttrReadOnly},
	{OpWavePrefixOp, "WavePrefixOp", ClassWavePrefixOp, oH | oF | oD | oI8 | oI16 | oI32 | oI64, ir.AttrReadOnly},
	{OpWaveGetOrderedIndex, "WaveGetOrderedIndex", ClassReserved, oV, ir.AttrNone},

	{OpGlobalOrderedCountIncReserved, "GlobalOrderedCountIncReserved", ClassReserved, oV, ir.AttrNone},

	// Wave
	{OpQuadReadLaneAt, "QuadReadLaneAt", ClassQuadReadLaneAt, oH | oF | oD | oI1 | oI8 | oI16 | oI32 | oI64, ir.AttrReadOnly},
	{OpQuadOp, "QuadOp", ClassQuadOp, oH | oF | oD | oI8 | oI16 | oI32 | oI64, ir.AttrReadOnly},

	// Bitcasts with different sizes
	{OpBitcastI16toF16, "BitcastI16toF16", ClassBitcastI16toF16, oV, ir.AttrReadNone},
	{OpBitcastF16toI16, "BitcastF16toI16", ClassBitcastF16toI16, oV, ir.AttrReadNone},
	{OpBitcastI32toF32, "BitcastI32toF32", ClassBitcastI32toF32, oV, ir.AttrReadNone},
	{OpBitcastF32toI32, "BitcastF32toI32", ClassBitcastF32toI32, oV, ir.AttrReadNone},
	{OpBitcastI64toF64, "BitcastI64toF64", ClassBitcastI64toF64, oV, ir.AttrReadNone},
	{OpBitcastF64toI64, "BitcastF64toI64", ClassBitcastF64toI64, oV, ir.AttrReadNone},

	// GS
	{OpGSInstanceID, "GSInstanceID", ClassGSInstanceID, oI32, ir.AttrReadNone},

	// Legacy floating-point
	{OpLegacyF32ToF16, "LegacyF32ToF16", ClassLegacyF32ToF16, oV, ir.AttrReadNone},
	{OpLegacyF16ToF32, "LegacyF16ToF32", ClassLegacyF16ToF32, oV, ir.AttrReadNone},

	// Double precision
	{OpLegacyDoubleToFloat, "LegacyDoubleToFloat", ClassLegacyDoubleToFloat, oV, ir.AttrReadNone},
	{OpLegacyDoubleToSInt32, "LegacyDoubleToSInt32", ClassLegacyDoubleToSInt32, oV, ir.AttrReadNone},
	{OpLegacyDoubleToUInt32, "LegacyDoubleToUInt32", ClassLegacyDoubleToUInt32, oV, ir.AttrReadNone},

	// Wave
	{OpWaveAllBitCount, "WaveAllBitCount", ClassWaveAllOp, oV, ir.AttrReadOnly},
	{OpWavePrefixBitCount, "WavePrefixBitCount", ClassWavePrefixOp, oV, ir.AttrReadOnly},

	// Pixel shader
	{OpSampleIndex, "SampleIndex", ClassSampleIndex, oI32, ir.AttrReadNone},
	{OpCoverage, "Coverage", ClassCoverage, oI32, ir.AttrReadNone},
	{OpInnerCoverage, "InnerCoverage", ClassInnerCoverage, oI32, ir.AttrReadNone},
}

var opCodeByName = func() map[string]OpCode {
	m := make(map[string]OpCode, NumOpCodes)
	for _, p := range opCodeProps {
		m[p.Name] = p.OpCode
	}
	return m
}()

func mustProperty(op OpCode) *OpCodeProperty {
	if op >= NumOpCodes {
		panic(internalf(diag.DxilOpCodeOutOfRange, fmt.Sprintf("opcode %d", uint32(op)),
			"opcode out of range [0,%d)", NumOpCodes))
	}
	return &opCodeProps[op]
}

// Property returns the catalog row for op. Out-of-range opcodes panic.
func Property(op OpCode) OpCodeProperty {
	return *mustProperty(op)
}

// Name returns the display name, e.g. "FAbs".
func (op OpCode) Name() string { return mustProperty(op).Name }

// Class returns the opcode class.
func (op OpCode) Class() OpCodeClass { return mustProperty(op).Class }

// ClassName returns the class name used in declaration names, e.g. "unary".
func (op OpCode) ClassName() string { return mustProperty(op).ClassName() }

// Overloads returns the legal overload mask.
func (op OpCode) Overloads() OverloadMask { return mustProperty(op).Overloads }

// Attr returns the purity attribute.
func (op OpCode) Attr() ir.Attribute { return mustProperty(op).Attr }

func (op OpCode) String() string {
	if op >= NumOpCodes {
		return fmt.Sprintf("OpCode(%d)", uint32(op))
	}
	return opCodeProps[op].Name
}

func (c OpCodeClass) String() string {
	if c >= NumOpCodeClasses {
		return fmt.Sprintf("OpCodeClass(%d)", uint16(c))
	}
	return opCodeClassNames[c]
}

// OpCodeByName finds an opcode by display name. Matching is exact first,
// then case-insensitive.
func OpCodeByName(name string) (OpCode, bool) {
	if op, ok := opCodeByName[name]; ok {
		return op, true
	}
	for _, p := range opCodeProps {
		if strings.EqualFold(p.Name, name) {
			return p.OpCode, true
		}
	}
	return 0, false
}

// OpCodeFromInt converts an ordinal, reporting false when out of range.
func OpCodeFromInt(v int) (OpCode, bool) {
	u, err := safecast.Conv[uint32](v)
	if err != nil || OpCode(u) >= NumOpCodes {
		return 0, false
	}
	return OpCode(u), true
}

// OpCodes returns every opcode in ordinal order.
func OpCodes() []OpCode {
	out := make([]OpCode, NumOpCodes)
	for i := range out {
		out[i] = opCodeProps[i].OpCode
	}
	return out
}

// CheckOpCodeTable verifies the static tables: every row describes its own
// ordinal, every opcode has a shape row starting with the selector, and
// opcodes of one class agree on the shape wherever their overloads overlap
// (they share declarations, so a disagreement would alias two signatures).
func CheckOpCodeTable() error {
	for i := range opCodeProps {
		if int(opCodeProps[i].OpCode) != i {
			return internalf(diag.DxilCatalogOrder, opCodeProps[i].Name,
				"row %d describes opcode %d", i, opCodeProps[i].OpCode)
		}
	}
	if err := checkShapeTable(); err != nil {
		return err
	}
	var owner [NumOpCodeClasses][NumTypeSlots]*OpCodeProperty
	for i := range opCodeProps {
		p := &opCodeProps[i]
		for _, s := range p.Overloads.Slots() {
			prev := owner[p.Class][s]
			if prev == nil {
				owner[p.Class][s] = p
				continue
			}
			if !opShapes[prev.OpCode].Equal(opShapes[p.OpCode]) {
				return internalf(diag.DxilShapeConflict, p.ClassName()+"."+s.String(),
					"%s and %s share a declaration but differ in shape", prev.Name, p.Name)
			}
			if prev.Attr != p.Attr {
				return internalf(diag.DxilShapeConflict, p.ClassName()+"."+s.String(),
					"%s and %s share a declaration but differ in attributes", prev.Name, p.Name)
			}
		}
	}
	return nil
}
