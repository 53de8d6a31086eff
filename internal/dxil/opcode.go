package dxil

// OpCode identifies one DXIL operation. Values are the ISA ordinals and are
// passed as the first argument of every dx.op call.
type OpCode uint32

const (
	// Temporary, indexable, input, output registers
	OpTempRegLoad OpCode = iota
	OpTempRegStore
	OpMinPrecXRegLoad
	OpMinPrecXRegStore
	OpLoadInput
	OpStoreOutput

	// Unary float
	OpFAbs
	OpSaturate
	OpIsNaN
	OpIsInf
	OpIsFinite
	OpIsNormal
	OpCos
	OpSin
	OpTan
	OpAcos
	OpAsin
	OpAtan
	OpHcos
	OpHsin
	OpExp
	OpFrc
	OpLog
	OpSqrt
	OpRsqrt

	// Unary float - rounding
	OpRoundNE
	OpRoundNI
	OpRoundPI
	OpRoundZ

	// Unary int
	OpBfrev
	OpCountbits
	OpFirstbitLo
	OpFirstbitHi
	OpFirstbitSHi

	// Binary float
	OpFMax
	OpFMin

	// Binary int
	OpIMax
	OpIMin
	OpUMax
	OpUMin

	// Binary int with two outputs
	OpIMul
	OpUMul
	OpUDiv

	// Binary int with carry
	OpIAddc
	OpUAddc
	OpISubc
	OpUSubc

	// Tertiary float
	OpFMad
	OpFma

	// Tertiary int
	OpIMad
	OpUMad
	OpMsad
	OpIbfe
	OpUbfe

	// Quaternary
	OpBfi

	// Dot
	OpDot2
	OpDot3
	OpDot4

	// Resources
	OpCreateHandle
	OpCBufferLoad
	OpCBufferLoadLegacy

	// Resources - sample
	OpSample
	OpSampleBias
	OpSampleLevel
	OpSampleGrad
	OpSampleCmp
	OpSampleCmpLevelZero

	// Resources
	OpTextureLoad
	OpTextureStore
	OpBufferLoad
	OpBufferStore
	OpBufferUpdateCounter
	OpCheckAccessFullyMapped
	OpGetDimensions

	// Resources - gather
	OpTextureGather
	OpTextureGatherCmp

	OpToDelete5
	OpToDelete6

	// Resources - sample
	OpTexture2DMSGetSamplePosition
	OpRenderTargetGetSamplePosition
	OpRenderTargetGetSampleCount

	// Synchronization
	OpAtomicBinOp
	OpAtomicCompareExchange
	OpBarrier

	// Pixel shader
	OpCalculateLOD
	OpDiscard
	OpDerivCoarseX
	OpDerivCoarseY
	OpDerivFineX
	OpDerivFineY
	OpEvalSnapped
	OpEvalSampleIndex
	OpEvalCentroid

	// Compute shader
	OpThreadId
	OpGroupId
	OpThreadIdInGroup
	OpFlattenedThreadIdInGroup

	// Geometry shader
	OpEmitStream
	OpCutStream
	OpEmitThenCutStream

	// Double precision
	OpMakeDouble

	OpToDelete1
	OpToDelete2

	// Double precision
	OpSplitDouble

	OpToDelete3
	OpToDelete4

	// Domain and hull shader
	OpLoadOutputControlPoint
	OpLoadPatchConstant

	// Domain shader
	OpDomainLocation

	// Hull shader
	OpStorePatchConstant
	OpOutputControlPointID
	OpPrimitiveID

	// Other
	OpCycleCounterLegacy

	// Unary float
	OpHtan

	// Wave
	OpWaveCaptureReserved
	OpWaveIsFirstLane
	OpWaveGetLaneIndex
	OpWaveGetLaneCount
	OpWaveIsHelperLaneReserved
	OpWaveAnyTrue
	OpWaveAllTrue
	OpWaveActiveAllEqual
	OpWaveActiveBallot
	OpWaveReadLaneAt
	OpWaveReadLaneFirst
	OpWaveActiveOp
	OpWaveActiveBit
	OpWavePrefixOp
	OpWaveGetOrderedIndex

	OpGlobalOrderedCountIncReserved

	// Wave
	OpQuadReadLaneAt
	OpQuadOp

	// Bitcasts with different sizes
	OpBitcastI16toF16
	OpBitcastF16toI16
	OpBitcastI32toF32
	OpBitcastF32toI32
	OpBitcastI64toF64
	OpBitcastF64toI64

	// GS
	OpGSInstanceID

	// Legacy floating-point
	OpLegacyF32ToF16
	OpLegacyF16ToF32

	// Double precision
	OpLegacyDoubleToFloat
	OpLegacyDoubleToSInt32
	OpLegacyDoubleToUInt32

	// Wave
	OpWaveAllBitCount
	OpWavePrefixBitCount

	// Pixel shader
	OpSampleIndex
	OpCoverage
	OpInnerCoverage

	NumOpCodes // sentinel
)

// OpCodeClass groups opcodes that share a declaration name and shape.
type OpCodeClass uint16

const (
	ClassTempRegLoad OpCodeClass = iota
	ClassTempRegStore
	ClassMinPrecXRegLoad
	ClassMinPrecXRegStore
	ClassLoadInput
	ClassStoreOutput
	ClassUnary
	ClassIsSpecialFloat
	ClassUnaryBits
	ClassBinary
	ClassBinaryWithTwoOuts
	ClassBinaryWithCarry
	ClassTertiary
	ClassQuaternary
	ClassDot2
	ClassDot3
	ClassDot4
	ClassCreateHandle
	ClassCBufferLoad
	ClassCBufferLoadLegacy
	ClassSample
	ClassSampleBias
	ClassSampleLevel
	ClassSampleGrad
	ClassSampleCmp
	ClassSampleCmpLevelZero
	ClassTextureLoad
	ClassTextureStore
	ClassBufferLoad
	ClassBufferStore
	ClassBufferUpdateCounter
	ClassCheckAccessFullyMapped
	ClassGetDimensions
	ClassTextureGather
	ClassTextureGatherCmp
	ClassReserved
	ClassTexture2DMSGetSamplePosition
	ClassRenderTargetGetSamplePosition
	ClassRenderTargetGetSampleCount
	ClassAtomicBinOp
	ClassAtomicCompareExchange
	ClassBarrier
	ClassCalculateLOD
	ClassDiscard
	ClassEvalSnapped
	ClassEvalSampleIndex
	ClassEvalCentroid
	ClassThreadId
	ClassGroupId
	ClassThreadIdInGroup
	ClassFlattenedThreadIdInGroup
	ClassEmitStream
	ClassCutStream
	ClassEmitThenCutStream
	ClassMakeDouble
	ClassSplitDouble
	ClassLoadOutputControlPoint
	ClassLoadPatchConstant
	ClassDomainLocation
	ClassStorePatchConstant
	ClassOutputControlPointID
	ClassPrimitiveID
	ClassCycleCounterLegacy
	ClassWaveIsFirstLane
	ClassWaveGetLaneIndex
	ClassWaveGetLaneCount
	ClassWaveAnyTrue
	ClassWaveAllTrue
	ClassWaveActiveAllEqual
	ClassWaveActiveBallot
	ClassWaveReadLaneAt
	ClassWaveReadLaneFirst
	ClassWaveActiveOp
	ClassWaveActiveBit
	ClassWavePrefixOp
	ClassQuadReadLaneAt
	ClassQuadOp
	ClassBitcastI16toF16
	ClassBitcastF16toI16
	ClassBitcastI32toF32
	ClassBitcastF32toI32
	ClassBitcastI64toF64
	ClassBitcastF64toI64
	ClassGSInstanceID
	ClassLegacyF32ToF16
	ClassLegacyF16ToF32
	ClassLegacyDoubleToFloat
	ClassLegacyDoubleToSInt32
	ClassLegacyDoubleToUInt32
	ClassWaveAllOp
	ClassSampleIndex
	ClassCoverage
	ClassInnerCoverage

	NumOpCodeClasses // sentinel
)

var opCodeClassNames = [NumOpCodeClasses]string{
	ClassTempRegLoad:                   "tempRegLoad",
	ClassTempRegStore:                  "tempRegStore",
	ClassMinPrecXRegLoad:               "minPrecXRegLoad",
	ClassMinPrecXRegStore:              "minPrecXRegStore",
	ClassLoadInput:                     "loadInput",
	ClassStoreOutput:                   "storeOutput",
	ClassUnary:                         "unary",
	ClassIsSpecialFloat:                "isSpecialFloat",
	ClassUnaryBits:                     "unaryBits",
	ClassBinary:                        "binary",
	ClassBinaryWithTwoOuts:             "binaryWithTwoOuts",
	ClassBinaryWithCarry:               "binaryWithCarry",
	ClassTertiary:                      "tertiary",
	ClassQuaternary:                    "quaternary",
	ClassDot2:                          "dot2",
	ClassDot3:                          "dot3",
	ClassDot4:                          "dot4",
	ClassCreateHandle:                  "createHandle",
	ClassCBufferLoad:                   "cbufferLoad",
	ClassCBufferLoadLegacy:             "cbufferLoadLegacy",
	ClassSample:                        "sample",
	ClassSampleBias:                    "sampleBias",
	ClassSampleLevel:                   "sampleLevel",
	ClassSampleGrad:                    "sampleGrad",
	ClassSampleCmp:                     "sampleCmp",
	ClassSampleCmpLevelZero:            "sampleCmpLevelZero",
	ClassTextureLoad:                   "textureLoad",
	ClassTextureStore:                  "textureStore",
	ClassBufferLoad:                    "bufferLoad",
	ClassBufferStore:                   "bufferStore",
	ClassBufferUpdateCounter:           "bufferUpdateCounter",
	ClassCheckAccessFullyMapped:        "checkAccessFullyMapped",
	ClassGetDimensions:                 "getDimensions",
	ClassTextureGather:                 "textureGather",
	ClassTextureGatherCmp:              "textureGatherCmp",
	ClassReserved:                      "reserved",
	ClassTexture2DMSGetSamplePosition:  "texture2DMSGetSamplePosition",
	ClassRenderTargetGetSamplePosition: "renderTargetGetSamplePosition",
	ClassRenderTargetGetSampleCount:    "renderTargetGetSampleCount",
	ClassAtomicBinOp:                   "atomicBinOp",
	ClassAtomicCompareExchange:         "atomicCompareExchange",
	ClassBarrier:                       "barrier",
	ClassCalculateLOD:                  "calculateLOD",
	ClassDiscard:                       "discard",
	ClassEvalSnapped:                   "evalSnapped",
	ClassEvalSampleIndex:               "evalSampleIndex",
	ClassEvalCentroid:                  "evalCentroid",
	ClassThreadId:                      "threadId",
	ClassGroupId:                       "groupId",
	ClassThreadIdInGroup:               "threadIdInGroup",
	ClassFlattenedThreadIdInGroup:      "flattenedThreadIdInGroup",
	ClassEmitStream:                    "emitStream",
	ClassCutStream:                     "cutStream",
	ClassEmitThenCutStream:             "emitThenCutStream",
	ClassMakeDouble:                    "makeDouble",
	ClassSplitDouble:                   "splitDouble",
	ClassLoadOutputControlPoint:        "loadOutputControlPoint",
	ClassLoadPatchConstant:             "loadPatchConstant",
	ClassDomainLocation:                "domainLocation",
	ClassStorePatchConstant:            "storePatchConstant",
	ClassOutputControlPointID:          "outputControlPointID",
	ClassPrimitiveID:                   "primitiveID",
	ClassCycleCounterLegacy:            "cycleCounterLegacy",
	ClassWaveIsFirstLane:               "waveIsFirstLane",
	ClassWaveGetLaneIndex:              "waveGetLaneIndex",
	ClassWaveGetLaneCount:              "waveGetLaneCount",
	ClassWaveAnyTrue:                   "waveAnyTrue",
	ClassWaveAllTrue:                   "waveAllTrue",
	ClassWaveActiveAllEqual:            "waveActiveAllEqual",
	ClassWaveActiveBallot:              "waveActiveBallot",
	ClassWaveReadLaneAt:                "waveReadLaneAt",
	ClassWaveReadLaneFirst:             "waveReadLaneFirst",
	ClassWaveActiveOp:                  "waveActiveOp",
	ClassWaveActiveBit:                 "waveActiveBit",
	ClassWavePrefixOp:                  "wavePrefixOp",
	ClassQuadReadLaneAt:                "quadReadLaneAt",
	ClassQuadOp:                        "quadOp",
	ClassBitcastI16toF16:               "bitcastI16toF16",
	ClassBitcastF16toI16:               "bitcastF16toI16",
	ClassBitcastI32toF32:               "bitcastI32toF32",
	ClassBitcastF32toI32:               "bitcastF32toI32",
	ClassBitcastI64toF64:               "bitcastI64toF64",
	ClassBitcastF64toI64:               "bitcastF64toI64",
	ClassGSInstanceID:                  "gsInstanceID",
	ClassLegacyF32ToF16:                "legacyF32ToF16",
	ClassLegacyF16ToF32:                "legacyF16ToF32",
	ClassLegacyDoubleToFloat:           "legacyDoubleToFloat",
	ClassLegacyDoubleToSInt32:          "legacyDoubleToSInt32",
	ClassLegacyDoubleToUInt32:          "legacyDoubleToUInt32",
	ClassWaveAllOp:                     "waveAllOp",
	ClassSampleIndex:                   "sampleIndex",
	ClassCoverage:                      "coverage",
	ClassInnerCoverage:                 "innerCoverage",
}
