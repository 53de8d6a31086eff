// Package hlsl holds the shading-language value objects the operation
// registry consumes: scalar keywords and member-access descriptors.
package hlsl

import (
	"fmt"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/dxil"
)

// ScalarType is a scalar identified by a single keyword.
type ScalarType uint8

const (
	ScalarUnknown ScalarType = iota
	ScalarBool
	ScalarInt
	ScalarUint
	ScalarDword
	ScalarHalf
	ScalarFloat
	ScalarDouble
	ScalarFloatMin10
	ScalarFloatMin16
	ScalarIntMin12
	ScalarIntMin16
	ScalarUintMin16
	ScalarFloatLit
	ScalarIntLit
	ScalarInt64
	ScalarUint64

	NumScalarTypes
)

var scalarKeywords = [NumScalarTypes]string{
	ScalarUnknown:    "unknown",
	ScalarBool:       "bool",
	ScalarInt:        "int",
	ScalarUint:       "uint",
	ScalarDword:      "dword",
	ScalarHalf:       "half",
	ScalarFloat:      "float",
	ScalarDouble:     "double",
	ScalarFloatMin10: "min10float",
	ScalarFloatMin16: "min16float",
	ScalarIntMin12:   "min12int",
	ScalarIntMin16:   "min16int",
	ScalarUintMin16:  "min16uint",
	ScalarFloatLit:   "literal float",
	ScalarIntLit:     "literal int",
	ScalarInt64:      "int64_t",
	ScalarUint64:     "uint64_t",
}

func (s ScalarType) String() string {
	if s >= NumScalarTypes {
		return fmt.Sprintf("ScalarType(%d)", uint8(s))
	}
	return scalarKeywords[s]
}

// ScalarByKeyword resolves a keyword. Literal and unknown types have no
// keyword and are never returned.
func ScalarByKeyword(kw string) (ScalarType, bool) {
	for s := ScalarBool; s < NumScalarTypes; s++ {
		if s == ScalarFloatLit || s == ScalarIntLit {
			continue
		}
		if scalarKeywords[s] == kw {
			return s, true
		}
	}
	return ScalarUnknown, false
}

// Overload returns the operation overload slot a scalar lowers to.
// Minimum-precision types lower to their 16-bit forms; literals and unknown
// have no slot.
func (s ScalarType) Overload() dxil.TypeSlot {
	switch s {
	case ScalarBool:
		return dxil.SlotI1
	case ScalarInt, ScalarUint, ScalarDword:
		return dxil.SlotI32
	case ScalarHalf, ScalarFloatMin10, ScalarFloatMin16:
		return dxil.SlotF16
	case ScalarFloat:
		return dxil.SlotF32
	case ScalarDouble:
		return dxil.SlotF64
	case ScalarIntMin12, ScalarIntMin16, ScalarUintMin16:
		return dxil.SlotI16
	case ScalarInt64, ScalarUint64:
		return dxil.SlotI64
	default:
		return dxil.SlotInvalid
	}
}

// IsFloat reports whether s is a floating-point scalar.
func (s ScalarType) IsFloat() bool {
	switch s {
	case ScalarHalf, ScalarFloat, ScalarDouble, ScalarFloatMin10, ScalarFloatMin16, ScalarFloatLit:
		return true
	}
	return false
}

// IsUnsigned reports whether s is an unsigned integer scalar.
func (s ScalarType) IsUnsigned() bool {
	switch s {
	case ScalarUint, ScalarDword, ScalarUintMin16, ScalarUint64:
		return true
	}
	return false
}
