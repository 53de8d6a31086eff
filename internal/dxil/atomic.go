package dxil

import (
	"fmt"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/diag"
)

// AtomicBinOpCode is the operation selector of AtomicBinOp.
type AtomicBinOpCode uint32

const (
	AtomicAdd AtomicBinOpCode = iota
	AtomicAnd
	AtomicOr
	AtomicXor
	AtomicIMin
	AtomicIMax
	AtomicUMin
	AtomicUMax
	AtomicInvalid // must be last
)

var atomicOpNames = [AtomicInvalid + 1]string{
	"AtomicAdd",
	"AtomicAnd",
	"AtomicOr",
	"AtomicXor",
	"AtomicIMin",
	"AtomicIMax",
	"AtomicUMin",
	"AtomicUMax",
	"AtomicInvalid",
}

// AtomicOpName returns the display name of k. Kinds past AtomicInvalid panic.
func AtomicOpName(k AtomicBinOpCode) string {
	if k > AtomicInvalid {
		panic(internalf(diag.DxilAtomicOutOfRange, fmt.Sprintf("atomic %d", uint32(k)),
			"atomic op out of range [0,%d]", AtomicInvalid))
	}
	return atomicOpNames[k]
}

func (k AtomicBinOpCode) String() string {
	if k > AtomicInvalid {
		return fmt.Sprintf("AtomicBinOpCode(%d)", uint32(k))
	}
	return atomicOpNames[k]
}
