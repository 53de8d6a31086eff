package dxil

import (
	"math/bits"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/ir"
)

// TypeSlot is the overload ordinal of a primitive type.
type TypeSlot uint8

const (
	SlotVoid TypeSlot = iota
	SlotF16
	SlotF32
	SlotF64
	SlotI1
	SlotI8
	SlotI16
	SlotI32
	SlotI64

	NumTypeSlots
	SlotInvalid TypeSlot = 0xff
)

var overloadTypeNames = [NumTypeSlots]string{
	"void", "f16", "f32", "f64", "i1", "i8", "i16", "i32", "i64",
}

// String returns the overload name used as a declaration suffix.
func (s TypeSlot) String() string {
	if s >= NumTypeSlots {
		return "invalid"
	}
	return overloadTypeNames[s]
}

// SlotOf classifies a type descriptor. Anything that is not void, a
// half/float/double or an i1/i8/i16/i32/i64 yields SlotInvalid.
func SlotOf(t ir.Type) TypeSlot {
	switch t.Kind {
	case ir.KindVoid:
		return SlotVoid
	case ir.KindHalf:
		return SlotF16
	case ir.KindFloat:
		return SlotF32
	case ir.KindDouble:
		return SlotF64
	case ir.KindInt:
		switch t.Bits {
		case 1:
			return SlotI1
		case 8:
			return SlotI8
		case 16:
			return SlotI16
		case 32:
			return SlotI32
		case 64:
			return SlotI64
		}
	}
	return SlotInvalid
}

// SlotOfID classifies an interned type; unknown ids are SlotInvalid.
func SlotOfID(ctx *ir.Context, id ir.TypeID) TypeSlot {
	t, ok := ctx.Lookup(id)
	if !ok {
		return SlotInvalid
	}
	return SlotOf(t)
}

// SlotType returns the primitive type for a slot.
func SlotType(ctx *ir.Context, s TypeSlot) ir.TypeID {
	b := ctx.Builtins()
	switch s {
	case SlotVoid:
		return b.Void
	case SlotF16:
		return b.Half
	case SlotF32:
		return b.Float
	case SlotF64:
		return b.Double
	case SlotI1:
		return b.I1
	case SlotI8:
		return b.I8
	case SlotI16:
		return b.I16
	case SlotI32:
		return b.I32
	case SlotI64:
		return b.I64
	}
	return ir.NoTypeID
}

// SlotByName parses an overload name ("f32", "i1", "void", ...).
func SlotByName(name string) (TypeSlot, bool) {
	for i, n := range overloadTypeNames {
		if n == name {
			return TypeSlot(i), true //nolint:gosec // i < NumTypeSlots
		}
	}
	return SlotInvalid, false
}

// OverloadMask has bit s set when slot s is a legal overload.
type OverloadMask uint16

const (
	oV   OverloadMask = 1 << SlotVoid
	oH   OverloadMask = 1 << SlotF16
	oF   OverloadMask = 1 << SlotF32
	oD   OverloadMask = 1 << SlotF64
	oI1  OverloadMask = 1 << SlotI1
	oI8  OverloadMask = 1 << SlotI8
	oI16 OverloadMask = 1 << SlotI16
	oI32 OverloadMask = 1 << SlotI32
	oI64 OverloadMask = 1 << SlotI64
)

// Has reports whether slot s is legal. SlotInvalid is never legal.
func (m OverloadMask) Has(s TypeSlot) bool {
	if s >= NumTypeSlots {
		return false
	}
	return m&(1<<s) != 0
}

// Slots lists the legal slots in slot order.
func (m OverloadMask) Slots() []TypeSlot {
	out := make([]TypeSlot, 0, bits.OnesCount16(uint16(m)))
	for s := SlotVoid; s < NumTypeSlots; s++ {
		if m.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

// String renders the mask as overload names joined by '|'.
func (m OverloadMask) String() string {
	out := ""
	for _, s := range m.Slots() {
		if out != "" {
			out += "|"
		}
		out += s.String()
	}
	return out
}
