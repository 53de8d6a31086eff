package ir

import "fmt"

// TypeID uniquely identifies a type inside a Context.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates the type shapes the IR understands.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindHalf
	KindFloat
	KindDouble
	KindInt
	KindPointer
	KindVector
	KindStruct
	KindFn
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindHalf:
		return "half"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindInt:
		return "int"
	case KindPointer:
		return "pointer"
	case KindVector:
		return "vector"
	case KindStruct:
		return "struct"
	case KindFn:
		return "fn"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind    Kind
	Bits    uint16 // integer width
	Elem    TypeID // pointee or vector element
	Count   uint32 // vector lanes
	Payload uint32 // struct/fn metadata slot
}

// IsFloatingPoint reports whether the descriptor is half, float or double.
func (t Type) IsFloatingPoint() bool {
	return t.Kind == KindHalf || t.Kind == KindFloat || t.Kind == KindDouble
}

// IsInteger reports whether the descriptor is an integer of any width.
func (t Type) IsInteger() bool {
	return t.Kind == KindInt
}

// Descriptor helpers ---------------------------------------------------------

// MakeInt describes an integer of the given bit width.
func MakeInt(bits uint16) Type {
	return Type{Kind: KindInt, Bits: bits}
}

// MakePointer describes a pointer to elem.
func MakePointer(elem TypeID) Type {
	return Type{Kind: KindPointer, Elem: elem}
}

// MakeVector describes a fixed vector of count lanes.
func MakeVector(elem TypeID, count uint32) Type {
	return Type{Kind: KindVector, Elem: elem, Count: count}
}
