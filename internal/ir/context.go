package ir

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive types.
type Builtins struct {
	Void   TypeID
	Half   TypeID
	Float  TypeID
	Double TypeID
	I1     TypeID
	I8     TypeID
	I16    TypeID
	I32    TypeID
	I64    TypeID
}

// StructInfo stores metadata for a named struct type.
type StructInfo struct {
	Name   string
	Fields []TypeID
}

// FnInfo stores metadata for function types.
type FnInfo struct {
	Params []TypeID
	Result TypeID
}

// Context interns type descriptors. Struct types are nominal: every
// RegisterStruct call allocates a fresh TypeID even for an existing name.
type Context struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
	structs  []StructInfo
	fns      []FnInfo
}

// NewContext constructs a context seeded with primitive types.
func NewContext() *Context {
	c := &Context{
		index: make(map[Type]TypeID, 32),
	}
	c.types = append(c.types, Type{}) // reserve 0 as NoTypeID
	c.structs = append(c.structs, StructInfo{})
	c.fns = append(c.fns, FnInfo{})
	c.builtins.Void = c.Intern(Type{Kind: KindVoid})
	c.builtins.Half = c.Intern(Type{Kind: KindHalf})
	c.builtins.Float = c.Intern(Type{Kind: KindFloat})
	c.builtins.Double = c.Intern(Type{Kind: KindDouble})
	c.builtins.I1 = c.Intern(MakeInt(1))
	c.builtins.I8 = c.Intern(MakeInt(8))
	c.builtins.I16 = c.Intern(MakeInt(16))
	c.builtins.I32 = c.Intern(MakeInt(32))
	c.builtins.I64 = c.Intern(MakeInt(64))
	return c
}

// Builtins returns TypeIDs for primitive types.
func (c *Context) Builtins() Builtins {
	return c.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (c *Context) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := c.index[t]; ok {
		return id
	}
	return c.internRaw(t)
}

func (c *Context) internRaw(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(c.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(n)
	c.types = append(c.types, t)
	c.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (c *Context) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(c.types) {
		return Type{}, false
	}
	return c.types[id], true
}

// MustLookup panics when id is invalid.
func (c *Context) MustLookup(id TypeID) Type {
	t, ok := c.Lookup(id)
	if !ok {
		panic("ir: invalid TypeID")
	}
	return t
}

// IntType returns the integer type of the given width.
func (c *Context) IntType(bits uint16) TypeID {
	return c.Intern(MakeInt(bits))
}

// PointerTo returns the pointer type to elem.
func (c *Context) PointerTo(elem TypeID) TypeID {
	return c.Intern(MakePointer(elem))
}

// VectorOf returns the vector type with count lanes of elem.
func (c *Context) VectorOf(elem TypeID, count uint32) TypeID {
	return c.Intern(MakeVector(elem, count))
}

// RegisterStruct allocates a new named struct type.
func (c *Context) RegisterStruct(name string, fields []TypeID) TypeID {
	c.structs = append(c.structs, StructInfo{Name: name, Fields: slices.Clone(fields)})
	slot, err := safecast.Conv[uint32](len(c.structs) - 1)
	if err != nil {
		panic(fmt.Errorf("struct info overflow: %w", err))
	}
	return c.internRaw(Type{Kind: KindStruct, Payload: slot})
}

// StructInfo returns metadata for the provided struct TypeID.
func (c *Context) StructInfo(id TypeID) (*StructInfo, bool) {
	t, ok := c.Lookup(id)
	if !ok || t.Kind != KindStruct {
		return nil, false
	}
	if t.Payload == 0 || int(t.Payload) >= len(c.structs) {
		return nil, false
	}
	return &c.structs[t.Payload], true
}

// RegisterFn creates or finds a function type.
func (c *Context) RegisterFn(params []TypeID, result TypeID) TypeID {
	for id := TypeID(1); int(id) < len(c.types); id++ {
		t := c.types[id]
		if t.Kind != KindFn || int(t.Payload) >= len(c.fns) {
			continue
		}
		info := c.fns[t.Payload]
		if info.Result == result && slices.Equal(info.Params, params) {
			return id
		}
	}
	c.fns = append(c.fns, FnInfo{Params: slices.Clone(params), Result: result})
	slot, err := safecast.Conv[uint32](len(c.fns) - 1)
	if err != nil {
		panic(fmt.Errorf("fn info overflow: %w", err))
	}
	return c.internRaw(Type{Kind: KindFn, Payload: slot})
}

// FnInfo retrieves function type metadata by TypeID.
func (c *Context) FnInfo(id TypeID) (*FnInfo, bool) {
	t, ok := c.Lookup(id)
	if !ok || t.Kind != KindFn {
		return nil, false
	}
	if t.Payload == 0 || int(t.Payload) >= len(c.fns) {
		return nil, false
	}
	return &c.fns[t.Payload], true
}

// TypeString renders the type the way it is spelled in textual IR.
func (c *Context) TypeString(id TypeID) string {
	t, ok := c.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindHalf:
		return "half"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindInt:
		return fmt.Sprintf("i%d", t.Bits)
	case KindPointer:
		return c.TypeString(t.Elem) + "*"
	case KindVector:
		return fmt.Sprintf("<%d x %s>", t.Count, c.TypeString(t.Elem))
	case KindStruct:
		info, ok := c.StructInfo(id)
		if !ok {
			return "<invalid>"
		}
		return "%" + info.Name
	case KindFn:
		info, ok := c.FnInfo(id)
		if !ok {
			return "<invalid>"
		}
		params := make([]string, len(info.Params))
		for i, p := range info.Params {
			params[i] = c.TypeString(p)
		}
		return fmt.Sprintf("%s (%s)", c.TypeString(info.Result), strings.Join(params, ", "))
	default:
		return "<invalid>"
	}
}

// StructBody renders the field list of a struct type: "{ float, i32 }".
func (c *Context) StructBody(id TypeID) string {
	info, ok := c.StructInfo(id)
	if !ok {
		return "{}"
	}
	fields := make([]string, len(info.Fields))
	for i, f := range info.Fields {
		fields[i] = c.TypeString(f)
	}
	return "{ " + strings.Join(fields, ", ") + " }"
}
