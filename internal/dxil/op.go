package dxil

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/diag"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/ir"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/trace"
)

const (
	// OpFuncPrefix starts every operation declaration name.
	OpFuncPrefix = "dx.op."
	// TypePrefix starts every aggregate type name.
	TypePrefix = "dx.types."
)

// Unit is the compilation unit a registry declares into. Lookups are by
// exact name; the create methods always create.
type Unit interface {
	Context() *ir.Context
	NamedStruct(name string) (ir.TypeID, bool)
	CreateNamedStruct(name string, fields []ir.TypeID) ir.TypeID
	Function(name string) (*ir.Function, bool)
	DeclareFunction(name string, fnType ir.TypeID) *ir.Function
}

var _ Unit = (*ir.Module)(nil)

// OP hands out one declaration per (class, overload) and the canonical
// aggregate types of a unit. It is not safe for concurrent use.
type OP struct {
	unit   Unit
	ctx    *ir.Context
	tracer trace.Tracer

	handle      ir.TypeID
	dimensions  ir.TypeID
	samplePos   ir.TypeID
	carry       ir.TypeID
	twoI32      ir.TypeID
	splitDouble ir.TypeID
	fourI32     ir.TypeID

	resRet  [NumTypeSlots]ir.TypeID
	cbufRet [NumTypeSlots]ir.TypeID
	funcs   [NumOpCodeClasses][NumTypeSlots]*ir.Function
}

// Option configures a registry.
type Option func(*OP)

// WithTracer reports symbol and type creation to t at ScopeSymbol.
func WithTracer(t trace.Tracer) Option {
	return func(o *OP) {
		if t != nil {
			o.tracer = t
		}
	}
}

// New binds a registry to unit and materializes the fixed aggregate types,
// reusing any the unit already defines.
func New(unit Unit, opts ...Option) *OP {
	o := &OP{unit: unit, ctx: unit.Context(), tracer: trace.Nop}
	for _, opt := range opts {
		opt(o)
	}
	b := o.ctx.Builtins()
	o.handle = o.namedStruct(TypePrefix+"Handle", o.ctx.PointerTo(b.I8))
	o.dimensions = o.namedStruct(TypePrefix+"Dimensions", b.I32, b.I32, b.I32, b.I32)
	o.samplePos = o.namedStruct(TypePrefix+"SamplePos", b.Float, b.Float)
	o.carry = o.namedStruct(TypePrefix+"i32c", b.I32, b.I1)
	o.twoI32 = o.namedStruct(TypePrefix+"twoi32", b.I32, b.I32)
	o.splitDouble = o.namedStruct(TypePrefix+"splitdouble", b.I32, b.I32)
	o.fourI32 = o.namedStruct(TypePrefix+"fouri32", b.I32, b.I32, b.I32, b.I32)
	return o
}

// Unit returns the unit the registry declares into.
func (o *OP) Unit() Unit { return o.unit }

func (o *OP) HandleType() ir.TypeID               { return o.handle }
func (o *OP) DimensionsType() ir.TypeID           { return o.dimensions }
func (o *OP) SamplePosType() ir.TypeID            { return o.samplePos }
func (o *OP) BinaryWithCarryType() ir.TypeID      { return o.carry }
func (o *OP) BinaryWithTwoOutputsType() ir.TypeID { return o.twoI32 }
func (o *OP) SplitDoubleType() ir.TypeID          { return o.splitDouble }
func (o *OP) Int4Type() ir.TypeID                 { return o.fourI32 }

// ResRetType returns { elem, elem, elem, elem, i32 } named
// dx.types.ResRet.<overload>.
func (o *OP) ResRetType(elem ir.TypeID) ir.TypeID {
	s := o.elemSlot(elem, "ResRet")
	if o.resRet[s] == ir.NoTypeID {
		i32 := o.ctx.Builtins().I32
		o.resRet[s] = o.namedStruct(TypePrefix+"ResRet."+s.String(), elem, elem, elem, elem, i32)
	}
	return o.resRet[s]
}

// CBufferRetType returns the legacy constant buffer row type: two doubles
// for f64, four elements otherwise. Named dx.types.CBufRet.<overload>.
func (o *OP) CBufferRetType(elem ir.TypeID) ir.TypeID {
	s := o.elemSlot(elem, "CBufRet")
	if o.cbufRet[s] == ir.NoTypeID {
		name := TypePrefix + "CBufRet." + s.String()
		if s == SlotF64 {
			o.cbufRet[s] = o.namedStruct(name, elem, elem)
		} else {
			o.cbufRet[s] = o.namedStruct(name, elem, elem, elem, elem)
		}
	}
	return o.cbufRet[s]
}

func (o *OP) elemSlot(elem ir.TypeID, what string) TypeSlot {
	s := SlotOfID(o.ctx, elem)
	if s == SlotInvalid || s == SlotVoid {
		panic(internalf(diag.DxilIllegalOverload, what,
			"element type %s has no overload slot", o.ctx.TypeString(elem)))
	}
	return s
}

func (o *OP) namedStruct(name string, fields ...ir.TypeID) ir.TypeID {
	if id, ok := o.unit.NamedStruct(name); ok {
		trace.Point(o.tracer, trace.ScopeSymbol, "type.adopt", name)
		return id
	}
	id := o.unit.CreateNamedStruct(name, fields)
	trace.Point(o.tracer, trace.ScopeSymbol, "type.create", name)
	return id
}

// IsOverloadLegal reports whether overload names a legal slot for op in this
// registry's type context.
func (o *OP) IsOverloadLegal(op OpCode, overload ir.TypeID) bool {
	t, ok := o.ctx.Lookup(overload)
	return ok && IsOverloadLegal(op, t)
}

func (o *OP) mustSlot(op OpCode, overload ir.TypeID) TypeSlot {
	p := mustProperty(op)
	s := SlotOfID(o.ctx, overload)
	if !p.Overloads.Has(s) {
		panic(internalf(diag.DxilIllegalOverload, p.Name,
			"overload %s is not legal (allowed: %s)", o.ctx.TypeString(overload), p.Overloads))
	}
	return s
}

// Signature resolves the shape of op for overload. The overload must be
// legal for op.
func (o *OP) Signature(op OpCode, overload ir.TypeID) (result ir.TypeID, params []ir.TypeID) {
	o.mustSlot(op, overload)
	shape := opShapes[op]
	result = o.resolve(shape.Result, overload)
	params = make([]ir.TypeID, len(shape.Params))
	for i, k := range shape.Params {
		params[i] = o.resolve(k, overload)
	}
	return result, params
}

func (o *OP) resolve(k ArgKind, overload ir.TypeID) ir.TypeID {
	b := o.ctx.Builtins()
	switch k {
	case ArgOverload:
		return overload
	case ArgSelector, ArgI32:
		return b.I32
	case ArgVoid:
		return b.Void
	case ArgI1:
		return b.I1
	case ArgI8:
		return b.I8
	case ArgI16:
		return b.I16
	case ArgI64:
		return b.I64
	case ArgF16:
		return b.Half
	case ArgF32:
		return b.Float
	case ArgF64:
		return b.Double
	case ArgF32Ptr:
		return o.ctx.PointerTo(b.Float)
	case ArgHandle:
		return o.handle
	case ArgDimensions:
		return o.dimensions
	case ArgSamplePos:
		return o.samplePos
	case ArgCarryPair:
		return o.carry
	case ArgTwoI32:
		return o.twoI32
	case ArgSplitDouble:
		return o.splitDouble
	case ArgFourI32:
		return o.fourI32
	case ArgResRet:
		return o.ResRetType(overload)
	case ArgCBufRet:
		return o.CBufferRetType(overload)
	}
	panic(internalf(diag.DxilMissingShape, k.String(), "unknown argument kind"))
}

// OpFuncName returns the declaration name for op at slot s.
func OpFuncName(op OpCode, s TypeSlot) string {
	name := OpFuncPrefix + op.ClassName()
	if s != SlotVoid {
		name += "." + s.String()
	}
	return name
}

// GetOpFunc returns the declaration for op at overload, creating it on first
// use. Opcodes of one class share the declaration. A declaration the unit
// already holds under the same name is adopted rather than duplicated.
func (o *OP) GetOpFunc(op OpCode, overload ir.TypeID) *ir.Function {
	s := o.mustSlot(op, overload)
	p := &opCodeProps[op]
	if f := o.funcs[p.Class][s]; f != nil {
		return f
	}
	name := OpFuncName(op, s)
	if f, ok := o.unit.Function(name); ok {
		o.funcs[p.Class][s] = f
		trace.Point(o.tracer, trace.ScopeSymbol, "symbol.adopt", name, trace.F("op", p.Name))
		return f
	}
	result, params := o.Signature(op, overload)
	f := o.unit.DeclareFunction(name, o.ctx.RegisterFn(params, result))
	f.CallConv = ir.CallConvC
	f.AddAttr(ir.AttrNoUnwind)
	f.AddAttr(p.Attr)
	o.funcs[p.Class][s] = f
	trace.Point(o.tracer, trace.ScopeSymbol, "symbol.create", name,
		trace.F("op", p.Name), trace.F("attr", p.Attr.String()))
	return f
}

// Call builds a call to the declaration of op at overload. The selector is
// bound to operand 0; args are the remaining operands.
func (o *OP) Call(op OpCode, overload ir.TypeID, args ...ir.Value) (*ir.Call, error) {
	f := o.GetOpFunc(op, overload)
	operands := make([]ir.Value, 0, len(args)+1)
	operands = append(operands, o.OpCodeConst(op))
	operands = append(operands, args...)
	call, err := ir.NewCall(o.ctx, f, operands...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op.Name(), err)
	}
	return call, nil
}

func (o *OP) intConst(ty ir.TypeID, bits uint16, v uint64) *ir.ConstInt {
	if bits < 64 {
		v &= 1<<bits - 1
	}
	return &ir.ConstInt{Ty: ty, Bits: bits, Val: v}
}

func (o *OP) I1Const(v bool) *ir.ConstInt {
	var n uint64
	if v {
		n = 1
	}
	return o.intConst(o.ctx.Builtins().I1, 1, n)
}

func (o *OP) I8Const(v int8) *ir.ConstInt {
	return o.intConst(o.ctx.Builtins().I8, 8, uint64(v)) //nolint:gosec // masked to width
}

func (o *OP) U8Const(v uint8) *ir.ConstInt {
	return o.intConst(o.ctx.Builtins().I8, 8, uint64(v))
}

func (o *OP) I16Const(v int16) *ir.ConstInt {
	return o.intConst(o.ctx.Builtins().I16, 16, uint64(v)) //nolint:gosec // masked to width
}

func (o *OP) U16Const(v uint16) *ir.ConstInt {
	return o.intConst(o.ctx.Builtins().I16, 16, uint64(v))
}

func (o *OP) I32Const(v int32) *ir.ConstInt {
	return o.intConst(o.ctx.Builtins().I32, 32, uint64(v)) //nolint:gosec // masked to width
}

func (o *OP) U32Const(v uint32) *ir.ConstInt {
	return o.intConst(o.ctx.Builtins().I32, 32, uint64(v))
}

func (o *OP) U64Const(v uint64) *ir.ConstInt {
	return o.intConst(o.ctx.Builtins().I64, 64, v)
}

func (o *OP) FloatConst(v float32) *ir.ConstFloat {
	return &ir.ConstFloat{Ty: o.ctx.Builtins().Float, Kind: ir.KindFloat, Val: float64(v)}
}

func (o *OP) DoubleConst(v float64) *ir.ConstFloat {
	return &ir.ConstFloat{Ty: o.ctx.Builtins().Double, Kind: ir.KindDouble, Val: v}
}

// OpCodeConst returns the i32 selector for op.
func (o *OP) OpCodeConst(op OpCode) *ir.ConstInt {
	mustProperty(op)
	v, err := safecast.Conv[int32](uint32(op))
	if err != nil {
		panic(internalf(diag.DxilOpCodeOutOfRange, op.String(), "selector overflows i32: %v", err))
	}
	return o.I32Const(v)
}
