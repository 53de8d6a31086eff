package ir

import (
	"fmt"
	"slices"
)

// Module is a compilation unit: it owns named struct types and function
// declarations and resolves both by exact name.
type Module struct {
	Name    string
	ctx     *Context
	named   map[string]TypeID
	types   []TypeID
	funcs   map[string]*Function
	order   []*Function
	renames int
}

// NewModule creates an empty unit over ctx. A nil ctx gets a fresh Context.
func NewModule(name string, ctx *Context) *Module {
	if ctx == nil {
		ctx = NewContext()
	}
	return &Module{
		Name:  name,
		ctx:   ctx,
		named: make(map[string]TypeID, 16),
		funcs: make(map[string]*Function, 32),
	}
}

// Context returns the type context the module interns into.
func (m *Module) Context() *Context {
	return m.ctx
}

// NamedStruct looks up a struct type by exact name.
func (m *Module) NamedStruct(name string) (TypeID, bool) {
	id, ok := m.named[name]
	return id, ok
}

// CreateNamedStruct always creates a new struct type. When the name is taken
// the new type gets a numeric suffix, so callers that want uniquing must
// probe NamedStruct first.
func (m *Module) CreateNamedStruct(name string, fields []TypeID) TypeID {
	unique := m.uniqueName(name, func(n string) bool { _, ok := m.named[n]; return ok })
	id := m.ctx.RegisterStruct(unique, fields)
	m.named[unique] = id
	m.types = append(m.types, id)
	return id
}

// Function looks up a declaration by exact name.
func (m *Module) Function(name string) (*Function, bool) {
	f, ok := m.funcs[name]
	return f, ok
}

// DeclareFunction always creates a new declaration; a taken name gets a
// numeric suffix.
func (m *Module) DeclareFunction(name string, fnType TypeID) *Function {
	if _, ok := m.ctx.FnInfo(fnType); !ok {
		panic(fmt.Errorf("ir: %s declared with non-function type %s", name, m.ctx.TypeString(fnType)))
	}
	unique := m.uniqueName(name, func(n string) bool { _, ok := m.funcs[n]; return ok })
	f := &Function{Name: unique, Type: fnType, CallConv: CallConvC}
	m.funcs[unique] = f
	m.order = append(m.order, f)
	return f
}

// Functions returns declarations in creation order.
func (m *Module) Functions() []*Function {
	return slices.Clone(m.order)
}

// StructTypes returns named struct types in creation order.
func (m *Module) StructTypes() []TypeID {
	return slices.Clone(m.types)
}

// Param creates an opaque operand of type ty.
func (m *Module) Param(name string, ty TypeID) *Param {
	return &Param{Ty: ty, Name: name, Text: m.ctx.TypeString(ty)}
}

// NewCall builds a call to f, checking operand count and types against the
// declaration.
func (m *Module) NewCall(f *Function, args ...Value) (*Call, error) {
	return NewCall(m.ctx, f, args...)
}

func (m *Module) uniqueName(name string, taken func(string) bool) string {
	if !taken(name) {
		return name
	}
	for {
		candidate := fmt.Sprintf("%s.%d", name, m.renames)
		m.renames++
		if !taken(candidate) {
			return candidate
		}
	}
}
