package ir

import (
	"fmt"
	"math"
	"slices"
	"strconv"
)

// Value is anything that can appear as a call operand.
type Value interface {
	Type() TypeID
	String() string
}

// ConstInt is an integer constant; Val holds the bits truncated to the type width.
type ConstInt struct {
	Ty   TypeID
	Bits uint16
	Val  uint64
}

func (c *ConstInt) Type() TypeID { return c.Ty }

func (c *ConstInt) String() string {
	if c.Bits == 1 {
		if c.Val != 0 {
			return "i1 true"
		}
		return "i1 false"
	}
	return fmt.Sprintf("i%d %d", c.Bits, c.Signed())
}

// Signed returns the value sign-extended from its width.
func (c *ConstInt) Signed() int64 {
	if c.Bits == 0 || c.Bits >= 64 {
		return int64(c.Val) //nolint:gosec // two's complement reinterpretation
	}
	shift := 64 - uint(c.Bits)
	return int64(c.Val<<shift) >> shift //nolint:gosec // two's complement reinterpretation
}

// ConstFloat is a floating-point constant.
type ConstFloat struct {
	Ty   TypeID
	Kind Kind
	Val  float64
}

func (c *ConstFloat) Type() TypeID { return c.Ty }

func (c *ConstFloat) String() string {
	name := "double"
	if c.Kind == KindFloat {
		name = "float"
	}
	return name + " 0x" + strconv.FormatUint(math.Float64bits(c.Val), 16)
}

// Param is an opaque SSA value of a given type, used by callers that build
// operands outside the registry. Create it with Module.Param so the type
// spelling is filled in.
type Param struct {
	Ty   TypeID
	Name string
	Text string
}

func (p *Param) Type() TypeID { return p.Ty }

func (p *Param) String() string {
	return p.Text + " %" + p.Name
}

// Call is a call instruction to a declared function.
type Call struct {
	Callee *Function
	Args   []Value
	result TypeID
}

// Type returns the result type of the call.
func (c *Call) Type() TypeID { return c.result }

func (c *Call) String() string {
	if c.Callee == nil {
		return "call <nil>"
	}
	s := "call @" + c.Callee.Name + "("
	for i, a := range c.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

// Operand returns the i-th argument or nil when out of range.
func (c *Call) Operand(i int) Value {
	if i < 0 || i >= len(c.Args) {
		return nil
	}
	return c.Args[i]
}

// NewCall builds a call to f whose operand types are checked against the
// declaration's function type in ctx.
func NewCall(ctx *Context, f *Function, args ...Value) (*Call, error) {
	if f == nil {
		return nil, fmt.Errorf("call to nil function")
	}
	info, ok := ctx.FnInfo(f.Type)
	if !ok {
		return nil, fmt.Errorf("%s: not a function type", f.Name)
	}
	if len(args) != len(info.Params) {
		return nil, fmt.Errorf("%s: expected %d operands, got %d", f.Name, len(info.Params), len(args))
	}
	for i, a := range args {
		if a == nil {
			return nil, fmt.Errorf("%s: operand %d is nil", f.Name, i)
		}
		if a.Type() != info.Params[i] {
			return nil, fmt.Errorf("%s: operand %d has type %s, want %s",
				f.Name, i, ctx.TypeString(a.Type()), ctx.TypeString(info.Params[i]))
		}
	}
	return &Call{Callee: f, Args: slices.Clone(args), result: info.Result}, nil
}
