// Package testkit checks structural invariants of units populated by the
// operation registry.
package testkit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/dxil"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/ir"
)

// CheckUnitInvariants runs the declaration invariants on a unit:
// 1) dx.op declarations and dx.types structs have unique names
// 2) every dx.op name is <prefix><class>[.<overload>] for a known class
// 3) the overload suffix is legal for at least one opcode of that class
// 4) the declaration takes the i32 selector first and matches the class arity
// 5) it carries nounwind, the C calling convention and the class purity
func CheckUnitInvariants(m *ir.Module) error {
	if m == nil {
		return fmt.Errorf("nil module")
	}
	ctx := m.Context()
	var errs []error

	structs := make(map[string]bool)
	for _, id := range m.StructTypes() {
		info, ok := ctx.StructInfo(id)
		if !ok {
			errs = append(errs, fmt.Errorf("struct type %d has no info", id))
			continue
		}
		if !strings.HasPrefix(info.Name, dxil.TypePrefix) {
			continue
		}
		if structs[info.Name] {
			errs = append(errs, fmt.Errorf("struct %s declared twice", info.Name))
		}
		structs[info.Name] = true
	}

	funcs := make(map[string]bool)
	for _, f := range m.Functions() {
		if !dxil.IsDxilOpFunc(f) {
			continue
		}
		if funcs[f.Name] {
			errs = append(errs, fmt.Errorf("%s declared twice", f.Name))
		}
		funcs[f.Name] = true
		if err := checkDeclaration(ctx, f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func checkDeclaration(ctx *ir.Context, f *ir.Function) error {
	op, err := classOf(f.Name)
	if err != nil {
		return err
	}
	info, ok := ctx.FnInfo(f.Type)
	if !ok {
		return fmt.Errorf("%s: type %s is not a function", f.Name, ctx.TypeString(f.Type))
	}
	want := len(dxil.SignatureOf(op).Params)
	if len(info.Params) != want {
		return fmt.Errorf("%s: %d params, class %s takes %d", f.Name, len(info.Params), op.ClassName(), want)
	}
	if info.Params[0] != ctx.Builtins().I32 {
		return fmt.Errorf("%s: first param is %s, want i32", f.Name, ctx.TypeString(info.Params[0]))
	}
	if f.CallConv != ir.CallConvC {
		return fmt.Errorf("%s: calling convention %s", f.Name, f.CallConv)
	}
	if !f.HasAttr(ir.AttrNoUnwind) {
		return fmt.Errorf("%s: missing nounwind", f.Name)
	}
	if a := op.Attr(); a != ir.AttrNone && !f.HasAttr(a) {
		return fmt.Errorf("%s: missing %s", f.Name, a)
	}
	return nil
}

// classOf maps a declaration name back to a representative opcode of its
// class that is legal at the encoded overload.
func classOf(name string) (dxil.OpCode, error) {
	rest := strings.TrimPrefix(name, dxil.OpFuncPrefix)
	class, suffix := rest, ""
	if i := strings.LastIndexByte(rest, '.'); i >= 0 {
		class, suffix = rest[:i], rest[i+1:]
	}
	slot := dxil.SlotVoid
	if suffix != "" {
		s, ok := dxil.SlotByName(suffix)
		if !ok || s == dxil.SlotVoid {
			return 0, fmt.Errorf("%s: bad overload suffix %q", name, suffix)
		}
		slot = s
	}
	known := false
	for _, op := range dxil.OpCodes() {
		if op.ClassName() != class {
			continue
		}
		known = true
		if op.Overloads().Has(slot) {
			return op, nil
		}
	}
	if !known {
		return 0, fmt.Errorf("%s: unknown class %q", name, class)
	}
	return 0, fmt.Errorf("%s: no %s opcode is legal at %s", name, class, slot)
}
