package ir

import (
	"slices"
	"strings"
)

// CallConv is the calling convention of a declaration.
type CallConv uint8

const (
	CallConvC CallConv = iota
	CallConvFast
)

func (cc CallConv) String() string {
	switch cc {
	case CallConvC:
		return "ccc"
	case CallConvFast:
		return "fastcc"
	default:
		return "cc?"
	}
}

// Attribute is a function attribute.
type Attribute uint8

const (
	AttrNone Attribute = iota
	AttrReadNone
	AttrReadOnly
	AttrNoUnwind
)

func (a Attribute) String() string {
	switch a {
	case AttrNone:
		return "none"
	case AttrReadNone:
		return "readnone"
	case AttrReadOnly:
		return "readonly"
	case AttrNoUnwind:
		return "nounwind"
	default:
		return "attr?"
	}
}

// Function is a function declaration owned by a Module.
type Function struct {
	Name     string
	Type     TypeID
	CallConv CallConv
	attrs    []Attribute
}

// AddAttr attaches a function attribute; AttrNone and duplicates are ignored.
func (f *Function) AddAttr(a Attribute) {
	if a == AttrNone || f.HasAttr(a) {
		return
	}
	f.attrs = append(f.attrs, a)
	slices.Sort(f.attrs)
}

// HasAttr reports whether the attribute is attached.
func (f *Function) HasAttr(a Attribute) bool {
	return slices.Contains(f.attrs, a)
}

// Attrs returns a copy of the attached attributes in canonical order.
func (f *Function) Attrs() []Attribute {
	return slices.Clone(f.attrs)
}

func (f *Function) attrKey() string {
	parts := make([]string, 0, len(f.attrs))
	for _, a := range f.attrs {
		if a == AttrNoUnwind {
			parts = append([]string{a.String()}, parts...)
			continue
		}
		parts = append(parts, a.String())
	}
	return strings.Join(parts, " ")
}
