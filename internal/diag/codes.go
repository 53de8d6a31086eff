package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Registry defects
	DxilInfo             Code = 9000
	DxilOpCodeOutOfRange Code = 9001
	DxilIllegalOverload  Code = 9002
	DxilMissingShape     Code = 9003
	DxilCatalogOrder     Code = 9004
	DxilShapeConflict    Code = 9005
	DxilCallOperand      Code = 9006
	DxilAtomicOutOfRange Code = 9007

	// Snapshot / configuration
	SnapInfo         Code = 9100
	SnapSchema       Code = 9101
	SnapOpCodeCount  Code = 9102
	SnapEntryChanged Code = 9103
	CfgInvalid       Code = 9200
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	DxilInfo:             "Registry information",
	DxilOpCodeOutOfRange: "Opcode out of range",
	DxilIllegalOverload:  "Illegal overload for opcode",
	DxilMissingShape:     "No signature shape for opcode",
	DxilCatalogOrder:     "Catalog entry does not describe its own ordinal",
	DxilShapeConflict:    "Opcodes of one class disagree on a signature",
	DxilCallOperand:      "Call operand does not match declaration",
	DxilAtomicOutOfRange: "Atomic operation kind out of range",
	SnapInfo:             "Snapshot information",
	SnapSchema:           "Unsupported snapshot schema",
	SnapOpCodeCount:      "Snapshot opcode count differs",
	SnapEntryChanged:     "Snapshot entry differs from catalog",
	CfgInvalid:           "Invalid configuration",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 9000 && ic < 9100:
		return fmt.Sprintf("DXO%04d", ic)
	case ic >= 9100 && ic < 9200:
		return fmt.Sprintf("SNP%04d", ic)
	case ic >= 9200 && ic < 9300:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
