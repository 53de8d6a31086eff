package hlsl

import (
	"fmt"
	"strings"
)

const (
	maxPositions = 4
	maxIndex     = 3 // positions are 2-bit
	maxCount     = 7 // count is 3-bit
)

// VectorAccess describes a vector swizzle such as .xzy: up to four 2-bit
// component indices, a 3-bit count and a validity bit.
type VectorAccess struct {
	valid bool
	count uint8
	swz   [maxPositions]uint8
}

// IsValid reports whether the access was accepted.
func (v VectorAccess) IsValid() bool { return v.valid }

// Count returns the number of swizzle components.
func (v VectorAccess) Count() int { return int(v.count) }

// SetValid marks the access valid or invalid.
func (v *VectorAccess) SetValid(ok bool) { v.valid = ok }

// SetCount stores the component count; it must fit in 3 bits.
func (v *VectorAccess) SetCount(n int) error {
	if n < 0 || n > maxCount {
		return fmt.Errorf("swizzle count %d out of range [0,%d]", n, maxCount)
	}
	v.count = uint8(n) //nolint:gosec // range checked above
	return nil
}

// Position returns the component index at position i.
func (v VectorAccess) Position(i int) (int, error) {
	if i < 0 || i >= maxPositions {
		return 0, fmt.Errorf("swizzle position %d out of range", i)
	}
	return int(v.swz[i]), nil
}

// SetPosition stores component index col at position i.
func (v *VectorAccess) SetPosition(i, col int) error {
	if i < 0 || i >= maxPositions {
		return fmt.Errorf("swizzle position %d out of range", i)
	}
	if col < 0 || col > maxIndex {
		return fmt.Errorf("swizzle component %d out of range [0,%d]", col, maxIndex)
	}
	v.swz[i] = uint8(col) //nolint:gosec // range checked above
	return nil
}

// ContainsDuplicateElements reports whether a valid access names one
// component twice within its first Count positions.
func (v VectorAccess) ContainsDuplicateElements() bool {
	if !v.valid {
		return false
	}
	n := min(int(v.count), maxPositions)
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			if v.swz[i] == v.swz[j] {
				return true
			}
		}
	}
	return false
}

// Bits packs the access: bit 0 valid, bits 1-3 count, then one 2-bit field
// per position.
func (v VectorAccess) Bits() uint32 {
	var out uint32
	if v.valid {
		out = 1
	}
	out |= uint32(v.count&maxCount) << 1
	for i, c := range v.swz {
		out |= uint32(c&maxIndex) << (4 + 2*i)
	}
	return out
}

// VectorAccessFromBits unpacks Bits. Bits above the last position are ignored.
func VectorAccessFromBits(b uint32) VectorAccess {
	v := VectorAccess{valid: b&1 != 0, count: uint8(b>>1) & maxCount}
	for i := range v.swz {
		v.swz[i] = uint8(b>>(4+2*i)) & maxIndex
	}
	return v
}

// ParseSwizzle parses a vector member name in either the xyzw or the rgba
// set. Mixing sets, an empty name or more than four components yields an
// invalid access.
func ParseSwizzle(name string) VectorAccess {
	var v VectorAccess
	if name == "" || len(name) > maxPositions {
		return v
	}
	set := ""
	for i, r := range name {
		var col int
		switch {
		case strings.ContainsRune("xyzw", r) && set != "rgba":
			set, col = "xyzw", strings.IndexRune("xyzw", r)
		case strings.ContainsRune("rgba", r) && set != "xyzw":
			set, col = "rgba", strings.IndexRune("rgba", r)
		default:
			return VectorAccess{}
		}
		_ = v.SetPosition(i, col)
	}
	_ = v.SetCount(len(name))
	v.valid = true
	return v
}

// String renders the access in the xyzw set.
func (v VectorAccess) String() string {
	if !v.valid {
		return "<invalid>"
	}
	var sb strings.Builder
	for i := 0; i < min(int(v.count), maxPositions); i++ {
		sb.WriteByte("xyzw"[v.swz[i]])
	}
	return sb.String()
}

// MatrixAccess describes a matrix member access such as ._m00_m11: up to
// four 2-bit row/column pairs, a 3-bit count and a validity bit.
type MatrixAccess struct {
	valid bool
	count uint8
	row   [maxPositions]uint8
	col   [maxPositions]uint8
}

func (m MatrixAccess) IsValid() bool { return m.valid }

func (m MatrixAccess) Count() int { return int(m.count) }

func (m *MatrixAccess) SetValid(ok bool) { m.valid = ok }

// SetCount stores the pair count; it must fit in 3 bits.
func (m *MatrixAccess) SetCount(n int) error {
	if n < 0 || n > maxCount {
		return fmt.Errorf("matrix access count %d out of range [0,%d]", n, maxCount)
	}
	m.count = uint8(n) //nolint:gosec // range checked above
	return nil
}

// Position returns the zero-based row and column at position i.
func (m MatrixAccess) Position(i int) (row, col int, err error) {
	if i < 0 || i >= maxPositions {
		return 0, 0, fmt.Errorf("matrix position %d out of range", i)
	}
	return int(m.row[i]), int(m.col[i]), nil
}

// SetPosition stores a zero-based row/column pair at position i.
func (m *MatrixAccess) SetPosition(i, row, col int) error {
	if i < 0 || i >= maxPositions {
		return fmt.Errorf("matrix position %d out of range", i)
	}
	if row < 0 || row > maxIndex || col < 0 || col > maxIndex {
		return fmt.Errorf("matrix element (%d,%d) out of range [0,%d]", row, col, maxIndex)
	}
	m.row[i] = uint8(row) //nolint:gosec // range checked above
	m.col[i] = uint8(col) //nolint:gosec // range checked above
	return nil
}

// ContainsDuplicateElements reports whether a valid access names one element
// twice within its first Count positions.
func (m MatrixAccess) ContainsDuplicateElements() bool {
	if !m.valid {
		return false
	}
	n := min(int(m.count), maxPositions)
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			if m.row[i] == m.row[j] && m.col[i] == m.col[j] {
				return true
			}
		}
	}
	return false
}

// Bits packs the access: bit 0 valid, bits 1-3 count, then row and column
// 2-bit fields per position.
func (m MatrixAccess) Bits() uint32 {
	var out uint32
	if m.valid {
		out = 1
	}
	out |= uint32(m.count&maxCount) << 1
	for i := range maxPositions {
		shift := 4 + 4*i
		out |= uint32(m.row[i]&maxIndex) << shift
		out |= uint32(m.col[i]&maxIndex) << (shift + 2)
	}
	return out
}

// MatrixAccessFromBits unpacks Bits.
func MatrixAccessFromBits(b uint32) MatrixAccess {
	m := MatrixAccess{valid: b&1 != 0, count: uint8(b>>1) & maxCount}
	for i := range maxPositions {
		shift := 4 + 4*i
		m.row[i] = uint8(b>>shift) & maxIndex
		m.col[i] = uint8(b>>(shift+2)) & maxIndex
	}
	return m
}

// ParseMatrixMember parses a matrix member name made of either zero-based
// "_mRC" or one-based "_RC" elements, e.g. "_m00_m11" or "_11_22". Mixing
// forms yields an invalid access.
func ParseMatrixMember(name string) MatrixAccess {
	var m MatrixAccess
	parts := strings.Split(name, "_")
	if len(parts) < 2 || parts[0] != "" || len(parts)-1 > maxPositions {
		return m
	}
	zeroBased := strings.HasPrefix(parts[1], "m")
	for i, p := range parts[1:] {
		base := 1
		if zeroBased {
			if !strings.HasPrefix(p, "m") {
				return MatrixAccess{}
			}
			p, base = p[1:], 0
		}
		if len(p) != 2 || p[0] < '0' || p[0] > '9' || p[1] < '0' || p[1] > '9' {
			return MatrixAccess{}
		}
		row, col := int(p[0]-'0')-base, int(p[1]-'0')-base
		if err := m.SetPosition(i, row, col); err != nil {
			return MatrixAccess{}
		}
	}
	_ = m.SetCount(len(parts) - 1)
	m.valid = true
	return m
}
