// Package snapshot records the operation catalog in a msgpack file so a
// build can be checked against a versioned copy of the table.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/diag"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/dxil"
)

// SchemaVersion must be bumped when Entry changes.
const SchemaVersion uint16 = 1

// ErrSchema is returned by Read for files written with another schema.
var ErrSchema = errors.New("snapshot schema mismatch")

// Entry is one catalog row in portable form.
type Entry struct {
	OpCode    uint32   `msgpack:"op"`
	Name      string   `msgpack:"name"`
	Class     string   `msgpack:"class"`
	Overloads []string `msgpack:"overloads"`
	Attr      string   `msgpack:"attr"`
	Shape     string   `msgpack:"shape"`
}

// Snapshot is the whole catalog.
type Snapshot struct {
	Schema  uint16  `msgpack:"schema"`
	Count   uint32  `msgpack:"count"`
	Entries []Entry `msgpack:"entries"`
}

// Take captures the compiled-in catalog.
func Take() *Snapshot {
	ops := dxil.OpCodes()
	s := &Snapshot{Schema: SchemaVersion, Entries: make([]Entry, 0, len(ops))}
	for _, op := range ops {
		p := dxil.Property(op)
		var ovl []string
		for _, slot := range p.Overloads.Slots() {
			ovl = append(ovl, slot.String())
		}
		s.Entries = append(s.Entries, Entry{
			OpCode:    uint32(op),
			Name:      p.Name,
			Class:     p.ClassName(),
			Overloads: ovl,
			Attr:      p.Attr.String(),
			Shape:     dxil.SignatureOf(op).String(),
		})
	}
	n, err := safecast.Conv[uint32](len(s.Entries))
	if err != nil {
		panic(fmt.Errorf("entry count overflow: %w", err))
	}
	s.Count = n
	return s
}

// Encode writes s as msgpack.
func Encode(w io.Writer, s *Snapshot) error {
	return msgpack.NewEncoder(w).Encode(s)
}

// Decode reads a msgpack snapshot and checks its schema and count.
func Decode(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: file has %d, want %d", ErrSchema, s.Schema, SchemaVersion)
	}
	n, err := safecast.Conv[int](s.Count)
	if err != nil || n != len(s.Entries) {
		return nil, fmt.Errorf("snapshot declares %d entries, holds %d", s.Count, len(s.Entries))
	}
	return &s, nil
}

// Write stores s at path, replacing any existing file atomically.
func Write(path string, s *Snapshot) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()
	if err := Encode(f, s); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Read loads a snapshot written by Write.
func Read(path string) (s *Snapshot, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return Decode(f)
}

// Diff compares a recorded snapshot against the current one. Each changed
// row yields one error diagnostic naming the opcode.
func Diff(recorded, current *Snapshot) []diag.Diagnostic {
	var out []diag.Diagnostic
	if recorded.Count != current.Count {
		out = append(out, diag.NewError(diag.SnapOpCodeCount, "catalog",
			fmt.Sprintf("recorded %d opcodes, current catalog has %d", recorded.Count, current.Count)))
	}
	n := min(len(recorded.Entries), len(current.Entries))
	for i := range n {
		r, c := recorded.Entries[i], current.Entries[i]
		changes := entryChanges(r, c)
		if len(changes) == 0 {
			continue
		}
		d := diag.NewError(diag.SnapEntryChanged, fmt.Sprintf("%d %s", c.OpCode, c.Name),
			"changed "+strings.Join(changes, ", "))
		for _, ch := range changes {
			d = d.WithNote(ch, describe(ch, r, c))
		}
		out = append(out, d)
	}
	return out
}

func entryChanges(r, c Entry) []string {
	var out []string
	if r.OpCode != c.OpCode {
		out = append(out, "opcode")
	}
	if r.Name != c.Name {
		out = append(out, "name")
	}
	if r.Class != c.Class {
		out = append(out, "class")
	}
	if strings.Join(r.Overloads, ",") != strings.Join(c.Overloads, ",") {
		out = append(out, "overloads")
	}
	if r.Attr != c.Attr {
		out = append(out, "attr")
	}
	if r.Shape != c.Shape {
		out = append(out, "shape")
	}
	return out
}

func describe(field string, r, c Entry) string {
	var was, now string
	switch field {
	case "opcode":
		was, now = fmt.Sprint(r.OpCode), fmt.Sprint(c.OpCode)
	case "name":
		was, now = r.Name, c.Name
	case "class":
		was, now = r.Class, c.Class
	case "overloads":
		was, now = strings.Join(r.Overloads, "|"), strings.Join(c.Overloads, "|")
	case "attr":
		was, now = r.Attr, c.Attr
	case "shape":
		was, now = r.Shape, c.Shape
	}
	return fmt.Sprintf("was %q, now %q", was, now)
}
