package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/dxil"
)

// execute runs the root command with fresh command-local flags.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	opsClass, opsOverload, opsWave, opsGradient, opsFormat = "", "", false, false, ""
	sigFormat, accessFormat = "", ""
	emitOutput, emitOverloads, emitOpcodes, emitCalls = "", nil, nil, false
	versionFormat, versionShowFull = "pretty", false
	for _, name := range []string{"color", "quiet", "timings", "config", "trace", "trace-level", "trace-mode", "diag-format", "cpu-profile", "mem-profile", "runtime-trace"} {
		f := rootCmd.PersistentFlags().Lookup(name)
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("reset --%s: %v", name, err)
		}
		f.Changed = false
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	current.cleanup()
	return out.String(), err
}

func TestOpsWaveJSON(t *testing.T) {
	out, err := execute(t, "ops", "--wave", "--format", "json")
	if err != nil {
		t.Fatalf("ops: %v\n%s", err, out)
	}
	var rows []opRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(rows) != 19 {
		t.Fatalf("expected 19 wave ops, got %d", len(rows))
	}
	for _, r := range rows {
		if !r.Wave {
			t.Fatalf("%s is not a wave op", r.Name)
		}
	}
}

func TestOpsTableFilters(t *testing.T) {
	out, err := execute(t, "ops", "--class", "unary", "--overload", "f64")
	if err != nil {
		t.Fatalf("ops: %v", err)
	}
	if !strings.Contains(out, "FAbs") || strings.Contains(out, "Cos ") {
		t.Fatalf("unexpected rows:\n%s", out)
	}
}

func TestSigShowsDeclaration(t *testing.T) {
	out, err := execute(t, "sig", "FAbs", "f32")
	if err != nil {
		t.Fatalf("sig: %v", err)
	}
	for _, want := range []string{"dx.op.unary.f32", "float (i32, float)", "readnone", "nounwind"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestSigByOrdinalListsLegalOverloads(t *testing.T) {
	out, err := execute(t, "sig", "6", "--format", "json")
	if err != nil {
		t.Fatalf("sig: %v", err)
	}
	var rows []sigRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(rows) != 3 || rows[0].Symbol != "dx.op.unary.f16" || rows[2].Symbol != "dx.op.unary.f64" {
		t.Fatalf("rows %+v", rows)
	}
}

func TestSigRejectsIllegalOverload(t *testing.T) {
	if _, err := execute(t, "sig", "FAbs", "i32"); err == nil {
		t.Fatalf("FAbs@i32 accepted")
	}
	if _, err := execute(t, "sig", "NoSuchOp"); err == nil {
		t.Fatalf("unknown opcode accepted")
	}
}

func TestCheckPasses(t *testing.T) {
	out, err := execute(t, "check")
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	if !strings.Contains(out, "ok: 149 opcodes") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestCheckSlotFindsNoProblems(t *testing.T) {
	total := 0
	for s := range dxil.NumTypeSlots {
		r := checkSlot(nil, s)
		if len(r.diags) != 0 {
			t.Fatalf("slot %s: %v", s, r.diags)
		}
		total += r.declared
	}
	legal := 0
	for _, op := range dxil.OpCodes() {
		legal += len(op.Overloads().Slots())
	}
	if total != legal {
		t.Fatalf("declared %d, expected %d legal pairs", total, legal)
	}
}

func TestEmitWithCalls(t *testing.T) {
	out, err := execute(t, "emit", "--op", "FAbs", "--op", "CreateHandle", "--overload", "f32", "--calls")
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	for _, want := range []string{
		"declare float @dx.op.unary.f32(i32, float) #0",
		"declare %dx.types.Handle @dx.op.createHandle(i32, i8, i32, i32, i1)",
		"; FAbs = call @dx.op.unary.f32(i32 6, float %a0)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestBuildEmitModuleSkipsIllegal(t *testing.T) {
	res := buildEmitModule(nil, []dxil.OpCode{dxil.OpFAbs, dxil.OpIMax}, []dxil.TypeSlot{dxil.SlotF32, dxil.SlotI32}, false)
	if len(res.module.Functions()) != 2 || res.skipped != 2 {
		t.Fatalf("declared %d, skipped %d", len(res.module.Functions()), res.skipped)
	}
}

func TestSnapshotWriteVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.msgpack")
	if out, err := execute(t, "snapshot", "write", path); err != nil {
		t.Fatalf("write: %v\n%s", err, out)
	}
	out, err := execute(t, "snapshot", "verify", path)
	if err != nil {
		t.Fatalf("verify: %v\n%s", err, out)
	}
	if !strings.Contains(out, "catalog matches") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var p versionPayload
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if p.Tool != "dxop" || p.OpCodes != 149 {
		t.Fatalf("payload %+v", p)
	}
}

func TestLookupOpCode(t *testing.T) {
	cases := map[string]dxil.OpCode{
		" fabs ":   dxil.OpFAbs,
		"Round_ne": dxil.OpRoundNE,
		"58":       dxil.OpCreateHandle,
	}
	for in, want := range cases {
		got, err := lookupOpCode(in)
		if err != nil || got != want {
			t.Fatalf("%q -> %v, %v", in, got, err)
		}
	}
	for _, bad := range []string{"149", "-1", "Fabs2"} {
		if _, err := lookupOpCode(bad); err == nil {
			t.Fatalf("%q accepted", bad)
		}
	}
}

func TestTableAlignsColumns(t *testing.T) {
	tb := &table{header: []string{"a", "b"}}
	tb.add("longer", "x")
	tb.add("s", "y")
	var buf bytes.Buffer
	if err := tb.render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	col := strings.Index(lines[1], "x")
	if strings.Index(lines[2], "y") != col {
		t.Fatalf("columns not aligned:\n%s", buf.String())
	}
}

func TestMemProfileFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heap.pprof")
	out, err := execute(t, "--mem-profile", path, "version")
	if err != nil {
		t.Fatalf("version: %v\n%s", err, out)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("heap profile not written: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("heap profile is empty")
	}
}

func TestCheckSarif(t *testing.T) {
	out, err := execute(t, "check", "--diag-format", "sarif")
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Results []json.RawMessage `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal([]byte(out), &log); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 || len(log.Runs[0].Results) != 0 {
		t.Fatalf("unexpected SARIF log:\n%s", out)
	}
}

func TestBadDiagFormat(t *testing.T) {
	if _, err := execute(t, "check", "--diag-format", "xml"); err == nil {
		t.Fatalf("expected invalid --diag-format to fail")
	}
}

func TestLookupOverloadAcceptsScalarKeywords(t *testing.T) {
	cases := map[string]dxil.TypeSlot{
		"f32":        dxil.SlotF32,
		"float":      dxil.SlotF32,
		"min16float": dxil.SlotF16,
		"uint64_t":   dxil.SlotI64,
		"bool":       dxil.SlotI1,
	}
	for in, want := range cases {
		got, err := lookupOverload(in)
		if err != nil || got != want {
			t.Fatalf("%q -> %v, %v", in, got, err)
		}
	}
	if _, err := lookupOverload("float3"); err == nil {
		t.Fatalf("vector keyword accepted")
	}
}

func TestSigWithScalarKeyword(t *testing.T) {
	out, err := execute(t, "sig", "FAbs", "half", "--format", "json")
	if err != nil {
		t.Fatalf("sig: %v\n%s", err, out)
	}
	var rows []sigRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(rows) != 1 || rows[0].Symbol != "dx.op.unary.f16" {
		t.Fatalf("rows %+v", rows)
	}
}

func TestAccessDecodesMembers(t *testing.T) {
	out, err := execute(t, "access", "xxy", "_m00_m11", "--format", "json")
	if err != nil {
		t.Fatalf("access: %v\n%s", err, out)
	}
	var rows []accessRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(rows) != 2 {
		t.Fatalf("rows %+v", rows)
	}
	v := rows[0]
	if v.Kind != "vector" || v.Count != 3 || !v.Duplicates || v.Bits != 263 || strings.Join(v.Elements, "") != "xxy" {
		t.Fatalf("vector row %+v", v)
	}
	m := rows[1]
	if m.Kind != "matrix" || m.Count != 2 || m.Duplicates || m.Bits != 1285 || strings.Join(m.Elements, " ") != "_m00 _m11" {
		t.Fatalf("matrix row %+v", m)
	}
	if _, err := execute(t, "access", "xr"); err == nil {
		t.Fatalf("mixed swizzle accepted")
	}
}
