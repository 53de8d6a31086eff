package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/diag"
)

func sample() []diag.Diagnostic {
	return []diag.Diagnostic{
		diag.NewError(diag.SnapEntryChanged, "6 FAbs", "entry differs from snapshot").
			WithNote("class", "recorded unary, current binary"),
		diag.New(diag.SevWarning, diag.CfgInvalid, "trace.level", "unknown level"),
	}
}

func TestPrettyPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sample(), PrettyOpts{ShowNotes: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "error[SNP9103] 6 FAbs: entry differs from snapshot\n" +
		"  note: class: recorded unary, current binary\n" +
		"warning[CFG9200] trace.level: unknown level\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyMaxAndNotes(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sample(), PrettyOpts{Max: 1}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if got := buf.String(); got != "error[SNP9103] 6 FAbs: entry differs from snapshot\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sample(), JSONOpts{Max: 1, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || out.Total != 2 {
		t.Fatalf("count=%d total=%d", out.Count, out.Total)
	}
	d := out.Diagnostics[0]
	if d.Severity != "error" || d.Code != "SNP9103" || d.Subject != "6 FAbs" {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	if d.Title != diag.SnapEntryChanged.Title() {
		t.Fatalf("title = %q", d.Title)
	}
	if len(d.Notes) != 1 || d.Notes[0].Subject != "class" {
		t.Fatalf("unexpected notes: %+v", d.Notes)
	}
}

func TestJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, nil, JSONOpts{}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"diagnostics": []`) {
		t.Fatalf("expected empty array, got %s", buf.String())
	}
}

func TestSarif(t *testing.T) {
	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "dxop", ToolVersion: "test", InvocationArgs: []string{"check"}}
	if err := Sarif(&buf, sample(), meta); err != nil {
		t.Fatalf("Sarif: %v", err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log header: %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "dxop" {
		t.Fatalf("driver = %q", run.Tool.Driver.Name)
	}
	if len(run.Tool.Driver.Rules) != 2 || run.Tool.Driver.Rules[0].ID != "SNP9103" {
		t.Fatalf("unexpected rules: %+v", run.Tool.Driver.Rules)
	}
	if len(run.Results) != 2 || run.Results[0].Level != "error" || run.Results[1].Level != "warning" {
		t.Fatalf("unexpected results: %+v", run.Results)
	}
	if run.Results[0].LogicalLocations[0].Name != "6 FAbs" {
		t.Fatalf("unexpected location: %+v", run.Results[0].LogicalLocations)
	}
	if len(run.Invocations) != 1 || run.Invocations[0].ExecutionSuccessful {
		t.Fatalf("expected a failed invocation: %+v", run.Invocations)
	}
}
