// Package config loads dxop.toml, the per-project settings for the dxop tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/diag"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/dxil"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/trace"
)

// FileName is the config file searched for from the working directory up.
const FileName = "dxop.toml"

type Config struct {
	Output OutputConfig `toml:"output"`
	Trace  TraceConfig  `toml:"trace"`
	Emit   EmitConfig   `toml:"emit"`
}

type OutputConfig struct {
	Color  string `toml:"color"`  // auto|on|off
	Format string `toml:"format"` // pretty|json
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
}

type EmitConfig struct {
	Overloads []string `toml:"overloads"`
	Opcodes   []string `toml:"opcodes"` // empty means every opcode
}

// Default returns the settings used when no file is found.
func Default() Config {
	return Config{
		Output: OutputConfig{Color: "auto", Format: "pretty"},
		Trace:  TraceConfig{Level: "off", Mode: "stream", Output: "stderr"},
		Emit:   EmitConfig{Overloads: []string{"f32", "i32"}},
	}
}

// InvalidError lists every problem found in one file.
type InvalidError struct {
	Path  string
	Diags []diag.Diagnostic
}

func (e *InvalidError) Error() string {
	msgs := make([]string, len(e.Diags))
	for i, d := range e.Diags {
		msgs[i] = d.String()
	}
	return fmt.Sprintf("%s: invalid config:\n  %s", e.Path, strings.Join(msgs, "\n  "))
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	bag := diag.NewBag(32)
	for _, key := range meta.Undecoded() {
		diag.ReportError(bag, diag.CfgInvalid, key.String(), "unknown key").Emit()
	}
	if meta.IsDefined("emit", "overloads") && len(cfg.Emit.Overloads) == 0 {
		diag.ReportError(bag, diag.CfgInvalid, "emit.overloads", "must list at least one overload").Emit()
	}
	cfg.Validate(bag)
	if bag.HasErrors() {
		return Config{}, &InvalidError{Path: path, Diags: bag.Items()}
	}
	return cfg, nil
}

// Discover finds and loads the nearest config. Without a file it returns the
// defaults and an empty path.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

// Validate reports every value the tool cannot use.
func (c Config) Validate(r diag.Reporter) {
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		diag.ReportError(r, diag.CfgInvalid, "output.color", fmt.Sprintf("%q is not auto, on or off", c.Output.Color)).Emit()
	}
	switch c.Output.Format {
	case "pretty", "json":
	default:
		diag.ReportError(r, diag.CfgInvalid, "output.format", fmt.Sprintf("%q is not pretty or json", c.Output.Format)).Emit()
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		diag.ReportError(r, diag.CfgInvalid, "trace.level", err.Error()).Emit()
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		diag.ReportError(r, diag.CfgInvalid, "trace.mode", err.Error()).Emit()
	}
	for _, name := range c.Emit.Overloads {
		if _, ok := dxil.SlotByName(name); !ok {
			diag.ReportError(r, diag.CfgInvalid, "emit.overloads", fmt.Sprintf("unknown overload %q", name)).
				WithNote("emit.overloads", "expected one of void, f16, f32, f64, i1, i8, i16, i32, i64").
				Emit()
		}
	}
	for _, name := range c.Emit.Opcodes {
		if _, ok := dxil.OpCodeByName(name); !ok {
			diag.ReportError(r, diag.CfgInvalid, "emit.opcodes", fmt.Sprintf("unknown opcode %q", name)).Emit()
		}
	}
}

// Slots resolves Emit.Overloads. Call after Validate.
func (c Config) Slots() []dxil.TypeSlot {
	out := make([]dxil.TypeSlot, 0, len(c.Emit.Overloads))
	for _, name := range c.Emit.Overloads {
		if s, ok := dxil.SlotByName(name); ok {
			out = append(out, s)
		}
	}
	return out
}

// OpCodes resolves Emit.Opcodes; an empty list selects the whole catalog.
func (c Config) OpCodes() []dxil.OpCode {
	if len(c.Emit.Opcodes) == 0 {
		return dxil.OpCodes()
	}
	out := make([]dxil.OpCode, 0, len(c.Emit.Opcodes))
	for _, name := range c.Emit.Opcodes {
		if op, ok := dxil.OpCodeByName(name); ok {
			out = append(out, op)
		}
	}
	return out
}
