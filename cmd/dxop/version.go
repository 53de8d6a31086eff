package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/dxil"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/snapshot"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/version"
)

type versionPayload struct {
	Tool           string `json:"tool"`
	Version        string `json:"version"`
	OpCodes        int    `json:"opcodes"`
	SnapshotSchema uint16 `json:"snapshot_schema"`
	GitCommit      string `json:"git_commit,omitempty"`
	GitMessage     string `json:"git_message,omitempty"`
	BuildDate      string `json:"build_date,omitempty"`
}

var (
	versionFormat   string
	versionShowFull bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show dxop build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch strings.ToLower(versionFormat) {
		case "json":
			return writeJSON(cmd.OutOrStdout(), collectVersion(versionShowFull))
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout(), collectVersion(versionShowFull))
			return nil
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func collectVersion(full bool) versionPayload {
	p := versionPayload{
		Tool:           "dxop",
		Version:        strings.TrimSpace(version.Number),
		OpCodes:        int(dxil.NumOpCodes),
		SnapshotSchema: snapshot.SchemaVersion,
	}
	if full {
		p.GitCommit = valueOrUnknown(version.GitCommit)
		p.GitMessage = valueOrUnknown(version.GitMessage)
		p.BuildDate = valueOrUnknown(version.BuildDate)
	}
	return p
}

func renderVersionPretty(out io.Writer, p versionPayload) {
	fmt.Fprintf(out, "dxop %s\n", version.Colored())
	fmt.Fprintf(out, "catalog: %d opcodes, snapshot schema %d\n", p.OpCodes, p.SnapshotSchema)
	if p.GitCommit != "" {
		fmt.Fprintf(out, "commit:  %s\n", p.GitCommit)
		fmt.Fprintf(out, "message: %s\n", p.GitMessage)
		fmt.Fprintf(out, "built:   %s\n", p.BuildDate)
	}
}

func valueOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return s
}
