package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/diag"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Record or verify a msgpack snapshot of the catalog",
}

var snapshotWriteCmd = &cobra.Command{
	Use:   "write <file>",
	Short: "Write the current catalog to file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var snap *snapshot.Snapshot
		if err := track("take", func() error {
			snap = snapshot.Take()
			return nil
		}); err != nil {
			return err
		}
		if err := track("write", func() error { return snapshot.Write(args[0], snap) }); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		if !current.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d opcodes (schema %d) -> %s\n",
				okColor.Sprint("wrote"), snap.Count, snap.Schema, args[0])
		}
		return nil
	},
}

var snapshotVerifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Compare the current catalog against a recorded snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var recorded *snapshot.Snapshot
		if err := track("read", func() error {
			var err error
			recorded, err = snapshot.Read(args[0])
			return err
		}); err != nil {
			return fmt.Errorf("read snapshot: %w", err)
		}
		bag := diag.NewBag(maxDiagnostics())
		for _, d := range snapshot.Diff(recorded, snapshot.Take()) {
			bag.Add(d)
		}
		out := cmd.OutOrStdout()
		if err := printDiagnostics(out, bag.Items()); err != nil {
			return err
		}
		if bag.HasErrors() {
			return fmt.Errorf("catalog differs from %s", args[0])
		}
		if !current.quiet && !machineOutput() {
			fmt.Fprintf(out, "%s catalog matches %s\n", okColor.Sprint("ok:"), args[0])
		}
		return nil
	},
}

func init() {
	snapshotCmd.AddCommand(snapshotWriteCmd)
	snapshotCmd.AddCommand(snapshotVerifyCmd)
}
