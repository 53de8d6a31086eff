package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/JasonWinston/DirectXShaderCompiler/internal/config"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/observ"
	"github.com/JasonWinston/DirectXShaderCompiler/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "dxop",
	Short:         "DXIL operation registry tool",
	Long:          `dxop lists, checks and emits the dx.op operation declarations of the DXIL catalog`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return prepare(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		finish(cmd)
	},
}

// session is the per-invocation state built by prepare.
type session struct {
	cfg        config.Config
	configPath string
	quiet      bool
	timer      *observ.Timer
	cleanup    func()
}

var current = &session{cfg: config.Default(), cleanup: func() {}}

func init() {
	rootCmd.Version = version.String()

	rootCmd.AddCommand(opsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(sigCmd)
	rootCmd.AddCommand(emitCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(accessCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off); defaults to dxop.toml")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("config", "", "path to dxop.toml (default: search upward from the working directory)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer size for --trace-mode=ring")
	rootCmd.PersistentFlags().String("diag-format", "", "diagnostic format (pretty|json|sarif); defaults to the output format")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")
}

func main() {
	err := rootCmd.Execute()
	// PersistentPostRun is skipped when a command fails.
	current.cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func prepare(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return err
	}
	s := &session{cleanup: func() {}}
	if configPath != "" {
		s.cfg, err = config.Load(configPath)
		s.configPath = configPath
	} else {
		s.cfg, s.configPath, err = config.Discover(".")
	}
	if err != nil {
		return err
	}

	colorMode, err := flags.GetString("color")
	if err != nil {
		return err
	}
	if colorMode == "" {
		colorMode = s.cfg.Output.Color
	}
	if err := applyColor(colorMode); err != nil {
		return err
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return err
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return err
	}
	if timings {
		s.timer = observ.NewTimer()
	}
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	stopTracing, err := setupTracing(cmd, s.cfg.Trace)
	if err != nil {
		stopProfiling()
		return err
	}
	s.cleanup = sync.OnceFunc(func() {
		stopTracing()
		stopProfiling()
	})
	current = s
	return nil
}

func finish(cmd *cobra.Command) {
	current.cleanup()
	if current.timer != nil && !current.quiet {
		fmt.Fprint(cmd.ErrOrStderr(), current.timer.Summary())
	}
}

// track measures fn when --timings is set.
func track(name string, fn func() error) error {
	if current.timer == nil {
		return fn()
	}
	return current.timer.Track(name, fn)
}

func applyColor(mode string) error {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto", "":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color %q (expected auto|on|off)", mode)
	}
	return nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
