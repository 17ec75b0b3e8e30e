package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jward/stave/internal/runtime"
	"github.com/jward/stave/scripts"
)

var flagScriptsDir string

var runCmd = &cobra.Command{
	Use:   "run <script> [args...]",
	Short: "Execute a Risor edit script",
	Long:  "Runs a .risor script with the editing kernel's host functions (parse_file, parse_src, text, write_file, log) and the remaining command line exposed as the args global. Scripts resolve from --scripts-dir, a local path, or the embedded stock scripts.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagScriptsDir, "scripts-dir", "", "load scripts from disk path instead of embedded")
}

func runRun(cmd *cobra.Command, args []string) error {
	script := args[0]
	scriptArgs := args[1:]

	opts := []runtime.Option{runtime.WithLogger(newLogger())}
	switch {
	case flagScriptsDir != "":
		// Explicit directory wins.
	case fileExists(script):
		// A local script runs with its own directory as the import root.
		flagScriptsDir = filepath.Dir(script)
		script = filepath.Base(script)
	default:
		opts = append(opts, runtime.WithFS(scripts.FS))
	}

	rt := runtime.New(flagScriptsDir, opts...)
	return rt.RunScript(context.Background(), script, map[string]any{
		"args": scriptArgs,
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
