// Package runtime embeds a Risor VM and exposes the editing kernel to
// scripts: parse host functions, a chainable selection handle, and
// structured logging. Edit scripts are plain .risor files.
package runtime

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/risor-io/risor"
	"github.com/risor-io/risor/importer"
	"github.com/risor-io/risor/object"
	"go.uber.org/zap"
)

// Runtime embeds a Risor VM and provides the kernel's host functions to
// edit scripts.
type Runtime struct {
	scriptsDir string
	fsys       fs.FS
	log        *zap.SugaredLogger
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithFS configures the Runtime to load scripts from an fs.FS instead
// of from disk. Also configures the Risor importer to use FSImporter
// for import statement resolution.
func WithFS(fsys fs.FS) Option {
	return func(r *Runtime) {
		r.fsys = fsys
	}
}

// WithLogger sets the logger exposed to scripts as the "log" global.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(r *Runtime) {
		r.log = l
	}
}

// New creates a Runtime loading scripts from scriptsDir.
func New(scriptsDir string, opts ...Option) *Runtime {
	r := &Runtime{
		scriptsDir: scriptsDir,
		log:        zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunScript loads and executes a Risor script with all standard globals
// plus any extra globals provided by the caller.
func (r *Runtime) RunScript(ctx context.Context, scriptPath string, extraGlobals map[string]any) error {
	src, err := r.LoadScript(scriptPath)
	if err != nil {
		return err
	}
	return r.eval(ctx, src, scriptPath, extraGlobals)
}

// RunSource executes Risor source code directly with all standard
// globals plus any extra globals. Useful for testing without script
// files.
func (r *Runtime) RunSource(ctx context.Context, source string, extraGlobals map[string]any) error {
	return r.eval(ctx, source, "<inline>", extraGlobals)
}

func (r *Runtime) eval(ctx context.Context, source, label string, extraGlobals map[string]any) error {
	globals := r.buildGlobals(extraGlobals)

	var opts []risor.Option
	for name, val := range globals {
		opts = append(opts, risor.WithGlobal(name, val))
	}

	// Wire importer so Risor import statements resolve correctly.
	if imp := r.buildImporter(globals); imp != nil {
		opts = append(opts, risor.WithImporter(imp))
	}

	_, err := risor.Eval(ctx, source, opts...)
	if err != nil {
		return fmt.Errorf("runtime: script %s: %w", label, err)
	}
	return nil
}

// buildGlobals constructs the full set of globals exposed to scripts.
func (r *Runtime) buildGlobals(extra map[string]any) map[string]any {
	globals := map[string]any{
		"parse_file": makeParseFileFn(),
		"parse_src":  makeParseSrcFn(),
		"text":       makeTextFn(),
		"write_file": makeWriteFileFn(),
		"log":        mustProxy(&logObject{log: r.log}),
	}
	for k, v := range extra {
		globals[k] = v
	}
	return globals
}

// buildImporter returns a Risor importer configured for the Runtime's
// script source. Returns nil if neither fs.FS nor scriptsDir is
// configured.
func (r *Runtime) buildImporter(globals map[string]any) importer.Importer {
	globalNames := make([]string, 0, len(globals))
	for name := range globals {
		globalNames = append(globalNames, name)
	}

	if r.fsys != nil {
		return importer.NewFSImporter(importer.FSImporterOptions{
			GlobalNames: globalNames,
			SourceFS:    r.fsys,
			Extensions:  []string{".risor"},
		})
	}
	if r.scriptsDir != "" {
		return importer.NewLocalImporter(importer.LocalImporterOptions{
			GlobalNames: globalNames,
			SourceDir:   r.scriptsDir,
			Extensions:  []string{".risor"},
		})
	}
	return nil
}

// LoadScript reads a .risor file and returns its source code. When an
// fs.FS is configured, uses fs.ReadFile on the embedded filesystem.
// Otherwise, uses os.ReadFile with scriptsDir as the base directory.
func (r *Runtime) LoadScript(path string) (string, error) {
	if r.fsys != nil {
		fsPath := strings.TrimPrefix(filepath.ToSlash(path), "/")
		data, err := fs.ReadFile(r.fsys, fsPath)
		if err != nil {
			return "", fmt.Errorf("runtime: loading script %s from fs: %w", fsPath, err)
		}
		return string(data), nil
	}

	fullPath := path
	if !filepath.IsAbs(path) {
		fullPath = filepath.Join(r.scriptsDir, path)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", fmt.Errorf("runtime: loading script %s: %w", fullPath, err)
	}
	return string(data), nil
}

func mustProxy(v any) object.Object {
	p, err := object.NewProxy(v)
	if err != nil {
		panic(fmt.Sprintf("runtime: proxy error: %v", err))
	}
	return p
}

// logObject provides log.info/warn/error methods for scripts.
type logObject struct {
	log *zap.SugaredLogger
}

func (l *logObject) Info(msg string)  { l.log.Info(msg) }
func (l *logObject) Warn(msg string)  { l.log.Warn(msg) }
func (l *logObject) Error(msg string) { l.log.Error(msg) }
