package materialize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/pkgtmpl/pkgtmpl/internal/branding"
	"github.com/pkgtmpl/pkgtmpl/internal/template"
)

// Generator produces the primary sources of a package. Implementations must
// be pure with respect to cfg and must not leave partial output behind when
// they fail.
type Generator interface {
	Generate(ctx context.Context, cfg *template.PackageConfig) error
}

// FileSystem is the set of filesystem operations the materializer needs.
type FileSystem interface {
	Exists(path string) bool
	CheckWritable(dir string) error
	CopyFile(src, dst string) error
}

// Options configures a Materializer.
type Options struct {
	Generator Generator
	FS        FileSystem

	// TemplateDir is where auxiliary files are copied from. A relative path
	// is resolved against the target directory. Defaults to
	// branding.TemplateDir().
	TemplateDir string

	Logger hclog.Logger
}

// Materializer runs the validate → generate → copy pipeline.
type Materializer struct {
	generator   Generator
	fs          FileSystem
	templateDir string
	logger      hclog.Logger
}

// Result describes what a run did. On failure it still lists the files
// copied before the error.
type Result struct {
	TargetDirectory string
	TemplateDir     string
	Copied          []string
}

// New creates a Materializer.
func New(opts Options) *Materializer {
	if opts.TemplateDir == "" {
		opts.TemplateDir = branding.TemplateDir()
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	return &Materializer{
		generator:   opts.Generator,
		fs:          opts.FS,
		templateDir: opts.TemplateDir,
		logger:      opts.Logger.Named("materialize"),
	}
}

// Materialize generates the sources for cfg and copies auxiliaryFiles from
// the template directory into cfg.TargetDirectory. It returns a
// *DirectoryError, *GenerationError or *CopyError describing the first
// failure.
func (m *Materializer) Materialize(ctx context.Context, cfg *template.PackageConfig, auxiliaryFiles []string) error {
	_, err := m.Run(ctx, cfg, auxiliaryFiles)
	return err
}

// Run is Materialize returning a Result as well.
func (m *Materializer) Run(ctx context.Context, cfg *template.PackageConfig, auxiliaryFiles []string) (*Result, error) {
	target := cfg.TargetDirectory
	result := &Result{TargetDirectory: target, TemplateDir: m.sourceDir(target)}
	logger := m.logger.With("target", target)

	if err := m.checkTarget(target); err != nil {
		logger.Error("target directory unusable", "error", err)
		return result, err
	}

	logger.Debug("generating sources", "name", cfg.Name, "version", cfg.Version)
	if err := m.generator.Generate(ctx, cfg); err != nil {
		logger.Error("generation failed", "error", err)
		return result, &GenerationError{Err: err}
	}

	for _, name := range auxiliaryFiles {
		if err := m.copyAuxiliary(ctx, result.TemplateDir, target, name); err != nil {
			logger.Error("copy failed", "file", name, "copied", len(result.Copied), "error", err)
			return result, err
		}
		result.Copied = append(result.Copied, name)
		logger.Debug("copied auxiliary file", "file", name)
	}

	logger.Info("materialized package", "name", cfg.Name, "auxiliary_files", len(result.Copied))
	return result, nil
}

func (m *Materializer) checkTarget(target string) error {
	if target == "" {
		return &DirectoryError{Path: target, Err: errors.New("no target directory set")}
	}
	if !m.fs.Exists(target) {
		return &DirectoryError{Path: target, Err: fs.ErrNotExist}
	}
	if err := m.fs.CheckWritable(target); err != nil {
		return &DirectoryError{Path: target, Err: err}
	}
	return nil
}

func (m *Materializer) sourceDir(target string) string {
	if filepath.IsAbs(m.templateDir) {
		return m.templateDir
	}
	return filepath.Join(target, m.templateDir)
}

func (m *Materializer) copyAuxiliary(ctx context.Context, srcDir, target, name string) error {
	if err := ctx.Err(); err != nil {
		return &CopyError{File: name, Reason: ReasonOther, Err: err}
	}

	rel := filepath.FromSlash(name)
	if !filepath.IsLocal(rel) {
		return &CopyError{File: name, Reason: ReasonOther, Err: fmt.Errorf("%q is not a path inside the project", name)}
	}

	src := filepath.Join(srcDir, rel)
	if !m.fs.Exists(src) {
		return &CopyError{File: name, Reason: ReasonSourceMissing, Err: fmt.Errorf("%s: %w", src, fs.ErrNotExist)}
	}

	if err := m.fs.CopyFile(src, filepath.Join(target, rel)); err != nil {
		return &CopyError{File: name, Reason: classify(err), Err: err}
	}
	return nil
}

func classify(err error) CopyReason {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ReasonSourceMissing
	case errors.Is(err, fs.ErrPermission):
		return ReasonPermissionDenied
	default:
		return ReasonOther
	}
}
