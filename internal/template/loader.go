package template

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkgtmpl/pkgtmpl/internal/branding"
	"github.com/pkgtmpl/pkgtmpl/internal/manifest"
	"go.yaml.in/yaml/v3"
)

// File is the on-disk form of a template description (template.yaml).
type File struct {
	PackageConfig `yaml:",inline"`

	// Manifest is a project-relative path to a package.json supplying the
	// identity fields the description leaves empty.
	Manifest string `yaml:"manifest,omitempty"`

	// AuxiliaryFiles overrides DefaultAuxiliaryFiles when non-nil.
	AuxiliaryFiles []string `yaml:"auxiliaryFiles,omitempty"`
}

// Loaded is a resolved template description.
type Loaded struct {
	Config         *PackageConfig
	AuxiliaryFiles []string
	Path           string
}

// LoadOptions tunes Load.
type LoadOptions struct {
	// DefaultAuthor is used when neither the description nor the manifest
	// names an author.
	DefaultAuthor string
}

// Path returns the template description path inside projectDir.
func Path(projectDir string) string {
	return filepath.Join(projectDir, branding.TemplateFile())
}

// Load reads, validates and resolves the template description of projectDir.
func Load(projectDir string, opts LoadOptions) (*Loaded, error) {
	absDir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", projectDir, err)
	}

	path := Path(absDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	loaded, err := Parse(data, absDir, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	loaded.Path = path
	return loaded, nil
}

// Parse resolves template description bytes for the project rooted at
// absDir.
func Parse(data []byte, absDir string, opts LoadOptions) (*Loaded, error) {
	result, err := manifest.ValidateTemplate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		verrs := &ValidationErrors{}
		for _, issue := range result.Issues {
			verrs.Errors = append(verrs.Errors, ValidationError{Field: issue.Path, Message: issue.Message})
		}
		return nil, verrs
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing template description: %w", err)
	}

	cfg := f.PackageConfig
	cfg.TargetDirectory = absDir

	if f.Manifest != "" {
		manifestPath := f.Manifest
		if !filepath.IsAbs(manifestPath) {
			manifestPath = filepath.Join(absDir, manifestPath)
		}
		pkg, err := manifest.ParsePackageJSON(manifestPath)
		if err != nil {
			return nil, err
		}
		ApplyManifest(&cfg, pkg)
	}

	if cfg.Author == "" {
		cfg.Author = opts.DefaultAuthor
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	aux := f.AuxiliaryFiles
	if aux == nil {
		aux = DefaultAuxiliaryFiles(&cfg)
	}

	return &Loaded{Config: &cfg, AuxiliaryFiles: aux}, nil
}

// ApplyManifest fills the identity fields cfg leaves empty from pkg.
// Literal values already set on cfg take precedence.
func ApplyManifest(cfg *PackageConfig, pkg *manifest.PackageJSON) {
	if cfg.Name == "" {
		cfg.Name = pkg.Name
	}
	if cfg.Version == "" {
		cfg.Version = pkg.Version
	}
	if cfg.ShortDescription == "" {
		cfg.ShortDescription = pkg.Description
	}
	if cfg.Author == "" {
		cfg.Author = pkg.Author.String()
	}
}

// FromManifest builds a config for projectDir from the package.json at
// manifestPath. Identity comes from the manifest; its dependencies become
// runtime externals and its devDependencies development dependencies.
func FromManifest(projectDir, manifestPath string, typ PackageType) (*PackageConfig, error) {
	absDir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", projectDir, err)
	}

	pkg, err := manifest.ParsePackageJSON(manifestPath)
	if err != nil {
		return nil, err
	}

	cfg := New(absDir, typ)
	ApplyManifest(cfg, pkg)
	for name, constraint := range pkg.Dependencies {
		cfg.SetRuntimeDependency(name, constraint)
	}
	for name, constraint := range pkg.DevDependencies {
		cfg.SetDevDependency(name, constraint)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal renders cfg as a template description.
func Marshal(f *File) ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encoding template description: %w", err)
	}
	return data, nil
}
