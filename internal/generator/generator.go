package generator

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/hashicorp/go-hclog"
	"github.com/pkgtmpl/pkgtmpl/internal/branding"
	pkgtemplate "github.com/pkgtmpl/pkgtmpl/internal/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// AutoGeneratedFile is the project-relative path of the generated source stub.
const AutoGeneratedFile = "src/auto-generated.ts"

// FileWriter persists rendered artifacts. fsutil.OS satisfies it.
type FileWriter interface {
	WriteFile(path string, data []byte, perm os.FileMode) error
}

// Options configures a Generator.
type Options struct {
	// TemplateDir is the project-relative directory staged files go to.
	// Defaults to branding.TemplateDir().
	TemplateDir string

	// UserGuideBaseURL prefixes the package name to form the user guide link.
	UserGuideBaseURL string

	// DeveloperDocURL and SourceURL are link patterns; {name} expands to the
	// package name and {repo} to the name without its scope.
	DeveloperDocURL string
	SourceURL       string

	Writer FileWriter
	Logger hclog.Logger
}

// Generator renders and writes the primary artifacts of a package.
type Generator struct {
	templateDir      string
	userGuideBaseURL string
	developerDocURL  string
	sourceURL        string
	writer           FileWriter
	logger           hclog.Logger
	templates        *template.Template
}

// Artifact is one rendered file, addressed relative to the project root.
type Artifact struct {
	Path string
	Data []byte
}

// artifactSpec maps an embedded template to its output. Staged outputs land
// in the template directory; the rest are written at their path directly.
type artifactSpec struct {
	tmpl   string
	out    string
	staged bool
	when   func(*pkgtemplate.PackageConfig) bool
}

var artifactSpecs = []artifactSpec{
	{tmpl: "README.md.tmpl", out: "README.md", staged: true},
	{tmpl: "LICENSE.tmpl", out: "LICENSE", staged: true},
	{tmpl: "gitignore.tmpl", out: ".gitignore", staged: true},
	{tmpl: "npmignore.tmpl", out: ".npmignore", staged: true},
	{tmpl: "prettierignore.tmpl", out: ".prettierignore", staged: true},
	{tmpl: "tsconfig.json.tmpl", out: "tsconfig.json", staged: true},
	{tmpl: "jest.config.ts.tmpl", out: "jest.config.ts", staged: true},
	{tmpl: "webpack.config.ts.tmpl", out: "webpack.config.ts", staged: true},
	{tmpl: "index.html.tmpl", out: "index.html", staged: true, when: func(c *pkgtemplate.PackageConfig) bool { return c.Type == pkgtemplate.Application }},
	{tmpl: "typedoc.js.tmpl", out: "typedoc.js", staged: true, when: func(c *pkgtemplate.PackageConfig) bool { return c.UserGuide }},
	{tmpl: "auto-generated.ts.tmpl", out: AutoGeneratedFile},
}

// New creates a Generator. It fails only if the embedded templates do not
// parse.
func New(opts Options) (*Generator, error) {
	if opts.TemplateDir == "" {
		opts.TemplateDir = branding.TemplateDir()
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	if opts.Writer == nil {
		return nil, fmt.Errorf("generator: a FileWriter is required")
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"json": toJSON,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing embedded templates: %w", err)
	}

	return &Generator{
		templateDir:      opts.TemplateDir,
		userGuideBaseURL: opts.UserGuideBaseURL,
		developerDocURL:  opts.DeveloperDocURL,
		sourceURL:        opts.SourceURL,
		writer:           opts.Writer,
		logger:           opts.Logger.Named("generator"),
		templates:        tmpl,
	}, nil
}

// TemplateDir returns the project-relative staging directory.
func (g *Generator) TemplateDir() string {
	return g.templateDir
}

// Generate renders every artifact for cfg and writes them under
// cfg.TargetDirectory. Nothing is written when rendering fails.
func (g *Generator) Generate(ctx context.Context, cfg *pkgtemplate.PackageConfig) error {
	artifacts, err := g.Render(cfg)
	if err != nil {
		return err
	}

	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return err
		}
		dst := filepath.Join(cfg.TargetDirectory, filepath.FromSlash(a.Path))
		if err := g.writer.WriteFile(dst, a.Data, 0644); err != nil {
			return err
		}
		g.logger.Debug("wrote artifact", "path", a.Path, "bytes", len(a.Data))
	}

	g.logger.Info("generated package sources", "name", cfg.Name, "artifacts", len(artifacts))
	return nil
}

// Render produces the artifacts for cfg without touching the filesystem.
func (g *Generator) Render(cfg *pkgtemplate.PackageConfig) ([]Artifact, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	data := g.newRenderData(cfg)

	pkgJSON, err := encodePackageJSON(buildPackageJSON(cfg))
	if err != nil {
		return nil, fmt.Errorf("encoding package.json: %w", err)
	}
	artifacts := []Artifact{{Path: path.Join(g.templateDir, "package.json"), Data: pkgJSON}}

	for _, spec := range artifactSpecs {
		if spec.when != nil && !spec.when(cfg) {
			continue
		}

		var buf bytes.Buffer
		if err := g.templates.ExecuteTemplate(&buf, spec.tmpl, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", spec.tmpl, err)
		}

		out := spec.out
		if spec.staged {
			out = path.Join(g.templateDir, out)
		}
		artifacts = append(artifacts, Artifact{Path: out, Data: buf.Bytes()})
	}

	return artifacts, nil
}

// renderData holds all template variables available to the embedded templates.
type renderData struct {
	Name             string
	Version          string
	ShortDescription string
	IsLibrary        bool
	UserGuide        bool
	UserGuideURL     string
	TestConfigURL    string
	Author           string
	CopyrightYear    int
	TemplateDir      string
	TemplateFile     string
	Tool             string

	AssetID                string
	APIVersion             string
	NpmPackage             string
	DeveloperDocumentation string
	SourceGithub           string

	RunTimeDependencies runTimeDependencies
	Externals           map[string]externalSpec
	ExportedSymbols     map[string]exportedSpec
	MainEntry           mainEntry
	SecondaryEntries    map[string]secondaryEntry
}

type runTimeDependencies struct {
	Externals        map[string]string `json:"externals"`
	IncludedInBundle map[string]string `json:"includedInBundle"`
}

// externalSpec is a webpack external. Root is the global symbol name, or
// for a sub-module the [symbol, property] path to it.
type externalSpec struct {
	CommonJS  string      `json:"commonjs"`
	CommonJS2 string      `json:"commonjs2"`
	Root      interface{} `json:"root"`
}

type exportedSpec struct {
	APIKey         string `json:"apiKey"`
	ExportedSymbol string `json:"exportedSymbol"`
}

type mainEntry struct {
	EntryFile        string   `json:"entryFile"`
	LoadDependencies []string `json:"loadDependencies"`
}

type secondaryEntry struct {
	EntryFile        string   `json:"entryFile"`
	Name             string   `json:"name"`
	LoadDependencies []string `json:"loadDependencies"`
}

func (g *Generator) newRenderData(cfg *pkgtemplate.PackageConfig) renderData {
	d := renderData{
		Name:             cfg.Name,
		Version:          cfg.Version,
		ShortDescription: cfg.ShortDescription,
		IsLibrary:        cfg.Type == pkgtemplate.Library,
		UserGuide:        cfg.UserGuide,
		TestConfigURL:    cfg.TestConfigURL,
		Author:           cfg.Author,
		CopyrightYear:    cfg.CopyrightYear,
		TemplateDir:      g.templateDir,
		TemplateFile:     branding.TemplateFile(),
		Tool:             branding.CLIName(),
		AssetID:          base64.StdEncoding.EncodeToString([]byte(cfg.Name)),
		APIVersion:       APIKey(cfg.Version),
		NpmPackage:       "https://www.npmjs.com/package/" + cfg.Name,
		Externals:        make(map[string]externalSpec),
		ExportedSymbols:  make(map[string]exportedSpec),
		SecondaryEntries: make(map[string]secondaryEntry),
	}
	if cfg.UserGuide && g.userGuideBaseURL != "" {
		d.UserGuideURL = g.userGuideBaseURL + "/" + cfg.Name
	}
	d.DeveloperDocumentation = expandURL(g.developerDocURL, cfg.Name)
	d.SourceGithub = expandURL(g.sourceURL, cfg.Name)

	d.RunTimeDependencies = runTimeDependencies{
		Externals:        copyOrEmpty(cfg.Dependencies.RunTime.Externals),
		IncludedInBundle: copyOrEmpty(cfg.Dependencies.RunTime.IncludedInBundle),
	}
	for name, constraint := range cfg.Dependencies.RunTime.Externals {
		d.Externals[name] = externalSpec{
			CommonJS:  name,
			CommonJS2: name,
			Root:      exportedSymbol(name, constraint),
		}
		d.ExportedSymbols[name] = exportedSpec{
			APIKey:         APIKey(constraint),
			ExportedSymbol: name,
		}
		// Sub-modules of bundled packages need no external entry.
		for _, sub := range cfg.Dependencies.RunTime.SubModules[name] {
			key := name + "/" + sub
			d.Externals[key] = externalSpec{
				CommonJS:  key,
				CommonJS2: key,
				Root:      []string{exportedSymbol(name, constraint), sub},
			}
		}
	}

	// Load dependencies are passed through as given, even when they name a
	// package missing from the runtime dependencies.
	d.MainEntry = mainEntry{EntryFile: "./index.ts", LoadDependencies: []string{}}
	if m := cfg.Bundles.MainModule; m != nil {
		d.MainEntry = mainEntry{EntryFile: m.EntryFile, LoadDependencies: sliceOrEmpty(m.LoadDependencies)}
	}
	for _, aux := range cfg.Bundles.AuxiliaryModules {
		d.SecondaryEntries[aux.Name] = secondaryEntry{
			EntryFile:        aux.EntryFile,
			Name:             aux.Name,
			LoadDependencies: sliceOrEmpty(aux.LoadDependencies),
		}
	}

	return d
}

// expandURL fills the {name} and {repo} placeholders of pattern.
func expandURL(pattern, name string) string {
	if pattern == "" {
		return ""
	}
	repo := name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		repo = name[i+1:]
	}
	return strings.NewReplacer("{name}", name, "{repo}", repo).Replace(pattern)
}

func toJSON(v interface{}) (string, error) {
	b, err := marshalJSON(v, "")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func copyOrEmpty(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sliceOrEmpty(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
