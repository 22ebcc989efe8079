package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/pkgtmpl/pkgtmpl/internal/materialize"
	"github.com/pkgtmpl/pkgtmpl/internal/template"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"my-lib", false},
		{"lib.js", false},
		{"@youwol/flux-view", false},
		{"a", false},
		{"", true},
		{"MyLib", true},
		{"has space", true},
		{"@scope", true},
		{"@/name", true},
		{strings.Repeat("a", 215), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func initProject(t *testing.T, opts initOptions) string {
	t.Helper()
	if opts.Dir == "" {
		opts.Dir = filepath.Join(t.TempDir(), "demo")
	}
	if opts.Type == "" {
		opts.Type = string(template.Library)
	}
	if opts.Version == "" {
		opts.Version = "0.1.0"
	}
	var out bytes.Buffer
	if err := runInit(opts, &out); err != nil {
		t.Fatalf("runInit() error = %v", err)
	}
	return opts.Dir
}

func TestRunInitWritesLoadableTemplate(t *testing.T) {
	dir := initProject(t, initOptions{Description: "demo lib", Author: "jane", UserGuide: true, Year: 2024})

	loaded, err := template.Load(dir, template.LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg := loaded.Config
	if cfg.Name != "demo" {
		t.Errorf("Name = %q, want directory name %q", cfg.Name, "demo")
	}
	if cfg.Version != "0.1.0" || cfg.Author != "jane" || cfg.ShortDescription != "demo lib" {
		t.Errorf("identity = %q %q %q", cfg.Version, cfg.Author, cfg.ShortDescription)
	}
	if !cfg.UserGuide {
		t.Error("UserGuide = false, want true")
	}
	if cfg.CopyrightYear != 2024 {
		t.Errorf("CopyrightYear = %d, want 2024", cfg.CopyrightYear)
	}
	if cfg.Bundles.MainModule == nil || cfg.Bundles.MainModule.EntryFile != "./index.ts" {
		t.Errorf("MainModule = %+v", cfg.Bundles.MainModule)
	}
}

func TestRunInitRefusesOverwrite(t *testing.T) {
	dir := initProject(t, initOptions{})

	var out bytes.Buffer
	err := runInit(initOptions{Dir: dir, Type: "library", Version: "0.1.0"}, &out)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("runInit() error = %v, want already exists", err)
	}

	if err := runInit(initOptions{Dir: dir, Type: "library", Version: "0.2.0", Force: true}, &out); err != nil {
		t.Fatalf("runInit(--force) error = %v", err)
	}
	loaded, err := template.Load(dir, template.LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Config.Version != "0.2.0" {
		t.Errorf("Version = %q, want 0.2.0", loaded.Config.Version)
	}
}

func TestRunInitRejectsBadInput(t *testing.T) {
	var out bytes.Buffer
	dir := t.TempDir()

	if err := runInit(initOptions{Dir: dir, Type: "widget"}, &out); err == nil {
		t.Error("runInit(type=widget) error = nil")
	}
	if err := runInit(initOptions{Dir: dir, Type: "library", Name: "Bad Name"}, &out); err == nil {
		t.Error("runInit(name=Bad Name) error = nil")
	}
	if _, err := os.Stat(template.Path(dir)); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("template written despite errors: %v", err)
	}
}

func TestRunGenerate(t *testing.T) {
	dir := initProject(t, initOptions{Name: "@youwol/demo", Author: "jane"})

	var out bytes.Buffer
	err := runGenerate(context.Background(), generateOptions{Dir: dir}, &out, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("runGenerate() error = %v", err)
	}

	for _, name := range []string{"package.json", "LICENSE", "tsconfig.json", "webpack.config.ts", "README.md", ".gitignore", "src/auto-generated.ts"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not generated: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "typedoc.js")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("typedoc.js copied without user guide: %v", err)
	}
	if !strings.Contains(out.String(), "copied package.json") {
		t.Errorf("output missing copied files:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "@youwol/demo@0.1.0") {
		t.Errorf("output missing summary:\n%s", out.String())
	}
}

func TestRunGenerateAuxOverride(t *testing.T) {
	dir := initProject(t, initOptions{})

	var out bytes.Buffer
	opts := generateOptions{Dir: dir, Aux: []string{"README.md"}, AuxSet: true}
	if err := runGenerate(context.Background(), opts, &out, hclog.NewNullLogger()); err != nil {
		t.Fatalf("runGenerate() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "README.md")); err != nil {
		t.Errorf("README.md not copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "package.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("package.json copied although not listed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".template", "package.json")); err != nil {
		t.Errorf("package.json not staged: %v", err)
	}
}

func TestRunGenerateUnknownAuxFile(t *testing.T) {
	dir := initProject(t, initOptions{})

	var out bytes.Buffer
	opts := generateOptions{Dir: dir, Aux: []string{"README.md", "CHANGELOG.md"}, AuxSet: true}
	err := runGenerate(context.Background(), opts, &out, hclog.NewNullLogger())

	var copyErr *materialize.CopyError
	if !errors.As(err, &copyErr) {
		t.Fatalf("runGenerate() error = %v, want *CopyError", err)
	}
	if copyErr.File != "CHANGELOG.md" || copyErr.Reason != materialize.ReasonSourceMissing {
		t.Errorf("CopyError = %+v", copyErr)
	}
	if !strings.Contains(out.String(), "copied README.md") {
		t.Errorf("output missing files copied before the failure:\n%s", out.String())
	}
}

func TestRunGenerateFromManifest(t *testing.T) {
	dir := t.TempDir()
	pkg := `{"name": "pkg-a", "version": "1.2.3", "description": "d", "author": "a", "dependencies": {"rxjs": "^7.5.6"}}`
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(pkg), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	opts := generateOptions{Dir: dir, FromManifest: "package.json", Type: "library"}
	if err := runGenerate(context.Background(), opts, &out, hclog.NewNullLogger()); err != nil {
		t.Fatalf("runGenerate() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "src", "auto-generated.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "rxjs_APIv7") {
		t.Errorf("auto-generated.ts missing rxjs external:\n%s", data)
	}
}

func TestRunGenerateErrors(t *testing.T) {
	t.Run("missing template", func(t *testing.T) {
		var out bytes.Buffer
		err := runGenerate(context.Background(), generateOptions{Dir: t.TempDir()}, &out, hclog.NewNullLogger())
		if !errors.Is(err, template.ErrTemplateNotFound) {
			t.Errorf("error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("template dir outside project", func(t *testing.T) {
		dir := initProject(t, initOptions{})
		var out bytes.Buffer
		err := runGenerate(context.Background(), generateOptions{Dir: dir, TemplateDir: "../elsewhere"}, &out, hclog.NewNullLogger())
		if err == nil {
			t.Error("error = nil, want rejection")
		}
	})

	t.Run("bad type", func(t *testing.T) {
		var out bytes.Buffer
		opts := generateOptions{Dir: t.TempDir(), FromManifest: "package.json", Type: "widget"}
		if err := runGenerate(context.Background(), opts, &out, hclog.NewNullLogger()); err == nil {
			t.Error("error = nil, want invalid type")
		}
	})
}

func TestRunValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		dir := initProject(t, initOptions{})
		var out bytes.Buffer
		if err := runValidate(dir, &out); err != nil {
			t.Fatalf("runValidate() error = %v", err)
		}
		if !strings.Contains(out.String(), "ok") {
			t.Errorf("output = %q", out.String())
		}
	})

	t.Run("schema violation", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(template.Path(dir), []byte("type: widget\nname: x\n"), 0644); err != nil {
			t.Fatal(err)
		}
		var out bytes.Buffer
		if err := runValidate(dir, &out); err == nil {
			t.Fatal("runValidate() error = nil")
		}
		if !strings.Contains(out.String(), "type") {
			t.Errorf("output does not name the bad field:\n%s", out.String())
		}
	})

	t.Run("invalid manifest", func(t *testing.T) {
		dir := initProject(t, initOptions{FromManifest: "package.json"})
		if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name": "x", "version": "1.0.0"}`), 0644); err != nil {
			t.Fatal(err)
		}
		var out bytes.Buffer
		err := runValidate(dir, &out)
		if err == nil || !strings.Contains(err.Error(), "package.json") {
			t.Errorf("runValidate() error = %v, want package.json invalid", err)
		}
	})

	t.Run("manifest reference", func(t *testing.T) {
		dir := initProject(t, initOptions{FromManifest: "package.json"})
		pkg := `{"name": "from-manifest", "version": "2.0.0", "description": "d", "author": {"name": "Jane", "email": "j@x.io"}}`
		if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(pkg), 0644); err != nil {
			t.Fatal(err)
		}
		var out bytes.Buffer
		if err := runValidate(dir, &out); err != nil {
			t.Fatalf("runValidate() error = %v", err)
		}
		if !strings.Contains(out.String(), "from-manifest@2.0.0") {
			t.Errorf("output = %q", out.String())
		}
	})
}

func TestVersionCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	buildVersion = "1.2.3"
	t.Cleanup(func() {
		buildVersion = ""
		versionShort = false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"version", "--short"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "1.2.3" {
		t.Errorf("version --short = %q, want 1.2.3", got)
	}
}
