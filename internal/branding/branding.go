// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	GoModule     string `yaml:"go_module"`
	TemplateDir  string `yaml:"template_dir"`
	TemplateFile string `yaml:"template_file"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:      "pkgtmpl",
			DisplayName:  "pkgtmpl",
			Description:  "Scaffolds npm package boilerplate from a declarative template",
			HomeDir:      ".pkgtmpl",
			EnvPrefix:    "PKGTMPL",
			GoModule:     "github.com/pkgtmpl/pkgtmpl",
			TemplateDir:  ".template",
			TemplateFile: "template.yaml",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "pkgtmpl").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".pkgtmpl").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "PKGTMPL").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// TemplateDir returns the project-relative directory the generator stages
// auxiliary files into (e.g., ".template").
func TemplateDir() string { load(); return defaults.TemplateDir }

// TemplateFile returns the name of the declarative template description
// looked up in a project root (e.g., "template.yaml").
func TemplateFile() string { load(); return defaults.TemplateFile }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("log_level") → "PKGTMPL_LOG_LEVEL".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
