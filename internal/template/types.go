package template

import (
	"fmt"
	"strings"
)

// PackageType tags the kind of package being scaffolded.
type PackageType string

const (
	Library     PackageType = "library"
	Application PackageType = "application"
)

// ValidPackageTypes contains all valid package type values.
var ValidPackageTypes = []PackageType{Library, Application}

// Valid reports whether t is one of the canonical package types. Mixed-case
// spellings are not valid; ParsePackageType canonicalizes them.
func (t PackageType) Valid() bool {
	for _, v := range ValidPackageTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ParsePackageType converts s into a PackageType, ignoring case.
func ParsePackageType(s string) (PackageType, error) {
	for _, t := range ValidPackageTypes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown package type %q (want library or application)", s)
}

// RunTimeDeps lists the dependencies needed when the package runs.
// Externals are loaded separately at runtime and excluded from the bundle;
// IncludedInBundle are compiled into it.
type RunTimeDeps struct {
	Externals        map[string]string `yaml:"externals,omitempty"`
	IncludedInBundle map[string]string `yaml:"includedInBundle,omitempty"`

	// SubModules lists the import sub-paths of an external reached through
	// the parent's exported symbol, e.g. rxjs: [operators].
	SubModules map[string][]string `yaml:"subModules,omitempty"`
}

// Dependencies maps package names to version constraints.
type Dependencies struct {
	RunTime RunTimeDeps       `yaml:"runTime,omitempty"`
	DevTime map[string]string `yaml:"devTime,omitempty"`
}

// MainModule describes the main compiled unit of the package.
type MainModule struct {
	EntryFile        string   `yaml:"entryFile"`
	LoadDependencies []string `yaml:"loadDependencies,omitempty"`
}

// AuxiliaryModule is a secondary bundle entry published next to the main one.
type AuxiliaryModule struct {
	Name             string   `yaml:"name"`
	EntryFile        string   `yaml:"entryFile"`
	LoadDependencies []string `yaml:"loadDependencies,omitempty"`
}

// Bundles groups the bundle entries of the package.
type Bundles struct {
	MainModule       *MainModule       `yaml:"mainModule,omitempty"`
	AuxiliaryModules []AuxiliaryModule `yaml:"auxiliaryModules,omitempty"`
}

// PackageConfig is the declarative description of a package. It is built
// once per invocation and read, never modified, by generation and copying.
type PackageConfig struct {
	// TargetDirectory is the absolute path of the project root.
	TargetDirectory string `yaml:"-"`

	Type             PackageType `yaml:"type"`
	Name             string      `yaml:"name,omitempty"`
	Version          string      `yaml:"version,omitempty"`
	ShortDescription string      `yaml:"shortDescription,omitempty"`
	Author           string      `yaml:"author,omitempty"`

	Dependencies Dependencies `yaml:"dependencies,omitempty"`
	Bundles      Bundles      `yaml:"bundles,omitempty"`

	// CopyrightYear appears in the LICENSE notice. Zero omits the year.
	CopyrightYear int `yaml:"copyrightYear,omitempty"`

	TestConfigURL string `yaml:"testConfig,omitempty"`
	UserGuide     bool   `yaml:"userGuide,omitempty"`

	// PackageJSONOverrides is deep-merged into the generated package.json.
	PackageJSONOverrides map[string]interface{} `yaml:"packageJson,omitempty"`
}

// New returns an empty config of the given type rooted at targetDir.
func New(targetDir string, typ PackageType) *PackageConfig {
	return &PackageConfig{TargetDirectory: targetDir, Type: typ}
}

// SetRuntimeDependency records an external runtime dependency. A repeated
// name replaces the previous constraint.
func (c *PackageConfig) SetRuntimeDependency(name, constraint string) {
	if c.Dependencies.RunTime.Externals == nil {
		c.Dependencies.RunTime.Externals = make(map[string]string)
	}
	c.Dependencies.RunTime.Externals[name] = constraint
}

// SetBundledDependency records a runtime dependency compiled into the bundle.
func (c *PackageConfig) SetBundledDependency(name, constraint string) {
	if c.Dependencies.RunTime.IncludedInBundle == nil {
		c.Dependencies.RunTime.IncludedInBundle = make(map[string]string)
	}
	c.Dependencies.RunTime.IncludedInBundle[name] = constraint
}

// SetDevDependency records a development dependency.
func (c *PackageConfig) SetDevDependency(name, constraint string) {
	if c.Dependencies.DevTime == nil {
		c.Dependencies.DevTime = make(map[string]string)
	}
	c.Dependencies.DevTime[name] = constraint
}

// RuntimeDependencies returns externals and bundled dependencies merged into
// one map. Bundled entries win on a name collision.
func (c *PackageConfig) RuntimeDependencies() map[string]string {
	deps := make(map[string]string, len(c.Dependencies.RunTime.Externals)+len(c.Dependencies.RunTime.IncludedInBundle))
	for name, v := range c.Dependencies.RunTime.Externals {
		deps[name] = v
	}
	for name, v := range c.Dependencies.RunTime.IncludedInBundle {
		deps[name] = v
	}
	return deps
}

// DefaultAuxiliaryFiles returns the files copied from the template directory
// into the project root after generation, in copy order.
func DefaultAuxiliaryFiles(c *PackageConfig) []string {
	files := []string{
		"README.md",
		"LICENSE",
		".gitignore",
		".npmignore",
		".prettierignore",
		"package.json",
		"tsconfig.json",
		"jest.config.ts",
		"webpack.config.ts",
	}
	if c.Type == Application {
		files = append(files, "index.html")
	}
	if c.UserGuide {
		files = append(files, "typedoc.js")
	}
	return files
}
