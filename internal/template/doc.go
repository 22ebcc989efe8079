// Package template defines PackageConfig, the declarative description of an
// npm package to scaffold, and loads it from a project's template.yaml.
// Identity fields (name, version, description, author) may be given
// literally or pulled from an existing package.json.
package template
