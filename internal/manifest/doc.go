// Package manifest handles npm package manifests (package.json) and the
// declarative template descriptions that reference them. It parses the
// identity fields of a manifest and validates both document kinds against
// JSON Schemas embedded in the binary.
package manifest
