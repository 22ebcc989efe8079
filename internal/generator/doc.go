// Package generator renders the primary artifacts of a package from its
// PackageConfig: the staged auxiliary sources (package.json, tsconfig,
// webpack and jest configs, README, ignore files) under the template
// directory, and src/auto-generated.ts describing runtime dependencies,
// webpack externals and bundle entries.
//
// Rendering is pure: the same config always yields the same bytes, and every
// artifact is rendered in memory before the first file is written.
package generator
