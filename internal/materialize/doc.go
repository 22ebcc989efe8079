// Package materialize turns a PackageConfig into files on disk. It checks
// the target directory, delegates generation of the primary sources to a
// Generator, then copies an ordered list of auxiliary files from the template
// directory into the project root, overwriting existing copies.
//
// Copies are not rolled back: when one fails, the files copied before it stay
// in place. Every copy is an overwrite, so re-running after fixing the cause
// converges to the same result.
package materialize
