// Package fsutil holds the filesystem primitives the materializer and the
// generator write through: existence checks, writability checks and atomic
// file copies/writes backed by renameio.
package fsutil
