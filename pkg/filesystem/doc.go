// Package filesystem provides filesystem implementations for subpack.
//
// The FS interface holds the whole-file primitives the pipeline needs. The
// OS implementation and the in-memory test implementation are both backed
// by afero.
package filesystem
