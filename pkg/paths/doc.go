// Package paths provides path handling for subpack.
//
// It resolves path fragments the way the pipeline needs them:
//
//   - FullPath joins fragments into an absolute path. A later absolute
//     fragment discards everything before it, and relative results are
//     anchored at the current working directory.
//   - DirPath returns the parent directory of a path.
//   - ExpandHome expands a leading ~ to the user's home directory.
//
// It also locates subpack's own files under the XDG base directories
// (log file, global configuration).
//
// # Usage
//
//	src := paths.FullPath("dist/build/mp-weixin")          // /work/app/dist/build/mp-weixin
//	dst := paths.FullPath("../native", paths.DirPath("pkg/sub")) // /work/native/pkg
package paths
