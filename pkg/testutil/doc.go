// Package testutil provides utilities for testing subpack components.
//
// Key components:
//   - RecordingFS: in-memory filesystem that records reads, writes and
//     renames and can fail chosen paths
//   - MockExecutor: testify mock for rsync.Executor
//   - CreateFile / MemFile: test fixture helpers
package testutil
