package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/subpack/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/subpack/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/subpack/internal/version.Date={{.Date}}
)

// String returns a one-line description of the build
func String() string {
	return fmt.Sprintf("subpack %s (commit %s, built %s)", Version, Commit, Date)
}
