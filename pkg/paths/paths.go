package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Application file locations relative to the XDG base directories
const (
	// AppDirName is the directory name for subpack-specific files
	AppDirName = "subpack"

	// LogFileName is the name of the log file
	LogFileName = "subpack.log"

	// GlobalConfigFile is the name of the user-wide configuration file
	GlobalConfigFile = "config.toml"
)

// FullPath resolves fragments into an absolute, cleaned path.
// Empty fragments are ignored and an absolute fragment resets the path
// built so far. With no fragments it returns the working directory.
func FullPath(parts ...string) string {
	resolved := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if filepath.IsAbs(part) {
			resolved = part
			continue
		}
		resolved = filepath.Join(resolved, part)
	}

	abs, err := filepath.Abs(resolved)
	if err != nil {
		// Abs only fails when the working directory is unknown
		return filepath.Clean(resolved)
	}
	return abs
}

// DirPath returns all but the last element of path
func DirPath(path string) string {
	return filepath.Dir(path)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}

// LogFilePath returns the log file location under XDG_STATE_HOME,
// creating its parent directory.
func LogFilePath() (string, error) {
	return xdg.StateFile(filepath.Join(AppDirName, LogFileName))
}

// GlobalConfigPath returns the user-wide configuration file if one exists
// in any of the XDG config directories.
func GlobalConfigPath() (string, bool) {
	path, err := xdg.SearchConfigFile(filepath.Join(AppDirName, GlobalConfigFile))
	if err != nil {
		return "", false
	}
	return path, true
}
