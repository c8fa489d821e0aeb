package rsync

import (
	"strings"
)

// DefaultExecutable is the rsync binary looked up on PATH
const DefaultExecutable = "rsync"

// Command describes one rsync invocation
type Command struct {
	Executable  string
	Source      string
	Destination string

	// Flags are short options without the leading dash, e.g. "avz"
	Flags string

	Quiet  bool
	Delete bool
	DryRun bool
}

// Mirror returns a command that makes destination/<basename of source> an
// exact copy of source: archive mode, verbose, compressed, quiet, and
// deleting destination entries missing from source.
func Mirror(source, destination string) Command {
	return Command{
		Executable:  DefaultExecutable,
		Source:      source,
		Destination: destination,
		Flags:       "avz",
		Quiet:       true,
		Delete:      true,
	}
}

// Name returns the executable to run
func (c Command) Name() string {
	if c.Executable == "" {
		return DefaultExecutable
	}
	return c.Executable
}

// Args returns the argument list, without the executable
func (c Command) Args() []string {
	var args []string
	if c.Flags != "" {
		args = append(args, "-"+c.Flags)
	}
	if c.Quiet {
		args = append(args, "--quiet")
	}
	if c.Delete {
		args = append(args, "--delete")
	}
	if c.DryRun {
		args = append(args, "--dry-run")
	}
	return append(args, c.Source, c.Destination)
}

// String returns the command line as it would be typed in a shell
func (c Command) String() string {
	parts := []string{quote(c.Name())}
	for _, arg := range c.Args() {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`*?[]{}()<>|&;#~!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
