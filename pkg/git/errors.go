package git

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotRepository marks the one subprocess failure callers may downgrade:
// the queried directory is not inside a git work tree. Match it with
// [IsNotRepository] or errors.Is.
var ErrNotRepository = errors.New("not a git repository")

// RunError reports a git subprocess that exited non-zero. It carries
// everything needed to diagnose the failed invocation without re-running it.
type RunError struct {
	Name     string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

// Error returns the command line, exit code, and captured stderr.
func (e *RunError) Error() string {
	msg := fmt.Sprintf("%s %s: exit %d", e.Name, strings.Join(e.Args, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Unwrap returns the underlying exec error.
func (e *RunError) Unwrap() error { return e.Err }

// Is reports ErrNotRepository for the distinguished "not a repository"
// failure so errors.Is(err, ErrNotRepository) works across wrapping.
func (e *RunError) Is(target error) bool {
	return target == ErrNotRepository && e.notRepository()
}

func (e *RunError) notRepository() bool {
	return e.ExitCode == 128 && strings.Contains(strings.ToLower(e.Stderr), "not a git repository")
}

// IsNotRepository reports whether err means the directory is not versioned.
// Callers treat that as "no release information", never as a hard failure.
func IsNotRepository(err error) bool {
	return errors.Is(err, ErrNotRepository)
}
