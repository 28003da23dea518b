package version

import "fmt"

// Error is a fatal violation of the versioning contract found while
// resolving a package: a release tag or manifest carrying a string that
// is not a semantic version, or a declared version below the released
// one. The message always spells out the offending version strings.
type Error struct {
	// Module is the short name of the package being resolved.
	Module string
	// Msg describes the violation, including the offending input.
	Msg string
	// Err is the underlying parse error, when one exists.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("version %s: %s", e.Module, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }
