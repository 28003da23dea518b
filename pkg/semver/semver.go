// Package semver parses, compares, and increments semantic versions
// (semver.org, spec 2.0.0) including prerelease and build metadata.
package semver

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Bump identifies which version component changes between two versions.
type Bump string

// Bump categories in decreasing order of significance. None is the zero
// value and means no numeric component differs.
const (
	Major Bump = "major"
	Minor Bump = "minor"
	Patch Bump = "patch"
	None  Bump = ""
)

// ErrInvalid is the sentinel wrapped by every version parse failure.
var ErrInvalid = errors.New("invalid semantic version")

// InvalidVersionError reports an input that does not satisfy the semantic
// version grammar.
type InvalidVersionError struct {
	Input string
}

// Error returns the failure message including the offending input.
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid semantic version %q", e.Input)
}

// Unwrap returns [ErrInvalid] so callers can match with errors.Is.
func (e *InvalidVersionError) Unwrap() error { return ErrInvalid }

// Version is a parsed semantic version. The zero value is "0.0.0".
type Version struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Prerelease string
	Build      string
}

// pattern is the semver.org reference grammar with an optional leading "v".
var pattern = regexp.MustCompile(`^v?(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
	`(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?` +
	`(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`)

// Parse reads a semantic version string. A single leading "v" is tolerated
// and not preserved. Partial versions ("1", "1.2") are rejected.
func Parse(s string) (Version, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, &InvalidVersionError{Input: s}
	}

	var v Version
	var err error
	if v.Major, err = strconv.ParseUint(m[1], 10, 64); err != nil {
		return Version{}, &InvalidVersionError{Input: s}
	}
	if v.Minor, err = strconv.ParseUint(m[2], 10, 64); err != nil {
		return Version{}, &InvalidVersionError{Input: s}
	}
	if v.Patch, err = strconv.ParseUint(m[3], 10, 64); err != nil {
		return Version{}, &InvalidVersionError{Input: s}
	}
	v.Prerelease = m[4]
	v.Build = m[5]
	return v, nil
}

// MustParse is Parse for trusted inputs; it panics on failure.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String renders the canonical version string without a "v" prefix.
func (v Version) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		b.WriteByte('-')
		b.WriteString(v.Prerelease)
	}
	if v.Build != "" {
		b.WriteByte('+')
		b.WriteString(v.Build)
	}
	return b.String()
}

// Bump returns the version incremented by the given category. Lower
// components reset to zero; prerelease and build metadata are dropped.
// Bumping by None keeps the numeric core and still drops the suffixes.
func (v Version) Bump(b Bump) Version {
	switch b {
	case Major:
		return Version{Major: v.Major + 1}
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	case Patch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
}

// Compare orders a and b by semantic-version precedence and returns
// -1, 0, or +1. The numeric core is compared first; a version with a
// prerelease sorts below the same core without one; prerelease identifiers
// compare dot by dot with numeric identifiers before alphanumeric ones.
// Build metadata never participates in precedence.
func Compare(a, b Version) int {
	if c := cmp.Compare(a.Major, b.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Minor, b.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Patch, b.Patch); c != 0 {
		return c
	}
	return comparePrerelease(a.Prerelease, b.Prerelease)
}

// Diff reports the most significant component in which a and b differ,
// checked in major, minor, patch order, or None when the numeric cores are
// equal. Prerelease and build metadata are not inspected.
func Diff(a, b Version) Bump {
	switch {
	case a.Major != b.Major:
		return Major
	case a.Minor != b.Minor:
		return Minor
	case a.Patch != b.Patch:
		return Patch
	}
	return None
}

func comparePrerelease(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}

	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareIdentifier(as[i], bs[i]); c != 0 {
			return c
		}
	}
	// Equal prefix: the longer identifier list ranks higher.
	return cmp.Compare(len(as), len(bs))
}

func compareIdentifier(a, b string) int {
	an, aok := numericIdentifier(a)
	bn, bok := numericIdentifier(b)
	switch {
	case aok && bok:
		return cmp.Compare(an, bn)
	case aok:
		return -1
	case bok:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func numericIdentifier(s string) (uint64, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	return n, err == nil
}
