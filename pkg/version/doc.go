// Package version computes the next semantic version of a package from
// its git history.
//
// A [Resolver] looks up the latest release of a module (the highest
// reachable tag named "<module>@<version>"), classifies every commit made
// since, and derives a pending [Update] from the conventional-commit
// types it finds. Packages whose manifest declares a version ahead of the
// released one skip the calculation and carry the declared version as a
// forced update instead.
//
// Resolution never mutates the repository. All git access goes through
// the [History] interface, satisfied by [*git.Client], so tests can
// substitute canned histories.
package version
