// Package diag centralizes the error taxonomy and structured logging used
// across the analysis packages, following the teacher's sentinel-error
// convention (see builder/errors.go in the retrieved graph library this
// module was bootstrapped from): exported sentinels, %w wrapping, no
// panics outside option constructors.
//
// Logging has no third-party grounding anywhere in this module's retrieved
// example pack's complete repos, so it is the one ambient concern built on
// the standard library (log/slog) rather than an ecosystem package; see
// DESIGN.md.
package diag

import (
	"fmt"
	"log/slog"
	"os"
)

// logger is process-wide; analyses are single-threaded per run (spec §5) so
// no additional synchronization is required around it.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// SetLogger overrides the package logger, e.g. to silence output in tests
// or to redirect it to a buffer.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// ResolutionFailure logs that a call site resolved to zero callees. Per
// spec §7 this is not an error: the call graph simply gains no edge for
// that site and the enclosing analysis continues.
func ResolutionFailure(site fmt.Stringer, subsig string) {
	logger.Warn("call site resolved to no targets", "site", site.String(), "subsignature", subsig)
}

// AssertMonotone is implemented in monotone_debug.go (build tag
// tacflow_debug, panics per spec §7's LatticeInvariantViolation) and
// monotone_release.go (default build, a no-op so production solvers pay
// nothing for the check).
