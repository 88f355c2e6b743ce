//go:build tacflow_debug

package diag

import "fmt"

// AssertMonotone panics if leq() is false. Built only with -tags
// tacflow_debug; see spec §7 LatticeInvariantViolation.
func AssertMonotone(leq func() bool, context string) {
	if !leq() {
		panic(fmt.Sprintf("diag: lattice invariant violated: %s", context))
	}
}
