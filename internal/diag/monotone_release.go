//go:build !tacflow_debug

package diag

// AssertMonotone is a no-op outside of -tags tacflow_debug builds.
func AssertMonotone(leq func() bool, context string) {}
