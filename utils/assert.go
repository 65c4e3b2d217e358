// File: utils/assert.go
package utils

import (
	"fmt"
	"testing"
)

// AssertPanics runs fn and reports whether it panicked, returning the panic
// message suffixed with posMessage. Shared by tests that assert fail-fast
// behavior on programmer errors.
func AssertPanics(t *testing.T, fn func(), posMessage string) (panicked bool, panicMsg string) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			panicMsg = fmt.Sprint(r) + posMessage
		}
	}()
	fn()
	return false, ""
}
