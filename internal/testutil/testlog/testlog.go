package testlog

import (
	"testing"

	"github.com/rs/zerolog"
)

// Logger returns a trace-level logger that writes through t, so stack
// diagnostics land in the test output only when a test fails or -v is
// set.
func Logger(t *testing.T) zerolog.Logger {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.TraceLevel)
}
