package mem

import (
	"testing"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend/testsuite"
)

// TestConformance runs the doclib conformance test suite against the in-memory backend.
// No environment variables are required as this backend operates entirely in memory.
func TestConformance(t *testing.T) {
	testsuite.RunConformanceTests(t, NewProvider(), doclib.Config{
		SiteName: "Finance",
		Library:  "Shared Documents",
	})
}
