package testcontainers

import (
	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/backend/testsuite"
)

// library is the document library every target writes below.
const library = "docs"

// target is one backend under test, registered under uri so doclibsimple resolves it.
type target struct {
	name     string
	uri      string
	provider doclib.Provider
	cfg      doclib.Config
	opts     testsuite.ConformanceOptions
}

func register(t target) target {
	backend.Register(t.uri, t.provider)
	return t
}
