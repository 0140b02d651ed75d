// Command plugin exposes the repo's analyzers to golangci-lint as a Go plugin.
package main

import (
	"golang.org/x/tools/go/analysis"

	"basegraph.app/cms/tools/linters/enumvalidator"
)

func New(conf any) ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{enumvalidator.Analyzer}, nil
}

// main is unused when built with -buildmode=plugin; it lets `go build ./...` succeed.
func main() {}
