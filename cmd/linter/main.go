// Command linter runs the exitcheck analyzer over the module.
//
//	go run ./cmd/linter ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/idudko/login-checker/cmd/linter/analyzer"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}
