// Package analyzer implements exitcheck: library code must return errors
// instead of terminating the process. It reports
//   - any call to the builtin panic;
//   - log.Fatal*, os.Exit and zerolog's Fatal/Panic outside func main of
//     package main.
package analyzer

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

var Analyzer = &analysis.Analyzer{
	Name: "exitcheck",
	Doc:  "check for usage of panic, log.Fatal and os.Exit outside of main.main",
	Run:  run,
}

// exitFuncs lists, per package path, the functions and methods that end the
// process. The reported name is the key of the matching entry.
var exitFuncs = map[string]map[string]string{
	"log": {
		"Fatal":   "log.Fatal",
		"Fatalf":  "log.Fatal",
		"Fatalln": "log.Fatal",
	},
	"os": {
		"Exit": "os.Exit",
	},
	"github.com/rs/zerolog/log": {
		"Fatal": "log.Fatal",
		"Panic": "log.Panic",
	},
	"github.com/rs/zerolog": {
		"Fatal": "log.Fatal",
		"Panic": "log.Panic",
	},
}

func run(pass *analysis.Pass) (any, error) {
	panicObj := types.Universe.Lookup("panic")
	isMainPkg := pass.Pkg.Name() == "main"

	for _, file := range pass.Files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Body == nil {
				continue
			}
			allowExit := isMainPkg && fn.Recv == nil && fn.Name.Name == "main"

			ast.Inspect(fn.Body, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}

				obj := calleeObject(pass, call)
				if obj == nil {
					return true
				}

				if obj == panicObj {
					pass.Reportf(call.Pos(), "panic should not be used in production code")
					return true
				}

				if name, ok := exitName(obj); ok && !allowExit {
					pass.Reportf(call.Pos(), "%s should only be used in main.main function", name)
				}
				return true
			})
		}
	}

	return nil, nil
}

func calleeObject(pass *analysis.Pass, call *ast.CallExpr) types.Object {
	switch v := ast.Unparen(call.Fun).(type) {
	case *ast.Ident:
		return pass.TypesInfo.ObjectOf(v)
	case *ast.SelectorExpr:
		return pass.TypesInfo.ObjectOf(v.Sel)
	}
	return nil
}

// exitName returns the display name of obj if it terminates the process.
func exitName(obj types.Object) (string, bool) {
	fn, ok := obj.(*types.Func)
	if !ok || fn.Pkg() == nil {
		return "", false
	}
	names, ok := exitFuncs[fn.Pkg().Path()]
	if !ok {
		return "", false
	}
	name, ok := names[fn.Name()]
	return name, ok
}
