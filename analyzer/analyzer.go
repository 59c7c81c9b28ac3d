// Package analyzer provides a go/analysis pass that checks sequence
// producer functions for common mistakes.
package analyzer

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

func New() *analysis.Analyzer {
	return &analysis.Analyzer{
		Name:     "sequenceproducer",
		Doc:      "Checks for common errors in sequence producer functions",
		Run:      run,
		Requires: []*analysis.Analyzer{inspect.Analyzer},
	}
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspector := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{(*ast.FuncDecl)(nil), (*ast.FuncLit)(nil)}

	inspector.Preorder(nodeFilter, func(node ast.Node) {
		var ft *ast.FuncType
		var body *ast.BlockStmt

		switch fn := node.(type) {
		case *ast.FuncDecl:
			ft, body = fn.Type, fn.Body
		case *ast.FuncLit:
			ft, body = fn.Type, fn.Body
		}

		if body == nil || !isProducer(ft) {
			return
		}

		ast.Inspect(body, func(n ast.Node) bool {
			switch n := n.(type) {
			// Nested function literals are inspected on their own.
			case *ast.FuncLit:
				return false

			case *ast.GoStmt:
				pass.Reportf(n.Pos(), "producers must emit from a single goroutine, do not start goroutines in a producer")

			case *ast.CallExpr:
				if isTimeSleep(n) {
					pass.Reportf(n.Pos(), "time.Sleep ignores cancellation, select on the context instead")
				}
			}

			return true
		})
	})

	return nil, nil
}

// isProducer reports whether the function takes a sequence.Emitter
// parameter. The check is syntactic, the import has to be named `sequence`.
func isProducer(ft *ast.FuncType) bool {
	if ft == nil || ft.Params == nil {
		return false
	}

	for _, param := range ft.Params.List {
		t := param.Type

		// Emitter is generic, strip the type argument.
		if idx, ok := t.(*ast.IndexExpr); ok {
			t = idx.X
		}

		sel, ok := t.(*ast.SelectorExpr)
		if !ok {
			continue
		}

		x, ok := sel.X.(*ast.Ident)
		if !ok {
			continue
		}

		if x.Name == "sequence" && sel.Sel.Name == "Emitter" {
			return true
		}
	}

	return false
}

func isTimeSleep(call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}

	x, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}

	return x.Name == "time" && sel.Sel.Name == "Sleep"
}
