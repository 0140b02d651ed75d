// Package enumvalidator reports string literals assigned to enum-typed
// struct fields. An enum is a named string type with at least one declared
// constant, such as model.Role or model.PostStatus. Test files are skipped.
package enumvalidator

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

var Analyzer = &analysis.Analyzer{
	Name:     "enumvalidator",
	Doc:      "reports string literals assigned to enum-typed struct fields; use the declared constants",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	enums := make(map[*types.Named]bool)

	check := func(field string, t types.Type, value ast.Expr) {
		lit, ok := ast.Unparen(value).(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return
		}
		named, ok := t.(*types.Named)
		if !ok || !isEnum(named, enums) {
			return
		}
		pass.Reportf(lit.Pos(), "enum field %s assigned string literal %s; use a %s constant",
			field, lit.Value, named.Obj().Name())
	}

	nodeFilter := []ast.Node{(*ast.AssignStmt)(nil), (*ast.CompositeLit)(nil)}
	insp.Preorder(nodeFilter, func(n ast.Node) {
		if strings.HasSuffix(pass.Fset.File(n.Pos()).Name(), "_test.go") {
			return
		}

		switch n := n.(type) {
		case *ast.AssignStmt:
			if len(n.Lhs) != len(n.Rhs) {
				return
			}
			for i, lhs := range n.Lhs {
				sel, ok := lhs.(*ast.SelectorExpr)
				if !ok {
					continue
				}
				check(sel.Sel.Name, pass.TypesInfo.TypeOf(sel), n.Rhs[i])
			}

		case *ast.CompositeLit:
			for _, elt := range n.Elts {
				kv, ok := elt.(*ast.KeyValueExpr)
				if !ok {
					continue
				}
				key, ok := kv.Key.(*ast.Ident)
				if !ok {
					continue
				}
				field, ok := pass.TypesInfo.ObjectOf(key).(*types.Var)
				if !ok || !field.IsField() {
					continue
				}
				check(key.Name, field.Type(), kv.Value)
			}
		}
	})

	return nil, nil
}

// isEnum reports whether named is a string type with constants declared
// in its own package.
func isEnum(named *types.Named, cache map[*types.Named]bool) bool {
	if known, ok := cache[named]; ok {
		return known
	}

	result := false
	basic, ok := named.Underlying().(*types.Basic)
	if ok && basic.Info()&types.IsString != 0 && named.Obj().Pkg() != nil {
		scope := named.Obj().Pkg().Scope()
		for _, name := range scope.Names() {
			if c, ok := scope.Lookup(name).(*types.Const); ok && types.Identical(c.Type(), named) {
				result = true
				break
			}
		}
	}

	cache[named] = result
	return result
}
