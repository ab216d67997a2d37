package asm

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// evaluate does compile-time $(...) evaluations. The known integer equates
// and LINENO are predeclared.
func (p *parser) evaluate(expr string, lineno int) (value int64, err error) {
	thread := starlark.Thread{Name: "casm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"LINENO": starlark.MakeInt(lineno),
	}
	for key, equ := range p.equates {
		pred[key] = starlark.MakeInt64(equ)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = &ErrParseExpression{Expr: expr, Err: err}
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = &ErrParseExpression{Expr: expr}
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = &ErrParseExpression{Expr: expr}
		return
	}
	value, ok = st_int.Int64()
	if ok {
		return
	}
	// Allow the full unsigned range, as hexadecimal literals do.
	u64, ok := st_int.Uint64()
	if !ok {
		err = &ErrParseExpression{Expr: expr}
		return
	}
	value = int64(u64)
	return
}
