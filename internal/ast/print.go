package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump returns a human-readable representation of the AST.
func Dump(node Node) string {
	var sb strings.Builder
	fprintNode(&sb, node, 0)
	return sb.String()
}

func fprintNode(w io.Writer, n Node, indent int) {
	if n == nil {
		return
	}

	ind := strings.Repeat("  ", indent)

	switch n := n.(type) {
	case *SimpleType:
		fmt.Fprintf(w, "%sSimpleType %s\n", ind, n.Tok.Lexeme)

	case *TupleType:
		fmt.Fprintf(w, "%sTupleType len=%d\n", ind, len(n.Elems))
		for _, t := range n.Elems {
			fprintNode(w, t, indent+1)
		}

	case *ExprStmt:
		fmt.Fprintf(w, "%sExprStmt\n", ind)
		fprintNode(w, n.Expression, indent+1)

	case *LetStmt:
		fmt.Fprintf(w, "%sLet name=%s\n", ind, n.Name.Lexeme)
		if n.Type != nil {
			fmt.Fprintf(w, "%s  Type:\n", ind)
			fprintNode(w, n.Type, indent+2)
		}
		fmt.Fprintf(w, "%s  Init:\n", ind)
		fprintNode(w, n.Init, indent+2)

	case *BlockStmt:
		fmt.Fprintf(w, "%sBlockStmt\n", ind)
		for _, s := range n.Stmts {
			fprintNode(w, s, indent+1)
		}

	case *IfStmt:
		fmt.Fprintf(w, "%sIfStmt\n", ind)
		fmt.Fprintf(w, "%s  Cond:\n", ind)
		fprintNode(w, n.Cond, indent+2)
		fmt.Fprintf(w, "%s  Then:\n", ind)
		fprintNode(w, n.Then, indent+2)
		if n.Else != nil {
			fmt.Fprintf(w, "%s  Else:\n", ind)
			fprintNode(w, n.Else, indent+2)
		}

	case *WhileStmt:
		fmt.Fprintf(w, "%sWhileStmt\n", ind)
		fmt.Fprintf(w, "%s  Cond:\n", ind)
		fprintNode(w, n.Cond, indent+2)
		fmt.Fprintf(w, "%s  Body:\n", ind)
		fprintNode(w, n.Body, indent+2)

	case *ForStmt:
		fmt.Fprintf(w, "%sForStmt var=%s\n", ind, n.Var.Lexeme)
		fmt.Fprintf(w, "%s  Range:\n", ind)
		fprintNode(w, n.Range, indent+2)
		fmt.Fprintf(w, "%s  Body:\n", ind)
		fprintNode(w, n.Body, indent+2)

	case *FunStmt:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Lexeme
		}
		fmt.Fprintf(w, "%sFunStmt name=%s params=[%s]\n", ind, n.Name.Lexeme, strings.Join(params, " "))
		fmt.Fprintf(w, "%s  Body:\n", ind)
		fprintNode(w, n.Body, indent+2)

	case *ReturnStmt:
		fmt.Fprintf(w, "%sReturnStmt\n", ind)
		if n.Value != nil {
			fprintNode(w, n.Value, indent+1)
		}

	case *Literal:
		fmt.Fprintf(w, "%sLiteral %s\n", ind, n.Tok.Lexeme)

	case *Variable:
		fmt.Fprintf(w, "%sVariable %s\n", ind, n.Name.Lexeme)

	case *Assign:
		fmt.Fprintf(w, "%sAssign name=%s\n", ind, n.Name.Lexeme)
		fprintNode(w, n.Value, indent+1)

	case *Unary:
		fmt.Fprintf(w, "%sUnary op=%s\n", ind, n.Op.Lexeme)
		fprintNode(w, n.X, indent+1)

	case *Binary:
		fmt.Fprintf(w, "%sBinary op=%s\n", ind, n.Op.Lexeme)
		fmt.Fprintf(w, "%s  Left:\n", ind)
		fprintNode(w, n.Left, indent+2)
		fmt.Fprintf(w, "%s  Right:\n", ind)
		fprintNode(w, n.Right, indent+2)

	case *Logical:
		fmt.Fprintf(w, "%sLogical op=%s\n", ind, n.Op.Lexeme)
		fmt.Fprintf(w, "%s  Left:\n", ind)
		fprintNode(w, n.Left, indent+2)
		fmt.Fprintf(w, "%s  Right:\n", ind)
		fprintNode(w, n.Right, indent+2)

	case *Group:
		fmt.Fprintf(w, "%sGroup\n", ind)
		fprintNode(w, n.X, indent+1)

	case *Tuple:
		fmt.Fprintf(w, "%sTuple len=%d\n", ind, len(n.Elems))
		for _, el := range n.Elems {
			fprintNode(w, el, indent+1)
		}

	case *Call:
		fmt.Fprintf(w, "%sCall\n", ind)
		fmt.Fprintf(w, "%s  Callee:\n", ind)
		fprintNode(w, n.Callee, indent+2)
		if len(n.Args) > 0 {
			fmt.Fprintf(w, "%s  Args:\n", ind)
			for _, a := range n.Args {
				fprintNode(w, a, indent+2)
			}
		}

	case *RangeExpr:
		fmt.Fprintf(w, "%sRangeExpr\n", ind)
		fmt.Fprintf(w, "%s  From:\n", ind)
		fprintNode(w, n.From, indent+2)
		if n.Step != nil {
			fmt.Fprintf(w, "%s  Step:\n", ind)
			fprintNode(w, n.Step, indent+2)
		}
		fmt.Fprintf(w, "%s  To:\n", ind)
		fprintNode(w, n.To, indent+2)

	default:
		fmt.Fprintf(w, "%s<unknown node %T>\n", ind, n)
	}
}
