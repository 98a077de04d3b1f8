/*
File    : epilang/ast/printer.go
*/

package ast

import (
	"bytes"
	"fmt"
)

const indentSize = 2

// Printer renders an Expression tree as an indented debug dump. It is the
// adapted descendant of go-mix's PrintingVisitor — generalized from a
// visitor-per-node-type to a single recursive Print method, since Epilang's
// tree has no statement/expression split to dispatch on.
type Printer struct {
	indent int
	buf    bytes.Buffer
}

// Print renders e and everything beneath it.
func (p *Printer) Print(e Expression) string {
	p.buf.Reset()
	p.indent = 0
	p.print(e)
	return p.buf.String()
}

func (p *Printer) line(format string, args ...interface{}) {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteByte(' ')
	}
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *Printer) print(e Expression) {
	switch n := e.(type) {
	case *Const:
		p.line("Const(%s)", n.Value)
	case *Var:
		p.line("Var(%s @%d)", n.Name, n.Scope)
	case *Decl:
		p.line("Decl(%s)", n.Name)
		p.indent += indentSize
		p.print(n.Init)
		p.print(n.Body)
		p.indent -= indentSize
	case *Assign:
		p.line("Assign")
		p.indent += indentSize
		p.print(n.Target)
		p.print(n.Value)
		p.indent -= indentSize
	case *Seq:
		p.line("Seq")
		p.indent += indentSize
		p.print(n.First)
		p.print(n.Second)
		p.indent -= indentSize
	case *List:
		p.line("List(%d elems)", len(n.Elements))
		p.indent += indentSize
		for _, elem := range n.Elements {
			p.print(elem)
		}
		p.indent -= indentSize
	case *ListSelection:
		p.line("ListSelection")
		p.indent += indentSize
		p.print(n.List)
		p.print(n.Index)
		p.indent -= indentSize
	case *BinaryOp:
		p.line("BinaryOp(%s)", n.Op)
		p.indent += indentSize
		p.print(n.Left)
		p.print(n.Right)
		p.indent -= indentSize
	case *UnaryOp:
		p.line("UnaryOp(%s)", n.Op)
		p.indent += indentSize
		p.print(n.Operand)
		p.indent -= indentSize
	case *IfThenElse:
		p.line("IfThenElse")
		p.indent += indentSize
		p.print(n.Cond)
		p.print(n.Then)
		p.print(n.Else)
		p.indent -= indentSize
	case *While:
		p.line("While")
		p.indent += indentSize
		p.print(n.Guard)
		p.print(n.Body)
		p.indent -= indentSize
	case *Function:
		p.line("Function(%v)", n.ParamNames)
		p.indent += indentSize
		p.print(n.Body)
		p.indent -= indentSize
	case *FunctionCall:
		p.line("FunctionCall(%d args)", len(n.Args))
		p.indent += indentSize
		p.print(n.Callable)
		for _, arg := range n.Args {
			p.print(arg)
		}
		p.indent -= indentSize
	case *Try:
		p.line("Try")
		p.indent += indentSize
		p.print(n.Body)
		p.indent -= indentSize
	case *TryCatch:
		p.line("TryCatch(%s)", n.ExceptionVar)
		p.indent += indentSize
		p.print(n.Body)
		p.print(n.Handler)
		p.indent -= indentSize
	case *Callcc:
		p.line("Callcc(%s)", n.Label)
		p.indent += indentSize
		p.print(n.Body)
		p.indent -= indentSize
	case *Throw:
		p.line("Throw")
		p.indent += indentSize
		p.print(n.Value)
		p.indent -= indentSize
	case *Throwcc:
		p.line("Throwcc(%s)", n.Label)
		p.indent += indentSize
		p.print(n.Value)
		p.indent -= indentSize
	default:
		p.line("<unknown node %T>", n)
	}
}
