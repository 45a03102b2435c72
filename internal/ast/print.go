package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Printer renders a tree one node per line, children indented by Indent.
// The output is meant for people; it is not source text and cannot be
// parsed back.
type Printer struct {
	Indent string
}

var DefaultPrinter = Printer{Indent: "| "}

func Fprint(w io.Writer, n Node) error { return DefaultPrinter.Fprint(w, n) }

func Sprint(n Node) string { return DefaultPrinter.Sprint(n) }

func (p Printer) Sprint(n Node) string {
	var b strings.Builder
	p.Fprint(&b, n)
	return b.String()
}

func (p Printer) Fprint(w io.Writer, n Node) error {
	tw := &treeWriter{w: w, indent: p.Indent}
	tw.node(n, 0)
	return tw.err
}

type treeWriter struct {
	w      io.Writer
	indent string
	err    error
}

func (t *treeWriter) line(depth int, format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, "%s%s\n", strings.Repeat(t.indent, depth), fmt.Sprintf(format, args...))
}

func (t *treeWriter) labelled(depth int, label string, n Node) {
	t.line(depth, "%s", label)
	t.node(n, depth+1)
}

func (t *treeWriter) node(n Node, d int) {
	switch n := n.(type) {
	case nil:
		return
	case *Program:
		for _, item := range Functions(n.Functions) {
			t.node(item, d)
		}
	case *FunctionSeq:
		for _, item := range Functions(n) {
			t.node(item, d)
		}
	case *Function:
		t.line(d, "FUNCTION %s", n.Signature.Name)
		t.line(d+1, "RETURNS %s", n.Signature.Type)
		if params := Variables(n.Params); len(params) > 0 {
			t.line(d+1, "PARAMS")
			for _, v := range params {
				t.node(v, d+2)
			}
		}
		t.labelled(d+1, "BODY", n.Body)
	case *VariableSeq:
		for _, v := range Variables(n) {
			t.node(v, d)
		}

	case *Variable:
		t.line(d, "DECL %s %s", n.Type, n.Name)
	case *TabDeclaration:
		t.line(d, "DECL %s[] %s", n.Elem, n.Name)
		t.node(n.Size, d+1)
	case *AssignCreate:
		t.line(d, "=")
		t.node(n.Decl, d+1)
		t.node(n.Value, d+1)
	case *AssignCreateUnaryMinus:
		t.line(d, "=")
		t.node(n.Decl, d+1)
		t.labelled(d+1, "NEG", n.Value)
	case *Assign:
		t.line(d, "%s", n.Op)
		t.node(n.Target, d+1)
		t.node(n.Value, d+1)
	case *AssignUnaryMinus:
		t.line(d, "=")
		t.node(n.Target, d+1)
		t.labelled(d+1, "NEG", n.Value)
	case *AssignIncDec:
		t.line(d, "%s", n.Op)
		t.node(n.Target, d+1)
	case *AssignTab:
		t.line(d, "%s", n.Op)
		t.labelled(d+1, "INDEX "+n.Target.Name, n.Index)
		t.node(n.Value, d+1)
	case *AssignTabIncDec:
		t.line(d, "%s", n.Op)
		t.labelled(d+1, "INDEX "+n.Target.Name, n.Index)
	case *If:
		t.line(d, "IF")
		t.node(n.Cond, d+1)
		t.labelled(d, "THEN", n.Then)
	case *IfElse:
		t.line(d, "IF")
		t.node(n.Cond, d+1)
		t.labelled(d, "THEN", n.Then)
		t.labelled(d, "ELSE", n.Else)
	case *While:
		t.line(d, "WHILE")
		t.node(n.Cond, d+1)
		t.labelled(d, "DO", n.Body)
	case *For:
		t.line(d, "FOR")
		t.labelled(d+1, "INIT", n.Init)
		t.labelled(d+1, "COND", n.Cond)
		t.labelled(d+1, "STEP", n.Step)
		t.labelled(d, "DO", n.Body)
	case *Break:
		t.line(d, "BREAK")
	case *Continue:
		t.line(d, "CONTINUE")
	case *Return:
		t.line(d, "RETURN")
		t.node(n.Value, d+1)
	case *Print:
		t.line(d, "PRINTF")
		t.node(n.Format, d+1)
		for _, arg := range Idents(n.Args) {
			t.node(arg, d+1)
		}
	case *Block:
		t.line(d, "BLOCK")
		for _, s := range Instructions(n.Body) {
			t.node(s, d+1)
		}
	case *InstructionSeq:
		for _, s := range Instructions(n) {
			t.node(s, d)
		}
	case *ExprStmt:
		t.node(n.X, d)
	case *IdSeq, *IdSeqIndexed:
		for _, arg := range Idents(n) {
			t.node(arg, d)
		}

	case *BinaryOp:
		t.line(d, "%s", n.Op)
		t.node(n.Left, d+1)
		t.node(n.Right, d+1)
	case *Comparison:
		t.line(d, "%s", n.Op)
		t.node(n.Left, d+1)
		t.node(n.Right, d+1)
	case *IntLit:
		t.line(d, "%d", n.Value)
	case *FloatLit:
		t.line(d, "%s", strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *CharLit:
		t.line(d, "%s", n.Value)
	case *StringLit:
		t.line(d, "%s", n.Value)
	case *BoolLit:
		t.line(d, "%t", n.Value)
	case *Ref:
		t.line(d, "%s", n.Name)
	case *IndexRef:
		t.labelled(d, "INDEX "+n.Name, n.Index)
	default:
		t.line(d, "<%T>", n)
	}
}
