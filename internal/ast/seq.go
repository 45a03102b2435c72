package ast

// The grammar's repetition rules are left-recursive, so repeated constructs
// arrive as left-leaning cons cells: ((a, b), c). The helpers below flatten
// a chain back into source order with an in-order walk; nothing else should
// assume a particular tree shape.

// InstructionSeq chains two instructions.
type InstructionSeq struct {
	Prior Stmt
	Next  Stmt
}

// FunctionSeq chains top-level items. Prior is a *Function, a top-level
// assignment or another *FunctionSeq.
type FunctionSeq struct {
	Prior Node
	Next  *Function
}

// VariableSeq chains function parameters.
type VariableSeq struct {
	Prior Node
	Next  *Variable
}

// IdSeq and IdSeqIndexed chain printf arguments.
type IdSeq struct {
	Prior Node
	Next  *Ref
}

type IdSeqIndexed struct {
	Prior Node
	Next  *IndexRef
}

func (n *InstructionSeq) Pos() int { return n.Prior.Pos() }
func (n *FunctionSeq) Pos() int    { return n.Prior.Pos() }
func (n *VariableSeq) Pos() int    { return n.Prior.Pos() }
func (n *IdSeq) Pos() int          { return n.Prior.Pos() }
func (n *IdSeqIndexed) Pos() int   { return n.Prior.Pos() }

// Instructions flattens an instruction chain. A nil statement yields nil.
func Instructions(s Stmt) []Stmt {
	var out []Stmt
	var walk func(Stmt)
	walk = func(s Stmt) {
		if seq, ok := s.(*InstructionSeq); ok {
			walk(seq.Prior)
			walk(seq.Next)
			return
		}
		if s != nil {
			out = append(out, s)
		}
	}
	walk(s)
	return out
}

// Functions flattens the top-level chain of a program.
func Functions(n Node) []Node {
	var out []Node
	var walk func(Node)
	walk = func(n Node) {
		if seq, ok := n.(*FunctionSeq); ok {
			walk(seq.Prior)
			walk(seq.Next)
			return
		}
		if n != nil {
			out = append(out, n)
		}
	}
	walk(n)
	return out
}

// Variables flattens a parameter list.
func Variables(n Node) []*Variable {
	var out []*Variable
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *VariableSeq:
			walk(n.Prior)
			walk(n.Next)
		case *Variable:
			out = append(out, n)
		}
	}
	walk(n)
	return out
}

// Idents flattens a printf argument list into *Ref and *IndexRef values.
func Idents(n Node) []Expr {
	var out []Expr
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *IdSeq:
			walk(n.Prior)
			walk(n.Next)
		case *IdSeqIndexed:
			walk(n.Prior)
			walk(n.Next)
		case *Ref:
			out = append(out, n)
		case *IndexRef:
			out = append(out, n)
		}
	}
	walk(n)
	return out
}
