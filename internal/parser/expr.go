package parser

import (
	"github.com/glebzikunov/MTRAN/internal/ast"
	"github.com/glebzikunov/MTRAN/internal/lexer"
)

// Binary operator precedence. Relational operators bind tightest, so
// a + b < c groups as a + (b < c). All levels are left associative.
const (
	precNone = iota
	precAdd
	precMul
	precMod
	precCmp
)

func binaryPrec(tt lexer.TokenType) int {
	switch tt {
	case lexer.PLUS, lexer.MINUS:
		return precAdd
	case lexer.STAR, lexer.SLASH:
		return precMul
	case lexer.PERCENT:
		return precMod
	case lexer.LT, lexer.GT, lexer.LE, lexer.GE, lexer.NE, lexer.EQ:
		return precCmp
	default:
		return precNone
	}
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseBinary(precAdd)
}

// parseExprFrom continues an expression whose first operand has already
// been parsed.
func (p *Parser) parseExprFrom(left ast.Expr) (ast.Expr, error) {
	return p.parseBinaryTail(left, precAdd)
}

func (p *Parser) parseBinary(minPrec int) (ast.Expr, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return p.parseBinaryTail(left, minPrec)
}

func (p *Parser) parseBinaryTail(left ast.Expr, minPrec int) (ast.Expr, error) {
	for {
		prec := binaryPrec(p.tok.Type)
		if prec == precNone || prec < minPrec {
			return left, nil
		}
		opTok := p.tok
		p.next()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = makeBinary(opTok, left, right)
	}
}

func makeBinary(op lexer.Token, l, r ast.Expr) ast.Expr {
	switch op.Type {
	case lexer.PLUS:
		return &ast.BinaryOp{Op: ast.OpAdd, Left: l, Right: r, Line: op.Line}
	case lexer.MINUS:
		return &ast.BinaryOp{Op: ast.OpSub, Left: l, Right: r, Line: op.Line}
	case lexer.STAR:
		return &ast.BinaryOp{Op: ast.OpMul, Left: l, Right: r, Line: op.Line}
	case lexer.SLASH:
		return &ast.BinaryOp{Op: ast.OpDiv, Left: l, Right: r, Line: op.Line}
	case lexer.PERCENT:
		return &ast.BinaryOp{Op: ast.OpMod, Left: l, Right: r, Line: op.Line}
	case lexer.LT:
		return &ast.Comparison{Op: ast.OpLt, Left: l, Right: r, Line: op.Line}
	case lexer.GT:
		return &ast.Comparison{Op: ast.OpGt, Left: l, Right: r, Line: op.Line}
	case lexer.LE:
		return &ast.Comparison{Op: ast.OpLe, Left: l, Right: r, Line: op.Line}
	case lexer.GE:
		return &ast.Comparison{Op: ast.OpGe, Left: l, Right: r, Line: op.Line}
	case lexer.NE:
		return &ast.Comparison{Op: ast.OpNe, Left: l, Right: r, Line: op.Line}
	default:
		return &ast.Comparison{Op: ast.OpEq, Left: l, Right: r, Line: op.Line}
	}
}

func (p *Parser) parseOperand() (ast.Expr, error) {
	t := p.tok
	switch t.Type {
	case lexer.INTNUM:
		p.next()
		return &ast.IntLit{Value: t.Int, Line: t.Line}, nil
	case lexer.FLOATNUM:
		p.next()
		return &ast.FloatLit{Value: t.Float, Line: t.Line}, nil
	case lexer.CHAR:
		p.next()
		return &ast.CharLit{Value: t.Lex, Line: t.Line}, nil
	case lexer.STRING:
		p.next()
		return &ast.StringLit{Value: t.Lex, Line: t.Line}, nil
	case lexer.TRUE, lexer.FALSE:
		p.next()
		return &ast.BoolLit{Value: t.Type == lexer.TRUE, Line: t.Line}, nil
	case lexer.ID:
		p.next()
		if p.tok.Type != lexer.LBRACK {
			return &ast.Ref{Name: t.Lex, Line: t.Line}, nil
		}
		open := p.tok
		p.next()
		index, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBRACK); err != nil {
			return nil, err
		}
		return &ast.IndexRef{Name: t.Lex, Index: index, Line: open.Line}, nil
	case lexer.LPAREN:
		p.next()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		p.paren = x
		return x, nil
	default:
		return nil, p.unexpected()
	}
}
