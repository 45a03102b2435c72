package parser

import (
	"fmt"

	"github.com/glebzikunov/MTRAN/internal/ast"
	"github.com/glebzikunov/MTRAN/internal/lexer"
)

// SyntaxError reports the first token the grammar could not accept.
type SyntaxError struct {
	Filename string
	Line     int
	Token    lexer.Token
}

// EOF reports whether the input ended before the program was complete.
func (e *SyntaxError) EOF() bool { return e.Token.Type == lexer.EOF }

func (e *SyntaxError) Error() string {
	if e.EOF() {
		return "unexpected end of input"
	}
	if e.Token.Type.IsLiteral() {
		return fmt.Sprintf("syntax error at line %d: unexpected token %s", e.Line, e.Token.Type)
	}
	return fmt.Sprintf("syntax error at line %d: unexpected token %s '%s'", e.Line, e.Token.Type, e.Token.Lex)
}

type Parser struct {
	filename string
	lx       *lexer.Lexer
	tok      lexer.Token
	// err holds a lexical error. Once set the parser only sees EOF.
	err error
	// paren is the most recent expression that was wrapped in parentheses.
	paren ast.Expr
}

// ParseFile parses a complete program. The error is a *lexer.Error or a
// *SyntaxError; no partial tree is returned with it.
func ParseFile(filename, src string) (*ast.Program, error) {
	return Parse(filename, lexer.New(src))
}

// Parse parses a complete program from lx.
func Parse(filename string, lx *lexer.Lexer) (*ast.Program, error) {
	p := &Parser{filename: filename, lx: lx}
	p.next()
	prog, err := p.parseProgram()
	if p.err != nil {
		return nil, p.err
	}
	if err != nil {
		return nil, err
	}
	return prog, nil
}

func (p *Parser) next() {
	if p.err != nil {
		return
	}
	tok, err := p.lx.Next()
	if err != nil {
		p.err = err
		p.tok = lexer.Token{Type: lexer.EOF, Line: p.lx.Line()}
		return
	}
	p.tok = tok
}

func (p *Parser) unexpected() error {
	return &SyntaxError{Filename: p.filename, Line: p.tok.Line, Token: p.tok}
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if p.tok.Type != tt {
		return lexer.Token{}, p.unexpected()
	}
	t := p.tok
	p.next()
	return t, nil
}

// program : functions
// functions : functions function | function | assign_instr
func (p *Parser) parseProgram() (*ast.Program, error) {
	fns, err := p.parseTopLevel()
	if err != nil {
		return nil, err
	}
	for p.tok.Type != lexer.EOF {
		v, err := p.parseVariable()
		if err != nil {
			return nil, err
		}
		fn, err := p.parseFunction(v)
		if err != nil {
			return nil, err
		}
		fns = &ast.FunctionSeq{Prior: fns, Next: fn}
	}
	return &ast.Program{Functions: fns}, nil
}

// parseTopLevel parses the first item of a program, which may be a global
// assignment instead of a function.
func (p *Parser) parseTopLevel() (ast.Node, error) {
	if p.tok.Type == lexer.ID {
		return p.parseIDInstruction(false)
	}
	v, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	switch p.tok.Type {
	case lexer.LPAREN:
		return p.parseFunction(v)
	case lexer.ASSIGN:
		return p.parseAssignCreate(v)
	default:
		return nil, p.unexpected()
	}
}

// function : variable '(' arguments ')' instruction | variable '(' ')' instruction
func (p *Parser) parseFunction(sig *ast.Variable) (*ast.Function, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var params ast.Node
	if p.tok.Type != lexer.RPAREN {
		first, err := p.parseVariable()
		if err != nil {
			return nil, err
		}
		params = first
		for p.tok.Type == lexer.COMMA {
			p.next()
			v, err := p.parseVariable()
			if err != nil {
				return nil, err
			}
			params = &ast.VariableSeq{Prior: params, Next: v}
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseInstruction()
	if err != nil {
		return nil, err
	}
	return &ast.Function{Signature: sig, Params: params, Body: body}, nil
}

// variable : TYPE ID
func (p *Parser) parseVariable() (*ast.Variable, error) {
	typTok := p.tok
	bt, ok := basicType(typTok.Type)
	if !ok {
		return nil, p.unexpected()
	}
	p.next()
	nameTok, err := p.expect(lexer.ID)
	if err != nil {
		return nil, err
	}
	return &ast.Variable{Type: bt, Name: nameTok.Lex, Line: typTok.Line}, nil
}

func (p *Parser) parseInstruction() (ast.Stmt, error) {
	switch p.tok.Type {
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.INT, lexer.FLOAT, lexer.BOOL, lexer.CHARTYPE, lexer.STRINGTYPE, lexer.VOID:
		return p.parseDeclaration()
	case lexer.ID:
		return p.parseIDInstruction(true)
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.BREAK:
		tok := p.tok
		p.next()
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		return &ast.Break{Line: tok.Line}, nil
	case lexer.CONTINUE:
		tok := p.tok
		p.next()
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		return &ast.Continue{Line: tok.Line}, nil
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.PRINT:
		return p.parsePrint()
	case lexer.INTNUM, lexer.FLOATNUM, lexer.CHAR, lexer.STRING, lexer.TRUE, lexer.FALSE, lexer.LPAREN:
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: x}, nil
	default:
		return nil, p.unexpected()
	}
}

// '{' instructions '}'
func (p *Parser) parseBlock() (ast.Stmt, error) {
	open, err := p.expect(lexer.LBRACE)
	if err != nil {
		return nil, err
	}
	body, err := p.parseInstruction()
	if err != nil {
		return nil, err
	}
	for p.tok.Type != lexer.RBRACE {
		s, err := p.parseInstruction()
		if err != nil {
			return nil, err
		}
		body = &ast.InstructionSeq{Prior: body, Next: s}
	}
	p.next()
	return &ast.Block{Body: body, Line: open.Line}, nil
}

// declaration : variable ';' | TYPE ID '[' expression ']' ';'
// assign_instr : variable '=' expression ';' | variable '=' '-' expression ';'
func (p *Parser) parseDeclaration() (ast.Stmt, error) {
	v, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	switch p.tok.Type {
	case lexer.SEMI:
		p.next()
		return v, nil
	case lexer.ASSIGN:
		return p.parseAssignCreate(v)
	case lexer.LBRACK:
		if v.Type == ast.BTVoid {
			return nil, p.unexpected()
		}
		open := p.tok
		p.next()
		size, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBRACK); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		return &ast.TabDeclaration{Elem: v.Type, Name: v.Name, Size: size, Line: open.Line}, nil
	default:
		return nil, p.unexpected()
	}
}

func (p *Parser) parseAssignCreate(v *ast.Variable) (ast.Stmt, error) {
	eq, err := p.expect(lexer.ASSIGN)
	if err != nil {
		return nil, err
	}
	negate := false
	if p.tok.Type == lexer.MINUS {
		negate = true
		p.next()
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	if negate {
		return &ast.AssignCreateUnaryMinus{Decl: v, Value: value, Line: eq.Line}, nil
	}
	return &ast.AssignCreate{Decl: v, Value: value, Line: eq.Line}, nil
}

// parseIDInstruction parses an instruction starting with an identifier:
// assign ';', the array element assignments, or, when allowExpr is set, an
// expression statement.
func (p *Parser) parseIDInstruction(allowExpr bool) (ast.Stmt, error) {
	id := p.tok
	p.next()

	if isAssignOp(p.tok.Type) || isIncDec(p.tok.Type) {
		s, err := p.parseAssign(id)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		return s, nil
	}

	if p.tok.Type != lexer.LBRACK {
		if !allowExpr {
			return nil, p.unexpected()
		}
		x, err := p.parseExprFrom(&ast.Ref{Name: id.Lex, Line: id.Line})
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: x}, nil
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
	target := &ast.Ref{Name: id.Lex, Line: id.Line}

	switch {
	case isAssignOp(p.tok.Type):
		opTok := p.tok
		p.next()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		return &ast.AssignTab{Target: target, Index: index, Op: assignOp(opTok.Type), Value: value, Line: opTok.Line}, nil
	case isIncDec(p.tok.Type):
		opTok := p.tok
		p.next()
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		return &ast.AssignTabIncDec{Target: target, Index: index, Op: incDecOp(opTok.Type), Line: opTok.Line}, nil
	case allowExpr:
		x, err := p.parseExprFrom(&ast.IndexRef{Name: id.Lex, Index: index, Line: open.Line})
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: x}, nil
	default:
		return nil, p.unexpected()
	}
}

// assign : ID op expression | ID '=' '-' expression | ID PLUSPLUS | ID MINUSMINUS
//
// The identifier has already been consumed.
func (p *Parser) parseAssign(id lexer.Token) (ast.Stmt, error) {
	target := &ast.Ref{Name: id.Lex, Line: id.Line}
	opTok := p.tok
	switch {
	case isIncDec(opTok.Type):
		p.next()
		return &ast.AssignIncDec{Target: target, Op: incDecOp(opTok.Type), Line: opTok.Line}, nil
	case isAssignOp(opTok.Type):
		p.next()
		if opTok.Type == lexer.ASSIGN && p.tok.Type == lexer.MINUS {
			p.next()
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return &ast.AssignUnaryMinus{Target: target, Value: value, Line: opTok.Line}, nil
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Target: target, Op: assignOp(opTok.Type), Value: value, Line: opTok.Line}, nil
	default:
		return nil, p.unexpected()
	}
}

// if_instr : IF '(' bool_expr ')' instruction
//          | IF '(' bool_expr ')' instruction ELSE instruction
//
// An else always belongs to the nearest if that has none.
func (p *Parser) parseIf() (ast.Stmt, error) {
	ifTok := p.tok
	p.next()
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	p.paren = nil
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.Type != lexer.RPAREN || !p.isBoolExpr(cond) {
		return nil, p.unexpected()
	}
	p.next()
	then, err := p.parseInstruction()
	if err != nil {
		return nil, err
	}
	if p.tok.Type != lexer.ELSE {
		return &ast.If{Cond: cond, Then: then, Line: ifTok.Line}, nil
	}
	p.next()
	els, err := p.parseInstruction()
	if err != nil {
		return nil, err
	}
	return &ast.IfElse{Cond: cond, Then: then, Else: els, Line: ifTok.Line}, nil
}

// isBoolExpr reports whether x was derived from bool_expr directly:
// a comparison, true/false or an indexed identifier, not parenthesised.
func (p *Parser) isBoolExpr(x ast.Expr) bool {
	if p.paren != nil && x == p.paren {
		return false
	}
	switch x.(type) {
	case *ast.Comparison, *ast.BoolLit, *ast.IndexRef:
		return true
	default:
		return false
	}
}

// while_instr : WHILE '(' expression ')' instruction
func (p *Parser) parseWhile() (ast.Stmt, error) {
	whileTok := p.tok
	p.next()
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseInstruction()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body, Line: whileTok.Line}, nil
}

// for_instr : FOR '(' assign_instr expression ';' assign ')' instruction
//
// The init clause brings its own ';', so only one more appears in the header.
func (p *Parser) parseFor() (ast.Stmt, error) {
	forTok := p.tok
	p.next()
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	var init ast.Stmt
	var err error
	if p.tok.Type == lexer.ID {
		init, err = p.parseIDInstruction(false)
	} else {
		var v *ast.Variable
		if v, err = p.parseVariable(); err == nil {
			init, err = p.parseAssignCreate(v)
		}
	}
	if err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}

	id, err := p.expect(lexer.ID)
	if err != nil {
		return nil, err
	}
	step, err := p.parseAssign(id)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseInstruction()
	if err != nil {
		return nil, err
	}
	return &ast.For{Init: init, Cond: cond, Step: step, Body: body, Line: forTok.Line}, nil
}

// return_instr : RETURN ';' | RETURN expression ';'
func (p *Parser) parseReturn() (ast.Stmt, error) {
	retTok := p.tok
	p.next()
	if p.tok.Type == lexer.SEMI {
		p.next()
		return &ast.Return{Line: retTok.Line}, nil
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return &ast.Return{Value: value, Line: retTok.Line}, nil
}

// print_instr : PRINT '(' STRING ')' ';' | PRINT '(' STRING ',' ids_list ')' ';'
func (p *Parser) parsePrint() (ast.Stmt, error) {
	printTok := p.tok
	p.next()
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	fmtTok, err := p.expect(lexer.STRING)
	if err != nil {
		return nil, err
	}
	var args ast.Node
	if p.tok.Type == lexer.COMMA {
		p.next()
		if args, err = p.parseIdsList(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return &ast.Print{
		Format: &ast.StringLit{Value: fmtTok.Lex, Line: fmtTok.Line},
		Args:   args,
		Line:   printTok.Line,
	}, nil
}

// ids_list : ids_list ',' ID | ids_list ',' ID '[' index ']' | ID | ID '[' index ']'
func (p *Parser) parseIdsList() (ast.Node, error) {
	first, err := p.parseIdsItem()
	if err != nil {
		return nil, err
	}
	list := ast.Node(first)
	for p.tok.Type == lexer.COMMA {
		p.next()
		item, err := p.parseIdsItem()
		if err != nil {
			return nil, err
		}
		switch item := item.(type) {
		case *ast.IndexRef:
			list = &ast.IdSeqIndexed{Prior: list, Next: item}
		case *ast.Ref:
			list = &ast.IdSeq{Prior: list, Next: item}
		}
	}
	return list, nil
}

func (p *Parser) parseIdsItem() (ast.Expr, error) {
	id, err := p.expect(lexer.ID)
	if err != nil {
		return nil, err
	}
	if p.tok.Type != lexer.LBRACK {
		return &ast.Ref{Name: id.Lex, Line: id.Line}, nil
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
	return &ast.IndexRef{Name: id.Lex, Index: index, Line: open.Line}, nil
}

func basicType(tt lexer.TokenType) (ast.BasicType, bool) {
	switch tt {
	case lexer.INT:
		return ast.BTInt, true
	case lexer.FLOAT:
		return ast.BTFloat, true
	case lexer.BOOL:
		return ast.BTBool, true
	case lexer.CHARTYPE:
		return ast.BTChar, true
	case lexer.STRINGTYPE:
		return ast.BTString, true
	case lexer.VOID:
		return ast.BTVoid, true
	default:
		return 0, false
	}
}

func isAssignOp(tt lexer.TokenType) bool {
	switch tt {
	case lexer.ASSIGN, lexer.PLUSASSIGN, lexer.SUBASSIGN, lexer.MULASSIGN, lexer.DIVASSIGN:
		return true
	default:
		return false
	}
}

func isIncDec(tt lexer.TokenType) bool { return tt == lexer.PLUSPLUS || tt == lexer.MINUSMINUS }

func assignOp(tt lexer.TokenType) ast.AssignOp {
	switch tt {
	case lexer.PLUSASSIGN:
		return ast.OpAddSet
	case lexer.SUBASSIGN:
		return ast.OpSubSet
	case lexer.MULASSIGN:
		return ast.OpMulSet
	case lexer.DIVASSIGN:
		return ast.OpDivSet
	default:
		return ast.OpSet
	}
}

func incDecOp(tt lexer.TokenType) ast.IncDecOp {
	if tt == lexer.MINUSMINUS {
		return ast.OpDec
	}
	return ast.OpInc
}
