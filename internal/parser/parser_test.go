package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebzikunov/MTRAN/internal/ast"
	"github.com/glebzikunov/MTRAN/internal/lexer"
)

// sexpr renders an expression compactly for comparisons in tests.
func sexpr(x ast.Expr) string {
	switch x := x.(type) {
	case *ast.BinaryOp:
		return fmt.Sprintf("(%s %s %s)", x.Op, sexpr(x.Left), sexpr(x.Right))
	case *ast.Comparison:
		return fmt.Sprintf("(%s %s %s)", x.Op, sexpr(x.Left), sexpr(x.Right))
	case *ast.IntLit:
		return fmt.Sprint(x.Value)
	case *ast.FloatLit:
		return fmt.Sprint(x.Value)
	case *ast.CharLit:
		return x.Value
	case *ast.StringLit:
		return x.Value
	case *ast.BoolLit:
		return fmt.Sprint(x.Value)
	case *ast.Ref:
		return x.Name
	case *ast.IndexRef:
		return fmt.Sprintf("%s[%s]", x.Name, sexpr(x.Index))
	default:
		return fmt.Sprintf("<%T>", x)
	}
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseFile("test.mt", src)
	if err != nil {
		t.Fatalf("ParseFile(%q) error: %v", src, err)
	}
	return prog
}

// body parses src as the body of int main() and returns its instructions.
func body(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	prog := mustParse(t, "int main() {\n"+src+"\n}")
	fn, ok := prog.Functions.(*ast.Function)
	if !ok {
		t.Fatalf("Functions = %T, want *ast.Function", prog.Functions)
	}
	block, ok := fn.Body.(*ast.Block)
	if !ok {
		t.Fatalf("Body = %T, want *ast.Block", fn.Body)
	}
	return ast.Instructions(block.Body)
}

func syntaxError(t *testing.T, src string) *SyntaxError {
	t.Helper()
	_, err := ParseFile("test.mt", src)
	if err == nil {
		t.Fatalf("ParseFile(%q) succeeded, want syntax error", src)
	}
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("ParseFile(%q) error = %T %v, want *SyntaxError", src, err, err)
	}
	return se
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x = a + b < c;", "(+ a (< b c))"},
		{"x = a * b % c;", "(* a (% b c))"},
		{"x = a - b - c;", "(- (- a b) c)"},
		{"x = a + b * c;", "(+ a (* b c))"},
		{"x = a / b * c;", "(* (/ a b) c)"},
		{"x = a < b < c;", "(< (< a b) c)"},
		{"x = (a + b) * c;", "(* (+ a b) c)"},
		{"x = a[i + 1] == 'c';", "(== a[(+ i 1)] 'c')"},
		{"x = 1.5 + \"s\";", "(+ 1.5 \"s\")"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			stmts := body(t, tt.src)
			if len(stmts) != 1 {
				t.Fatalf("got %d instructions, want 1", len(stmts))
			}
			as, ok := stmts[0].(*ast.Assign)
			if !ok {
				t.Fatalf("instruction = %T, want *ast.Assign", stmts[0])
			}
			if got := sexpr(as.Value); got != tt.want {
				t.Errorf("value = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDanglingElse(t *testing.T) {
	stmts := body(t, "if (a < b) if (c < d) x = 1; else x = 2;")
	if len(stmts) != 1 {
		t.Fatalf("got %d instructions, want 1", len(stmts))
	}
	outer, ok := stmts[0].(*ast.If)
	if !ok {
		t.Fatalf("outer = %T, want *ast.If", stmts[0])
	}
	inner, ok := outer.Then.(*ast.IfElse)
	if !ok {
		t.Fatalf("inner = %T, want *ast.IfElse", outer.Then)
	}
	if got := sexpr(inner.Cond); got != "(< c d)" {
		t.Errorf("inner cond = %s", got)
	}
}

func TestIfCondition(t *testing.T) {
	valid := []string{
		"if (a < b) x = 1;",
		"if (true) x = 1;",
		"if (false) x = 1; else x = 2;",
		"if (a[0]) x = 1;",
		"if ((a) < b) x = 1;",
		"if ((a < b) == c) x = 1;",
	}
	for _, src := range valid {
		t.Run(src, func(t *testing.T) { body(t, src) })
	}

	invalid := []string{
		"if ((a < b)) x = 1;",
		"if (a + b) x = 1;",
		"if (a) x = 1;",
		"if (1) x = 1;",
		"if ((true)) x = 1;",
		"if (a + b < c) x = 1;",
	}
	for _, src := range invalid {
		t.Run(src, func(t *testing.T) {
			se := syntaxError(t, "int main() {\n"+src+"\n}")
			if se.Token.Type != lexer.RPAREN || se.Line != 2 {
				t.Errorf("error at %v line %d, want ')' on line 2", se.Token.Type, se.Line)
			}
		})
	}
}

func TestFor(t *testing.T) {
	stmts := body(t, "for (int i = 0; i < 10; i++) { s += i; }\nfor (i = 0; i <= n; i += 2) x = i;")
	if len(stmts) != 2 {
		t.Fatalf("got %d instructions, want 2", len(stmts))
	}

	f, ok := stmts[0].(*ast.For)
	if !ok {
		t.Fatalf("first = %T, want *ast.For", stmts[0])
	}
	if init, ok := f.Init.(*ast.AssignCreate); !ok || init.Decl.Name != "i" {
		t.Errorf("init = %#v", f.Init)
	}
	if got := sexpr(f.Cond); got != "(< i 10)" {
		t.Errorf("cond = %s", got)
	}
	if step, ok := f.Step.(*ast.AssignIncDec); !ok || step.Op != ast.OpInc {
		t.Errorf("step = %#v", f.Step)
	}
	if _, ok := f.Body.(*ast.Block); !ok {
		t.Errorf("body = %T", f.Body)
	}

	g := stmts[1].(*ast.For)
	if _, ok := g.Init.(*ast.Assign); !ok {
		t.Errorf("init = %T, want *ast.Assign", g.Init)
	}
	if step, ok := g.Step.(*ast.Assign); !ok || step.Op != ast.OpAddSet {
		t.Errorf("step = %#v", g.Step)
	}
}

func TestForStepRejectsArrayElement(t *testing.T) {
	syntaxError(t, "int main() for (i = 0; i < 3; a[i]++) x = 1;")
}

func TestUnaryMinus(t *testing.T) {
	stmts := body(t, "int y = -x;\ny = -(a + 1);")
	if n, ok := stmts[0].(*ast.AssignCreateUnaryMinus); !ok || sexpr(n.Value) != "x" {
		t.Errorf("first = %#v", stmts[0])
	}
	if n, ok := stmts[1].(*ast.AssignUnaryMinus); !ok || sexpr(n.Value) != "(+ a 1)" {
		t.Errorf("second = %#v", stmts[1])
	}

	for _, src := range []string{
		"x = a + -1;",
		"x += -1;",
		"a[0] = -1;",
		"return -1;",
	} {
		t.Run(src, func(t *testing.T) {
			se := syntaxError(t, "int main() {\n"+src+"\n}")
			if se.Token.Type != lexer.MINUS {
				t.Errorf("error at %v, want '-'", se.Token.Type)
			}
		})
	}
}

func TestArrayInstructions(t *testing.T) {
	stmts := body(t, "int a[5];\na[0] = 1;\na[1] *= 2;\na[2]--;")
	decl, ok := stmts[0].(*ast.TabDeclaration)
	if !ok || decl.Elem != ast.BTInt || decl.Name != "a" || sexpr(decl.Size) != "5" {
		t.Fatalf("decl = %#v", stmts[0])
	}
	if n, ok := stmts[1].(*ast.AssignTab); !ok || n.Op != ast.OpSet || n.Line != 3 {
		t.Errorf("second = %#v", stmts[1])
	}
	if n, ok := stmts[2].(*ast.AssignTab); !ok || n.Op != ast.OpMulSet {
		t.Errorf("third = %#v", stmts[2])
	}
	if n, ok := stmts[3].(*ast.AssignTabIncDec); !ok || n.Op != ast.OpDec {
		t.Errorf("fourth = %#v", stmts[3])
	}

	se := syntaxError(t, "int main() { void v[3]; }")
	if se.Token.Type != lexer.LBRACK {
		t.Errorf("void array error at %v, want '['", se.Token.Type)
	}
}

func TestPrint(t *testing.T) {
	stmts := body(t, "printf(\"hi\");\nprintf(\"%d %c\", n, s[1]);")
	p0 := stmts[0].(*ast.Print)
	if p0.Format.Value != `"hi"` || p0.Args != nil {
		t.Errorf("first = %#v", p0)
	}
	p1 := stmts[1].(*ast.Print)
	args := ast.Idents(p1.Args)
	if len(args) != 2 || sexpr(args[0]) != "n" || sexpr(args[1]) != "s[1]" {
		t.Errorf("args = %v", args)
	}
	if _, ok := p1.Args.(*ast.IdSeqIndexed); !ok {
		t.Errorf("Args = %T, want *ast.IdSeqIndexed", p1.Args)
	}

	syntaxError(t, "int main() printf(\"%d\", 1);")
	syntaxError(t, "int main() printf(x);")
}

func TestStatements(t *testing.T) {
	stmts := body(t, "while (i < 3) { i++; break; }\ncontinue;\nreturn;\nreturn i + 1;\na b[0] 1")
	if _, ok := stmts[0].(*ast.While); !ok {
		t.Errorf("while = %T", stmts[0])
	}
	if _, ok := stmts[1].(*ast.Continue); !ok {
		t.Errorf("continue = %T", stmts[1])
	}
	if r := stmts[2].(*ast.Return); r.Value != nil {
		t.Errorf("bare return has value %v", r.Value)
	}
	if r := stmts[3].(*ast.Return); sexpr(r.Value) != "(+ i 1)" {
		t.Errorf("return value = %s", sexpr(r.Value))
	}
	var exprs []string
	for _, s := range stmts[4:] {
		es, ok := s.(*ast.ExprStmt)
		if !ok {
			t.Fatalf("instruction = %T, want *ast.ExprStmt", s)
		}
		exprs = append(exprs, sexpr(es.X))
	}
	if got := strings.Join(exprs, " "); got != "a b[0] 1" {
		t.Errorf("expression instructions = %q", got)
	}
}

func TestFunctions(t *testing.T) {
	prog := mustParse(t, `int g = 5;
void f(int a, float b, char c) return;
int main() { return g; }`)

	items := ast.Functions(prog.Functions)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if g, ok := items[0].(*ast.AssignCreate); !ok || g.Decl.Name != "g" {
		t.Errorf("first item = %#v", items[0])
	}
	f := items[1].(*ast.Function)
	params := ast.Variables(f.Params)
	if f.Signature.Type != ast.BTVoid || len(params) != 3 || params[2].Type != ast.BTChar {
		t.Errorf("f = %#v, params %v", f.Signature, params)
	}
	main := items[2].(*ast.Function)
	if main.Params != nil || main.Signature.Line != 3 {
		t.Errorf("main = %#v", main)
	}
}

func TestSingleFunctionNotWrapped(t *testing.T) {
	prog := mustParse(t, "int main() return 0;")
	if _, ok := prog.Functions.(*ast.Function); !ok {
		t.Errorf("Functions = %T, want *ast.Function", prog.Functions)
	}
}

func TestTopLevelAssignOnlyFirst(t *testing.T) {
	se := syntaxError(t, "int g = 1;\nint h = 2;\nint main() return 0;")
	if se.Token.Type != lexer.ASSIGN || se.Line != 2 {
		t.Errorf("error at %v line %d, want '=' on line 2", se.Token.Type, se.Line)
	}

	prog := mustParse(t, "g = 1;\nint main() return 0;")
	if _, ok := ast.Functions(prog.Functions)[0].(*ast.Assign); !ok {
		t.Errorf("first item is not a plain assignment")
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"empty block", "int main() {\n}", 2, "syntax error at line 2: unexpected token '}'"},
		{"missing semicolon", "int main() {\nint x\n}", 3, "syntax error at line 3: unexpected token '}'"},
		{"keyword", "int main() {\nx = else;\n}", 2, "syntax error at line 2: unexpected token ELSE 'else'"},
		{"no functions", "", 1, "unexpected end of input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := syntaxError(t, tt.src)
			if se.Line != tt.line {
				t.Errorf("Line = %d, want %d", se.Line, tt.line)
			}
			if se.Error() != tt.msg {
				t.Errorf("Error() = %q, want %q", se.Error(), tt.msg)
			}
			if se.Filename != "test.mt" {
				t.Errorf("Filename = %q", se.Filename)
			}
		})
	}
}

func TestUnexpectedEOF(t *testing.T) {
	se := syntaxError(t, "int main() {\nx = 1;")
	if !se.EOF() {
		t.Errorf("EOF() = false, token %v", se.Token.Type)
	}
	if se.Error() != "unexpected end of input" {
		t.Errorf("Error() = %q", se.Error())
	}
}

func TestLexicalErrorPassthrough(t *testing.T) {
	for _, src := range []string{
		"int main() { int intfoo; }",
		"int main() x = 1; @",
		"int main() { x+++; }",
	} {
		t.Run(src, func(t *testing.T) {
			prog, err := ParseFile("test.mt", src)
			if prog != nil {
				t.Error("got a program alongside an error")
			}
			var le *lexer.Error
			if !errors.As(err, &le) {
				t.Fatalf("error = %T %v, want *lexer.Error", err, err)
			}
		})
	}
}
