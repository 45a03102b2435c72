package checker

import (
	"strings"
	"testing"

	"github.com/glebzikunov/MTRAN/internal/diag"
	"github.com/glebzikunov/MTRAN/internal/parser"
)

func checkSource(t *testing.T, src string) []diag.Diagnostic {
	t.Helper()
	prog, err := parser.ParseFile("test.mt", src)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	return Check(prog)
}

// inMain wraps body in int main() { ... }; the body starts on line 2.
func inMain(body string) string { return "int main() {\n" + body + "\n}" }

func describeAll(ds []diag.Diagnostic) string {
	var parts []string
	for _, d := range ds {
		parts = append(parts, d.Code+" "+d.Error())
	}
	return strings.Join(parts, "\n")
}

func TestValidPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"int to float element", inMain("float a[5];\na[0] = 1;")},
		{"inner shadow", inMain("int x;\n{ int x;\nx = 1; }")},
		{"break in while", inMain("while (true) { break; }")},
		{"continue in for", inMain("for (int i = 0; i < 10; i++) { if (i == 3) continue; }")},
		{"break in nested if", inMain("while (true) if (true) break;")},
		{"arithmetic", inMain("int x = 1;\nfloat y = x + 2.5;\nbool b = x < y;\nreturn x % 2;")},
		{"compound float", inMain("float f;\nf += 1;\nf *= f;")},
		{"unary minus", inMain("int x = 3;\nfloat y = -x;\ny = -(y * 2);")},
		{"inc dec", inMain("int i;\ni++;\nfloat a[2];\na[1]--;")},
		{"printf", inMain("char c = 'a';\nstring s = \"hi\";\nfloat f = 1.0;\nint n = 2;\nint a[3];\nprintf(\"%c %s %5.2f %-3d %i%%\", c, s, f, n, a[0]);")},
		{"printf no args", inMain("printf(\"100%%\");")},
		{"comparisons", inMain("char c;\nstring s;\nbool b = c == 'x';\nb = s != \"y\";\nb = 1 < 2.5;\nb = b == true;")},
		{"global", "int g = 1;\nint main() { g = 2; return g; }"},
		{"void function", "void f(int x) { x = 1; return; }\nint main() return 0;"},
		{"params", "float avg(int a, float b) return a + b;"},
		{"bool array condition", inMain("bool ok[2];\nif (ok[0]) ok[1] = false;")},
		{"expression statement", inMain("int x;\nx + 1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ds := checkSource(t, tt.src); len(ds) != 0 {
				t.Errorf("unexpected diagnostics:\n%s", describeAll(ds))
			}
		})
	}
}

func TestInvalidPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
		line int
	}{
		{"bool to int element", inMain("int a[5];\na[0] = true;"), diag.ErrTypeMismatch, 3},
		{"redeclaration", inMain("int x;\nint x;"), diag.ErrRedeclaredSymbol, 3},
		{"break outside loop", inMain("break;"), diag.ErrInvalidJump, 2},
		{"continue outside loop", inMain("continue;"), diag.ErrInvalidJump, 2},
		{"break after loop", inMain("while (true) break;\nbreak;"), diag.ErrInvalidJump, 3},
		{"undeclared", inMain("x = 1;"), diag.ErrUndefinedSymbol, 2},
		{"bool to int", inMain("int x = true;"), diag.ErrTypeMismatch, 2},
		{"char to string", inMain("string s = 'a';"), diag.ErrTypeMismatch, 2},
		{"float to int", inMain("int x;\nx = 1.5;"), diag.ErrTypeMismatch, 3},
		{"arithmetic on bool", inMain("bool b = 1 + true;"), diag.ErrInvalidOperation, 2},
		{"float modulo", inMain("float f = 1.5 % 2;"), diag.ErrInvalidOperation, 2},
		{"compare char and int", inMain("bool b = 'a' < 1;"), diag.ErrInvalidOperation, 2},
		{"whole array value", inMain("int a[2];\nint x = a;"), diag.ErrArrayValue, 3},
		{"assign whole array", inMain("int a[2];\na = 1;"), diag.ErrArrayValue, 3},
		{"index non-array", inMain("int x;\nx[0] = 1;"), diag.ErrNotIndexable, 3},
		{"float size", inMain("int a[2.5];"), diag.ErrInvalidIndex, 2},
		{"bool index", inMain("int a[2];\na[true] = 1;"), diag.ErrInvalidIndex, 3},
		{"int while condition", inMain("int x;\nwhile (x) x = 1;"), diag.ErrInvalidCondition, 3},
		{"int element if condition", inMain("int a[2];\nif (a[0]) a[0] = 1;"), diag.ErrInvalidCondition, 3},
		{"int for condition", inMain("int i;\nfor (i = 0; i; i++) break;"), diag.ErrInvalidCondition, 3},
		{"bare return", inMain("return;"), diag.ErrInvalidReturn, 2},
		{"value from void", "void f() return 1;", diag.ErrInvalidReturn, 1},
		{"return mismatch", "bool f() return 1;", diag.ErrTypeMismatch, 1},
		{"void variable", inMain("void v;"), diag.ErrVoidVariable, 2},
		{"void parameter", "int f(void v) return 0;", diag.ErrVoidVariable, 1},
		{"increment bool", inMain("bool b;\nb++;"), diag.ErrInvalidOperation, 3},
		{"negate bool", inMain("bool b = true;\nint y = -b;"), diag.ErrInvalidOperation, 3},
		{"compound narrows", inMain("int x;\nx += 1.5;"), diag.ErrTypeMismatch, 3},
		{"compound on string", inMain("string s;\ns += \"a\";"), diag.ErrInvalidOperation, 3},
		{"printf count", inMain("int n;\nprintf(\"%d %d\", n);"), diag.ErrPrintfFormat, 3},
		{"printf type", inMain("float f;\nprintf(\"%d\", f);"), diag.ErrPrintfFormat, 3},
		{"printf unknown verb", inMain("printf(\"%q\");"), diag.ErrPrintfFormat, 2},
		{"printf trailing percent", inMain("printf(\"50%\");"), diag.ErrPrintfFormat, 2},
		{"printf array", inMain("int a[2];\nprintf(\"%d\", a);"), diag.ErrArrayValue, 3},
		{"function redeclared", "int f() return 0;\nint f() return 1;", diag.ErrRedeclaredSymbol, 2},
		{"param redeclared in body", "int main(int x) {\nint x;\n}", diag.ErrRedeclaredSymbol, 2},
		{"function as value", "int f() return 0;\nint main() { int y = f; }", diag.ErrInvalidOperation, 2},
		{"assign to function", "int f() return 0;\nint main() { f = 1; }", diag.ErrInvalidOperation, 2},
		{"block scope ends", inMain("{ int x; }\nx = 1;"), diag.ErrUndefinedSymbol, 3},
		{"for scope ends", inMain("for (int i = 0; i < 3; i++) i = i;\ni = 1;"), diag.ErrUndefinedSymbol, 3},
		{"if scope ends", inMain("if (true) int x;\nx = 1;"), diag.ErrUndefinedSymbol, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := checkSource(t, tt.src)
			if len(ds) != 1 {
				t.Fatalf("got %d diagnostics, want 1:\n%s", len(ds), describeAll(ds))
			}
			d := ds[0]
			if d.Code != tt.code || d.Line != tt.line || d.Kind != diag.Semantic {
				t.Errorf("got %s at line %d (%v), want %s at line %d\n%s", d.Code, d.Line, d.Kind, tt.code, tt.line, d.Message)
			}
		})
	}
}

func TestNoCascade(t *testing.T) {
	tests := []string{
		inMain("int x = y + 1;"),
		inMain("bool b = (y * 2) < 3;\nif (y < 1) b = true;"),
		inMain("int a[2];\na[i] = 1;"),
		inMain("z[0] = 1;"),
	}
	for _, src := range tests {
		ds := checkSource(t, src)
		if len(ds) == 0 {
			t.Errorf("%q: no diagnostics", src)
			continue
		}
		for _, d := range ds {
			if d.Code != diag.ErrUndefinedSymbol {
				t.Errorf("%q: cascaded diagnostic %s", src, d.Error())
			}
		}
	}
}

func TestContinuesAfterErrors(t *testing.T) {
	src := inMain("int x = true;\nbreak;\ny = 1;\nint x;")
	ds := checkSource(t, src)
	want := []struct {
		code string
		line int
	}{
		{diag.ErrTypeMismatch, 2},
		{diag.ErrInvalidJump, 3},
		{diag.ErrUndefinedSymbol, 4},
		{diag.ErrRedeclaredSymbol, 5},
	}
	if len(ds) != len(want) {
		t.Fatalf("got %d diagnostics, want %d:\n%s", len(ds), len(want), describeAll(ds))
	}
	for i, w := range want {
		if ds[i].Code != w.code || ds[i].Line != w.line {
			t.Errorf("diagnostic %d = %s line %d, want %s line %d", i, ds[i].Code, ds[i].Line, w.code, w.line)
		}
	}
}

func TestRunLimitAndReuse(t *testing.T) {
	prog, err := parser.ParseFile("test.mt", inMain("a = 1;\nb = 2;\nc = 3;"))
	if err != nil {
		t.Fatal(err)
	}
	c := New()
	bag := diag.NewBag(2)
	c.Run(prog, bag)
	if bag.Len() != 2 || bag.Truncated() != 1 {
		t.Errorf("Len() = %d, Truncated() = %d", bag.Len(), bag.Truncated())
	}

	// A second run starts from a fresh global scope.
	if ds := c.Check(prog); len(ds) != 3 {
		t.Errorf("second run: got %d diagnostics, want 3", len(ds))
	}
}

func TestParseFormat(t *testing.T) {
	verbs, err := parseFormat(`"%d and %-8.3f, %05i %c%s 100%%"`)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, v := range verbs {
		got = append(got, v.text)
	}
	if strings.Join(got, " ") != "%d %-8.3f %05i %c %s" {
		t.Errorf("verbs = %v", got)
	}

	for _, bad := range []string{`"%x"`, `"%"`, `"%5"`} {
		if _, err := parseFormat(bad); err == nil {
			t.Errorf("parseFormat(%s) succeeded", bad)
		}
	}
}
