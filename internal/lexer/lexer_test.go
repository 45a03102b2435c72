package lexer

import (
	"errors"
	"reflect"
	"testing"
)

func types(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestTokenizeKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []TokenType
	}{
		{"increment", "x++;", []TokenType{ID, PLUSPLUS, SEMI}},
		{"decrement", "x--;", []TokenType{ID, MINUSMINUS, SEMI}},
		{"printf call", `printf("x");`, []TokenType{PRINT, LPAREN, STRING, RPAREN, SEMI}},
		{"declaration", "int a[5];", []TokenType{INT, ID, LBRACK, INTNUM, RBRACK, SEMI}},
		{"compound", "a += 1; b -= 2; c *= 3; d /= 4;", []TokenType{
			ID, PLUSASSIGN, INTNUM, SEMI,
			ID, SUBASSIGN, INTNUM, SEMI,
			ID, MULASSIGN, INTNUM, SEMI,
			ID, DIVASSIGN, INTNUM, SEMI,
		}},
		{"comparisons", "< > <= >= != ==", []TokenType{LT, GT, LE, GE, NE, EQ}},
		{"literals", "+ - * / % ( ) [ ] { } = ; : ,", []TokenType{
			PLUS, MINUS, STAR, SLASH, PERCENT, LPAREN, RPAREN, LBRACK, RBRACK,
			LBRACE, RBRACE, ASSIGN, SEMI, COLON, COMMA,
		}},
		{"keywords", "if else for while break continue return true false", []TokenType{
			IF, ELSE, FOR, WHILE, BREAK, CONTINUE, RETURN, TRUE, FALSE,
		}},
		{"type keywords", "int float bool char string void", []TokenType{
			INT, FLOAT, BOOL, CHARTYPE, STRINGTYPE, VOID,
		}},
		{"char and string", `'a' "hello \"there\""`, []TokenType{CHAR, STRING}},
		{"comment", "x // int intfoo +++\ny", []TokenType{ID, ID}},
		{"unterminated string", `"abc`, []TokenType{DQUOTE, ID}},
		{"minus before number", "x = -5;", []TokenType{ID, ASSIGN, MINUS, INTNUM, SEMI}},
		{"underscore after digits", "12_a", []TokenType{INTNUM, ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize(tt.src)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.src, err)
			}
			if got := types(toks); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		src      string
		typ      TokenType
		intVal   int64
		floatVal float64
	}{
		{"42", INTNUM, 42, 0},
		{"0", INTNUM, 0, 0},
		{"3.14", FLOATNUM, 0, 3.14},
		{".5", FLOATNUM, 0, 0.5},
		{"5.", FLOATNUM, 0, 5},
		{"1e3", FLOATNUM, 0, 1000},
		{"2.5E-1", FLOATNUM, 0, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks, err := Tokenize(tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(toks) != 1 {
				t.Fatalf("got %d tokens, want 1", len(toks))
			}
			tok := toks[0]
			if tok.Type != tt.typ {
				t.Fatalf("type = %v, want %v", tok.Type, tt.typ)
			}
			if tok.Int != tt.intVal || tok.Float != tt.floatVal {
				t.Errorf("value = (%d, %g), want (%d, %g)", tok.Int, tok.Float, tt.intVal, tt.floatVal)
			}
			if tok.Lex != tt.src {
				t.Errorf("lexeme = %q, want %q", tok.Lex, tt.src)
			}
		})
	}
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		reason Reason
		text   string
		line   int
	}{
		{"reserved prefix", "int intfoo;", IllegalIdentifier, "intfoo", 1},
		{"printf prefix", "int printfoo;", IllegalIdentifier, "printfoo", 1},
		{"reserved infix", "x = format;", IllegalIdentifier, "format", 1},
		{"print contains int", "print", IllegalIdentifier, "print", 1},
		{"triple plus", "x+++;", OverlongIncDec, "+++", 1},
		{"quad minus", "\n\nx----;", OverlongIncDec, "----", 3},
		{"illegal char", "x = a & b;", IllegalCharacter, "&", 1},
		{"bang alone", "\n!x", IllegalCharacter, "!", 2},
		{"digits into letters", "x = 12abc;", MalformedNumber, "12abc", 1},
		{"int overflow", "99999999999999999999", MalformedNumber, "99999999999999999999", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.src)
			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("Tokenize(%q) error = %v, want *Error", tt.src, err)
			}
			if lexErr.Reason != tt.reason {
				t.Errorf("reason = %v, want %v", lexErr.Reason, tt.reason)
			}
			if lexErr.Text != tt.text {
				t.Errorf("text = %q, want %q", lexErr.Text, tt.text)
			}
			if lexErr.Line != tt.line {
				t.Errorf("line = %d, want %d", lexErr.Line, tt.line)
			}
		})
	}
}

func TestLineNumbers(t *testing.T) {
	src := "int main() {\n  int x = 1;\n\n  // comment\n  x++;\n}\n"
	toks, err := Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prev := 0
	for _, tok := range toks {
		if tok.Line < prev {
			t.Fatalf("line numbers decreased at %q: %d after %d", tok.Lex, tok.Line, prev)
		}
		prev = tok.Line
	}
	last := toks[len(toks)-1]
	if last.Type != RBRACE || last.Line != 6 {
		t.Errorf("last token = %v at line %d, want '}' at line 6", last.Type, last.Line)
	}
	for _, tok := range toks {
		if tok.Type == PLUSPLUS && tok.Line != 5 {
			t.Errorf("'++' on line %d, want 5", tok.Line)
		}
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	src := "int main() { float f = 1.5e2; char c = 'z'; printf(\"%f %c\", f, c); }"
	first, err := Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("re-lexing the same source produced a different token stream")
	}
}

func TestNextAfterError(t *testing.T) {
	l := New("a @ b")
	if tok, err := l.Next(); err != nil || tok.Type != ID {
		t.Fatalf("first Next() = %v, %v", tok, err)
	}
	_, err1 := l.Next()
	if err1 == nil {
		t.Fatal("expected an error for '@'")
	}
	_, err2 := l.Next()
	if err2 != err1 {
		t.Errorf("Next() after failure = %v, want the same error %v", err2, err1)
	}
}

func TestNextEOFRepeats(t *testing.T) {
	l := New("x")
	l.Next()
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		if err != nil || tok.Type != EOF {
			t.Fatalf("Next() = %v, %v, want EOF", tok, err)
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		tt   TokenType
		want string
	}{
		{ID, "ID"},
		{PLUSPLUS, "PLUSPLUS"},
		{LE, "LESSER_EQUAL"},
		{SEMI, "';'"},
		{CHARTYPE, "CHARTYPE"},
		{TokenType(999), "TokenType(999)"},
	}
	for _, tt := range tests {
		if got := tt.tt.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.tt), got, tt.want)
		}
	}
}
