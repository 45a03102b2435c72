package lexer

import (
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Reason classifies a lexical error.
type Reason int

const (
	IllegalCharacter Reason = iota
	IllegalIdentifier
	OverlongIncDec
	MalformedNumber
)

// Error is a lexical error. It stops tokenization for good.
type Error struct {
	Reason Reason
	Line   int
	Col    int
	Text   string
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lexical error at line %d: %s '%s'", e.Line, e.Msg, e.Text)
}

// A handler turns a match into a token. emit=false drops the match
// (whitespace, newlines, comments).
type regexHandler func(l *Lexer, match string) (tok Token, emit bool, err error)

type regexPattern struct {
	regex   *regexp.Regexp
	handler regexHandler
}

// First match wins, so order matters: identifiers before numbers, floats
// before integers, increment runs before compound assignment, two-character
// operators before single-character literals.
var patterns = []regexPattern{
	{regexp.MustCompile(`^[ \t\r]+`), skipHandler},
	{regexp.MustCompile(`^\n+`), skipHandler},
	{regexp.MustCompile(`^//[^\n]*`), skipHandler},
	{regexp.MustCompile(`^[A-Za-z_][A-Za-z_0-9]*`), identifierHandler},
	{regexp.MustCompile(`^(?:(?:[0-9]*\.[0-9]+|[0-9]+\.[0-9]*)(?:[eE][+-]?[0-9]+)?|[0-9]+[eE][+-]?[0-9]+)`), floatHandler},
	{regexp.MustCompile(`^[0-9]+`), intHandler},
	{regexp.MustCompile(`^\+\++`), runHandler(PLUSPLUS, "increment")},
	{regexp.MustCompile(`^--+`), runHandler(MINUSMINUS, "decrement")},
	{regexp.MustCompile(`^"(?:[^\\\n]|\\.)*?"`), defaultHandler(STRING)},
	{regexp.MustCompile(`^'(?s:.)'`), defaultHandler(CHAR)},
	{regexp.MustCompile(`^<=`), defaultHandler(LE)},
	{regexp.MustCompile(`^>=`), defaultHandler(GE)},
	{regexp.MustCompile(`^!=`), defaultHandler(NE)},
	{regexp.MustCompile(`^==`), defaultHandler(EQ)},
	{regexp.MustCompile(`^\+=`), defaultHandler(PLUSASSIGN)},
	{regexp.MustCompile(`^-=`), defaultHandler(SUBASSIGN)},
	{regexp.MustCompile(`^\*=`), defaultHandler(MULASSIGN)},
	{regexp.MustCompile(`^/=`), defaultHandler(DIVASSIGN)},
	{regexp.MustCompile(`^<`), defaultHandler(LT)},
	{regexp.MustCompile(`^>`), defaultHandler(GT)},
	{regexp.MustCompile(`^[-+*/%()\[\]{}=;:,'"]`), literalHandler},
}

type Lexer struct {
	src  string
	i    int
	line int
	col  int
	err  error
}

// New returns a lexer positioned at line 1 of src. Lexers are single-use;
// create a fresh one for every compilation unit.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Line reports the line the lexer is currently on.
func (l *Lexer) Line() int { return l.line }

func (l *Lexer) advance(match string) {
	for _, r := range match {
		if r == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
	l.i += len(match)
}

func (l *Lexer) remainder() string { return l.src[l.i:] }

func (l *Lexer) errorf(reason Reason, text, format string, args ...any) *Error {
	return &Error{Reason: reason, Line: l.line, Col: l.col, Text: text, Msg: fmt.Sprintf(format, args...)}
}

// Next returns the next token. Once the input is exhausted it keeps
// returning EOF; once it has failed it keeps returning the same error.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}
	for l.i < len(l.src) {
		rest := l.remainder()
		matched := false
		for _, p := range patterns {
			m := p.regex.FindString(rest)
			if m == "" {
				continue
			}
			matched = true
			tok, emit, err := p.handler(l, m)
			if err != nil {
				l.err = err
				return Token{}, err
			}
			l.advance(m)
			if emit {
				return tok, nil
			}
			break
		}
		if !matched {
			r, _ := utf8.DecodeRuneInString(rest)
			l.err = l.errorf(IllegalCharacter, string(r), "illegal character")
			return Token{}, l.err
		}
	}
	return Token{Type: EOF, Line: l.line, Col: l.col}, nil
}

// All yields tokens up to, not including, EOF. It stops after yielding the
// first error.
func (l *Lexer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := l.Next()
			if err != nil {
				yield(Token{}, err)
				return
			}
			if tok.Type == EOF {
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// Tokenize lexes src completely. The EOF token is not included.
func Tokenize(src string) ([]Token, error) {
	var toks []Token
	for tok, err := range New(src).All() {
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

func (l *Lexer) token(tt TokenType, match string) Token {
	return Token{Type: tt, Lex: match, Line: l.line, Col: l.col}
}

func skipHandler(*Lexer, string) (Token, bool, error) { return Token{}, false, nil }

func defaultHandler(tt TokenType) regexHandler {
	return func(l *Lexer, match string) (Token, bool, error) {
		return l.token(tt, match), true, nil
	}
}

func literalHandler(l *Lexer, match string) (Token, bool, error) {
	return l.token(literals[match[0]], match), true, nil
}

func identifierHandler(l *Lexer, match string) (Token, bool, error) {
	if tt, ok := Reserved[match]; ok {
		return l.token(tt, match), true, nil
	}
	for word := range Reserved {
		// "printf" itself contains "int"; it is handled above as a keyword.
		if strings.Contains(match, word) {
			return Token{}, false, l.errorf(IllegalIdentifier, match, "illegal identifier")
		}
	}
	return l.token(ID, match), true, nil
}

func floatHandler(l *Lexer, match string) (Token, bool, error) {
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return Token{}, false, l.errorf(MalformedNumber, match, "malformed number")
	}
	tok := l.token(FLOATNUM, match)
	tok.Float = v
	return tok, true, nil
}

func intHandler(l *Lexer, match string) (Token, bool, error) {
	// Digits running straight into letters are neither a number nor an
	// identifier.
	rest := l.remainder()[len(match):]
	if n := leadingWord(rest); n > 0 {
		return Token{}, false, l.errorf(MalformedNumber, match+rest[:n], "malformed number")
	}
	v, err := strconv.ParseInt(match, 10, 64)
	if err != nil {
		return Token{}, false, l.errorf(MalformedNumber, match, "integer literal out of range")
	}
	tok := l.token(INTNUM, match)
	tok.Int = v
	return tok, true, nil
}

func runHandler(tt TokenType, what string) regexHandler {
	return func(l *Lexer, match string) (Token, bool, error) {
		if len(match) > 2 {
			return Token{}, false, l.errorf(OverlongIncDec, match, "%s length is greater than 2", what)
		}
		return l.token(tt, match), true, nil
	}
}

func leadingWord(s string) int {
	n := 0
	for n < len(s) {
		c := s[n]
		if c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			n++
			continue
		}
		break
	}
	if n > 0 && !isLetter(s[0]) {
		return 0
	}
	return n
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
