package lexer

import "fmt"

type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Identifiers + literals
	ID
	INTNUM
	FLOATNUM
	CHAR
	STRING

	// Keywords
	IF
	ELSE
	FOR
	WHILE
	BREAK
	CONTINUE
	RETURN
	TRUE
	FALSE
	INT
	FLOAT
	BOOL
	CHARTYPE
	STRINGTYPE
	VOID
	PRINT
	CASE

	// Compound assignment
	PLUSASSIGN // +=
	SUBASSIGN  // -=
	MULASSIGN  // *=
	DIVASSIGN  // /=

	// Increment/decrement
	PLUSPLUS   // ++
	MINUSMINUS // --

	// Comparison
	LT // <
	GT // >
	LE // <=
	GE // >=
	NE // !=
	EQ // ==

	// Single-character literals
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	LPAREN  // (
	RPAREN  // )
	LBRACK  // [
	RBRACK  // ]
	LBRACE  // {
	RBRACE  // }
	ASSIGN  // =
	SEMI    // ;
	COLON   // :
	COMMA   // ,
	QUOTE   // '
	DQUOTE  // "
)

var tokenNames = [...]string{
	EOF:        "EOF",
	ID:         "ID",
	INTNUM:     "INTNUM",
	FLOATNUM:   "FLOATNUM",
	CHAR:       "CHAR",
	STRING:     "STRING",
	IF:         "IF",
	ELSE:       "ELSE",
	FOR:        "FOR",
	WHILE:      "WHILE",
	BREAK:      "BREAK",
	CONTINUE:   "CONTINUE",
	RETURN:     "RETURN",
	TRUE:       "TRUE",
	FALSE:      "FALSE",
	INT:        "INT",
	FLOAT:      "FLOAT",
	BOOL:       "BOOL",
	CHARTYPE:   "CHARTYPE",
	STRINGTYPE: "STRINGTYPE",
	VOID:       "VOID",
	PRINT:      "PRINT",
	CASE:       "CASE",
	PLUSASSIGN: "PLUSASSIGN",
	SUBASSIGN:  "SUBASSIGN",
	MULASSIGN:  "MULASSIGN",
	DIVASSIGN:  "DIVASSIGN",
	PLUSPLUS:   "PLUSPLUS",
	MINUSMINUS: "MINUSMINUS",
	LT:         "LESSER_THAN",
	GT:         "GREATER_THAN",
	LE:         "LESSER_EQUAL",
	GE:         "GREATER_EQUAL",
	NE:         "NOT_EQUAL",
	EQ:         "EQUAL",
	PLUS:       "'+'",
	MINUS:      "'-'",
	STAR:       "'*'",
	SLASH:      "'/'",
	PERCENT:    "'%'",
	LPAREN:     "'('",
	RPAREN:     "')'",
	LBRACK:     "'['",
	RBRACK:     "']'",
	LBRACE:     "'{'",
	RBRACE:     "'}'",
	ASSIGN:     "'='",
	SEMI:       "';'",
	COLON:      "':'",
	COMMA:      "','",
	QUOTE:      `'''`,
	DQUOTE:     `'"'`,
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Reserved maps every reserved word to its token type. The lexer also uses
// the key set to reject identifiers that embed a reserved word.
var Reserved = map[string]TokenType{
	"if":       IF,
	"else":     ELSE,
	"for":      FOR,
	"while":    WHILE,
	"break":    BREAK,
	"continue": CONTINUE,
	"return":   RETURN,
	"false":    FALSE,
	"true":     TRUE,
	"int":      INT,
	"float":    FLOAT,
	"bool":     BOOL,
	"char":     CHARTYPE,
	"string":   STRINGTYPE,
	"void":     VOID,
	"printf":   PRINT,
	"case":     CASE,
}

var literals = map[byte]TokenType{
	'+':  PLUS,
	'-':  MINUS,
	'*':  STAR,
	'/':  SLASH,
	'%':  PERCENT,
	'(':  LPAREN,
	')':  RPAREN,
	'[':  LBRACK,
	']':  RBRACK,
	'{':  LBRACE,
	'}':  RBRACE,
	'=':  ASSIGN,
	';':  SEMI,
	':':  COLON,
	',':  COMMA,
	'\'': QUOTE,
	'"':  DQUOTE,
}

// IsReserved reports whether t is produced by a reserved word.
func (t TokenType) IsReserved() bool { return t >= IF && t <= CASE }

// IsTypeKeyword reports whether t names one of the declarable types.
func (t TokenType) IsTypeKeyword() bool { return t >= INT && t <= VOID }

// IsOperator reports whether t is one of the multi-character operators.
func (t TokenType) IsOperator() bool { return t >= PLUSASSIGN && t <= EQ }

// IsLiteral reports whether t is a single-character literal token.
func (t TokenType) IsLiteral() bool { return t >= PLUS && t <= DQUOTE }

type Token struct {
	Type TokenType
	Lex  string
	Line int
	Col  int

	// Decoded values for INTNUM and FLOATNUM.
	Int   int64
	Float float64
}

func (t Token) Is(op TokenType) bool { return t.Type == op }

// Value returns the decoded literal value for numbers and the lexeme for
// everything else.
func (t Token) Value() any {
	switch t.Type {
	case INTNUM:
		return t.Int
	case FLOATNUM:
		return t.Float
	default:
		return t.Lex
	}
}
