// Package tokentab groups a token stream into the lexer report tables:
// every token, then one table per token class.
package tokentab

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/glebzikunov/MTRAN/internal/lexer"
)

type Kind int

const (
	All Kind = iota
	Literals
	Reserved
	Operators
	Identifiers
	Numbers
	Strings
)

// Kinds lists every table in report order.
var Kinds = []Kind{All, Literals, Reserved, Operators, Identifiers, Numbers, Strings}

var kindNames = [...]string{
	All:         "all",
	Literals:    "literals",
	Reserved:    "reserved",
	Operators:   "operators",
	Identifiers: "ids",
	Numbers:     "numbers",
	Strings:     "strings",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts the names printed by String.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown table %q (want one of %s)", s, strings.Join(kindNames[:], ", "))
}

func (k Kind) Title() string {
	switch k {
	case All:
		return "Tokens"
	case Literals:
		return "Literal Table"
	case Reserved:
		return "Reserved Words Table"
	case Operators:
		return "Operators Table"
	case Identifiers:
		return "Identifier Table"
	case Numbers:
		return "Numbers Table"
	default:
		return "Symbol Table"
	}
}

func (k Kind) headers() []string {
	switch k {
	case All:
		return []string{"Line", "Token Type", "Token Value"}
	case Literals:
		return []string{"Line", "Literal"}
	case Reserved:
		return []string{"Line", "Reserved Word"}
	case Operators:
		return []string{"Line", "Operator"}
	case Identifiers:
		return []string{"Line", "Identifier"}
	case Numbers:
		return []string{"Line", "Type", "Value"}
	default:
		return []string{"Line", "CHAR or STRING"}
	}
}

func (k Kind) includes(tt lexer.TokenType) bool {
	switch k {
	case All:
		return true
	case Literals:
		return tt.IsLiteral()
	case Reserved:
		return tt.IsReserved()
	case Operators:
		return tt.IsOperator()
	case Identifiers:
		return tt == lexer.ID
	case Numbers:
		return tt == lexer.INTNUM || tt == lexer.FLOATNUM
	case Strings:
		return tt == lexer.CHAR || tt == lexer.STRING
	default:
		return false
	}
}

type Table struct {
	Kind    Kind
	Headers []string
	Rows    [][]string
}

// Build collects the tokens of class k. With unique set only the first
// occurrence of each token text is kept.
func Build(toks []lexer.Token, k Kind, unique bool) Table {
	t := Table{Kind: k, Headers: k.headers()}
	seen := make(map[string]bool)
	for _, tok := range toks {
		if !k.includes(tok.Type) {
			continue
		}
		if unique {
			if seen[tok.Lex] {
				continue
			}
			seen[tok.Lex] = true
		}
		line := strconv.Itoa(tok.Line)
		switch k {
		case All, Numbers:
			t.Rows = append(t.Rows, []string{line, tok.Type.String(), tok.Lex})
		default:
			t.Rows = append(t.Rows, []string{line, tok.Lex})
		}
	}
	return t
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// Render draws t with a normal border. Without color the border and cells
// are unstyled apart from padding.
func (t Table) Render(color bool) string {
	tb := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow && color {
				return headerStyle
			}
			return cellStyle
		})
	if color {
		tb = tb.BorderStyle(borderStyle)
	}
	return tb.Render()
}
