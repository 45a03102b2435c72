// Package diag defines the diagnostics reported by every compiler phase.
package diag

import "fmt"

// Kind is the phase that produced a diagnostic.
type Kind int

const (
	Lexical Kind = iota
	Syntax
	Semantic
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// Diagnostic codes. L is the lexer, P the parser, T the type checker.
const (
	ErrIllegalCharacter  = "L0001"
	ErrIllegalIdentifier = "L0002"
	ErrIncDecLength      = "L0003"
	ErrMalformedNumber   = "L0004"

	ErrUnexpectedToken = "P0001"
	ErrUnexpectedEOF   = "P0002"

	ErrTypeMismatch     = "T0001"
	ErrUndefinedSymbol  = "T0002"
	ErrRedeclaredSymbol = "T0003"
	ErrInvalidOperation = "T0004"
	ErrInvalidCondition = "T0005"
	ErrNotIndexable     = "T0006"
	ErrInvalidIndex     = "T0007"
	ErrInvalidReturn    = "T0008"
	ErrInvalidJump      = "T0009"
	ErrPrintfFormat     = "T0010"
	ErrVoidVariable     = "T0011"
	ErrArrayValue       = "T0012"
)

// Diagnostic is a single line-tagged error.
type Diagnostic struct {
	Kind    Kind   `yaml:"kind"`
	Code    string `yaml:"code"`
	Line    int    `yaml:"line"`
	Message string `yaml:"message"`
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s error at line %d: %s", d.Kind, d.Line, d.Message)
}

// MarshalYAML writes the kind by name.
func (k Kind) MarshalYAML() (any, error) { return k.String(), nil }

// Bag collects diagnostics in the order they are reported. A positive
// Limit caps how many are kept; the rest are counted as truncated.
type Bag struct {
	Limit int

	items   []Diagnostic
	dropped int
}

func NewBag(limit int) *Bag { return &Bag{Limit: limit} }

func (b *Bag) Add(d Diagnostic) {
	if b.Limit > 0 && len(b.items) >= b.Limit {
		b.dropped++
		return
	}
	b.items = append(b.items, d)
}

func (b *Bag) Errorf(kind Kind, code string, line int, format string, args ...any) {
	b.Add(Diagnostic{Kind: kind, Code: code, Line: line, Message: fmt.Sprintf(format, args...)})
}

func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) Len() int { return len(b.items) }

func (b *Bag) HasErrors() bool { return len(b.items) > 0 || b.dropped > 0 }

// Truncated is the number of diagnostics dropped because of Limit.
func (b *Bag) Truncated() int { return b.dropped }
