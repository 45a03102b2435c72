package checker

import (
	"fmt"
	"strings"

	"github.com/glebzikunov/MTRAN/internal/ast"
	"github.com/glebzikunov/MTRAN/internal/diag"
	"github.com/glebzikunov/MTRAN/internal/types"
)

// verb is one conversion in a printf format, e.g. "%-5.2f".
type verb struct {
	text string
	want types.Kind
}

var verbKinds = map[byte]types.Kind{
	'd': types.Int,
	'i': types.Int,
	'f': types.Float,
	'c': types.Char,
	's': types.String,
}

// parseFormat extracts the conversions from a quoted format literal.
// Flags '-' and '0', a width and a precision are accepted; "%%" is a
// literal percent sign.
func parseFormat(lit string) ([]verb, error) {
	s := strings.TrimSuffix(strings.TrimPrefix(lit, `"`), `"`)
	var verbs []verb
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		start := i
		i++
		if i < len(s) && s[i] == '%' {
			continue
		}
		for i < len(s) && (s[i] == '-' || s[i] == '0') {
			i++
		}
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i < len(s) && s[i] == '.' {
			i++
			for i < len(s) && s[i] >= '0' && s[i] <= '9' {
				i++
			}
		}
		if i >= len(s) {
			return verbs, fmt.Errorf("format ends in an incomplete verb '%s'", s[start:])
		}
		k, ok := verbKinds[s[i]]
		if !ok {
			return verbs, fmt.Errorf("unknown verb '%s'", s[start:i+1])
		}
		verbs = append(verbs, verb{text: s[start : i+1], want: k})
	}
	return verbs, nil
}

func (c *Checker) print(p *ast.Print) {
	args := ast.Idents(p.Args)
	argTypes := make([]types.Type, len(args))
	for i, arg := range args {
		argTypes[i] = c.expr(arg)
		if argTypes[i].IsArray() {
			c.errorf(p.Line, diag.ErrArrayValue, "cannot print array %s", describe(arg))
			argTypes[i] = types.InvalidT()
		}
	}

	verbs, err := parseFormat(p.Format.Value)
	if err != nil {
		c.errorf(p.Line, diag.ErrPrintfFormat, "printf: %v", err)
		return
	}
	if len(verbs) != len(args) {
		c.errorf(p.Line, diag.ErrPrintfFormat, "printf: format has %d verbs but %d arguments were given", len(verbs), len(args))
		return
	}
	for i, v := range verbs {
		t := argTypes[i]
		if !t.IsInvalid() && t.K != v.want {
			c.errorf(p.Line, diag.ErrPrintfFormat, "printf: verb %s expects %s, argument %s is %s",
				v.text, types.Type{K: v.want}, describe(args[i]), t)
		}
	}
}
