// Package compiler runs the front end over one compilation unit: lexing
// and parsing, then type checking when a program was produced.
package compiler

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/glebzikunov/MTRAN/internal/ast"
	"github.com/glebzikunov/MTRAN/internal/checker"
	"github.com/glebzikunov/MTRAN/internal/diag"
	"github.com/glebzikunov/MTRAN/internal/lexer"
	"github.com/glebzikunov/MTRAN/internal/logging"
	"github.com/glebzikunov/MTRAN/internal/parser"
)

// Stage is the phase a run stopped in.
type Stage int

const (
	StageLex Stage = iota
	StageParse
	StageCheck
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageLex:
		return "lex"
	case StageParse:
		return "parse"
	case StageCheck:
		return "check"
	case StageDone:
		return "done"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Result is the outcome of one run. Program is nil when lexing or parsing
// failed; Diagnostics is empty exactly when the run succeeded.
type Result struct {
	RunID       string
	Filename    string
	Source      string
	Program     *ast.Program
	Diagnostics []diag.Diagnostic
	// Truncated counts semantic diagnostics dropped by WithMaxErrors.
	Truncated int
	Stage     Stage
	Elapsed   time.Duration
}

func (r *Result) OK() bool {
	return r.Program != nil && len(r.Diagnostics) == 0 && r.Truncated == 0
}

func (r *Result) Failed() bool { return !r.OK() }

type options struct {
	logger    *slog.Logger
	maxErrors int
}

type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMaxErrors caps the number of semantic diagnostics kept; 0 keeps all.
func WithMaxErrors(n int) Option {
	return func(o *options) { o.maxErrors = n }
}

func newOptions(opts []Option) options {
	o := options{logger: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Compile lexes, parses and checks src. Every call uses fresh lexer,
// parser and checker state.
func Compile(filename, src string, opts ...Option) *Result {
	o := newOptions(opts)
	r, log := begin(filename, src, o)
	start := time.Now()
	defer func() { finish(r, log, start) }()

	if !parse(r, log) {
		return r
	}

	t := time.Now()
	bag := diag.NewBag(o.maxErrors)
	checker.New().Run(r.Program, bag)
	r.Diagnostics = bag.Items()
	r.Truncated = bag.Truncated()
	log.Debug("checked", "diagnostics", bag.Len(), "truncated", bag.Truncated(), "elapsed", time.Since(t))
	if bag.HasErrors() {
		r.Stage = StageCheck
		return r
	}
	r.Stage = StageDone
	return r
}

// Parse stops after parsing. On success Stage is StageParse and there are
// no diagnostics.
func Parse(filename, src string, opts ...Option) *Result {
	o := newOptions(opts)
	r, log := begin(filename, src, o)
	start := time.Now()
	defer func() { finish(r, log, start) }()

	parse(r, log)
	return r
}

// CompileFile reads path and compiles it. The error is only for I/O.
func CompileFile(path string, opts ...Option) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(path, string(data), opts...), nil
}

func begin(filename, src string, o options) (*Result, *slog.Logger) {
	r := &Result{RunID: uuid.NewString(), Filename: filename, Source: src}
	log := o.logger.With("run", r.RunID, "file", filename)
	log.Debug("run started", "bytes", len(src))
	return r, log
}

func finish(r *Result, log *slog.Logger, start time.Time) {
	r.Elapsed = time.Since(start)
	log.Debug("run finished", "stage", r.Stage, "ok", r.OK(), "elapsed", r.Elapsed)
}

// parse fills r.Program, or the lexical or syntax diagnostic.
func parse(r *Result, log *slog.Logger) bool {
	t := time.Now()
	prog, err := parser.ParseFile(r.Filename, r.Source)
	if err != nil {
		d := Diagnose(err)
		r.Diagnostics = []diag.Diagnostic{d}
		if d.Kind == diag.Lexical {
			r.Stage = StageLex
		} else {
			r.Stage = StageParse
		}
		log.Debug("parse failed", "kind", d.Kind, "line", d.Line, "elapsed", time.Since(t))
		return false
	}
	r.Program = prog
	r.Stage = StageParse
	log.Debug("parsed", "elapsed", time.Since(t))
	return true
}

// Diagnose converts a lexer or parser error into a diagnostic.
func Diagnose(err error) diag.Diagnostic {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return diag.Diagnostic{
			Kind:    diag.Lexical,
			Code:    lexCode(lexErr.Reason),
			Line:    lexErr.Line,
			Message: fmt.Sprintf("%s '%s'", lexErr.Msg, lexErr.Text),
		}
	}
	var synErr *parser.SyntaxError
	if errors.As(err, &synErr) {
		d := diag.Diagnostic{Kind: diag.Syntax, Code: diag.ErrUnexpectedToken, Line: synErr.Line}
		switch {
		case synErr.EOF():
			d.Code = diag.ErrUnexpectedEOF
			d.Message = "unexpected end of input"
		case synErr.Token.Type.IsLiteral():
			d.Message = fmt.Sprintf("unexpected token %s", synErr.Token.Type)
		default:
			d.Message = fmt.Sprintf("unexpected token %s '%s'", synErr.Token.Type, synErr.Token.Lex)
		}
		return d
	}
	return diag.Diagnostic{Kind: diag.Syntax, Code: diag.ErrUnexpectedToken, Message: err.Error()}
}

func lexCode(r lexer.Reason) string {
	switch r {
	case lexer.IllegalIdentifier:
		return diag.ErrIllegalIdentifier
	case lexer.OverlongIncDec:
		return diag.ErrIncDecLength
	case lexer.MalformedNumber:
		return diag.ErrMalformedNumber
	default:
		return diag.ErrIllegalCharacter
	}
}
