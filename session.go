package termc

import (
	"log/slog"
	"strconv"

	"github.com/google/uuid"
)

// AnsName is the name of the constant holding the most recent result.
const AnsName = "ans"

// Session evaluates a sequence of input lines against one symbol table. A
// Session is not safe for concurrent use.
type Session struct {
	// ID identifies the session in log records.
	ID string

	syms  *Symbols
	log   *slog.Logger
	depth int
	parse ParseOption
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger for a session. The default discards all
// records.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithDepth sets the limit on nested user function calls.
func WithDepth(n int) SessionOption {
	return func(s *Session) {
		s.depth = n
	}
}

// WithSymbols makes a session use an existing symbol table.
func WithSymbols(syms *Symbols) SessionOption {
	return func(s *Session) {
		if syms != nil {
			s.syms = syms
		}
	}
}

// NewSession creates a session with an empty symbol table.
func NewSession(opts ...SessionOption) *Session {
	s := Session{
		ID:    uuid.NewString(),
		syms:  NewSymbols(),
		log:   slog.New(slog.DiscardHandler),
		depth: MaxDepth,
	}
	for _, opt := range opts {
		opt(&s)
	}
	s.log = s.log.With(slog.String("session_id", s.ID))
	s.parse = ParsingPreset(ResolveWith(s.syms))
	return &s
}

// Result is the outcome of executing one line.
type Result struct {
	// Value is the value of an expression or of a newly defined constant.
	Value complex128
	// Def is the applied definition, or nil if the line was an expression.
	Def *Definition
	// Expr is the evaluated expression, or nil if the line was a definition.
	Expr *Expr
}

// Symbols returns the session's symbol table.
func (s *Session) Symbols() *Symbols {
	return s.syms
}

// Exec parses and executes one line. An expression's value is stored as
// the constant ans. A definition is applied only if it is valid; errors
// never modify the symbol table. Errors from the line itself are
// *Diagnostic values.
func (s *Session) Exec(line string) (Result, error) {
	st, err := Parse(line, s.parse)
	if err != nil {
		s.log.Debug("parse failed", slog.String("line", line), slog.String("error", err.Error()))
		return Result{}, err
	}
	if def := st.Def; def != nil {
		if err := s.syms.Define(def, Depth(s.depth)); err != nil {
			s.log.Debug("definition failed",
				slog.String("name", def.Name),
				slog.String("error", err.Error()),
			)
			return Result{}, err
		}
		r := Result{Def: def}
		if !def.Func {
			r.Value, _ = s.syms.UserConst(def.Name)
		}
		s.log.Debug("defined",
			slog.String("name", def.Name),
			slog.Bool("func", def.Func),
			slog.Int("params", len(def.Params)),
		)
		return r, nil
	}
	v, err := Eval(st.Expr, s.syms, Depth(s.depth))
	if err != nil {
		s.log.Debug("evaluation failed", slog.String("line", line), slog.String("error", err.Error()))
		return Result{}, err
	}
	s.syms.SetConst(AnsName, v)
	return Result{Value: v, Expr: st.Expr}, nil
}

// ExecError is an error from one of the lines passed to ExecAll.
type ExecError struct {
	// Index is the 0-based index of the failed line.
	Index int
	// Line is the text of the failed line.
	Line string
	// Err is the error from Exec.
	Err error
}

func (err *ExecError) Error() string {
	return "input " + strconv.Itoa(err.Index+1) + ": " + err.Err.Error()
}

func (err *ExecError) Unwrap() error {
	return err.Err
}

// ExecAll executes lines in order and stops at the first error, which is an
// *ExecError. The results of the lines before the failure are returned in
// either case.
func (s *Session) ExecAll(lines []string) ([]Result, error) {
	results := make([]Result, 0, len(lines))
	for i, line := range lines {
		r, err := s.Exec(line)
		if err != nil {
			return results, &ExecError{Index: i, Line: line, Err: err}
		}
		results = append(results, r)
	}
	return results, nil
}

// Export creates a Document of the session's user definitions.
func (s *Session) Export() *Document {
	doc := Export(s.syms)
	s.log.Debug("exported definitions",
		slog.Int("constants", len(doc.Constants)),
		slog.Int("functions", len(doc.Functions)),
	)
	return doc
}

// Import applies all definitions in a Document, or none of them if any
// record is malformed.
func (s *Session) Import(doc *Document) error {
	p, err := Import(doc)
	if err != nil {
		s.log.Debug("import failed", slog.String("error", err.Error()))
		return err
	}
	s.syms.Apply(p)
	s.log.Debug("imported definitions", slog.Int("count", p.Len()))
	return nil
}
