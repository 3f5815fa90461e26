// Package session owns the calculator state and routes commands to the
// evaluator, the symbolic facade, the unit converter and the statistics
// engine.
package session

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/njchilds90/gocalc/algebra"
	"github.com/njchilds90/gocalc/internal/calcerr"
	"github.com/njchilds90/gocalc/internal/config"
	"github.com/njchilds90/gocalc/internal/history"
	"github.com/njchilds90/gocalc/internal/logger"
	"github.com/njchilds90/gocalc/internal/memory"
	"github.com/njchilds90/gocalc/internal/symbolic"
)

// Session is one calculator. A single mutex serializes Submit and every
// state accessor, so a Session may be shared between goroutines.
type Session struct {
	id  uuid.UUID
	cfg *config.Config
	log *slog.Logger

	backend symbolic.Backend
	facade  *symbolic.Facade

	mu         sync.Mutex
	history    *history.Store
	memory     memory.Register
	lastNumber float64
	hasLast    bool
}

type Option func(*Session)

// WithConfig sets display, plot and solver settings.
func WithConfig(cfg *config.Config) Option {
	return func(s *Session) { s.cfg = cfg }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithBackend replaces the default algebra kernel.
func WithBackend(b symbolic.Backend) Option {
	return func(s *Session) { s.backend = b }
}

func New(opts ...Option) *Session {
	s := &Session{id: uuid.New(), history: history.New()}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg == nil {
		s.cfg = config.Default()
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	if s.backend == nil {
		s.backend = symbolic.Kernel{Newton: algebra.NewtonOptions{
			SearchRange: s.cfg.Solver.SearchRange,
			Tol:         s.cfg.Solver.Tolerance,
			MaxIter:     s.cfg.Solver.MaxIterations,
		}}
	}
	s.facade = symbolic.New(s.backend)
	s.log = s.log.With("session_id", s.id.String())
	return s
}

// ID is the random session identifier used in logs.
func (s *Session) ID() string { return s.id.String() }

// Submit runs one command. It never panics; every failure is reported in
// Result.Err.
func (s *Session) Submit(cmd Command) (res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mode := Mode(strings.ToLower(strings.TrimSpace(string(cmd.Mode))))
	res = Result{Mode: mode, Input: cmd.Input}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("command panicked", "mode", mode, "panic", fmt.Sprint(r))
			res.fail(calcerr.New(calcerr.ErrDomain, "internal failure: %v", r))
		}
	}()

	s.log.Debug("submit", "mode", mode, "input", cmd.Input)
	h, ok := handlers[mode]
	if !ok {
		res.fail(calcerr.New(calcerr.ErrParse, "unknown mode %q", cmd.Mode))
		s.logFailure(mode, res.Err)
		return res
	}
	req := request{Command: cmd, mode: mode}
	if err := h(s, req, &res); err != nil {
		res.fail(err)
		s.logFailure(mode, err)
		return res
	}

	if mode.recordsHistory() {
		s.history.Append(string(mode), historyExpression(req), res.Text)
	}
	if res.Numeric && mode != ModeMemory {
		s.lastNumber, s.hasLast = res.Number, true
	}
	return res
}

func (s *Session) logFailure(mode Mode, err error) {
	attrs := []any{"mode", mode, "error", err.Error()}
	if ce, ok := calcerr.As(err); ok {
		attrs = append(attrs, "class", ce.Class, "kind", ce.Kind)
	}
	s.log.Info("command failed", attrs...)
}

// RecentHistory returns up to n of the latest entries, oldest first.
func (s *Session) RecentHistory(n int) []history.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Recent(n)
}

// HistoryTail is RecentHistory with the configured tail size.
func (s *Session) HistoryTail() []history.Entry {
	return s.RecentHistory(s.cfg.Display.HistoryTail)
}

func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Clear()
}

func (s *Session) MemoryRecall() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memory.Recall()
}

// FormatNumber renders v with the configured precision.
func (s *Session) FormatNumber(v float64) string {
	if v == 0 {
		v = 0 // normalize -0
	}
	return strconv.FormatFloat(v, 'g', s.cfg.Display.Precision, 64)
}
