// Package scheduler drives order status progression with in-process timers.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/facebookgo/clock"

	"github.com/xtremepizzaria/storefront/internal/domains/orders/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/ports"
)

// DefaultTimeUnit scales the progression offsets.
const DefaultTimeUnit = time.Second

var ErrClosed = errors.New("scheduler is closed")

// Inline arms one timer per order at a time; each fired step arms the next, so
// transitions of one order never overlap or reorder.
type Inline struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	clock   clock.Clock
	unit    time.Duration
	steps   []domain.Step
	advance ports.StatusAdvancer
	logger  *slog.Logger
	tasks   map[string]*task
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
}

type task struct {
	createdAt time.Time
	timer     *clock.Timer
}

// Option customizes the inline scheduler.
type Option func(*Inline)

// WithClock swaps the timer source.
func WithClock(c clock.Clock) Option {
	return func(s *Inline) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithTimeUnit sets the length of one progression unit.
func WithTimeUnit(unit time.Duration) Option {
	return func(s *Inline) {
		if unit > 0 {
			s.unit = unit
		}
	}
}

// WithLogger sets the logger for abandoned transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Inline) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewInline returns a scheduler applying transitions through advance.
func NewInline(advance ports.StatusAdvancer, opts ...Option) *Inline {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Inline{
		clock:   clock.New(),
		unit:    DefaultTimeUnit,
		steps:   domain.Progression,
		advance: advance,
		logger:  slog.Default(),
		tasks:   make(map[string]*task),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

var _ ports.Scheduler = (*Inline)(nil)

// Schedule arms the first step of orderID. Steps already due fire immediately, in order.
func (s *Inline) Schedule(_ context.Context, orderID string, createdAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, ok := s.tasks[orderID]; ok {
		return nil
	}
	t := &task{createdAt: createdAt}
	s.tasks[orderID] = t
	s.armLocked(orderID, t, 0)
	return nil
}

// Cancel stops the pending progression of orderID. A transition already running completes.
func (s *Inline) Cancel(_ context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tasks[orderID]; ok {
		if t.timer != nil {
			t.timer.Stop()
		}
		delete(s.tasks, orderID)
	}
	return nil
}

// Pending reports how many orders still have transitions ahead.
func (s *Inline) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Close stops every pending timer and waits for in-flight transitions.
func (s *Inline) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.wg.Wait()
		return nil
	}
	s.closed = true
	for id, t := range s.tasks {
		if t.timer != nil {
			t.timer.Stop()
		}
		delete(s.tasks, id)
	}
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

func (s *Inline) armLocked(orderID string, t *task, step int) {
	delay := s.steps[step].Due(t.createdAt, s.unit).Sub(s.clock.Now())
	if delay < 0 {
		delay = 0
	}
	t.timer = s.clock.AfterFunc(delay, func() { s.fire(orderID, t, step) })
}

func (s *Inline) fire(orderID string, t *task, step int) {
	s.mu.Lock()
	if s.closed || s.tasks[orderID] != t {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	next := s.steps[step]
	order, err := s.advance.AdvanceStatus(s.ctx, orderID, next.To)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tasks[orderID] != t {
		return
	}
	switch {
	case err != nil:
		if !errors.Is(err, ports.ErrNotFound) {
			s.logger.LogAttrs(s.ctx, slog.LevelWarn, "order status transition abandoned",
				slog.String("order_id", orderID),
				slog.String("to", string(next.To)),
				slog.String("error", err.Error()),
			)
		}
		delete(s.tasks, orderID)
	case order.Status.Terminal() || step+1 >= len(s.steps) || s.closed:
		delete(s.tasks, orderID)
	default:
		s.armLocked(orderID, t, step+1)
	}
}
