package statestore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Record is a typed view of one key in a Store.
type Record[T any] struct {
	store  Store
	key    string
	empty  func() T
	logger *slog.Logger
	health *Health
	now    func() time.Time
}

// RecordOption customizes a Record.
type RecordOption func(*recordOptions)

type recordOptions struct {
	logger *slog.Logger
	health *Health
	now    func() time.Time
}

// WithLogger sets the logger used for degraded reads and writes.
func WithLogger(logger *slog.Logger) RecordOption {
	return func(o *recordOptions) { o.logger = logger }
}

// WithHealth shares a write-health tracker across records.
func WithHealth(health *Health) RecordOption {
	return func(o *recordOptions) { o.health = health }
}

// WithClock overrides the time source used for health reporting.
func WithClock(now func() time.Time) RecordOption {
	return func(o *recordOptions) { o.now = now }
}

// NewRecord binds key in store; empty produces the value used when nothing usable is stored.
func NewRecord[T any](store Store, key string, empty func() T, opts ...RecordOption) *Record[T] {
	options := recordOptions{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return &Record[T]{
		store:  store,
		key:    key,
		empty:  empty,
		logger: options.logger,
		health: options.health,
		now:    options.now,
	}
}

// Key returns the store key of the record.
func (r *Record[T]) Key() string { return r.key }

// Load returns the stored value, or the empty value when the record is absent,
// unreadable, or corrupt. It never fails.
func (r *Record[T]) Load(ctx context.Context) T {
	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		r.warn(ctx, "durable state unreadable, using default", err)
		return r.empty()
	}
	if !ok || len(raw) == 0 {
		return r.empty()
	}
	value, err := r.decode(raw)
	if err != nil {
		r.warn(ctx, "durable state corrupt, using default", err)
		return r.empty()
	}
	return value
}

func (r *Record[T]) decode(raw []byte) (T, error) {
	value := r.empty()
	if err := json.Unmarshal(raw, &value); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %w", ErrCorruptRecord, r.key, err)
	}
	return value, nil
}

// Save writes value. A failed write is logged and returned wrapped in ErrWriteFailure;
// callers keep their in-memory state.
func (r *Record[T]) Save(ctx context.Context, value T) error {
	payload, err := json.Marshal(value)
	if err == nil {
		err = r.store.Put(ctx, r.key, payload)
	}
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrWriteFailure, r.key, err)
		r.warn(ctx, "durable state write failed", err)
	}
	r.health.Report(err, r.now())
	return err
}

func (r *Record[T]) warn(ctx context.Context, msg string, err error) {
	if r.logger == nil {
		return
	}
	r.logger.LogAttrs(ctx, slog.LevelWarn, msg, slog.String("key", r.key), slog.String("error", err.Error()))
}
