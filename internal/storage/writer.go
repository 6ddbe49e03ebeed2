package storage

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tOgg1/tick/internal/models"
)

// DefaultDebounce is the write-behind delay used by the terminal UI.
const DefaultDebounce = 250 * time.Millisecond

// Saver persists a full task list. *Gateway implements it.
type Saver interface {
	Save(ctx context.Context, tasks []models.Task)
}

// Writer coalesces checkpoint requests into debounced saves.
//
// Every Checkpoint replaces the pending snapshot and re-arms the timer. Saves
// run one at a time and carry a generation number, so a snapshot is never
// written after a newer one.
type Writer struct {
	saver    Saver
	debounce time.Duration
	logger   zerolog.Logger

	mu         sync.Mutex
	pending    []models.Task
	hasPending bool
	generation uint64
	written    uint64
	writes     int
	timer      *time.Timer
	closed     bool

	// writeMu serializes saves.
	writeMu sync.Mutex
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithDebounce sets the write-behind delay. Zero or less saves synchronously
// on every checkpoint.
func WithDebounce(d time.Duration) WriterOption {
	return func(w *Writer) {
		w.debounce = d
	}
}

// WithWriterLogger sets the writer logger.
func WithWriterLogger(logger zerolog.Logger) WriterOption {
	return func(w *Writer) {
		w.logger = logger
	}
}

// NewWriter creates a writer in front of saver.
func NewWriter(saver Saver, opts ...WriterOption) *Writer {
	w := &Writer{
		saver:    saver,
		debounce: DefaultDebounce,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Checkpoint records a snapshot to be saved. It does not block on I/O unless
// the writer is synchronous or already closed.
func (w *Writer) Checkpoint(tasks []models.Task) {
	w.mu.Lock()
	w.generation++
	w.pending = models.CloneTasks(tasks)
	w.hasPending = true
	if w.debounce <= 0 || w.closed {
		w.mu.Unlock()
		w.flush(context.Background())
		return
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, func() {
			w.flush(context.Background())
		})
	} else {
		_ = w.timer.Reset(w.debounce)
	}
	w.mu.Unlock()
}

// Flush saves the pending snapshot now, if there is one.
func (w *Writer) Flush(ctx context.Context) {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	w.flush(ctx)
}

// Close stops the timer and saves pending state. Checkpoints after Close are
// saved synchronously.
func (w *Writer) Close(ctx context.Context) {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
	w.flush(ctx)
}

// Pending reports whether a snapshot is waiting to be saved.
func (w *Writer) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hasPending
}

// Writes returns the number of saves performed.
func (w *Writer) Writes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writes
}

func (w *Writer) flush(ctx context.Context) {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	w.mu.Lock()
	if !w.hasPending || w.generation <= w.written {
		w.mu.Unlock()
		return
	}
	snapshot := w.pending
	generation := w.generation
	w.pending = nil
	w.hasPending = false
	w.mu.Unlock()

	w.saver.Save(ctx, snapshot)

	w.mu.Lock()
	w.written = generation
	w.writes++
	w.mu.Unlock()
	w.logger.Debug().Uint64("generation", generation).Int("tasks", len(snapshot)).Msg("checkpoint written")
}
