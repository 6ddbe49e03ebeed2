// Package todo holds the authoritative task list and its session state.
//
// Every mutating operation returns the freshly derived View and hands a
// snapshot of the full list to the configured Checkpointer. Operations never
// fail: unknown ids and empty input are ignored.
package todo

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tOgg1/tick/internal/events"
	"github.com/tOgg1/tick/internal/logging"
	"github.com/tOgg1/tick/internal/models"
)

// Checkpointer receives a snapshot of the list after every mutation.
// Implementations must not block on I/O.
type Checkpointer interface {
	Checkpoint(tasks []models.Task)
}

// CheckpointFunc adapts a function to Checkpointer.
type CheckpointFunc func(tasks []models.Task)

// Checkpoint calls f(tasks).
func (f CheckpointFunc) Checkpoint(tasks []models.Task) { f(tasks) }

// View is the derived, filtered projection of the store.
type View struct {
	// Tasks is the ordered subsequence matching Filter.
	Tasks []models.Task

	// Remaining counts tasks that are not completed, across the whole list.
	Remaining int

	// Total is the size of the whole list.
	Total int

	// Filter is the active filter.
	Filter models.Filter

	// Editing is true while an edit is in progress.
	Editing bool

	// EditID is the task being edited.
	EditID string

	// EditText is the pending edit text.
	EditText string
}

// Store owns the task list. It is safe for concurrent use.
type Store struct {
	mu sync.Mutex

	tasks    []models.Task
	filter   models.Filter
	editing  bool
	editID   string
	editText string

	now          func() time.Time
	idGenerator  IDGenerator
	lastIDAt     time.Time
	checkpointer Checkpointer
	publisher    events.Publisher
	logger       zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithNow overrides the clock used for ids and event timestamps.
func WithNow(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the task id scheme.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.idGenerator = gen
		}
	}
}

// WithCheckpointer sets where snapshots go after each mutation.
func WithCheckpointer(c Checkpointer) Option {
	return func(s *Store) {
		s.checkpointer = c
	}
}

// WithPublisher publishes one event per effective mutation.
func WithPublisher(p events.Publisher) Option {
	return func(s *Store) {
		s.publisher = p
	}
}

// WithLogger sets the store logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithFilter sets the initial filter.
func WithFilter(f models.Filter) Option {
	return func(s *Store) {
		s.filter = f
	}
}

// New creates a store seeded with tasks. Seeding does not checkpoint.
func New(tasks []models.Task, opts ...Option) *Store {
	s := &Store{
		tasks:       models.CloneTasks(tasks),
		filter:      models.FilterAll,
		now:         func() time.Time { return time.Now().UTC() },
		idGenerator: TimestampID,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a task with the trimmed text. Blank text is ignored.
func (s *Store) Add(rawText string) View {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return s.View()
	}

	s.mu.Lock()
	task := models.Task{
		ID:   s.nextIDLocked(),
		Text: text,
	}
	s.tasks = append(s.tasks, task)
	s.checkpointLocked()
	view := s.viewLocked()
	s.mu.Unlock()

	s.publishTask(models.EventTypeTaskAdded, task)
	return view
}

// Toggle flips the completed flag of the task with id.
func (s *Store) Toggle(id string) View {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		view := s.viewLocked()
		s.mu.Unlock()
		return view
	}
	s.tasks[idx].Completed = !s.tasks[idx].Completed
	task := s.tasks[idx]
	s.checkpointLocked()
	view := s.viewLocked()
	s.mu.Unlock()

	s.publishTask(models.EventTypeTaskToggled, task)
	return view
}

// BeginEdit enters edit mode for id, seeding the pending text with currentText.
// The list itself is not touched.
func (s *Store) BeginEdit(id, currentText string) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = true
	s.editID = id
	s.editText = currentText
	return s.viewLocked()
}

// SetEditText replaces the pending edit text. Ignored when not editing.
func (s *Store) SetEditText(text string) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing {
		s.editText = text
	}
	return s.viewLocked()
}

// CommitEdit writes the pending text into the edited task and leaves edit
// mode. The pending text is stored as entered; it is not trimmed.
func (s *Store) CommitEdit() View {
	s.mu.Lock()
	if !s.editing {
		view := s.viewLocked()
		s.mu.Unlock()
		return view
	}

	id, text := s.editID, s.editText
	s.clearEditLocked()

	idx := s.indexLocked(id)
	if idx < 0 {
		view := s.viewLocked()
		s.mu.Unlock()
		return view
	}
	s.tasks[idx].Text = text
	task := s.tasks[idx]
	s.checkpointLocked()
	view := s.viewLocked()
	s.mu.Unlock()

	s.publishTask(models.EventTypeTaskEdited, task)
	return view
}

// CancelEdit leaves edit mode without changing the list.
func (s *Store) CancelEdit() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearEditLocked()
	return s.viewLocked()
}

// Remove deletes the task with id.
func (s *Store) Remove(id string) View {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		view := s.viewLocked()
		s.mu.Unlock()
		return view
	}
	task := s.tasks[idx]
	s.tasks = append(s.tasks[:idx:idx], s.tasks[idx+1:]...)
	if s.editing && s.editID == id {
		s.clearEditLocked()
	}
	s.checkpointLocked()
	view := s.viewLocked()
	s.mu.Unlock()

	s.publishTask(models.EventTypeTaskRemoved, task)
	return view
}

// ClearCompleted deletes every completed task, keeping the others in order.
func (s *Store) ClearCompleted() View {
	s.mu.Lock()
	kept := make([]models.Task, 0, len(s.tasks))
	var removed []string
	for _, task := range s.tasks {
		if task.Completed {
			removed = append(removed, task.ID)
			continue
		}
		kept = append(kept, task)
	}
	s.tasks = kept
	for _, id := range removed {
		if s.editing && s.editID == id {
			s.clearEditLocked()
		}
	}
	s.checkpointLocked()
	view := s.viewLocked()
	s.mu.Unlock()

	if len(removed) > 0 {
		s.publishBulk(models.EventTypeTaskCleared, removed)
	}
	return view
}

// SetFilter changes the active filter. Stored data is unaffected.
func (s *Store) SetFilter(f models.Filter) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch f {
	case models.FilterAll, models.FilterActive, models.FilterCompleted:
		s.filter = f
	}
	return s.viewLocked()
}

// Replace swaps in a whole new list, as done by an import. It checkpoints.
func (s *Store) Replace(tasks []models.Task) View {
	s.mu.Lock()
	s.tasks = models.CloneTasks(tasks)
	s.clearEditLocked()
	ids := make([]string, 0, len(s.tasks))
	for _, task := range s.tasks {
		ids = append(ids, task.ID)
	}
	s.checkpointLocked()
	view := s.viewLocked()
	s.mu.Unlock()

	s.publishBulk(models.EventTypeTaskImported, ids)
	return view
}

// View returns the derived view for the active filter.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Tasks returns a copy of the full list in insertion order.
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneTasks(s.tasks)
}

// Get returns the task with id.
func (s *Store) Get(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return models.Task{}, false
	}
	return s.tasks[idx], true
}

func (s *Store) viewLocked() View {
	view := View{
		Tasks:    make([]models.Task, 0, len(s.tasks)),
		Total:    len(s.tasks),
		Filter:   s.filter,
		Editing:  s.editing,
		EditID:   s.editID,
		EditText: s.editText,
	}
	for _, task := range s.tasks {
		if !task.Completed {
			view.Remaining++
		}
		if s.filter.Matches(task) {
			view.Tasks = append(view.Tasks, task)
		}
	}
	return view
}

func (s *Store) indexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) clearEditLocked() {
	s.editing = false
	s.editID = ""
	s.editText = ""
}

// checkpointLocked runs under s.mu so snapshots reach the checkpointer in
// mutation order.
func (s *Store) checkpointLocked() {
	if s.checkpointer == nil {
		return
	}
	s.checkpointer.Checkpoint(models.CloneTasks(s.tasks))
}

func (s *Store) publishTask(eventType models.EventType, task models.Task) {
	taskLogger := logging.WithTask(s.logger, task.ID)
	taskLogger.Debug().Str("event", string(eventType)).Bool("completed", task.Completed).Msg("task changed")
	if s.publisher == nil {
		return
	}
	payload, _ := json.Marshal(models.TaskPayload{Text: task.Text, Completed: task.Completed})
	s.publish(&models.Event{
		Type:       eventType,
		EntityType: models.EntityTypeTask,
		EntityID:   task.ID,
		Payload:    payload,
	})
}

func (s *Store) publishBulk(eventType models.EventType, ids []string) {
	if s.publisher == nil {
		return
	}
	payload, _ := json.Marshal(models.BulkPayload{Count: len(ids), IDs: ids})
	s.publish(&models.Event{
		Type:       eventType,
		EntityType: models.EntityTypeList,
		EntityID:   models.ListEntityID,
		Payload:    payload,
	})
}

func (s *Store) publish(event *models.Event) {
	event.ID = uuid.NewString()
	event.Timestamp = s.now()
	s.publisher.Publish(context.Background(), event)
}
