package todo

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/tick/internal/events"
	"github.com/tOgg1/tick/internal/models"
)

type recordingCheckpointer struct {
	mu        sync.Mutex
	snapshots [][]models.Task
}

func (r *recordingCheckpointer) Checkpoint(tasks []models.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, tasks)
}

func (r *recordingCheckpointer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snapshots)
}

func (r *recordingCheckpointer) last() []models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snapshots) == 0 {
		return nil
	}
	return r.snapshots[len(r.snapshots)-1]
}

func fixedClock() func() time.Time {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return func() time.Time { return base }
}

func newTestStore(t *testing.T, opts ...Option) (*Store, *recordingCheckpointer) {
	t.Helper()
	cp := &recordingCheckpointer{}
	opts = append([]Option{WithNow(fixedClock()), WithCheckpointer(cp)}, opts...)
	return New(nil, opts...), cp
}

func texts(tasks []models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Text)
	}
	return out
}

func TestAddAppendsTrimmedIncompleteTask(t *testing.T) {
	s, cp := newTestStore(t)

	for i, input := range []string{"Buy milk", "  Walk dog  ", "\tcall mom\n"} {
		before := len(s.Tasks())
		view := s.Add(input)
		require.Equal(t, before+1, view.Total)

		added := s.Tasks()[i]
		require.False(t, added.Completed)
		require.NotEmpty(t, added.ID)
	}

	require.Equal(t, []string{"Buy milk", "Walk dog", "call mom"}, texts(s.Tasks()))
	require.Equal(t, 3, cp.count())
}

func TestAddBlankIsNoop(t *testing.T) {
	s, cp := newTestStore(t)

	s.Add("")
	s.Add("   ")
	s.Add("\t\n")

	require.Empty(t, s.Tasks())
	require.Zero(t, cp.count())
}

func TestIDsAreUniqueUnderFixedClock(t *testing.T) {
	s, _ := newTestStore(t)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s.Add("task")
	}
	for _, task := range s.Tasks() {
		require.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
	}
	require.Len(t, seen, 50)
	require.Equal(t, TimestampID(fixedClock()()), s.Tasks()[0].ID)
}

func TestIDsSkipIDsAlreadyLoaded(t *testing.T) {
	now := fixedClock()
	taken := TimestampID(now().Add(time.Millisecond))
	s := New([]models.Task{{ID: TimestampID(now()), Text: "a"}, {ID: taken, Text: "b"}}, WithNow(now))

	s.Add("c")
	tasks := s.Tasks()
	require.Len(t, tasks, 3)
	require.NotEqual(t, tasks[0].ID, tasks[2].ID)
	require.NotEqual(t, tasks[1].ID, tasks[2].ID)
}

func TestIDGeneratorFallsBackWhenStuck(t *testing.T) {
	s, _ := newTestStore(t, WithIDGenerator(func(time.Time) string { return "same" }))
	s.Add("one")
	s.Add("two")

	tasks := s.Tasks()
	require.Equal(t, "same", tasks[0].ID)
	require.NotEqual(t, "same", tasks[1].ID)
}

func TestToggleTwiceRestores(t *testing.T) {
	s, cp := newTestStore(t)
	s.Add("Buy milk")
	id := s.Tasks()[0].ID

	s.Toggle(id)
	require.True(t, s.Tasks()[0].Completed)
	s.Toggle(id)
	require.False(t, s.Tasks()[0].Completed)
	require.Equal(t, 3, cp.count())
}

func TestToggleUnknownIsNoop(t *testing.T) {
	s, cp := newTestStore(t)
	s.Add("Buy milk")

	view := s.Toggle("missing")
	require.Equal(t, 1, view.Remaining)
	require.Equal(t, 1, cp.count())
}

func TestRemoveIsIdempotent(t *testing.T) {
	s, cp := newTestStore(t)
	s.Add("a")
	s.Add("b")
	id := s.Tasks()[0].ID

	view := s.Remove(id)
	require.Equal(t, 1, view.Total)
	require.Equal(t, 2+1, cp.count())

	view = s.Remove(id)
	require.Equal(t, 1, view.Total)
	require.Equal(t, 3, cp.count())
	require.Equal(t, []string{"b"}, texts(s.Tasks()))
}

func TestClearCompletedKeepsActiveInOrder(t *testing.T) {
	s, _ := newTestStore(t)
	for _, text := range []string{"a", "b", "c", "d", "e"} {
		s.Add(text)
	}
	tasks := s.Tasks()
	s.Toggle(tasks[1].ID)
	s.Toggle(tasks[3].ID)

	view := s.ClearCompleted()
	require.Equal(t, []string{"a", "c", "e"}, texts(view.Tasks))
	for _, task := range s.Tasks() {
		require.False(t, task.Completed)
	}
	require.Equal(t, 3, view.Remaining)
}

func TestDerivedViewPerFilter(t *testing.T) {
	s, cp := newTestStore(t)
	for _, text := range []string{"a", "b", "c", "d"} {
		s.Add(text)
	}
	tasks := s.Tasks()
	s.Toggle(tasks[0].ID)
	s.Toggle(tasks[2].ID)
	checkpoints := cp.count()

	view := s.SetFilter(models.FilterActive)
	require.Equal(t, []string{"b", "d"}, texts(view.Tasks))
	require.Equal(t, 2, view.Remaining)
	require.Equal(t, 4, view.Total)

	view = s.SetFilter(models.FilterCompleted)
	require.Equal(t, []string{"a", "c"}, texts(view.Tasks))

	view = s.SetFilter(models.FilterAll)
	require.Equal(t, []string{"a", "b", "c", "d"}, texts(view.Tasks))

	view = s.SetFilter(models.Filter("bogus"))
	require.Equal(t, models.FilterAll, view.Filter)

	require.Equal(t, checkpoints, cp.count(), "filter changes must not checkpoint")
}

func TestScenarioBuyMilkWalkDog(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("Buy milk")
	s.Add("Walk dog")

	var milk string
	for _, task := range s.Tasks() {
		if task.Text == "Buy milk" {
			milk = task.ID
		}
	}
	s.Toggle(milk)

	view := s.SetFilter(models.FilterActive)
	require.Equal(t, []string{"Walk dog"}, texts(view.Tasks))
	require.Equal(t, 1, view.Remaining)
}

func TestEditLifecycle(t *testing.T) {
	s, cp := newTestStore(t)
	s.Add("Buy milk")
	id := s.Tasks()[0].ID

	view := s.BeginEdit(id, "Buy milk")
	require.True(t, view.Editing)
	require.Equal(t, id, view.EditID)
	require.Equal(t, "Buy milk", view.EditText)
	require.Equal(t, 1, cp.count(), "beginning an edit does not checkpoint")

	s.SetEditText("Buy oat milk")
	view = s.CommitEdit()
	require.False(t, view.Editing)
	require.Equal(t, "Buy oat milk", s.Tasks()[0].Text)
	require.Equal(t, 2, cp.count())
	require.Equal(t, "Buy oat milk", cp.last()[0].Text)
}

func TestCommitEditKeepsTextAsEntered(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("a")
	id := s.Tasks()[0].ID

	s.BeginEdit(id, "a")
	s.SetEditText("  ")
	s.CommitEdit()
	require.Equal(t, "  ", s.Tasks()[0].Text)
}

func TestCancelAndStrayCommit(t *testing.T) {
	s, cp := newTestStore(t)
	s.Add("a")
	id := s.Tasks()[0].ID

	s.BeginEdit(id, "a")
	s.SetEditText("changed")
	view := s.CancelEdit()
	require.False(t, view.Editing)
	require.Equal(t, "a", s.Tasks()[0].Text)

	before := cp.count()
	view = s.CommitEdit()
	require.False(t, view.Editing)
	require.Equal(t, before, cp.count())

	view = s.SetEditText("ignored")
	require.Empty(t, view.EditText)
}

func TestRemovingEditedTaskLeavesEditMode(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("a")
	id := s.Tasks()[0].ID
	s.BeginEdit(id, "a")

	view := s.Remove(id)
	require.False(t, view.Editing)
}

func TestCheckpointSnapshotsAreCopies(t *testing.T) {
	s, cp := newTestStore(t)
	s.Add("a")
	snapshot := cp.last()
	snapshot[0].Text = "mutated"

	require.Equal(t, "a", s.Tasks()[0].Text)
}

func TestReplaceCheckpointsAndResetsEdit(t *testing.T) {
	s, cp := newTestStore(t)
	s.Add("old")
	s.BeginEdit(s.Tasks()[0].ID, "old")

	view := s.Replace([]models.Task{{ID: "x", Text: "new", Completed: true}})
	require.False(t, view.Editing)
	require.Equal(t, 0, view.Remaining)
	require.Equal(t, []string{"new"}, texts(cp.last()))
}

func TestFind(t *testing.T) {
	s := New([]models.Task{
		{ID: "1700000000001", Text: "a"},
		{ID: "1700000000002", Text: "b"},
		{ID: "abcdef", Text: "c"},
	})

	task, err := s.Find("1700000000002")
	require.NoError(t, err)
	require.Equal(t, "b", task.Text)

	task, err = s.Find("3")
	require.NoError(t, err)
	require.Equal(t, "c", task.Text)

	task, err = s.Find("abcd")
	require.NoError(t, err)
	require.Equal(t, "c", task.Text)

	_, err = s.Find("1700")
	require.ErrorIs(t, err, ErrAmbiguousRef)

	_, err = s.Find("9")
	require.ErrorIs(t, err, ErrTaskNotFound)

	_, err = s.Find(" ")
	require.ErrorIs(t, err, ErrTaskRefRequired)
}

func TestPublishesOneEventPerEffectiveMutation(t *testing.T) {
	pub := events.NewInMemoryPublisher()
	var got []models.EventType
	require.NoError(t, pub.Subscribe("test", events.Filter{}, func(e *models.Event) {
		require.NotEmpty(t, e.ID)
		got = append(got, e.Type)
	}))

	s, _ := newTestStore(t, WithPublisher(pub))
	s.Add("a")
	s.Add(" ")
	id := s.Tasks()[0].ID
	s.Toggle(id)
	s.Toggle("missing")
	s.BeginEdit(id, "a")
	s.SetEditText("b")
	s.CommitEdit()
	s.ClearCompleted()
	s.Toggle(id)
	s.ClearCompleted()
	s.Add("c")
	s.Remove(s.Tasks()[0].ID)

	require.Equal(t, []models.EventType{
		models.EventTypeTaskAdded,
		models.EventTypeTaskToggled,
		models.EventTypeTaskEdited,
		models.EventTypeTaskCleared,
		models.EventTypeTaskAdded,
		models.EventTypeTaskRemoved,
	}, got)
}

func TestConcurrentMutationsAreSerialized(t *testing.T) {
	s, cp := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add("task")
		}()
	}
	wg.Wait()

	require.Len(t, s.Tasks(), 20)
	require.Len(t, cp.last(), 20)
}

func TestCommitEditOfRemovedTaskDoesNotCheckpoint(t *testing.T) {
	s, cp := newTestStore(t)
	s.Add("a")
	s.Add("b")
	id := s.Tasks()[0].ID

	s.Toggle(id)
	s.ClearCompleted()
	require.Equal(t, []string{"b"}, texts(s.Tasks()))

	s.BeginEdit(id, "a")
	s.SetEditText("changed")
	before := cp.count()
	view := s.CommitEdit()
	require.False(t, view.Editing)
	require.Equal(t, before, cp.count())
	require.Equal(t, []string{"b"}, texts(s.Tasks()))
}

func TestTaskChangesLogTaskID(t *testing.T) {
	level := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(level) })

	var buf bytes.Buffer
	s, _ := newTestStore(t, WithLogger(zerolog.New(&buf)))
	s.Add("a")
	id := s.Tasks()[0].ID
	s.Toggle(id)
	s.Toggle("missing")

	out := buf.String()
	require.Contains(t, out, `"task_id":"`+id+`"`)
	require.Contains(t, out, `"event":"task.added"`)
	require.Contains(t, out, `"event":"task.toggled"`)
	require.NotContains(t, out, "missing")
}
