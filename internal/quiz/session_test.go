package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/valenz/internal/settings"
)

type mapDataset map[string]Item

func (d mapDataset) Lookup(id string) (Item, bool) {
	item, ok := d[id]
	return item, ok
}

func testDataset() mapDataset {
	return mapDataset{
		"H":  {ID: "H", Prompt: "H", Correct: "I", Wrong: []string{"II", "III", "IV", "V"}},
		"O":  {ID: "O", Prompt: "O", Correct: "II", Wrong: []string{"I", "III", "IV", "V"}},
		"C":  {ID: "C", Prompt: "C", Correct: "IV", Wrong: []string{"I", "II", "III", "V"}},
		"Na": {ID: "Na", Prompt: "Na", Correct: "I", Wrong: []string{"II", "III", "IV"}},
	}
}

type fixture struct {
	repo  *settings.MemoryRepo
	store *settings.Store
	ctrl  *Controller
}

func newFixture(t *testing.T, data mapDataset, items []settings.ItemSetting, opts ...Option) *fixture {
	t.Helper()
	repo := settings.NewMemoryRepo(items...)
	store, err := settings.Load(context.Background(), repo, nil)
	require.NoError(t, err)

	opts = append([]Option{WithSource(NewSeededRand(99))}, opts...)
	return &fixture{
		repo:  repo,
		store: store,
		ctrl:  NewController(data, store, opts...),
	}
}

func enabled(ids ...string) []settings.ItemSetting {
	out := make([]settings.ItemSetting, len(ids))
	for i, id := range ids {
		out[i] = settings.ItemSetting{ID: id, Enabled: true}
	}
	return out
}

func correctOf(q *Question) Answer { return q.CorrectAnswer() }

func wrongOf(t *testing.T, q *Question) Answer {
	t.Helper()
	for _, a := range q.Answers {
		if !a.Correct {
			return a
		}
	}
	t.Fatalf("question %s has no wrong answer", q.ID)
	return Answer{}
}

func ids(qs []*Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func TestStart_EnabledOnly(t *testing.T) {
	items := enabled("H", "O", "C")
	items = append(items, settings.ItemSetting{ID: "Na", Enabled: false})
	f := newFixture(t, testDataset(), items)

	require.NoError(t, f.ctrl.Start())

	assert.ElementsMatch(t, []string{"H", "O", "C"}, ids(f.ctrl.Pending()))
	assert.Empty(t, f.ctrl.Right())
	assert.Empty(t, f.ctrl.Wrong())
	assert.Equal(t, 3, f.ctrl.Total())
	assert.Equal(t, 1, f.ctrl.Round())
	assert.NotEmpty(t, f.ctrl.SessionID())
	assert.False(t, f.ctrl.IsComplete())
}

func TestStart_NothingEnabled(t *testing.T) {
	f := newFixture(t, testDataset(), []settings.ItemSetting{{ID: "H"}})

	require.NoError(t, f.ctrl.Start())
	assert.True(t, f.ctrl.IsComplete())
	assert.Nil(t, f.ctrl.Current())
	assert.Equal(t, 0, f.ctrl.Total())
}

func TestStart_UnknownEnabledItem(t *testing.T) {
	f := newFixture(t, testDataset(), enabled("H", "Xx"))

	err := f.ctrl.Start()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownItem)

	var unknown *UnknownItemError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Xx", unknown.ID)

	assert.True(t, f.ctrl.IsComplete(), "failed start must not build a session")
	assert.Empty(t, f.ctrl.SessionID())
}

func TestStart_UnknownDisabledItemIgnored(t *testing.T) {
	items := append(enabled("H"), settings.ItemSetting{ID: "Xx"})
	f := newFixture(t, testDataset(), items)

	require.NoError(t, f.ctrl.Start())
	assert.Equal(t, []string{"H"}, ids(f.ctrl.Pending()))
}

func TestStart_FailureKeepsPreviousSession(t *testing.T) {
	data := testDataset()
	f := newFixture(t, data, enabled("H", "O"))
	require.NoError(t, f.ctrl.Start())
	sid := f.ctrl.SessionID()

	delete(data, "O")
	require.Error(t, f.ctrl.Start())

	assert.Equal(t, sid, f.ctrl.SessionID())
	assert.Len(t, f.ctrl.Pending(), 2)
}

func TestAnswer_Correct(t *testing.T) {
	f := newFixture(t, testDataset(), enabled("H", "O", "C"))
	require.NoError(t, f.ctrl.Start())
	ctx := context.Background()

	q := f.ctrl.Current()
	require.NoError(t, f.ctrl.Answer(ctx, q, correctOf(q)))

	assert.Len(t, f.ctrl.Pending(), 2)
	assert.NotContains(t, ids(f.ctrl.Pending()), q.ID)
	assert.Equal(t, []string{q.ID}, ids(f.ctrl.Right()))
	assert.Empty(t, f.ctrl.Wrong())
}

func TestAnswer_WrongStaysPending(t *testing.T) {
	f := newFixture(t, testDataset(), enabled("H", "O", "C"))
	require.NoError(t, f.ctrl.Start())
	ctx := context.Background()

	q := f.ctrl.Current()
	require.NoError(t, f.ctrl.Answer(ctx, q, wrongOf(t, q)))

	assert.Len(t, f.ctrl.Pending(), 3)
	assert.Equal(t, q.ID, f.ctrl.Current().ID, "wrongly answered question stays current")
	assert.Equal(t, []string{q.ID}, ids(f.ctrl.Wrong()))
	assert.Empty(t, f.ctrl.Right())
}

func TestAnswer_StatsCountFirstAttemptOnly(t *testing.T) {
	f := newFixture(t, testDataset(), enabled("H"))
	require.NoError(t, f.ctrl.Start())
	ctx := context.Background()

	q := f.ctrl.Current()
	require.NoError(t, f.ctrl.Answer(ctx, q, wrongOf(t, q)))
	require.NoError(t, f.ctrl.Answer(ctx, q, wrongOf(t, q)))
	require.NoError(t, f.ctrl.Answer(ctx, q, correctOf(q)))

	setting, ok := f.store.Get("H")
	require.True(t, ok)
	assert.Equal(t, settings.Stats{Times: 1, Right: 0, Wrong: 1}, setting.Stats)

	assert.True(t, f.ctrl.IsComplete())
	assert.Equal(t, []string{"H"}, ids(f.ctrl.Wrong()))
	assert.Empty(t, f.ctrl.Right(), "a retried question is not counted right")
	assert.Equal(t, 1, f.repo.Saves(), "persist runs only when stats change")
}

func TestAnswer_UnrelatedQuestionIsNoop(t *testing.T) {
	f := newFixture(t, testDataset(), enabled("H", "O"))
	require.NoError(t, f.ctrl.Start())
	ctx := context.Background()

	stranger := NewBuilder(NewSeededRand(1), 3).Build(testDataset()["C"])
	require.NoError(t, f.ctrl.Answer(ctx, stranger, correctOf(stranger)))
	require.NoError(t, f.ctrl.Answer(ctx, nil, Answer{Correct: true}))

	assert.Len(t, f.ctrl.Pending(), 2)
	assert.Empty(t, f.ctrl.Right())
	assert.Equal(t, 0, f.repo.Saves())
}

func TestAnswer_AfterCompletionIsNoop(t *testing.T) {
	f := newFixture(t, testDataset(), enabled("H"))
	require.NoError(t, f.ctrl.Start())
	ctx := context.Background()

	q := f.ctrl.Current()
	require.NoError(t, f.ctrl.Answer(ctx, q, correctOf(q)))
	require.NoError(t, f.ctrl.Answer(ctx, q, correctOf(q)))

	setting, _ := f.store.Get("H")
	assert.Equal(t, 1, setting.Stats.Times)
	assert.Len(t, f.ctrl.Right(), 1)
}

func TestAnswer_PersistFailure(t *testing.T) {
	f := newFixture(t, testDataset(), enabled("H", "O"))
	require.NoError(t, f.ctrl.Start())
	boom := errors.New("disk full")
	f.repo.FailWith(boom)

	q := f.ctrl.Current()
	err := f.ctrl.Answer(context.Background(), q, correctOf(q))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// The transition still happened.
	assert.Len(t, f.ctrl.Pending(), 1)
	assert.Len(t, f.ctrl.Right(), 1)
	setting, _ := f.store.Get(q.ID)
	assert.Equal(t, 1, setting.Stats.Right)
}

func TestRepeatWrongOnly(t *testing.T) {
	f := newFixture(t, testDataset(), enabled("H", "O", "C"))
	require.NoError(t, f.ctrl.Start())
	ctx := context.Background()

	var wrongIDs []string
	for !f.ctrl.IsComplete() {
		q := f.ctrl.Current()
		if q.ID != "C" && !contains(wrongIDs, q.ID) {
			wrongIDs = append(wrongIDs, q.ID)
			require.NoError(t, f.ctrl.Answer(ctx, q, wrongOf(t, q)))
			continue
		}
		require.NoError(t, f.ctrl.Answer(ctx, q, correctOf(q)))
	}
	right, wrong := f.ctrl.Tally()
	require.Equal(t, 1, right)
	require.Equal(t, 2, wrong)
	before := f.ctrl.Wrong()

	f.ctrl.RepeatWrongOnly()

	assert.ElementsMatch(t, before, f.ctrl.Pending())
	assert.Empty(t, f.ctrl.Wrong())
	assert.Equal(t, []string{"C"}, ids(f.ctrl.Right()), "right is kept by default")
	assert.Equal(t, 2, f.ctrl.Round())
}

func TestRepeatWrongOnly_ResetRight(t *testing.T) {
	f := newFixture(t, testDataset(), enabled("H", "O"), WithRetryTally(ResetRight))
	require.NoError(t, f.ctrl.Start())
	ctx := context.Background()

	first := f.ctrl.Current()
	require.NoError(t, f.ctrl.Answer(ctx, first, correctOf(first)))
	second := f.ctrl.Current()
	require.NoError(t, f.ctrl.Answer(ctx, second, wrongOf(t, second)))
	require.NoError(t, f.ctrl.Answer(ctx, second, correctOf(second)))
	require.True(t, f.ctrl.IsComplete())

	f.ctrl.RepeatWrongOnly()
	assert.Empty(t, f.ctrl.Right())
	assert.Equal(t, []string{second.ID}, ids(f.ctrl.Pending()))

	// The retry round is a new first attempt for the question.
	require.NoError(t, f.ctrl.Answer(ctx, second, correctOf(second)))
	r, w := f.ctrl.Tally()
	assert.Equal(t, 1, r)
	assert.Equal(t, 0, w)
	setting, _ := f.store.Get(second.ID)
	assert.Equal(t, settings.Stats{Times: 2, Right: 1, Wrong: 1}, setting.Stats)
}

func TestRepeatAll(t *testing.T) {
	f := newFixture(t, testDataset(), enabled("H", "O", "C", "Na"))
	require.NoError(t, f.ctrl.Start())
	ctx := context.Background()
	sid := f.ctrl.SessionID()

	q := f.ctrl.Current()
	require.NoError(t, f.ctrl.Answer(ctx, q, wrongOf(t, q)))
	require.NoError(t, f.ctrl.Answer(ctx, q, correctOf(q)))

	require.NoError(t, f.ctrl.RepeatAll())

	assert.Len(t, f.ctrl.Pending(), 4)
	assert.Empty(t, f.ctrl.Right())
	assert.Empty(t, f.ctrl.Wrong())
	assert.NotEqual(t, sid, f.ctrl.SessionID())
	for _, p := range f.ctrl.Pending() {
		assert.NotSame(t, q, p, "questions are rebuilt")
	}
}

func TestScenario_Hydrogen(t *testing.T) {
	data := mapDataset{"H": {ID: "H", Prompt: "H", Correct: "1", Wrong: []string{"2", "3", "4", "5"}}}
	f := newFixture(t, data, enabled("H"))
	require.NoError(t, f.ctrl.Start())

	pending := f.ctrl.Pending()
	require.Len(t, pending, 1)
	q := pending[0]
	assert.Equal(t, "H", q.ID)
	assert.Len(t, q.Answers, 4)
	assert.Contains(t, values(q.Answers), "1")

	require.NoError(t, f.ctrl.Answer(context.Background(), q, Answer{Value: "1", Correct: true}))

	assert.True(t, f.ctrl.IsComplete())
	assert.Equal(t, []*Question{q}, f.ctrl.Right())
	setting, _ := f.store.Get("H")
	assert.Equal(t, settings.Stats{Times: 1, Right: 1, Wrong: 0}, setting.Stats)

	stored, err := f.repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, setting.Stats, stored[0].Stats, "stats are persisted")
}

func TestObserver_EventSequence(t *testing.T) {
	f := newFixture(t, testDataset(), enabled("H"))
	var got []Event
	f.ctrl.Subscribe(func(e Event) { got = append(got, e) })

	require.NoError(t, f.ctrl.Start())
	q := f.ctrl.Current()
	ctx := context.Background()
	require.NoError(t, f.ctrl.Answer(ctx, q, wrongOf(t, q)))
	require.NoError(t, f.ctrl.Answer(ctx, q, correctOf(q)))
	f.ctrl.RepeatWrongOnly()

	kinds := make([]EventKind, len(got))
	for i, e := range got {
		kinds[i] = e.Kind
	}
	assert.Equal(t, []EventKind{EventStarted, EventAnswered, EventAnswered, EventCompleted, EventRetried}, kinds)

	assert.True(t, got[1].FirstAttempt)
	assert.False(t, got[2].FirstAttempt)
	assert.Equal(t, 1, got[1].Pending)
	assert.Equal(t, 0, got[3].Pending)
	assert.Equal(t, 2, got[4].Round)
	for _, e := range got {
		assert.Equal(t, f.ctrl.SessionID(), e.SessionID)
	}
}

func TestParseRetryTally(t *testing.T) {
	tests := []struct {
		in   string
		want RetryTally
		err  bool
	}{
		{"", KeepRight, false},
		{"keep", KeepRight, false},
		{"reset", ResetRight, false},
		{"sometimes", KeepRight, true},
	}
	for _, tt := range tests {
		got, err := ParseRetryTally(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, got, mustParse(t, got.String()))
	}
}

func mustParse(t *testing.T, s string) RetryTally {
	t.Helper()
	r, err := ParseRetryTally(s)
	require.NoError(t, err)
	return r
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
