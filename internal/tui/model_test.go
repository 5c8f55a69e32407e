package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizmatters/healthpath/internal/fixtures"
	"github.com/bizmatters/healthpath/internal/logger"
	"github.com/bizmatters/healthpath/internal/plan"
	"github.com/bizmatters/healthpath/internal/planner"
	"github.com/bizmatters/healthpath/internal/questionnaire"
	"github.com/bizmatters/healthpath/internal/report"
	"github.com/bizmatters/healthpath/internal/session"
	"github.com/bizmatters/healthpath/internal/storage"
	"github.com/bizmatters/healthpath/internal/wizard"
)

// mockGenerator implements client.Generator with queued replies
type mockGenerator struct {
	mu      sync.Mutex
	replies []reply
}

type reply struct {
	content string
	err     error
}

func (g *mockGenerator) Generate(context.Context, string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r := g.replies[0]
	if len(g.replies) > 1 {
		g.replies = g.replies[1:]
	}
	return r.content, r.err
}

type testEnv struct {
	model     Model
	flow      *planner.Flow
	kv        *storage.Memory
	persister *session.Persister
	exported  []*plan.Document
}

func newEnv(t *testing.T, replies ...reply) *testEnv {
	t.Helper()
	if len(replies) == 0 {
		replies = []reply{{content: fixtures.FencedPlanJSON}}
	}
	kv := storage.NewMemory()
	persister := session.NewPersister(kv, logger.NewNop())
	flow := planner.New(questionnaire.Default(), persister, &mockGenerator{replies: replies}, logger.NewNop(),
		planner.WithStatusInterval(time.Millisecond))

	env := &testEnv{flow: flow, kv: kv, persister: persister}
	env.model = New(context.Background(), flow, NewStyles(false), func(doc *plan.Document) (string, error) {
		env.exported = append(env.exported, doc)
		return "/tmp/healthpath-plan.txt", nil
	})
	return env
}

func (e *testEnv) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	newModel, cmd := e.model.Update(msg)
	e.model = newModel.(Model)
	return cmd
}

func (e *testEnv) key(t *testing.T, k tea.KeyType) tea.Cmd {
	t.Helper()
	return e.send(t, tea.KeyMsg{Type: k})
}

func (e *testEnv) runes(t *testing.T, s string) tea.Cmd {
	t.Helper()
	return e.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// drain runs cmd, batches included, and feeds the resulting messages back
// into the model. Commands run concurrently since status waits depend on the
// generation.
func (e *testEnv) drain(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	for _, msg := range collect(cmd) {
		if _, isTick := msg.(spinner.TickMsg); isTick {
			continue
		}
		e.send(t, msg)
	}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		msgs []tea.Msg
	)
	for _, c := range batch {
		wg.Add(1)
		go func(c tea.Cmd) {
			defer wg.Done()
			out := collect(c)
			mu.Lock()
			msgs = append(msgs, out...)
			mu.Unlock()
		}(c)
	}
	wg.Wait()

	// the generation result goes last so status updates land while loading
	var ordered, results []tea.Msg
	for _, m := range msgs {
		if _, isResult := m.(generatedMsg); isResult {
			results = append(results, m)
			continue
		}
		ordered = append(ordered, m)
	}
	return append(ordered, results...)
}

// answerAndWalk fills the session with complete answers and presses enter
// through every question
func (e *testEnv) answerAndWalk(t *testing.T) tea.Cmd {
	t.Helper()
	e.key(t, tea.KeyEnter)
	s := e.flow.Session()
	s.Answers = fixtures.CompleteAnswers()
	e.model.loadQuestion()

	var cmd tea.Cmd
	for i := 0; i < questionnaire.Default().Len(); i++ {
		cmd = e.key(t, tea.KeyEnter)
	}
	return cmd
}

func TestModel_WelcomeStartsQuestionnaire(t *testing.T) {
	env := newEnv(t)
	assert.Contains(t, env.model.View(), "enter get started")

	env.key(t, tea.KeyEnter)
	assert.Equal(t, planner.ScreenQuestionnaire, env.model.screen())

	view := env.model.View()
	assert.Contains(t, view, env.model.question.Title)
	assert.Contains(t, view, "Step 1 of 6")
	assert.NotContains(t, view, "esc back")
}

func TestModel_BlockedAdvanceShowsNotice(t *testing.T) {
	env := newEnv(t)
	env.key(t, tea.KeyEnter)
	env.key(t, tea.KeyEnter)

	assert.Equal(t, wizard.IncompleteMessage, env.model.notice)
	assert.Equal(t, 0, env.flow.Controller().Step())
	assert.Contains(t, env.model.View(), wizard.IncompleteMessage)
}

func TestModel_FillFieldsAndAdvance(t *testing.T) {
	env := newEnv(t)
	env.key(t, tea.KeyEnter)

	env.runes(t, "3")
	env.runes(t, "x")
	env.runes(t, "0")
	env.key(t, tea.KeyTab)
	env.key(t, tea.KeyRight)
	env.key(t, tea.KeyTab)
	env.runes(t, "175")
	env.key(t, tea.KeyTab)
	env.runes(t, "70")
	env.key(t, tea.KeyEnter)

	require.Empty(t, env.model.notice)
	assert.Equal(t, 1, env.flow.Controller().Step())

	store := env.flow.Session().Answers
	tests := map[string]string{
		questionnaire.FieldAge:    "30",
		questionnaire.FieldGender: "Male",
		questionnaire.FieldHeight: "175",
		questionnaire.FieldWeight: "70",
	}
	for field, want := range tests {
		got, ok := store.Field(questionnaire.BasicInfo, field)
		assert.True(t, ok, field)
		assert.Equal(t, want, got, field)
	}
}

func TestModel_ChoiceQuestions(t *testing.T) {
	env := newEnv(t)
	env.key(t, tea.KeyEnter)
	s := env.flow.Session()
	s.Answers = fixtures.CompleteAnswers()
	env.model.loadQuestion()
	env.key(t, tea.KeyEnter)
	require.Equal(t, questionnaire.Goal, env.model.question.QuestionID)

	// enter selects the highlighted option before advancing
	env.key(t, tea.KeyDown)
	env.key(t, tea.KeyEnter)
	goal, _ := env.flow.Session().Answers.Choice(questionnaire.Goal)
	assert.Equal(t, "gainWeight", goal)

	t.Run("esc goes back with the answer kept", func(t *testing.T) {
		env.key(t, tea.KeyEsc)
		assert.Equal(t, questionnaire.Goal, env.model.question.QuestionID)
		assert.Equal(t, 1, env.model.cursor)
		assert.Contains(t, env.model.View(), "esc back")
	})
}

func TestModel_GenerateToResults(t *testing.T) {
	env := newEnv(t)
	cmd := env.answerAndWalk(t)

	require.NotNil(t, cmd)
	assert.Equal(t, planner.ScreenLoading, env.model.screen())
	assert.Contains(t, env.model.View(), "Creating your health plan")

	env.drain(t, cmd)
	require.Equal(t, planner.ScreenResults, env.model.screen())
	assert.Contains(t, env.model.View(), "Overview")

	env.runes(t, "2")
	assert.Equal(t, report.TabWorkout, env.flow.Tab())

	env.key(t, tea.KeyRight)
	assert.Equal(t, report.TabDiet, env.flow.Tab())

	env.key(t, tea.KeyLeft)
	env.key(t, tea.KeyLeft)
	env.key(t, tea.KeyLeft)
	assert.Equal(t, report.TabWeekly, env.flow.Tab(), "tabs wrap around")
}

func TestModel_FailureThenRetry(t *testing.T) {
	env := newEnv(t,
		reply{err: errors.New("connection reset")},
		reply{content: fixtures.PlanJSON},
	)
	env.drain(t, env.answerAndWalk(t))

	require.Equal(t, planner.ScreenError, env.model.screen())
	assert.Contains(t, env.model.View(), planner.GenericFailureMessage)

	env.drain(t, env.runes(t, "r"))
	assert.Equal(t, planner.ScreenResults, env.model.screen())
}

func TestModel_ErrorStartOver(t *testing.T) {
	env := newEnv(t, reply{content: "not json"})
	env.drain(t, env.answerAndWalk(t))
	require.Equal(t, planner.ScreenError, env.model.screen())
	assert.Contains(t, env.model.View(), planner.ParseFailedMessage)

	env.runes(t, "s")
	assert.Equal(t, planner.ScreenWelcome, env.model.screen())
	assert.Zero(t, env.flow.Session().Answers.Len())
}

func TestModel_Export(t *testing.T) {
	env := newEnv(t)
	env.drain(t, env.answerAndWalk(t))
	require.Equal(t, planner.ScreenResults, env.model.screen())

	env.drain(t, env.runes(t, "e"))
	require.Len(t, env.exported, 1)
	assert.Same(t, env.flow.Plan(), env.exported[0])
	assert.Contains(t, env.model.View(), "Saved to /tmp/healthpath-plan.txt")
}

func TestModel_ResumePrompt(t *testing.T) {
	ctx := context.Background()

	t.Run("continue restores the results", func(t *testing.T) {
		env := newEnv(t)
		saved := session.New()
		saved.Answers = fixtures.CompleteAnswers()
		doc, err := plan.Parse(fixtures.PlanJSON)
		require.NoError(t, err)
		saved.Plan = doc
		env.persister.Save(ctx, saved)

		require.True(t, env.flow.Open(ctx))
		assert.Contains(t, env.model.View(), "Welcome back!")

		env.runes(t, "c")
		assert.Equal(t, planner.ScreenResults, env.model.screen())
	})

	t.Run("start fresh drops saved answers", func(t *testing.T) {
		env := newEnv(t)
		saved := session.New()
		saved.Answers = fixtures.CompleteAnswers()
		env.persister.Save(ctx, saved)
		require.True(t, env.flow.Open(ctx))

		env.runes(t, "f")
		assert.False(t, env.flow.ResumeAvailable())
		assert.Equal(t, planner.ScreenWelcome, env.model.screen())
		assert.NotContains(t, env.model.View(), "Welcome back!")
	})
}

func TestModel_EscDuringLoadingRestarts(t *testing.T) {
	env := newEnv(t)
	cmd := env.answerAndWalk(t)
	require.Equal(t, planner.ScreenLoading, env.model.screen())

	env.key(t, tea.KeyEsc)
	env.drain(t, cmd)
	assert.Equal(t, planner.ScreenWelcome, env.model.screen())
}

func TestModel_WindowSize(t *testing.T) {
	env := newEnv(t)
	env.send(t, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, env.model.width)
	assert.Equal(t, 116, env.model.viewport.Width)
	assert.Equal(t, 31, env.model.viewport.Height)
}

func TestModel_CtrlCQuits(t *testing.T) {
	env := newEnv(t)
	cmd := env.key(t, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, env.model.View())
}

func TestModel_Cycle(t *testing.T) {
	env := newEnv(t)
	env.key(t, tea.KeyEnter)

	env.model.question = wizard.View{
		Kind: questionnaire.KindMultiInput,
		Fields: []wizard.FieldView{
			{FieldDefinition: questionnaire.FieldDefinition{ID: "quality", Type: questionnaire.InputSelect, Options: []string{"Poor", "Fair", "Good"}}},
			{FieldDefinition: questionnaire.FieldDefinition{ID: "hours", Type: questionnaire.InputRange, Min: 3, Max: 4, Step: 0.5}, Value: "3"},
		},
	}
	env.model.loadInputs()

	env.key(t, tea.KeyLeft)
	assert.Equal(t, "Good", env.model.inputs[0].Value(), "left from empty wraps to the last option")
	env.key(t, tea.KeyRight)
	assert.Equal(t, "Poor", env.model.inputs[0].Value())

	env.key(t, tea.KeyTab)
	env.key(t, tea.KeyRight)
	assert.Equal(t, "3.5", env.model.inputs[1].Value())
	env.key(t, tea.KeyRight)
	env.key(t, tea.KeyRight)
	assert.Equal(t, "4", env.model.inputs[1].Value(), "range clamps at max")
	env.key(t, tea.KeyLeft)
	env.key(t, tea.KeyLeft)
	env.key(t, tea.KeyLeft)
	assert.Equal(t, "3", env.model.inputs[1].Value(), "range clamps at min")
}

func TestModel_FieldEditsSaveOnBlur(t *testing.T) {
	env := newEnv(t)
	env.key(t, tea.KeyEnter)

	env.runes(t, "3")
	env.runes(t, "0")
	env.key(t, tea.KeyTab)
	env.key(t, tea.KeyRight)
	env.key(t, tea.KeyTab)

	restored, hasSaved := session.NewPersister(env.kv, logger.NewNop()).Load(context.Background())
	require.True(t, hasSaved)
	age, _ := restored.Answers.Field(questionnaire.BasicInfo, questionnaire.FieldAge)
	gender, _ := restored.Answers.Field(questionnaire.BasicInfo, questionnaire.FieldGender)
	assert.Equal(t, "30", age)
	assert.Equal(t, "Male", gender)

	// an edit followed by esc on a later step survives going back
	env.flow.Session().Step = 3
	env.model.loadQuestion()
	env.key(t, tea.KeyRight)
	env.key(t, tea.KeyEsc)

	restored, _ = session.NewPersister(env.kv, logger.NewNop()).Load(context.Background())
	hours, _ := restored.Answers.Field(questionnaire.SleepInfo, questionnaire.FieldSleepHours)
	assert.Equal(t, "7.5", hours)
}

func TestModel_RangeShowsDisplay(t *testing.T) {
	env := newEnv(t)
	env.key(t, tea.KeyEnter)
	env.flow.Session().Step = 3
	env.model.loadQuestion()

	assert.Contains(t, env.model.View(), "‹ 7 hours ›")

	env.key(t, tea.KeyRight)
	assert.Equal(t, "7.5 hours", env.model.question.Fields[0].Display)
	assert.Contains(t, env.model.View(), "‹ 7.5 hours ›")

	env.key(t, tea.KeyLeft)
	env.key(t, tea.KeyLeft)
	assert.Contains(t, env.model.View(), "‹ 6.5 hours ›")
}
