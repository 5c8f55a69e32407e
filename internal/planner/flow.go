package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/bizmatters/healthpath/internal/client"
	"github.com/bizmatters/healthpath/internal/logger"
	"github.com/bizmatters/healthpath/internal/plan"
	"github.com/bizmatters/healthpath/internal/prompt"
	"github.com/bizmatters/healthpath/internal/questionnaire"
	"github.com/bizmatters/healthpath/internal/report"
	"github.com/bizmatters/healthpath/internal/session"
	"github.com/bizmatters/healthpath/internal/wizard"
)

// Screen is what the user currently sees
type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenQuestionnaire
	ScreenLoading
	ScreenResults
	ScreenError
)

func (s Screen) String() string {
	switch s {
	case ScreenWelcome:
		return "welcome"
	case ScreenQuestionnaire:
		return "questionnaire"
	case ScreenLoading:
		return "loading"
	case ScreenResults:
		return "results"
	case ScreenError:
		return "error"
	}
	return fmt.Sprintf("screen(%d)", int(s))
}

// Messages shown on the error screen
const (
	ParseFailedMessage    = "Failed to parse the health plan. Please try again."
	GenericFailureMessage = "Unable to generate your health plan. Please try again."
)

var (
	ErrGenerationInFlight = errors.New("a health plan is already being generated")
	// ErrStaleGeneration is returned when the session was restarted while
	// the generation ran; its result was dropped
	ErrStaleGeneration = errors.New("generation result discarded after restart")
	ErrNotOnErrorScreen = errors.New("retry is only available after a failed generation")
)

// Persister stores and restores sessions
type Persister interface {
	wizard.Saver
	Load(ctx context.Context) (*session.Session, bool)
	Clear(ctx context.Context, s *session.Session)
}

// Option configures a Flow
type Option func(*Flow)

// WithStatusInterval changes the loading message rotation period
func WithStatusInterval(d time.Duration) Option {
	return func(f *Flow) { f.statusInterval = d }
}

// Flow drives one session through welcome, questionnaire, generation and
// results. Methods are safe for concurrent use.
type Flow struct {
	mu sync.Mutex

	catalog    *questionnaire.Catalog
	persister  Persister
	generator  client.Generator
	log        *logger.Logger
	tracer     trace.Tracer
	controller *wizard.Controller
	session    *session.Session

	screen          Screen
	tab             report.Tab
	errMessage      string
	status          string
	resumeAvailable bool
	statusInterval  time.Duration

	inFlight bool
	cancel   context.CancelFunc
}

// New creates a flow on the welcome screen with an empty session
func New(catalog *questionnaire.Catalog, persister Persister, generator client.Generator, log *logger.Logger, opts ...Option) *Flow {
	f := &Flow{
		catalog:        catalog,
		persister:      persister,
		generator:      generator,
		log:            log,
		tracer:         otel.Tracer("planner"),
		screen:         ScreenWelcome,
		tab:            report.TabOverview,
		statusInterval: DefaultStatusInterval,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.bind(session.New())
	return f
}

func (f *Flow) bind(s *session.Session) {
	f.session = s
	f.controller = wizard.NewController(f.catalog, s, f.persister)
}

// Open restores saved progress. It reports whether the user should be
// offered to continue.
func (f *Flow) Open(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, hasSaved := f.persister.Load(ctx)
	f.bind(s)
	f.screen = ScreenWelcome
	f.resumeAvailable = hasSaved
	return hasSaved
}

// ResumeAvailable reports whether saved progress is waiting to be resumed
func (f *Flow) ResumeAvailable() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resumeAvailable
}

// Start begins the questionnaire at the first question
func (f *Flow) Start() wizard.View {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.resumeAvailable = false
	f.screen = ScreenQuestionnaire
	return f.controller.Start()
}

// Resume continues saved progress: the results when a plan exists, otherwise
// the questionnaire from the first question with answers restored.
func (f *Flow) Resume() Screen {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.resumeAvailable = false
	if f.session.HasPlan() {
		f.screen = ScreenResults
		f.tab = report.TabOverview
		return f.screen
	}
	f.controller.Start()
	f.screen = ScreenQuestionnaire
	return f.screen
}

// StartFresh discards saved progress and stays on the welcome screen
func (f *Flow) StartFresh(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.persister.Clear(ctx, f.session)
	f.resumeAvailable = false
	f.screen = ScreenWelcome
}

// Controller returns the wizard bound to the current session
func (f *Flow) Controller() *wizard.Controller {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.controller
}

// Generate compiles the prompt from the stored answers, obtains the plan and
// parses it. onStatus receives the rotating loading messages; it may be nil.
// On failure the flow moves to the error screen and the error is returned.
func (f *Flow) Generate(ctx context.Context, onStatus func(string)) error {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return ErrGenerationInFlight
	}
	f.inFlight = true
	f.screen = ScreenLoading
	f.errMessage = ""
	epoch := f.session.Epoch()
	compiled := prompt.Compile(f.session.Answers)
	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()
	defer cancel()

	ctx, span := f.tracer.Start(ctx, "planner.generate")
	defer span.End()
	span.SetAttributes(attribute.Int("prompt_length", len(compiled)))

	raw, genErr := f.call(ctx, compiled, onStatus)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	f.cancel = nil

	if f.session.Epoch() != epoch {
		f.log.Info("Discarding generation result after restart")
		return ErrStaleGeneration
	}

	if genErr != nil {
		span.RecordError(genErr)
		return f.fail(genErr)
	}

	doc, err := plan.Parse(raw)
	if err != nil {
		span.RecordError(err)
		return f.fail(err)
	}
	if err := doc.Validate(); err != nil {
		f.log.Warn("Generated plan is incomplete", "error", err.Error())
	}

	f.session.Plan = doc
	f.persister.Save(ctx, f.session)
	f.screen = ScreenResults
	f.tab = report.TabOverview
	return nil
}

// call runs the generation next to the status rotator. The rotator stops as
// soon as the call returns.
func (f *Flow) call(ctx context.Context, compiled string, onStatus func(string)) (string, error) {
	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	rotator := NewStatusRotator(LoadingMessages, f.statusInterval)

	g.Go(func() error {
		rotator.Run(gctx, done, func(msg string) {
			f.setStatus(msg)
			if onStatus != nil {
				onStatus(msg)
			}
		})
		return nil
	})

	var raw string
	g.Go(func() error {
		defer close(done)
		var err error
		raw, err = f.generator.Generate(gctx, compiled)
		return err
	})

	err := g.Wait()
	return raw, err
}

func (f *Flow) setStatus(msg string) {
	f.mu.Lock()
	f.status = msg
	f.mu.Unlock()
}

// fail moves to the error screen; f.mu is held
func (f *Flow) fail(err error) error {
	f.screen = ScreenError
	f.errMessage = UserMessage(err)
	f.log.Error("Plan generation failed", "error", err.Error())
	return err
}

// UserMessage maps a generation failure to the text shown on the error screen
func UserMessage(err error) string {
	var transportErr *client.TransportError
	switch {
	case errors.As(err, &transportErr) && transportErr.Message != "":
		return transportErr.Message
	case errors.Is(err, plan.ErrPlanParse):
		return ParseFailedMessage
	}
	return GenericFailureMessage
}

// Retry replays the generation with the stored answers
func (f *Flow) Retry(ctx context.Context, onStatus func(string)) error {
	f.mu.Lock()
	screen := f.screen
	f.mu.Unlock()
	if screen != ScreenError {
		return ErrNotOnErrorScreen
	}
	return f.Generate(ctx, onStatus)
}

// Restart clears saved progress and returns to the welcome screen. A
// generation still running is canceled and its result dropped.
func (f *Flow) Restart(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		f.cancel()
	}
	f.persister.Clear(ctx, f.session)
	f.controller.Start()
	f.screen = ScreenWelcome
	f.tab = report.TabOverview
	f.errMessage = ""
	f.status = ""
	f.resumeAvailable = false
}

// SelectTab switches the results tab and renders it
func (f *Flow) SelectTab(tab report.Tab) (report.View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, err := report.Render(f.session.Plan, tab)
	if err != nil {
		return nil, err
	}
	f.tab = tab
	return v, nil
}

// Screen returns the current screen
func (f *Flow) Screen() Screen {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.screen
}

// Tab returns the selected results tab
func (f *Flow) Tab() report.Tab {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tab
}

// ErrorMessage is the text of the error screen
func (f *Flow) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMessage
}

// Status is the current loading message
func (f *Flow) Status() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Plan returns the generated plan, nil before a successful generation
func (f *Flow) Plan() *plan.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session.Plan
}

// Session returns the bound session. Callers must not mutate it while a
// generation runs.
func (f *Flow) Session() *session.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}
