// Package tui is the terminal front end of the health plan wizard.
package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/bizmatters/healthpath/internal/plan"
	"github.com/bizmatters/healthpath/internal/planner"
	"github.com/bizmatters/healthpath/internal/questionnaire"
	"github.com/bizmatters/healthpath/internal/report"
	"github.com/bizmatters/healthpath/internal/wizard"
)

// Exporter writes the plan to its destination and returns a description of
// where it went
type Exporter func(doc *plan.Document) (string, error)

type statusMsg string

type generatedMsg struct {
	seq int
	err error
}

type exportedMsg struct {
	dest string
	err  error
}

// Model is the bubbletea model driving a planner.Flow
type Model struct {
	ctx      context.Context
	flow     *planner.Flow
	styles   Styles
	exporter Exporter

	spinner  spinner.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer

	question wizard.View
	inputs   []textinput.Model
	focus    int
	cursor   int
	notice   string

	// seq identifies the generation whose result is awaited; pending is set
	// from dispatch until its generatedMsg arrives
	seq      int
	pending  bool
	status   string
	statusCh chan string

	flash    string
	width    int
	height   int
	quitting bool
}

// New creates the model. The flow should already be opened so the welcome
// screen can offer to resume.
func New(ctx context.Context, flow *planner.Flow, styles Styles, exporter Exporter) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(80, 20)

	return Model{
		ctx:      ctx,
		flow:     flow,
		styles:   styles,
		exporter: exporter,
		spinner:  sp,
		viewport: vp,
		renderer: newRenderer(styles, 80),
		width:    80,
		height:   24,
	}
}

func newRenderer(styles Styles, width int) *glamour.TermRenderer {
	var r *glamour.TermRenderer
	if styles.IsDark {
		r, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
	} else {
		r, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(width),
		)
	}
	return r
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// screen is the flow's screen, with a dispatched generation shown as loading
// before the flow itself switches
func (m Model) screen() planner.Screen {
	if m.pending {
		return planner.ScreenLoading
	}
	return m.flow.Screen()
}

// loadQuestion rebuilds the widgets for the controller's current question
func (m *Model) loadQuestion() {
	m.question = m.flow.Controller().View()
	m.loadInputs()
}

func (m *Model) loadInputs() {
	m.inputs = nil
	m.focus = 0
	m.cursor = 0
	m.notice = ""

	switch m.question.Kind {
	case questionnaire.KindMultiInput:
		for i, f := range m.question.Fields {
			ti := textinput.New()
			ti.Prompt = ""
			ti.Placeholder = f.Placeholder
			ti.CharLimit = 64
			ti.Width = 24
			ti.SetValue(f.Value)
			if i == 0 {
				ti.Focus()
			}
			m.inputs = append(m.inputs, ti)
		}
	case questionnaire.KindSingleChoice:
		for i, o := range m.question.Options {
			if o.Selected {
				m.cursor = i
			}
		}
	}
}

func (m *Model) readBack() map[string]string {
	values := make(map[string]string, len(m.inputs))
	for i, f := range m.question.Fields {
		values[f.ID] = m.inputs[i].Value()
	}
	return values
}

// commit saves the input at i when it differs from the recorded answer and
// refreshes the question view. Widgets are left untouched.
func (m *Model) commit(i int) {
	if i < 0 || i >= len(m.inputs) || i >= len(m.question.Fields) {
		return
	}
	f := m.question.Fields[i]
	value := strings.TrimSpace(m.inputs[i].Value())
	if value == f.Value {
		return
	}
	view, err := m.flow.Controller().SetField(m.ctx, f.ID, value)
	if err != nil {
		return
	}
	m.question = view
}

func (m *Model) setFocus(i int) {
	n := len(m.inputs)
	if n == 0 {
		return
	}
	m.commit(m.focus)
	m.inputs[m.focus].Blur()
	m.focus = (i%n + n) % n
	m.inputs[m.focus].Focus()
}

// cycle moves a select or range field by delta options or steps
func (m *Model) cycle(delta int) {
	if len(m.inputs) == 0 {
		return
	}
	f := m.question.Fields[m.focus]
	in := &m.inputs[m.focus]

	switch f.Type {
	case questionnaire.InputSelect:
		if len(f.Options) == 0 {
			return
		}
		idx := -1
		for i, o := range f.Options {
			if o == in.Value() {
				idx = i
			}
		}
		if idx < 0 && delta < 0 {
			idx = 0
		}
		n := len(f.Options)
		in.SetValue(f.Options[((idx+delta)%n+n)%n])
	case questionnaire.InputRange:
		step := f.Step
		if step == 0 {
			step = 1
		}
		v, err := strconv.ParseFloat(in.Value(), 64)
		if err != nil {
			v = f.Min
		}
		v += float64(delta) * step
		if v < f.Min {
			v = f.Min
		}
		if f.Max > f.Min && v > f.Max {
			v = f.Max
		}
		in.SetValue(strconv.FormatFloat(v, 'f', -1, 64))
	}
	m.commit(m.focus)
}

// refreshReport renders the selected tab into the viewport
func (m *Model) refreshReport() {
	v, err := m.flow.SelectTab(m.flow.Tab())
	if err != nil {
		m.viewport.SetContent(m.styles.Error.Render(err.Error()))
		return
	}
	md := report.Markdown(v)
	out := md
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(md); err == nil {
			out = rendered
		}
	}
	m.viewport.SetContent(out)
	m.viewport.GotoTop()
}

func (m *Model) selectTab(i int) {
	n := len(report.Tabs)
	if _, err := m.flow.SelectTab(report.Tabs[(i%n+n)%n]); err != nil {
		return
	}
	m.flash = ""
	m.refreshReport()
}

func tabIndex(t report.Tab) int {
	for i, known := range report.Tabs {
		if known == t {
			return i
		}
	}
	return 0
}

// generate dispatches a generation; retry replays it from the error screen
func (m Model) generate(retry bool) (tea.Model, tea.Cmd) {
	m.seq++
	m.pending = true
	m.status = planner.LoadingMessages[0]
	m.notice = ""

	ch := make(chan string, 8)
	m.statusCh = ch
	seq, ctx, flow := m.seq, m.ctx, m.flow
	epoch := flow.Session().Epoch()

	run := func() tea.Msg {
		defer close(ch)
		// restarted before the command ran
		if flow.Session().Epoch() != epoch {
			return generatedMsg{seq: seq, err: planner.ErrStaleGeneration}
		}
		emit := func(s string) {
			select {
			case ch <- s:
			default:
			}
		}
		var err error
		if retry {
			err = flow.Retry(ctx, emit)
		} else {
			err = flow.Generate(ctx, emit)
		}
		return generatedMsg{seq: seq, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, run, waitForStatus(ch))
}

func waitForStatus(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return statusMsg(s)
	}
}

func (m Model) export() tea.Cmd {
	doc, exporter := m.flow.Plan(), m.exporter
	return func() tea.Msg {
		if exporter == nil {
			return exportedMsg{err: errNoExporter}
		}
		dest, err := exporter(doc)
		return exportedMsg{dest: dest, err: err}
	}
}
