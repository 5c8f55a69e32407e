package tui

import (
	"errors"
	"unicode"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bizmatters/healthpath/internal/planner"
	"github.com/bizmatters/healthpath/internal/questionnaire"
	"github.com/bizmatters/healthpath/internal/wizard"
)

var errNoExporter = errors.New("export is not available")

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-9, 5)
		m.renderer = newRenderer(m.styles, m.viewport.Width)
		if m.screen() == planner.ScreenResults {
			m.refreshReport()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.screen() {
		case planner.ScreenWelcome:
			return m.updateWelcome(msg)
		case planner.ScreenQuestionnaire:
			return m.updateQuestionnaire(msg)
		case planner.ScreenLoading:
			return m.updateLoading(msg)
		case planner.ScreenResults:
			return m.updateResults(msg)
		case planner.ScreenError:
			return m.updateError(msg)
		}

	case statusMsg:
		if !m.pending {
			return m, nil
		}
		m.status = string(msg)
		return m, waitForStatus(m.statusCh)

	case generatedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.pending = false
		if msg.err == nil {
			m.flash = ""
			m.refreshReport()
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.flash = m.styles.Error.Render("Export failed: " + msg.err.Error())
		} else {
			m.flash = m.styles.Notice.Render("Saved to " + msg.dest)
		}
		return m, nil

	case spinner.TickMsg:
		if m.screen() != planner.ScreenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateWelcome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	resume := m.flow.ResumeAvailable()

	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "c":
		if !resume {
			return m, nil
		}
		return m.resume()
	case "f":
		if resume {
			m.flow.StartFresh(m.ctx)
		}
		return m, nil
	case "enter", " ":
		if resume {
			return m.resume()
		}
		m.flow.Start()
		m.loadQuestion()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) resume() (tea.Model, tea.Cmd) {
	if m.flow.Resume() == planner.ScreenResults {
		m.refreshReport()
		return m, nil
	}
	m.loadQuestion()
	return m, textinput.Blink
}

func (m Model) updateQuestionnaire(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctrl := m.flow.Controller()

	switch msg.Type {
	case tea.KeyEnter:
		if m.question.Kind == questionnaire.KindSingleChoice && len(m.question.Options) > 0 {
			if _, err := ctrl.SelectOption(m.ctx, m.question.Options[m.cursor].ID); err != nil {
				m.notice = err.Error()
				return m, nil
			}
		}
		return m.advance()
	case tea.KeyEsc:
		m.commit(m.focus)
		if ctrl.Retreat() {
			m.loadQuestion()
		}
		return m, nil
	}

	switch m.question.Kind {
	case questionnaire.KindMultiInput:
		return m.updateFields(msg)
	case questionnaire.KindSingleChoice, questionnaire.KindMultiChoice:
		return m.updateOptions(msg)
	}
	return m, nil
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	var readBack map[string]string
	if m.question.Kind == questionnaire.KindMultiInput {
		readBack = m.readBack()
	}

	outcome, err := m.flow.Controller().Advance(m.ctx, readBack)
	switch outcome {
	case wizard.OutcomeAdvanced:
		m.loadQuestion()
		return m, textinput.Blink
	case wizard.OutcomeComplete:
		return m.generate(false)
	}

	var verr *wizard.ValidationError
	if errors.As(err, &verr) {
		m.notice = wizard.IncompleteMessage
	} else if err != nil {
		m.notice = err.Error()
	}
	return m, nil
}

func (m Model) updateFields(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	f := m.question.Fields[m.focus]

	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		m.setFocus(m.focus + 1)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.setFocus(m.focus - 1)
		return m, nil
	}

	if f.Type == questionnaire.InputSelect || f.Type == questionnaire.InputRange {
		switch msg.Type {
		case tea.KeyRight:
			m.cycle(1)
		case tea.KeyLeft:
			m.cycle(-1)
		}
		return m, nil
	}

	if f.Type == questionnaire.InputNumber && msg.Type == tea.KeyRunes && !numeric(msg.Runes) {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.notice = ""
	return m, cmd
}

func numeric(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsDigit(r) && r != '.' {
			return false
		}
	}
	return true
}

func (m Model) updateOptions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.question.Options)
	if n == 0 {
		return m, nil
	}
	ctrl := m.flow.Controller()

	switch msg.String() {
	case "up", "k":
		m.cursor = (m.cursor - 1 + n) % n
	case "down", "j":
		m.cursor = (m.cursor + 1) % n
	case " ":
		id := m.question.Options[m.cursor].ID
		var (
			view wizard.View
			err  error
		)
		if m.question.Kind == questionnaire.KindMultiChoice {
			view, err = ctrl.ToggleOption(m.ctx, id)
		} else {
			view, err = ctrl.SelectOption(m.ctx, id)
		}
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.question = view
		m.notice = ""
	}
	return m, nil
}

func (m Model) updateLoading(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.flow.Restart(m.ctx)
		m.pending = false
		m.seq++
		return m, nil
	}
	return m, nil
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	current := tabIndex(m.flow.Tab())

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "right", "l", "tab":
		m.selectTab(current + 1)
		return m, nil
	case "left", "h", "shift+tab":
		m.selectTab(current - 1)
		return m, nil
	case "1", "2", "3", "4", "5", "6":
		m.selectTab(int(msg.Runes[0] - '1'))
		return m, nil
	case "e":
		m.flash = m.styles.Muted.Render("Exporting...")
		return m, m.export()
	case "r":
		m.flow.Restart(m.ctx)
		m.flash = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateError(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r", "enter":
		return m.generate(true)
	case "s", "esc":
		m.flow.Restart(m.ctx)
		return m, nil
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}
