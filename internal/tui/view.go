package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bizmatters/healthpath/internal/planner"
	"github.com/bizmatters/healthpath/internal/questionnaire"
	"github.com/bizmatters/healthpath/internal/report"
)

const progressWidth = 30

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body, help string
	switch m.screen() {
	case planner.ScreenWelcome:
		body, help = m.viewWelcome()
	case planner.ScreenQuestionnaire:
		body, help = m.viewQuestion()
	case planner.ScreenLoading:
		body, help = m.viewLoading(), "esc start over • ctrl+c quit"
	case planner.ScreenResults:
		body, help = m.viewResults(), "←/→ tabs • ↑/↓ scroll • e export • r start over • q quit"
	case planner.ScreenError:
		body, help = m.viewError(), "r retry • s start over • q quit"
	}

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Header.Render("HealthPath"),
		"",
		body,
		m.styles.Footer.Render(help),
	))
}

func (m Model) viewWelcome() (string, string) {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Your personal health journey starts here"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Answer a few questions and get a tailored workout, diet and sleep plan."))
	b.WriteString("\n")

	if m.flow.ResumeAvailable() {
		b.WriteString(m.styles.Card.Render(
			m.styles.Title.Render("Welcome back!") + "\n" +
				m.styles.Body.Render("You have saved progress. Continue where you left off?"),
		))
		return b.String(), "c continue • f start fresh • q quit"
	}
	return b.String(), "enter get started • q quit"
}

func (m Model) viewQuestion() (string, string) {
	q := m.question
	var b strings.Builder

	b.WriteString(m.progress(q.Progress))
	b.WriteString("  ")
	b.WriteString(m.styles.Muted.Render(q.ProgressLabel))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Title.Render(q.Title))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(q.Subtitle))
	b.WriteString("\n")

	var help string
	switch q.Kind {
	case questionnaire.KindMultiInput:
		for i, f := range q.Fields {
			label := m.styles.Label
			if i == m.focus {
				label = m.styles.Focused
			}
			b.WriteString(label.Render(f.Label))
			b.WriteString(m.fieldValue(i))
			b.WriteString("\n")
		}
		help = "tab next field • ←/→ adjust"
	case questionnaire.KindSingleChoice, questionnaire.KindMultiChoice:
		for i, o := range q.Options {
			marker := "( )"
			if q.Kind == questionnaire.KindMultiChoice {
				marker = "[ ]"
			}
			style := m.styles.Option
			if o.Selected {
				marker = "(•)"
				if q.Kind == questionnaire.KindMultiChoice {
					marker = "[x]"
				}
				style = m.styles.Selected
			}
			cursor := "  "
			if i == m.cursor {
				cursor = "> "
			}
			b.WriteString(style.Render(fmt.Sprintf("%s%s %s %s", cursor, marker, o.Icon, o.Label)))
			b.WriteString("\n")
			b.WriteString(m.styles.Description.Render(o.Description))
			b.WriteString("\n")
		}
		help = "↑/↓ move • space select"
		if q.Kind == questionnaire.KindMultiChoice {
			help = "↑/↓ move • space toggle"
		}
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n")
	}

	help += " • enter " + strings.ToLower(q.NextLabel)
	if q.CanRetreat {
		help += " • esc back"
	}
	return b.String(), help
}

func (m Model) fieldValue(i int) string {
	f := m.question.Fields[i]
	in := m.inputs[i]

	switch f.Type {
	case questionnaire.InputSelect:
		v := in.Value()
		if v == "" {
			v = m.styles.Muted.Render("Select...")
		}
		return "‹ " + v + " ›"
	case questionnaire.InputRange:
		if f.Display != "" {
			return "‹ " + f.Display + " ›"
		}
		return "‹ " + in.Value() + " " + f.Unit + " ›"
	}
	out := in.View()
	if f.Unit != "" {
		out += " " + m.styles.Muted.Render(f.Unit)
	}
	return out
}

func (m Model) progress(pct float64) string {
	filled := int(pct / 100 * progressWidth)
	if filled > progressWidth {
		filled = progressWidth
	}
	return m.styles.ProgressFill.Render(strings.Repeat("█", filled)) +
		m.styles.ProgressEmpty.Render(strings.Repeat("░", progressWidth-filled))
}

func (m Model) viewLoading() string {
	return m.styles.Title.Render("Creating your health plan") + "\n\n" +
		m.spinner.View() + " " + m.styles.Body.Render(m.status)
}

func (m Model) viewResults() string {
	current := m.flow.Tab()
	tabs := make([]string, 0, len(report.Tabs))
	for i, t := range report.Tabs {
		label := fmt.Sprintf("%d %s", i+1, t.Title())
		if t == current {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}

	out := lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n" + m.viewport.View()
	if m.flash != "" {
		out += "\n" + m.flash
	}
	return out
}

func (m Model) viewError() string {
	return m.styles.Error.Render("Something went wrong") + "\n\n" +
		m.styles.Body.Render(m.flow.ErrorMessage())
}
