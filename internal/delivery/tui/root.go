package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-recruitment-console/internal/session"
	"go-recruitment-console/internal/usecase"
)

type view int

const (
	viewWorkflow view = iota
	viewAdmin
)

// Model is the top-level console model. It hosts the workflow and admin
// views and routes input to whichever is active; async completion
// messages always reach both so a backgrounded view stays current.
type Model struct {
	sess     *session.Session
	keys     KeyMap
	active   view
	workflow WorkflowModel
	admin    AdminModel
}

func NewModel(sess *session.Session, pipeline *usecase.PipelineUsecase, roster *usecase.RosterUsecase) Model {
	return Model{
		sess:     sess,
		keys:     DefaultKeyMap,
		active:   viewWorkflow,
		workflow: NewWorkflowModel(pipeline, sess),
		admin:    NewAdminModel(roster, sess),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.workflow.Init(), m.admin.Init())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case adminDeniedMsg:
		m.active = viewWorkflow
		return m, nil

	case tea.KeyMsg:
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(msg, m.keys.Quit) && !m.typing():
			return m, tea.Quit
		case key.Matches(msg, m.keys.ViewWorkflow):
			m.active = viewWorkflow
			return m, nil
		case key.Matches(msg, m.keys.ViewAdmin):
			if !m.sess.IsAdmin() {
				return m, nil
			}
			m.active = viewAdmin
			cmd := m.admin.Open()
			return m, cmd
		}
		// Keystrokes go only to the active view.
		if m.active == viewWorkflow {
			var cmd tea.Cmd
			m.workflow, cmd = m.workflow.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.admin, cmd = m.admin.Update(msg)
		return m, cmd
	}

	// Everything else (window size, spinner ticks, async completions)
	// fans out to both views.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.workflow, cmd = m.workflow.Update(msg)
	cmds = append(cmds, cmd)
	m.admin, cmd = m.admin.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// typing reports whether a text input currently owns the keyboard, in
// which case plain letters must not trigger bindings like q-to-quit.
func (m Model) typing() bool {
	return m.active == viewWorkflow && m.sess.IsRecruiter()
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	if m.active == viewAdmin {
		b.WriteString(m.admin.View())
	} else {
		b.WriteString(m.workflow.View())
	}
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := []string{m.renderTab("Workflow (F1)", viewWorkflow)}
	if m.sess.IsAdmin() {
		tabs = append(tabs, m.renderTab("Admin (F2)", viewAdmin))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderTab(label string, v view) string {
	if m.active == v {
		return tabActiveStyle.Render(label)
	}
	return tabInactiveStyle.Render(label)
}
