package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"go-recruitment-console/internal/domain"
	"go-recruitment-console/internal/session"
	"go-recruitment-console/internal/usecase"
)

// rosterUpdatedMsg signals that an asynchronous roster operation
// finished; the view re-reads the roster snapshot.
type rosterUpdatedMsg struct{}

// adminDeniedMsg signals that the roster refused a non-admin; the root
// model redirects back to the workflow view.
type adminDeniedMsg struct{}

// filterCycle is the order the role filter steps through.
var filterCycle = []domain.Role{"", domain.RoleCandidate, domain.RoleRecruiter, domain.RoleAdmin}

// AdminModel renders the admin console: the user roster with role
// actions. Mutation rules and refetch sequencing live in the roster
// usecase.
type AdminModel struct {
	roster *usecase.RosterUsecase
	sess   *session.Session
	keys   KeyMap

	table table.Model
	// rows mirrors the table rows so the cursor maps back to a user.
	rows []domain.UserRecord
	spin spinner.Model

	// confirming holds the user pending delete confirmation; nil when
	// no prompt is open.
	confirming *domain.UserRecord

	opened bool
	width  int
}

func NewAdminModel(roster *usecase.RosterUsecase, sess *session.Session) AdminModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 5},
			{Title: "Name", Width: 22},
			{Title: "Email", Width: 28},
			{Title: "Role", Width: 10},
			{Title: "Status", Width: 8},
			{Title: "Actions", Width: 24},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	return AdminModel{
		roster: roster,
		sess:   sess,
		keys:   DefaultKeyMap,
		table:  t,
		spin:   spinner.New(spinner.WithSpinner(spinner.Line)),
	}
}

func (m AdminModel) Init() tea.Cmd {
	return m.spin.Tick
}

// Open triggers the first fetch when the view is entered.
func (m *AdminModel) Open() tea.Cmd {
	if m.opened {
		return nil
	}
	m.opened = true
	return m.load()
}

func (m AdminModel) Update(msg tea.Msg) (AdminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case rosterUpdatedMsg:
		m.refreshRows()
		return m, nil

	case tea.KeyMsg:
		if m.confirming != nil {
			return m.updateConfirm(msg)
		}
		switch {
		case key.Matches(msg, m.keys.CycleFilter):
			return m, m.cycleFilter()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.load()
		case key.Matches(msg, m.keys.Assign):
			return m, m.actOnSelected(usecase.ActionAssignRecruiter)
		case key.Matches(msg, m.keys.Revoke):
			return m, m.actOnSelected(usecase.ActionRevokeRecruiter)
		case key.Matches(msg, m.keys.Delete):
			if u, ok := m.selected(); ok && m.roster.CanDelete(u) {
				m.confirming = &u
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m AdminModel) updateConfirm(msg tea.KeyMsg) (AdminModel, tea.Cmd) {
	target := *m.confirming
	switch msg.String() {
	case "y", "Y":
		m.confirming = nil
		return m, m.run(func(ctx context.Context) error {
			return m.roster.DeleteUser(ctx, target.ID, true)
		})
	case "n", "N", "esc":
		m.confirming = nil
	}
	return m, nil
}

func (m AdminModel) cycleFilter() tea.Cmd {
	current := m.roster.State().Filter
	next := filterCycle[0]
	for i, role := range filterCycle {
		if role == current {
			next = filterCycle[(i+1)%len(filterCycle)]
			break
		}
	}
	return m.run(func(ctx context.Context) error {
		return m.roster.SetFilter(ctx, next)
	})
}

func (m AdminModel) load() tea.Cmd {
	return m.run(m.roster.LoadUsers)
}

// actOnSelected fires a mutation for the highlighted row, but only when
// the roster offers that action for the row's user.
func (m AdminModel) actOnSelected(action usecase.RosterAction) tea.Cmd {
	target, ok := m.selected()
	if !ok {
		return nil
	}
	offered := false
	for _, a := range m.roster.ActionsFor(target) {
		if a == action {
			offered = true
			break
		}
	}
	if !offered {
		return nil
	}
	switch action {
	case usecase.ActionAssignRecruiter:
		return m.run(func(ctx context.Context) error {
			return m.roster.AssignRecruiter(ctx, target.ID)
		})
	case usecase.ActionRevokeRecruiter:
		return m.run(func(ctx context.Context) error {
			return m.roster.RevokeRecruiter(ctx, target.ID)
		})
	}
	return nil
}

// run wraps a blocking roster call in a command. A Forbidden result
// becomes adminDeniedMsg so the root can redirect away.
func (m AdminModel) run(op func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := op(context.Background()); err != nil {
			return adminDeniedMsg{}
		}
		return rosterUpdatedMsg{}
	}
}

func (m AdminModel) selected() (domain.UserRecord, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return domain.UserRecord{}, false
	}
	return m.rows[idx], true
}

// refreshRows rebuilds the table from the roster snapshot.
func (m *AdminModel) refreshRows() {
	st := m.roster.State()
	m.rows = st.Users

	rows := make([]table.Row, 0, len(st.Users))
	for _, u := range st.Users {
		status := "Inactive"
		if u.IsActive {
			status = "Active"
		}
		rows = append(rows, table.Row{
			strconv.FormatInt(u.ID, 10),
			u.FullName,
			u.Email,
			string(u.Role),
			status,
			m.actionHints(u),
		})
	}
	m.table.SetRows(rows)
}

func (m AdminModel) actionHints(u domain.UserRecord) string {
	var hints []string
	for _, action := range m.roster.ActionsFor(u) {
		switch action {
		case usecase.ActionAssignRecruiter:
			hints = append(hints, "assign (a)")
		case usecase.ActionRevokeRecruiter:
			hints = append(hints, "revoke (v)")
		case usecase.ActionDeleteUser:
			hints = append(hints, "delete (d)")
		}
	}
	return strings.Join(hints, " ")
}

func (m AdminModel) View() string {
	st := m.roster.State()

	var b strings.Builder
	b.WriteString(titleStyle.Render("👤 Admin Panel"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Manage users and assign recruiter roles"))
	b.WriteString("\n\n")

	filter := "all roles"
	if st.Filter != "" {
		filter = string(st.Filter)
	}
	b.WriteString(mutedStyle.Render("Filter: " + filter))
	b.WriteString("\n")

	if st.Error != "" {
		b.WriteString(errorStyle.Render(st.Error))
		b.WriteString("\n")
	}
	if st.Success != "" {
		b.WriteString(successStyle.Render(st.Success))
		b.WriteString("\n")
	}

	if st.Loading || st.ActionPending {
		b.WriteString(m.spin.View())
		b.WriteString(mutedStyle.Render(" Loading users..."))
		b.WriteString("\n")
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")

	if len(st.Users) == 0 && !st.Loading {
		b.WriteString(mutedStyle.Render("No users found"))
		b.WriteString("\n")
	}

	if m.confirming != nil {
		b.WriteString(errorStyle.Render("Are you sure you want to delete " + m.confirming.Email + "? (y/n)"))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("f filter • r refresh • a assign • v revoke • d delete • q quit"))
	return b.String()
}
