package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the console.
type KeyMap struct {
	// View switching.
	ViewWorkflow key.Binding
	ViewAdmin    key.Binding

	// Workflow.
	FocusToggle   key.Binding
	Confirm       key.Binding // Apply the focused path input.
	SubmitJob     key.Binding
	SubmitResumes key.Binding
	ResetWorkflow key.Binding

	// Admin roster.
	CycleFilter key.Binding
	Refresh     key.Binding
	Assign      key.Binding
	Revoke      key.Binding
	Delete      key.Binding

	Quit key.Binding
}

var DefaultKeyMap = KeyMap{
	ViewWorkflow: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("F1", "workflow"),
	),
	ViewAdmin: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("F2", "admin"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch field"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	SubmitJob: key.NewBinding(
		key.WithKeys("ctrl+j"),
		key.WithHelp("ctrl+j", "process job"),
	),
	SubmitResumes: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "rank candidates"),
	),
	ResetWorkflow: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "start over"),
	),
	CycleFilter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "cycle role filter"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Assign: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "assign recruiter"),
	),
	Revoke: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "revoke recruiter"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete user"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
}
