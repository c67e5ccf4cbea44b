package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-recruitment-console/internal/domain"
	"go-recruitment-console/internal/session"
	"go-recruitment-console/internal/usecase"
)

// pipelineUpdatedMsg signals that an asynchronous pipeline operation
// finished; the view re-reads the pipeline snapshot.
type pipelineUpdatedMsg struct{}

const (
	focusJob = iota
	focusResumes
)

// WorkflowModel renders the two-step ranking workflow. All sequencing
// decisions live in the pipeline usecase; this model only collects file
// paths, fires submissions, and draws the snapshot.
type WorkflowModel struct {
	pipeline *usecase.PipelineUsecase
	sess     *session.Session
	keys     KeyMap

	jobInput    textinput.Model
	resumeInput textinput.Model
	focus       int
	spin        spinner.Model

	// note is picker-level feedback (unsupported extension, unreadable
	// path). Distinct from the pipeline's own status message.
	note string

	width int
}

func NewWorkflowModel(pipeline *usecase.PipelineUsecase, sess *session.Session) WorkflowModel {
	job := textinput.New()
	job.Placeholder = "path/to/job-description.pdf"
	job.Prompt = "Job description: "
	job.Focus()

	resumes := textinput.New()
	resumes.Placeholder = "r1.pdf r2.docx r3.txt"
	resumes.Prompt = "Resume files:    "

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return WorkflowModel{
		pipeline:    pipeline,
		sess:        sess,
		keys:        DefaultKeyMap,
		jobInput:    job,
		resumeInput: resumes,
		spin:        sp,
	}
}

func (m WorkflowModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m WorkflowModel) Update(msg tea.Msg) (WorkflowModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case pipelineUpdatedMsg:
		return m, nil

	case tea.KeyMsg:
		if !m.sess.IsRecruiter() {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.FocusToggle):
			m.toggleFocus()
			return m, nil
		case key.Matches(msg, m.keys.Confirm):
			m.applySelection()
			return m, nil
		case key.Matches(msg, m.keys.SubmitJob):
			return m, m.submit((*usecase.PipelineUsecase).SubmitJobDocument)
		case key.Matches(msg, m.keys.SubmitResumes):
			return m, m.submit((*usecase.PipelineUsecase).SubmitResumeDocuments)
		case key.Matches(msg, m.keys.ResetWorkflow):
			m.pipeline.Reset()
			m.jobInput.SetValue("")
			m.resumeInput.SetValue("")
			m.note = ""
			return m, nil
		}
		return m.updateInputs(msg)
	}
	return m, nil
}

func (m *WorkflowModel) toggleFocus() {
	if m.focus == focusJob {
		m.focus = focusResumes
		m.jobInput.Blur()
		m.resumeInput.Focus()
	} else {
		m.focus = focusJob
		m.resumeInput.Blur()
		m.jobInput.Focus()
	}
}

func (m WorkflowModel) updateInputs(msg tea.Msg) (WorkflowModel, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == focusJob {
		m.jobInput, cmd = m.jobInput.Update(msg)
	} else {
		m.resumeInput, cmd = m.resumeInput.Update(msg)
	}
	return m, cmd
}

// applySelection hands the focused input's paths to the pipeline. The
// extension whitelist is applied here, at the picker, matching the
// advisory nature of the filter.
func (m *WorkflowModel) applySelection() {
	m.note = ""
	if m.focus == focusJob {
		path := strings.TrimSpace(m.jobInput.Value())
		if path == "" {
			return
		}
		if !domain.SupportedUpload(path) {
			m.note = "Unsupported file type — use PDF, DOCX, DOC, or TXT"
			return
		}
		if err := m.pipeline.SelectJobDocument(domain.FileDocument(path)); err != nil {
			m.note = err.Error()
		}
		return
	}

	var docs []domain.Document
	for _, path := range strings.Fields(m.resumeInput.Value()) {
		if !domain.SupportedUpload(path) {
			m.note = fmt.Sprintf("Skipping %s — use PDF, DOCX, DOC, or TXT", path)
			continue
		}
		docs = append(docs, domain.FileDocument(path))
	}
	// Wholesale replacement, never additive.
	if err := m.pipeline.SelectResumeDocuments(docs); err != nil {
		m.note = err.Error()
	}
}

// submit wraps a blocking pipeline call in a command so the interface
// stays responsive while the request is in flight.
func (m WorkflowModel) submit(op func(*usecase.PipelineUsecase, context.Context)) tea.Cmd {
	pipeline := m.pipeline
	return func() tea.Msg {
		op(pipeline, context.Background())
		return pipelineUpdatedMsg{}
	}
}

func (m WorkflowModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🛫 EAA Recruit"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Automated candidate ranking"))
	b.WriteString("\n\n")

	switch {
	case !m.sess.IsAuthenticated():
		b.WriteString("Welcome to EAA Recruit.\n\n")
		b.WriteString("Sign in or create an account to access the recruitment platform,\n")
		b.WriteString("then restart the console with your access token (API_TOKEN or --token).\n")
		return b.String()
	case !m.sess.IsRecruiter():
		b.WriteString("Welcome, candidate! Your account is set up.\n\n")
		b.WriteString("The recruitment features are available to recruiters and admins.\n")
		b.WriteString("Please contact an administrator if you need recruiter access.\n")
		return b.String()
	}

	st := m.pipeline.State()

	b.WriteString(m.renderStep1(st))
	b.WriteString("\n")
	b.WriteString(m.renderStep2(st))
	b.WriteString("\n")

	if m.note != "" {
		b.WriteString(mutedStyle.Render(m.note))
		b.WriteString("\n")
	}
	if st.StatusMessage != "" {
		style := successStyle
		if strings.Contains(st.StatusMessage, "❌") {
			style = errorStyle
		}
		b.WriteString(style.Render(st.StatusMessage))
		b.WriteString("\n")
	}
	if st.Pending {
		b.WriteString(m.spin.View())
		b.WriteString(mutedStyle.Render(" Processing..."))
		b.WriteString("\n")
	}
	if st.Report != nil {
		b.WriteString("\n")
		b.WriteString(renderReport(st.Report))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab switch field • enter select • ctrl+j process job • ctrl+r rank • ctrl+n start over • q quit"))
	return b.String()
}

func (m WorkflowModel) renderStep1(st usecase.PipelineState) string {
	var b strings.Builder
	b.WriteString("Step 1: Upload Job Description\n")
	b.WriteString(m.jobInput.View())
	b.WriteString("\n")
	if st.JobDocument != "" {
		b.WriteString(mutedStyle.Render("Selected: " + st.JobDocument))
		b.WriteString("\n")
	}
	return sectionStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m WorkflowModel) renderStep2(st usecase.PipelineState) string {
	var b strings.Builder
	b.WriteString("Step 2: Upload Candidate Resumes\n")
	b.WriteString(m.resumeInput.View())
	b.WriteString("\n")
	if st.ResumeCount > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Selected: %d files", st.ResumeCount)))
		b.WriteString("\n")
	}
	if !st.JobProcessed {
		b.WriteString(mutedStyle.Render("(process the job description first)"))
		b.WriteString("\n")
	}
	return sectionStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderReport(report *domain.RankingReport) string {
	p := usecase.Project(report)

	var b strings.Builder
	b.WriteString("🎯 Candidate Rankings\n")
	b.WriteString(fmt.Sprintf("Total Candidates: %d\n", p.TotalCandidates))
	b.WriteString(fmt.Sprintf("Generated: %s\n", p.GeneratedAt))
	if p.Summary != "" {
		b.WriteString(mutedStyle.Render("Job: " + p.Summary))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for c := range p.Candidates() {
		var card strings.Builder
		card.WriteString(rankStyle.Render(fmt.Sprintf("Rank #%d", c.Rank)))
		card.WriteString("  " + c.CandidateID + "\n")
		card.WriteString(fmt.Sprintf("Match Score: %.1f%%   Similarity: %.4f\n", c.MatchPercentage, c.SimilarityScore))
		if len(c.TopTerms) > 0 {
			parts := make([]string, 0, len(c.TopTerms))
			for _, t := range c.TopTerms {
				parts = append(parts, fmt.Sprintf("%s (%s)", t.Term, t.Relevance))
			}
			card.WriteString(termStyle.Render(strings.Join(parts, "  ")))
			card.WriteString("\n")
		}
		b.WriteString(cardStyle.Render(strings.TrimRight(card.String(), "\n")))
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Render(b.String())
}
