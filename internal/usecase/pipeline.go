package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"go-recruitment-console/internal/domain"
	"go-recruitment-console/internal/session"
	"go-recruitment-console/pkg/apperror"
	"go-recruitment-console/pkg/logger"
)

// PipelinePhase is the observable state of the ranking workflow.
type PipelinePhase int

const (
	PhaseIdle PipelinePhase = iota
	PhaseJobSelected
	PhaseJobUploading
	PhaseJobReady
	PhaseResumesSelected
	PhaseResumesUploading
	PhaseResultsReady
)

// Status messages shown on the workflow's message line.
const (
	msgSelectJob     = "Please select a job description file"
	msgSelectResumes = "Please select resume files"
	msgJobNotReady   = "Please process the job description first"
	msgJobProcessed  = "✅ Job description processed successfully!"
)

// PipelineState is a point-in-time snapshot of the workflow, safe to
// render without holding any lock.
type PipelineState struct {
	Phase         PipelinePhase
	JobDocument   string // selected job file name, "" when none
	ResumeCount   int
	JobProcessed  bool
	Pending       bool
	StatusMessage string
	Report        *domain.RankingReport
}

// PipelineUsecase sequences the two-step ranking workflow: ingest one
// job description, then submit a resume batch against it. At most one
// network operation is in flight at a time; a failed attempt never
// partially advances state, so every failure is retryable as-is.
type PipelineUsecase struct {
	ranking  domain.RankingService
	sess     *session.Session
	validate *validator.Validate

	// workflowID correlates log lines from one console run.
	workflowID string

	mu            sync.Mutex
	job           *domain.Document
	resumes       []domain.Document
	jobProcessed  bool
	pending       bool
	rankingBatch  bool // distinguishes the two uploading phases
	statusMessage string
	report        *domain.RankingReport
}

func NewPipelineUsecase(ranking domain.RankingService, sess *session.Session, validate *validator.Validate) *PipelineUsecase {
	return &PipelineUsecase{
		ranking:    ranking,
		sess:       sess,
		validate:   validate,
		workflowID: uuid.NewString(),
	}
}

// SelectJobDocument stores the job file handle. No network effect.
// Selection is refused while an upload is in flight.
func (u *PipelineUsecase) SelectJobDocument(doc domain.Document) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.pending {
		return apperror.BadRequest("An upload is in progress")
	}
	u.job = &doc
	return nil
}

// SelectResumeDocuments replaces the resume selection wholesale. No
// network effect.
func (u *PipelineUsecase) SelectResumeDocuments(docs []domain.Document) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.pending {
		return apperror.BadRequest("An upload is in progress")
	}
	u.resumes = docs
	return nil
}

// SubmitJobDocument sends the selected job description for ingestion.
// Re-submitting after a successful ingestion is allowed and re-runs it.
// Outcomes land in the status message; a failure leaves the selection
// intact and jobProcessed unset.
func (u *PipelineUsecase) SubmitJobDocument(ctx context.Context) {
	u.mu.Lock()
	if u.job == nil {
		u.statusMessage = msgSelectJob
		u.mu.Unlock()
		return
	}
	if !u.begin(false) {
		u.mu.Unlock()
		return
	}
	job := *u.job
	u.mu.Unlock()

	err := u.ranking.UploadJob(ctx, job)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.finish()
	if err != nil {
		logger.Log.Error("job ingestion failed", "workflow", u.workflowID, "file", job.Name, "error", err)
		u.statusMessage = errorMessage(err)
		return
	}
	u.jobProcessed = true
	u.statusMessage = msgJobProcessed
	logger.Log.Info("job description processed", "workflow", u.workflowID, "file", job.Name)
}

// SubmitResumeDocuments sends the selected batch for ranking. Requires
// a successfully ingested job description, a non-empty selection, no
// in-flight operation, and recruiter access. Local precondition
// failures never touch pending state or the network.
func (u *PipelineUsecase) SubmitResumeDocuments(ctx context.Context) {
	if !u.sess.Can(domain.CapRankCandidates) {
		u.mu.Lock()
		u.statusMessage = errorMessage(apperror.Forbidden("Recruiter access required"))
		u.mu.Unlock()
		return
	}

	u.mu.Lock()
	if len(u.resumes) == 0 {
		u.statusMessage = msgSelectResumes
		u.mu.Unlock()
		return
	}
	if !u.jobProcessed {
		u.statusMessage = msgJobNotReady
		u.mu.Unlock()
		return
	}
	if !u.begin(true) {
		u.mu.Unlock()
		return
	}
	batch := u.resumes
	u.mu.Unlock()

	report, err := u.ranking.RankResumes(ctx, batch)
	if err == nil {
		err = u.checkReport(report)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.finish()
	if err != nil {
		// Prior report, if any, stays visible.
		logger.Log.Error("resume ranking failed", "workflow", u.workflowID, "batch", len(batch), "error", err)
		u.statusMessage = errorMessage(err)
		return
	}
	u.report = report
	u.statusMessage = fmt.Sprintf("✅ Processed %d resumes successfully!", len(batch))
	logger.Log.Info("resume batch ranked", "workflow", u.workflowID, "batch", len(batch), "candidates", report.TotalCandidates)
}

// Reset returns the workflow to Idle. No-op while an upload is in
// flight.
func (u *PipelineUsecase) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.pending {
		return
	}
	u.job = nil
	u.resumes = nil
	u.jobProcessed = false
	u.statusMessage = ""
	u.report = nil
}

// State snapshots the workflow for rendering.
func (u *PipelineUsecase) State() PipelineState {
	u.mu.Lock()
	defer u.mu.Unlock()

	st := PipelineState{
		ResumeCount:   len(u.resumes),
		JobProcessed:  u.jobProcessed,
		Pending:       u.pending,
		StatusMessage: u.statusMessage,
		Report:        u.report,
	}
	if u.job != nil {
		st.JobDocument = u.job.Name
	}

	switch {
	case u.pending && u.rankingBatch:
		st.Phase = PhaseResumesUploading
	case u.pending:
		st.Phase = PhaseJobUploading
	case u.report != nil:
		st.Phase = PhaseResultsReady
	case u.jobProcessed && len(u.resumes) > 0:
		st.Phase = PhaseResumesSelected
	case u.jobProcessed:
		st.Phase = PhaseJobReady
	case u.job != nil:
		st.Phase = PhaseJobSelected
	default:
		st.Phase = PhaseIdle
	}
	return st
}

// begin acquires the single in-flight slot. Caller must hold the lock.
func (u *PipelineUsecase) begin(rankingBatch bool) bool {
	if u.pending {
		return false
	}
	u.pending = true
	u.rankingBatch = rankingBatch
	u.statusMessage = ""
	return true
}

// finish releases the in-flight slot. Paired with begin on every path.
func (u *PipelineUsecase) finish() {
	u.pending = false
	u.rankingBatch = false
}

// checkReport validates the decoded report before it is accepted: tag
// constraints on the wire shape plus the rank permutation invariant.
func (u *PipelineUsecase) checkReport(report *domain.RankingReport) error {
	if u.validate != nil {
		if err := u.validate.Struct(report); err != nil {
			return apperror.Internal(fmt.Errorf("malformed ranking report: %w", err))
		}
	}
	if err := report.Validate(); err != nil {
		return apperror.Internal(fmt.Errorf("malformed ranking report: %w", err))
	}
	return nil
}

func errorMessage(err error) string {
	return "❌ Error: " + err.Error()
}
