package domain

import (
	"context"
	"fmt"
)

// MatchingTerm is one scored term shared between the job description and
// a resume.
type MatchingTerm struct {
	Term      string  `json:"term"`
	Relevance float64 `json:"relevance"`
}

// CandidateResult is one ranked candidate in a report.
type CandidateResult struct {
	CandidateID      string         `json:"candidate_id" validate:"required"`
	Rank             int            `json:"rank" validate:"min=1"`
	SimilarityScore  float64        `json:"similarity_score"`
	MatchPercentage  float64        `json:"match_percentage" validate:"min=0,max=100"`
	TopMatchingTerms []MatchingTerm `json:"top_matching_terms"`
}

// RankingReport is the scored output of the ranking engine for one
// resume batch. Candidate order is authoritative display order; the
// engine sorts before returning.
type RankingReport struct {
	Timestamp             string            `json:"timestamp" validate:"required"`
	JobDescriptionSummary string            `json:"job_description_summary"`
	TotalCandidates       int               `json:"total_candidates" validate:"min=0"`
	Candidates            []CandidateResult `json:"candidates"`
}

// Validate checks the report's structural invariants: the candidate
// count matches the header, and ranks are a permutation of
// 1..TotalCandidates with no gaps or duplicates.
func (r *RankingReport) Validate() error {
	if len(r.Candidates) != r.TotalCandidates {
		return fmt.Errorf("report lists %d candidates but declares %d", len(r.Candidates), r.TotalCandidates)
	}
	seen := make([]bool, len(r.Candidates))
	for _, c := range r.Candidates {
		if c.Rank < 1 || c.Rank > len(r.Candidates) {
			return fmt.Errorf("candidate %q has rank %d outside 1..%d", c.CandidateID, c.Rank, len(r.Candidates))
		}
		if seen[c.Rank-1] {
			return fmt.Errorf("duplicate rank %d", c.Rank)
		}
		seen[c.Rank-1] = true
	}
	return nil
}

// RankingService is the recruitment-facing surface of the ranking
// service. UploadJob must succeed at least once in a session before
// RankResumes is meaningful.
type RankingService interface {
	UploadJob(ctx context.Context, job Document) error
	RankResumes(ctx context.Context, resumes []Document) (*RankingReport, error)
}
