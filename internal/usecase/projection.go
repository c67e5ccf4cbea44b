package usecase

import (
	"fmt"
	"iter"
	"time"

	"go-recruitment-console/internal/domain"
)

// maxDisplayTerms caps how many matching terms are shown per candidate.
const maxDisplayTerms = 5

// Timestamp layouts the engine is known to emit. The first is RFC 3339;
// the second is a naive local instant without an offset.
var reportTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
}

// ProjectedTerm is a display-ready matching term. Relevance is
// pre-formatted to three decimals; the report keeps full precision.
type ProjectedTerm struct {
	Term      string
	Relevance string
}

// ProjectedCandidate is one display row of the rankings.
type ProjectedCandidate struct {
	Rank            int
	CandidateID     string
	MatchPercentage float64
	SimilarityScore float64
	TopTerms        []ProjectedTerm
}

// ProjectedReport is the display view of a ranking report.
type ProjectedReport struct {
	GeneratedAt     string
	TotalCandidates int
	Summary         string

	report *domain.RankingReport
}

// Project derives the display view of a report. The projection is pure:
// re-deriving it from the same report yields identical output and never
// touches the report itself.
func Project(report *domain.RankingReport) ProjectedReport {
	p := ProjectedReport{
		GeneratedAt:     report.Timestamp,
		TotalCandidates: report.TotalCandidates,
		Summary:         report.JobDescriptionSummary,
		report:          report,
	}
	for _, layout := range reportTimeLayouts {
		if ts, err := time.Parse(layout, report.Timestamp); err == nil {
			p.GeneratedAt = ts.Format("Jan 2, 2006 15:04:05")
			break
		}
	}
	return p
}

// Candidates returns a restartable sequence over the display rows in
// report order. No re-sorting: the engine's order is authoritative.
func (p ProjectedReport) Candidates() iter.Seq[ProjectedCandidate] {
	return func(yield func(ProjectedCandidate) bool) {
		if p.report == nil {
			return
		}
		for _, c := range p.report.Candidates {
			row := ProjectedCandidate{
				Rank:            c.Rank,
				CandidateID:     c.CandidateID,
				MatchPercentage: c.MatchPercentage,
				SimilarityScore: c.SimilarityScore,
			}
			terms := c.TopMatchingTerms
			if len(terms) > maxDisplayTerms {
				terms = terms[:maxDisplayTerms]
			}
			for _, t := range terms {
				row.TopTerms = append(row.TopTerms, ProjectedTerm{
					Term:      t.Term,
					Relevance: fmt.Sprintf("%.3f", t.Relevance),
				})
			}
			if !yield(row) {
				return
			}
		}
	}
}
