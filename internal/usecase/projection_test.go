package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-recruitment-console/internal/domain"
	"go-recruitment-console/internal/usecase"
)

func projectionReport() *domain.RankingReport {
	return &domain.RankingReport{
		Timestamp:             "2024-06-01T10:30:00Z",
		JobDescriptionSummary: "Senior pilot, Addis Ababa",
		TotalCandidates:       2,
		Candidates: []domain.CandidateResult{
			{
				CandidateID:     "r1.pdf",
				Rank:            1,
				SimilarityScore: 0.87456,
				MatchPercentage: 87.456,
				TopMatchingTerms: []domain.MatchingTerm{
					{Term: "aviation", Relevance: 0.91237},
					{Term: "boeing", Relevance: 0.8},
					{Term: "captain", Relevance: 0.75},
					{Term: "safety", Relevance: 0.6},
					{Term: "navigation", Relevance: 0.5},
					{Term: "radio", Relevance: 0.4},
					{Term: "weather", Relevance: 0.3},
				},
			},
			{CandidateID: "r2.docx", Rank: 2, SimilarityScore: 0.5, MatchPercentage: 50},
		},
	}
}

func collect(p usecase.ProjectedReport) []usecase.ProjectedCandidate {
	var rows []usecase.ProjectedCandidate
	for c := range p.Candidates() {
		rows = append(rows, c)
	}
	return rows
}

func TestProjection(t *testing.T) {
	t.Run("Should cap terms at five in stored order", func(t *testing.T) {
		rows := collect(usecase.Project(projectionReport()))

		require.Len(t, rows, 2)
		require.Len(t, rows[0].TopTerms, 5)
		assert.Equal(t, "aviation", rows[0].TopTerms[0].Term)
		assert.Equal(t, "navigation", rows[0].TopTerms[4].Term)
	})

	t.Run("Should round relevance to three decimals for display only", func(t *testing.T) {
		report := projectionReport()
		rows := collect(usecase.Project(report))

		assert.Equal(t, "0.912", rows[0].TopTerms[0].Relevance)
		assert.Equal(t, "0.800", rows[0].TopTerms[1].Relevance)
		// Stored precision untouched.
		assert.Equal(t, 0.91237, report.Candidates[0].TopMatchingTerms[0].Relevance)
	})

	t.Run("Should preserve report order", func(t *testing.T) {
		rows := collect(usecase.Project(projectionReport()))
		assert.Equal(t, 1, rows[0].Rank)
		assert.Equal(t, "r1.pdf", rows[0].CandidateID)
		assert.Equal(t, 2, rows[1].Rank)
	})

	t.Run("Should be deterministic and restartable", func(t *testing.T) {
		p := usecase.Project(projectionReport())
		first := collect(p)
		second := collect(p)
		assert.Equal(t, first, second)

		// Early termination does not consume the sequence.
		for range p.Candidates() {
			break
		}
		assert.Equal(t, first, collect(p))
	})

	t.Run("Should format a parseable timestamp", func(t *testing.T) {
		p := usecase.Project(projectionReport())
		assert.Equal(t, "Jun 1, 2024 10:30:00", p.GeneratedAt)
		assert.Equal(t, 2, p.TotalCandidates)
		assert.Equal(t, "Senior pilot, Addis Ababa", p.Summary)
	})

	t.Run("Should fall back to the raw timestamp when unparseable", func(t *testing.T) {
		report := projectionReport()
		report.Timestamp = "yesterday-ish"
		p := usecase.Project(report)
		assert.Equal(t, "yesterday-ish", p.GeneratedAt)
	})
}
