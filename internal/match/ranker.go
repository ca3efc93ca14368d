package match

import (
	"sort"

	"go.uber.org/zap"

	"github.com/hyperjump/tsunagu/internal/models"
)

// Ranker scores a batch of roles and orders them for presentation.
type Ranker struct {
	scorer *Scorer
	logger *zap.Logger
}

// NewRanker builds a Ranker around the given scorer. A nil scorer gets the
// default configuration.
func NewRanker(scorer *Scorer, logger *zap.Logger) *Ranker {
	if scorer == nil {
		scorer = NewScorer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{scorer: scorer, logger: logger}
}

// Rank scores every role against the profile and sorts by the given mode.
// best_match orders by score descending with newer postings breaking ties;
// newest orders by posting time alone, ignoring scores. Nil roles are
// skipped rather than failing the batch.
func (r *Ranker) Rank(profile models.MatchProfile, roles []*models.Role, mode models.SortMode) []models.RankedRole {
	ranked := make([]models.RankedRole, 0, len(roles))
	for _, role := range roles {
		if role == nil {
			continue
		}
		ranked = append(ranked, models.RankedRole{
			Role:  role,
			Match: r.scorer.Score(profile, role),
		})
	}

	switch mode {
	case models.SortNewest:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Role.PostedAt.After(ranked[j].Role.PostedAt)
		})
	default:
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].Match.Score != ranked[j].Match.Score {
				return ranked[i].Match.Score > ranked[j].Match.Score
			}
			return ranked[i].Role.PostedAt.After(ranked[j].Role.PostedAt)
		})
	}

	r.logger.Debug("ranked roles",
		zap.Int("count", len(ranked)),
		zap.String("sort", string(mode)))
	return ranked
}

// FilterByMinScore drops results scoring under min. It is caller policy:
// candidate search applies it, direct score requests do not.
func FilterByMinScore(ranked []models.RankedRole, min float64) []models.RankedRole {
	filtered := make([]models.RankedRole, 0, len(ranked))
	for _, rr := range ranked {
		if rr.Match.Score >= min {
			filtered = append(filtered, rr)
		}
	}
	return filtered
}

// TopN truncates the ranked list to at most n results. n <= 0 means no limit.
func TopN(ranked []models.RankedRole, n int) []models.RankedRole {
	if n <= 0 || len(ranked) <= n {
		return ranked
	}
	return ranked[:n]
}
