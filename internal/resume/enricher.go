package resume

import (
	"context"

	"github.com/hyperjump/tsunagu/internal/models"
)

// Enricher augments a parsed profile after rule-based extraction has run.
// Implementations may fill gaps the heuristics left (normalizing titles,
// inferring seniority) but must not remove fields already present.
type Enricher interface {
	Enrich(ctx context.Context, profile *models.ResumeProfile) error
}

type noopEnricher struct{}

func (noopEnricher) Enrich(context.Context, *models.ResumeProfile) error { return nil }

// NoopEnricher returns an Enricher that leaves profiles untouched.
func NoopEnricher() Enricher { return noopEnricher{} }
