// Package keyword provides the inverted role index used to pre-filter
// candidates before scoring.
package keyword

import (
	"context"

	"github.com/hyperjump/tsunagu/internal/models"
)

// RoleIndex defines role indexing and candidate pre-filter operations.
// The index is a recall device: it narrows the role set cheaply, and the
// scorer makes the actual ranking decision over whatever comes back.
type RoleIndex interface {
	// Index adds or replaces a role in the index.
	Index(ctx context.Context, role *models.Role) error
	// MatchingAny returns IDs of roles matching any of the given skills,
	// best keyword score first.
	MatchingAny(ctx context.Context, skills []string, limit int) ([]string, error)
	// Delete removes a role from the index.
	Delete(ctx context.Context, id string) error
	// DocCount returns the total number of indexed roles.
	DocCount() (uint64, error)
	Close() error
}
