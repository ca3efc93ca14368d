// Package storage defines the persistence interface for resumes and roles.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/tsunagu/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Storage defines resume and role persistence operations.
type Storage interface {
	// Resume operations
	CreateResume(ctx context.Context, resume *models.Resume) error
	GetResume(ctx context.Context, id string) (*models.Resume, error)
	UpdateResume(ctx context.Context, resume *models.Resume) error
	DeleteResume(ctx context.Context, id string) error
	ListResumes(ctx context.Context, offset, limit int) ([]*models.Resume, error)

	// Role operations
	CreateRole(ctx context.Context, role *models.Role) error
	GetRole(ctx context.Context, id string) (*models.Role, error)
	GetRoles(ctx context.Context, ids []string) ([]*models.Role, error)
	DeleteRole(ctx context.Context, id string) error
	ListRoles(ctx context.Context, offset, limit int) ([]*models.Role, error)

	// Batch operations
	BatchCreateRoles(ctx context.Context, roles []*models.Role) error

	// Stats
	CountResumes(ctx context.Context) (int64, error)
	CountRoles(ctx context.Context) (int64, error)

	Close() error
}
