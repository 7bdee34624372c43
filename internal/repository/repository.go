package repository

import (
	"alcyxob/liftlog/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// SortDirection selects ascending or descending date order for workout queries.
type SortDirection int

const (
	SortAscending  SortDirection = 1
	SortDescending SortDirection = -1
)

// UserRepository is the credential store.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// WorkoutRepository is the workout record store. Entries are insert-only.
type WorkoutRepository interface {
	Create(ctx context.Context, entry *domain.WorkoutEntry) (primitive.ObjectID, error)
	// GetByOwner returns all entries of one owner ordered by date, ties broken by ID in the same direction.
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID, dir SortDirection) ([]domain.WorkoutEntry, error)
}

// ExportRepository keeps metadata of rendered CSV exports.
type ExportRepository interface {
	// Upsert replaces the record with the same owner and file name, or inserts a new one.
	Upsert(ctx context.Context, record *domain.ExportRecord) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExportRecord, error)
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.ExportRecord, error)
}
