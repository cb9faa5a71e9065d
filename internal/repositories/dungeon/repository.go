// Package dungeon provides the repository interface and types for
// generated dungeon layouts. Dungeons are immutable once created.
package dungeon

import (
	"context"

	"github.com/crawlforge/dungeon-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=dungeonmock github.com/crawlforge/dungeon-api/internal/repositories/dungeon Repository

// CreateInput contains the dungeon to persist
type CreateInput struct {
	Dungeon *entities.Dungeon
}

// CreateOutput contains the persisted dungeon
type CreateOutput struct {
	Dungeon *entities.Dungeon
}

// GetInput contains parameters for retrieving a dungeon
type GetInput struct {
	ID string
}

// GetOutput contains a retrieved dungeon
type GetOutput struct {
	Dungeon *entities.Dungeon
}

// ListIDsOutput contains the ids of all stored dungeons
type ListIDsOutput struct {
	IDs []string
}

// Repository defines dungeon storage operations
type Repository interface {
	// Create stores a dungeon under its id and adds it to the
	// membership index
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a dungeon by id
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// ListIDs returns the membership index
	ListIDs(ctx context.Context) (*ListIDsOutput, error)
}
