// Package game provides the repository interface and types for the
// active play session. One session at a time is designated "current"
// through an explicit pointer entry; every write also lands under the
// session's own id so the record survives for audit.
package game

import (
	"context"

	"github.com/crawlforge/dungeon-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=gamemock github.com/crawlforge/dungeon-api/internal/repositories/game Repository

// CreateInput contains parameters for creating a session
type CreateInput struct {
	Game *entities.Game
}

// CreateOutput contains the result of creating a session
type CreateOutput struct {
	Game *entities.Game
}

// GetInput contains parameters for retrieving a session by id
type GetInput struct {
	ID string
}

// GetOutput contains a retrieved session
type GetOutput struct {
	Game *entities.Game
}

// SaveInput contains the session to save. Game.Version must be the
// version the caller read; the save fails with CONFLICT when another
// writer got there first.
type SaveInput struct {
	Game *entities.Game
}

// SaveOutput contains the saved session with its bumped version
type SaveOutput struct {
	Game *entities.Game
}

// DeleteCurrentOutput contains the result of deleting the current session
type DeleteCurrentOutput struct {
	Deleted bool
}

// Repository defines the session storage operations
type Repository interface {
	// Create stores a new session and designates it current. Fails
	// with CONFLICT if a current session already exists.
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a session by id
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetCurrent resolves the current pointer and retrieves that session
	GetCurrent(ctx context.Context) (*GetOutput, error)

	// Save persists a mutated session under a compare-and-swap on its
	// version, bumping the version on success
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// DeleteCurrent removes the current pointer and the session record
	DeleteCurrent(ctx context.Context) (*DeleteCurrentOutput, error)
}
