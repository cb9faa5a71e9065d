// Package mobtemplate provides the catalog of mob archetypes random
// encounters spawn from.
package mobtemplate

import (
	"context"

	"github.com/crawlforge/dungeon-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=mobtemplatemock github.com/crawlforge/dungeon-api/internal/repositories/mobtemplate Repository

// ListOutput contains every template in the catalog
type ListOutput struct {
	Templates []entities.MobTemplate
}

// SeedInput contains templates to store
type SeedInput struct {
	Templates []entities.MobTemplate
}

// SeedOutput contains the number of templates written
type SeedOutput struct {
	Seeded int
}

// Repository defines mob template storage operations
type Repository interface {
	// List returns all templates in the catalog
	List(ctx context.Context) (*ListOutput, error)

	// Seed stores templates, replacing same-id entries. Used at
	// startup to install the default pool when the catalog is empty.
	Seed(ctx context.Context, input SeedInput) (*SeedOutput, error)
}

// DefaultTemplates is the pool installed when the store is empty
func DefaultTemplates() []entities.MobTemplate {
	return []entities.MobTemplate{
		{ID: "cave_rat", Name: "Cave Rat", HealthPointsMax: 8, AttackPoints: 2},
		{ID: "goblin", Name: "Goblin", HealthPointsMax: 14, AttackPoints: 4},
		{ID: "skeleton", Name: "Skeleton", HealthPointsMax: 20, AttackPoints: 5},
		{ID: "orc", Name: "Orc", HealthPointsMax: 30, AttackPoints: 7},
		{ID: "troll", Name: "Troll", HealthPointsMax: 45, AttackPoints: 10},
	}
}
