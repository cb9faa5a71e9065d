// Package dungeon implements the dungeon generation service: it runs
// the layout generator and persists the result.
package dungeon

//go:generate mockgen -destination=mock/mock_service.go -package=dungeonmock github.com/crawlforge/dungeon-api/internal/orchestrators/dungeon Service

import (
	"context"
	"log/slog"

	"github.com/crawlforge/dungeon-api/internal/engine/mapgen"
	"github.com/crawlforge/dungeon-api/internal/errors"
	"github.com/crawlforge/dungeon-api/internal/events"
	"github.com/crawlforge/dungeon-api/internal/pkg/idgen"
	dungeonrepo "github.com/crawlforge/dungeon-api/internal/repositories/dungeon"
)

// Service defines the interface for dungeon operations
type Service interface {
	// Generate builds and persists a new dungeon
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)

	// Get retrieves a dungeon by id
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)
}

// Config holds the dependencies for the dungeon orchestrator
type Config struct {
	Generator   *mapgen.Generator
	Repo        dungeonrepo.Repository
	IDGenerator idgen.Generator
	EventSink   events.Sink
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Generator == nil {
		vb.RequiredField("Generator")
	}
	if c.Repo == nil {
		vb.RequiredField("Repo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.EventSink == nil {
		vb.RequiredField("EventSink")
	}

	return vb.Build()
}

type orchestrator struct {
	generator *mapgen.Generator
	repo      dungeonrepo.Repository
	idGen     idgen.Generator
	sink      events.Sink
}

// NewOrchestrator creates a dungeon orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		generator: cfg.Generator,
		repo:      cfg.Repo,
		idGen:     cfg.IDGenerator,
		sink:      cfg.EventSink,
	}, nil
}

func (o *orchestrator) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	dungeon, err := o.generator.Generate(input.Name, input.RoomCount)
	if err != nil {
		return nil, err
	}
	dungeon.ID = o.idGen.Generate()

	if _, err := o.repo.Create(ctx, dungeonrepo.CreateInput{Dungeon: dungeon}); err != nil {
		return nil, err
	}

	if err := o.sink.Emit(ctx, events.EventDungeonGenerated, map[string]interface{}{
		"dungeon_id": dungeon.ID,
		"name":       dungeon.Name,
		"room_count": len(dungeon.Rooms),
	}); err != nil {
		slog.Warn("failed to emit dungeon event", "dungeon_id", dungeon.ID, "error", err)
	}

	slog.Info("dungeon generated",
		"dungeon_id", dungeon.ID,
		"name", dungeon.Name,
		"room_count", len(dungeon.Rooms),
	)

	return &GenerateOutput{Dungeon: dungeon}, nil
}

func (o *orchestrator) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	output, err := o.repo.Get(ctx, dungeonrepo.GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	return &GetOutput{Dungeon: output.Dungeon}, nil
}
