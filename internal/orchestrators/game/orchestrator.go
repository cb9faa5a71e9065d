// Package game implements the session lifecycle and movement service.
// A deployment runs at most one session at a time; every operation here
// resolves the current session through the repository's pointer entry.
package game

//go:generate mockgen -destination=mock/mock_service.go -package=gamemock github.com/crawlforge/dungeon-api/internal/orchestrators/game Service

import (
	"context"
	"log/slog"

	herogw "github.com/crawlforge/dungeon-api/internal/clients/hero"
	"github.com/crawlforge/dungeon-api/internal/entities"
	"github.com/crawlforge/dungeon-api/internal/errors"
	"github.com/crawlforge/dungeon-api/internal/events"
	dungeonsvc "github.com/crawlforge/dungeon-api/internal/orchestrators/dungeon"
	fightsvc "github.com/crawlforge/dungeon-api/internal/orchestrators/fight"
	"github.com/crawlforge/dungeon-api/internal/pkg/clock"
	"github.com/crawlforge/dungeon-api/internal/pkg/idgen"
	"github.com/crawlforge/dungeon-api/internal/pkg/rng"
	dungeonrepo "github.com/crawlforge/dungeon-api/internal/repositories/dungeon"
	gamerepo "github.com/crawlforge/dungeon-api/internal/repositories/game"
	"github.com/crawlforge/dungeon-api/internal/repositories/mobtemplate"
)

// encounterChance is the probability an ordinary in-room move spawns
// a mob
const encounterChance = 0.05

// Service defines the interface for session operations
type Service interface {
	// StartGame generates a dungeon and opens a new session in it
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// GetGame returns the current session
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// DeleteGame removes the current session
	DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error)

	// MoveHero validates and applies a hero move, handling room
	// transitions and random encounters
	MoveHero(ctx context.Context, input *MoveHeroInput) (*MoveHeroOutput, error)
}

// Config holds the dependencies for the game orchestrator
type Config struct {
	GameRepo       gamerepo.Repository
	DungeonRepo    dungeonrepo.Repository
	MobTemplates   mobtemplate.Repository
	DungeonService dungeonsvc.Service
	FightService   fightsvc.Service
	HeroGateway    herogw.Gateway
	Roller         rng.Roller
	IDGenerator    idgen.Generator
	EventSink      events.Sink
	Clock          clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.GameRepo == nil {
		vb.RequiredField("GameRepo")
	}
	if c.DungeonRepo == nil {
		vb.RequiredField("DungeonRepo")
	}
	if c.MobTemplates == nil {
		vb.RequiredField("MobTemplates")
	}
	if c.DungeonService == nil {
		vb.RequiredField("DungeonService")
	}
	if c.FightService == nil {
		vb.RequiredField("FightService")
	}
	if c.HeroGateway == nil {
		vb.RequiredField("HeroGateway")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.EventSink == nil {
		vb.RequiredField("EventSink")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	gameRepo     gamerepo.Repository
	dungeonRepo  dungeonrepo.Repository
	mobTemplates mobtemplate.Repository
	dungeons     dungeonsvc.Service
	fights       fightsvc.Service
	heroes       herogw.Gateway
	roller       rng.Roller
	idGen        idgen.Generator
	sink         events.Sink
	clock        clock.Clock
}

// NewOrchestrator creates a game orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		gameRepo:     cfg.GameRepo,
		dungeonRepo:  cfg.DungeonRepo,
		mobTemplates: cfg.MobTemplates,
		dungeons:     cfg.DungeonService,
		fights:       cfg.FightService,
		heroes:       cfg.HeroGateway,
		roller:       cfg.Roller,
		idGen:        cfg.IDGenerator,
		sink:         cfg.EventSink,
		clock:        cfg.Clock,
	}, nil
}

func (o *orchestrator) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.HeroID == "" {
		vb.RequiredField("HeroID")
	}
	if input.DungeonName == "" {
		vb.RequiredField("DungeonName")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	// The hero must exist before we commit a session to it
	if _, err := o.heroes.GetHero(ctx, input.HeroID); err != nil {
		return nil, err
	}

	generated, err := o.dungeons.Generate(ctx, &dungeonsvc.GenerateInput{
		Name:      input.DungeonName,
		RoomCount: input.RoomCount,
	})
	if err != nil {
		return nil, err
	}
	dungeon := generated.Dungeon

	first := dungeon.RoomByOrder(0)
	if first == nil {
		return nil, errors.Internalf("dungeon %s has no first room", dungeon.ID)
	}

	now := o.clock.Now().Unix()
	game := &entities.Game{
		ID:            o.idGen.Generate(),
		HeroID:        input.HeroID,
		DungeonID:     dungeon.ID,
		CurrentRoomID: first.ID,
		HeroPosition:  first.Entrance,
		Mobs:          []entities.Mob{},
		Status:        entities.GameStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := o.gameRepo.Create(ctx, gamerepo.CreateInput{Game: game})
	if err != nil {
		return nil, err
	}

	o.emit(ctx, events.EventGameStarted, map[string]interface{}{
		"game_id":    created.Game.ID,
		"hero_id":    created.Game.HeroID,
		"dungeon_id": dungeon.ID,
	})

	slog.Info("game started",
		"game_id", created.Game.ID,
		"hero_id", created.Game.HeroID,
		"dungeon_id", dungeon.ID,
		"room_count", len(dungeon.Rooms),
	)

	return &StartGameOutput{Game: created.Game, Dungeon: dungeon}, nil
}

func (o *orchestrator) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	current, err := o.gameRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}

	return &GetGameOutput{Game: current.Game}, nil
}

func (o *orchestrator) DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error) {
	deleted, err := o.gameRepo.DeleteCurrent(ctx)
	if err != nil {
		return nil, err
	}

	if deleted.Deleted {
		o.emit(ctx, events.EventGameDeleted, nil)
		slog.Info("game deleted")
	}

	return &DeleteGameOutput{Deleted: deleted.Deleted}, nil
}

func (o *orchestrator) MoveHero(ctx context.Context, input *MoveHeroInput) (*MoveHeroOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	current, err := o.gameRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	game := current.Game

	if game.CurrentFightID != "" {
		return nil, errors.Conflict("movement is blocked during combat")
	}

	dungeonOut, err := o.dungeonRepo.Get(ctx, dungeonrepo.GetInput{ID: game.DungeonID})
	if err != nil {
		return nil, err
	}
	dungeon := dungeonOut.Dungeon

	room := dungeon.RoomByID(game.CurrentRoomID)
	if room == nil {
		return nil, errors.NotFoundf("room %s not found in dungeon %s", game.CurrentRoomID, game.DungeonID)
	}

	target := entities.Position{X: input.X, Y: input.Y}

	// Out-of-bounds targets are a no-op, not an error
	if !room.Dimension.Contains(target) {
		return &MoveHeroOutput{
			Position: game.HeroPosition,
			RoomID:   game.CurrentRoomID,
		}, nil
	}

	if target == room.Exit {
		if next := dungeon.RoomByOrder(room.Order + 1); next != nil {
			return o.transition(ctx, game, next, next.Entrance)
		}
		// Standing on the final room's exit completes the run
		return o.complete(ctx, game, room, target)
	}

	if target == room.Entrance {
		if prev := dungeon.RoomByOrder(room.Order - 1); prev != nil {
			return o.transition(ctx, game, prev, prev.Exit)
		}
	}

	return o.step(ctx, game, room, target)
}

// transition moves the session into an adjacent room. Transitions never
// roll for encounters.
func (o *orchestrator) transition(ctx context.Context, game *entities.Game, room *entities.Room, pos entities.Position) (*MoveHeroOutput, error) {
	game.CurrentRoomID = room.ID
	game.HeroPosition = pos
	game.UpdatedAt = o.clock.Now().Unix()

	if _, err := o.gameRepo.Save(ctx, gamerepo.SaveInput{Game: game}); err != nil {
		return nil, err
	}

	o.emit(ctx, events.EventRoomChanged, map[string]interface{}{
		"game_id":    game.ID,
		"room_id":    room.ID,
		"room_order": room.Order,
	})

	return &MoveHeroOutput{
		Position:    pos,
		RoomID:      room.ID,
		RoomChanged: true,
	}, nil
}

// complete marks the session finished when the hero reaches the exit of
// the final room
func (o *orchestrator) complete(ctx context.Context, game *entities.Game, room *entities.Room, pos entities.Position) (*MoveHeroOutput, error) {
	game.HeroPosition = pos
	game.Status = entities.GameStatusCompleted
	game.UpdatedAt = o.clock.Now().Unix()

	if _, err := o.gameRepo.Save(ctx, gamerepo.SaveInput{Game: game}); err != nil {
		return nil, err
	}

	o.emit(ctx, events.EventHeroMoved, map[string]interface{}{
		"game_id":  game.ID,
		"room_id":  room.ID,
		"x":        pos.X,
		"y":        pos.Y,
		"finished": true,
	})

	slog.Info("dungeon completed", "game_id", game.ID, "hero_id", game.HeroID)

	return &MoveHeroOutput{
		Position:      pos,
		RoomID:        room.ID,
		AtDungeonExit: true,
	}, nil
}

// step applies an ordinary in-room move and rolls for a random encounter
func (o *orchestrator) step(ctx context.Context, game *entities.Game, room *entities.Room, pos entities.Position) (*MoveHeroOutput, error) {
	game.HeroPosition = pos
	game.UpdatedAt = o.clock.Now().Unix()

	encounter := o.roller.Chance(encounterChance)

	var mobID int
	if encounter {
		mob, err := o.spawnMob(ctx, game, pos)
		if err != nil {
			return nil, err
		}
		if mob == nil {
			encounter = false
		} else {
			mobID = mob.ID
		}
	}

	if _, err := o.gameRepo.Save(ctx, gamerepo.SaveInput{Game: game}); err != nil {
		return nil, err
	}

	o.emit(ctx, events.EventHeroMoved, map[string]interface{}{
		"game_id": game.ID,
		"room_id": room.ID,
		"x":       pos.X,
		"y":       pos.Y,
	})

	out := &MoveHeroOutput{
		Position: pos,
		RoomID:   room.ID,
	}

	if encounter {
		started, err := o.fights.StartFight(ctx, &fightsvc.StartFightInput{MobID: mobID})
		if err != nil {
			return nil, err
		}
		out.Fight = started.Fight
	}

	return out, nil
}

// spawnMob clones a uniformly chosen template into the session's mob
// list. Returns nil when the template catalog is empty.
func (o *orchestrator) spawnMob(ctx context.Context, game *entities.Game, pos entities.Position) (*entities.Mob, error) {
	templates, err := o.mobTemplates.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(templates.Templates) == 0 {
		slog.Warn("encounter rolled but mob catalog is empty", "game_id", game.ID)
		return nil, nil
	}

	tmpl := templates.Templates[o.roller.IntN(len(templates.Templates))]
	mob := tmpl.Spawn(len(game.Mobs)+1, pos)
	game.Mobs = append(game.Mobs, mob)

	slog.Info("mob spawned",
		"game_id", game.ID,
		"mob_id", mob.ID,
		"template_id", mob.TemplateID,
	)

	return &mob, nil
}

func (o *orchestrator) emit(ctx context.Context, name string, payload interface{}) {
	if err := o.sink.Emit(ctx, name, payload); err != nil {
		slog.Warn("failed to emit event", "event", name, "error", err)
	}
}
