// Package fight implements the combat service. The pure state machine
// lives in engine/combat; this orchestrator validates the fight
// context against the current session, persists the transition, and
// dispatches best-effort side effects to the hero gateway and event
// sink afterwards.
package fight

//go:generate mockgen -destination=mock/mock_service.go -package=fightmock github.com/crawlforge/dungeon-api/internal/orchestrators/fight Service

import (
	"context"
	"log/slog"
	"time"

	herogw "github.com/crawlforge/dungeon-api/internal/clients/hero"
	"github.com/crawlforge/dungeon-api/internal/engine/combat"
	"github.com/crawlforge/dungeon-api/internal/entities"
	"github.com/crawlforge/dungeon-api/internal/errors"
	"github.com/crawlforge/dungeon-api/internal/events"
	"github.com/crawlforge/dungeon-api/internal/pkg/clock"
	"github.com/crawlforge/dungeon-api/internal/pkg/idgen"
	gamerepo "github.com/crawlforge/dungeon-api/internal/repositories/game"
)

// Service defines the interface for combat operations
type Service interface {
	// StartFight creates a fight against a spawned mob and attaches it
	// to the current session
	StartFight(ctx context.Context, input *StartFightInput) (*StartFightOutput, error)

	// GetFight returns the active fight
	GetFight(ctx context.Context, input *GetFightInput) (*GetFightOutput, error)

	// Attack resolves a hero attack
	Attack(ctx context.Context, input *ActionInput) (*ActionOutput, error)

	// Defend resolves a hero defend
	Defend(ctx context.Context, input *ActionInput) (*ActionOutput, error)

	// Flee resolves a hero flee attempt
	Flee(ctx context.Context, input *ActionInput) (*ActionOutput, error)

	// UpdateFight applies a direct state patch to the active fight
	UpdateFight(ctx context.Context, input *UpdateFightInput) (*UpdateFightOutput, error)

	// DeleteFight forcibly detaches the active fight
	DeleteFight(ctx context.Context, input *DeleteFightInput) (*DeleteFightOutput, error)
}

// Config holds the dependencies for the fight orchestrator
type Config struct {
	GameRepo    gamerepo.Repository
	Resolver    *combat.Resolver
	HeroGateway herogw.Gateway
	EventSink   events.Sink
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.GameRepo == nil {
		vb.RequiredField("GameRepo")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.HeroGateway == nil {
		vb.RequiredField("HeroGateway")
	}
	if c.EventSink == nil {
		vb.RequiredField("EventSink")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	gameRepo gamerepo.Repository
	resolver *combat.Resolver
	heroes   herogw.Gateway
	sink     events.Sink
	idGen    idgen.Generator
	clock    clock.Clock
}

// NewOrchestrator creates a fight orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		gameRepo: cfg.GameRepo,
		resolver: cfg.Resolver,
		heroes:   cfg.HeroGateway,
		sink:     cfg.EventSink,
		idGen:    cfg.IDGenerator,
		clock:    cfg.Clock,
	}, nil
}

func (o *orchestrator) StartFight(ctx context.Context, input *StartFightInput) (*StartFightOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	current, err := o.gameRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	game := current.Game

	if game.CurrentFightID != "" {
		return nil, errors.Conflict("a fight is already in progress")
	}

	mob := game.MobByID(input.MobID)
	if mob == nil {
		return nil, errors.NotFoundf("mob %d not found in session", input.MobID)
	}
	if mob.Status == entities.MobStatusDead {
		return nil, errors.Conflictf("mob %d is already dead", input.MobID)
	}

	f := combat.NewFight(o.idGen.Generate(), game.HeroID, mob.ID, o.clock.Now())
	game.AttachFight(f)
	game.UpdatedAt = o.clock.Now().Unix()

	if _, err := o.gameRepo.Save(ctx, gamerepo.SaveInput{Game: game}); err != nil {
		return nil, err
	}

	o.emit(ctx, events.EventFightStarted, map[string]interface{}{
		"fight_id": f.ID,
		"hero_id":  f.HeroID,
		"mob_id":   mob.ID,
		"mob_name": mob.Name,
	})

	slog.Info("fight started", "fight_id", f.ID, "hero_id", f.HeroID, "mob_id", mob.ID)

	return &StartFightOutput{Fight: f}, nil
}

func (o *orchestrator) GetFight(ctx context.Context, input *GetFightInput) (*GetFightOutput, error) {
	current, err := o.gameRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}

	if current.Game.CurrentFight == nil {
		return nil, errors.NotFound("no active fight")
	}

	return &GetFightOutput{Fight: current.Game.CurrentFight}, nil
}

func (o *orchestrator) Attack(ctx context.Context, input *ActionInput) (*ActionOutput, error) {
	return o.resolveAction(ctx, input, o.resolver.Attack)
}

func (o *orchestrator) Defend(ctx context.Context, input *ActionInput) (*ActionOutput, error) {
	return o.resolveAction(ctx, input, o.resolver.Defend)
}

func (o *orchestrator) Flee(ctx context.Context, input *ActionInput) (*ActionOutput, error) {
	return o.resolveAction(ctx, input, o.resolver.Flee)
}

// fightContext is the validated state a combat action operates on
type fightContext struct {
	game  *entities.Game
	fight *entities.Fight
	mob   *entities.Mob
}

// validateFightContext performs the shared checks every combat action
// runs before resolution
func (o *orchestrator) validateFightContext(ctx context.Context, fightID string) (*fightContext, error) {
	if fightID == "" {
		return nil, errors.InvalidArgument("fight ID cannot be empty")
	}

	current, err := o.gameRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	game := current.Game

	f := game.CurrentFight
	if f == nil || f.ID != fightID {
		return nil, errors.NotFoundf("fight %s not found", fightID)
	}

	if f.Status.Terminal() {
		return nil, errors.InvalidArgumentf("fight %s is already %s", f.ID, f.Status)
	}
	if f.Turn != entities.TurnHero {
		return nil, errors.InvalidArgument("it is not the hero's turn")
	}

	if game.Mobs == nil {
		return nil, errors.Internalf("game %s has no mob list", game.ID)
	}

	mobID, ok := f.OpponentID()
	if !ok {
		return nil, errors.Internalf("fight %s has no opponent", f.ID)
	}

	mob := game.MobByID(mobID)
	if mob == nil {
		return nil, errors.NotFoundf("mob %d not found in session", mobID)
	}

	return &fightContext{game: game, fight: f, mob: mob}, nil
}

type resolveFunc func(*entities.Fight, *entities.Hero, *entities.Mob, time.Time) *combat.Resolution

func (o *orchestrator) resolveAction(ctx context.Context, input *ActionInput, resolve resolveFunc) (*ActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	fctx, err := o.validateFightContext(ctx, input.FightID)
	if err != nil {
		return nil, err
	}

	hero, err := o.heroes.GetHero(ctx, fctx.game.HeroID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load hero")
	}

	res := resolve(fctx.fight, hero, fctx.mob, o.clock.Now())

	gameOver := fctx.fight.Status == entities.FightStatusHeroLost
	terminal := fctx.fight.Status.Terminal()

	if terminal {
		fctx.game.DetachFight()
	}
	fctx.game.UpdatedAt = o.clock.Now().Unix()

	if gameOver {
		// A lost fight ends the whole session, not just the encounter
		if _, err := o.gameRepo.DeleteCurrent(ctx); err != nil {
			return nil, err
		}
	} else {
		if _, err := o.gameRepo.Save(ctx, gamerepo.SaveInput{Game: fctx.game}); err != nil {
			return nil, err
		}
	}

	o.dispatchEffects(ctx, res.Effects)

	if terminal {
		o.emit(ctx, events.EventFightEnded, map[string]interface{}{
			"fight_id": fctx.fight.ID,
			"status":   fctx.fight.Status,
			"turns":    fctx.fight.TurnNumber,
		})
	}

	return &ActionOutput{
		Fight:    fctx.fight,
		HeroHP:   hero.HealthPoints,
		GameOver: gameOver,
	}, nil
}

// dispatchEffects delivers combat side effects best-effort: failures
// are logged and never alter the resolved outcome
func (o *orchestrator) dispatchEffects(ctx context.Context, effects []combat.Effect) {
	for _, effect := range effects {
		var err error
		switch effect.Kind {
		case combat.EffectHeroHPChanged:
			err = o.heroes.UpdateHealthPoints(ctx, effect.HeroID, effect.NewHP)
		case combat.EffectHeroLevelUp:
			err = o.heroes.NotifyLevelUp(ctx, effect.HeroID)
		case combat.EffectHeroDied:
			err = o.heroes.DeleteHero(ctx, effect.HeroID)
		}
		if err != nil {
			slog.Warn("combat effect dispatch failed",
				"kind", effect.Kind,
				"hero_id", effect.HeroID,
				"error", err,
			)
		}
	}
}

func (o *orchestrator) UpdateFight(ctx context.Context, input *UpdateFightInput) (*UpdateFightOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	current, err := o.gameRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	game := current.Game

	f := game.CurrentFight
	if f == nil || f.ID != input.FightID {
		return nil, errors.NotFoundf("fight %s not found", input.FightID)
	}

	if input.Status != nil {
		f.Status = *input.Status
	}
	if input.Turn != nil {
		f.Turn = *input.Turn
	}
	if input.TurnNumber != nil {
		f.TurnNumber = *input.TurnNumber
	}

	// A patch into a terminal status detaches the fight, keeping the
	// one-active-fight invariant
	if f.Status.Terminal() {
		f.EndedAt = o.clock.Now().Unix()
		game.DetachFight()
	}
	game.UpdatedAt = o.clock.Now().Unix()

	if _, err := o.gameRepo.Save(ctx, gamerepo.SaveInput{Game: game}); err != nil {
		return nil, err
	}

	return &UpdateFightOutput{Fight: f}, nil
}

func (o *orchestrator) DeleteFight(ctx context.Context, input *DeleteFightInput) (*DeleteFightOutput, error) {
	current, err := o.gameRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	game := current.Game

	if game.CurrentFight == nil {
		return nil, errors.NotFound("no active fight")
	}

	game.DetachFight()
	game.UpdatedAt = o.clock.Now().Unix()

	if _, err := o.gameRepo.Save(ctx, gamerepo.SaveInput{Game: game}); err != nil {
		return nil, err
	}

	return &DeleteFightOutput{}, nil
}

func (o *orchestrator) emit(ctx context.Context, name string, payload interface{}) {
	if err := o.sink.Emit(ctx, name, payload); err != nil {
		slog.Warn("failed to emit event", "event", name, "error", err)
	}
}
