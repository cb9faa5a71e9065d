// Package combat implements the turn-based fight state machine. The
// resolver mutates fight, hero, and mob state in memory and reports
// side effects (hero HP deltas, level-ups, hero death) for the caller
// to dispatch; it performs no I/O itself.
package combat

import (
	"fmt"
	"time"

	"github.com/crawlforge/dungeon-api/internal/entities"
	"github.com/crawlforge/dungeon-api/internal/errors"
	"github.com/crawlforge/dungeon-api/internal/pkg/rng"
)

// Tuning constants for combat resolution
const (
	// DefendModifier halves incoming damage on a defend action
	DefendModifier = 0.5

	// FullModifier is the unmitigated retaliation modifier
	FullModifier = 1.0

	// FleeSuccessChance is the probability a flee attempt succeeds
	FleeSuccessChance = 0.6

	// DefaultMobAttack substitutes for a mob with no attack points
	DefaultMobAttack = 5
)

// EffectKind tags a side effect produced by combat resolution
type EffectKind string

// Effect kinds
const (
	EffectHeroHPChanged EffectKind = "hero_hp_changed"
	EffectHeroLevelUp   EffectKind = "hero_level_up"
	EffectHeroDied      EffectKind = "hero_died"
)

// Effect is a side effect the orchestrator dispatches after the state
// transition is persisted. Effects are best-effort and never feed back
// into combat outcomes.
type Effect struct {
	Kind   EffectKind
	HeroID string
	NewHP  int
}

// Resolution is the outcome of one resolved hero action
type Resolution struct {
	// Fight, Hero, and Mob are the same pointers passed in, mutated
	Fight *entities.Fight
	Hero  *entities.Hero
	Mob   *entities.Mob

	// Effects to dispatch, in order
	Effects []Effect
}

// Config holds the dependencies for the resolver
type Config struct {
	Roller rng.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	return vb.Build()
}

// Resolver resolves hero combat actions
type Resolver struct {
	roller rng.Roller
}

// NewResolver creates a resolver with the provided dependencies
func NewResolver(cfg *Config) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Resolver{roller: cfg.Roller}, nil
}

// NewFight creates an active fight between the hero and one mob.
// The hero acts first and the turn counter starts at 1.
func NewFight(id, heroID string, mobID int, now time.Time) *entities.Fight {
	return &entities.Fight{
		ID:         id,
		HeroID:     heroID,
		MobIDs:     []int{mobID},
		Status:     entities.FightStatusActive,
		Turn:       entities.TurnHero,
		TurnNumber: 1,
		Log:        []entities.FightAction{},
		StartedAt:  now.Unix(),
	}
}

// Attack resolves a hero attack: the mob takes max(1, attackPoints)
// damage, and if it survives it retaliates at the full modifier.
func (r *Resolver) Attack(fight *entities.Fight, hero *entities.Hero, mob *entities.Mob, now time.Time) *Resolution {
	res := &Resolution{Fight: fight, Hero: hero, Mob: mob}

	damage := hero.AttackPoints
	if damage < 1 {
		damage = 1
	}

	mob.HealthPoints -= damage
	if mob.HealthPoints < 0 {
		mob.HealthPoints = 0
	}

	result := "hit"
	if mob.HealthPoints == 0 {
		result = "killed"
	}
	fight.Log = append(fight.Log, entities.FightAction{
		Turn:   fight.TurnNumber,
		Actor:  entities.ActorHero,
		Action: entities.ActionAttack,
		Target: mob.Name,
		Damage: damage,
		Result: result,
	})

	if mob.HealthPoints == 0 {
		mob.Status = entities.MobStatusDead
		fight.Status = entities.FightStatusHeroWon
		fight.EndedAt = now.Unix()
		res.Effects = append(res.Effects, Effect{Kind: EffectHeroLevelUp, HeroID: hero.ID})
		return res
	}

	r.retaliate(res, FullModifier, now)
	return res
}

// Defend resolves a hero defend: no damage is dealt, and the mob's
// retaliation is halved (floor-rounded, minimum 1).
func (r *Resolver) Defend(fight *entities.Fight, hero *entities.Hero, mob *entities.Mob, now time.Time) *Resolution {
	res := &Resolution{Fight: fight, Hero: hero, Mob: mob}

	fight.Log = append(fight.Log, entities.FightAction{
		Turn:   fight.TurnNumber,
		Actor:  entities.ActorHero,
		Action: entities.ActionDefend,
		Result: "defended",
	})

	r.retaliate(res, DefendModifier, now)
	return res
}

// Flee resolves a flee attempt. Success ends the fight with no damage;
// failure lets the mob retaliate at the full modifier even though the
// hero took a non-aggressive stance.
func (r *Resolver) Flee(fight *entities.Fight, hero *entities.Hero, mob *entities.Mob, now time.Time) *Resolution {
	res := &Resolution{Fight: fight, Hero: hero, Mob: mob}

	if r.roller.Chance(FleeSuccessChance) {
		fight.Status = entities.FightStatusFled
		fight.EndedAt = now.Unix()
		fight.Log = append(fight.Log, entities.FightAction{
			Turn:   fight.TurnNumber,
			Actor:  entities.ActorHero,
			Action: entities.ActionFlee,
			Result: "fled",
		})
		return res
	}

	fight.Log = append(fight.Log, entities.FightAction{
		Turn:   fight.TurnNumber,
		Actor:  entities.ActorHero,
		Action: entities.ActionFlee,
		Result: "flee_failed",
	})

	r.retaliate(res, FullModifier, now)
	return res
}

// retaliate applies the mob's counterattack, reports the hero HP delta,
// and either ends the fight on hero death or advances the turn counter.
func (r *Resolver) retaliate(res *Resolution, modifier float64, now time.Time) {
	fight, hero, mob := res.Fight, res.Hero, res.Mob

	attack := mob.AttackPoints
	if attack == 0 {
		attack = DefaultMobAttack
	}

	damage := int(float64(attack) * modifier)
	if damage < 1 {
		damage = 1
	}

	hero.HealthPoints -= damage
	if hero.HealthPoints < 0 {
		hero.HealthPoints = 0
	}

	fight.Log = append(fight.Log, entities.FightAction{
		Turn:   fight.TurnNumber,
		Actor:  entities.ActorMob,
		Action: entities.ActionRetaliate,
		Target: hero.Name,
		Damage: damage,
		Result: fmt.Sprintf("hero at %d hp", hero.HealthPoints),
	})

	res.Effects = append(res.Effects, Effect{
		Kind:   EffectHeroHPChanged,
		HeroID: hero.ID,
		NewHP:  hero.HealthPoints,
	})

	if hero.HealthPoints == 0 {
		fight.Status = entities.FightStatusHeroLost
		fight.EndedAt = now.Unix()
		fight.Log = append(fight.Log, entities.FightAction{
			Turn:   fight.TurnNumber,
			Actor:  entities.ActorHero,
			Action: entities.ActionDeath,
			Result: "hero died",
		})
		res.Effects = append(res.Effects, Effect{Kind: EffectHeroDied, HeroID: hero.ID})
		return
	}

	fight.TurnNumber++
}
