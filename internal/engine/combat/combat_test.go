package combat_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/crawlforge/dungeon-api/internal/engine/combat"
	"github.com/crawlforge/dungeon-api/internal/entities"
	"github.com/crawlforge/dungeon-api/internal/pkg/rng"
)

type ResolverTestSuite struct {
	suite.Suite
	now time.Time
}

func (s *ResolverTestSuite) SetupTest() {
	s.now = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
}

func (s *ResolverTestSuite) newResolver(roller rng.Roller) *combat.Resolver {
	resolver, err := combat.NewResolver(&combat.Config{Roller: roller})
	s.Require().NoError(err)
	return resolver
}

func (s *ResolverTestSuite) fixtures(heroHP, heroAttack, mobHP, mobAttack int) (*entities.Fight, *entities.Hero, *entities.Mob) {
	hero := &entities.Hero{
		ID:              "hero_1",
		Name:            "Edmund",
		HealthPoints:    heroHP,
		HealthPointsMax: heroHP,
		AttackPoints:    heroAttack,
	}
	mob := &entities.Mob{
		ID:              1,
		Name:            "cave rat",
		HealthPoints:    mobHP,
		HealthPointsMax: mobHP,
		AttackPoints:    mobAttack,
		Status:          entities.MobStatusAlive,
	}
	fight := combat.NewFight("fight_1", hero.ID, mob.ID, s.now)
	return fight, hero, mob
}

func (s *ResolverTestSuite) TestNewFight() {
	fight, _, _ := s.fixtures(30, 5, 20, 10)

	s.Equal(entities.FightStatusActive, fight.Status)
	s.Equal(entities.TurnHero, fight.Turn)
	s.Equal(1, fight.TurnNumber)
	s.Equal([]int{1}, fight.MobIDs)
	s.Empty(fight.Log)
}

func (s *ResolverTestSuite) TestAttackLethal() {
	resolver := s.newResolver(rng.NewScripted(nil, nil))
	fight, hero, mob := s.fixtures(30, 15, 10, 10)

	res := resolver.Attack(fight, hero, mob, s.now)

	s.Equal(0, mob.HealthPoints)
	s.Equal(entities.MobStatusDead, mob.Status)
	s.Equal(entities.FightStatusHeroWon, fight.Status)
	s.NotZero(fight.EndedAt)
	s.Equal(30, hero.HealthPoints, "no retaliation after a kill")

	s.Require().Len(res.Effects, 1)
	s.Equal(combat.EffectHeroLevelUp, res.Effects[0].Kind)

	s.Require().Len(fight.Log, 1)
	s.Equal(entities.ActionAttack, fight.Log[0].Action)
	s.Equal("killed", fight.Log[0].Result)
	s.Equal(15, fight.Log[0].Damage)
}

func (s *ResolverTestSuite) TestAttackNonLethalRetaliation() {
	resolver := s.newResolver(rng.NewScripted(nil, nil))
	fight, hero, mob := s.fixtures(30, 5, 20, 10)

	res := resolver.Attack(fight, hero, mob, s.now)

	s.Equal(15, mob.HealthPoints)
	s.Equal(entities.MobStatusAlive, mob.Status)
	s.Equal(entities.FightStatusActive, fight.Status)
	s.Equal(2, fight.TurnNumber, "turn advances after a resolved non-terminal action")
	s.Equal(20, hero.HealthPoints, "full-modifier retaliation")

	s.Require().Len(fight.Log, 2)
	retaliation := fight.Log[1]
	s.Equal(entities.ActorMob, retaliation.Actor)
	s.Equal(entities.ActionRetaliate, retaliation.Action)
	s.Equal(10, retaliation.Damage)
	s.Equal(1, retaliation.Turn, "logged on the turn the action resolved")

	s.Require().Len(res.Effects, 1)
	s.Equal(combat.EffectHeroHPChanged, res.Effects[0].Kind)
	s.Equal(20, res.Effects[0].NewHP)
}

func (s *ResolverTestSuite) TestAttackMinimumDamage() {
	resolver := s.newResolver(rng.NewScripted(nil, nil))
	fight, hero, mob := s.fixtures(30, 0, 20, 10)

	resolver.Attack(fight, hero, mob, s.now)

	s.Equal(19, mob.HealthPoints, "zero attack still lands 1 damage")
}

func (s *ResolverTestSuite) TestDefendHalvesDamage() {
	resolver := s.newResolver(rng.NewScripted(nil, nil))
	fight, hero, mob := s.fixtures(30, 5, 20, 10)

	resolver.Defend(fight, hero, mob, s.now)

	s.Equal(20, mob.HealthPoints, "defend deals no damage")
	s.Equal(25, hero.HealthPoints, "retaliation halved: floor(10*0.5)=5")
	s.Equal(2, fight.TurnNumber)

	s.Require().Len(fight.Log, 2)
	s.Equal(entities.ActionDefend, fight.Log[0].Action)
	s.Equal(5, fight.Log[1].Damage)
}

func (s *ResolverTestSuite) TestDefendMinimumDamage() {
	resolver := s.newResolver(rng.NewScripted(nil, nil))
	fight, hero, mob := s.fixtures(30, 5, 20, 1)

	resolver.Defend(fight, hero, mob, s.now)

	s.Equal(29, hero.HealthPoints, "halved damage floors at 1")
}

func (s *ResolverTestSuite) TestDefaultMobAttack() {
	resolver := s.newResolver(rng.NewScripted(nil, nil))
	fight, hero, mob := s.fixtures(30, 5, 20, 0)

	resolver.Attack(fight, hero, mob, s.now)

	s.Equal(25, hero.HealthPoints, "mob with no attack points hits for the default 5")
}

func (s *ResolverTestSuite) TestFleeSuccess() {
	// Draw below 0.6 succeeds
	resolver := s.newResolver(rng.NewScripted([]float64{0.3}, nil))
	fight, hero, mob := s.fixtures(30, 5, 20, 10)

	res := resolver.Flee(fight, hero, mob, s.now)

	s.Equal(entities.FightStatusFled, fight.Status)
	s.NotZero(fight.EndedAt)
	s.Equal(30, hero.HealthPoints, "no damage on successful flee")
	s.Equal(20, mob.HealthPoints)
	s.Empty(res.Effects)

	s.Require().Len(fight.Log, 1)
	s.Equal("fled", fight.Log[0].Result)
}

func (s *ResolverTestSuite) TestFleeFailureFullRetaliation() {
	// Draw at or above 0.6 fails; retaliation uses the full modifier
	resolver := s.newResolver(rng.NewScripted([]float64{0.9}, nil))
	fight, hero, mob := s.fixtures(30, 5, 20, 10)

	resolver.Flee(fight, hero, mob, s.now)

	s.Equal(entities.FightStatusActive, fight.Status)
	s.Equal(20, hero.HealthPoints, "failed flee takes unmitigated damage")
	s.Equal(2, fight.TurnNumber)

	s.Require().Len(fight.Log, 2)
	s.Equal("flee_failed", fight.Log[0].Result)
	s.Equal(10, fight.Log[1].Damage)
}

func (s *ResolverTestSuite) TestFleeSuccessRate() {
	// With a seeded real roller the success rate converges on 0.6
	resolver := s.newResolver(rng.NewSeeded(7))

	fled := 0
	const trials = 2000
	for i := 0; i < trials; i++ {
		fight, hero, mob := s.fixtures(1000, 5, 1000, 1)
		res := resolver.Flee(fight, hero, mob, s.now)
		if res.Fight.Status == entities.FightStatusFled {
			fled++
		}
	}

	rate := float64(fled) / float64(trials)
	s.InDelta(combat.FleeSuccessChance, rate, 0.05)
}

func (s *ResolverTestSuite) TestHeroDeath() {
	resolver := s.newResolver(rng.NewScripted(nil, nil))
	fight, hero, mob := s.fixtures(8, 5, 20, 10)

	res := resolver.Attack(fight, hero, mob, s.now)

	s.Equal(0, hero.HealthPoints)
	s.Equal(entities.FightStatusHeroLost, fight.Status)
	s.NotZero(fight.EndedAt)
	s.Equal(1, fight.TurnNumber, "turn does not advance on a terminal action")

	s.Require().Len(res.Effects, 2)
	s.Equal(combat.EffectHeroHPChanged, res.Effects[0].Kind)
	s.Equal(0, res.Effects[0].NewHP)
	s.Equal(combat.EffectHeroDied, res.Effects[1].Kind)

	last := fight.Log[len(fight.Log)-1]
	s.Equal(entities.ActionDeath, last.Action)
}

func (s *ResolverTestSuite) TestTurnNumberAcrossRounds() {
	resolver := s.newResolver(rng.NewScripted([]float64{0.9}, nil))
	fight, hero, mob := s.fixtures(100, 1, 100, 1)

	resolver.Attack(fight, hero, mob, s.now)
	resolver.Defend(fight, hero, mob, s.now)
	resolver.Flee(fight, hero, mob, s.now) // fails, retaliation

	s.Equal(4, fight.TurnNumber)
	s.Equal(entities.FightStatusActive, fight.Status)
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}
