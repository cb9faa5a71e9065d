package game_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	heromock "github.com/crawlforge/dungeon-api/internal/clients/hero/mock"
	"github.com/crawlforge/dungeon-api/internal/engine/combat"
	"github.com/crawlforge/dungeon-api/internal/engine/mapgen"
	"github.com/crawlforge/dungeon-api/internal/entities"
	"github.com/crawlforge/dungeon-api/internal/errors"
	"github.com/crawlforge/dungeon-api/internal/events"
	dungeonsvc "github.com/crawlforge/dungeon-api/internal/orchestrators/dungeon"
	fightsvc "github.com/crawlforge/dungeon-api/internal/orchestrators/fight"
	"github.com/crawlforge/dungeon-api/internal/orchestrators/game"
	"github.com/crawlforge/dungeon-api/internal/pkg/clock"
	"github.com/crawlforge/dungeon-api/internal/pkg/idgen"
	"github.com/crawlforge/dungeon-api/internal/pkg/rng"
	dungeonrepo "github.com/crawlforge/dungeon-api/internal/repositories/dungeon"
	gamerepo "github.com/crawlforge/dungeon-api/internal/repositories/game"
	"github.com/crawlforge/dungeon-api/internal/repositories/mobtemplate"
	"github.com/crawlforge/dungeon-api/internal/testutils"
)

type GameOrchestratorTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	gameRepo    gamerepo.Repository
	dungeonRepo dungeonrepo.Repository
	heroes      *heromock.MockGateway
	roller      *rng.ScriptedRoller
	service     game.Service
	cleanup     func()
	ctx         context.Context
}

func (s *GameOrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.ctx = context.Background()

	s.gameRepo = gamerepo.NewRedisRepository(client)
	s.dungeonRepo = dungeonrepo.NewRedisRepository(client)
	templates := mobtemplate.NewRedisRepository(client)
	s.heroes = heromock.NewMockGateway(s.ctrl)

	// Encounter rolls never fire unless a test scripts them
	s.roller = rng.NewScripted([]float64{0.99}, nil)

	_, err := templates.Seed(s.ctx, mobtemplate.SeedInput{Templates: mobtemplate.DefaultTemplates()})
	s.Require().NoError(err)

	generator, err := mapgen.New(&mapgen.Config{
		Catalog:     mapgen.DefaultCatalog(),
		Roller:      rng.NewSeeded(42),
		IDGenerator: idgen.NewSequential("room"),
	})
	s.Require().NoError(err)

	dungeons, err := dungeonsvc.NewOrchestrator(&dungeonsvc.Config{
		Generator:   generator,
		Repo:        s.dungeonRepo,
		IDGenerator: idgen.NewSequential("dungeon"),
		EventSink:   events.NopSink{},
	})
	s.Require().NoError(err)

	resolver, err := combat.NewResolver(&combat.Config{Roller: s.roller})
	s.Require().NoError(err)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	fights, err := fightsvc.NewOrchestrator(&fightsvc.Config{
		GameRepo:    s.gameRepo,
		Resolver:    resolver,
		HeroGateway: s.heroes,
		EventSink:   events.NopSink{},
		IDGenerator: idgen.NewSequential("fight"),
		Clock:       clock.NewFixed(now),
	})
	s.Require().NoError(err)

	s.service, err = game.NewOrchestrator(&game.Config{
		GameRepo:       s.gameRepo,
		DungeonRepo:    s.dungeonRepo,
		MobTemplates:   templates,
		DungeonService: dungeons,
		FightService:   fights,
		HeroGateway:    s.heroes,
		Roller:         s.roller,
		IDGenerator:    idgen.NewSequential("game"),
		EventSink:      events.NopSink{},
		Clock:          clock.NewFixed(now),
	})
	s.Require().NoError(err)
}

func (s *GameOrchestratorTestSuite) TearDownTest() {
	s.cleanup()
	s.ctrl.Finish()
}

// seedDungeon stores a hand-built two-room dungeon so transition tests
// control entrance and exit placement exactly
func (s *GameOrchestratorTestSuite) seedDungeon() *entities.Dungeon {
	d := &entities.Dungeon{
		ID:   "dungeon_fixed",
		Name: "Test Depths",
		Rooms: []entities.Room{
			{
				ID:        "room_a",
				Type:      entities.RoomTypeMedium,
				Dimension: entities.Dimension{Width: 10, Height: 10},
				Entrance:  entities.Position{X: 0, Y: 4},
				Exit:      entities.Position{X: 9, Y: 5},
				Order:     0,
			},
			{
				ID:        "room_b",
				Type:      entities.RoomTypeSmall,
				Dimension: entities.Dimension{Width: 5, Height: 5},
				Entrance:  entities.Position{X: 0, Y: 2},
				Exit:      entities.Position{X: 4, Y: 2},
				Order:     1,
			},
		},
	}

	_, err := s.dungeonRepo.Create(s.ctx, dungeonrepo.CreateInput{Dungeon: d})
	s.Require().NoError(err)
	return d
}

// seedGame stores a current session placed in the fixed dungeon's first room
func (s *GameOrchestratorTestSuite) seedGame() *entities.Game {
	s.seedDungeon()

	g := &entities.Game{
		ID:            "game_fixed",
		HeroID:        "hero_1",
		DungeonID:     "dungeon_fixed",
		CurrentRoomID: "room_a",
		HeroPosition:  entities.Position{X: 0, Y: 4},
		Mobs:          []entities.Mob{},
		Status:        entities.GameStatusActive,
	}

	created, err := s.gameRepo.Create(s.ctx, gamerepo.CreateInput{Game: g})
	s.Require().NoError(err)
	return created.Game
}

func (s *GameOrchestratorTestSuite) TestStartGame() {
	s.heroes.EXPECT().GetHero(gomock.Any(), "hero_1").
		Return(&entities.Hero{ID: "hero_1", Name: "Aria", HealthPoints: 30, HealthPointsMax: 30, AttackPoints: 5}, nil)

	output, err := s.service.StartGame(s.ctx, &game.StartGameInput{
		HeroID:      "hero_1",
		DungeonName: "The Shattered Halls",
		RoomCount:   8,
	})
	s.Require().NoError(err)
	s.Len(output.Dungeon.Rooms, 8)
	s.Equal(output.Dungeon.ID, output.Game.DungeonID)
	s.Equal(entities.GameStatusActive, output.Game.Status)

	// The hero starts on the first room's entrance
	first := output.Dungeon.RoomByOrder(0)
	s.Require().NotNil(first)
	s.Equal(first.ID, output.Game.CurrentRoomID)
	s.Equal(first.Entrance, output.Game.HeroPosition)

	current, err := s.gameRepo.GetCurrent(s.ctx)
	s.Require().NoError(err)
	s.Equal(output.Game.ID, current.Game.ID)
}

func (s *GameOrchestratorTestSuite) TestStartGameUnknownHero() {
	s.heroes.EXPECT().GetHero(gomock.Any(), "hero_missing").
		Return(nil, errors.NotFound("hero hero_missing not found"))

	_, err := s.service.StartGame(s.ctx, &game.StartGameInput{
		HeroID:      "hero_missing",
		DungeonName: "Nowhere",
		RoomCount:   3,
	})
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *GameOrchestratorTestSuite) TestStartGameConflictsWithExistingSession() {
	s.seedGame()

	s.heroes.EXPECT().GetHero(gomock.Any(), "hero_2").
		Return(&entities.Hero{ID: "hero_2", HealthPoints: 30}, nil)

	_, err := s.service.StartGame(s.ctx, &game.StartGameInput{
		HeroID:      "hero_2",
		DungeonName: "Second Run",
		RoomCount:   3,
	})
	s.Error(err)
	s.True(errors.IsConflict(err))
}

func (s *GameOrchestratorTestSuite) TestGetGame() {
	s.seedGame()

	output, err := s.service.GetGame(s.ctx, &game.GetGameInput{})
	s.Require().NoError(err)
	s.Equal("game_fixed", output.Game.ID)
}

func (s *GameOrchestratorTestSuite) TestGetGameNoSession() {
	_, err := s.service.GetGame(s.ctx, &game.GetGameInput{})
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *GameOrchestratorTestSuite) TestDeleteGame() {
	s.seedGame()

	output, err := s.service.DeleteGame(s.ctx, &game.DeleteGameInput{})
	s.Require().NoError(err)
	s.True(output.Deleted)

	output, err = s.service.DeleteGame(s.ctx, &game.DeleteGameInput{})
	s.Require().NoError(err)
	s.False(output.Deleted)
}

func (s *GameOrchestratorTestSuite) TestMoveHeroNoSession() {
	_, err := s.service.MoveHero(s.ctx, &game.MoveHeroInput{X: 1, Y: 1})
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *GameOrchestratorTestSuite) TestMoveHeroBlockedDuringCombat() {
	g := s.seedGame()

	g.Mobs = []entities.Mob{{ID: 1, Name: "Goblin", HealthPoints: 14, AttackPoints: 4, Status: entities.MobStatusAlive}}
	g.AttachFight(&entities.Fight{
		ID:     "fight_1",
		HeroID: g.HeroID,
		MobIDs: []int{1},
		Status: entities.FightStatusActive,
		Turn:   entities.TurnHero,
	})
	_, err := s.gameRepo.Save(s.ctx, gamerepo.SaveInput{Game: g})
	s.Require().NoError(err)

	_, err = s.service.MoveHero(s.ctx, &game.MoveHeroInput{X: 1, Y: 1})
	s.Error(err)
	s.True(errors.IsConflict(err))
}

func (s *GameOrchestratorTestSuite) TestMoveHeroOutOfBoundsIsNoOp() {
	s.seedGame()

	output, err := s.service.MoveHero(s.ctx, &game.MoveHeroInput{X: 12, Y: 3})
	s.Require().NoError(err)
	s.Equal(entities.Position{X: 0, Y: 4}, output.Position)
	s.Equal("room_a", output.RoomID)
	s.False(output.RoomChanged)
	s.Nil(output.Fight)

	// The stored position did not move either
	current, err := s.gameRepo.GetCurrent(s.ctx)
	s.Require().NoError(err)
	s.Equal(entities.Position{X: 0, Y: 4}, current.Game.HeroPosition)
}

func (s *GameOrchestratorTestSuite) TestMoveHeroExitTransition() {
	s.seedGame()

	output, err := s.service.MoveHero(s.ctx, &game.MoveHeroInput{X: 9, Y: 5})
	s.Require().NoError(err)
	s.True(output.RoomChanged)
	s.Equal("room_b", output.RoomID)
	s.Equal(entities.Position{X: 0, Y: 2}, output.Position, "hero lands on the next room's entrance")
	s.Nil(output.Fight, "transitions never roll for encounters")
}

func (s *GameOrchestratorTestSuite) TestMoveHeroEntranceTransitionBack() {
	s.seedGame()

	// Forward into room_b, then back through its entrance
	_, err := s.service.MoveHero(s.ctx, &game.MoveHeroInput{X: 9, Y: 5})
	s.Require().NoError(err)

	output, err := s.service.MoveHero(s.ctx, &game.MoveHeroInput{X: 0, Y: 2})
	s.Require().NoError(err)
	s.True(output.RoomChanged)
	s.Equal("room_a", output.RoomID)
	s.Equal(entities.Position{X: 9, Y: 5}, output.Position, "hero lands on the previous room's exit")
}

func (s *GameOrchestratorTestSuite) TestMoveHeroNormalStepNoEncounter() {
	s.seedGame()
	s.roller.Floats = []float64{0.5}

	output, err := s.service.MoveHero(s.ctx, &game.MoveHeroInput{X: 3, Y: 3})
	s.Require().NoError(err)
	s.Equal(entities.Position{X: 3, Y: 3}, output.Position)
	s.Equal("room_a", output.RoomID)
	s.Nil(output.Fight)

	current, err := s.gameRepo.GetCurrent(s.ctx)
	s.Require().NoError(err)
	s.Equal(entities.Position{X: 3, Y: 3}, current.Game.HeroPosition)
	s.Empty(current.Game.Mobs)
}

func (s *GameOrchestratorTestSuite) TestMoveHeroEncounterSpawnsMobAndFight() {
	s.seedGame()

	// First float is the encounter roll, first int picks the template
	s.roller.Floats = []float64{0.01}
	s.roller.Ints = []int{2}

	output, err := s.service.MoveHero(s.ctx, &game.MoveHeroInput{X: 3, Y: 3})
	s.Require().NoError(err)
	s.Require().NotNil(output.Fight)
	s.Equal(entities.FightStatusActive, output.Fight.Status)
	s.Equal(entities.TurnHero, output.Fight.Turn)
	s.Equal(1, output.Fight.TurnNumber)
	s.Equal([]int{1}, output.Fight.MobIDs)

	current, err := s.gameRepo.GetCurrent(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(current.Game.Mobs, 1)

	mob := current.Game.Mobs[0]
	s.Equal(1, mob.ID, "session-scoped ids count up from 1")
	s.Equal(entities.MobStatusAlive, mob.Status)
	s.Equal(entities.Position{X: 3, Y: 3}, mob.Position)
	s.Equal(mob.HealthPointsMax, mob.HealthPoints)

	s.Equal(output.Fight.ID, current.Game.CurrentFightID)

	// Movement is now blocked until the fight resolves
	_, err = s.service.MoveHero(s.ctx, &game.MoveHeroInput{X: 4, Y: 3})
	s.Error(err)
	s.True(errors.IsConflict(err))
}

func (s *GameOrchestratorTestSuite) TestMoveHeroSecondMobGetsNextID() {
	g := s.seedGame()

	g.Mobs = []entities.Mob{{ID: 1, Name: "Goblin", HealthPoints: 0, AttackPoints: 4, Status: entities.MobStatusDead}}
	_, err := s.gameRepo.Save(s.ctx, gamerepo.SaveInput{Game: g})
	s.Require().NoError(err)

	s.roller.Floats = []float64{0.01}
	s.roller.Ints = []int{0}

	output, err := s.service.MoveHero(s.ctx, &game.MoveHeroInput{X: 2, Y: 2})
	s.Require().NoError(err)
	s.Require().NotNil(output.Fight)
	s.Equal([]int{2}, output.Fight.MobIDs)
}

func (s *GameOrchestratorTestSuite) TestMoveHeroCompletesDungeonAtFinalExit() {
	s.seedGame()

	// Into room_b, then onto its exit, which has no next room
	_, err := s.service.MoveHero(s.ctx, &game.MoveHeroInput{X: 9, Y: 5})
	s.Require().NoError(err)

	output, err := s.service.MoveHero(s.ctx, &game.MoveHeroInput{X: 4, Y: 2})
	s.Require().NoError(err)
	s.True(output.AtDungeonExit)
	s.Equal("room_b", output.RoomID)
	s.Equal(entities.Position{X: 4, Y: 2}, output.Position)
	s.Nil(output.Fight)

	current, err := s.gameRepo.GetCurrent(s.ctx)
	s.Require().NoError(err)
	s.Equal(entities.GameStatusCompleted, current.Game.Status)
}

func TestGameOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(GameOrchestratorTestSuite))
}
