package mapgen_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/crawlforge/dungeon-api/internal/engine/mapgen"
	"github.com/crawlforge/dungeon-api/internal/entities"
	"github.com/crawlforge/dungeon-api/internal/errors"
	"github.com/crawlforge/dungeon-api/internal/pkg/idgen"
	"github.com/crawlforge/dungeon-api/internal/pkg/rng"
)

type GeneratorTestSuite struct {
	suite.Suite
	generator *mapgen.Generator
}

func (s *GeneratorTestSuite) SetupTest() {
	var err error
	s.generator, err = mapgen.New(&mapgen.Config{
		Catalog:     mapgen.DefaultCatalog(),
		Roller:      rng.NewSeeded(42),
		IDGenerator: idgen.NewSequential("room"),
	})
	s.Require().NoError(err)
}

func (s *GeneratorTestSuite) TestRoomCountBounds() {
	s.Run("zero rooms rejected", func() {
		_, err := s.generator.Generate("depths", 0)
		s.Error(err)
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("21 rooms rejected", func() {
		_, err := s.generator.Generate("depths", 21)
		s.Error(err)
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("single room", func() {
		dungeon, err := s.generator.Generate("depths", 1)
		s.Require().NoError(err)
		s.Len(dungeon.Rooms, 1)
	})

	s.Run("20 rooms", func() {
		dungeon, err := s.generator.Generate("depths", 20)
		s.Require().NoError(err)
		s.Len(dungeon.Rooms, 20)
	})

	s.Run("empty name rejected", func() {
		_, err := s.generator.Generate("", 5)
		s.Error(err)
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *GeneratorTestSuite) TestOrderInvariant() {
	for _, count := range []int{1, 2, 5, 13, 20} {
		dungeon, err := s.generator.Generate("depths", count)
		s.Require().NoError(err)

		seen := make(map[int]bool)
		for _, room := range dungeon.Rooms {
			s.False(seen[room.Order], "order %d repeated", room.Order)
			seen[room.Order] = true
			s.GreaterOrEqual(room.Order, 0)
			s.Less(room.Order, count)
		}
		s.Len(seen, count)
	}
}

func (s *GeneratorTestSuite) TestWallInvariant() {
	onWall := func(p entities.Position, d entities.Dimension) bool {
		return p.X == 0 || p.X == d.Width-1 || p.Y == 0 || p.Y == d.Height-1
	}

	for seed := uint64(1); seed <= 25; seed++ {
		generator, err := mapgen.New(&mapgen.Config{
			Catalog:     mapgen.DefaultCatalog(),
			Roller:      rng.NewSeeded(seed),
			IDGenerator: idgen.NewSequential("room"),
		})
		s.Require().NoError(err)

		dungeon, err := generator.Generate("depths", 20)
		s.Require().NoError(err)

		for _, room := range dungeon.Rooms {
			s.True(room.Dimension.Contains(room.Entrance), "entrance outside room %s", room.ID)
			s.True(room.Dimension.Contains(room.Exit), "exit outside room %s", room.ID)
			s.True(onWall(room.Entrance, room.Dimension), "entrance off-wall in room %s", room.ID)
			s.True(onWall(room.Exit, room.Dimension), "exit off-wall in room %s", room.ID)
		}
	}
}

func (s *GeneratorTestSuite) TestCorridorAnisotropy() {
	corridors := 0
	longOnWidth := 0
	longOnHeight := 0
	for seed := uint64(1); seed <= 50; seed++ {
		generator, err := mapgen.New(&mapgen.Config{
			Catalog:     mapgen.DefaultCatalog(),
			Roller:      rng.NewSeeded(seed),
			IDGenerator: idgen.NewSequential("room"),
		})
		s.Require().NoError(err)

		dungeon, err := generator.Generate("depths", 20)
		s.Require().NoError(err)

		for _, room := range dungeon.Rooms {
			if room.Type != entities.RoomTypeCorridor {
				continue
			}
			corridors++
			d := room.Dimension
			if d.Width > d.Height {
				longOnWidth++
			}
			if d.Height > d.Width {
				longOnHeight++
			}
		}
	}
	s.Greater(corridors, 10, "expected the weighted draw to yield corridors")
	s.Greater(longOnWidth, 0, "long axis never landed on width")
	s.Greater(longOnHeight, 0, "long axis never landed on height")
}

func (s *GeneratorTestSuite) TestBossRoomBias() {
	// Final room of dungeons longer than 3 rooms is always Hall or Large
	for seed := uint64(1); seed <= 40; seed++ {
		generator, err := mapgen.New(&mapgen.Config{
			Catalog:     mapgen.DefaultCatalog(),
			Roller:      rng.NewSeeded(seed),
			IDGenerator: idgen.NewSequential("room"),
		})
		s.Require().NoError(err)

		dungeon, err := generator.Generate("depths", 8)
		s.Require().NoError(err)

		last := dungeon.LastRoom()
		s.Require().NotNil(last)
		s.Contains([]entities.RoomTypeID{entities.RoomTypeHall, entities.RoomTypeLarge}, last.Type)
	}
}

func (s *GeneratorTestSuite) TestMidpointLandmark() {
	// floor(count/2) is forced Large when count > 5
	for seed := uint64(1); seed <= 40; seed++ {
		generator, err := mapgen.New(&mapgen.Config{
			Catalog:     mapgen.DefaultCatalog(),
			Roller:      rng.NewSeeded(seed),
			IDGenerator: idgen.NewSequential("room"),
		})
		s.Require().NoError(err)

		dungeon, err := generator.Generate("depths", 9)
		s.Require().NoError(err)

		mid := dungeon.RoomByOrder(4)
		s.Require().NotNil(mid)
		s.Equal(entities.RoomTypeLarge, mid.Type)
	}
}

func (s *GeneratorTestSuite) TestDimensionsWithinCatalogRanges() {
	catalog := mapgen.DefaultCatalog()

	dungeon, err := s.generator.Generate("depths", 20)
	s.Require().NoError(err)

	for _, room := range dungeon.Rooms {
		rt := catalog.ByID(room.Type)
		s.Require().NotNil(rt, "unknown room type %s", room.Type)

		lo := min(rt.MinWidth, rt.MinHeight)
		hi := max(rt.MaxWidth, rt.MaxHeight)
		s.GreaterOrEqual(room.Dimension.Width, lo)
		s.LessOrEqual(room.Dimension.Width, hi)
		s.GreaterOrEqual(room.Dimension.Height, lo)
		s.LessOrEqual(room.Dimension.Height, hi)
	}
}

func (s *GeneratorTestSuite) TestInvalidConfig() {
	_, err := mapgen.New(&mapgen.Config{})
	s.Error(err)
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorTestSuite))
}

func TestCatalogValidate(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

type CatalogTestSuite struct {
	suite.Suite
}

func (s *CatalogTestSuite) TestDefaultIsValid() {
	s.NoError(mapgen.DefaultCatalog().Validate())
}

func (s *CatalogTestSuite) TestRejectsEmptyCatalog() {
	s.Error((&mapgen.Catalog{}).Validate())
}

func (s *CatalogTestSuite) TestRejectsZeroWeight() {
	catalog := &mapgen.Catalog{
		Types: []mapgen.RoomType{
			{ID: entities.RoomTypeSmall, Weight: 0, MinWidth: 3, MaxWidth: 6, MinHeight: 3, MaxHeight: 6},
		},
	}
	s.Error(catalog.Validate())
}

func (s *CatalogTestSuite) TestRejectsInvertedRange() {
	catalog := &mapgen.Catalog{
		Types: []mapgen.RoomType{
			{ID: entities.RoomTypeSmall, Weight: 10, MinWidth: 8, MaxWidth: 4, MinHeight: 3, MaxHeight: 6},
		},
	}
	s.Error(catalog.Validate())
}

func (s *CatalogTestSuite) TestTotalWeight() {
	s.Equal(100, mapgen.DefaultCatalog().TotalWeight())
}
