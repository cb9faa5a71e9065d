// Package mapgen generates dungeon layouts: an ordered sequence of
// rooms with entrance and exit doors placed on walls. Generation is
// pure apart from the injected roller, so a seeded roller reproduces
// the same dungeon.
package mapgen

import (
	"github.com/crawlforge/dungeon-api/internal/entities"
	"github.com/crawlforge/dungeon-api/internal/errors"
	"github.com/crawlforge/dungeon-api/internal/pkg/idgen"
	"github.com/crawlforge/dungeon-api/internal/pkg/rng"
)

// Room count bounds for a single dungeon
const (
	MinRoomCount = 1
	MaxRoomCount = 20
)

// Probability the exit door lands on the wall opposite the entrance;
// otherwise one of the two adjacent walls is chosen uniformly.
const oppositeWallBias = 0.7

// Config holds the dependencies for the generator
type Config struct {
	Catalog     *Catalog
	Roller      rng.Roller
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	if err := vb.Build(); err != nil {
		return err
	}

	return c.Catalog.Validate()
}

// Generator builds dungeon layouts from a room-type catalog
type Generator struct {
	catalog *Catalog
	roller  rng.Roller
	idGen   idgen.Generator
}

// New creates a generator with the provided dependencies
func New(cfg *Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Generator{
		catalog: cfg.Catalog,
		roller:  cfg.Roller,
		idGen:   cfg.IDGenerator,
	}, nil
}

// Generate builds the ordered room sequence for a dungeon of roomCount
// rooms. The dungeon id is left for the caller to assign.
func (g *Generator) Generate(name string, roomCount int) (*entities.Dungeon, error) {
	vb := errors.NewValidationBuilder()
	if name == "" {
		vb.RequiredField("Name")
	}
	vb.RangeField("RoomCount", roomCount, MinRoomCount, MaxRoomCount)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	rooms := make([]entities.Room, 0, roomCount)
	for i := 0; i < roomCount; i++ {
		rooms = append(rooms, g.generateRoom(i, roomCount))
	}

	return &entities.Dungeon{
		Name:  name,
		Rooms: rooms,
	}, nil
}

func (g *Generator) generateRoom(index, roomCount int) entities.Room {
	roomType := g.selectType(index, roomCount)
	dim := g.sampleDimension(roomType)

	entranceWall := entities.Wall(g.roller.IntN(4))
	entrance := g.doorOn(entranceWall, dim)
	exit := g.doorOn(g.selectExitWall(entranceWall), dim)

	return entities.Room{
		ID:        g.idGen.Generate(),
		Type:      roomType.ID,
		Dimension: dim,
		Entrance:  entrance,
		Exit:      exit,
		Order:     index,
	}
}

// selectType picks a room type for the room at index. The final room
// of longer dungeons is biased toward boss-sized chambers, and the
// midpoint of dungeons longer than five rooms is a Large landmark.
// Everything else is a cumulative-weight roulette draw.
func (g *Generator) selectType(index, roomCount int) *RoomType {
	if index == roomCount-1 && roomCount > 3 {
		bossTypes := []entities.RoomTypeID{entities.RoomTypeHall, entities.RoomTypeLarge}
		if rt := g.catalog.ByID(bossTypes[g.roller.IntN(2)]); rt != nil {
			return rt
		}
	}

	if index == roomCount/2 && roomCount > 5 {
		if rt := g.catalog.ByID(entities.RoomTypeLarge); rt != nil {
			return rt
		}
	}

	draw := g.roller.Float64() * float64(g.catalog.TotalWeight())
	cumulative := 0.0
	for i := range g.catalog.Types {
		cumulative += float64(g.catalog.Types[i].Weight)
		if draw < cumulative {
			return &g.catalog.Types[i]
		}
	}

	// Float rounding can leave the draw at the very top of the range
	return &g.catalog.Types[len(g.catalog.Types)-1]
}

// sampleDimension draws width and height from the type's ranges.
// Corridors are forced anisotropic: the larger sample becomes the long
// axis, and whether that axis is width or height is a coin flip.
func (g *Generator) sampleDimension(rt *RoomType) entities.Dimension {
	w := g.roller.Between(rt.MinWidth, rt.MaxWidth)
	h := g.roller.Between(rt.MinHeight, rt.MaxHeight)

	if rt.ID == entities.RoomTypeCorridor {
		long, short := w, h
		if h > w {
			long, short = h, w
		}
		if g.roller.IntN(2) == 0 {
			w, h = long, short
		} else {
			w, h = short, long
		}
	}

	return entities.Dimension{Width: w, Height: h}
}

// selectExitWall picks the exit wall relative to the entrance wall:
// opposite with probability 0.7, otherwise one of the two adjacent
// walls uniformly.
func (g *Generator) selectExitWall(entrance entities.Wall) entities.Wall {
	if g.roller.Chance(oppositeWallBias) {
		return (entrance + 2) % 4
	}
	if g.roller.IntN(2) == 0 {
		return (entrance + 1) % 4
	}
	return (entrance + 3) % 4
}

// doorOn places a door on the given wall. The coordinate along the
// wall is uniform in [1, length-2] so doors avoid corners, degenerating
// to a corner when the wall is too short.
func (g *Generator) doorOn(wall entities.Wall, dim entities.Dimension) entities.Position {
	length := dim.Width
	if wall == entities.WallLeft || wall == entities.WallRight {
		length = dim.Height
	}

	coord := 0
	if length > 2 {
		coord = g.roller.Between(1, length-2)
	}

	switch wall {
	case entities.WallBottom:
		return entities.Position{X: coord, Y: 0}
	case entities.WallRight:
		return entities.Position{X: dim.Width - 1, Y: coord}
	case entities.WallTop:
		return entities.Position{X: coord, Y: dim.Height - 1}
	default: // WallLeft
		return entities.Position{X: 0, Y: coord}
	}
}
