package dungeon

import "github.com/crawlforge/dungeon-api/internal/entities"

// GenerateInput defines the request for generating a dungeon
type GenerateInput struct {
	Name      string
	RoomCount int
}

// GenerateOutput defines the response for generating a dungeon
type GenerateOutput struct {
	Dungeon *entities.Dungeon
}

// GetInput defines the request for retrieving a dungeon
type GetInput struct {
	ID string
}

// GetOutput defines the response for retrieving a dungeon
type GetOutput struct {
	Dungeon *entities.Dungeon
}
