package game

import "github.com/crawlforge/dungeon-api/internal/entities"

// StartGameInput defines the request for starting a new session
type StartGameInput struct {
	HeroID      string
	DungeonName string
	RoomCount   int
}

// StartGameOutput defines the response for starting a session
type StartGameOutput struct {
	Game    *entities.Game
	Dungeon *entities.Dungeon
}

// GetGameInput defines the request for retrieving the current session
type GetGameInput struct{}

// GetGameOutput defines the response for retrieving the current session
type GetGameOutput struct {
	Game *entities.Game
}

// DeleteGameInput defines the request for deleting the current session
type DeleteGameInput struct{}

// DeleteGameOutput defines the response for deleting the current session
type DeleteGameOutput struct {
	Deleted bool
}

// MoveHeroInput defines the request for moving the hero
type MoveHeroInput struct {
	X int
	Y int
}

// MoveHeroOutput defines the response for moving the hero. Out-of-bounds
// targets are not errors: the move is a no-op and the unchanged
// position comes back.
type MoveHeroOutput struct {
	Position entities.Position
	RoomID   string

	// RoomChanged reports an entrance/exit transition
	RoomChanged bool

	// AtDungeonExit reports that the hero stands on the exit of the
	// final room
	AtDungeonExit bool

	// Fight is set when the move triggered a random encounter
	Fight *entities.Fight
}
