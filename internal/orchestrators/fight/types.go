package fight

import "github.com/crawlforge/dungeon-api/internal/entities"

// StartFightInput defines the request for starting a fight against a
// mob already spawned into the current session
type StartFightInput struct {
	MobID int
}

// StartFightOutput defines the response for starting a fight
type StartFightOutput struct {
	Fight *entities.Fight
}

// GetFightInput defines the request for retrieving the active fight
type GetFightInput struct{}

// GetFightOutput defines the response for retrieving the active fight
type GetFightOutput struct {
	Fight *entities.Fight
}

// ActionInput defines the request for a hero combat action
type ActionInput struct {
	FightID string
}

// ActionOutput defines the response for a hero combat action
type ActionOutput struct {
	Fight *entities.Fight

	// HeroHP is the hero's health after the action resolved
	HeroHP int

	// GameOver reports that the hero died and the session was deleted
	GameOver bool
}

// UpdateFightInput defines a direct state patch on the active fight.
// Nil fields are left untouched.
type UpdateFightInput struct {
	FightID    string
	Status     *entities.FightStatus
	Turn       *entities.FightTurn
	TurnNumber *int
}

// UpdateFightOutput defines the response for patching a fight
type UpdateFightOutput struct {
	Fight *entities.Fight
}

// DeleteFightInput defines the request for forcibly detaching the
// active fight
type DeleteFightInput struct{}

// DeleteFightOutput defines the response for detaching a fight
type DeleteFightOutput struct{}
