package entities

// FightStatus is the state of a fight. All statuses other than active
// are terminal: the fight is detached from the game and cannot
// transition further.
type FightStatus string

// Fight statuses
const (
	FightStatusActive   FightStatus = "active"
	FightStatusHeroWon  FightStatus = "hero_won"
	FightStatusHeroLost FightStatus = "hero_lost"
	FightStatusFled     FightStatus = "fled"
)

// Terminal reports whether the status permits no further transitions
func (s FightStatus) Terminal() bool {
	return s != FightStatusActive
}

// FightTurn says whose turn it is
type FightTurn string

// Fight turns
const (
	TurnHero FightTurn = "hero"
	TurnMobs FightTurn = "mobs"
)

// FightActor identifies who performed a logged action
type FightActor string

// Fight actors
const (
	ActorHero FightActor = "hero"
	ActorMob  FightActor = "mob"
)

// FightActionType is the kind of a logged combat action
type FightActionType string

// Fight action types
const (
	ActionAttack    FightActionType = "attack"
	ActionDefend    FightActionType = "defend"
	ActionFlee      FightActionType = "flee"
	ActionRetaliate FightActionType = "retaliate"
	ActionDeath     FightActionType = "death"
)

// FightAction is one entry in a fight's ordered action log
type FightAction struct {
	Turn   int             `json:"turn"`
	Actor  FightActor      `json:"actor"`
	Action FightActionType `json:"action"`
	Target string          `json:"target,omitempty"`
	Damage int             `json:"damage,omitempty"`
	Result string          `json:"result"`
}

// Fight is one combat encounter between the hero and a mob instance.
// The first element of MobIDs is the live opponent. TurnNumber
// increments only after a fully resolved hero action that keeps the
// fight active.
type Fight struct {
	ID         string        `json:"id"`
	HeroID     string        `json:"hero_id"`
	MobIDs     []int         `json:"mob_ids"`
	Status     FightStatus   `json:"status"`
	Turn       FightTurn     `json:"turn"`
	TurnNumber int           `json:"turn_number"`
	Log        []FightAction `json:"log"`
	StartedAt  int64         `json:"started_at"`
	EndedAt    int64         `json:"ended_at,omitempty"`
}

// OpponentID returns the session-scoped id of the live opponent
func (f *Fight) OpponentID() (int, bool) {
	if len(f.MobIDs) == 0 {
		return 0, false
	}
	return f.MobIDs[0], true
}
