package entities

// MobStatus is the life state of a mob instance
type MobStatus string

// Mob statuses
const (
	MobStatusAlive MobStatus = "alive"
	MobStatusDead  MobStatus = "dead"
)

// Mob is a spawned combat opponent. IDs are session-scoped integers
// assigned in spawn order.
type Mob struct {
	ID              int       `json:"id"`
	TemplateID      string    `json:"template_id,omitempty"`
	Name            string    `json:"name"`
	HealthPoints    int       `json:"health_points"`
	HealthPointsMax int       `json:"health_points_max"`
	AttackPoints    int       `json:"attack_points"`
	Status          MobStatus `json:"status"`
	Position        Position  `json:"position"`
}

// MobTemplate is a catalog entry mobs are cloned from on encounter
type MobTemplate struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	HealthPointsMax int    `json:"health_points_max"`
	AttackPoints    int    `json:"attack_points"`
}

// Spawn clones the template into a live mob instance with the given
// session-scoped id and position
func (t MobTemplate) Spawn(id int, pos Position) Mob {
	return Mob{
		ID:              id,
		TemplateID:      t.ID,
		Name:            t.Name,
		HealthPoints:    t.HealthPointsMax,
		HealthPointsMax: t.HealthPointsMax,
		AttackPoints:    t.AttackPoints,
		Status:          MobStatusAlive,
		Position:        pos,
	}
}

// GameStatus is the lifecycle state of a play session
type GameStatus string

// Game statuses
const (
	GameStatusActive    GameStatus = "active"
	GameStatusCompleted GameStatus = "completed"
)

// Game is the single active play session. At most one non-terminal
// Fight may be attached at a time; CurrentFightID and CurrentFight.ID
// must always match. Version is the optimistic-concurrency token
// checked on every save.
type Game struct {
	ID             string     `json:"id"`
	HeroID         string     `json:"hero_id"`
	DungeonID      string     `json:"dungeon_id"`
	CurrentRoomID  string     `json:"current_room_id"`
	HeroPosition   Position   `json:"hero_position"`
	CurrentFightID string     `json:"current_fight_id,omitempty"`
	CurrentFight   *Fight     `json:"current_fight,omitempty"`
	Mobs           []Mob      `json:"mobs"`
	Status         GameStatus `json:"status"`
	Version        int64      `json:"version"`
	CreatedAt      int64      `json:"created_at"`
	UpdatedAt      int64      `json:"updated_at"`
}

// MobByID returns the spawned mob with the given session-scoped id, or nil
func (g *Game) MobByID(id int) *Mob {
	for i := range g.Mobs {
		if g.Mobs[i].ID == id {
			return &g.Mobs[i]
		}
	}
	return nil
}

// AttachFight attaches a fight, keeping CurrentFightID in sync
func (g *Game) AttachFight(f *Fight) {
	g.CurrentFight = f
	g.CurrentFightID = f.ID
}

// DetachFight clears the attached fight
func (g *Game) DetachFight() {
	g.CurrentFight = nil
	g.CurrentFightID = ""
}
