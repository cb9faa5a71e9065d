package entities

// Hero is a read snapshot of the player's character. The authoritative
// record lives in the external hero service; combat mutates a local
// copy and reports HP deltas back through the gateway.
type Hero struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	HealthPoints    int    `json:"health_points"`
	HealthPointsMax int    `json:"health_points_max"`
	AttackPoints    int    `json:"attack_points"`
}
