// Package entities provides core data structures for dungeon-api.
package entities

// RoomTypeID identifies a room archetype
type RoomTypeID string

// Room archetypes
const (
	RoomTypeSmall    RoomTypeID = "small"
	RoomTypeMedium   RoomTypeID = "medium"
	RoomTypeLarge    RoomTypeID = "large"
	RoomTypeCorridor RoomTypeID = "corridor"
	RoomTypeHall     RoomTypeID = "hall"
)

// Wall identifies one side of a room
type Wall int

// Wall indices. Opposite is (w+2)%4, adjacent is (w±1)%4.
const (
	WallBottom Wall = iota // y = 0
	WallRight              // x = width-1
	WallTop                // y = height-1
	WallLeft               // x = 0
)

// Dimension is a room size in grid cells
type Dimension struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Position is a 2D cell inside a room
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Contains reports whether p lies within [0,width) x [0,height)
func (d Dimension) Contains(p Position) bool {
	return p.X >= 0 && p.X < d.Width && p.Y >= 0 && p.Y < d.Height
}

// Room is one dungeon chamber. Entrance and exit each lie on a wall.
// Order is the zero-based traversal index within the dungeon.
type Room struct {
	ID        string     `json:"id"`
	Type      RoomTypeID `json:"type"`
	Dimension Dimension  `json:"dimension"`
	Entrance  Position   `json:"entrance"`
	Exit      Position   `json:"exit"`
	Order     int        `json:"order"`
}

// Dungeon is a generated layout: an ordered sequence of rooms.
// Immutable after generation.
type Dungeon struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Rooms []Room `json:"rooms"`
}

// RoomByID returns the room with the given id, or nil
func (d *Dungeon) RoomByID(id string) *Room {
	for i := range d.Rooms {
		if d.Rooms[i].ID == id {
			return &d.Rooms[i]
		}
	}
	return nil
}

// RoomByOrder returns the room with the given order index, or nil
func (d *Dungeon) RoomByOrder(order int) *Room {
	for i := range d.Rooms {
		if d.Rooms[i].Order == order {
			return &d.Rooms[i]
		}
	}
	return nil
}

// LastRoom returns the room with the highest order, or nil for an empty dungeon
func (d *Dungeon) LastRoom() *Room {
	return d.RoomByOrder(len(d.Rooms) - 1)
}
