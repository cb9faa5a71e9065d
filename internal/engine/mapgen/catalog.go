package mapgen

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/crawlforge/dungeon-api/internal/entities"
	"github.com/crawlforge/dungeon-api/internal/errors"
)

// RoomType is one archetype in the catalog: a selection weight and the
// dimension ranges rooms of this type are sampled from.
type RoomType struct {
	ID        entities.RoomTypeID `yaml:"id"`
	Weight    int                 `yaml:"weight"`
	MinWidth  int                 `yaml:"min_width"`
	MaxWidth  int                 `yaml:"max_width"`
	MinHeight int                 `yaml:"min_height"`
	MaxHeight int                 `yaml:"max_height"`
}

// Catalog is the weighted room-type configuration driving generation
type Catalog struct {
	Types []RoomType `yaml:"room_types"`
}

// DefaultCatalog returns the built-in room-type configuration
func DefaultCatalog() *Catalog {
	return &Catalog{
		Types: []RoomType{
			{ID: entities.RoomTypeSmall, Weight: 30, MinWidth: 3, MaxWidth: 6, MinHeight: 3, MaxHeight: 6},
			{ID: entities.RoomTypeMedium, Weight: 25, MinWidth: 5, MaxWidth: 10, MinHeight: 5, MaxHeight: 10},
			{ID: entities.RoomTypeCorridor, Weight: 20, MinWidth: 3, MaxWidth: 12, MinHeight: 3, MaxHeight: 12},
			{ID: entities.RoomTypeLarge, Weight: 15, MinWidth: 10, MaxWidth: 16, MinHeight: 10, MaxHeight: 16},
			{ID: entities.RoomTypeHall, Weight: 10, MinWidth: 14, MaxWidth: 24, MinHeight: 14, MaxHeight: 24},
		},
	}
}

// LoadCatalog reads a catalog from a YAML file
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied config path
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalog file %s", path)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Wrapf(err, "failed to parse catalog file %s", path)
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	return &catalog, nil
}

// Validate checks the catalog is usable for weighted selection
func (c *Catalog) Validate() error {
	vb := errors.NewValidationBuilder()

	if len(c.Types) == 0 {
		vb.RequiredField("Types")
	}

	for _, rt := range c.Types {
		if rt.ID == "" {
			vb.RequiredField("Types.ID")
		}
		if rt.Weight <= 0 {
			vb.Fieldf("Types.Weight", "must be positive for %s", rt.ID)
		}
		if rt.MinWidth < 3 || rt.MaxWidth < rt.MinWidth {
			vb.Fieldf("Types.Width", "invalid range for %s", rt.ID)
		}
		if rt.MinHeight < 3 || rt.MaxHeight < rt.MinHeight {
			vb.Fieldf("Types.Height", "invalid range for %s", rt.ID)
		}
	}

	return vb.Build()
}

// ByID returns the room type with the given id, or nil
func (c *Catalog) ByID(id entities.RoomTypeID) *RoomType {
	for i := range c.Types {
		if c.Types[i].ID == id {
			return &c.Types[i]
		}
	}
	return nil
}

// TotalWeight sums the selection weights of all types
func (c *Catalog) TotalWeight() int {
	total := 0
	for _, rt := range c.Types {
		total += rt.Weight
	}
	return total
}
