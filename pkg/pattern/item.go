// Package pattern provides the card collection model edited and played by
// the application.
package pattern

import (
	"encoding/json"

	"github.com/user/patterncard/pkg/geometry"
)

// Item is a single pattern card: a short digit sequence plus the geometry
// configuration that renders it. Each item exclusively owns its config;
// copies made through Clone share nothing.
type Item struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Data        []int           `json:"data"`
	Config      geometry.Config `json:"geometryConfig"`
}

// UnmarshalJSON fills config fields a document does not carry from the
// baseline preset instead of leaving them zero.
func (it *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	tmp := plain{Config: geometry.Baseline()}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*it = Item(tmp)
	return nil
}

// Clone returns a deep copy of the item with the given id.
func (it Item) Clone(id int) Item {
	cp := it
	cp.ID = id
	cp.Data = append([]int(nil), it.Data...)
	return cp
}
