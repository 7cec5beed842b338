package pattern

import (
	"fmt"

	"github.com/user/patterncard/pkg/geometry"
)

// DefaultTimingMs is the playback interval applied to new collections.
const DefaultTimingMs = 1000

// Collection is an ordered set of items with a shared playback interval and
// one active item. It is not safe for concurrent use; callers serialize
// access (the playback clock takes a lock of its own).
type Collection struct {
	Items       []Item
	TimingMs    int
	ActiveIndex int
}

// NewCollection returns a collection holding a single default card.
func NewCollection() *Collection {
	c := &Collection{TimingMs: DefaultTimingMs}
	c.Add("Card 1")
	return c
}

// NextID returns the id the next created item will receive.
func (c *Collection) NextID() int {
	max := 0
	for _, it := range c.Items {
		if it.ID > max {
			max = it.ID
		}
	}
	return max + 1
}

// Len returns the number of items.
func (c *Collection) Len() int { return len(c.Items) }

// Active returns a pointer to the active item, or nil when empty.
func (c *Collection) Active() *Item {
	if len(c.Items) == 0 {
		return nil
	}
	c.clamp()
	return &c.Items[c.ActiveIndex]
}

// Add appends a new item with baseline geometry and a zeroed sequence, makes
// it active, and returns it.
func (c *Collection) Add(name string) *Item {
	cfg := geometry.Baseline()
	it := Item{
		ID:     c.NextID(),
		Name:   name,
		Data:   make([]int, cfg.SequenceLength),
		Config: cfg,
	}
	c.Items = append(c.Items, it)
	c.ActiveIndex = len(c.Items) - 1
	return &c.Items[c.ActiveIndex]
}

// Duplicate deep-copies the item at index, inserts the copy right after it,
// and makes the copy active.
func (c *Collection) Duplicate(index int) (*Item, error) {
	if index < 0 || index >= len(c.Items) {
		return nil, fmt.Errorf("duplicate: index %d out of range", index)
	}
	cp := c.Items[index].Clone(c.NextID())
	cp.Name = cp.Name + " copy"

	c.Items = append(c.Items, Item{})
	copy(c.Items[index+2:], c.Items[index+1:])
	c.Items[index+1] = cp
	c.ActiveIndex = index + 1
	return &c.Items[c.ActiveIndex], nil
}

// Delete removes the item at index. Deleting the last remaining item is a
// no-op: a collection never becomes empty through deletion.
func (c *Collection) Delete(index int) {
	if len(c.Items) <= 1 || index < 0 || index >= len(c.Items) {
		return
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	if c.ActiveIndex > index || c.ActiveIndex >= len(c.Items) {
		c.ActiveIndex--
	}
	c.clamp()
}

// Reorder moves the item at from to position to. The active item keeps its
// identity: afterwards ActiveIndex points at the same id as before.
func (c *Collection) Reorder(from, to int) {
	n := len(c.Items)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	activeID := c.Items[c.ActiveIndex].ID

	it := c.Items[from]
	c.Items = append(c.Items[:from], c.Items[from+1:]...)
	c.Items = append(c.Items[:to], append([]Item{it}, c.Items[to:]...)...)

	for i := range c.Items {
		if c.Items[i].ID == activeID {
			c.ActiveIndex = i
			break
		}
	}
}

// Select makes the item at index active.
func (c *Collection) Select(index int) {
	if index >= 0 && index < len(c.Items) {
		c.ActiveIndex = index
	}
}

func (c *Collection) clamp() {
	if c.ActiveIndex >= len(c.Items) {
		c.ActiveIndex = len(c.Items) - 1
	}
	if c.ActiveIndex < 0 {
		c.ActiveIndex = 0
	}
}
