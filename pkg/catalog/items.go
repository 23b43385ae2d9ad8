// Package catalog loads the read-only reference data consumed by the
// monster builder: the item catalog, the monster cache dump, raw wiki page
// text and the prior-run record store.
package catalog

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// Item is one entry of the external item catalog.
type Item struct {
	ID       int
	Name     string
	WikiName string
	Members  bool
}

// Items is an ordered, read-only item catalog queryable by id or by exact
// name match. It is never mutated during a batch run.
type Items struct {
	ordered []Item
	byID    map[int]*Item
}

// LoadItems reads an item catalog dump: a JSON object keyed by item id.
func LoadItems(path string) (*Items, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("item catalog %s: expected a JSON object", path)
	}

	items := &Items{byID: make(map[int]*Item)}
	parsed.ForEach(func(_, value gjson.Result) bool {
		items.ordered = append(items.ordered, Item{
			ID:       int(value.Get("id").Int()),
			Name:     value.Get("name").String(),
			WikiName: value.Get("wiki_name").String(),
			Members:  value.Get("members").Bool(),
		})
		return true
	})
	for i := range items.ordered {
		item := &items.ordered[i]
		items.byID[item.ID] = item
	}
	return items, nil
}

// NewItems builds a catalog from in-memory entries, preserving order.
func NewItems(entries []Item) *Items {
	items := &Items{
		ordered: append([]Item(nil), entries...),
		byID:    make(map[int]*Item, len(entries)),
	}
	for i := range items.ordered {
		item := &items.ordered[i]
		items.byID[item.ID] = item
	}
	return items
}

// ByID returns the catalog entry with the given id.
func (c *Items) ByID(id int) (*Item, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// ByName returns the first entry whose primary name or wiki name matches
// the given name exactly.
func (c *Items) ByName(name string) (*Item, bool) {
	for i := range c.ordered {
		item := &c.ordered[i]
		if item.Name == name || item.WikiName == name {
			return item, true
		}
	}
	return nil, false
}

// Len returns the number of catalog entries.
func (c *Items) Len() int {
	return len(c.ordered)
}
