package catalog

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// CacheEntry is the authoritative ground-truth data for one monster,
// extracted from the game cache.
type CacheEntry struct {
	ID          int
	Name        string
	CombatLevel int
	Size        int
}

// Cache holds cache entries for every monster, keyed by id string, with
// the dump's iteration order preserved.
type Cache struct {
	ids     []string
	entries map[string]CacheEntry
}

// LoadCache reads the monster cache dump: a JSON object keyed by id.
func LoadCache(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("monster cache %s: expected a JSON object", path)
	}

	cache := &Cache{entries: make(map[string]CacheEntry)}
	parsed.ForEach(func(key, value gjson.Result) bool {
		id := key.String()
		cache.ids = append(cache.ids, id)
		cache.entries[id] = CacheEntry{
			ID:          int(value.Get("id").Int()),
			Name:        value.Get("name").String(),
			CombatLevel: int(value.Get("combatLevel").Int()),
			Size:        int(value.Get("size").Int()),
		}
		return true
	})
	return cache, nil
}

// IDs returns every monster id in dump order.
func (c *Cache) IDs() []string {
	return c.ids
}

// Get returns the cache entry for one monster id.
func (c *Cache) Get(id string) (CacheEntry, bool) {
	entry, ok := c.entries[id]
	return entry, ok
}

// Page is one raw wiki page: its title and full wikitext.
type Page struct {
	Title string
	Text  string
}

// Pages is a wiki page dump keyed either by monster id or by page name.
type Pages struct {
	byKey map[string]Page
}

// LoadPages reads a wiki page dump. Each value is either the page text
// itself or a [title, revision, text] triple.
func LoadPages(path string) (*Pages, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("wiki page dump %s: expected a JSON object", path)
	}

	pages := &Pages{byKey: make(map[string]Page)}
	parsed.ForEach(func(key, value gjson.Result) bool {
		page := Page{Title: key.String()}
		if value.IsArray() {
			parts := value.Array()
			if len(parts) > 0 {
				page.Title = parts[0].String()
			}
			if len(parts) > 0 {
				page.Text = parts[len(parts)-1].String()
			}
		} else {
			page.Text = value.String()
		}
		pages.byKey[key.String()] = page
		return true
	})
	return pages, nil
}

// Get returns the page stored under a dump key (id or name).
func (p *Pages) Get(key string) (Page, bool) {
	page, ok := p.byKey[key]
	return page, ok
}

// Prior is the persisted output of an earlier run, keyed by monster id.
// It is consulted read-only by the change differ.
type Prior struct {
	records map[string]map[string]interface{}
}

// LoadPrior reads the prior-run monster database.
func LoadPrior(path string) (*Prior, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("monster database %s: expected a JSON object", path)
	}

	prior := &Prior{records: make(map[string]map[string]interface{})}
	parsed.ForEach(func(key, value gjson.Result) bool {
		if record, ok := value.Value().(map[string]interface{}); ok {
			prior.records[key.String()] = record
		}
		return true
	})
	return prior, nil
}

// EmptyPrior returns a record store with no prior entries; every monster
// diffs as new.
func EmptyPrior() *Prior {
	return &Prior{records: make(map[string]map[string]interface{})}
}

// Get returns the persisted record for one monster id.
func (p *Prior) Get(id string) (map[string]interface{}, bool) {
	record, ok := p.records[id]
	return record, ok
}
