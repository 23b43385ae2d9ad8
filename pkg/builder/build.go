// Package builder assembles typed monster records from the game cache
// dump, raw wiki page text and the item catalog.
package builder

import (
	"fmt"
	"strings"

	"github.com/simonboy77/osrsbox-enchanced-monsters/internal/utils"
	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/catalog"
	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/cleaner"
	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/drops"
	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/monsters"
	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/wikitext"
)

const wikiBaseURL = "https://oldschool.runescape.wiki/w/"

// Builder assembles monster records. The reference data it holds is
// read-only; one Builder processes monsters sequentially and remembers
// already-built records for duplicate detection.
type Builder struct {
	cache       *catalog.Cache
	pagesByID   *catalog.Pages
	pagesByName *catalog.Pages
	items       *catalog.Items
	known       []*monsters.Monster
}

// New returns a builder over the loaded reference data. pagesByID is the
// processed dump keyed by monster id, pagesByName the raw dump keyed by
// page name; either may be nil.
func New(cache *catalog.Cache, pagesByID, pagesByName *catalog.Pages, items *catalog.Items) *Builder {
	return &Builder{
		cache:       cache,
		pagesByID:   pagesByID,
		pagesByName: pagesByName,
		items:       items,
	}
}

// Build assembles the record for one monster id. A nil record with a nil
// error means the monster has no usable wiki data and is skipped; the
// batch continues.
func (b *Builder) Build(id string) (*monsters.Monster, error) {
	entry, ok := b.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("monster %s: no cache entry", id)
	}

	utils.Log.Debugf("======================= %s %s", id, entry.Name)

	page, foundByID := b.lookupPage(id, entry.Name)
	if page == nil {
		utils.Log.Errorf("monster %s (%s): could not find wikitext by id or name", id, entry.Name)
		return nil, nil
	}

	template, ok := wikitext.ExtractInfobox(page.Text, "infobox monster")
	if !ok {
		utils.Log.Errorf("monster %s (%s): could not find infobox monster template", id, entry.Name)
		return nil, nil
	}

	suffix := VersionSuffix(template, entry.ID)
	utils.Log.Debugf("monster %s: version suffix %q", id, suffix)
	resolver := NewFieldResolver(template, suffix)

	m := &monsters.Monster{
		ID:            entry.ID,
		Name:          entry.Name,
		CombatLevel:   entry.CombatLevel,
		Size:          entry.Size,
		SlayerMasters: []string{},
		Drops:         []monsters.Drop{},
	}

	pageName := entry.Name
	if foundByID {
		pageName = page.Title
	}
	setWikiIdentity(m, resolver, pageName)

	for _, spec := range properties {
		raw, present := resolver.Resolve(spec.key)
		if !spec.apply(m, raw, present) {
			m.Incomplete = true
		}
	}

	maxHitText, maxHitOK := resolver.Resolve("max hit")
	attackStyleText, styleOK := resolver.Resolve("attack style")
	m.MaxHit = cleaner.MaxHitByAttackStyle(maxHitText, attackStyleText)
	if !maxHitOK || !styleOK {
		m.Incomplete = true
	}

	b.setSlayer(m, resolver)

	for _, bonus := range combatBonuses {
		raw, ok := resolver.Resolve(bonus.key)
		if !ok {
			bonus.apply(m, 0)
			m.Incomplete = true
			continue
		}
		bonus.apply(m, cleaner.Stats(raw))
	}

	m.Drops, m.RareDropTable = drops.Parse(page.Text, m.Members, b.items)

	m.Duplicate = b.isDuplicate(m)
	b.known = append(b.known, m)

	return m, nil
}

// lookupPage finds the wiki page for a monster, preferring the processed
// dump keyed by id over the raw dump keyed by name.
func (b *Builder) lookupPage(id, name string) (*catalog.Page, bool) {
	if b.pagesByID != nil {
		if page, ok := b.pagesByID.Get(id); ok && page.Text != "" {
			return &page, true
		}
	}
	if b.pagesByName != nil {
		if page, ok := b.pagesByName.Get(name); ok && page.Text != "" {
			return &page, false
		}
	}
	return nil, false
}

// setWikiIdentity derives wiki_name and wiki_url from the page name and
// the (possibly versioned) variant name declared in the infobox.
func setWikiIdentity(m *monsters.Monster, resolver *FieldResolver, pageName string) {
	versionedName, ok := resolver.Resolve("version")
	if ok && versionedName != "" {
		if strings.HasPrefix(versionedName, "(") {
			m.WikiName = pageName + " " + versionedName
		} else {
			m.WikiName = pageName + " (" + versionedName + ")"
		}
		m.WikiURL = wikiBaseURL + strings.ReplaceAll(pageName+"#"+versionedName, " ", "_")
		return
	}
	m.WikiName = pageName
	m.WikiURL = wikiBaseURL + strings.ReplaceAll(pageName, " ", "_")
}

// setSlayer derives the slayer task fields. A monster granting slayer
// experience is a slayer monster; a missing requirement defaults to
// level 1.
func (b *Builder) setSlayer(m *monsters.Monster, resolver *FieldResolver) {
	if m.SlayerXP != nil && *m.SlayerXP > 0 {
		m.SlayerMonster = true
		if m.SlayerLevel == nil {
			level := 1
			m.SlayerLevel = &level
		}
	}
	if !m.SlayerMonster {
		return
	}

	raw, ok := resolver.Resolve("assignedby")
	if !ok {
		m.Incomplete = true
		return
	}
	m.SlayerMasters = cleaner.SlayerMasters(raw)
}

// isDuplicate reports whether an already-built monster shares this
// monster's name, wiki name, combat level and members status.
func (b *Builder) isDuplicate(m *monsters.Monster) bool {
	for _, known := range b.known {
		if known.Name != m.Name {
			continue
		}
		if known.WikiName == m.WikiName &&
			known.CombatLevel == m.CombatLevel &&
			known.Members == m.Members {
			return true
		}
	}
	return false
}
