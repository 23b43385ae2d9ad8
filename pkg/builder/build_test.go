package builder

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonboy77/osrsbox-enchanced-monsters/internal/utils"
	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/catalog"
)

const crawlerPage = `{{Infobox Monster
|name = Cave crawler
|members = Yes
|release = [[4 January]] [[2001]]
|hitpoints = 22
|att = 60
|str = 25
|def = 60
|mage = 1
|range = 1
|attbns = 0
|strbns = 6
|amagic = 0
|mbns = 0
|arange = 0
|rngbns = 0
|dstab = 10
|dslash = 10
|dcrush = 10
|dmagic = 10
|drange = 10
|attack style = Melee
|attack speed = 4
|aggressive = No
|poisonous = Yes
|immunepoison = Yes
|immunevenom = No
|attributes = None
|cat = Cave crawlers
|slaylvl = 10
|slayxp = 22
|assignedby = Vannaka, Chaeldar
|examine = It has sharp teeth.
|max hit = 4
|id = 406
}}
{{DropsLine|Name=Bones|Quantity=1|Rarity=Always}}`

func writeJSON(t *testing.T, dir, name string, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %s", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile failed: %s", err)
	}
	return path
}

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	dir := t.TempDir()

	cachePath := writeJSON(t, dir, "cache.json", map[string]interface{}{
		"406": map[string]interface{}{"id": 406, "name": "Cave crawler", "combatLevel": 23, "size": 1},
		"999": map[string]interface{}{"id": 999, "name": "Ghost", "combatLevel": 19, "size": 1},
	})
	pagesPath := writeJSON(t, dir, "pages.json", map[string]string{
		"Cave crawler": crawlerPage,
	})

	cache, err := catalog.LoadCache(cachePath)
	if err != nil {
		t.Fatalf("LoadCache failed: %s", err)
	}
	pages, err := catalog.LoadPages(pagesPath)
	if err != nil {
		t.Fatalf("LoadPages failed: %s", err)
	}
	items := catalog.NewItems([]catalog.Item{
		{ID: 526, Name: "Bones", WikiName: "Bones", Members: false},
	})
	return New(cache, nil, pages, items)
}

func TestBuild(t *testing.T) {
	b := testBuilder(t)

	m, err := b.Build("406")
	if err != nil {
		t.Fatalf("Build failed: %s", err)
	}
	if m == nil {
		t.Fatal("Build returned no record")
	}

	if m.ID != 406 || m.Name != "Cave crawler" || m.CombatLevel != 23 || m.Size != 1 {
		t.Fatalf("Cache fields wrong: %+v", m)
	}
	if m.Incomplete {
		t.Fatal("Record should be complete")
	}
	if !m.Members {
		t.Fatal("Record should be members-only")
	}
	if m.ReleaseDate == nil || *m.ReleaseDate != "2001-01-04" {
		t.Fatalf("Unexpected release date: %v", m.ReleaseDate)
	}
	if m.Hitpoints == nil || *m.Hitpoints != 22 {
		t.Fatalf("Unexpected hitpoints: %v", m.Hitpoints)
	}
	if !utils.AreSlicesEqual(m.AttackType, []string{"melee"}) {
		t.Fatalf("Unexpected attack types: %v", m.AttackType)
	}
	if m.MaxHit["melee_unknown"] != 4 {
		t.Fatalf("Unexpected max hit: %v", m.MaxHit)
	}
	if !m.Poisonous || m.Venomous {
		t.Fatalf("Unexpected poison flags: %+v", m)
	}
	if !utils.AreSlicesEqual(m.Category, []string{"cave crawlers"}) {
		t.Fatalf("Unexpected category: %v", m.Category)
	}

	if !m.SlayerMonster {
		t.Fatal("Record should be a slayer monster")
	}
	if m.SlayerLevel == nil || *m.SlayerLevel != 10 {
		t.Fatalf("Unexpected slayer level: %v", m.SlayerLevel)
	}
	if !utils.AreSlicesEqual(m.SlayerMasters, []string{"vannaka", "chaeldar"}) {
		t.Fatalf("Unexpected slayer masters: %v", m.SlayerMasters)
	}

	if m.AttackLevel != 60 || m.StrengthBonus != 6 || m.DefenceRanged != 10 {
		t.Fatalf("Unexpected combat stats: %+v", m)
	}

	if m.WikiName != "Cave crawler" {
		t.Fatalf("Unexpected wiki name: %q", m.WikiName)
	}
	if m.WikiURL != "https://oldschool.runescape.wiki/w/Cave_crawler" {
		t.Fatalf("Unexpected wiki url: %q", m.WikiURL)
	}

	if len(m.Drops) != 1 || m.Drops[0].Name != "Bones" {
		t.Fatalf("Unexpected drops: %+v", m.Drops)
	}
	// Members monster: every drop is members-only regardless of the item.
	if !m.Drops[0].Members {
		t.Fatal("Drop should be members-only")
	}
	if m.RareDropTable {
		t.Fatal("No rare drop table on this page")
	}
	if m.Duplicate {
		t.Fatal("First record can not be a duplicate")
	}
}

func TestBuildMissingPage(t *testing.T) {
	b := testBuilder(t)

	m, err := b.Build("999")
	if err != nil {
		t.Fatalf("Missing page should skip, not fail: %s", err)
	}
	if m != nil {
		t.Fatalf("Missing page should yield no record: %+v", m)
	}
}

func TestBuildUnknownID(t *testing.T) {
	b := testBuilder(t)
	if _, err := b.Build("123456"); err == nil {
		t.Fatal("Unknown cache id should fail")
	}
}
