package drops

import (
	"math"
	"testing"

	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/catalog"
)

func TestCleanQuantity(t *testing.T) {
	tests := []struct {
		value    string
		expected string
	}{
		{"1", "1"},
		{"1,000", "1000"},
		{"5-10 (noted)", "5-10"},
		{"1–3", "1-3"},
		{"Varies", "varies"},
	}
	for _, test := range tests {
		got := CleanQuantity(test.value)
		if got == nil || *got != test.expected {
			t.Fatalf("CleanQuantity(%q) = %v, expected %q", test.value, got, test.expected)
		}
	}
	if got := CleanQuantity(""); got != nil {
		t.Fatalf("Empty quantity should be nil, got %v", got)
	}
}

func TestCleanRarity(t *testing.T) {
	tests := []struct {
		value    string
		expected float64
	}{
		{"Always", 1},
		{"Common", 1.0 / 8},
		{"Uncommon", 1.0 / 32},
		{"Rare", 1.0 / 128},
		{"Very rare", 1.0 / 512},
		{"1/128", 1.0 / 128},
		{"2 x 1/128", 2.0 / 128},
		{"{{#expr:1/48.5}}", 1.0 / 48.5},
	}
	for _, test := range tests {
		got := CleanRarity(test.value, nil)
		if got == nil || math.Abs(*got-test.expected) > 1e-12 {
			t.Fatalf("CleanRarity(%q) = %v, expected %v", test.value, got, test.expected)
		}
	}

	base := 0.5
	got := CleanRarity("1/4*{{#var:herbbase}}", &base)
	if got == nil || math.Abs(*got-0.125) > 1e-12 {
		t.Fatalf("Variable rarity = %v, expected 0.125", got)
	}

	if got := CleanRarity("", nil); got != nil {
		t.Fatalf("Empty rarity should be nil, got %v", got)
	}
	if got := CleanRarity("unknowable", nil); got != nil {
		t.Fatalf("Unparseable rarity should be nil, got %v", got)
	}
}

func TestCleanRequirements(t *testing.T) {
	got := CleanRequirements(`"Requires [[Barrows]] gloves"`)
	if got == nil || *got != "Requires Barrows gloves" {
		t.Fatalf("Unexpected requirements: %v", got)
	}
	if got := CleanRequirements(""); got != nil {
		t.Fatalf("Empty requirements should be nil, got %v", got)
	}
}

const testPage = `{{DropsTableHead{{#vardefine:herbbase|{{#expr:1/2}}}}}}
{{DropsLine|Name=Bones|Quantity=1|Rarity=Always}}
{{DropsLine|Name=Grimy guam leaf|Quantity=1 (noted)|Rarity=1/4*{{#var:herbbase}}}}
{{DropsLine|Name=Rare drop table|Quantity=1|Rarity=1/128}}
{{DropsLine|Name=Mystery item|Quantity=2-5|Rarity=1/128|Namenotes={{m}}|Raritynotes=Only while on task}}
{{RareDropTable}}`

func testItems() *catalog.Items {
	return catalog.NewItems([]catalog.Item{
		{ID: 526, Name: "Bones", WikiName: "Bones", Members: false},
		{ID: 199, Name: "Grimy guam leaf", WikiName: "Grimy guam leaf", Members: true},
	})
}

func TestParse(t *testing.T) {
	drops, rareTable := Parse(testPage, false, testItems())
	if !rareTable {
		t.Fatal("Rare drop table flag should be set")
	}
	// The "Rare drop table" line is a flag, not a drop.
	if len(drops) != 3 {
		t.Fatalf("Expected 3 drops, got %d: %v", len(drops), drops)
	}

	bones := drops[0]
	if bones.Name != "Bones" || bones.ID == nil || *bones.ID != 526 {
		t.Fatalf("Unexpected bones drop: %+v", bones)
	}
	if bones.Members {
		t.Fatal("Bones should be free-to-play")
	}
	if bones.Rarity == nil || *bones.Rarity != 1 {
		t.Fatalf("Unexpected bones rarity: %v", bones.Rarity)
	}

	guam := drops[1]
	if !guam.Noted {
		t.Fatal("Guam drop should be noted")
	}
	if guam.Quantity == nil || *guam.Quantity != "1" {
		t.Fatalf("Unexpected guam quantity: %v", guam.Quantity)
	}
	// Catalog lookup resolves the members flag.
	if !guam.Members {
		t.Fatal("Guam should be members-only")
	}
	// 1/4 of the page-level herb base rate of 1/2.
	if guam.Rarity == nil || math.Abs(*guam.Rarity-0.125) > 1e-12 {
		t.Fatalf("Unexpected guam rarity: %v", guam.Rarity)
	}

	mystery := drops[2]
	if mystery.ID != nil {
		t.Fatalf("Uncatalogued drop should have no id: %v", *mystery.ID)
	}
	// The {{m}} name note marks the drop members-only.
	if !mystery.Members {
		t.Fatal("Mystery item should be members-only")
	}
	if mystery.DropRequirements == nil || *mystery.DropRequirements != "Only while on task" {
		t.Fatalf("Unexpected requirements: %v", mystery.DropRequirements)
	}
}

func TestParseMembersMonster(t *testing.T) {
	// Every drop of a members-only monster is members-only.
	drops, _ := Parse(testPage, true, testItems())
	for _, drop := range drops {
		if !drop.Members {
			t.Fatalf("Drop %q should be members-only", drop.Name)
		}
	}
}

func TestHasRareDropTable(t *testing.T) {
	if HasRareDropTable("no drops here") {
		t.Fatal("Flag should be unset")
	}
	if !HasRareDropTable("{{GemDropTable}}") {
		t.Fatal("Gem drop table should set the flag")
	}
}
