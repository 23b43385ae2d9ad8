package cleaner

import (
	"testing"

	"github.com/simonboy77/osrsbox-enchanced-monsters/internal/utils"
)

func TestBoolean(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"Yes", true},
		{"yes", true},
		{"True", true},
		{"[[Yes]]", true},
		{"No", false},
		{"Maybe", false},
		{"", false},
	}
	for _, test := range tests {
		if got := Boolean(test.value); got != test.expected {
			t.Fatalf("Boolean(%q) = %v, expected %v", test.value, got, test.expected)
		}
	}
}

func TestVenomous(t *testing.T) {
	if !Venomous("Venomous") {
		t.Fatal("Venomous should match")
	}
	if !Venomous("Poisonous (venom)") {
		t.Fatal("Parenthesized venom should match")
	}
	if Venomous("Yes") {
		t.Fatal("Plain poison should not match")
	}
}

func TestInteger(t *testing.T) {
	if got := Integer("105"); got == nil || *got != 105 {
		t.Fatalf("Integer(105) = %v", got)
	}
	if got := Integer("N/A"); got != nil {
		t.Fatalf("Malformed integer should be nil, got %v", got)
	}
	if got := Integer(""); got != nil {
		t.Fatalf("Empty integer should be nil, got %v", got)
	}
}

func TestStats(t *testing.T) {
	if got := Stats("85"); got != 85 {
		t.Fatalf("Stats(85) = %d", got)
	}
	if got := Stats("?"); got != 0 {
		t.Fatalf("Malformed stat should be 0, got %d", got)
	}
}

func TestReleaseDate(t *testing.T) {
	got := ReleaseDate("[[31 October]] [[2005]]")
	if got == nil || *got != "2005-10-31" {
		t.Fatalf("Unexpected release date: %v", got)
	}
	if got := ReleaseDate(""); got != nil {
		t.Fatalf("Empty release date should be nil, got %v", got)
	}
	if got := ReleaseDate("Unknown"); got != nil {
		t.Fatalf("Unparseable release date should be nil, got %v", got)
	}
}

func TestAttackType(t *testing.T) {
	got := AttackType("[[Melee]] (crush), [[Magic]]")
	if !utils.AreSlicesEqual(got, []string{"melee", "crush", "magic"}) {
		t.Fatalf("Unexpected attack types: %v", got)
	}
	if got := AttackType(""); len(got) != 0 {
		t.Fatalf("Empty attack type should be empty, got %v", got)
	}
}

func TestAttributes(t *testing.T) {
	got := Attributes("[[Demon]], fiery")
	if !utils.AreSlicesEqual(got, []string{"demon", "fiery"}) {
		t.Fatalf("Unexpected attributes: %v", got)
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		value    string
		expected []string
	}{
		{"Spiders, Shades", []string{"spiders", "shades"}},
		{"Dagannoths", []string{"dagannoth"}},
		{"No", []string{}},
		{"<!-- leave blank -->", []string{}},
		{"", []string{}},
	}
	for _, test := range tests {
		if got := Category(test.value); !utils.AreSlicesEqual(got, test.expected) {
			t.Fatalf("Category(%q) = %v, expected %v", test.value, got, test.expected)
		}
	}
}

func TestSlayerMasters(t *testing.T) {
	got := SlayerMasters("Vannaka, Chaeldar, Steve")
	if !utils.AreSlicesEqual(got, []string{"vannaka", "chaeldar", "nieve"}) {
		t.Fatalf("Unexpected slayer masters: %v", got)
	}

	// Steve is an alias of Nieve and must not produce a duplicate.
	got = SlayerMasters("Steve, Nieve")
	if !utils.AreSlicesEqual(got, []string{"nieve"}) {
		t.Fatalf("Steve alias duplicated: %v", got)
	}

	if got := SlayerMasters("No"); len(got) != 0 {
		t.Fatalf("Non-slayer monster should have no masters, got %v", got)
	}
}

func TestExamine(t *testing.T) {
	got := Examine("A filthy rodent.\nSecond line of notes.")
	if got != "A filthy rodent." {
		t.Fatalf("Unexpected examine: %q", got)
	}
	got = Examine(`"An angry chicken."`)
	if got != "An angry chicken." {
		t.Fatalf("Markup not stripped: %q", got)
	}
}
