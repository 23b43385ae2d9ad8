package builder

import (
	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/cleaner"
	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/monsters"
)

// propertySpec binds one canonical record property to its infobox key and
// its typed normalizer. The mapping is fixed at initialization; properties
// are never dispatched by name at runtime.
type propertySpec struct {
	name string
	key  string
	// apply normalizes the raw value onto the record. It returns false
	// when the field is unresolvable or malformed, which marks the whole
	// record incomplete.
	apply func(m *monsters.Monster, raw string, present bool) bool
}

// properties lists every wiki-sourced record property in population order.
var properties = []propertySpec{
	{"members", "members", func(m *monsters.Monster, raw string, present bool) bool {
		m.Members = cleaner.Boolean(raw)
		return present
	}},
	{"release_date", "release", func(m *monsters.Monster, raw string, present bool) bool {
		m.ReleaseDate = cleaner.ReleaseDate(raw)
		return present && m.ReleaseDate != nil
	}},
	{"hitpoints", "hitpoints", func(m *monsters.Monster, raw string, present bool) bool {
		m.Hitpoints = cleaner.Integer(raw)
		return present && m.Hitpoints != nil
	}},
	{"attack_type", "attack style", func(m *monsters.Monster, raw string, present bool) bool {
		m.AttackType = cleaner.AttackType(raw)
		return present
	}},
	{"attack_speed", "attack speed", func(m *monsters.Monster, raw string, present bool) bool {
		m.AttackSpeed = cleaner.Integer(raw)
		return present && m.AttackSpeed != nil
	}},
	{"aggressive", "aggressive", func(m *monsters.Monster, raw string, present bool) bool {
		m.Aggressive = cleaner.Boolean(raw)
		return present
	}},
	{"poisonous", "poisonous", func(m *monsters.Monster, raw string, present bool) bool {
		m.Poisonous = cleaner.Boolean(raw)
		return present
	}},
	{"venomous", "poisonous", func(m *monsters.Monster, raw string, present bool) bool {
		m.Venomous = cleaner.Venomous(raw)
		return present
	}},
	{"immune_poison", "immunepoison", func(m *monsters.Monster, raw string, present bool) bool {
		m.ImmunePoison = cleaner.Boolean(raw)
		return present
	}},
	{"immune_venom", "immunevenom", func(m *monsters.Monster, raw string, present bool) bool {
		m.ImmuneVenom = cleaner.Boolean(raw)
		return present
	}},
	{"attributes", "attributes", func(m *monsters.Monster, raw string, present bool) bool {
		m.Attributes = cleaner.Attributes(raw)
		return present
	}},
	{"category", "cat", func(m *monsters.Monster, raw string, present bool) bool {
		m.Category = cleaner.Category(raw)
		return present
	}},
	{"slayer_level", "slaylvl", func(m *monsters.Monster, raw string, present bool) bool {
		m.SlayerLevel = cleaner.Integer(raw)
		return present && m.SlayerLevel != nil
	}},
	{"slayer_xp", "slayxp", func(m *monsters.Monster, raw string, present bool) bool {
		m.SlayerXP = cleaner.Float(raw)
		return present && m.SlayerXP != nil
	}},
	{"examine", "examine", func(m *monsters.Monster, raw string, present bool) bool {
		if present {
			examine := cleaner.Examine(raw)
			m.Examine = &examine
		}
		return present
	}},
}

// combatBonuses maps each combat stat field to its infobox key, in
// population order. Unresolvable or malformed stats resolve to zero.
var combatBonuses = []struct {
	key   string
	apply func(m *monsters.Monster, v int)
}{
	{"att", func(m *monsters.Monster, v int) { m.AttackLevel = v }},
	{"str", func(m *monsters.Monster, v int) { m.StrengthLevel = v }},
	{"def", func(m *monsters.Monster, v int) { m.DefenceLevel = v }},
	{"mage", func(m *monsters.Monster, v int) { m.MagicLevel = v }},
	{"range", func(m *monsters.Monster, v int) { m.RangedLevel = v }},
	{"attbns", func(m *monsters.Monster, v int) { m.AttackBonus = v }},
	{"strbns", func(m *monsters.Monster, v int) { m.StrengthBonus = v }},
	{"amagic", func(m *monsters.Monster, v int) { m.AttackMagic = v }},
	{"mbns", func(m *monsters.Monster, v int) { m.MagicBonus = v }},
	{"arange", func(m *monsters.Monster, v int) { m.AttackRanged = v }},
	{"rngbns", func(m *monsters.Monster, v int) { m.RangedBonus = v }},
	{"dstab", func(m *monsters.Monster, v int) { m.DefenceStab = v }},
	{"dslash", func(m *monsters.Monster, v int) { m.DefenceSlash = v }},
	{"dcrush", func(m *monsters.Monster, v int) { m.DefenceCrush = v }},
	{"dmagic", func(m *monsters.Monster, v int) { m.DefenceMagic = v }},
	{"drange", func(m *monsters.Monster, v int) { m.DefenceRanged = v }},
}
