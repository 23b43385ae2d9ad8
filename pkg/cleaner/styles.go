package cleaner

import (
	"github.com/simonboy77/osrsbox-enchanced-monsters/internal/utils"
)

// Canonical attack style identifiers.
const (
	StyleMeleeStab     = "melee_stab"
	StyleMeleeSlash    = "melee_slash"
	StyleMeleeCrush    = "melee_crush"
	StyleMeleeMagic    = "melee_magic"
	StyleMeleeUnknown  = "melee_unknown"
	StyleMagic         = "magic"
	StyleMagicRanged   = "magic_ranged"
	StyleRanged        = "ranged"
	StyleRangedMelee   = "ranged_melee"
	StyleRangedMagic   = "ranged_magic"
	StyleAreaOfEffect  = "area_of_effect"
	StyleDragonfire    = "dragonfire"
	StyleIcyBreath     = "icy_breath"
	StyleVolcanicFlame = "volcanic_flame"
	StyleNone          = "none"
	StyleUnknown       = ""
)

// CanonicalAttackStyle maps a wiki attack style phrase (lowercased, markup
// stripped) to its canonical identifier. Unrecognized phrases resolve to
// StyleUnknown and are reported, never a failure.
func CanonicalAttackStyle(style string) string {
	switch style {
	case "stab":
		return StyleMeleeStab
	case "slash", "slash melee":
		return StyleMeleeSlash
	case "crush":
		return StyleMeleeCrush
	case "magical melee", "magic melee":
		return StyleMeleeMagic
	case "melee", "melee (crush?)", "crush(?)":
		// Chaos elemental and thrower troll
		return StyleMeleeUnknown
	case "magic":
		return StyleMagic
	case "magical ranged":
		return StyleMagicRanged
	case "ranged", "single and multi-target ranged":
		return StyleRanged
	case "ranged melee":
		return StyleRangedMelee
	case "ranged magic":
		return StyleRangedMagic
	case "area of effect", "magic (special)", "various", "poison":
		return StyleAreaOfEffect
	case "dragonfire":
		return StyleDragonfire
	case "icy breath":
		return StyleIcyBreath
	case "volcanic flame":
		return StyleVolcanicFlame
	case "none", "":
		return StyleNone
	case "curse", "confuse": // ignored styles
		return StyleUnknown
	}

	utils.Log.Warnf("unrecognized attack style: %s", style)
	return StyleUnknown
}
