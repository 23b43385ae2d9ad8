// Package drops extracts loot table entries from raw monster wiki pages
// and resolves them against the item catalog.
package drops

import (
	"regexp"
	"strings"

	"github.com/simonboy77/osrsbox-enchanced-monsters/internal/utils"
	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/catalog"
	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/cleaner"
	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/monsters"
	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/wikitext"
)

// Parse extracts every dropsline template on the page into drop records.
// The second return value is the page-level rare drop table flag.
func Parse(pageText string, monsterMembers bool, items *catalog.Items) ([]monsters.Drop, bool) {
	var out []monsters.Drop

	for _, raw := range wikitext.ExtractTemplates(pageText, "dropsline") {
		template := wikitext.ParseTemplate(raw)

		name, _ := template.Get("name")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		// Handled as a page-level flag, not a line item.
		if strings.EqualFold(name, "rare drop table") {
			continue
		}

		drop := monsters.Drop{Name: name}

		item, found := items.ByName(name)
		if found {
			id := item.ID
			drop.ID = &id
		}

		rawQuantity, _ := template.Get("quantity")
		drop.Noted = strings.Contains(strings.ToLower(rawQuantity), "noted")
		drop.Quantity = CleanQuantity(rawQuantity)

		nameNotes, _ := template.Get("namenotes")
		switch {
		case monsterMembers:
			drop.Members = true
		case found:
			drop.Members = item.Members
		case strings.Contains(nameNotes, "{{m}}"):
			drop.Members = true
		}

		rawRarity, _ := template.Get("rarity")
		var base *float64
		if strings.Contains(rawRarity, "var:herbbase") {
			base = baseRate(pageText, "herbbase")
		} else if strings.Contains(rawRarity, "var:seedbase") {
			base = baseRate(pageText, "seedbase")
		}
		drop.Rarity = CleanRarity(rawRarity, base)

		rawNotes, _ := template.Get("raritynotes")
		drop.DropRequirements = CleanRequirements(rawNotes)

		out = append(out, drop)
	}

	return out, HasRareDropTable(pageText)
}

// HasRareDropTable reports whether the page invokes the rare drop table or
// gem drop table template anywhere in its raw text.
func HasRareDropTable(pageText string) bool {
	lower := strings.ToLower(pageText)
	return strings.Contains(lower, "{{raredroptable") ||
		strings.Contains(lower, "{{gemdroptable")
}

// baseRate resolves a named drop variable from a DropsTableHead template
// elsewhere on the page, e.g.
// {{DropsTableHead{{#vardefine:herbbase|{{#expr:9/123/128}}}}}}
func baseRate(pageText, varName string) *float64 {
	for _, raw := range wikitext.ExtractTemplates(pageText, "dropstablehead") {
		if !strings.Contains(raw, "vardefine:"+varName) {
			continue
		}
		_, expr, found := strings.Cut(raw, "#expr:")
		if !found {
			continue
		}
		expr = strings.ReplaceAll(expr, "{", "")
		expr = strings.ReplaceAll(expr, "}", "")
		value, err := Eval(expr)
		if err != nil {
			utils.Log.Warnf("unparseable %s expression %q: %v", varName, expr, err)
			continue
		}
		return &value
	}
	return nil
}

var quantityPattern = regexp.MustCompile(`^[0-9]+(-[0-9]+)?$`)

// CleanQuantity normalizes a drop quantity into a number, a numeric range
// or a textual sentinel such as "varies". The noted marker is a separate
// flag and is stripped here.
func CleanQuantity(value string) *string {
	if value == "" {
		return nil
	}
	v := strings.ToLower(cleaner.CleanWikitext(value))
	v = strings.ReplaceAll(v, "(noted)", "")
	v = strings.ReplaceAll(v, "noted", "")
	v = strings.ReplaceAll(v, "–", "-")
	v = strings.ReplaceAll(v, "—", "-")
	v = strings.ReplaceAll(v, ",", "")

	if compact := strings.ReplaceAll(v, " ", ""); quantityPattern.MatchString(compact) {
		v = compact
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// rarityWords maps conventional wiki rarity tiers to drop rates.
var rarityWords = map[string]float64{
	"always":    1,
	"common":    1.0 / 8,
	"uncommon":  1.0 / 32,
	"rare":      1.0 / 128,
	"very rare": 1.0 / 512,
}

// CleanRarity normalizes a raw rarity into a probability. When the rarity
// references a page-level drop variable, base carries the resolved base
// rate and the remaining numeric factor is multiplied onto it.
func CleanRarity(value string, base *float64) *float64 {
	if value == "" {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.ReplaceAll(v, "[", "")
	v = strings.ReplaceAll(v, "]", "")

	if base != nil {
		r := varFactor(v) * *base
		return &r
	}

	if i := strings.Index(v, "#expr:"); i >= 0 {
		expr := v[i+len("#expr:"):]
		expr = strings.ReplaceAll(expr, "{", "")
		expr = strings.ReplaceAll(expr, "}", "")
		if r, err := Eval(expr); err == nil {
			return &r
		}
		return nil
	}

	if r, ok := rarityWords[v]; ok {
		return &r
	}

	// Plain fraction, possibly with a multiplier: "1/128", "2 x 1/128".
	expr := strings.ReplaceAll(v, "×", "*")
	expr = strings.ReplaceAll(expr, " x ", "*")
	if i := strings.Index(expr, ";"); i >= 0 {
		expr = expr[:i]
	}
	if r, err := Eval(expr); err == nil {
		return &r
	}
	return nil
}

// varFactor strips the variable reference and template plumbing from a
// rarity such as "1/40*{{#var:herbbase}}", leaving the numeric factor.
func varFactor(v string) float64 {
	for _, name := range []string{"herbbase", "seedbase"} {
		v = strings.ReplaceAll(v, "#var:"+name, "")
	}
	v = strings.ReplaceAll(v, "#expr:", "")
	v = strings.ReplaceAll(v, "{", "")
	v = strings.ReplaceAll(v, "}", "")
	v = strings.ReplaceAll(v, "×", "*")
	v = strings.ReplaceAll(v, "x", "*")
	v = strings.Trim(v, " *")
	if v == "" {
		return 1
	}
	if f, err := Eval(v); err == nil {
		return f
	}
	return 1
}

var requirementMarkup = regexp.MustCompile(`[{}*"]`)

// CleanRequirements normalizes the free-text drop requirement notes.
func CleanRequirements(value string) *string {
	if value == "" {
		return nil
	}
	v := cleaner.CleanWikitext(value)
	v = requirementMarkup.ReplaceAllString(v, "")
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
