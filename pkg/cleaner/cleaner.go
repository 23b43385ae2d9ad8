// Package cleaner converts raw OSRS Wiki infobox values into typed record
// fields. Every function is a pure best-effort normalizer: malformed input
// resolves to a documented sentinel, never an error.
package cleaner

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	squareBrackets = regexp.MustCompile(`[\[\]]+`)
	trailingParens = regexp.MustCompile(` \([^()]*\)`)
	htmlComments   = regexp.MustCompile(`<!--(.*?)-->`)
	lineBreakTags  = regexp.MustCompile(`<br(.*)`)
	examineMarkup  = regexp.MustCompile(`[{}*"]`)
	versionMarkers = regexp.MustCompile(`'{2,}[^']+'*`)
)

// CleanWikitext is the generic cleaner shared by the property normalizers.
// It strips wikitext link brackets, trailing parenthetical annotations,
// HTML comments and line-break tags.
func CleanWikitext(value string) string {
	value = strings.TrimSpace(value)
	value = squareBrackets.ReplaceAllString(value, "")
	value = trailingParens.ReplaceAllString(value, "")
	value = htmlComments.ReplaceAllString(value, "")
	value = lineBreakTags.ReplaceAllString(value, "")
	return value
}

// Boolean converts "true"/"yes" (any case) to true; everything else,
// including empty input, is false.
func Boolean(value string) bool {
	value = CleanWikitext(value)
	switch strings.ToLower(value) {
	case "true", "yes":
		return true
	}
	return false
}

// Venomous is true when the value mentions venom at all; the wiki often
// records venomous monsters under the poisonous parameter.
func Venomous(value string) bool {
	return strings.Contains(strings.ToLower(value), "venom")
}

// Integer parses a numeric property. Absent or malformed input yields nil.
func Integer(value string) *int {
	value = CleanWikitext(value)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

// Float parses a fractional property such as slayer experience. Absent or
// malformed input yields nil.
func Float(value string) *float64 {
	value = CleanWikitext(value)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Stats parses a combat stat value. The wiki occasionally holds junk here,
// so failures resolve to zero rather than absence.
func Stats(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}

var dateLayouts = []string{
	"2 January 2006",
	"02 January 2006",
	"January 2, 2006",
	"2 January, 2006",
	"January 2 2006",
	"2006-01-02",
}

// ReleaseDate converts a wiki release date such as "[[31 October]] [[2005]]"
// into an ISO 8601 date string. Unparseable input yields nil.
func ReleaseDate(value string) *string {
	if value == "" {
		return nil
	}
	value = strings.ReplaceAll(value, "[", "")
	value = strings.ReplaceAll(value, "]", "")
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			iso := t.Format("2006-01-02")
			return &iso
		}
	}
	return nil
}

// attackTypeVocabulary is scanned in order; every term contained in the
// value is appended once.
var attackTypeVocabulary = []string{
	"melee",
	"slash",
	"crush",
	"stab",
	"ranged",
	"magic",
	"typeless",
	"dragonfire",
}

// AttackType matches the raw attack style text against the fixed attack
// type vocabulary. Unmatched text contributes nothing.
func AttackType(value string) []string {
	return matchVocabulary(value, attackTypeVocabulary, true)
}

var attributeVocabulary = []string{
	"demon",
	"dragon",
	"fiery",
	"golem",
	"kalphite",
	"leafy",
	"penance",
	"shade",
	"spectral",
	"undead",
	"vampyre",
	"xerician",
}

// Attributes matches the raw attributes text against the fixed creature
// attribute vocabulary.
func Attributes(value string) []string {
	return matchVocabulary(value, attributeVocabulary, false)
}

func matchVocabulary(value string, vocabulary []string, stripBrackets bool) []string {
	matched := []string{}
	if value == "" {
		return matched
	}
	value = strings.ToLower(value)
	if stripBrackets {
		value = strings.ReplaceAll(value, "[", "")
		value = strings.ReplaceAll(value, "]", "")
	}
	for _, term := range vocabulary {
		if strings.Contains(value, term) {
			matched = append(matched, term)
		}
	}
	return matched
}

// Category converts the slayer category ("cat") text into a list of
// category tags.
func Category(value string) []string {
	categories := []string{}
	if value == "" || strings.EqualFold(value, "no") || strings.Contains(value, "<!--") {
		return categories
	}

	value = CleanWikitext(value)
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, "dagannoths", "dagannoth")

	if idx := strings.Index(value, "|"); idx >= 0 {
		value = value[idx+1:]
		if idx := strings.Index(value, "|"); idx >= 0 {
			value = value[:idx]
		}
	}

	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			categories = append(categories, part)
		}
	}
	return categories
}

// SlayerMasters converts the assignedby text into a list of lowercase
// slayer master names. The legacy "steve" alias is folded into "nieve"
// without creating a duplicate.
func SlayerMasters(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" || strings.HasPrefix(strings.ToLower(value), "no") {
		return []string{}
	}

	masters := []string{}
	for _, part := range strings.Split(value, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			masters = append(masters, part)
		}
	}

	steve := -1
	hasNieve := false
	for i, m := range masters {
		if m == "steve" {
			steve = i
		}
		if m == "nieve" {
			hasNieve = true
		}
	}
	if steve >= 0 {
		masters = append(masters[:steve], masters[steve+1:]...)
		if !hasNieve {
			masters = append(masters, "nieve")
		}
	}
	return masters
}

// Examine cleans the examine text: first line only, markup characters
// stripped, the common mojibake ellipsis repaired and versioned text
// markers (runs of repeated apostrophes) removed.
func Examine(value string) string {
	value = CleanWikitext(value)

	if idx := strings.Index(value, "\n"); idx >= 0 {
		value = value[:idx]
	}

	value = examineMarkup.ReplaceAllString(value, "")
	value = strings.ReplaceAll(value, "â€¦", "...")
	value = versionMarkers.ReplaceAllString(value, "")

	return strings.TrimSpace(value)
}
