package cleaner

import (
	"strconv"
	"strings"

	"github.com/simonboy77/osrsbox-enchanced-monsters/internal/utils"
)

// TokenKind classifies one lexical unit of a max hit entry.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenNumeric
	TokenQualifier // parenthetical qualifier, parens stripped
	TokenReference // {{...}} reference
)

// Token is one lexical unit of a max hit string.
type Token struct {
	Kind TokenKind
	Text string
}

// SplitMaxHitEntries splits a raw comma-separated max hit (or attack style)
// string into lowercased, bracket-free entries.
func SplitMaxHitEntries(value string) []string {
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, "[", "")
	value = strings.ReplaceAll(value, "]", "")

	var entries []string
	for _, part := range strings.Split(value, ",") {
		entries = append(entries, strings.TrimSpace(part))
	}
	return entries
}

// TokenizeMaxHit lexes each max hit entry into an ordered token sequence.
func TokenizeMaxHit(entries []string) [][]Token {
	tokensList := make([][]Token, 0, len(entries))
	for _, entry := range entries {
		tokensList = append(tokensList, tokenizeEntry(entry))
	}
	return tokensList
}

func tokenizeEntry(s string) []Token {
	var tokens []Token
	i := 0
	for i < len(s) {
		if s[i] == ' ' {
			i++
			continue
		}

		if s[i] == '(' {
			if j := strings.IndexByte(s[i:], ')'); j >= 0 {
				tokens = append(tokens, Token{Kind: TokenQualifier, Text: s[i+1 : i+j]})
				i += j + 1
				continue
			}
		}

		if strings.HasPrefix(s[i:], "{{") {
			if j := strings.Index(s[i:], "}}"); j >= 0 {
				tokens = append(tokens, Token{Kind: TokenReference, Text: s[i : i+j+2]})
				i += j + 2
				continue
			}
		}

		// Maximal run of uniform digit class, broken by a space.
		isNumber := isDigit(s[i])
		j := i + 1
		for j < len(s) && s[j] != ' ' && isDigit(s[j]) == isNumber {
			j++
		}
		text := strings.ReplaceAll(s[i:j], "(", "")
		text = strings.ReplaceAll(text, ")", "")
		kind := TokenText
		if isNumber {
			kind = TokenNumeric
		}
		tokens = append(tokens, Token{Kind: kind, Text: text})
		i = j
	}
	return tokens
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// legitFinalTokens is the catalog of recognized final tokens for a max hit
// entry, built once and never mutated.
var legitFinalTokens = buildSet(
	// ignored entries
	"pickpocket failure", "on wise old man", "with anti-dragon shield",
	// standard styles
	"melee", "stab", "slash", "crush", "magic", "ranged",
	"normal", "regular hit", "standard", "default",
	// two styles in one line
	"melee; magic", "ranged/magic", "magic/ranged", "ranged and magic",
	// protection item needed
	"dragonfire", "icy breath",
	// area of effect or special attack
	"stomp", "special attack", "with explosion", "special",
	"special direct hit", "special indirect hit", "range special",
	"dragonfire bomb/special", "dragonfire; tsunami",
	"dragonfire; fire traps; tsunami", "flies", "dash", "bounce",
	"bounce after standing underneath",
	// unknown
	"varies",
	// special cases: Dharok, Verac, death wing, Tok-Xil, thrower troll,
	// alchemical hydra
	"hitpoints", "protect from melee", "approx", "ranged approx.",
	"melee?", "empowered",
)

func buildSet(terms ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return set
}

// LegitimateMaxHit reports whether a tokenized max hit entry matches the
// catalog of recognized patterns.
func LegitimateMaxHit(tokens []Token) bool {
	if len(tokens) == 0 {
		return false
	}
	final := tokens[len(tokens)-1]

	if final.Kind == TokenNumeric {
		return true
	}
	if tokens[0].Text == "0" {
		return true
	}
	if _, ok := legitFinalTokens[final.Text]; ok {
		return true
	}
	if strings.Contains(final.Text, "without") {
		return true
	}
	if strings.Contains(final.Text, "may be higher than 47") {
		return true
	}
	if len(tokens) > 1 && tokens[1].Text == "+" { // approximate hit
		return true
	}
	if len(tokens) > 2 {
		if tokens[1].Text == "x" { // double hit
			return true
		}
		if tokens[1].Text == "/" { // multiple damage possibilities
			return true
		}
		if final.Kind == TokenReference {
			return true
		}
	}
	return false
}

// MaxHitByAttackStyle pairs max hit values with attack styles. Pairing is
// best-effort: a lone numeric value with a lone resolvable style pairs
// directly, otherwise values annotated "(melee)", "(magic)" or "(ranged)"
// are matched by containment. When no reliable pairing exists the
// ranged/magic/melee fallback triple is returned.
func MaxHitByAttackStyle(maxHitText, attackStyleText string) map[string]int {
	if maxHitText == "" || attackStyleText == "" {
		return map[string]int{StyleNone: 0}
	}

	maxHits := SplitMaxHitEntries(maxHitText)
	styles := SplitMaxHitEntries(attackStyleText)

	tokensList := TokenizeMaxHit(maxHits)
	for i, tokens := range tokensList {
		if !LegitimateMaxHit(tokens) {
			utils.Log.Warnf("unrecognized max hit pattern: %q", maxHits[i])
		}
	}

	out := make(map[string]int)
	for _, styleText := range styles {
		styleText = strings.TrimSpace(strings.ReplaceAll(styleText, "typeless", ""))
		canonical := CanonicalAttackStyle(styleText)
		if canonical == StyleUnknown || canonical == StyleNone {
			continue
		}

		if len(styles) == 1 && len(tokensList) == 1 {
			tokens := tokensList[0]
			if len(tokens) > 0 && tokens[0].Kind == TokenNumeric {
				if v, err := strconv.Atoi(tokens[0].Text); err == nil {
					out[canonical] = v
					continue
				}
			}
		}

		if v, ok := matchToStyle(maxHits, styleMarker(canonical)); ok {
			out[canonical] = v
		}
	}

	if len(out) == 0 {
		// Documented fallback when pairing is unreliable.
		return map[string]int{"ranged": 10, "magic": 20, "melee": 30}
	}
	return out
}

func styleMarker(canonical string) string {
	switch {
	case strings.HasPrefix(canonical, "melee"):
		return "(melee)"
	case canonical == StyleRangedMagic:
		return "(magic)"
	case strings.HasPrefix(canonical, "magic"):
		return "(magic)"
	case strings.HasPrefix(canonical, "ranged"):
		return "(ranged)"
	}
	return ""
}

func matchToStyle(entries []string, marker string) (int, bool) {
	if marker == "" {
		return 0, false
	}
	for _, entry := range entries {
		entry = strings.ReplaceAll(entry, "+", "")
		if !strings.Contains(entry, marker) {
			continue
		}
		if idx := strings.Index(entry, " "); idx > 0 {
			if v, err := strconv.Atoi(strings.TrimSpace(entry[:idx])); err == nil {
				return v, true
			}
		}
	}
	return 0, false
}
