package wikitext

import (
	"strconv"
	"strings"
)

// Template is one parsed MediaWiki template. Parameter keys are lowercased
// and kept in declaration order; unnamed parameters are numbered from "1"
// the way MediaWiki does.
type Template struct {
	name   string
	keys   []string
	values map[string]string
}

// ExtractTemplates returns the raw wikitext of every occurrence of the named
// template within pageText. Name matching is case-insensitive. Nested
// templates inside a parameter value are kept verbatim.
func ExtractTemplates(pageText, name string) []string {
	lower := strings.ToLower(pageText)
	marker := "{{" + strings.ToLower(name)

	var out []string
	i := 0
	for i < len(lower) {
		j := strings.Index(lower[i:], marker)
		if j < 0 {
			break
		}
		start := i + j
		after := start + len(marker)
		// The name must end at a delimiter so "dropsline" does not match
		// "dropslinex". A "{" delimiter covers inline vardefine templates.
		if after < len(pageText) && !isNameDelimiter(pageText[after]) {
			i = after
			continue
		}
		end := matchBraces(pageText, start)
		if end < 0 {
			break
		}
		out = append(out, pageText[start:end])
		i = end
	}
	return out
}

func isNameDelimiter(c byte) bool {
	switch c {
	case '|', '}', '{', '\n', '\r', ' ', '\t':
		return true
	}
	return false
}

// matchBraces returns the index just past the "}}" closing the template
// opened at start, or -1 when the page text is truncated.
func matchBraces(s string, start int) int {
	depth := 0
	i := start
	for i < len(s) {
		switch {
		case strings.HasPrefix(s[i:], "{{"):
			depth++
			i += 2
		case strings.HasPrefix(s[i:], "}}"):
			depth--
			i += 2
			if depth == 0 {
				return i
			}
		default:
			i++
		}
	}
	return -1
}

// ParseTemplate parses a single raw template into key/value parameters.
func ParseTemplate(raw string) *Template {
	inner := strings.TrimSpace(raw)
	inner = strings.TrimPrefix(inner, "{{")
	inner = strings.TrimSuffix(inner, "}}")

	parts := splitTopLevel(inner)
	t := &Template{values: make(map[string]string)}
	if len(parts) == 0 {
		return t
	}
	t.name = strings.TrimSpace(parts[0])

	positional := 0
	for _, part := range parts[1:] {
		key, value, found := strings.Cut(part, "=")
		if !found {
			positional++
			key = strconv.Itoa(positional)
			value = part
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		if _, exists := t.values[key]; !exists {
			t.keys = append(t.keys, key)
		}
		t.values[key] = strings.TrimSpace(value)
	}
	return t
}

// splitTopLevel splits template content on "|" characters that are not
// nested inside {{...}} or [[...]].
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	last := 0
	i := 0
	for i < len(s) {
		switch {
		case strings.HasPrefix(s[i:], "{{") || strings.HasPrefix(s[i:], "[["):
			depth++
			i += 2
		case strings.HasPrefix(s[i:], "}}") || strings.HasPrefix(s[i:], "]]"):
			depth--
			i += 2
		case s[i] == '|' && depth == 0:
			parts = append(parts, s[last:i])
			i++
			last = i
		default:
			i++
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// ExtractInfobox finds and parses the first occurrence of the named
// template. The second return value is false when the page has none.
func ExtractInfobox(pageText, name string) (*Template, bool) {
	found := ExtractTemplates(pageText, name)
	if len(found) == 0 {
		return nil, false
	}
	return ParseTemplate(found[0]), true
}

// Name returns the template name as written on the page.
func (t *Template) Name() string {
	return t.name
}

// Get returns the trimmed value for a parameter key (lowercase).
func (t *Template) Get(key string) (string, bool) {
	v, ok := t.values[strings.ToLower(key)]
	if !ok {
		return "", false
	}
	return v, true
}

// Keys returns parameter keys in declaration order.
func (t *Template) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// IsVersioned reports whether the infobox describes multiple variants of
// the entity through numbered parameter suffixes.
func (t *Template) IsVersioned() bool {
	_, ok := t.values["version1"]
	return ok
}

// Versions returns the declared version suffixes, in order ("1", "2", ...).
// An unversioned template returns nil.
func (t *Template) Versions() []string {
	var out []string
	for v := 1; ; v++ {
		suffix := strconv.Itoa(v)
		if _, ok := t.values["version"+suffix]; !ok {
			break
		}
		out = append(out, suffix)
	}
	return out
}

// VersionedIDs maps each declared game id to its version suffix. A single
// idN parameter may hold several comma-separated ids.
func (t *Template) VersionedIDs() map[int]string {
	out := make(map[int]string)
	for v := 1; ; v++ {
		suffix := strconv.Itoa(v)
		raw, ok := t.Get("id" + suffix)
		if !ok {
			break
		}
		for _, part := range strings.Split(raw, ",") {
			if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				out[id] = suffix
			}
		}
	}
	return out
}
