package builder

import (
	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/wikitext"
)

// FieldResolver selects the correct raw infobox value for a logical
// property, accounting for per-variant version suffixes. It only selects
// raw markup text; it never normalizes.
type FieldResolver struct {
	template *wikitext.Template
	suffix   string
}

// NewFieldResolver binds a resolver to one entity's version context. An
// empty suffix means the template is unversioned for this entity.
func NewFieldResolver(template *wikitext.Template, suffix string) *FieldResolver {
	return &FieldResolver{template: template, suffix: suffix}
}

// Resolve returns the raw value for key, trying the versioned key first
// and falling back to the bare key. The second return value is false when
// neither exists.
func (r *FieldResolver) Resolve(key string) (string, bool) {
	if r.suffix != "" {
		if v, ok := r.template.Get(key + r.suffix); ok {
			return v, true
		}
	}
	return r.template.Get(key)
}

// VersionSuffix derives the version context for one entity: its entry in
// the template's versioned-id mapping, else "1" when the template is
// versioned at all (unspecified variants fall back to the first declared
// variant), else the empty suffix.
func VersionSuffix(template *wikitext.Template, monsterID int) string {
	if suffix, ok := template.VersionedIDs()[monsterID]; ok {
		return suffix
	}
	if template.IsVersioned() {
		return "1"
	}
	return ""
}
