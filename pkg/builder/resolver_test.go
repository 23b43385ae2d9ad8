package builder

import (
	"testing"

	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/wikitext"
)

const versionedInfobox = `{{Infobox Monster
|name = Sheep
|version1 = White
|version2 = Black
|id1 = 100
|id2 = 101,102
|hitpoints1 = 50
|hitpoints = 20
|examine = Baa.
}}`

func parseInfobox(t *testing.T, raw string) *wikitext.Template {
	t.Helper()
	template, ok := wikitext.ExtractInfobox(raw, "infobox monster")
	if !ok {
		t.Fatal("Infobox not found")
	}
	return template
}

func TestVersionSuffix(t *testing.T) {
	template := parseInfobox(t, versionedInfobox)

	if got := VersionSuffix(template, 100); got != "1" {
		t.Fatalf("Expected suffix 1 for id 100, got %q", got)
	}
	if got := VersionSuffix(template, 102); got != "2" {
		t.Fatalf("Expected suffix 2 for id 102, got %q", got)
	}
	// Unlisted ids on a versioned template fall back to the first variant.
	if got := VersionSuffix(template, 999); got != "1" {
		t.Fatalf("Expected fallback suffix 1, got %q", got)
	}

	unversioned := parseInfobox(t, `{{Infobox Monster|name = Rat|id = 247}}`)
	if got := VersionSuffix(unversioned, 247); got != "" {
		t.Fatalf("Unversioned template should have empty suffix, got %q", got)
	}
}

func TestResolve(t *testing.T) {
	template := parseInfobox(t, versionedInfobox)

	// The versioned key wins over the bare key.
	resolver := NewFieldResolver(template, "1")
	if got, ok := resolver.Resolve("hitpoints"); !ok || got != "50" {
		t.Fatalf("Resolve(hitpoints) with suffix 1 = %q %v", got, ok)
	}

	// No hitpoints2 declared, so version 2 falls back to the bare key.
	resolver = NewFieldResolver(template, "2")
	if got, ok := resolver.Resolve("hitpoints"); !ok || got != "20" {
		t.Fatalf("Resolve(hitpoints) with suffix 2 = %q %v", got, ok)
	}

	// Unsuffixed keys resolve for every version.
	if got, ok := resolver.Resolve("examine"); !ok || got != "Baa." {
		t.Fatalf("Resolve(examine) = %q %v", got, ok)
	}

	if _, ok := resolver.Resolve("attack speed"); ok {
		t.Fatal("Missing key should not resolve")
	}
}
