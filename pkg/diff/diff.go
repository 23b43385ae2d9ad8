// Package diff structurally compares a freshly built monster record
// against the persisted record from a prior run.
package diff

import (
	"reflect"
	"sort"

	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/monsters"
)

// FieldChange records one modified field of a drop retained across runs.
type FieldChange struct {
	Drop  string
	Field string
	Old   interface{}
	New   interface{}
}

// Report is the outcome of comparing a record against its prior version.
type Report struct {
	New               bool
	ChangedProperties []string
	DropChanges       []FieldChange
}

// Empty reports whether the comparison found nothing to surface.
func (r Report) Empty() bool {
	return !r.New && len(r.ChangedProperties) == 0 && len(r.DropChanges) == 0
}

// ignoredProperties are bookkeeping fields that change on every run.
var ignoredProperties = map[string]struct{}{
	"last_updated": {},
}

// Compare diffs a finalized record against the persisted prior record.
// A nil prior record reports a new entity and no diff is computed.
// Property comparison is order-insensitive; the drop-list diff keys drops
// by name and suppresses pure additions and removals.
func Compare(prior map[string]interface{}, current *monsters.Monster) (Report, error) {
	if prior == nil {
		return Report{New: true}, nil
	}
	currentMap, err := current.ToMap()
	if err != nil {
		return Report{}, err
	}

	var report Report

	keys := make(map[string]struct{}, len(prior)+len(currentMap))
	for k := range prior {
		keys[k] = struct{}{}
	}
	for k := range currentMap {
		keys[k] = struct{}{}
	}

	for k := range keys {
		if k == "drops" {
			continue
		}
		if _, ignored := ignoredProperties[k]; ignored {
			continue
		}
		if !equalValues(prior[k], currentMap[k]) {
			report.ChangedProperties = append(report.ChangedProperties, k)
		}
	}
	sort.Strings(report.ChangedProperties)

	report.DropChanges = compareDrops(asDropList(prior["drops"]), asDropList(currentMap["drops"]))
	return report, nil
}

func asDropList(v interface{}) []map[string]interface{} {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		if drop, ok := item.(map[string]interface{}); ok {
			out = append(out, drop)
		}
	}
	return out
}

// compareDrops reports field-level changes on drops present in both
// versions. Added and removed lines are expected churn and are not
// reported.
func compareDrops(prior, current []map[string]interface{}) []FieldChange {
	priorByName := make(map[string]map[string]interface{}, len(prior))
	for _, drop := range prior {
		if name, ok := drop["name"].(string); ok {
			priorByName[name] = drop
		}
	}

	var changes []FieldChange
	for _, drop := range current {
		name, ok := drop["name"].(string)
		if !ok {
			continue
		}
		old, retained := priorByName[name]
		if !retained {
			continue
		}

		fields := make(map[string]struct{}, len(drop)+len(old))
		for f := range drop {
			fields[f] = struct{}{}
		}
		for f := range old {
			fields[f] = struct{}{}
		}
		ordered := make([]string, 0, len(fields))
		for f := range fields {
			ordered = append(ordered, f)
		}
		sort.Strings(ordered)

		for _, f := range ordered {
			if !equalValues(old[f], drop[f]) {
				changes = append(changes, FieldChange{Drop: name, Field: f, Old: old[f], New: drop[f]})
			}
		}
	}
	return changes
}

// equalValues compares JSON values structurally. Lists compare as
// multisets so reordering alone never counts as a change.
func equalValues(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	switch av := a.(type) {
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		used := make([]bool, len(bv))
		for _, x := range av {
			found := false
			for i, y := range bv {
				if !used[i] && equalValues(x, y) {
					used[i] = true
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, x := range av {
			y, ok := bv[k]
			if !ok || !equalValues(x, y) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}
