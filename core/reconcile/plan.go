package reconcile

import (
	"sort"

	"index-manager/core/index"
)

// BuildPlan computes the minimal set of actions turning existing into desired.
//
// Drops are the existing names missing from desired, in catalog order. Creates are the
// desired indexes missing from existing, sorted by key. Since every attribute of an
// index feeds its generated name, key equality is treated as definition equality and
// changed definitions show up as a drop plus a create. Statements are not rendered.
func BuildPlan(desired map[string]*index.Spec, existing []string) *Plan {
	present := make(map[string]struct{}, len(existing))
	actions := []Action{}

	for _, key := range existing {
		if _, dup := present[key]; dup {
			continue
		}
		present[key] = struct{}{}
		if _, ok := desired[key]; !ok {
			actions = append(actions, Action{Type: ActionDrop, Key: key, Index: index.ForDrop(key)})
		}
	}
	drops := len(actions)

	keys := make([]string, 0, len(desired))
	for key := range desired {
		if _, ok := present[key]; !ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		spec := desired[key]
		actions = append(actions, Action{
			Type:  ActionCreate,
			Key:   key,
			Table: spec.QualifiedTable(),
			Index: spec,
		})
	}

	return &Plan{
		Actions: actions,
		Summary: Summary{
			Desired:         len(desired),
			Existing:        len(present),
			Creates:         len(keys),
			Drops:           drops,
			NothingToCreate: len(keys) == 0,
			NothingToDrop:   drops == 0,
		},
	}
}
