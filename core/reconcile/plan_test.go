package reconcile

import (
	"sort"
	"testing"

	"index-manager/core/index"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSpec(table string, columns ...string) *index.Spec {
	return index.New(index.Params{
		TableName:     table,
		Schema:        "public",
		CurrentSchema: "public",
		Columns:       columns,
	})
}

func desiredOf(specs ...*index.Spec) map[string]*index.Spec {
	out := make(map[string]*index.Spec, len(specs))
	for _, s := range specs {
		out[s.Key()] = s
	}
	return out
}

func actionKeys(actions []Action) []string {
	out := []string{}
	for _, a := range actions {
		out = append(out, a.Key)
	}
	return out
}

func TestBuildPlan(t *testing.T) {
	users := newSpec("users", "email")
	orders := newSpec("orders", "created_at")
	items := newSpec("items", "sku")

	tests := []struct {
		name        string
		desired     map[string]*index.Spec
		existing    []string
		wantDrops   []string
		wantCreates []string
	}{
		{
			name:        "Empty",
			desired:     desiredOf(),
			existing:    nil,
			wantDrops:   []string{},
			wantCreates: []string{},
		},
		{
			name:        "Everything Missing",
			desired:     desiredOf(users, orders),
			existing:    nil,
			wantDrops:   []string{},
			wantCreates: sorted(users.Key(), orders.Key()),
		},
		{
			name:        "In Sync",
			desired:     desiredOf(users, orders),
			existing:    []string{orders.Key(), users.Key()},
			wantDrops:   []string{},
			wantCreates: []string{},
		},
		{
			name:        "Obsolete Only",
			desired:     desiredOf(),
			existing:    []string{"public.i_cindex_abc"},
			wantDrops:   []string{"public.i_cindex_abc"},
			wantCreates: []string{},
		},
		{
			name:        "Mixed Keeps Catalog Order For Drops",
			desired:     desiredOf(users, items),
			existing:    []string{"sales.i_cindex_z", users.Key(), "public.i_cindex_a"},
			wantDrops:   []string{"sales.i_cindex_z", "public.i_cindex_a"},
			wantCreates: []string{items.Key()},
		},
		{
			name:        "Duplicate Catalog Rows",
			desired:     desiredOf(),
			existing:    []string{"public.i_cindex_a", "public.i_cindex_a"},
			wantDrops:   []string{"public.i_cindex_a"},
			wantCreates: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := BuildPlan(tt.desired, tt.existing)

			if diff := cmp.Diff(tt.wantDrops, actionKeys(plan.Drops())); diff != "" {
				t.Errorf("drops mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantCreates, actionKeys(plan.Creates())); diff != "" {
				t.Errorf("creates mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, len(tt.wantDrops), plan.Summary.Drops)
			assert.Equal(t, len(tt.wantCreates), plan.Summary.Creates)
			assert.Equal(t, len(tt.wantDrops) == 0, plan.Summary.NothingToDrop)
			assert.Equal(t, len(tt.wantCreates) == 0, plan.Summary.NothingToCreate)
		})
	}
}

// Drops and creates partition the symmetric difference of the two key sets.
func TestBuildPlan_SetAlgebra(t *testing.T) {
	a, b, c, d := newSpec("a", "x"), newSpec("b", "x"), newSpec("c", "x"), newSpec("d", "x")
	desired := desiredOf(a, b, c)
	existing := []string{b.Key(), c.Key(), d.Key()}

	plan := BuildPlan(desired, existing)

	for _, drop := range plan.Drops() {
		assert.NotContains(t, desired, drop.Key)
		assert.Contains(t, existing, drop.Key)
	}
	for _, create := range plan.Creates() {
		assert.Contains(t, desired, create.Key)
		assert.NotContains(t, existing, create.Key)
		assert.Same(t, desired[create.Key], create.Index)
	}
	assert.Equal(t, []string{d.Key()}, actionKeys(plan.Drops()))
	assert.Equal(t, []string{a.Key()}, actionKeys(plan.Creates()))
	assert.Equal(t, 3, plan.Summary.Desired)
	assert.Equal(t, 3, plan.Summary.Existing)
}

func TestBuildPlan_DropsBeforeCreates(t *testing.T) {
	plan := BuildPlan(desiredOf(newSpec("a", "x")), []string{"public.i_cindex_old"})

	if assert.Len(t, plan.Actions, 2) {
		assert.Equal(t, ActionDrop, plan.Actions[0].Type)
		require.NotNil(t, plan.Actions[0].Index)
		assert.Equal(t, "public.i_cindex_old", plan.Actions[0].Index.Key())
		assert.Equal(t, "public", plan.Actions[0].Index.Schema())
		assert.Equal(t, ActionCreate, plan.Actions[1].Type)
		assert.Equal(t, "a", plan.Actions[1].Table)
	}
}

func sorted(keys ...string) []string {
	sort.Strings(keys)
	return keys
}
