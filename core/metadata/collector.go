package metadata

import (
	"index-manager/core/index"
)

// Collector turns entity metadata into the desired index set.
// The abstract-ancestor lookup is computed once in NewCollector.
type Collector struct {
	entities    []Entity
	ancestors   map[string][]*Entity
	descendants map[string]int
}

// NewCollector indexes the entity graph.
func NewCollector(entities []Entity) *Collector {
	byID := make(map[string]*Entity, len(entities))
	for i := range entities {
		byID[entities[i].ID] = &entities[i]
	}

	ancestors := make(map[string][]*Entity)
	descendants := make(map[string]int)
	for i := range entities {
		e := &entities[i]
		if e.Abstract {
			continue
		}
		ancestors[e.ID] = abstractAncestors(e, byID)
		for _, a := range ancestors[e.ID] {
			descendants[a.ID]++
		}
	}

	return &Collector{entities: entities, ancestors: ancestors, descendants: descendants}
}

// abstractAncestors walks the parent chain of e, nearest first, and returns the
// abstract entities on it. A cycle in the chain ends the walk.
func abstractAncestors(e *Entity, byID map[string]*Entity) []*Entity {
	var out []*Entity
	seen := map[string]struct{}{e.ID: {}}
	for parentID := e.Parent; parentID != ""; {
		if _, loop := seen[parentID]; loop {
			break
		}
		seen[parentID] = struct{}{}

		parent, ok := byID[parentID]
		if !ok {
			break
		}
		if parent.Abstract {
			out = append(out, parent)
		}
		parentID = parent.Parent
	}
	return out
}

// Collect builds the desired indexes keyed by "schema.name".
//
// Concrete entities contribute their own declarations on their own table. Declarations
// of abstract ancestors are bound to the ancestor's table under joined inheritance and
// to the concrete table otherwise. When an ancestor has several concrete descendants,
// explicit names bound through it get a "_<table>" suffix so siblings do not collide.
// When allSchemas is false, indexes resolving to a schema other than currentSchema are
// left out, mirroring the catalog query scope.
func (c *Collector) Collect(currentSchema string, allSchemas bool) map[string]*index.Spec {
	out := make(map[string]*index.Spec)

	for i := range c.entities {
		e := &c.entities[i]
		if e.Abstract {
			continue
		}

		collect(out, e, e.Table, currentSchema, allSchemas, false)

		for _, parent := range c.ancestors[e.ID] {
			table := e.Table
			if e.Inheritance == InheritanceJoined {
				table = parent.Table
			}
			collect(out, parent, table, currentSchema, allSchemas, c.descendants[parent.ID] > 1)
		}
	}

	return out
}

func collect(out map[string]*index.Spec, declaring *Entity, table, currentSchema string, allSchemas, tablePostfix bool) {
	for _, d := range declaring.Indexes {
		schema := declaring.Schema
		if schema == "" {
			schema = currentSchema
		}
		if !allSchemas && schema != currentSchema {
			continue
		}

		name := d.Name
		if name != "" && tablePostfix {
			name += "_" + table
		}

		spec := index.New(index.Params{
			TableName:     table,
			Schema:        schema,
			CurrentSchema: currentSchema,
			Columns:       d.Columns,
			Name:          name,
			Unique:        d.Unique,
			Using:         d.Using,
			Where:         d.Where,
		})
		out[spec.Key()] = spec
	}
}
