package metadata

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"gorm.io/gorm/schema"
)

// Model registers a GORM model as an entity.
type Model struct {
	// Value is a zero value or pointer of the model struct.
	Value any
	// Abstract marks base structs that are only embedded by other models.
	Abstract bool
	// Inheritance is the mapping strategy of the hierarchy.
	Inheritance Inheritance
	// Indexes are the index declarations made on this model itself.
	Indexes []Declaration
}

// FromModels builds entity metadata from GORM models.
//
// Table names come from GORM's schema parser, so TableName methods and the naming
// strategy are honoured, and a "schema.table" TableName sets the entity schema.
// Embedding one registered model in another makes the embedding model its subclass.
// Note that Go promotes TableName from an embedded struct, so concrete models
// embedding a base with TableName should declare their own.
func FromModels(namer schema.Namer, models ...Model) ([]Entity, error) {
	if namer == nil {
		namer = schema.NamingStrategy{}
	}

	cache := &sync.Map{}
	types := make([]reflect.Type, 0, len(models))
	ids := make(map[reflect.Type]string, len(models))
	entities := make([]Entity, 0, len(models))

	for i, m := range models {
		if m.Value == nil {
			return nil, fmt.Errorf("model #%d has no value", i+1)
		}
		t := reflect.Indirect(reflect.ValueOf(m.Value)).Type()
		if t.Kind() != reflect.Struct {
			return nil, fmt.Errorf("model #%d: %s is not a struct", i+1, t)
		}

		parsed, err := schema.Parse(m.Value, cache, namer)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model %s: %w", t, err)
		}

		schemaName, table := splitTable(parsed.Table)
		id := t.PkgPath() + "." + t.Name()
		inheritance := m.Inheritance
		if inheritance == "" {
			inheritance = InheritanceNone
		}

		types = append(types, t)
		ids[t] = id
		entities = append(entities, Entity{
			ID:          id,
			Table:       table,
			Schema:      schemaName,
			Abstract:    m.Abstract,
			Inheritance: inheritance,
			Indexes:     m.Indexes,
		})
	}

	for i, t := range types {
		entities[i].Parent = embeddedParent(t, ids)
	}

	return entities, nil
}

// embeddedParent returns the ID of the first registered model embedded in t.
func embeddedParent(t reflect.Type, ids map[reflect.Type]string) string {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if id, ok := ids[ft]; ok {
			return id
		}
	}
	return ""
}

func splitTable(table string) (schemaName, name string) {
	if s, n, found := strings.Cut(table, "."); found {
		return s, n
	}
	return "", table
}
