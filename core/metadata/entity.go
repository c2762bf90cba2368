package metadata

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Inheritance is the ORM mapping strategy of an entity hierarchy.
type Inheritance string

const (
	// InheritanceNone means the entity takes part in no mapped hierarchy.
	InheritanceNone Inheritance = "none"
	// InheritanceSingleTable stores the whole hierarchy in one table.
	InheritanceSingleTable Inheritance = "single_table"
	// InheritanceJoined gives each level of the hierarchy its own table.
	InheritanceJoined Inheritance = "joined"
	// InheritanceTablePerClass gives each concrete class a full table.
	InheritanceTablePerClass Inheritance = "table_per_class"
)

// Declaration is one raw index declaration attached to an entity.
type Declaration struct {
	// Name is the explicit index name. Empty means generated from content.
	Name string `yaml:"name" json:"name,omitempty"`
	// Columns are the indexed columns or expressions in order.
	Columns Columns `yaml:"columns" json:"columns"`
	// Unique creates a unique index.
	Unique bool `yaml:"unique" json:"unique,omitempty"`
	// Using is the access method.
	Using string `yaml:"using" json:"using,omitempty"`
	// Where is a partial index predicate.
	Where string `yaml:"where" json:"where,omitempty"`
}

// Entity is the mapping metadata of one entity class.
type Entity struct {
	// ID identifies the entity, e.g. its fully qualified type name.
	ID string `yaml:"id"`
	// Table is the bare table name.
	Table string `yaml:"table"`
	// Schema is the explicit schema. Empty means the current schema.
	Schema string `yaml:"schema"`
	// Abstract entities are never mapped on their own; their declarations
	// are applied to each concrete descendant.
	Abstract bool `yaml:"abstract"`
	// Inheritance is the strategy of the hierarchy this entity belongs to.
	Inheritance Inheritance `yaml:"inheritance"`
	// Parent is the ID of the direct superclass, if any.
	Parent string `yaml:"parent"`
	// Indexes are the declarations made directly on this entity.
	Indexes []Declaration `yaml:"indexes"`
}

// Columns accepts either a single column or a list when decoded from YAML.
type Columns []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Columns) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*c = Columns{single}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*c = list
		return nil
	default:
		return fmt.Errorf("line %d: columns must be a string or a list of strings", node.Line)
	}
}
