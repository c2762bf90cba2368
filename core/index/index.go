package index

import "strings"

// Prefix marks every index owned by the index manager.
const Prefix = "i_cindex_"

// Params holds the raw values used to build a Spec.
type Params struct {
	// TableName is the bare table name the index is created on.
	TableName string
	// Schema is the schema owning the table.
	Schema string
	// CurrentSchema is the connection's default schema for this run.
	CurrentSchema string
	// Columns lists the indexed columns or expressions in order.
	Columns []string
	// Name is the explicit index name. Empty means generated.
	Name string
	// Unique creates a unique index.
	Unique bool
	// Using is the index access method (btree, hash, gin, gist...).
	Using string
	// Where is a partial index predicate.
	Where string
}

// Spec describes one desired index. It is never mutated after New returns.
type Spec struct {
	tableName     string
	schema        string
	currentSchema string
	columns       []string
	name          string
	unique        bool
	using         string
	where         string
}

// New builds a Spec from params. Blank columns are dropped, an explicit name is
// lower-cased and prefixed, and a missing name is generated from the index content.
// PostgreSQL folds unquoted identifiers to lower case, so the catalog reports
// explicit names in lower case too.
func New(p Params) *Spec {
	s := &Spec{
		tableName:     p.TableName,
		schema:        p.Schema,
		currentSchema: p.CurrentSchema,
		columns:       filterColumns(p.Columns),
		unique:        p.Unique,
		using:         p.Using,
		where:         p.Where,
	}

	if p.Name != "" {
		s.name = WithPrefix(strings.ToLower(p.Name))
		return s
	}

	s.name = GenerateName(s.QualifiedTable(), s.columns, s.using, s.where, s.unique)
	return s
}

// ForDrop synthesizes a Spec for an existing catalog entry given as "schema.name".
// Only Schema, Name and Key are meaningful on the result.
func ForDrop(qualified string) *Spec {
	schema, name, found := strings.Cut(qualified, ".")
	if !found {
		return &Spec{name: WithPrefix(schema)}
	}
	return &Spec{schema: schema, currentSchema: schema, name: WithPrefix(name)}
}

// TableName returns the bare table name.
func (s *Spec) TableName() string { return s.tableName }

// QualifiedTable returns the table name prefixed with its schema when the schema
// differs from the current one.
func (s *Spec) QualifiedTable() string {
	if s.schema != s.currentSchema {
		return s.schema + "." + s.tableName
	}
	return s.tableName
}

// Schema returns the schema owning the index.
func (s *Spec) Schema() string { return s.schema }

// Name returns the prefixed index name.
func (s *Spec) Name() string { return s.name }

// Columns returns a copy of the indexed columns.
func (s *Spec) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Unique reports whether the index is unique.
func (s *Spec) Unique() bool { return s.unique }

// Using returns the access method, or "" when the database default applies.
func (s *Spec) Using() string { return s.using }

// Where returns the partial index predicate, or "".
func (s *Spec) Where() string { return s.where }

// Key is the identity used when diffing desired against existing indexes.
func (s *Spec) Key() string {
	return s.schema + "." + s.name
}

func filterColumns(columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}
