package reconcile

import (
	"context"

	"index-manager/core/index"
)

// Source provides the desired indexes keyed by "schema.name".
// metadata.Collector is the production implementation.
type Source interface {
	// Collect builds the desired set for the given current schema. When allSchemas
	// is false, indexes outside currentSchema must be left out.
	Collect(currentSchema string, allSchemas bool) map[string]*index.Spec
}

// Catalog reports the managed indexes present in the database.
// database.Inspector is the production implementation.
type Catalog interface {
	// CurrentSchema returns the connection's current schema.
	CurrentSchema(ctx context.Context) (string, error)

	// IndexNames lists the managed indexes as "schema.name" in catalog order.
	IndexNames(ctx context.Context, allSchemas bool) ([]string, error)
}

// Executor runs index DDL against the database.
// database.Executor is the production implementation.
type Executor interface {
	// CreateIndex creates the index described by spec.
	CreateIndex(ctx context.Context, spec *index.Spec) error

	// DropIndex drops the index identified by spec.Key(). Drop targets come from
	// index.ForDrop, so only Schema and Name are set.
	DropIndex(ctx context.Context, spec *index.Spec) error
}
