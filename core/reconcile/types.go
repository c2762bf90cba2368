package reconcile

import (
	"index-manager/core/ddl"
	"index-manager/core/index"
)

// Spec defines the configuration for a reconciliation operation.
// It bundles the desired-index source, the catalog, the executor and the DDL platform.
type Spec struct {
	// Source provides the desired indexes.
	Source Source

	// Catalog reports the managed indexes present in the database.
	Catalog Catalog

	// Executor runs CREATE and DROP statements.
	Executor Executor

	// Platform renders the statements. It is resolved once per connection.
	Platform ddl.Platform

	// Validator checks desired indexes before creation. Nil uses the default allow-list.
	Validator *index.Validator

	// SearchInAllSchemas extends the reconciliation to every schema instead of
	// only the connection's current schema.
	SearchInAllSchemas bool
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionDrop drops a managed index that is no longer declared.
	ActionDrop ActionType = "drop"
	// ActionCreate creates a declared index missing from the database.
	ActionCreate ActionType = "create"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the "schema.name" identity of the index.
	Key string `json:"key"`

	// Table is the table the index is created on. Empty for drops.
	Table string `json:"table,omitempty"`

	// SQL is the rendered statement, without a trailing semicolon.
	SQL string `json:"sql"`

	// Index is the desired index for ActionCreate, or the index.ForDrop target for ActionDrop.
	Index *index.Spec `json:"-"`
}

// Plan contains the planned actions, drops first.
type Plan struct {
	// CurrentSchema is the connection's schema at planning time.
	CurrentSchema string `json:"current_schema"`

	// Actions contains planned mutation operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Drops returns the planned drop actions.
func (p *Plan) Drops() []Action {
	return p.filter(ActionDrop)
}

// Creates returns the planned create actions.
func (p *Plan) Creates() []Action {
	return p.filter(ActionCreate)
}

func (p *Plan) filter(t ActionType) []Action {
	out := []Action{}
	for _, a := range p.Actions {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

// Summary provides aggregate statistics for a plan.
type Summary struct {
	// Desired counts the declared indexes.
	Desired int `json:"desired"`

	// Existing counts the managed indexes found in the catalog.
	Existing int `json:"existing"`

	// Creates counts planned create actions.
	Creates int `json:"creates"`

	// Drops counts planned drop actions.
	Drops int `json:"drops"`

	// NothingToCreate is set when every declared index already exists.
	NothingToCreate bool `json:"nothing_to_create"`

	// NothingToDrop is set when every existing index is still declared.
	NothingToDrop bool `json:"nothing_to_drop"`
}

// Options controls how a plan is applied.
type Options struct {
	// DryRun renders the statements instead of executing them.
	DryRun bool

	// ContinueOnError records a failing statement and moves on instead of aborting.
	ContinueOnError bool
}

// Result is the outcome of applying a plan.
type Result struct {
	// Created counts indexes created.
	Created int `json:"created"`

	// Dropped counts indexes dropped.
	Dropped int `json:"dropped"`

	// Skipped counts declared indexes rejected by validation.
	Skipped int `json:"skipped"`

	// Failed counts statements that failed under ContinueOnError.
	Failed int `json:"failed"`

	// Lines is the ordered, human-readable run output.
	Lines []string `json:"lines"`

	// Violations holds the validation failures of skipped indexes by key.
	Violations map[string][]index.Violation `json:"violations,omitempty"`

	// NothingCreated is set when the plan had no create actions.
	NothingCreated bool `json:"nothing_created"`

	// NothingDropped is set when the plan had no drop actions.
	NothingDropped bool `json:"nothing_dropped"`

	// SQL holds the statements rendered in dry-run mode, each ending in ";".
	SQL []string `json:"sql,omitempty"`
}
