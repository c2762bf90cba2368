package reconcile

import (
	"context"
	"errors"
	"testing"

	"index-manager/core/ddl"
	"index-manager/core/index"
	"index-manager/core/metadata"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockExecutor records executed statements.
type mockExecutor struct {
	mock.Mock
}

func (m *mockExecutor) CreateIndex(ctx context.Context, spec *index.Spec) error {
	args := m.Called(ctx, spec.Key())
	return args.Error(0)
}

func (m *mockExecutor) DropIndex(ctx context.Context, spec *index.Spec) error {
	args := m.Called(ctx, spec.Key())
	return args.Error(0)
}

// fakeCatalog is a static catalog.
type fakeCatalog struct {
	schema    string
	schemaErr error
	names     []string
	namesErr  error
	scoped    []bool
}

func (f *fakeCatalog) CurrentSchema(context.Context) (string, error) {
	return f.schema, f.schemaErr
}

func (f *fakeCatalog) IndexNames(_ context.Context, allSchemas bool) ([]string, error) {
	f.scoped = append(f.scoped, allSchemas)
	return f.names, f.namesErr
}

// staticSource serves a fixed desired set.
type staticSource map[string]*index.Spec

func (s staticSource) Collect(string, bool) map[string]*index.Spec {
	return s
}

func usersEmail() *index.Spec {
	return index.New(index.Params{
		TableName:     "users",
		Schema:        "public",
		CurrentSchema: "public",
		Columns:       []string{"email"},
		Unique:        true,
	})
}

func TestReconcileAndApply_DropsObsolete(t *testing.T) {
	executor := new(mockExecutor)
	executor.On("DropIndex", mock.Anything, "public.i_cindex_abc").Return(nil)

	spec := &Spec{
		Source:   staticSource{},
		Catalog:  &fakeCatalog{schema: "public", names: []string{"public.i_cindex_abc"}},
		Executor: executor,
		Platform: ddl.Postgres{},
	}

	plan, res, err := ReconcileAndApply(context.Background(), spec, Options{})
	require.NoError(t, err)

	assert.Equal(t, "public", plan.CurrentSchema)
	assert.Equal(t, []string{"public.i_cindex_abc"}, actionKeys(plan.Drops()))
	assert.Empty(t, plan.Creates())
	assert.Equal(t, 1, res.Dropped)
	assert.True(t, res.NothingCreated)
	assert.Equal(t, []string{
		"Index public.i_cindex_abc was dropped.",
		"No index was created",
	}, res.Lines)
	executor.AssertExpectations(t)
}

func TestReconcileAndApply_DryRun(t *testing.T) {
	executor := new(mockExecutor)
	desired := usersEmail()

	spec := &Spec{
		Source:   staticSource{desired.Key(): desired},
		Catalog:  &fakeCatalog{schema: "public", names: []string{"public.i_cindex_abc"}},
		Executor: executor,
		Platform: ddl.Postgres{},
	}

	_, res, err := ReconcileAndApply(context.Background(), spec, Options{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, []string{
		`DROP INDEX "public".i_cindex_abc;`,
		"CREATE UNIQUE INDEX i_cindex_unique_0ea73cca600235b8398178d4f33a9477 ON users (email);",
	}, res.SQL)
	assert.Equal(t, res.SQL, res.Lines)
	assert.Zero(t, res.Created)
	assert.Zero(t, res.Dropped)
	executor.AssertNotCalled(t, "DropIndex", mock.Anything, mock.Anything)
	executor.AssertNotCalled(t, "CreateIndex", mock.Anything, mock.Anything)
}

func TestReconcileAndApply_InSync(t *testing.T) {
	desired := usersEmail()
	spec := &Spec{
		Source:   staticSource{desired.Key(): desired},
		Catalog:  &fakeCatalog{schema: "public", names: []string{desired.Key()}},
		Executor: new(mockExecutor),
		Platform: ddl.Postgres{},
	}

	_, res, err := ReconcileAndApply(context.Background(), spec, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"No index was dropped.", "No index was created"}, res.Lines)
}

func TestReconcileWithPlan_Errors(t *testing.T) {
	t.Run("No Platform", func(t *testing.T) {
		_, err := ReconcileWithPlan(context.Background(), &Spec{})
		assert.Error(t, err)
	})

	t.Run("Current Schema", func(t *testing.T) {
		sentinel := errors.New("current schema not found")
		spec := &Spec{
			Source:   staticSource{},
			Catalog:  &fakeCatalog{schemaErr: sentinel},
			Platform: ddl.Postgres{},
		}
		_, err := ReconcileWithPlan(context.Background(), spec)
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("Catalog", func(t *testing.T) {
		spec := &Spec{
			Source:   staticSource{},
			Catalog:  &fakeCatalog{schema: "public", namesErr: errors.New("boom")},
			Platform: ddl.Postgres{},
		}
		_, err := ReconcileWithPlan(context.Background(), spec)
		assert.EqualError(t, err, "boom")
	})
}

func TestReconcileWithPlan_PassesSchemaScope(t *testing.T) {
	catalog := &fakeCatalog{schema: "public"}
	spec := &Spec{Source: staticSource{}, Catalog: catalog, Platform: ddl.Postgres{}}

	_, err := ReconcileWithPlan(context.Background(), spec)
	require.NoError(t, err)
	spec.SearchInAllSchemas = true
	_, err = ReconcileWithPlan(context.Background(), spec)
	require.NoError(t, err)

	assert.Equal(t, []bool{false, true}, catalog.scoped)
}

func TestApplyPlan_ValidationFailure(t *testing.T) {
	executor := new(mockExecutor)
	valid := usersEmail()
	invalid := index.New(index.Params{
		TableName:     "docs",
		Schema:        "public",
		CurrentSchema: "public",
		Columns:       []string{"body"},
		Using:         "brin",
	})
	executor.On("CreateIndex", mock.Anything, valid.Key()).Return(nil)

	spec := &Spec{
		Source:   staticSource{valid.Key(): valid, invalid.Key(): invalid},
		Catalog:  &fakeCatalog{schema: "public"},
		Executor: executor,
		Platform: ddl.Postgres{},
	}

	_, res, err := ReconcileAndApply(context.Background(), spec, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.False(t, res.NothingCreated)
	assert.Contains(t, res.Lines, "Index "+invalid.Name()+" was not created.")
	assert.Contains(t, res.Lines, "Index type brin is not allowed. List of allowed types: btree, hash, gin, gist.")
	assert.Contains(t, res.Lines, "Index "+valid.Name()+" was created.")
	require.Len(t, res.Violations[invalid.Key()], 1)
	assert.Equal(t, "using", res.Violations[invalid.Key()][0].Field)
	executor.AssertNotCalled(t, "CreateIndex", mock.Anything, invalid.Key())
}

func TestApplyPlan_ValidationAppliesToDryRun(t *testing.T) {
	invalid := index.New(index.Params{TableName: "docs", Schema: "public", CurrentSchema: "public"})
	plan := BuildPlan(map[string]*index.Spec{invalid.Key(): invalid}, nil)

	res, err := ApplyPlan(context.Background(), &Spec{Platform: ddl.Postgres{}}, plan, Options{DryRun: true})
	require.NoError(t, err)

	assert.Empty(t, res.SQL)
	assert.Equal(t, []string{
		"No index was dropped.",
		"Index " + invalid.Name() + " was not created.",
		"You must specify at least one column",
	}, res.Lines)
}

func TestApplyPlan_ExecutionFailure(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42P01", Message: `relation "users" does not exist`}
	desired := usersEmail()

	newSpec := func(executor *mockExecutor) *Spec {
		return &Spec{
			Source:   staticSource{desired.Key(): desired},
			Catalog:  &fakeCatalog{schema: "public", names: []string{"public.i_cindex_a", "public.i_cindex_b"}},
			Executor: executor,
			Platform: ddl.Postgres{},
		}
	}

	t.Run("Abort", func(t *testing.T) {
		executor := new(mockExecutor)
		executor.On("DropIndex", mock.Anything, "public.i_cindex_a").Return(errors.New("lock timeout"))

		_, res, err := ReconcileAndApply(context.Background(), newSpec(executor), Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "public.i_cindex_a")
		assert.Zero(t, res.Dropped)
		executor.AssertNotCalled(t, "DropIndex", mock.Anything, "public.i_cindex_b")
		executor.AssertNotCalled(t, "CreateIndex", mock.Anything, mock.Anything)
	})

	t.Run("Continue", func(t *testing.T) {
		executor := new(mockExecutor)
		executor.On("DropIndex", mock.Anything, "public.i_cindex_a").Return(errors.New("lock timeout"))
		executor.On("DropIndex", mock.Anything, "public.i_cindex_b").Return(nil)
		executor.On("CreateIndex", mock.Anything, desired.Key()).Return(pgErr)

		_, res, err := ReconcileAndApply(context.Background(), newSpec(executor), Options{ContinueOnError: true})
		require.NoError(t, err)

		assert.Equal(t, 1, res.Dropped)
		assert.Equal(t, 2, res.Failed)
		assert.Equal(t, []string{
			"Index public.i_cindex_a was not dropped.",
			"lock timeout",
			"Index public.i_cindex_b was dropped.",
			"Index " + desired.Name() + " was not created.",
			`SQLSTATE 42P01: relation "users" does not exist`,
		}, res.Lines)
		executor.AssertExpectations(t)
	})
}

// Entities declared on an abstract base with a single subclass keep the declared name.
func TestReconcileAndApply_InheritedDeclaration(t *testing.T) {
	collector := metadata.NewCollector([]metadata.Entity{
		{
			ID: "BaseEntity", Table: "base_entity", Abstract: true,
			Indexes: []metadata.Declaration{{Name: "idx_created", Columns: metadata.Columns{"created_at"}}},
		},
		{ID: "Order", Table: "orders", Parent: "BaseEntity", Inheritance: metadata.InheritanceSingleTable},
	})

	spec := &Spec{
		Source:   collector,
		Catalog:  &fakeCatalog{schema: "public"},
		Executor: new(mockExecutor),
		Platform: ddl.Postgres{},
	}

	_, res, err := ReconcileAndApply(context.Background(), spec, Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"CREATE INDEX i_cindex_idx_created ON orders (created_at);"}, res.SQL)
}
