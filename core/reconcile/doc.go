// Package reconcile brings the managed indexes of a database in line with the
// indexes declared in entity metadata.
//
// # Architecture
//
// A run has three steps:
//
// 1. Discovery: the Source yields the desired indexes for the connection's current
// schema and the Catalog lists the managed indexes already present.
//
// 2. Diff: BuildPlan computes drops (present but no longer declared) and creates
// (declared but missing). Index names encode the full definition, so comparing
// keys is enough.
//
// 3. Apply: ApplyPlan runs every drop, then every create, through the Executor,
// or only renders the statements in dry-run mode. Invalid declarations are
// reported and skipped.
//
// # Usage Example
//
//	spec := &reconcile.Spec{
//	    Source:             metadata.NewCollector(entities),
//	    Catalog:            database.NewInspector(db, platform),
//	    Executor:           database.NewExecutor(db, platform),
//	    Platform:           platform,
//	    SearchInAllSchemas: true,
//	}
//
//	plan, result, err := reconcile.ReconcileAndApply(ctx, spec, reconcile.Options{})
package reconcile
