package reconcile

import (
	"context"
	"errors"
	"fmt"

	"index-manager/core/index"

	"github.com/jackc/pgx/v5/pgconn"
)

// ReconcileWithPlan discovers the desired and existing indexes and returns the plan.
// It does NOT execute actions; use ApplyPlan for that.
func ReconcileWithPlan(ctx context.Context, spec *Spec) (*Plan, error) {
	if spec.Platform == nil {
		return nil, errors.New("reconcile spec has no platform")
	}

	currentSchema, err := spec.Catalog.CurrentSchema(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := spec.Catalog.IndexNames(ctx, spec.SearchInAllSchemas)
	if err != nil {
		return nil, err
	}

	desired := spec.Source.Collect(currentSchema, spec.SearchInAllSchemas)

	plan := BuildPlan(desired, existing)
	plan.CurrentSchema = currentSchema
	for i := range plan.Actions {
		a := &plan.Actions[i]
		switch a.Type {
		case ActionDrop:
			a.SQL = spec.Platform.DropIndexSQL(a.Key)
		case ActionCreate:
			a.SQL = spec.Platform.CreateIndexSQL(a.Index)
		}
	}

	return plan, nil
}

// ApplyPlan executes the actions of a plan, drops first.
//
// Creates are validated first; an invalid index is reported and skipped. In dry-run
// mode each statement is recorded with a trailing ";" and nothing executes. A failing
// statement aborts the remaining actions unless opts.ContinueOnError is set, in which
// case it is reported and counted in Result.Failed.
func ApplyPlan(ctx context.Context, spec *Spec, plan *Plan, opts Options) (*Result, error) {
	validator := spec.Validator
	if validator == nil {
		validator = index.NewValidator(nil)
	}

	res := &Result{
		Lines:          []string{},
		NothingCreated: plan.Summary.NothingToCreate,
		NothingDropped: plan.Summary.NothingToDrop,
	}

	for _, a := range plan.Drops() {
		if opts.DryRun {
			res.dump(a.SQL)
			continue
		}
		if err := spec.Executor.DropIndex(ctx, a.Index); err != nil {
			if !opts.ContinueOnError {
				return res, fmt.Errorf("failed to drop index %s: %w", a.Key, err)
			}
			res.Failed++
			res.Lines = append(res.Lines, "Index "+a.Key+" was not dropped.", describeError(err))
			continue
		}
		res.Dropped++
		res.Lines = append(res.Lines, "Index "+a.Key+" was dropped.")
	}
	if res.NothingDropped {
		res.Lines = append(res.Lines, "No index was dropped.")
	}

	for _, a := range plan.Creates() {
		name := a.Index.Name()
		if violations := validator.Validate(a.Index); len(violations) > 0 {
			res.Skipped++
			if res.Violations == nil {
				res.Violations = make(map[string][]index.Violation)
			}
			res.Violations[a.Key] = violations
			res.Lines = append(res.Lines, "Index "+name+" was not created.")
			for _, v := range violations {
				res.Lines = append(res.Lines, v.Message)
			}
			continue
		}
		if opts.DryRun {
			res.dump(a.SQL)
			continue
		}
		if err := spec.Executor.CreateIndex(ctx, a.Index); err != nil {
			if !opts.ContinueOnError {
				return res, fmt.Errorf("failed to create index %s: %w", a.Key, err)
			}
			res.Failed++
			res.Lines = append(res.Lines, "Index "+name+" was not created.", describeError(err))
			continue
		}
		res.Created++
		res.Lines = append(res.Lines, "Index "+name+" was created.")
	}
	if res.NothingCreated {
		res.Lines = append(res.Lines, "No index was created")
	}

	return res, nil
}

// ReconcileAndApply is a convenience wrapper that plans and applies in one call.
func ReconcileAndApply(ctx context.Context, spec *Spec, opts Options) (*Plan, *Result, error) {
	plan, err := ReconcileWithPlan(ctx, spec)
	if err != nil {
		return nil, nil, err
	}

	res, err := ApplyPlan(ctx, spec, plan, opts)
	return plan, res, err
}

func (r *Result) dump(sql string) {
	stmt := sql + ";"
	r.SQL = append(r.SQL, stmt)
	r.Lines = append(r.Lines, stmt)
}

// describeError formats a statement failure, with the SQLSTATE when the server sent one.
func describeError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Sprintf("SQLSTATE %s: %s", pgErr.Code, pgErr.Message)
	}
	return err.Error()
}
