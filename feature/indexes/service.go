package indexes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"index-manager/core/database"
	"index-manager/core/ddl"
	"index-manager/core/index"
	"index-manager/core/reconcile"
	"index-manager/core/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned when the service has no database connection.
var ErrNoDatabase = errors.New("database is not connected")

// ErrArchiveDisabled is returned by report lookups when storage is disabled.
var ErrArchiveDisabled = errors.New("report archive is disabled")

// Outcome is the result of one reconciliation run.
type Outcome struct {
	Plan      *reconcile.Plan   `json:"plan"`
	Result    *reconcile.Result `json:"result"`
	ReportKey string            `json:"report_key,omitempty"`
}

// ListedIndex is a managed index with its parsed catalog definition.
type ListedIndex struct {
	database.IndexDefinition
	Parsed     *ddl.ParsedIndex `json:"parsed,omitempty"`
	ParseError string           `json:"parse_error,omitempty"`
}

// Service runs index reconciliation against one database.
type Service struct {
	db        *gorm.DB
	source    reconcile.Source
	cfg       index.Config
	validator *index.Validator
	archive   *storage.Archive
	logger    *zap.Logger
	now       func() time.Time

	// runs coalesces concurrent runs of the same mode.
	runs singleflight.Group
}

// NewService creates a new index service. archive may be nil to disable reports.
func NewService(db *gorm.DB, source reconcile.Source, cfg index.Config, archive *storage.Archive, logger *zap.Logger) *Service {
	return &Service{
		db:        db,
		source:    source,
		cfg:       cfg,
		validator: index.NewValidator(cfg.AllowedIndexTypes),
		archive:   archive,
		logger:    logger,
		now:       time.Now,
	}
}

// spec builds a run-scoped reconcile spec. Each run gets its own inspector, so the
// current schema is looked up once per run.
func (s *Service) spec() (*reconcile.Spec, *database.Inspector, error) {
	if s.db == nil {
		return nil, nil, ErrNoDatabase
	}
	platform, err := database.Platform(s.db)
	if err != nil {
		return nil, nil, err
	}
	inspector := database.NewInspector(s.db, platform)
	return &reconcile.Spec{
		Source:             s.source,
		Catalog:            inspector,
		Executor:           database.NewExecutor(s.db, platform),
		Platform:           platform,
		Validator:          s.validator,
		SearchInAllSchemas: s.cfg.SearchInAllSchemas,
	}, inspector, nil
}

// Plan returns the pending actions without executing them.
func (s *Service) Plan(ctx context.Context) (*reconcile.Plan, error) {
	v, err := s.share(ctx, "plan", func(runCtx context.Context) (any, error) {
		spec, _, err := s.spec()
		if err != nil {
			return nil, err
		}
		return reconcile.ReconcileWithPlan(runCtx, spec)
	})
	if err != nil {
		return nil, err
	}
	return v.(*reconcile.Plan), nil
}

// Apply reconciles the database, or only renders the statements when dryRun is set.
// The run report is archived when storage is enabled, also for failed runs.
func (s *Service) Apply(ctx context.Context, dryRun bool) (*Outcome, error) {
	key := "apply"
	if dryRun {
		key = "dry-run"
	}

	v, err := s.share(ctx, key, func(runCtx context.Context) (any, error) {
		return s.apply(runCtx, dryRun)
	})
	out, _ := v.(*Outcome)
	return out, err
}

// share runs fn once for all concurrent callers of key. The run is not cancelled
// with the caller that started it; it keeps that caller's deadline, if any. Each
// caller stops waiting when its own ctx is done.
func (s *Service) share(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	ch := s.runs.DoChan(key, func() (any, error) {
		runCtx, cancel := detach(ctx)
		defer cancel()
		return fn(runCtx)
	})

	select {
	case r := <-ch:
		if r.Shared {
			s.logger.Debug("Joined in-flight run", zap.String("mode", key))
		}
		return r.Val, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// detach returns a context carrying the values and deadline of ctx but not its
// cancellation.
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx := context.WithoutCancel(ctx)
	if deadline, ok := ctx.Deadline(); ok {
		return context.WithDeadline(runCtx, deadline)
	}
	return context.WithCancel(runCtx)
}

func (s *Service) apply(ctx context.Context, dryRun bool) (*Outcome, error) {
	spec, _, err := s.spec()
	if err != nil {
		return nil, err
	}

	startedAt := s.now()
	plan, res, runErr := reconcile.ReconcileAndApply(ctx, spec, reconcile.Options{
		DryRun:          dryRun,
		ContinueOnError: s.cfg.ContinueOnError,
	})
	if plan == nil {
		return nil, runErr
	}

	out := &Outcome{Plan: plan, Result: res}
	s.logger.Info("Index reconciliation finished",
		zap.Bool("dry_run", dryRun),
		zap.String("current_schema", plan.CurrentSchema),
		zap.Int("planned_creates", plan.Summary.Creates),
		zap.Int("planned_drops", plan.Summary.Drops),
		zap.Int("created", res.Created),
		zap.Int("dropped", res.Dropped),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed),
		zap.Duration("took", s.now().Sub(startedAt)),
	)
	if res.Skipped > 0 {
		s.logger.Warn("Invalid indexes were skipped",
			zap.Int("skipped", res.Skipped),
			zap.Strings("allowed_index_types", s.validator.AllowedTypes()))
	}

	if s.archive != nil {
		key, err := s.archiveReport(ctx, startedAt, dryRun, out, runErr)
		if err != nil {
			// A lost report never fails the run.
			s.logger.Warn("Failed to archive run report",
				zap.String("bucket", s.archive.Bucket()), zap.Error(err))
		} else {
			out.ReportKey = key
		}
	}

	return out, runErr
}

func (s *Service) archiveReport(ctx context.Context, at time.Time, dryRun bool, out *Outcome, runErr error) (string, error) {
	if err := s.archive.EnsureBucket(ctx); err != nil {
		return "", err
	}
	key, err := s.archive.Put(ctx, at, RenderReport(at, dryRun, out, runErr))
	if err != nil {
		return "", err
	}
	if removed, err := s.archive.Prune(ctx); err != nil {
		s.logger.Warn("Failed to prune run reports", zap.Error(err))
	} else if removed > 0 {
		s.logger.Debug("Pruned run reports", zap.Int("removed", removed))
	}
	return key, nil
}

// List returns the managed indexes present in the database with parsed definitions.
func (s *Service) List(ctx context.Context) ([]ListedIndex, error) {
	_, inspector, err := s.spec()
	if err != nil {
		return nil, err
	}

	defs, err := inspector.ListIndexes(ctx, s.cfg.SearchInAllSchemas)
	if err != nil {
		return nil, err
	}

	out := make([]ListedIndex, 0, len(defs))
	for _, def := range defs {
		item := ListedIndex{IndexDefinition: def}
		if parsed, err := ddl.ParseCreateIndex(def.Definition); err != nil {
			item.ParseError = err.Error()
		} else {
			item.Parsed = parsed
		}
		out = append(out, item)
	}
	return out, nil
}

// Reports lists the archived run reports.
func (s *Service) Reports(ctx context.Context) ([]storage.Report, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.List(ctx)
}

// Report returns one archived run report.
func (s *Service) Report(ctx context.Context, key string) ([]byte, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	body, err := s.archive.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	return body, nil
}
