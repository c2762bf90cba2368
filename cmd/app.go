package cmd

import (
	"errors"
	"fmt"
	"time"

	"index-manager/core/config"
	"index-manager/core/database"
	"index-manager/core/logger"
	"index-manager/core/metadata"
	"index-manager/core/storage"
	"index-manager/feature/indexes"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// models are GORM models registered by an embedding program.
var models []metadata.Model

// RegisterModels adds GORM models as an entity source. Programs that embed the
// index-manager commands call it before Execute, so indexes can be declared next
// to the models instead of in the manifest:
//
//	cmd.RegisterModels(
//		metadata.Model{Value: Auditable{}, Abstract: true, Indexes: []metadata.Declaration{
//			{Name: "idx_created", Columns: metadata.Columns{"created_at"}},
//		}},
//		metadata.Model{Value: Order{}},
//	)
//	cmd.Execute()
//
// Model entities are appended after the manifest entities. With models registered
// a missing manifest is not an error.
func RegisterModels(m ...metadata.Model) {
	models = append(models, m...)
}

func loadEntities(manifest string, models []metadata.Model) ([]metadata.Entity, error) {
	entities, err := metadata.LoadManifest(manifest)
	if err != nil && !(errors.Is(err, metadata.ErrManifestNotFound) && len(models) > 0) {
		return nil, err
	}
	if len(models) == 0 {
		return entities, nil
	}

	fromModels, err := metadata.FromModels(nil, models...)
	if err != nil {
		return nil, fmt.Errorf("failed to read models: %w", err)
	}
	return append(entities, fromModels...), nil
}

// runtime holds what every command needs.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	service *indexes.Service
}

// bootstrap loads configuration, connects to the database and storage and builds
// the index service. With requireDB unset a failed connection is only logged.
func bootstrap(requireDB bool) (*runtime, error) {
	cfg, err := config.LoadConfig(envDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if manifestPath != "" {
		cfg.Index.Manifest = manifestPath
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	entities, err := loadEntities(cfg.Index.Manifest, models)
	if err != nil {
		return nil, err
	}
	l.Debug("Loaded entity metadata",
		zap.String("manifest", cfg.Index.Manifest),
		zap.Int("models", len(models)),
		zap.Int("entities", len(entities)))

	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		if requireDB {
			return nil, err
		}
		l.Warn("Database connection failed", zap.Error(err))
	} else {
		db = conn
		l = l.With(zap.String("database", cfg.Database.Name))
		l.Debug("Connected to database", zap.String("driver", cfg.Database.Driver))
	}

	var archive *storage.Archive
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		archive = storage.NewArchive(client, cfg.Storage)
	}

	svc := indexes.NewService(db, metadata.NewCollector(entities), cfg.Index, archive, l)
	return &runtime{cfg: cfg, logger: l, db: db, service: svc}, nil
}

func (r *runtime) close() {
	_ = r.logger.Sync()
	if r.db == nil {
		return
	}
	if sqlDB, err := r.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (r *runtime) runTimeout() time.Duration {
	return time.Duration(r.cfg.Server.RunTimeoutSeconds) * time.Second
}
