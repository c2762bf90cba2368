package database

import (
	"context"

	"index-manager/core/ddl"
	"index-manager/core/index"

	"gorm.io/gorm"
)

// Executor runs rendered index DDL over a GORM connection.
type Executor struct {
	db       *gorm.DB
	platform ddl.Platform
}

// NewExecutor creates an Executor rendering statements with platform.
func NewExecutor(db *gorm.DB, platform ddl.Platform) *Executor {
	return &Executor{db: db, platform: platform}
}

// CreateIndex creates the index described by spec.
func (e *Executor) CreateIndex(ctx context.Context, spec *index.Spec) error {
	return e.db.WithContext(ctx).Exec(e.platform.CreateIndexSQL(spec)).Error
}

// DropIndex drops the index identified by spec.Key().
func (e *Executor) DropIndex(ctx context.Context, spec *index.Spec) error {
	return e.db.WithContext(ctx).Exec(e.platform.DropIndexSQL(spec.Key())).Error
}
