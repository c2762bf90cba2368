package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"index-manager/core/ddl"
	"index-manager/core/index"

	"gorm.io/gorm"
)

// ErrCurrentSchemaNotFound is returned when the connection reports no current schema.
var ErrCurrentSchemaNotFound = errors.New("current schema not found")

// Platform resolves the DDL platform of the connected engine.
func Platform(db *gorm.DB) (ddl.Platform, error) {
	return ddl.Resolve(db.Dialector.Name())
}

// IndexDefinition is a managed index as recorded in the catalog.
type IndexDefinition struct {
	Schema     string `gorm:"column:schemaname" json:"schema"`
	Table      string `gorm:"column:tablename" json:"table"`
	Name       string `gorm:"column:indexname" json:"name"`
	Definition string `gorm:"column:indexdef" json:"definition"`
}

// QualifiedName returns "schema.name".
func (d IndexDefinition) QualifiedName() string {
	return d.Schema + "." + d.Name
}

// Inspector reads managed indexes from the database catalog.
// One Inspector serves one run; the current schema is looked up once and memoized.
type Inspector struct {
	db       *gorm.DB
	platform ddl.Platform

	mu            sync.Mutex
	currentSchema string
}

// NewInspector creates an Inspector querying db with the catalog SQL of platform.
func NewInspector(db *gorm.DB, platform ddl.Platform) *Inspector {
	return &Inspector{db: db, platform: platform}
}

// CurrentSchema returns the connection's current schema.
func (i *Inspector) CurrentSchema(ctx context.Context) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.currentSchema != "" {
		return i.currentSchema, nil
	}

	var schema sql.NullString
	err := i.db.WithContext(ctx).Raw(i.platform.CurrentSchemaSQL()).Row().Scan(&schema)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrCurrentSchemaNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query current schema: %w", err)
	}
	if !schema.Valid || schema.String == "" {
		return "", ErrCurrentSchemaNotFound
	}

	i.currentSchema = schema.String
	return i.currentSchema, nil
}

// IndexNames returns the managed indexes present in the database as "schema.name",
// in catalog order. When allSchemas is false only the current schema is searched.
func (i *Inspector) IndexNames(ctx context.Context, allSchemas bool) ([]string, error) {
	names := []string{}
	err := i.db.WithContext(ctx).
		Raw(i.platform.IndexNamesSQL(allSchemas), index.Prefix+"%").
		Scan(&names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list indexes: %w", err)
	}
	return names, nil
}

// ListIndexes returns the managed indexes with their catalog definitions.
func (i *Inspector) ListIndexes(ctx context.Context, allSchemas bool) ([]IndexDefinition, error) {
	defs := []IndexDefinition{}
	err := i.db.WithContext(ctx).
		Raw(i.platform.IndexDefinitionsSQL(allSchemas), index.Prefix+"%").
		Scan(&defs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list index definitions: %w", err)
	}
	return defs, nil
}
