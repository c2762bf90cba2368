// Package database handles database connections and catalog inspection.
//
// It provides a wrapper around GORM to configure PostgreSQL connections (MySQL and
// SQLite connect too, but have no index platform) from the application's configuration.
//
// # Connect
//
// Connect opens the configured driver, applies pool settings and pings the server
// within the configured timeout.
//
// # Catalog Inspection
//
// Inspector reads the connection's current schema and the managed indexes (names
// carrying the index prefix) from pg_indexes. Executor runs CREATE and DROP
// statements rendered by the resolved ddl.Platform.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	platform, err := database.Platform(db)
//	inspector := database.NewInspector(db, platform)
//	names, err := inspector.IndexNames(ctx, true)
package database
