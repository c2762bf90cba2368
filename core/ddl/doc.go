// Package ddl renders index DDL and catalog queries for the supported database engine.
//
// Platform dispatch is resolved once per run from the GORM dialector name. Only
// PostgreSQL is supported; any other engine fails with ErrUnsupportedPlatform before a
// single statement is rendered.
//
//	platform, err := ddl.Resolve(db.Dialector.Name())
//	if err != nil {
//	    return err
//	}
//	sql := platform.CreateIndexSQL(spec)
//
// ParseCreateIndex goes the other way and turns a CREATE INDEX statement (for example
// pg_indexes.indexdef) back into its parts using the PostgreSQL parser.
package ddl
