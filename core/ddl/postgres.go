package ddl

import (
	"strings"

	"index-manager/core/index"

	"github.com/lib/pq"
)

// PostgresName is the dialector name of the PostgreSQL GORM driver.
const PostgresName = "postgres"

// Postgres renders DDL for PostgreSQL.
type Postgres struct{}

func (Postgres) platform() {}

// Name implements Platform.
func (Postgres) Name() string { return PostgresName }

// CreateIndexSQL implements Platform.
//
//	CREATE [UNIQUE] INDEX <name> ON <table> [USING <method>] (<columns>) [WHERE <predicate>]
func (Postgres) CreateIndexSQL(spec *index.Spec) string {
	var b strings.Builder
	b.WriteString("CREATE")
	if spec.Unique() {
		b.WriteString(" UNIQUE")
	}
	b.WriteString(" INDEX ")
	b.WriteString(spec.Name())
	b.WriteString(" ON ")
	b.WriteString(spec.QualifiedTable())
	if using := spec.Using(); using != "" {
		b.WriteString(" USING ")
		b.WriteString(using)
	}
	b.WriteString(" (")
	b.WriteString(strings.Join(spec.Columns(), ", "))
	b.WriteString(")")
	if where := spec.Where(); where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(where)
	}
	return b.String()
}

// DropIndexSQL implements Platform. The schema part is always double-quoted,
// the index name is left as is.
func (Postgres) DropIndexSQL(qualifiedName string) string {
	return "DROP INDEX " + quoteSchema(qualifiedName)
}

// CurrentSchemaSQL implements Platform.
func (Postgres) CurrentSchemaSQL() string {
	return "SELECT current_schema()"
}

// IndexNamesSQL implements Platform. Names ending in _ccnew are the transient
// copies left by REINDEX CONCURRENTLY and are never reported.
func (Postgres) IndexNamesSQL(allSchemas bool) string {
	sql := "SELECT schemaname || '.' || indexname AS relname FROM pg_indexes " +
		"WHERE indexname LIKE ? AND indexname NOT LIKE '%_ccnew'"
	if !allSchemas {
		sql += " AND schemaname = current_schema()"
	}
	return sql + " ORDER BY schemaname, indexname"
}

// IndexDefinitionsSQL implements Platform.
func (Postgres) IndexDefinitionsSQL(allSchemas bool) string {
	sql := "SELECT schemaname, tablename, indexname, indexdef FROM pg_indexes " +
		"WHERE indexname LIKE ? AND indexname NOT LIKE '%_ccnew'"
	if !allSchemas {
		sql += " AND schemaname = current_schema()"
	}
	return sql + " ORDER BY schemaname, indexname"
}

func quoteSchema(qualifiedName string) string {
	schema, name, found := strings.Cut(qualifiedName, ".")
	if !found {
		return qualifiedName
	}
	return pq.QuoteIdentifier(schema) + "." + name
}
