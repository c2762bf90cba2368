package ddl

import (
	"errors"
	"fmt"

	"index-manager/core/index"
)

// ErrUnsupportedPlatform is returned when the connected database engine has no Platform.
var ErrUnsupportedPlatform = errors.New("platform is not supported")

// Platform renders index DDL and catalog queries for one database engine.
// The set of implementations is closed; use Resolve to obtain one.
type Platform interface {
	// Name returns the engine name as reported by the GORM dialector.
	Name() string

	// CreateIndexSQL renders the CREATE INDEX statement for spec.
	CreateIndexSQL(spec *index.Spec) string

	// DropIndexSQL renders the DROP INDEX statement for a "schema.name" index.
	DropIndexSQL(qualifiedName string) string

	// CurrentSchemaSQL returns the query selecting the connection's current schema.
	CurrentSchemaSQL() string

	// IndexNamesSQL returns the query listing managed index names as "schema.name".
	// It takes the name pattern as its single bind variable.
	IndexNamesSQL(allSchemas bool) string

	// IndexDefinitionsSQL is IndexNamesSQL with the catalog definition of each index.
	IndexDefinitionsSQL(allSchemas bool) string

	platform()
}

// Resolve returns the Platform for a GORM dialector name.
func Resolve(name string) (Platform, error) {
	switch name {
	case PostgresName:
		return Postgres{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, name)
	}
}
