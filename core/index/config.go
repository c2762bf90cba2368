package index

// Config holds configuration for index reconciliation.
type Config struct {
	// SearchInAllSchemas reconciles managed indexes of every schema instead of only
	// the connection's current schema.
	SearchInAllSchemas bool `mapstructure:"search_in_all_schemas" default:"true"`
	// AllowedIndexTypes lists the access methods a declaration may use.
	AllowedIndexTypes []string `mapstructure:"allowed_index_types" default:"btree,hash,gin,gist"`
	// ContinueOnError keeps going after a failing statement instead of aborting.
	ContinueOnError bool `mapstructure:"continue_on_error" default:"false"`
	// Manifest is the path of the YAML entity manifest.
	Manifest string `mapstructure:"manifest" default:"entities.yaml"`
}
