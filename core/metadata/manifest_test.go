package metadata_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"index-manager/core/metadata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestYAML = `
entities:
  - id: BaseEntity
    table: base_entity
    abstract: true
    indexes:
      - name: idx_created
        columns: created_at
  - id: Order
    table: orders
    schema: sales
    parent: BaseEntity
    inheritance: joined
    indexes:
      - columns: [customer_id, created_at]
        unique: true
        using: btree
        where: deleted_at IS NULL
`

func TestParseManifest(t *testing.T) {
	entities, err := metadata.ParseManifest([]byte(manifestYAML))
	require.NoError(t, err)
	require.Len(t, entities, 2)

	base := entities[0]
	assert.True(t, base.Abstract)
	assert.Equal(t, metadata.InheritanceNone, base.Inheritance)
	assert.Equal(t, metadata.Columns{"created_at"}, base.Indexes[0].Columns)

	order := entities[1]
	assert.Equal(t, "sales", order.Schema)
	assert.Equal(t, "BaseEntity", order.Parent)
	assert.Equal(t, metadata.InheritanceJoined, order.Inheritance)
	assert.Equal(t, metadata.Declaration{
		Columns: metadata.Columns{"customer_id", "created_at"},
		Unique:  true,
		Using:   "btree",
		Where:   "deleted_at IS NULL",
	}, order.Indexes[0])
}

func TestParseManifest_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"MissingID", "entities:\n  - table: users\n"},
		{"DuplicateID", "entities:\n  - id: A\n  - id: A\n"},
		{"BadColumns", "entities:\n  - id: A\n    indexes:\n      - columns: {a: b}\n"},
		{"Malformed", "entities: ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := metadata.ParseManifest([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "entities.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifestYAML), 0o600))

	entities, err := metadata.LoadManifest(path)
	require.NoError(t, err)
	assert.Len(t, entities, 2)

	_, err = metadata.LoadManifest(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, metadata.ErrManifestNotFound))
}
