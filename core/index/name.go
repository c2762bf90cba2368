package index

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

const uniqueMarker = "unique_"

// WithPrefix prepends Prefix unless name already carries it.
func WithPrefix(name string) string {
	if strings.HasPrefix(name, Prefix) {
		return name
	}
	return Prefix + name
}

// GenerateName derives a stable index name from the index content.
// Any change to table, columns, method, predicate or uniqueness yields a new name,
// so a changed definition is dropped and recreated on the next run.
func GenerateName(table string, columns []string, using, where string, unique bool) string {
	var b strings.Builder
	b.WriteString(table)
	for _, c := range columns {
		b.WriteString(c)
	}
	b.WriteString(using)
	if where != "" {
		b.WriteString("_")
		b.WriteString(where)
	}

	sum := md5.Sum([]byte(b.String()))

	name := Prefix
	if unique {
		name += uniqueMarker
	}
	return name + hex.EncodeToString(sum[:])
}
