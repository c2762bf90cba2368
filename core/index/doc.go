// Package index defines the managed index value object.
//
// A Spec describes one index the application wants to exist. Its name always carries
// Prefix so that the index manager can tell its own indexes apart from everything else
// in the catalog. When no explicit name is declared the name is an MD5 digest of the
// index content, which makes the name a function of the definition:
//
//	spec := index.New(index.Params{
//	    TableName:     "users",
//	    Schema:        "public",
//	    CurrentSchema: "public",
//	    Columns:       []string{"email"},
//	    Unique:        true,
//	})
//	spec.Name() // i_cindex_unique_<md5("usersemail")>
//	spec.Key()  // public.i_cindex_unique_...
//
// # Validation
//
// Validator enforces the field constraints checked before creation: table name and
// name between 1 and 63 characters, at least one non-blank column, and an access
// method from the configured allow-list.
package index
