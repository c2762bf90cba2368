// Package config provides configuration management for the index manager.
//
// It uses Viper to read environment variables, optionally seeded from a .env file.
// Every key has a default declared on its struct field, so an empty environment
// connects to a local PostgreSQL and reconciles all schemas.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key and request time budget
//   - Database: connection details (DATABASE_HOST, DATABASE_SSLMODE, ...)
//   - Storage: optional S3/MinIO report archive
//   - Log: logging level and format
//   - Index: INDEX_SEARCH_IN_ALL_SCHEMAS, INDEX_ALLOWED_INDEX_TYPES,
//     INDEX_CONTINUE_ON_ERROR, INDEX_MANIFEST
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Index.SearchInAllSchemas)
package config
