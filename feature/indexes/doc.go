// Package indexes implements the index reconciliation feature.
//
// The Service wires the core packages together for one database connection:
// metadata source, catalog inspector, DDL platform and executor. It is shared by
// the CLI commands and the HTTP API. Concurrent runs of the same mode are coalesced,
// and every run can be archived as a text report in object storage.
//
// # HTTP Endpoints
//
//   - GET /indexes : managed indexes with parsed definitions.
//   - GET /indexes/plan : pending drops and creates, nothing executed.
//   - POST /indexes/apply : reconcile (supports ?dry_run=true).
//   - GET /indexes/reports : archived run reports.
//   - GET /indexes/reports/{key} : one report as text.
package indexes
