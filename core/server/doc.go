// Package server holds the HTTP server configuration.
//
// The start command owns the server lifecycle; this package only defines the
// settings it reads: the listen port, the API key guarding every route and the
// time budget of a single plan or apply request.
package server
