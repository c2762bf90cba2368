// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or api_key query parameter).
//   - rayid: a request ID (ray ID) per request, stored in the context locals and
//     echoed in the X-Ray-ID response header for tracing.
package middleware
