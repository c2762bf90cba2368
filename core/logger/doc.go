// Package logger provides a structured logging facility based on Zap.
//
// It builds a configured logger for console (humans) or JSON (log shippers)
// output and integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the request's ray ID from a Fiber context and
// attaches it to the log entry, so every line of one API call can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: console or json
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Reconciliation finished", zap.Int("created", res.Created))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Apply failed", zap.Error(err))
package logger
