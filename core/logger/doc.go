// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports development and
// production modes and integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID set by the rayid middleware from a
// Fiber context and attaches it to the log entry, so every line written while
// serving a request can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (default) or console
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
