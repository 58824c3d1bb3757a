// Package server holds the HTTP server configuration.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key guarding the routes and
// the graceful shutdown bound.
//
// # Usage
//
// This package is embedded by core/config and read by the start command when it
// builds the Fiber application.
package server
