// Package server wires and runs the application's transport servers.
//
// It provides orchestration for the HTTP API, the metrics side server and
// the gRPC health server, including startup, signal handling, and graceful
// shutdown of all enabled transports.
package server
