package server

// Server defines the lifecycle contract of the application server.
//
// [RunServer] blocks until a termination signal arrives or the listener
// fails. [Shutdown] drains in-flight requests and may be called from any
// goroutine.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
