// Package service contains the business logic layer for TickerWire.
//
// Services coordinate between handlers and repositories. The news service
// applies request defaults and delegates the four read operations to the
// repository through the SymbolReader interface, following the dependency
// inversion principle.
//
// # Thread Safety
//
// All services are designed to be safe for concurrent use from
// multiple goroutines.
package service
