// Package store defines the persistence interfaces the services depend on,
// along with the shared error vocabulary and transaction helpers.
//
// Implementations live under internal/platform (PostgreSQL today). Services
// and handlers depend only on these interfaces, which keeps the scheduling
// and selection logic testable with in-memory fakes.
package store
