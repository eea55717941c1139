// Package domain contains the core entities of the reading trainer:
// cards and levels (the learning catalog), user profiles, per-user
// card progress (the spaced-repetition memory state), and the
// immutable review log.
//
// Domain types validate themselves but perform no I/O. Persistence
// lives in the store interfaces and their PostgreSQL implementations;
// the scheduling algorithm lives in the srs subpackage.
package domain
