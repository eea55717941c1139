// Package srs implements the memory model behind the review schedule:
// a deterministic FSRS-style retention-decay scheduler.
//
// The package has a single entry point, Scheduler.Advance, which maps a
// prior per-card memory state and a review rating to the superseding
// state and its next due instant. It is a pure function of its inputs:
// no I/O, no clocks, no randomness (interval fuzzing is deliberately
// omitted so identical inputs always produce identical schedules).
//
// Cards in the Learning and Relapsed stages follow short fixed retry
// steps instead of the stability formula; once they graduate to Review,
// intervals come from the retention-decay curve, capped at
// Params.MaximumInterval.
package srs
