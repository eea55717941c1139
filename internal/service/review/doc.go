// Package review implements the review session flow: selecting the single
// next card to present and processing submitted ratings.
//
// Selection is a pure function (SelectNext) over a read-only snapshot of
// the user's memory states, catalog, and daily counters; the Service
// assembles that snapshot from the stores and applies it. Submission runs
// in a single transaction with a row lock on the (user, card) progress so
// concurrent submissions cannot silently lose an update.
package review
