// Package postgres implements the store interfaces on PostgreSQL.
//
// Implementations run over database/sql with the pgx stdlib driver, build
// their SQL with squirrel, and translate driver errors into the store
// package's error vocabulary. Every store accepts a DBTX, so the same code
// serves both pooled connections and transactions.
package postgres
