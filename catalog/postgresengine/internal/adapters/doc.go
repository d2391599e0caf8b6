// Package adapters provides database abstraction adapters for the Postgres
// catalog engine.
//
// It defines the DBAdapter interface and implementations for the supported
// clients: pgxpool.Pool, database/sql, and sqlx.DB. The adapters normalize
// query execution and row scanning so the engine can build SQL once and run
// it against any of the three.
package adapters
