// Package postgresengine implements the catalog query surface for Postgres.
//
// All SQL is built with goqu and executed through a thin adapter layer, so
// the engine works unchanged with pgxpool.Pool, database/sql (e.g. lib/pq),
// and sqlx.DB connections via the respective constructors.
//
// The engine expects the following relations (table names are configurable
// via options; schema management itself is out of scope):
//
//	books(id, title, author, code, category_id NULL, language, publisher,
//	      edition_year NULL, copies_total)
//	categories(id, name, description)
//	loans(id, book_id, borrower_key, borrowed_at, returned_at NULL)
//	search_queries(id, owner_key, term, params jsonb, created_at)
//
// The derived active-loan count is computed inside the search query as a
// grouped count over loans with a null returned_at, left-joined against
// books. Availability filtering and sorting compare against that aggregate
// at the set level.
package postgresengine
