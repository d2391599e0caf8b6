// Package catalog contains the domain types of the catalog query engine and the
// normalization of raw request parameters into a typed FilterSpec.
//
// The package is deliberately free of database dependencies: it defines WHAT a
// resolved search request means (filter, sort key, pagination mode, identity,
// history record), while DB type-specific engines, e.g. catalog/postgresengine,
// translate a FilterSpec into queries for their specific query language.
//
// Parameter parsing is permissive by design: absent or malformed values fall
// back to documented defaults instead of failing, so a FilterSpec can always be
// constructed from arbitrary request input.
package catalog
