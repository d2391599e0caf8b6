package postgresengine

import (
	"github.com/acervolib/catalog-query-go/catalog"
)

// Option defines a functional option for configuring CatalogStore.
type Option func(*CatalogStore) error

// WithBooksTableName sets the books table name for the CatalogStore.
func WithBooksTableName(tableName string) Option {
	return func(cs *CatalogStore) error {
		if tableName == "" {
			return catalog.ErrEmptyTableNameSupplied
		}

		cs.booksTableName = tableName

		return nil
	}
}

// WithLoansTableName sets the loans table name for the CatalogStore.
func WithLoansTableName(tableName string) Option {
	return func(cs *CatalogStore) error {
		if tableName == "" {
			return catalog.ErrEmptyTableNameSupplied
		}

		cs.loansTableName = tableName

		return nil
	}
}

// WithCategoriesTableName sets the categories table name for the CatalogStore.
func WithCategoriesTableName(tableName string) Option {
	return func(cs *CatalogStore) error {
		if tableName == "" {
			return catalog.ErrEmptyTableNameSupplied
		}

		cs.categoriesTableName = tableName

		return nil
	}
}

// WithHistoryTableName sets the search history table name for the CatalogStore.
func WithHistoryTableName(tableName string) Option {
	return func(cs *CatalogStore) error {
		if tableName == "" {
			return catalog.ErrEmptyTableNameSupplied
		}

		cs.historyTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the CatalogStore.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Result counts and durations (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger catalog.Logger) Option {
	return func(cs *CatalogStore) error {
		cs.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the CatalogStore.
// When set it takes precedence over the plain logger, carrying the request
// context into every log call for trace correlation.
func WithContextualLogger(logger catalog.ContextualLogger) Option {
	return func(cs *CatalogStore) error {
		cs.contextualLogger = logger
		return nil
	}
}
