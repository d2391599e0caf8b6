package postgresengine_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/stretchr/testify/assert"

	"github.com/acervolib/catalog-query-go/catalog"
	"github.com/acervolib/catalog-query-go/catalog/postgresengine"
)

func Test_FactoryFunctions_RejectNilConnections(t *testing.T) {
	_, pgxErr := postgresengine.NewCatalogStoreFromPGXPool(nil)
	assert.ErrorIs(t, pgxErr, catalog.ErrNilDatabaseConnection)

	_, replicaErr := postgresengine.NewCatalogStoreFromPGXPoolWithReplica(nil, nil)
	assert.ErrorIs(t, replicaErr, catalog.ErrNilDatabaseConnection)

	_, sqlErr := postgresengine.NewCatalogStoreFromSQLDB(nil)
	assert.ErrorIs(t, sqlErr, catalog.ErrNilDatabaseConnection)

	_, sqlxErr := postgresengine.NewCatalogStoreFromSQLX(nil)
	assert.ErrorIs(t, sqlxErr, catalog.ErrNilDatabaseConnection)
}

func Test_FactoryFunctions_RejectEmptyTableNames(t *testing.T) {
	db := &sqlx.DB{}

	options := []postgresengine.Option{
		postgresengine.WithBooksTableName(""),
		postgresengine.WithLoansTableName(""),
		postgresengine.WithCategoriesTableName(""),
		postgresengine.WithHistoryTableName(""),
	}

	for _, option := range options {
		_, err := postgresengine.NewCatalogStoreFromSQLX(db, option)
		assert.ErrorIs(t, err, catalog.ErrEmptyTableNameSupplied)
	}
}
