package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/acervolib/catalog-query-go/catalog"
	"github.com/acervolib/catalog-query-go/catalog/postgresengine/internal/adapters"
)

const (
	defaultBooksTableName      = "books"
	defaultLoansTableName      = "loans"
	defaultCategoriesTableName = "categories"
	defaultHistoryTableName    = "search_queries"

	logMsgBuildQueryFailed     = "failed to build sql query"
	logMsgDBQueryFailed        = "database query execution failed"
	logMsgDBExecFailed         = "database execution failed during history insert"
	logMsgCloseRowsFailed      = "failed to close database rows"
	logMsgScanRowFailed        = "failed to scan database row"
	logMsgBuildRecordFailed    = "failed to build search query record from database row"
	logMsgSearchCompleted      = "search completed"
	logMsgSuggestionsResolved  = "suggestions resolved"
	logMsgHistoryRecorded      = "search history recorded"
	logMsgHistoryListed        = "search history listed"
	logMsgSQLExecuted          = "executed sql for: "
	logMsgOperation            = "catalog operation: "
	logAttrError               = "error"
	logAttrQuery               = "query"
	logAttrBookCount           = "book_count"
	logAttrTotalCount          = "total_count"
	logAttrSuggestionCount     = "suggestion_count"
	logAttrRecordCount         = "record_count"
	logAttrDurationMS          = "duration_ms"
	logActionSearch            = "search"
	logActionCount             = "count"
	logActionSuggest           = "suggest"
	logActionCategories        = "categories"
	logActionLanguages         = "languages"
	logActionRecordHistory     = "record history"
	logActionListHistory       = "list history"

	colID          = "id"
	colTitle       = "title"
	colAuthor      = "author"
	colCode        = "code"
	colCategoryID  = "category_id"
	colCategoryName = "category_name"
	colLanguage    = "language"
	colPublisher   = "publisher"
	colEditionYear = "edition_year"
	colCopiesTotal = "copies_total"
	colBookID      = "book_id"
	colReturnedAt  = "returned_at"
	colActiveLoans = "active_loans"
	colName        = "name"
	colDescription = "description"
	colOwnerKey    = "owner_key"
	colTerm        = "term"
	colParams      = "params"
	colCreatedAt   = "created_at"

	aliasBooks      = "b"
	aliasLoans      = "l"
	aliasCategories = "c"

	dialectPostgres = "postgres"
	castJsonb       = "?::jsonb"

	suggestionLimit = 10
	historyLimit    = 100
)

type (
	sqlQueryString = string
	queryDuration  = time.Duration
)

// CatalogStore is the Postgres query surface of the catalog: filtered,
// sorted, paginated book search with an availability count derived from the
// loans relation, autocomplete suggestions, category/language lookups, and
// the per-owner search history.
//
// All reads and the history insert run as single logical queries; the store
// never holds locks across pipeline stages.
type CatalogStore struct {
	db                  adapters.DBAdapter
	booksTableName      string
	loansTableName      string
	categoriesTableName string
	historyTableName    string
	logger              catalog.Logger
	contextualLogger    catalog.ContextualLogger
}

// NewCatalogStoreFromPGXPool creates a new CatalogStore using a pgx Pool with optional configuration.
func NewCatalogStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (CatalogStore, error) {
	if db == nil {
		return CatalogStore{}, catalog.ErrNilDatabaseConnection
	}

	return newCatalogStore(adapters.NewPGXAdapter(db), options...)
}

// NewCatalogStoreFromPGXPoolWithReplica creates a new CatalogStore that sends
// catalog reads to a replica pool while history writes stay on the primary.
func NewCatalogStoreFromPGXPoolWithReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (CatalogStore, error) {
	if db == nil || replica == nil {
		return CatalogStore{}, catalog.ErrNilDatabaseConnection
	}

	return newCatalogStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewCatalogStoreFromSQLDB creates a new CatalogStore using a sql.DB with optional configuration.
func NewCatalogStoreFromSQLDB(db *sql.DB, options ...Option) (CatalogStore, error) {
	if db == nil {
		return CatalogStore{}, catalog.ErrNilDatabaseConnection
	}

	return newCatalogStore(adapters.NewSQLAdapter(db), options...)
}

// NewCatalogStoreFromSQLX creates a new CatalogStore using a sqlx.DB with optional configuration.
func NewCatalogStoreFromSQLX(db *sqlx.DB, options ...Option) (CatalogStore, error) {
	if db == nil {
		return CatalogStore{}, catalog.ErrNilDatabaseConnection
	}

	return newCatalogStore(adapters.NewSQLXAdapter(db), options...)
}

func newCatalogStore(db adapters.DBAdapter, options ...Option) (CatalogStore, error) {
	cs := CatalogStore{
		db:                  db,
		booksTableName:      defaultBooksTableName,
		loansTableName:      defaultLoansTableName,
		categoriesTableName: defaultCategoriesTableName,
		historyTableName:    defaultHistoryTableName,
	}

	for _, option := range options {
		if err := option(&cs); err != nil {
			return CatalogStore{}, err
		}
	}

	return cs, nil
}

// SearchBooks resolves a catalog.FilterSpec into an ordered, optionally
// paginated result set.
//
// The total count of the filtered set is computed first with the same filter,
// so it stays consistent with the returned page and lets the requested page
// number clamp into the valid range before slicing. In all-pages mode the
// returned SearchResult carries a nil Page.
func (cs CatalogStore) SearchBooks(ctx context.Context, spec catalog.FilterSpec) (catalog.SearchResult, error) {
	var empty catalog.SearchResult

	countQuery, buildCountErr := cs.buildCountQuery(spec)
	if buildCountErr != nil {
		cs.logError(ctx, logMsgBuildQueryFailed, logAttrError, buildCountErr.Error())
		return empty, buildCountErr
	}

	totalCount, countErr := cs.executeCountQuery(ctx, countQuery)
	if countErr != nil {
		return empty, countErr
	}

	var pageInfo *catalog.PageInfo
	if spec.Page().Mode() == catalog.PageModeFixed {
		info := catalog.BuildPageInfo(totalCount, spec.Page().Number())
		pageInfo = &info
	}

	searchQuery, buildSearchErr := cs.buildSearchQuery(spec, pageInfo)
	if buildSearchErr != nil {
		cs.logError(ctx, logMsgBuildQueryFailed, logAttrError, buildSearchErr.Error())
		return empty, buildSearchErr
	}

	rows, duration, queryErr := cs.executeQuery(ctx, searchQuery, logActionSearch, catalog.ErrQueryingBooksFailed)
	if queryErr != nil {
		return empty, queryErr
	}
	defer cs.closeRows(rows)

	books, scanErr := cs.scanBooks(ctx, rows)
	if scanErr != nil {
		return empty, scanErr
	}

	cs.logOperation(
		ctx,
		logMsgSearchCompleted,
		logAttrBookCount, len(books),
		logAttrTotalCount, totalCount,
		logAttrDurationMS, durationToMilliseconds(duration))

	return catalog.SearchResult{Books: books, TotalCount: totalCount, Page: pageInfo}, nil
}

// SuggestTerms returns up to 10 candidate strings matching the partial term
// as a case-insensitive substring of title or author, independent of the main
// pipeline's filters and pagination.
//
// An empty or whitespace-only term yields an empty list without touching the
// database, so the autocomplete channel can never leak the full catalog.
func (cs CatalogStore) SuggestTerms(ctx context.Context, partialTerm string) ([]string, error) {
	partialTerm = strings.TrimSpace(partialTerm)
	if partialTerm == "" {
		return []string{}, nil
	}

	pattern := containsPattern(partialTerm)
	suggestions := make([]string, 0, suggestionLimit)
	seen := make(map[string]struct{}, suggestionLimit)

	for _, column := range []string{colTitle, colAuthor} {
		values, queryErr := cs.querySuggestionColumn(ctx, column, pattern)
		if queryErr != nil {
			return nil, queryErr
		}

		for _, value := range values {
			normalized := strings.ToLower(value)
			if _, duplicate := seen[normalized]; duplicate {
				continue
			}

			seen[normalized] = struct{}{}
			suggestions = append(suggestions, value)

			if len(suggestions) == suggestionLimit {
				cs.logOperation(ctx, logMsgSuggestionsResolved, logAttrSuggestionCount, len(suggestions))
				return suggestions, nil
			}
		}
	}

	cs.logOperation(ctx, logMsgSuggestionsResolved, logAttrSuggestionCount, len(suggestions))

	return suggestions, nil
}

// ListCategories returns all categories ordered by name, for rendering the
// search controls alongside a result set.
func (cs CatalogStore) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(cs.categoriesTableName).
		Select(colID, colName, colDescription).
		Order(goqu.C(colName).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, errors.Join(catalog.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, _, queryErr := cs.executeQuery(ctx, sqlQuery, logActionCategories, catalog.ErrQueryingCategoriesFailed)
	if queryErr != nil {
		return nil, queryErr
	}
	defer cs.closeRows(rows)

	categories := make([]catalog.Category, 0)

	for rows.Next() {
		var category catalog.Category
		if scanErr := rows.Scan(&category.ID, &category.Name, &category.Description); scanErr != nil {
			cs.logError(ctx, logMsgScanRowFailed, logAttrError, scanErr.Error())
			return nil, errors.Join(catalog.ErrScanningDBRowFailed, scanErr)
		}

		categories = append(categories, category)
	}

	return categories, nil
}

// ListLanguages returns the distinct non-empty languages of the catalog in
// ascending order, for populating the language filter control.
func (cs CatalogStore) ListLanguages(ctx context.Context) ([]string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(cs.booksTableName).
		Select(colLanguage).
		Distinct().
		Where(goqu.C(colLanguage).Neq("")).
		Order(goqu.C(colLanguage).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, errors.Join(catalog.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, _, queryErr := cs.executeQuery(ctx, sqlQuery, logActionLanguages, catalog.ErrQueryingLanguagesFailed)
	if queryErr != nil {
		return nil, queryErr
	}
	defer cs.closeRows(rows)

	languages := make([]string, 0)

	for rows.Next() {
		var language string
		if scanErr := rows.Scan(&language); scanErr != nil {
			cs.logError(ctx, logMsgScanRowFailed, logAttrError, scanErr.Error())
			return nil, errors.Join(catalog.ErrScanningDBRowFailed, scanErr)
		}

		languages = append(languages, language)
	}

	return languages, nil
}

// RecordSearch appends one catalog.SearchQueryRecord to the history table.
// Records never conflict across owners and are never de-duplicated: two
// identical submissions from the same owner both succeed and both appear.
func (cs CatalogStore) RecordSearch(ctx context.Context, record catalog.SearchQueryRecord) error {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(cs.historyTableName).
		Rows(goqu.Record{
			colID:        record.ID.String(),
			colOwnerKey:  record.OwnerKey,
			colTerm:      record.Term,
			colParams:    goqu.L(castJsonb, string(record.ParamsJSON)),
			colCreatedAt: record.CreatedAt,
		})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		cs.logError(ctx, logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return errors.Join(catalog.ErrBuildingQueryFailed, toSQLErr)
	}

	start := time.Now()
	_, execErr := cs.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	cs.logQueryWithDuration(ctx, sqlQuery, logActionRecordHistory, duration)

	if execErr != nil {
		cs.logError(ctx, logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		return errors.Join(catalog.ErrRecordingSearchFailed, execErr)
	}

	cs.logOperation(ctx, logMsgHistoryRecorded, logAttrDurationMS, durationToMilliseconds(duration))

	return nil
}

// ListSearchHistory returns the most recent search records of a single owner,
// newest first, capped at 100. An empty owner key means the caller cannot be
// identified, so its history is empty by definition and the database is not
// queried.
func (cs CatalogStore) ListSearchHistory(ctx context.Context, ownerKey string) ([]catalog.SearchQueryRecord, error) {
	if ownerKey == "" {
		return []catalog.SearchQueryRecord{}, nil
	}

	selectStmt := goqu.Dialect(dialectPostgres).
		From(cs.historyTableName).
		Select(colID, colOwnerKey, colTerm, colParams, colCreatedAt).
		Where(goqu.C(colOwnerKey).Eq(ownerKey)).
		Order(goqu.C(colCreatedAt).Desc(), goqu.C(colID).Desc()).
		Limit(historyLimit)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		cs.logError(ctx, logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return nil, errors.Join(catalog.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, duration, queryErr := cs.executeQuery(ctx, sqlQuery, logActionListHistory, catalog.ErrQueryingHistoryFailed)
	if queryErr != nil {
		return nil, queryErr
	}
	defer cs.closeRows(rows)

	records := make([]catalog.SearchQueryRecord, 0)

	for rows.Next() {
		var rawID string
		record := catalog.SearchQueryRecord{}

		scanErr := rows.Scan(&rawID, &record.OwnerKey, &record.Term, &record.ParamsJSON, &record.CreatedAt)
		if scanErr != nil {
			cs.logError(ctx, logMsgScanRowFailed, logAttrError, scanErr.Error())
			return nil, errors.Join(catalog.ErrScanningDBRowFailed, scanErr)
		}

		recordID, parseErr := uuid.Parse(rawID)
		if parseErr != nil {
			cs.logError(ctx, logMsgBuildRecordFailed, logAttrError, parseErr.Error())
			return nil, errors.Join(catalog.ErrScanningDBRowFailed, parseErr)
		}

		record.ID = recordID
		records = append(records, record)
	}

	cs.logOperation(
		ctx,
		logMsgHistoryListed,
		logAttrRecordCount, len(records),
		logAttrDurationMS, durationToMilliseconds(duration))

	return records, nil
}

// buildBaseQuery assembles the shared FROM/JOIN/WHERE part of the search and
// count queries: books left-joined against the grouped count of outstanding
// loans and against categories, filtered by the spec.
//
// The active loan count is a set-level aggregate pushed into the query, never
// a per-record post-fetch loop.
func (cs CatalogStore) buildBaseQuery(spec catalog.FilterSpec) *goqu.SelectDataset {
	builder := goqu.Dialect(dialectPostgres)

	activeLoanCounts := builder.
		From(cs.loansTableName).
		Select(goqu.C(colBookID), goqu.COUNT(goqu.Star()).As(colActiveLoans)).
		Where(goqu.C(colReturnedAt).IsNull()).
		GroupBy(goqu.C(colBookID))

	selectStmt := builder.
		From(goqu.T(cs.booksTableName).As(aliasBooks)).
		LeftJoin(
			activeLoanCounts.As(aliasLoans),
			goqu.On(qualified(aliasLoans, colBookID).Eq(qualified(aliasBooks, colID))),
		).
		LeftJoin(
			goqu.T(cs.categoriesTableName).As(aliasCategories),
			goqu.On(qualified(aliasCategories, colID).Eq(qualified(aliasBooks, colCategoryID))),
		)

	return selectStmt.Where(filterExpressions(spec)...)
}

// filterExpressions translates a catalog.FilterSpec into WHERE expressions.
// Textual comparisons are case-insensitive substring matches via ILIKE with
// LIKE metacharacters escaped; absent constraints add no expression.
func filterExpressions(spec catalog.FilterSpec) []goqu.Expression {
	expressions := make([]goqu.Expression, 0)

	switch spec.Mode() {
	case catalog.FilterModeFreeText:
		pattern := containsPattern(spec.Term())
		expressions = append(expressions, goqu.Or(
			qualified(aliasBooks, colTitle).ILike(pattern),
			qualified(aliasBooks, colAuthor).ILike(pattern),
			qualified(aliasBooks, colCode).ILike(pattern),
		))

	case catalog.FilterModeFields:
		if title := spec.FieldTitle(); title != "" {
			expressions = append(expressions, qualified(aliasBooks, colTitle).ILike(containsPattern(title)))
		}

		if author := spec.FieldAuthor(); author != "" {
			expressions = append(expressions, qualified(aliasBooks, colAuthor).ILike(containsPattern(author)))
		}

		if code := spec.FieldCode(); code != "" {
			expressions = append(expressions, qualified(aliasBooks, colCode).ILike(containsPattern(code)))
		}

	case catalog.FilterModeNone:
	}

	if spec.AvailableOnly() {
		expressions = append(expressions, activeLoansExpression().Lt(qualified(aliasBooks, colCopiesTotal)))
	}

	if categoryID := spec.CategoryID(); categoryID != 0 {
		expressions = append(expressions, qualified(aliasBooks, colCategoryID).Eq(categoryID))
	}

	if language := spec.Language(); language != "" {
		expressions = append(expressions, goqu.L("LOWER(?)", qualified(aliasBooks, colLanguage)).Eq(strings.ToLower(language)))
	}

	if yearMin := spec.YearMin(); yearMin != 0 {
		expressions = append(expressions, qualified(aliasBooks, colEditionYear).Gte(yearMin))
	}

	if yearMax := spec.YearMax(); yearMax != 0 {
		expressions = append(expressions, qualified(aliasBooks, colEditionYear).Lte(yearMax))
	}

	return expressions
}

// orderedExpressions maps a sort key to its ORDER BY clause. Every ordering
// ends with the record id ascending, so ties resolve the same way on every
// request and page boundaries stay stable.
func orderedExpressions(key catalog.SortKey) []exp.OrderedExpression {
	tieBreak := qualified(aliasBooks, colID).Asc()

	switch key {
	case catalog.SortByAuthor:
		return []exp.OrderedExpression{goqu.L("LOWER(?)", qualified(aliasBooks, colAuthor)).Asc(), tieBreak}

	case catalog.SortByAvailability:
		return []exp.OrderedExpression{availableCopiesExpression().Desc(), tieBreak}

	default:
		return []exp.OrderedExpression{goqu.L("LOWER(?)", qualified(aliasBooks, colTitle)).Asc(), tieBreak}
	}
}

func (cs CatalogStore) buildSearchQuery(spec catalog.FilterSpec, pageInfo *catalog.PageInfo) (sqlQueryString, error) {
	selectStmt := cs.buildBaseQuery(spec).
		Select(
			qualified(aliasBooks, colID),
			qualified(aliasBooks, colTitle),
			qualified(aliasBooks, colAuthor),
			qualified(aliasBooks, colCode),
			goqu.L("COALESCE(?, 0)", qualified(aliasBooks, colCategoryID)).As(colCategoryID),
			goqu.L("COALESCE(?, '')", qualified(aliasCategories, colName)).As(colCategoryName),
			qualified(aliasBooks, colLanguage),
			qualified(aliasBooks, colPublisher),
			goqu.L("COALESCE(?, 0)", qualified(aliasBooks, colEditionYear)).As(colEditionYear),
			qualified(aliasBooks, colCopiesTotal),
			activeLoansExpression().As(colActiveLoans),
		).
		Order(orderedExpressions(spec.SortKey())...)

	if pageInfo != nil {
		selectStmt = selectStmt.
			Limit(uint(catalog.FixedPageSize)).
			Offset(uint(pageInfo.Offset()))
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(catalog.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (cs CatalogStore) buildCountQuery(spec catalog.FilterSpec) (sqlQueryString, error) {
	countStmt := cs.buildBaseQuery(spec).Select(goqu.COUNT(goqu.Star()))

	sqlQuery, _, toSQLErr := countStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(catalog.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (cs CatalogStore) querySuggestionColumn(ctx context.Context, column string, pattern string) ([]string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(cs.booksTableName).
		Select(goqu.C(column)).
		Distinct().
		Where(goqu.C(column).ILike(pattern)).
		Order(goqu.C(column).Asc()).
		Limit(suggestionLimit)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		cs.logError(ctx, logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return nil, errors.Join(catalog.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, _, queryErr := cs.executeQuery(ctx, sqlQuery, logActionSuggest, catalog.ErrQueryingSuggestionsFailed)
	if queryErr != nil {
		return nil, queryErr
	}
	defer cs.closeRows(rows)

	values := make([]string, 0, suggestionLimit)

	for rows.Next() {
		var value string
		if scanErr := rows.Scan(&value); scanErr != nil {
			cs.logError(ctx, logMsgScanRowFailed, logAttrError, scanErr.Error())
			return nil, errors.Join(catalog.ErrScanningDBRowFailed, scanErr)
		}

		values = append(values, value)
	}

	return values, nil
}

// executeQuery executes the SQL query and returns rows with timing information.
func (cs CatalogStore) executeQuery(
	ctx context.Context,
	sqlQuery string,
	action string,
	sentinel error,
) (adapters.DBRows, queryDuration, error) {

	start := time.Now()
	rows, queryErr := cs.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	cs.logQueryWithDuration(ctx, sqlQuery, action, duration)

	if queryErr != nil {
		cs.logError(ctx, logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return nil, duration, errors.Join(sentinel, queryErr)
	}

	return rows, duration, nil
}

func (cs CatalogStore) executeCountQuery(ctx context.Context, sqlQuery string) (int, error) {
	rows, _, queryErr := cs.executeQuery(ctx, sqlQuery, logActionCount, catalog.ErrQueryingBooksFailed)
	if queryErr != nil {
		return 0, queryErr
	}
	defer cs.closeRows(rows)

	totalCount := 0

	if rows.Next() {
		if scanErr := rows.Scan(&totalCount); scanErr != nil {
			cs.logError(ctx, logMsgScanRowFailed, logAttrError, scanErr.Error())
			return 0, errors.Join(catalog.ErrScanningDBRowFailed, scanErr)
		}
	}

	return totalCount, nil
}

func (cs CatalogStore) scanBooks(ctx context.Context, rows adapters.DBRows) (catalog.Books, error) {
	books := make(catalog.Books, 0)

	for rows.Next() {
		book := catalog.Book{}

		scanErr := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Code,
			&book.CategoryID,
			&book.CategoryName,
			&book.Language,
			&book.Publisher,
			&book.EditionYear,
			&book.CopiesTotal,
			&book.ActiveLoans,
		)
		if scanErr != nil {
			cs.logError(ctx, logMsgScanRowFailed, logAttrError, scanErr.Error())
			return nil, errors.Join(catalog.ErrScanningDBRowFailed, scanErr)
		}

		books = append(books, book)
	}

	return books, nil
}

// closeRows safely closes database rows and logs any errors.
func (cs CatalogStore) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if cs.logger != nil {
			cs.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// logQueryWithDuration logs SQL queries with execution time at debug level if a logger is configured.
func (cs CatalogStore) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration queryDuration) {
	if cs.contextualLogger != nil {
		cs.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
		return
	}

	if cs.logger != nil {
		cs.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (cs CatalogStore) logOperation(ctx context.Context, action string, args ...any) {
	if cs.contextualLogger != nil {
		cs.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if cs.logger != nil {
		cs.logger.Info(logMsgOperation+action, args...)
	}
}

func (cs CatalogStore) logError(ctx context.Context, msg string, args ...any) {
	if cs.contextualLogger != nil {
		cs.contextualLogger.ErrorContext(ctx, msg, args...)
		return
	}

	if cs.logger != nil {
		cs.logger.Error(msg, args...)
	}
}

func qualified(alias string, column string) exp.IdentifierExpression {
	return goqu.I(alias + "." + column)
}

func activeLoansExpression() exp.LiteralExpression {
	return goqu.L("COALESCE(?, 0)", qualified(aliasLoans, colActiveLoans))
}

func availableCopiesExpression() exp.LiteralExpression {
	return goqu.L("(? - COALESCE(?, 0))", qualified(aliasBooks, colCopiesTotal), qualified(aliasLoans, colActiveLoans))
}

// containsPattern builds a case-insensitive substring ILIKE pattern with LIKE
// metacharacters in the term escaped.
func containsPattern(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(term) + "%"
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
