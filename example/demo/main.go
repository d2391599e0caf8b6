// Command demo wires the catalog query pipeline against a local Postgres
// database and runs a few representative requests: a free-text search, a
// filtered and sorted page, an autocomplete lookup, a CSV export, and the
// resulting search history.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"

	"github.com/acervolib/catalog-query-go/catalog"
	"github.com/acervolib/catalog-query-go/catalog/oteladapters"
	"github.com/acervolib/catalog-query-go/catalog/postgresengine"
	"github.com/acervolib/catalog-query-go/config"
	"github.com/acervolib/catalog-query-go/export"
	"github.com/acervolib/catalog-query-go/query"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Demo failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	pool, poolErr := config.OpenPGXPool(ctx, config.PostgresDSN())
	if poolErr != nil {
		return fmt.Errorf("failed to connect to postgres: %w", poolErr)
	}
	defer pool.Close()

	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)

	store, storeErr := postgresengine.NewCatalogStoreFromPGXPool(
		pool,
		postgresengine.WithContextualLogger(logger),
	)
	if storeErr != nil {
		return fmt.Errorf("failed to create catalog store: %w", storeErr)
	}

	handler, handlerErr := query.NewHandler(store, query.WithContextualLogger(logger))
	if handlerErr != nil {
		return fmt.Errorf("failed to create query handler: %w", handlerErr)
	}

	if err := printFilterChoices(ctx, store); err != nil {
		return err
	}

	identity := catalog.AuthenticatedUser("demo-user")

	if err := runFreeTextSearch(ctx, handler, identity); err != nil {
		return err
	}

	if err := runFieldSearch(ctx, handler, identity); err != nil {
		return err
	}

	if err := runSuggestions(ctx, handler, identity); err != nil {
		return err
	}

	if err := runExport(ctx, handler, identity); err != nil {
		return err
	}

	return printHistory(ctx, handler, identity)
}

func printFilterChoices(ctx context.Context, store postgresengine.CatalogStore) error {
	categories, categoriesErr := store.ListCategories(ctx)
	if categoriesErr != nil {
		return fmt.Errorf("category listing failed: %w", categoriesErr)
	}

	languages, languagesErr := store.ListLanguages(ctx)
	if languagesErr != nil {
		return fmt.Errorf("language listing failed: %w", languagesErr)
	}

	fmt.Printf("Filter choices: %d categories, languages %v\n", len(categories), languages)

	return nil
}

func runFreeTextSearch(ctx context.Context, handler query.Handler, identity catalog.Identity) error {
	params := url.Values{}
	params.Set(catalog.ParamTerm, "machado")

	response, err := handler.Resolve(ctx, params, identity)
	if err != nil {
		return fmt.Errorf("free-text search failed: %w", err)
	}

	fmt.Printf("Free-text search for %q: %d matches\n", "machado", response.Result.TotalCount)
	printBooks(response.Result.Books)

	return nil
}

func runFieldSearch(ctx context.Context, handler query.Handler, identity catalog.Identity) error {
	params := url.Values{}
	params.Set(catalog.ParamAvailableOnly, "on")
	params.Set(catalog.ParamSort, "availability")

	response, err := handler.Resolve(ctx, params, identity)
	if err != nil {
		return fmt.Errorf("filtered search failed: %w", err)
	}

	page := response.Result.Page
	fmt.Printf("Available books by availability: page %d of %d (%d total)\n",
		page.Page, page.TotalPages, page.TotalCount)
	printBooks(response.Result.Books)

	return nil
}

func runSuggestions(ctx context.Context, handler query.Handler, identity catalog.Identity) error {
	params := url.Values{}
	params.Set(catalog.ParamTerm, "ma")
	params.Set(catalog.ParamSuggest, "1")

	response, err := handler.Resolve(ctx, params, identity)
	if err != nil {
		return fmt.Errorf("suggestion lookup failed: %w", err)
	}

	fmt.Printf("Suggestions for %q: %v\n", "ma", response.Suggestions)

	return nil
}

func runExport(ctx context.Context, handler query.Handler, identity catalog.Identity) error {
	params := url.Values{}
	params.Set(catalog.ParamTerm, "machado")
	params.Set(catalog.ParamExport, string(export.FormatCSV))

	response, err := handler.Resolve(ctx, params, identity)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("Export %s (%s): %d bytes\n",
		response.Export.Filename, response.Export.ContentType, len(response.Export.Data))

	return nil
}

func printHistory(ctx context.Context, handler query.Handler, identity catalog.Identity) error {
	records, err := handler.History(ctx, identity)
	if err != nil {
		return fmt.Errorf("history listing failed: %w", err)
	}

	fmt.Printf("Search history (%d entries):\n", len(records))
	for _, record := range records {
		fmt.Printf("  %s  term=%q  params=%s\n",
			record.CreatedAt.Format("2006-01-02 15:04:05"), record.Term, record.ParamsJSON)
	}

	return nil
}

func printBooks(books catalog.Books) {
	for _, book := range books {
		fmt.Printf("  [%s] %s by %s (%d available of %d)\n",
			book.Code, book.Title, book.Author, book.Available(), book.CopiesTotal)
	}
}
