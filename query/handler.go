// Package query orchestrates the catalog request pipeline: it normalizes raw
// request parameters, resolves them against a catalog store, records the
// search in the caller's history, and routes the outcome to a page response,
// an export artifact, or an autocomplete suggestion list.
//
// Each call runs as one synchronous pipeline; the handler holds no mutable
// state, so a single Handler value is safe for concurrent use.
package query

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/acervolib/catalog-query-go/catalog"
	"github.com/acervolib/catalog-query-go/export"
)

var ErrNilCatalogStoreSupplied = errors.New("nil catalog store supplied")

const (
	spanResolve       = "catalogquery.resolve"
	statusSuccess     = "success"
	statusError       = "error"
	metricResolveTime = "catalogquery_resolve_duration_seconds"
	metricResolved    = "catalogquery_resolved_total"
	metricHistorySkip = "catalogquery_history_write_failures_total"
	labelKind         = "kind"
	labelOutcome      = "outcome"

	logMsgHistoryNotRecorded = "search could not be recorded in history"
	logMsgResolveFailed      = "request resolution failed"
	logAttrError             = "error"
	logAttrKind              = "kind"
)

// CatalogStore defines the store capabilities the Handler needs.
// catalog/postgresengine.CatalogStore satisfies it.
type CatalogStore interface {
	SearchBooks(ctx context.Context, spec catalog.FilterSpec) (catalog.SearchResult, error)
	SuggestTerms(ctx context.Context, partialTerm string) ([]string, error)
	RecordSearch(ctx context.Context, record catalog.SearchQueryRecord) error
	ListSearchHistory(ctx context.Context, ownerKey string) ([]catalog.SearchQueryRecord, error)
}

// Kind tags which of the three response shapes a Response carries.
type Kind int

const (
	// KindPage is a paged (or full) result set with the echoed filter.
	KindPage Kind = iota

	// KindExport is a downloadable artifact built from the full filtered set.
	KindExport

	// KindSuggestions is a bounded list of autocomplete candidates.
	KindSuggestions
)

// Response is the outcome of one resolved request. Exactly the fields
// matching Kind are populated; Filter always echoes the resolved values so
// the caller can re-render its controls.
type Response struct {
	Kind        Kind
	Filter      catalog.FilterSpec
	Result      catalog.SearchResult
	Suggestions []string
	Export      export.Artifact
}

// Handler orchestrates the complete request processing workflow. It handles
// infrastructure concerns like store interaction and observability
// instrumentation, and delegates parameter normalization to the catalog
// package.
type Handler struct {
	store            CatalogStore
	logger           catalog.Logger
	contextualLogger catalog.ContextualLogger
	metrics          catalog.MetricsCollector
	tracing          catalog.TracingCollector
	clock            func() time.Time
}

// Option defines a functional option for configuring a Handler.
type Option func(*Handler) error

// WithLogger sets the logger for the Handler.
func WithLogger(logger catalog.Logger) Option {
	return func(h *Handler) error {
		h.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Handler.
// When set it takes precedence over the plain logger.
func WithContextualLogger(logger catalog.ContextualLogger) Option {
	return func(h *Handler) error {
		h.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Handler.
func WithMetrics(collector catalog.MetricsCollector) Option {
	return func(h *Handler) error {
		h.metrics = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Handler.
func WithTracing(collector catalog.TracingCollector) Option {
	return func(h *Handler) error {
		h.tracing = collector
		return nil
	}
}

// WithClock overrides the time source used for history record timestamps.
func WithClock(clock func() time.Time) Option {
	return func(h *Handler) error {
		h.clock = clock
		return nil
	}
}

// NewHandler creates a new Handler with the provided CatalogStore dependency and options.
func NewHandler(store CatalogStore, options ...Option) (Handler, error) {
	if store == nil {
		return Handler{}, ErrNilCatalogStoreSupplied
	}

	h := Handler{
		store: store,
		clock: time.Now,
	}

	for _, option := range options {
		if err := option(&h); err != nil {
			return Handler{}, err
		}
	}

	return h, nil
}

// Resolve executes the pipeline for one request: filter normalization, store
// query, history write, and routing.
//
//   - suggest flag set: the request goes to the suggestion engine only; no
//     history is written, suggestions are exploratory.
//   - export parameter set to a known format: the full (unpaginated) filtered
//     set is resolved, the search is recorded, and the serialized artifact is
//     returned. An unknown export value degrades to a normal page response.
//   - otherwise: a page (or, in all-pages mode, the whole set) is returned.
//
// A store failure fails the request; no partial result set is returned. A
// history write failure is logged and swallowed: a search that cannot be
// recorded still returns its results.
func (h Handler) Resolve(ctx context.Context, params url.Values, identity catalog.Identity) (Response, error) {
	start := time.Now()
	ctx, span := h.startSpan(ctx, spanResolve)

	spec := catalog.FilterFromParams(params)

	if catalog.SuggestRequested(params) {
		return h.resolveSuggestions(ctx, spec, span, start)
	}

	if format := export.ParseFormat(params.Get(catalog.ParamExport)); format != export.FormatNone {
		return h.resolveExport(ctx, spec, identity, format, span, start)
	}

	result, searchErr := h.store.SearchBooks(ctx, spec)
	if searchErr != nil {
		h.failResolve(ctx, span, start, "page", searchErr)
		return Response{}, searchErr
	}

	h.recordHistory(ctx, spec, identity)
	h.finishResolve(ctx, span, start, "page")

	return Response{Kind: KindPage, Filter: spec, Result: result}, nil
}

// History lists the most recent searches of the calling identity, newest
// first. An unidentifiable caller has an empty history.
func (h Handler) History(ctx context.Context, identity catalog.Identity) ([]catalog.SearchQueryRecord, error) {
	return h.store.ListSearchHistory(ctx, ownerKeyOf(identity))
}

// ExportHistory serializes the caller's history listing into the given format.
func (h Handler) ExportHistory(ctx context.Context, identity catalog.Identity, format export.Format) (export.Artifact, error) {
	records, listErr := h.store.ListSearchHistory(ctx, ownerKeyOf(identity))
	if listErr != nil {
		return export.Artifact{}, listErr
	}

	return export.History(records, format)
}

func (h Handler) resolveSuggestions(
	ctx context.Context,
	spec catalog.FilterSpec,
	span catalog.SpanContext,
	start time.Time,
) (Response, error) {

	suggestions, suggestErr := h.store.SuggestTerms(ctx, spec.Term())
	if suggestErr != nil {
		h.failResolve(ctx, span, start, "suggestions", suggestErr)
		return Response{}, suggestErr
	}

	h.finishResolve(ctx, span, start, "suggestions")

	return Response{Kind: KindSuggestions, Filter: spec, Suggestions: suggestions}, nil
}

func (h Handler) resolveExport(
	ctx context.Context,
	spec catalog.FilterSpec,
	identity catalog.Identity,
	format export.Format,
	span catalog.SpanContext,
	start time.Time,
) (Response, error) {

	result, searchErr := h.store.SearchBooks(ctx, spec.ForExport())
	if searchErr != nil {
		h.failResolve(ctx, span, start, "export", searchErr)
		return Response{}, searchErr
	}

	h.recordHistory(ctx, spec, identity)

	artifact, exportErr := export.Books(result.Books, format)
	if exportErr != nil {
		h.failResolve(ctx, span, start, "export", exportErr)
		return Response{}, exportErr
	}

	h.finishResolve(ctx, span, start, "export")

	return Response{Kind: KindExport, Filter: spec, Export: artifact}, nil
}

// recordHistory persists the resolved search for the calling identity.
// Trivial specs and unidentifiable callers are skipped, and failures are
// logged but never propagated, keeping history best-effort relative to the
// primary query contract.
func (h Handler) recordHistory(ctx context.Context, spec catalog.FilterSpec, identity catalog.Identity) {
	if spec.IsTrivial() || ownerKeyOf(identity) == "" {
		return
	}

	record, buildErr := catalog.BuildSearchQueryRecord(spec, identity, h.clock())
	if buildErr != nil {
		h.logWarn(ctx, logMsgHistoryNotRecorded, logAttrError, buildErr.Error())
		h.countHistoryFailure(ctx)
		return
	}

	if recordErr := h.store.RecordSearch(ctx, record); recordErr != nil {
		h.logWarn(ctx, logMsgHistoryNotRecorded, logAttrError, recordErr.Error())
		h.countHistoryFailure(ctx)
	}
}

func ownerKeyOf(identity catalog.Identity) string {
	if identity == nil {
		return ""
	}

	return identity.OwnerKey()
}

func (h Handler) startSpan(ctx context.Context, name string) (context.Context, catalog.SpanContext) {
	if h.tracing == nil {
		return ctx, nil
	}

	return h.tracing.StartSpan(ctx, name, nil)
}

func (h Handler) finishResolve(ctx context.Context, span catalog.SpanContext, start time.Time, kind string) {
	h.observeResolve(ctx, span, start, kind, statusSuccess)
}

func (h Handler) failResolve(ctx context.Context, span catalog.SpanContext, start time.Time, kind string, cause error) {
	h.logWarn(ctx, logMsgResolveFailed, logAttrKind, kind, logAttrError, cause.Error())
	h.observeResolve(ctx, span, start, kind, statusError)
}

func (h Handler) observeResolve(ctx context.Context, span catalog.SpanContext, start time.Time, kind string, status string) {
	labels := map[string]string{labelKind: kind, labelOutcome: status}

	if h.metrics != nil {
		h.metrics.RecordDuration(metricResolveTime, time.Since(start), labels)
		h.metrics.IncrementCounter(metricResolved, labels)
	}

	if h.tracing != nil && span != nil {
		h.tracing.FinishSpan(span, status, map[string]string{labelKind: kind})
	}
}

func (h Handler) countHistoryFailure(ctx context.Context) {
	if h.metrics == nil {
		return
	}

	if contextual, ok := h.metrics.(catalog.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metricHistorySkip, nil)
		return
	}

	h.metrics.IncrementCounter(metricHistorySkip, nil)
}

func (h Handler) logWarn(ctx context.Context, msg string, args ...any) {
	if h.contextualLogger != nil {
		h.contextualLogger.WarnContext(ctx, msg, args...)
		return
	}

	if h.logger != nil {
		h.logger.Warn(msg, args...)
	}
}
