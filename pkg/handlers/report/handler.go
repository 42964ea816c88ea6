package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/de-tools/bp-atlas/pkg/adapters"
	"github.com/de-tools/bp-atlas/pkg/models/api"
	"github.com/de-tools/bp-atlas/pkg/models/domain"
	"github.com/de-tools/bp-atlas/pkg/models/store"
	"github.com/de-tools/bp-atlas/pkg/services/ingest"
	"github.com/de-tools/bp-atlas/pkg/services/plausibility"
	"github.com/de-tools/bp-atlas/pkg/store/duckdb/readings"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	maxUploadBytes = 32 << 20
	dateLayout     = "2006-01-02"
)

type Parser interface {
	Parse(ctx context.Context, src ingest.Source) (*domain.Report, error)
}

type Handler struct {
	parser Parser
	store  readings.Store
	limits plausibility.Limits
}

// NewHandler wires the report endpoints. store may be nil, in which case
// the stored report endpoints answer 503.
func NewHandler(parser Parser, store readings.Store, limits plausibility.Limits) *Handler {
	return &Handler{
		parser: parser,
		store:  store,
		limits: limits,
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeJSON(w, r, status, api.ErrorResponse{Error: err.Error()})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// ParseUpload parses a PDF sent as the multipart field "file".
func (h *Handler) ParseUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("missing 'file' field"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	h.parseAndRespond(w, r, ingest.Source{Location: header.Filename, Data: data})
}

// ParseText parses page text sent as JSON.
func (h *Handler) ParseText(w http.ResponseWriter, r *http.Request) {
	var req api.ParseTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Pages == nil {
		req.Pages = []string{}
	}

	h.parseAndRespond(w, r, ingest.Source{Pages: req.Pages})
}

func (h *Handler) parseAndRespond(w http.ResponseWriter, r *http.Request, src ingest.Source) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	rep, err := h.parser.Parse(ctx, src)
	if err != nil {
		var perr *domain.ParseError
		if errors.As(err, &perr) {
			writeJSON(w, r, http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error(), Kind: perr.Kind.String()})
			return
		}
		logger.Error().Err(err).Str("source", src.String()).Msg("failed to parse report")
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	response := adapters.MapReportDomainToApi(rep)
	check := adapters.MapPlausibilityDomainToApi(plausibility.Check(rep, h.limits))
	response.Plausibility = &check

	if r.URL.Query().Get("store") == "true" {
		if h.store == nil {
			writeError(w, r, http.StatusServiceUnavailable, fmt.Errorf("storage is not configured"))
			return
		}
		rec, err := adapters.MapDomainReportToStore(rep, src.String())
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, err)
			return
		}
		id, err := h.store.AddReport(ctx, rec)
		if err != nil {
			logger.Error().Err(err).Msg("failed to store report")
			writeError(w, r, http.StatusInternalServerError, fmt.Errorf("failed to store report"))
			return
		}
		response.ID = id
		response.Source = src.String()
		writeJSON(w, r, http.StatusCreated, response)
		return
	}

	writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) requireStore(w http.ResponseWriter, r *http.Request) bool {
	if h.store == nil {
		writeError(w, r, http.StatusServiceUnavailable, fmt.Errorf("storage is not configured"))
		return false
	}
	return true
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w, r) {
		return
	}
	ctx := r.Context()

	reports, err := h.store.ListReports(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list reports")
		writeError(w, r, http.StatusInternalServerError, fmt.Errorf("failed to list reports"))
		return
	}

	response := make([]api.ReportListItem, 0, len(reports))
	for _, rep := range reports {
		response = append(response, adapters.MapStoreReportToApiListItem(rep))
	}
	writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w, r) {
		return
	}
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	rec, err := h.store.GetReport(ctx, id)
	if errors.Is(err, readings.ErrReportNotFound) {
		writeError(w, r, http.StatusNotFound, fmt.Errorf("report %s not found", id))
		return
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("id", id).Msg("failed to get report")
		writeError(w, r, http.StatusInternalServerError, fmt.Errorf("failed to get report"))
		return
	}

	rep, err := adapters.MapStoreReportToDomain(rec)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	response := adapters.MapReportDomainToApi(rep)
	response.ID = rec.ID
	response.Source = rec.Source
	importedAt := rec.ImportedAt
	response.ImportedAt = &importedAt
	check := adapters.MapPlausibilityDomainToApi(plausibility.Check(rep, h.limits))
	response.Plausibility = &check
	writeJSON(w, r, http.StatusOK, response)
}

// ListReadings returns stored readings between the optional from and to
// days, both inclusive.
func (h *Handler) ListReadings(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w, r) {
		return
	}
	ctx := r.Context()

	from, err := parseDay(r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "invalid 'from' date format. Expected format: YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	to, err := parseDay(r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "invalid 'to' date format. Expected format: YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if !to.IsZero() {
		to = to.AddDate(0, 0, 1)
	}

	records, err := h.store.ListReadings(ctx, from, to)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list readings")
		writeError(w, r, http.StatusInternalServerError, fmt.Errorf("failed to list readings"))
		return
	}

	writeJSON(w, r, http.StatusOK, mapReadings(records))
}

func mapReadings(records []store.Reading) []api.Reading {
	response := make([]api.Reading, 0, len(records))
	for _, rec := range records {
		response = append(response, adapters.MapReadingDomainToApi(adapters.MapStoreReadingToDomain(rec)))
	}
	return response
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}
