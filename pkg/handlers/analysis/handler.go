package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/de-tools/deal-atlas/pkg/adapters"
	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/de-tools/deal-atlas/pkg/services/deal"
	"github.com/de-tools/deal-atlas/pkg/services/registry"
	"github.com/rs/zerolog"
)

const (
	maxDocumentBytes = 1 << 20 // 1 MiB
	requestSource    = "request"
)

type Handler struct {
	deals deal.Controller
}

func NewHandler(deals deal.Controller) *Handler {
	return &Handler{deals: deals}
}

// Analyze computes the report of the deal document posted as the request
// body (YAML or JSON). Query parameters: debug=true, profile=NAME.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	opts := deal.Options{Profile: r.URL.Query().Get("profile")}
	if debug := r.URL.Query().Get("debug"); debug != "" {
		parsed, err := strconv.ParseBool(debug)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, errors.New("invalid 'debug' value. Expected true or false"))
			return
		}
		opts.Debug = parsed
	}

	// The body is read up front: decoders do not surface the size limit as a
	// distinct error.
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Errorf("document exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("failed to read request body: %w", err))
		return
	}

	report, err := h.deals.AnalyzeDocument(ctx, requestSource, bytes.NewReader(body), opts)
	if err != nil {
		logger.Warn().Err(err).Str("profile", opts.Profile).Msg("analysis rejected")
		writeError(w, r, statusFor(err), err)
		return
	}

	writeJSON(w, r, http.StatusOK, adapters.MapReportDomainToApi(*report))
}

func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profiles, err := h.deals.ListProfiles(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list profiles")
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, r, http.StatusOK, adapters.MapProfilesDomainToApi(profiles))
}

func statusFor(err error) int {
	var missing *domain.MissingInputError
	var domainErr *domain.DomainError
	var malformed *domain.MalformedInputError

	switch {
	case errors.As(err, &missing), errors.As(err, &domainErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &malformed),
		errors.Is(err, registry.ErrProfileNotFound),
		errors.Is(err, deal.ErrNoProfiles):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeJSON(w, r, status, adapters.MapErrorDomainToApi(err))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
