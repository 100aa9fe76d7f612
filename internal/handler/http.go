// Package handler exposes the research pipeline over HTTP and AMQP.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/sedori-labs/price-research/internal/platform"
	"github.com/sedori-labs/price-research/internal/platform/models"
)

// Researcher runs the research pipeline for one request.
type Researcher interface {
	Research(ctx context.Context, request models.ResearchRequest) (models.ResearchResult, error)
}

// researchRequestBody is the wire shape of POST /research.
type researchRequestBody struct {
	Keyword       string `json:"keyword"`
	PurchasePrice *int   `json:"purchasePrice"`
	Image         string `json:"image"`
	ImageMimeType string `json:"imageMimeType"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPHandler handles research requests over HTTP.
type HTTPHandler struct {
	researcher Researcher
	timeout    time.Duration
	logger     *zerolog.Logger
}

// NewHTTPHandler returns new HTTPHandler.
func NewHTTPHandler(researcher Researcher, timeout time.Duration, logger *zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		researcher: researcher,
		timeout:    timeout,
		logger:     logger,
	}
}

// Router returns the handler's routes mounted on a chi router.
func (h *HTTPHandler) Router() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(h.timeout))

	router.Post("/research", h.handleResearch)
	router.Get("/healthz", h.handleHealthz)

	return router
}

func (h *HTTPHandler) handleResearch(w http.ResponseWriter, r *http.Request) {
	var body researchRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request := models.ResearchRequest{
		Keyword:       body.Keyword,
		PurchasePrice: body.PurchasePrice,
		ImageMimeType: body.ImageMimeType,
	}

	if body.Image != "" {
		image, err := base64.StdEncoding.DecodeString(body.Image)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "image is not valid base64")
			return
		}
		request.Image = image
	}

	result, err := h.researcher.Research(r.Context(), request)
	if err != nil {
		h.writeResearchError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *HTTPHandler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeResearchError maps keyword-resolution failures to 400 and keeps
// everything else a generic 500, with details only in the server log.
func (h *HTTPHandler) writeResearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, platform.ErrNoKeyword):
		h.writeError(w, http.StatusBadRequest, "keyword is required")
	case errors.Is(err, platform.ErrIdentification):
		h.writeError(w, http.StatusBadRequest, "can't identify product from image, please provide a keyword")
	default:
		h.logger.Error().Err(err).Msg("research request failed")
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{Error: message})
}

func (h *HTTPHandler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("can't write response")
	}
}
