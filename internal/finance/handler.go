package finance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/gudang-erp/gudang-erp/internal/platform/httpx"
	"github.com/gudang-erp/gudang-erp/internal/shared"
)

// PDFRenderer turns a statement into a downloadable document.
type PDFRenderer func(Statement) ([]byte, error)

// WarmupFunc enqueues a background regeneration for a period. Nil disables
// the warmup endpoint.
type WarmupFunc func(ctx context.Context, period shared.Period) error

type Handler struct {
	logger  *slog.Logger
	service *Service
	render  PDFRenderer
	warmup  WarmupFunc
}

func NewHandler(logger *slog.Logger, service *Service, render PDFRenderer, warmup WarmupFunc) *Handler {
	return &Handler{logger: logger, service: service, render: render, warmup: warmup}
}

type generateRequest struct {
	Month int `json:"month" validate:"required,min=1,max=12"`
	Year  int `json:"year" validate:"required,gt=0"`
}

// MountRoutes registers the profit and loss endpoints. Generation and export
// sit behind the caller-provided auth middleware, retrieval does not.
func (h *Handler) MountRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/pnl", h.Retrieve)
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/pnl/generate", h.Generate)
		r.Post("/pnl/warmup", h.Warmup)
		r.With(httprate.LimitByIP(10, time.Minute)).Get("/pnl/export.pdf", h.ExportPDF)
	})
}

// Generate recomputes and stores the statement for the requested period.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed body", httpx.ErrValidation))
		return
	}
	if err := httpx.ValidateStruct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	statement, err := h.service.Generate(r.Context(), shared.Period{Month: req.Month, Year: req.Year})
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, statement)
}

// Warmup enqueues a background regeneration for the requested period.
func (h *Handler) Warmup(w http.ResponseWriter, r *http.Request) {
	if h.warmup == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "Warmup Unavailable", "background queue is not configured")
		return
	}
	var req generateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed body", httpx.ErrValidation))
		return
	}
	if err := httpx.ValidateStruct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	period := shared.Period{Month: req.Month, Year: req.Year}
	if err := h.warmup(r.Context(), period); err != nil {
		h.logger.Error("enqueue warmup failed", "error", err, "period", period.String())
		httpx.RespondError(w, fmt.Errorf("%w: enqueue warmup", httpx.ErrDependency))
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]any{
		"period": period,
		"status": "queued",
	})
}

// Retrieve serves the stored statement for a period without recomputing it.
func (h *Handler) Retrieve(w http.ResponseWriter, r *http.Request) {
	period, err := shared.ParsePeriod(r.URL.Query().Get("month"), r.URL.Query().Get("year"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	statement, err := h.service.Retrieve(r.Context(), period)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, statement)
}

// ExportPDF serves the stored statement as a PDF attachment.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	period, err := shared.ParsePeriod(r.URL.Query().Get("month"), r.URL.Query().Get("year"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	statement, err := h.service.Retrieve(r.Context(), period)
	if err != nil {
		h.respondError(w, err)
		return
	}
	payload, err := h.render(statement)
	if err != nil {
		h.logger.Error("pdf render failed", "error", err, "period", period.String())
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=laba-rugi-%s.pdf", period.String()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrAggregation) {
		h.logger.Error("statement aggregation failed", "error", err)
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrDependency, err.Error()))
		return
	}
	httpx.RespondError(w, err)
}
