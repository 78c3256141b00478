package payroll

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/gudang-erp/gudang-erp/internal/platform/httpx"
	"github.com/gudang-erp/gudang-erp/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

type salaryRequest struct {
	EmployeeName string          `json:"employee_name" validate:"required"`
	PayDate      string          `json:"pay_date" validate:"required"`
	Amount       decimal.Decimal `json:"amount"`
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/salaries", h.List)
	r.Post("/salaries", h.Create)
	r.Get("/salaries/{id}", h.Show)
	r.Put("/salaries/{id}", h.Update)
	r.Delete("/salaries/{id}", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	period, err := shared.ParsePeriod(r.URL.Query().Get("month"), r.URL.Query().Get("year"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	items, err := h.service.ListByPeriod(r.Context(), period)
	if err != nil {
		h.logger.Error("list salaries failed", "error", err, "period", period.String())
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"period":   period,
		"salaries": items,
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid salary ID")
		return
	}
	salary, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, salary)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	salary, ok := h.decode(w, r)
	if !ok {
		return
	}
	created, err := h.service.Create(r.Context(), salary)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid salary ID")
		return
	}
	salary, ok := h.decode(w, r)
	if !ok {
		return
	}
	if err := h.service.Update(r.Context(), id, salary); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid salary ID")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Salary, bool) {
	var req salaryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return Salary{}, false
	}
	if err := httpx.ValidateStruct(req); err != nil {
		httpx.RespondError(w, err)
		return Salary{}, false
	}
	payDate, err := time.Parse("2006-01-02", req.PayDate)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "pay_date must be YYYY-MM-DD")
		return Salary{}, false
	}
	return Salary{EmployeeName: req.EmployeeName, PayDate: payDate, Amount: req.Amount}, true
}
