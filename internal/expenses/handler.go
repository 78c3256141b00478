package expenses

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

type expenseRequest struct {
	Date          string          `json:"date" validate:"required"`
	Category      string          `json:"category" validate:"required"`
	Description   string          `json:"description"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}

func (req expenseRequest) toModel() (Expense, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return Expense{}, err
	}
	return Expense{
		Date:          date,
		Category:      Category(req.Category),
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		Amount:        req.Amount,
	}, nil
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	period, err := shared.ParsePeriod(r.URL.Query().Get("month"), r.URL.Query().Get("year"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	items, err := h.service.ListByPeriod(r.Context(), period)
	if err != nil {
		h.logger.Error("list expenses failed", "error", err, "period", period.String())
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"period":   period,
		"expenses": items,
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid expense ID")
		return
	}
	expense, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, expense)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := httpx.ValidateStruct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	expense, err := req.toModel()
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "date must be YYYY-MM-DD")
		return
	}
	created, err := h.service.Create(r.Context(), expense)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid expense ID")
		return
	}
	var req expenseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := httpx.ValidateStruct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	expense, err := req.toModel()
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "date must be YYYY-MM-DD")
		return
	}
	if err := h.service.Update(r.Context(), id, expense); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid expense ID")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
