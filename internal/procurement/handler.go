package procurement

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

type purchaseRequest struct {
	SupplierID   int64           `json:"supplier_id" validate:"required,gt=0"`
	ItemName     string          `json:"item_name" validate:"required"`
	PurchaseDate string          `json:"purchase_date" validate:"required"`
	Price        decimal.Decimal `json:"price"`
}

func (req purchaseRequest) toModel() (Purchase, error) {
	date, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return Purchase{}, err
	}
	return Purchase{
		SupplierID:   req.SupplierID,
		ItemName:     req.ItemName,
		PurchaseDate: date,
		Price:        req.Price,
	}, nil
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/purchases", h.List)
	r.Post("/purchases", h.Create)
	r.Get("/purchases/monthly-total", h.MonthlyTotal)
	r.Get("/purchases/{id}", h.Show)
	r.Put("/purchases/{id}", h.Update)
	r.Delete("/purchases/{id}", h.Delete)
}

// List returns purchases for a single period given as month/year query params.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	period, err := shared.ParsePeriod(r.URL.Query().Get("month"), r.URL.Query().Get("year"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	purchases, err := h.service.ListByPeriod(r.Context(), period)
	if err != nil {
		h.logger.Error("list purchases failed", "error", err, "period", period.String())
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"period":    period,
		"purchases": purchases,
	})
}

// MonthlyTotal serves the computed inventory cost for a period.
func (h *Handler) MonthlyTotal(w http.ResponseWriter, r *http.Request) {
	period, err := shared.ParsePeriod(r.URL.Query().Get("month"), r.URL.Query().Get("year"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	total, err := h.service.MonthlyTotal(r.Context(), period)
	if err != nil {
		h.logger.Error("monthly purchase total failed", "error", err, "period", period.String())
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"period": period,
		"total":  total,
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid purchase ID")
		return
	}
	purchase, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, purchase)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := httpx.ValidateStruct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	purchase, err := req.toModel()
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "purchase_date must be YYYY-MM-DD")
		return
	}
	created, err := h.service.Create(r.Context(), purchase)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid purchase ID")
		return
	}
	var req purchaseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := httpx.ValidateStruct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	purchase, err := req.toModel()
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "purchase_date must be YYYY-MM-DD")
		return
	}
	if err := h.service.Update(r.Context(), id, purchase); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid purchase ID")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
