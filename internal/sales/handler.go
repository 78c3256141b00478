package sales

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

type saleRequest struct {
	InvoiceNo string          `json:"invoice_no" validate:"required"`
	SaleDate  string          `json:"sale_date" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
}

type otherIncomeRequest struct {
	Source       string          `json:"source" validate:"required"`
	ReceivedDate string          `json:"received_date" validate:"required"`
	Amount       decimal.Decimal `json:"amount"`
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.ListSales)
	r.Post("/", h.CreateSale)
	r.Delete("/{id}", h.DeleteSale)
	r.Get("/other-income", h.ListOtherIncome)
	r.Post("/other-income", h.CreateOtherIncome)
	r.Delete("/other-income/{id}", h.DeleteOtherIncome)
}

func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	period, err := shared.ParsePeriod(r.URL.Query().Get("month"), r.URL.Query().Get("year"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	items, err := h.service.ListSales(r.Context(), period)
	if err != nil {
		h.logger.Error("list sales failed", "error", err, "period", period.String())
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"period": period, "sales": items})
}

func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := httpx.ValidateStruct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	saleDate, err := time.Parse("2006-01-02", req.SaleDate)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "sale_date must be YYYY-MM-DD")
		return
	}
	created, err := h.service.CreateSale(r.Context(), Sale{InvoiceNo: req.InvoiceNo, SaleDate: saleDate, Amount: req.Amount})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid sale ID")
		return
	}
	if err := h.service.DeleteSale(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListOtherIncome(w http.ResponseWriter, r *http.Request) {
	period, err := shared.ParsePeriod(r.URL.Query().Get("month"), r.URL.Query().Get("year"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	items, err := h.service.ListOtherIncome(r.Context(), period)
	if err != nil {
		h.logger.Error("list other income failed", "error", err, "period", period.String())
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"period": period, "other_income": items})
}

func (h *Handler) CreateOtherIncome(w http.ResponseWriter, r *http.Request) {
	var req otherIncomeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := httpx.ValidateStruct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	receivedDate, err := time.Parse("2006-01-02", req.ReceivedDate)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "received_date must be YYYY-MM-DD")
		return
	}
	created, err := h.service.CreateOtherIncome(r.Context(), OtherIncome{Source: req.Source, ReceivedDate: receivedDate, Amount: req.Amount})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) DeleteOtherIncome(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid income ID")
		return
	}
	if err := h.service.DeleteOtherIncome(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
