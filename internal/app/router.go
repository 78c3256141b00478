package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/gudang-erp/gudang-erp/internal/auth"
	"github.com/gudang-erp/gudang-erp/internal/expenses"
	"github.com/gudang-erp/gudang-erp/internal/finance"
	"github.com/gudang-erp/gudang-erp/internal/masterdata/products"
	"github.com/gudang-erp/gudang-erp/internal/masterdata/suppliers"
	"github.com/gudang-erp/gudang-erp/internal/observability"
	"github.com/gudang-erp/gudang-erp/internal/payroll"
	"github.com/gudang-erp/gudang-erp/internal/procurement"
	"github.com/gudang-erp/gudang-erp/internal/sales"
	"github.com/gudang-erp/gudang-erp/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	AuthHandler        *auth.Handler
	AuthMiddleware     func(http.Handler) http.Handler
	SuppliersHandler   *suppliers.Handler
	ProductsHandler    *products.Handler
	ProcurementHandler *procurement.Handler
	ExpensesHandler    *expenses.Handler
	PayrollHandler     *payroll.Handler
	SalesHandler       *sales.Handler
	FinanceHandler     *finance.Handler
	JobHandler         *jobs.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with Gudang defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r)
	})

	// Statement retrieval stays public; generation and export require a token.
	r.Route("/finance", func(r chi.Router) {
		params.FinanceHandler.MountRoutes(r, params.AuthMiddleware)
	})

	r.Group(func(r chi.Router) {
		r.Use(params.AuthMiddleware)

		r.Route("/masterdata/suppliers", func(r chi.Router) {
			params.SuppliersHandler.MountRoutes(r)
		})
		r.Route("/masterdata/products", func(r chi.Router) {
			params.ProductsHandler.MountRoutes(r)
		})
		r.Route("/procurement", func(r chi.Router) {
			params.ProcurementHandler.MountRoutes(r)
		})
		r.Route("/expenses", func(r chi.Router) {
			params.ExpensesHandler.MountRoutes(r)
		})
		r.Route("/payroll", func(r chi.Router) {
			params.PayrollHandler.MountRoutes(r)
		})
		r.Route("/sales", func(r chi.Router) {
			params.SalesHandler.MountRoutes(r)
		})
		if params.JobHandler != nil {
			r.Route("/jobs", func(r chi.Router) {
				params.JobHandler.MountRoutes(r)
			})
		}
	})

	return r
}
