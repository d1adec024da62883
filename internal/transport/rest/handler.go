package rest

import (
	"context"
	"net/http"
	"time"

	"library-fees/internal/domain"
	"library-fees/internal/fees"
	"library-fees/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type FeeQuoter interface {
	QuoteLoan(ctx context.Context, loanID int64, rules fees.Rules) (service.FeeQuote, error)
	Quote(fact fees.LoanFact, rules fees.Rules) (service.FeeQuote, error)
	Demo() ([]service.DemoCase, error)
}

type LoanManager interface {
	Lend(ctx context.Context, req service.LendRequest) (domain.Loan, error)
	Return(ctx context.Context, loanID int64, date domain.Date) (domain.Loan, error)
}

type InventoryReporter interface {
	Summary(ctx context.Context) ([]service.InventoryRow, error)
	Stats(ctx context.Context) (service.InventoryStats, error)
}

type InventoryExporter interface {
	StartInventoryExport(ctx context.Context) (string, error)
	ListExports(ctx context.Context) ([]service.ExportView, error)
	GetExport(ctx context.Context, exportID string) (service.ExportView, error)
}

type Seeder interface {
	Seed(ctx context.Context) error
}

type Handler struct {
	fees      FeeQuoter
	loans     LoanManager
	inventory InventoryReporter
	exports   InventoryExporter
	seed      Seeder
}

func NewHandler(fees FeeQuoter, loans LoanManager, inventory InventoryReporter, exports InventoryExporter, seed Seeder) *Handler {
	return &Handler{
		fees:      fees,
		loans:     loans,
		inventory: inventory,
		exports:   exports,
		seed:      seed,
	}
}

func (h *Handler) InitRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
	)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/public/index.html", http.StatusFound)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		Success(w, "ok", nil)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/inventory", h.inventorySummary)
		r.Get("/inventory/stats", h.inventoryStats)
		r.Post("/seed", h.seedData)

		r.Post("/loans", h.lend)
		r.Post("/loans/{loan_id}/return", h.returnLoan)
		r.Get("/loans/{loan_id}/fee", h.loanFee)

		r.Post("/fees/quote", h.quoteFee)
		r.Get("/fee-demo", h.feeDemo)

		r.Route("/exports", func(r chi.Router) {
			r.Get("/", h.listExports)
			r.Get("/{export_id}", h.getExport)
			r.Post("/inventory", h.exportInventory)
		})
	})

	return r
}
