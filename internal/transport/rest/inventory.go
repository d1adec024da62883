package rest

import (
	"log"
	"net/http"
)

func (h *Handler) inventorySummary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.inventory.Summary(r.Context())
	if err != nil {
		log.Printf("[HTTP] inventorySummary error: %v", err)
		ErrorInternal(w, "failed to load inventory")
		return
	}

	Success(w, "", rows)
}

func (h *Handler) inventoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.inventory.Stats(r.Context())
	if err != nil {
		log.Printf("[HTTP] inventoryStats error: %v", err)
		ErrorInternal(w, "failed to compute statistics")
		return
	}

	Success(w, "", stats)
}

func (h *Handler) seedData(w http.ResponseWriter, r *http.Request) {
	if err := h.seed.Seed(r.Context()); err != nil {
		log.Printf("[HTTP] seed error: %v", err)
		ErrorInternal(w, "failed to seed data")
		return
	}

	SuccessCreated(w, "sample data created", nil)
}
