package rest

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"library-fees/internal/service"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) exportInventory(w http.ResponseWriter, r *http.Request) {
	exportID, err := h.exports.StartInventoryExport(r.Context())
	if err != nil {
		log.Printf("[HTTP] startInventoryExport error: %v", err)
		ErrorInternal(w, "failed to start export")
		return
	}

	SuccessAccepted(w, "export queued", map[string]interface{}{
		"export_id": exportID,
	})
}

func (h *Handler) listExports(w http.ResponseWriter, r *http.Request) {
	exports, err := h.exports.ListExports(r.Context())
	if err != nil {
		log.Printf("[HTTP] listExports error: %v", err)
		ErrorInternal(w, "failed to get exports")
		return
	}

	Success(w, "", exports)
}

func (h *Handler) getExport(w http.ResponseWriter, r *http.Request) {
	exportIDParam := chi.URLParam(r, "export_id")
	if exportIDParam == "" {
		ErrorBadRequest(w, "export_id is required")
		return
	}
	exportID := exportIDParam
	if !strings.HasPrefix(exportID, "exports:") {
		exportID = "exports:" + exportID
	}

	export, err := h.exports.GetExport(r.Context(), exportID)
	if errors.Is(err, service.ErrExportNotFound) {
		ErrorNotFound(w, "export not found")
		return
	}
	if err != nil {
		log.Printf("[HTTP] getExport error: %v", err)
		ErrorInternal(w, "failed to get export")
		return
	}

	Success(w, "", export)
}
