package api

import (
	"net/http"

	"github.com/amevn/warehouse/internal/store"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(ledger *store.Ledger) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{Ledger: ledger}

	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("POST /api/items/{id}/events", itemsHandler.LogEvent)
	mux.HandleFunc("GET /api/items/{id}/qrcode", itemsHandler.QRCode)
	mux.HandleFunc("GET /api/items/{id}/label", itemsHandler.Label)

	mux.HandleFunc("POST /api/scan", itemsHandler.Scan)

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}
