package web

import (
	"net/http"

	"github.com/amevn/warehouse/internal/store"
	webembed "github.com/amevn/warehouse/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(ledger *store.Ledger) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Ledger:    ledger,
		Templates: templates,
	}

	mux := http.NewServeMux()

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	mux.HandleFunc("GET /{$}", s.ItemsPage)

	mux.HandleFunc("GET /items", s.ItemsPage)
	mux.HandleFunc("GET /items/new", s.ItemNewPage)
	mux.HandleFunc("POST /items/new", s.ItemCreateSubmit)
	mux.HandleFunc("GET /items/{id}", s.ItemDetailPage)
	mux.HandleFunc("GET /items/{id}/log", s.LogEventPage)
	mux.HandleFunc("POST /items/{id}/log", s.LogEventSubmit)

	mux.HandleFunc("GET /scan", s.ScanPage)
	mux.HandleFunc("POST /scan", s.ScanSubmit)

	return mux, nil
}
