package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/amevn/warehouse/internal/label"
	"github.com/amevn/warehouse/internal/model"
	"github.com/amevn/warehouse/internal/store"
)

// ItemsHandler handles item and event endpoints.
type ItemsHandler struct {
	Ledger *store.Ledger
}

type createItemRequest struct {
	Name            string `json:"name"`
	Brand           string `json:"brand"`
	SKU             string `json:"sku"`
	ItemType        string `json:"itemType"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	InitialQuantity int    `json:"initialQuantity"`
}

type logEventRequest struct {
	Type     model.EventType `json:"type"`
	Quantity int             `json:"quantity"`
	Notes    string          `json:"notes"`
}

type scanRequest struct {
	ID string `json:"id"`
}

// List handles GET /api/items. An optional ?q= filters by name, SKU, or
// brand; results are sorted newest first.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.Ledger.Items()
	items = model.Search(items, r.URL.Query().Get("q"))
	items = model.SortByRecency(items)
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items. Field validation happens here, before the
// store is invoked.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}
	if req.SKU == "" {
		jsonError(w, http.StatusBadRequest, "sku required")
		return
	}
	if req.InitialQuantity <= 0 {
		jsonError(w, http.StatusBadRequest, "initial quantity must be positive")
		return
	}
	if req.ItemType != "" && !model.ValidItemType(req.ItemType) {
		jsonError(w, http.StatusBadRequest, "invalid item type")
		return
	}

	item, err := h.Ledger.CreateItem(r.Context(), store.CreateItemParams{
		Name:            req.Name,
		Brand:           req.Brand,
		SKU:             req.SKU,
		ItemType:        req.ItemType,
		Location:        req.Location,
		Description:     req.Description,
		InitialQuantity: req.InitialQuantity,
	})
	if err != nil {
		slog.Error("failed to create item", "error", err)
		jsonError(w, http.StatusInternalServerError, "could not save changes")
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, ok := h.Ledger.FindByID(r.PathValue("id"))
	if !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// LogEvent handles POST /api/items/{id}/events.
func (h *ItemsHandler) LogEvent(w http.ResponseWriter, r *http.Request) {
	var req logEventRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Boundary checks mirror the store's own validation for fast feedback.
	if req.Quantity <= 0 {
		jsonError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}
	if !req.Type.Valid() {
		jsonError(w, http.StatusBadRequest, "invalid event type")
		return
	}

	item, err := h.Ledger.LogEvent(r.Context(), r.PathValue("id"), req.Type, req.Quantity, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrItemNotFound):
			jsonError(w, http.StatusNotFound, "item not found")
		case store.IsValidation(err):
			jsonError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("failed to log event", "item", r.PathValue("id"), "error", err)
			jsonError(w, http.StatusInternalServerError, "could not save changes")
		}
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Scan handles POST /api/scan: resolves a scanned item id to its item. An
// unknown id is a 404 with a message, not a failure of the scan flow.
func (h *ItemsHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		jsonError(w, http.StatusBadRequest, "id required")
		return
	}

	item, ok := h.Ledger.FindByID(req.ID)
	if !ok {
		jsonError(w, http.StatusNotFound, "Item ID not found. Please check the ID and try again.")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// QRCode handles GET /api/items/{id}/qrcode. The PNG payload encodes exactly
// the item id.
func (h *ItemsHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	item, ok := h.Ledger.FindByID(r.PathValue("id"))
	if !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	size := 160
	if s := r.URL.Query().Get("size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 64 && n <= 1024 {
			size = n
		}
	}

	data, err := label.QR(item.ID, size)
	if err != nil {
		slog.Error("failed to render qr code", "item", item.ID, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to render qr code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write qr response", "error", err)
	}
}

// Label handles GET /api/items/{id}/label: the full printable card PNG.
func (h *ItemsHandler) Label(w http.ResponseWriter, r *http.Request) {
	item, ok := h.Ledger.FindByID(r.PathValue("id"))
	if !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	data, err := label.Card(item)
	if err != nil {
		slog.Error("failed to render label", "item", item.ID, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to render label")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write label response", "error", err)
	}
}
