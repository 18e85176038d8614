package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/amevn/warehouse/internal/model"
	"github.com/amevn/warehouse/internal/store"
)

// scanNotFound is shown when a scanned id does not resolve to an item.
const scanNotFound = "Item ID not found. Please check the ID and try again."

// logEventData carries an item and form state into the log-event template.
type logEventData struct {
	PageData
	Item       *model.Item
	EventTypes []model.EventType
	Quantity   int
	Notes      string
	FromScan   bool
}

// ScanPage handles GET /scan: the scan-and-log entry form.
func (s *Server) ScanPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "scan.html", &struct {
		PageData
		ID string
	}{
		PageData: PageData{Title: "Scan & Log Event"},
	})
}

// ScanSubmit handles POST /scan: resolves the scanned id and moves on to the
// log-event form. An unknown id keeps the user on the scan page with an
// inline message.
func (s *Server) ScanSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")

	if _, ok := s.Ledger.FindByID(id); !ok {
		s.Templates.Render(w, "scan.html", &struct {
			PageData
			ID string
		}{
			PageData: PageData{Title: "Scan & Log Event", Error: scanNotFound},
			ID:       id,
		})
		return
	}

	http.Redirect(w, r, "/items/"+id+"/log?from=scan", http.StatusSeeOther)
}

// LogEventPage handles GET /items/{id}/log.
func (s *Server) LogEventPage(w http.ResponseWriter, r *http.Request) {
	item, ok := s.Ledger.FindByID(r.PathValue("id"))
	if !ok {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}

	s.Templates.Render(w, "log_event.html", &logEventData{
		PageData:   PageData{Title: "Log Event for " + item.Name},
		Item:       item,
		EventTypes: model.EventTypes,
		Quantity:   1,
		FromScan:   r.URL.Query().Get("from") == "scan",
	})
}

// LogEventSubmit handles POST /items/{id}/log. Validation errors re-render
// the form inline; success returns to the item (or the list when the flow
// started from a scan).
func (s *Server) LogEventSubmit(w http.ResponseWriter, r *http.Request) {
	item, ok := s.Ledger.FindByID(r.PathValue("id"))
	if !ok {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}

	quantity, qtyErr := strconv.Atoi(r.FormValue("quantity"))
	eventType := model.EventType(r.FormValue("type"))
	notes := r.FormValue("notes")
	fromScan := r.FormValue("fromScan") == "1"

	renderError := func(msg string) {
		s.Templates.Render(w, "log_event.html", &logEventData{
			PageData:   PageData{Title: "Log Event for " + item.Name, Error: msg},
			Item:       item,
			EventTypes: model.EventTypes,
			Quantity:   quantity,
			Notes:      notes,
			FromScan:   fromScan,
		})
	}

	// Fast form-level checks; the store enforces the same rules again.
	if qtyErr != nil || quantity <= 0 {
		renderError("Quantity must be greater than 0.")
		return
	}
	if !eventType.Valid() {
		renderError("Invalid event type.")
		return
	}
	if eventType.Subtracts() && quantity > item.CurrentQuantity {
		renderError("Cannot process more than the current stock.")
		return
	}

	if _, err := s.Ledger.LogEvent(r.Context(), item.ID, eventType, quantity, notes); err != nil {
		switch {
		case store.IsValidation(err):
			renderError(err.Error())
		case errors.Is(err, store.ErrItemNotFound):
			http.Error(w, "item not found", http.StatusNotFound)
		default:
			slog.Error("failed to log event", "item", item.ID, "error", err)
			renderError("Could not save changes.")
		}
		return
	}

	slog.Info("event logged", "item", item.ID, "type", eventType, "quantity", quantity)

	// A scan-initiated flow returns to the list, like closing the modal.
	if fromScan {
		http.Redirect(w, r, "/items", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/items/"+item.ID, http.StatusSeeOther)
}
