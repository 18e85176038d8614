package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/amevn/warehouse/internal/model"
	"github.com/amevn/warehouse/internal/store"
)

// itemFormData carries form values back into the add-item template so a
// rejected submission doesn't wipe the user's input.
type itemFormData struct {
	PageData
	Brands    []string
	ItemTypes []string
	Form      store.CreateItemParams
}

// ItemsPage handles GET /items: the recency-sorted list with search.
func (s *Server) ItemsPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	items := s.Ledger.Items()
	total := len(items)
	items = model.Search(items, query)
	items = model.SortByRecency(items)

	s.Templates.Render(w, "items.html", &struct {
		PageData
		Items []model.Item
		Query string
		Total int
	}{
		PageData: PageData{Title: "Warehouse Management"},
		Items:    items,
		Query:    query,
		Total:    total,
	})
}

// ItemNewPage handles GET /items/new.
func (s *Server) ItemNewPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "item_new.html", &itemFormData{
		PageData:  PageData{Title: "Add New Item"},
		Brands:    model.Brands,
		ItemTypes: model.ItemTypes,
		Form:      store.CreateItemParams{InitialQuantity: 1},
	})
}

// ItemCreateSubmit handles POST /items/new. Field validation happens here,
// before the store is invoked; errors re-render the form inline.
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	quantity, qtyErr := strconv.Atoi(r.FormValue("initialQuantity"))

	form := store.CreateItemParams{
		Name:            r.FormValue("name"),
		Brand:           r.FormValue("brand"),
		SKU:             r.FormValue("sku"),
		ItemType:        r.FormValue("itemType"),
		Location:        r.FormValue("location"),
		Description:     r.FormValue("description"),
		InitialQuantity: quantity,
	}

	renderError := func(msg string) {
		s.Templates.Render(w, "item_new.html", &itemFormData{
			PageData:  PageData{Title: "Add New Item", Error: msg},
			Brands:    model.Brands,
			ItemTypes: model.ItemTypes,
			Form:      form,
		})
	}

	if form.Name == "" {
		renderError("Name is required.")
		return
	}
	if form.SKU == "" {
		renderError("SKU is required.")
		return
	}
	if qtyErr != nil || quantity <= 0 {
		renderError("Initial quantity must be greater than 0.")
		return
	}
	if form.ItemType != "" && !model.ValidItemType(form.ItemType) {
		renderError("Invalid item type.")
		return
	}

	item, err := s.Ledger.CreateItem(r.Context(), form)
	if err != nil {
		slog.Error("failed to create item", "error", err)
		renderError("Could not save changes.")
		return
	}

	slog.Info("item created", "item", item.ID, "name", item.Name)
	http.Redirect(w, r, "/items/"+item.ID, http.StatusSeeOther)
}

// ItemDetailPage handles GET /items/{id}: fields, event history, and the
// printable QR card.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	item, ok := s.Ledger.FindByID(r.PathValue("id"))
	if !ok {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}

	s.Templates.Render(w, "item_detail.html", &struct {
		PageData
		Item *model.Item
	}{
		PageData: PageData{Title: item.Name},
		Item:     item,
	})
}
