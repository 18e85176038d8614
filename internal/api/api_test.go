package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amevn/warehouse/internal/db"
	"github.com/amevn/warehouse/internal/model"
	"github.com/amevn/warehouse/internal/store"
)

func setupTestServer(t *testing.T) (*httptest.Server, *store.Ledger) {
	t.Helper()
	database := db.NewTestDB(t)

	ledger, err := store.Open(context.Background(), database)
	if err != nil {
		t.Fatalf("opening ledger: %v", err)
	}

	server := httptest.NewServer(NewRouter(ledger))
	t.Cleanup(server.Close)

	return server, ledger
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeItem(t *testing.T, resp *http.Response) model.Item {
	t.Helper()
	defer resp.Body.Close()
	var item model.Item
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		t.Fatalf("decoding item: %v", err)
	}
	return item
}

func TestCreateItemEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/items", map[string]any{
		"name":            "Sealer X",
		"sku":             "SX-100",
		"initialQuantity": 10,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	item := decodeItem(t, resp)
	if item.CurrentQuantity != 10 {
		t.Errorf("expected quantity 10, got %d", item.CurrentQuantity)
	}
	if len(item.Events) != 1 || item.Events[0].Type != model.EventReceive {
		t.Errorf("expected one RECEIVE event, got %v", item.Events)
	}
}

func TestCreateItemValidation(t *testing.T) {
	server, _ := setupTestServer(t)

	cases := []map[string]any{
		{"sku": "SX-100", "initialQuantity": 10},                            // missing name
		{"name": "Sealer X", "initialQuantity": 10},                         // missing sku
		{"name": "Sealer X", "sku": "SX-100", "initialQuantity": 0},         // zero quantity
		{"name": "Sealer X", "sku": "SX-100", "initialQuantity": -1},        // negative quantity
		{"name": "X", "sku": "S", "initialQuantity": 1, "itemType": "Tool"}, // unknown type
	}
	for i, body := range cases {
		resp := postJSON(t, server.URL+"/api/items", body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("case %d: expected 400, got %d", i, resp.StatusCode)
		}
	}
}

func TestLogEventEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/items", map[string]any{
		"name": "Sealer X", "sku": "SX-100", "initialQuantity": 10,
	})
	item := decodeItem(t, resp)

	resp = postJSON(t, server.URL+"/api/items/"+item.ID+"/events", map[string]any{
		"type": "SELL", "quantity": 4,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	updated := decodeItem(t, resp)
	if updated.CurrentQuantity != 6 {
		t.Errorf("expected quantity 6, got %d", updated.CurrentQuantity)
	}
	if len(updated.Events) != 2 {
		t.Errorf("expected 2 events, got %d", len(updated.Events))
	}
}

func TestLogEventInsufficientStock(t *testing.T) {
	server, _ := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/items", map[string]any{
		"name": "Sealer X", "sku": "SX-100", "initialQuantity": 6,
	})
	item := decodeItem(t, resp)

	resp = postJSON(t, server.URL+"/api/items/"+item.ID+"/events", map[string]any{
		"type": "SELL", "quantity": 100,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["error"] != "insufficient stock" {
		t.Errorf("expected insufficient stock message, got %q", body["error"])
	}
}

func TestListAndSearchEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)

	for _, spec := range []struct{ name, sku string }{
		{"Vacuum Sealer", "VS-200"},
		{"Sealing Bar", "SB-10"},
		{"Shrink Tunnel", "ST-55"},
	} {
		resp := postJSON(t, server.URL+"/api/items", map[string]any{
			"name": spec.name, "sku": spec.sku, "initialQuantity": 1,
		})
		resp.Body.Close()
	}

	resp, err := http.Get(server.URL + "/api/items?q=seal")
	if err != nil {
		t.Fatalf("GET items: %v", err)
	}
	defer resp.Body.Close()

	var items []model.Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("decoding items: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 matches for %q, got %d", "seal", len(items))
	}
}

func TestScanEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/items", map[string]any{
		"name": "Sealer X", "sku": "SX-100", "initialQuantity": 3,
	})
	item := decodeItem(t, resp)

	// Known id resolves to the item.
	resp = postJSON(t, server.URL+"/api/scan", map[string]string{"id": item.ID})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	found := decodeItem(t, resp)
	if found.ID != item.ID {
		t.Errorf("expected item %s, got %s", item.ID, found.ID)
	}

	// Unknown id is a 404, not a failure.
	resp = postJSON(t, server.URL+"/api/scan", map[string]string{"id": "bogus"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", resp.StatusCode)
	}
}

func TestQRCodeEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/items", map[string]any{
		"name": "Sealer X", "sku": "SX-100", "initialQuantity": 3,
	})
	item := decodeItem(t, resp)

	resp, err := http.Get(server.URL + "/api/items/" + item.ID + "/qrcode")
	if err != nil {
		t.Fatalf("GET qrcode: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("expected image/png, got %s", ct)
	}
}
