// Package store implements the item/event ledger. It owns the collection of
// warehouse items, applies stock-movement transitions, and persists the whole
// collection as a single serialized value in the database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amevn/warehouse/internal/model"
)

// StorageKey is the fixed key under which the item collection is stored.
// It must not change, or previously stored data becomes unreachable.
const StorageKey = "warehouse-items"

// InitialStockNotes is the notes text of the RECEIVE event synthesized when
// an item is created.
const InitialStockNotes = "Initial stock"

// Ledger holds the item collection in memory and writes it back to the
// database wholesale after every mutation. All methods serialize through a
// single mutex; the ledger must be the only writer of its storage key.
type Ledger struct {
	db *sql.DB

	mu    sync.Mutex
	items []model.Item
}

// Open loads the item collection from the database. A missing or malformed
// stored value yields an empty collection, never an error.
func Open(ctx context.Context, db *sql.DB) (*Ledger, error) {
	l := &Ledger{db: db}

	var value string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM storage WHERE key = ?`, StorageKey,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}

	if err := json.Unmarshal([]byte(value), &l.items); err != nil {
		slog.Warn("stored item data is malformed, starting empty", "error", err)
		l.items = nil
	}
	return l, nil
}

// persist writes the whole collection back under StorageKey. Callers must
// hold l.mu.
func (l *Ledger) persist(ctx context.Context) error {
	data, err := json.Marshal(l.items)
	if err != nil {
		return fmt.Errorf("serializing items: %w", err)
	}

	_, err = l.db.ExecContext(ctx,
		`INSERT INTO storage (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		StorageKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("saving items: %w", err)
	}
	return nil
}

// CreateItemParams are the fields for a new item. Name, SKU, and a positive
// InitialQuantity are required and validated by the caller before the store
// is invoked; empty Brand and ItemType fall back to the defaults.
type CreateItemParams struct {
	Name            string
	Brand           string
	SKU             string
	ItemType        string
	Location        string
	Description     string
	InitialQuantity int
}

// CreateItem creates a new item with a synthesized RECEIVE event carrying the
// initial stock, appends it to the collection, and persists. Returns a
// snapshot of the created item.
func (l *Ledger) CreateItem(ctx context.Context, p CreateItemParams) (*model.Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if p.Brand == "" {
		p.Brand = model.Brands[0]
	}
	if p.ItemType == "" {
		p.ItemType = model.ItemTypes[0]
	}

	now := time.Now().UTC()
	item := model.Item{
		ID:              uuid.NewString(),
		Name:            p.Name,
		Brand:           p.Brand,
		SKU:             p.SKU,
		ItemType:        p.ItemType,
		CurrentQuantity: p.InitialQuantity,
		Location:        p.Location,
		Description:     p.Description,
		Events: []model.Event{{
			ID:        uuid.NewString(),
			Type:      model.EventReceive,
			Quantity:  p.InitialQuantity,
			Timestamp: now,
			Notes:     InitialStockNotes,
		}},
		CreatedAt: now,
	}

	l.items = append(l.items, item)
	if err := l.persist(ctx); err != nil {
		l.items = l.items[:len(l.items)-1]
		return nil, err
	}

	return item.Clone(), nil
}

// LogEvent appends a stock movement to an item and recomputes its quantity.
// All validation happens before any mutation: a non-positive quantity or a
// subtracting movement larger than the current stock is rejected with a
// ValidationError and leaves the item untouched. Returns a snapshot of the
// updated item.
func (l *Ledger) LogEvent(ctx context.Context, itemID string, eventType model.EventType, quantity int, notes string) (*model.Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(itemID)
	if idx < 0 {
		return nil, ErrItemNotFound
	}
	item := &l.items[idx]

	if !eventType.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown event type %q", eventType)}
	}
	if quantity <= 0 {
		return nil, &ValidationError{Message: "quantity must be positive"}
	}
	if eventType.Subtracts() && quantity > item.CurrentQuantity {
		return nil, &ValidationError{Message: "insufficient stock"}
	}

	delta := quantity
	if eventType.Subtracts() {
		delta = -quantity
	}
	// The pre-check above already prevents negative results; the floor stays
	// as a safety clamp for callers that bypass it.
	newQuantity := max(0, item.CurrentQuantity+delta)

	prevQuantity := item.CurrentQuantity
	prevEvents := item.Events

	// Full slice expression so the append cannot grow into prevEvents'
	// backing array; the rollback below needs it intact.
	item.Events = append(item.Events[:len(item.Events):len(item.Events)], model.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Quantity:  quantity,
		Timestamp: time.Now().UTC(),
		Notes:     notes,
	})
	item.CurrentQuantity = newQuantity

	if err := l.persist(ctx); err != nil {
		item.Events = prevEvents
		item.CurrentQuantity = prevQuantity
		return nil, err
	}

	return item.Clone(), nil
}

// FindByID returns a snapshot of the item with the given id. The second
// return value reports whether the item exists; an unknown id is not an
// error, so the scan flow can show a "not found" message.
func (l *Ledger) FindByID(itemID string) (*model.Item, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(itemID)
	if idx < 0 {
		return nil, false
	}
	return l.items[idx].Clone(), true
}

// Items returns a snapshot of the whole collection in insertion order.
func (l *Ledger) Items() []model.Item {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]model.Item, len(l.items))
	for i := range l.items {
		items[i] = *l.items[i].Clone()
	}
	return items
}

// indexOf returns the position of the item with the given id, or -1.
// Callers must hold l.mu.
func (l *Ledger) indexOf(itemID string) int {
	for i := range l.items {
		if l.items[i].ID == itemID {
			return i
		}
	}
	return -1
}
