package model

import "time"

// EventType classifies a stock movement. RECEIVE increases an item's
// quantity, all other kinds decrease it.
type EventType string

const (
	EventReceive  EventType = "RECEIVE"
	EventSell     EventType = "SELL"
	EventLend     EventType = "LEND"
	EventWarranty EventType = "WARRANTY"
)

// EventTypes lists all event kinds in display order.
var EventTypes = []EventType{EventReceive, EventSell, EventLend, EventWarranty}

// Valid reports whether t is one of the four known event kinds.
func (t EventType) Valid() bool {
	switch t {
	case EventReceive, EventSell, EventLend, EventWarranty:
		return true
	}
	return false
}

// Subtracts reports whether the event kind decreases stock.
func (t EventType) Subtracts() bool {
	return t != EventReceive
}

// Event is an immutable record of one stock movement against an item.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

// Item is a tracked warehouse unit with a running quantity balance and an
// append-only event history. CurrentQuantity always equals the net of all
// applied events, floored at zero.
type Item struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Brand           string    `json:"brand"`
	SKU             string    `json:"sku"`
	ItemType        string    `json:"itemType"`
	CurrentQuantity int       `json:"currentQuantity"`
	Location        string    `json:"location,omitempty"`
	Description     string    `json:"description,omitempty"`
	Events          []Event   `json:"events"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Item types.
const (
	ItemTypeMachine   = "Machine"
	ItemTypeSparePart = "Spare Part"
)

// ItemTypes lists the allowed item types; the first entry is the default.
var ItemTypes = []string{ItemTypeMachine, ItemTypeSparePart}

// Brands lists the known brands; the first entry is the default.
var Brands = []string{
	"Anritsu",
	"Henkelman",
	"eShrink",
	"Nishihara",
	"POF films",
	"Other",
}

// ValidItemType reports whether t is one of the allowed item types.
func ValidItemType(t string) bool {
	for _, it := range ItemTypes {
		if it == t {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the item, including its event history.
func (i *Item) Clone() *Item {
	c := *i
	c.Events = make([]Event, len(i.Events))
	copy(c.Events, i.Events)
	return &c
}
