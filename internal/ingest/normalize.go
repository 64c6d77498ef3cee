package ingest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"bakehouse/internal/domain"
	"bakehouse/internal/errors"
)

// The legacy bakery API serves collections in several envelope shapes:
// a bare JSON array, or an object wrapping the array under "results"
// (pagination), "data", or the collection's own key. Everything is
// normalized here, before any reducer runs; an unrecognized shape is an
// IngestionError, never silently empty.

func NormalizeOrders(data []byte) ([]domain.Order, error) {
	records, err := decodeEnvelope(data, "orders", "results", "data", "orders")
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(records))
	for _, record := range records {
		var raw rawOrder
		if err := json.Unmarshal(record, &raw); err != nil {
			return nil, errors.NewIngestionError("orders", "malformed order record: "+err.Error())
		}
		orders = append(orders, raw.toDomain())
	}
	return orders, nil
}

func NormalizeFeedback(data []byte) ([]domain.Feedback, error) {
	records, err := decodeEnvelope(data, "feedback", "results", "data", "feedback")
	if err != nil {
		return nil, err
	}

	feedback := make([]domain.Feedback, 0, len(records))
	for _, record := range records {
		var raw rawFeedback
		if err := json.Unmarshal(record, &raw); err != nil {
			return nil, errors.NewIngestionError("feedback", "malformed feedback record: "+err.Error())
		}
		feedback = append(feedback, raw.toDomain())
	}
	return feedback, nil
}

func NormalizeInventory(data []byte) ([]domain.InventoryItem, error) {
	records, err := decodeEnvelope(data, "inventory", "results", "data", "ingredients")
	if err != nil {
		return nil, err
	}

	items := make([]domain.InventoryItem, 0, len(records))
	for _, record := range records {
		var raw rawInventoryItem
		if err := json.Unmarshal(record, &raw); err != nil {
			return nil, errors.NewIngestionError("inventory", "malformed inventory record: "+err.Error())
		}
		items = append(items, raw.toDomain())
	}
	return items, nil
}

func decodeEnvelope(data []byte, collection string, keys ...string) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.NewIngestionError(collection, "empty payload")
	}

	// Bare sequence.
	if trimmed[0] == '[' {
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, errors.NewIngestionError(collection, "malformed array payload: "+err.Error())
		}
		return records, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, errors.NewIngestionError(collection, "payload is neither an array nor an object")
	}

	for _, key := range keys {
		wrapped, ok := envelope[key]
		if !ok {
			continue
		}
		var records []json.RawMessage
		if err := json.Unmarshal(wrapped, &records); err != nil {
			return nil, errors.NewIngestionError(collection, "key "+strconv.Quote(key)+" does not hold an array")
		}
		return records, nil
	}

	return nil, errors.NewIngestionError(collection, "unrecognized envelope shape")
}

type rawOrder struct {
	ID          flexUint    `json:"id"`
	OrderNumber string      `json:"order_number"`
	OrderStatus string      `json:"order_status"`
	Status      string      `json:"status"`
	TotalAmount flexFloat   `json:"total_amount"`
	HasFeedback bool        `json:"has_feedback"`
	Customer    rawCustomer `json:"customer"`
	Items       []rawItem   `json:"items"`
	rawTimestamps
}

type rawCustomer struct {
	ID       flexUint `json:"id"`
	Username string   `json:"username"`
}

type rawItem struct {
	Cake       rawCake   `json:"cake"`
	Quantity   flexInt   `json:"quantity"`
	UnitPrice  flexFloat `json:"unit_price"`
	TotalPrice flexFloat `json:"total_price"`
}

type rawCake struct {
	ID   flexUint `json:"id"`
	Name string   `json:"name"`
}

func (r rawOrder) toDomain() domain.Order {
	status := r.OrderStatus
	if status == "" {
		status = r.Status
	}

	order := domain.Order{
		ID:           uint(r.ID),
		OrderNumber:  r.OrderNumber,
		CustomerID:   uint(r.Customer.ID),
		CustomerName: r.Customer.Username,
		Status:       status,
		TotalAmount:  float64(r.TotalAmount),
		HasFeedback:  r.HasFeedback,
		CreatedAt:    r.timestamp(),
	}

	for _, item := range r.Items {
		order.Items = append(order.Items, domain.LineItem{
			OrderID:    order.ID,
			CakeID:     uint(item.Cake.ID),
			CakeName:   item.Cake.Name,
			Quantity:   int(item.Quantity),
			UnitPrice:  float64(item.UnitPrice),
			TotalPrice: float64(item.TotalPrice),
		})
	}

	return order
}

type rawFeedback struct {
	ID       string   `json:"id"`
	OrderID  flexUint `json:"order_id"`
	Rating   flexInt  `json:"rating"`
	Message  string   `json:"message"`
	ImageRef *string  `json:"image_ref"`
	rawTimestamps
}

func (r rawFeedback) toDomain() domain.Feedback {
	return domain.Feedback{
		ID:        r.ID,
		OrderID:   uint(r.OrderID),
		Rating:    int(r.Rating),
		Message:   r.Message,
		ImageRef:  r.ImageRef,
		CreatedAt: r.timestamp(),
	}
}

type rawInventoryItem struct {
	ID           flexUint  `json:"id"`
	Name         string    `json:"name"`
	CurrentStock flexInt   `json:"current_stock"`
	MinimumStock flexInt   `json:"minimum_stock"`
	UnitCost     flexFloat `json:"unit_cost"`
	rawTimestamps
}

func (r rawInventoryItem) toDomain() domain.InventoryItem {
	return domain.InventoryItem{
		ID:           uint(r.ID),
		Name:         r.Name,
		CurrentStock: int(r.CurrentStock),
		MinimumStock: int(r.MinimumStock),
		UnitCost:     float64(r.UnitCost),
		CreatedAt:    r.timestamp(),
	}
}

// rawTimestamps probes the observed timestamp field names in priority
// order: created_at, date, updated_at (camelCase variants accepted).
type rawTimestamps struct {
	CreatedAt      flexTime `json:"created_at"`
	CreatedAtCamel flexTime `json:"createdAt"`
	Date           flexTime `json:"date"`
	UpdatedAt      flexTime `json:"updated_at"`
	UpdatedAtCamel flexTime `json:"updatedAt"`
}

func (t rawTimestamps) timestamp() time.Time {
	for _, candidate := range []flexTime{t.CreatedAt, t.CreatedAtCamel, t.Date, t.UpdatedAt, t.UpdatedAtCamel} {
		if !time.Time(candidate).IsZero() {
			return time.Time(candidate)
		}
	}
	return time.Time{}
}

// flexFloat accepts a JSON number or a numeric string. Garbled values
// coerce to 0 so the record is kept and counted rather than dropped.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	*f = 0

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*f = flexFloat(n)
		}
	}
	return nil
}

type flexInt int

func (i *flexInt) UnmarshalJSON(data []byte) error {
	var f flexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	*i = flexInt(f)
	return nil
}

type flexUint uint

func (u *flexUint) UnmarshalJSON(data []byte) error {
	var f flexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	if f < 0 {
		f = 0
	}
	*u = flexUint(f)
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// flexTime parses the timestamp formats observed upstream; anything
// unparseable becomes the zero time, which the range filter excludes.
type flexTime time.Time

func (t *flexTime) UnmarshalJSON(data []byte) error {
	*t = flexTime(time.Time{})

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = flexTime(parsed.UTC())
			return nil
		}
	}
	return nil
}
