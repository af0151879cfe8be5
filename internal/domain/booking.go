package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"time"
)

// Booking is a single reservation or reservation request, normalized from an
// untrusted form submission. It is constructed once per request and never
// mutated afterwards; the JSON field names are the wire contract shared with
// the storefront and the stored records.
type Booking struct {
	Ref       string `json:"ref"`
	CreatedAt string `json:"createdAt"`

	EventID    string `json:"eventId"`
	EventTitle string `json:"eventTitle"`
	Mode       string `json:"mode"`
	Date       string `json:"date"`
	Slot       string `json:"slot"`
	Party      int    `json:"party"`

	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	Message       string `json:"message"`
	FoodChoice    string `json:"foodChoice"`
	ServiceChoice string `json:"serviceChoice"`

	BaseTotal float64   `json:"baseTotal"`
	Catering  *Catering `json:"catering,omitempty"`
	Total     float64   `json:"total"`

	Status string `json:"status"`
}

// Catering is the optional add-on block, present only when the submitter
// picked a catering package.
type Catering struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	PricePerPerson float64 `json:"pricePerPerson"`
	Subtotal       float64 `json:"subtotal"`
}

// Booking statuses. request_received marks a pending enquiry, reserved_unpaid
// a confirmed slot awaiting payment arranged out of band.
const (
	StatusRequestReceived = "request_received"
	StatusReservedUnpaid  = "reserved_unpaid"
)

// ModeRequest is the submission mode that yields StatusRequestReceived.
const ModeRequest = "request"

// NewRef returns a booking reference of the form EK-YYYYMMDD-NNNN: the current
// UTC date plus a zero-padded random suffix. Unique by convention only; there
// is no collision check against the store.
func NewRef() string {
	return fmt.Sprintf("EK-%s-%04d", time.Now().UTC().Format("20060102"), rand.IntN(10000))
}

// Normalize builds a Booking from an untrusted payload. It cannot fail: absent
// or wrong-typed fields take their documented defaults, every numeric field in
// the result is finite, and party is at least 1 (defaulting to 2). The clock
// and reference source are injected so the result is deterministic under test;
// a ref supplied by the caller wins over newRef.
func Normalize(raw map[string]any, now time.Time, newRef func() string) Booking {
	b := Booking{
		Ref:       str(raw["ref"]),
		CreatedAt: now.UTC().Format(time.RFC3339),

		EventID:    str(raw["eventId"]),
		EventTitle: str(raw["eventTitle"]),
		Mode:       str(raw["mode"]),
		Date:       str(raw["date"]),
		Slot:       str(raw["slot"]),
		Party:      party(raw["party"]),

		Name:  str(raw["name"]),
		Email: str(raw["email"]),
		Phone: str(raw["phone"]),

		Message:       str(raw["message"]),
		FoodChoice:    str(raw["foodChoice"]),
		ServiceChoice: str(raw["serviceChoice"]),

		BaseTotal: money(raw["baseTotal"]),
		Total:     money(raw["total"]),

		Status: str(raw["status"]),
	}
	if b.Ref == "" {
		b.Ref = newRef()
	}
	if c, ok := raw["catering"].(map[string]any); ok {
		b.Catering = &Catering{
			ID:             str(c["id"]),
			Name:           str(c["name"]),
			PricePerPerson: money(c["pricePerPerson"]),
			Subtotal:       money(c["subtotal"]),
		}
	}
	if b.Status == "" {
		if b.Mode == ModeRequest {
			b.Status = StatusRequestReceived
		} else {
			b.Status = StatusReservedUnpaid
		}
	}
	return b
}

// str reads a field as a string, empty for anything else.
func str(v any) string {
	s, _ := v.(string)
	return s
}

// num reads a field as a finite number: JSON numbers, numeric strings and
// json.Number all coerce, everything else takes def.
func num(v any, def float64) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return def
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return def
		}
		f = parsed
	default:
		return def
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// money reads a non-negative amount, 0 for anything missing or invalid.
func money(v any) float64 {
	f := num(v, 0)
	if f < 0 {
		return 0
	}
	return f
}

// party reads the party size, a positive integer defaulting to 2.
func party(v any) int {
	p := int(num(v, 2))
	if p < 1 {
		return 2
	}
	return p
}
