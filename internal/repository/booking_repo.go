package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/MichaelBawol/EK-BOOKING/internal/domain"
)

// Storage markers returned by Last alongside an empty result. An empty marker
// means the read itself succeeded.
const (
	StorageNotConfigured = "not_configured"
	StorageError         = "kv_error"
)

const (
	listKey       = "ek:bookings"
	recordKeyPref = "ek:booking:"
)

// BookingRepo appends bookings to a remote key-value store over its REST API
// (one ordered list of JSON records plus one hash per reference). Every call
// is a single attempt: failures are logged and reduced to a degraded result,
// never returned as errors, because the store is optional by contract.
type BookingRepo struct {
	client *resty.Client
	url    string
	token  string
}

func NewBookingRepo(url, token string) *BookingRepo {
	r := &BookingRepo{url: url, token: token}
	if r.Configured() {
		r.client = resty.New().
			SetBaseURL(url).
			SetAuthToken(token).
			SetHeader("Content-Type", "application/json")
	}
	return r
}

func (r *BookingRepo) Configured() bool {
	return r.url != "" && r.token != ""
}

// commandReply is the store's REST envelope: commands go up as a JSON array
// of words posted to the endpoint root, answers come back as
// {"result": ...} or {"error": "..."}.
type commandReply struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

func (r *BookingRepo) do(ctx context.Context, cmd []string) (json.RawMessage, error) {
	var reply commandReply
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(cmd).
		SetResult(&reply).
		Post("/")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("kv status %s", resp.Status())
	}
	if reply.Error != "" {
		return nil, fmt.Errorf("kv command %s: %s", cmd[0], reply.Error)
	}
	return reply.Result, nil
}

// Append pushes the booking onto the ordered list and upserts the per-ref
// record. Returns whether the booking actually reached the store.
func (r *BookingRepo) Append(ctx context.Context, b domain.Booking) bool {
	if !r.Configured() {
		return false
	}
	blob, err := json.Marshal(b)
	if err != nil {
		log.Printf("[kv] marshal booking %s: %v", b.Ref, err)
		return false
	}
	if _, err := r.do(ctx, []string{"RPUSH", listKey, string(blob)}); err != nil {
		log.Printf("[kv] rpush %s: %v", b.Ref, err)
		return false
	}
	if _, err := r.do(ctx, record(b)); err != nil {
		log.Printf("[kv] hset %s: %v", b.Ref, err)
		return false
	}
	return true
}

// record flattens a booking into an HSET command for its keyed record. The
// optional catering block is stored as one JSON-encoded field.
func record(b domain.Booking) []string {
	cmd := []string{"HSET", recordKeyPref + b.Ref,
		"ref", b.Ref,
		"createdAt", b.CreatedAt,
		"eventId", b.EventID,
		"eventTitle", b.EventTitle,
		"mode", b.Mode,
		"date", b.Date,
		"slot", b.Slot,
		"party", strconv.Itoa(b.Party),
		"name", b.Name,
		"email", b.Email,
		"phone", b.Phone,
		"message", b.Message,
		"foodChoice", b.FoodChoice,
		"serviceChoice", b.ServiceChoice,
		"baseTotal", strconv.FormatFloat(b.BaseTotal, 'f', 2, 64),
		"total", strconv.FormatFloat(b.Total, 'f', 2, 64),
		"status", b.Status,
	}
	if b.Catering != nil {
		if blob, err := json.Marshal(b.Catering); err == nil {
			cmd = append(cmd, "catering", string(blob))
		}
	}
	return cmd
}

// Last reads the newest limit entries from the booking list, most recent
// first. Entries that no longer decode are dropped. The second return value is
// the storage marker: empty on success, StorageNotConfigured or StorageError
// when degraded.
func (r *BookingRepo) Last(ctx context.Context, limit int) ([]domain.Booking, string) {
	if !r.Configured() {
		return nil, StorageNotConfigured
	}
	raw, err := r.do(ctx, []string{"LRANGE", listKey, strconv.Itoa(-limit), "-1"})
	if err != nil {
		log.Printf("[kv] lrange: %v", err)
		return nil, StorageError
	}
	var entries []string
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Printf("[kv] lrange decode: %v", err)
		return nil, StorageError
	}
	items := make([]domain.Booking, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		var b domain.Booking
		if err := json.Unmarshal([]byte(entries[i]), &b); err != nil {
			continue
		}
		items = append(items, b)
	}
	return items, ""
}
