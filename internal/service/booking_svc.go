package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/MichaelBawol/EK-BOOKING/internal/domain"
	"github.com/MichaelBawol/EK-BOOKING/internal/notifier"
	"github.com/MichaelBawol/EK-BOOKING/pkg/mq"
)

// BookingStore is the persistence surface the orchestrator needs: an
// append-that-cannot-error and a bounded read-back with a storage marker.
type BookingStore interface {
	Append(ctx context.Context, b domain.Booking) bool
	Last(ctx context.Context, limit int) ([]domain.Booking, string)
}

// SubmitResult is the envelope every submission resolves to. OK is false only
// for the defensive catch-all path; either way the HTTP layer answers 200.
type SubmitResult struct {
	OK     bool
	Ref    string
	Stored bool
	Email  notifier.Result
	Reason string
	Detail string
}

// BookingSvc runs the intake pipeline: normalize, then best-effort store,
// event publish and mail dispatch, each isolated so no side effect's failure
// can reach the submitter.
type BookingSvc struct {
	store BookingStore
	mail  notifier.Notifier
	pub   *mq.Publisher
}

func NewBookingSvc(store BookingStore, mail notifier.Notifier, pub *mq.Publisher) *BookingSvc {
	return &BookingSvc{store: store, mail: mail, pub: pub}
}

// Submit never fails the caller: a panic anywhere below reduces to a soft
// error envelope. Normalization itself cannot error, so the recover is a
// defensive boundary, not expected control flow.
func (s *BookingSvc) Submit(ctx context.Context, raw map[string]any) (res SubmitResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[intake] recovered: %v", r)
			res = SubmitResult{OK: false, Reason: "caught_exception", Detail: fmt.Sprint(r)}
		}
	}()

	tr := otel.Tracer("bookings")
	ctx, span := tr.Start(ctx, "booking.submit")
	defer span.End()

	b := domain.Normalize(raw, time.Now().UTC(), domain.NewRef)
	span.SetAttributes(
		attribute.String("booking.ref", b.Ref),
		attribute.String("booking.mode", b.Mode),
	)

	storeCtx, storeSpan := tr.Start(ctx, "booking.store")
	stored := s.store.Append(storeCtx, b)
	storeSpan.SetAttributes(attribute.Bool("booking.stored", stored))
	storeSpan.End()

	// fire-and-forget domain event; a broker outage is not the guest's problem
	if err := s.pub.PublishJSON(ctx, "booking.created", map[string]any{
		"ref": b.Ref, "eventId": b.EventID, "date": b.Date, "slot": b.Slot,
		"party": b.Party, "status": b.Status, "stored": stored,
	}); err != nil {
		log.Printf("[mq] publish booking.created %s: %v", b.Ref, err)
	}

	mailCtx, mailSpan := tr.Start(ctx, "booking.notify")
	email := s.mail.Dispatch(mailCtx, b)
	mailSpan.SetAttributes(attribute.Bool("booking.email_sent", email.Sent))
	mailSpan.End()

	return SubmitResult{OK: true, Ref: b.Ref, Stored: stored, Email: email}
}

// List reads back the newest bookings for operator review, passing the store's
// result and marker through unchanged.
func (s *BookingSvc) List(ctx context.Context, limit int) ([]domain.Booking, string) {
	return s.store.Last(ctx, limit)
}
