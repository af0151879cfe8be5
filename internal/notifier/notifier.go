package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/MichaelBawol/EK-BOOKING/internal/domain"
)

// Result is the outcome of a dispatch attempt. Sent is true only when every
// delivery went out; Reason explains anything less.
type Result struct {
	Sent   bool   `json:"sent"`
	Reason string `json:"reason,omitempty"`
}

// Dispatch reasons.
const (
	ReasonNotConfigured   = "smtp_not_configured"
	ReasonSendFailed      = "send_failed"
	ReasonGuestSendFailed = "guest_send_failed"
)

// Notifier sends the operator and guest notifications for a booking. A
// failure is reported in the Result, never as an error, because notification
// is best-effort by contract.
type Notifier interface {
	Dispatch(ctx context.Context, b domain.Booking) Result
}

// Summary renders the plain-text booking digest shared by the operator and
// guest mails. Optional lines (catering, food, service, message) appear only
// when the booking carries them.
func Summary(b domain.Booking) string {
	lines := []string{
		"Ref: " + b.Ref,
		"Event: " + b.EventTitle,
		fmt.Sprintf("When: %s at %s", b.Date, b.Slot),
		fmt.Sprintf("Party: %d", b.Party),
		"Name: " + b.Name,
		"Email: " + b.Email,
		"Phone: " + b.Phone,
		"Mode: " + b.Mode,
		fmt.Sprintf("Base total: £%.2f", b.BaseTotal),
	}
	if b.Catering != nil {
		lines = append(lines, fmt.Sprintf("Catering: %s — £%.2fpp × %d = £%.2f",
			b.Catering.Name, b.Catering.PricePerPerson, b.Party, b.Catering.Subtotal))
	}
	lines = append(lines, fmt.Sprintf("Grand total: £%.2f", b.Total))
	if b.FoodChoice != "" {
		lines = append(lines, "Food option: "+b.FoodChoice)
	}
	if b.ServiceChoice != "" {
		lines = append(lines, "Service option: "+b.ServiceChoice)
	}
	if b.Message != "" {
		lines = append(lines, "Message: "+b.Message)
	}
	lines = append(lines, "Status: "+b.Status)
	return strings.Join(lines, "\n")
}

// OperatorSubject is the subject line of the mail sent to the venue operator.
func OperatorSubject(b domain.Booking) string {
	return fmt.Sprintf("[Endless Kettle] Booking %s — %s", b.Ref, b.EventTitle)
}

// GuestSubject is the subject line of the confirmation sent to the guest.
func GuestSubject(b domain.Booking) string {
	return fmt.Sprintf("Your %s reservation — %s", b.EventTitle, b.Ref)
}

// GuestBody wraps the summary in the personalized confirmation sent to the
// guest, closing with the payment follow-up note.
func GuestBody(b domain.Booking) string {
	return fmt.Sprintf("Thanks %s,\n\nWe've received your reservation. Details below:\n\n%s\n\nWe'll contact you on %s to arrange payment.\n\n— Endless Kettle",
		b.Name, Summary(b), b.Phone)
}
