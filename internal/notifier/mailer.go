package notifier

import (
	"context"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/MichaelBawol/EK-BOOKING/internal/domain"
)

// Mailer delivers the operator and guest mails over SMTP. With an incomplete
// relay configuration it is a no-op that reports ReasonNotConfigured without
// touching the network.
type Mailer struct {
	host  string
	port  int
	user  string
	pass  string
	from  string
	admin string
}

func NewMailer(host string, port int, user, pass, from, admin string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from, admin: admin}
}

func (m *Mailer) configured() bool {
	return m.host != "" && m.user != "" && m.pass != "" && m.from != "" && m.admin != ""
}

// Dispatch sends the operator mail, then the guest mail, strictly in that
// order. Partial success is reported distinctly: ReasonGuestSendFailed means
// the operator was already notified.
func (m *Mailer) Dispatch(ctx context.Context, b domain.Booking) Result {
	if !m.configured() {
		return Result{Sent: false, Reason: ReasonNotConfigured}
	}

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	d.SSL = m.port == 465 // implicit TLS on the smtps port

	operator := gomail.NewMessage()
	operator.SetHeader("From", m.from)
	operator.SetHeader("To", m.admin)
	operator.SetHeader("Subject", OperatorSubject(b))
	operator.SetBody("text/plain", Summary(b))
	if err := d.DialAndSend(operator); err != nil {
		log.Printf("[mail] operator send %s: %v", b.Ref, err)
		return Result{Sent: false, Reason: ReasonSendFailed}
	}

	guest := gomail.NewMessage()
	guest.SetHeader("From", m.from)
	guest.SetHeader("To", b.Email)
	guest.SetHeader("Subject", GuestSubject(b))
	guest.SetBody("text/plain", GuestBody(b))
	if err := d.DialAndSend(guest); err != nil {
		log.Printf("[mail] guest send %s: %v", b.Ref, err)
		return Result{Sent: false, Reason: ReasonGuestSendFailed}
	}

	return Result{Sent: true}
}
