// services/notifier.go
package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"limo-backend/models"
	"limo-backend/utils"

	"gorm.io/gorm"
)

// NotificationKind tags the three events the business sends email for.
type NotificationKind string

const (
	KindNewBooking    NotificationKind = "new_booking"    // admin alert + customer confirmation
	KindStatusChanged NotificationKind = "status_changed" // customer status update
)

// Notification is the event consumed by the dispatcher. For status changes
// OldStatus carries the value observed before the write.
type Notification struct {
	Kind      NotificationKind
	Booking   models.Booking
	OldStatus string
}

// Message is a rendered email plus the named template parameters the
// HTTP email API transport expects.
type Message struct {
	Envelope utils.EmailEnvelope
	Params   map[string]string
}

// Sender submits one rendered message. Implementations: SMTPSender,
// EmailAPISender, and test mocks.
type Sender interface {
	Send(msg Message) error
}

// BookingNotifier is what the booking workflow depends on. Publish must
// never block the caller and must never surface an error: delivery is
// best-effort with no retry and no dead letter.
type BookingNotifier interface {
	Publish(ev Notification)
}

// Notifier is the single event-driven dispatcher. Booking writes publish a
// tagged event; one worker goroutine renders and submits the emails.
type Notifier struct {
	db     *gorm.DB
	sender Sender

	adminEmail string

	events chan Notification
	wg     sync.WaitGroup

	closeOnce sync.Once
}

func NewNotifier(db *gorm.DB, sender Sender) *Notifier {
	return &Notifier{
		db:         db,
		sender:     sender,
		adminEmail: utils.EnvOrDefault("ADMIN_EMAIL", "admin@luxride.local"),
		events:     make(chan Notification, 64),
	}
}

// Start launches the dispatch worker.
func (n *Notifier) Start() {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		for ev := range n.events {
			n.Dispatch(ev)
		}
	}()
}

// Stop closes the event channel and waits for in-flight sends to finish.
func (n *Notifier) Stop() {
	n.closeOnce.Do(func() { close(n.events) })
	n.wg.Wait()
}

// Publish enqueues an event. A full queue drops the event with a log line;
// bookings must never wait on email.
func (n *Notifier) Publish(ev Notification) {
	select {
	case n.events <- ev:
	default:
		log.Printf("⚠️  notification queue full, dropping %s event for booking %d", ev.Kind, ev.Booking.ID)
	}
}

// Dispatch renders and submits the emails for one event synchronously.
// Send failures are logged and swallowed.
func (n *Notifier) Dispatch(ev Notification) {
	company := n.companySettings()

	switch ev.Kind {
	case KindNewBooking:
		admin := RenderAdminAlert(ev.Booking, company, n.adminEmail)
		if err := n.sender.Send(admin); err != nil {
			log.Printf("failed to send admin alert for booking %d: %v", ev.Booking.ID, err)
		}
		confirm := RenderCustomerConfirmation(ev.Booking, company)
		if err := n.sender.Send(confirm); err != nil {
			log.Printf("failed to send confirmation for booking %d: %v", ev.Booking.ID, err)
		}
	case KindStatusChanged:
		msg := RenderStatusUpdate(ev.Booking, ev.OldStatus, company)
		if err := n.sender.Send(msg); err != nil {
			log.Printf("failed to send status update for booking %d: %v", ev.Booking.ID, err)
		}
	default:
		log.Printf("unknown notification kind %q for booking %d", ev.Kind, ev.Booking.ID)
	}
}

func (n *Notifier) companySettings() models.CompanySetting {
	var setting models.CompanySetting
	if n.db != nil {
		if err := n.db.First(&setting).Error; err == nil {
			return setting
		}
	}
	return models.CompanySetting{
		Name:  "LuxRide Chauffeur Services",
		Email: n.adminEmail,
	}
}

//
// ---------------------------
// Rendering
// ---------------------------
//

func bookingParams(b models.Booking, company models.CompanySetting) map[string]string {
	return map[string]string{
		"booking_id":       strconv.FormatUint(uint64(b.ID), 10),
		"reference_code":   b.ReferenceCode,
		"booking_status":   b.Status,
		"customer_name":    b.CustomerName,
		"customer_email":   b.CustomerEmail,
		"customer_phone":   b.CustomerPhone,
		"vehicle_type":     b.VehicleType,
		"passengers":       strconv.Itoa(b.Passengers),
		"pickup_date":      b.PickupDate,
		"pickup_time":      b.PickupTime,
		"pickup_location":  b.PickupLocation,
		"dropoff_location": b.DropoffLocation,
		"special_requests": b.SpecialRequests,
		"company_name":     company.Name,
		"company_phone":    company.Phone,
		"company_email":    company.Email,
		"company_website":  company.Website,
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func detailRows(b models.Booking) string {
	row := func(label, value string) string {
		return fmt.Sprintf(`<tr><td class="label">%s</td><td>%s</td></tr>`, label, orNA(value))
	}
	var sb strings.Builder
	sb.WriteString(row("Reference", b.ReferenceCode))
	sb.WriteString(row("Vehicle", b.VehicleType))
	sb.WriteString(row("Passengers", strconv.Itoa(b.Passengers)))
	sb.WriteString(row("Pickup date", b.PickupDate))
	sb.WriteString(row("Pickup time", b.PickupTime))
	sb.WriteString(row("Pickup", b.PickupLocation))
	sb.WriteString(row("Drop-off", b.DropoffLocation))
	sb.WriteString(row("Special requests", b.SpecialRequests))
	return sb.String()
}

const emailStyle = `<style>
body { background:#111; font-family:Georgia, 'Times New Roman', serif; color:#eee; }
.container { max-width:640px; margin:20px auto; }
.card { background:#1b1b1b; border:1px solid #3a2f1a; padding:24px; border-radius:8px; }
h2 { color:#c9a24b; }
table { width:100%; border-collapse:collapse; margin-top:12px; }
td { padding:6px 8px; border-bottom:1px solid #2a2a2a; }
td.label { color:#c9a24b; width:40%; }
.status { display:inline-block; padding:4px 12px; background:#c9a24b; color:#111; border-radius:4px; }
</style>`

func wrapHTML(title, inner string) string {
	return fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
%s
</head>
<body>
<div class="container">
  <div class="card">
%s
  </div>
</div>
</body>
</html>`, title, emailStyle, inner)
}

// RenderAdminAlert builds the new-booking alert sent to the business inbox.
func RenderAdminAlert(b models.Booking, company models.CompanySetting, adminEmail string) Message {
	subject := fmt.Sprintf("New booking %s from %s", b.ReferenceCode, b.CustomerName)

	plain := fmt.Sprintf(
		"New booking received.\n\n"+
			"Reference: %s\nCustomer: %s <%s> %s\nVehicle: %s\nPassengers: %d\n"+
			"Pickup: %s %s at %s\nDrop-off: %s\nRequests: %s\n",
		b.ReferenceCode, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.VehicleType, b.Passengers,
		orNA(b.PickupDate), orNA(b.PickupTime), orNA(b.PickupLocation),
		orNA(b.DropoffLocation), orNA(b.SpecialRequests),
	)

	inner := fmt.Sprintf(`<h2>New booking received</h2>
<p>%s &lt;%s&gt; %s</p>
<table>%s</table>`,
		b.CustomerName, b.CustomerEmail, b.CustomerPhone, detailRows(b))

	params := bookingParams(b, company)
	params["to_email"] = adminEmail
	params["subject"] = subject

	return Message{
		Envelope: utils.EmailEnvelope{
			To:        adminEmail,
			Subject:   subject,
			PlainBody: plain,
			HTMLBody:  wrapHTML("New booking", inner),
		},
		Params: params,
	}
}

// RenderCustomerConfirmation builds the confirmation sent to the customer
// after a successful submission.
func RenderCustomerConfirmation(b models.Booking, company models.CompanySetting) Message {
	subject := fmt.Sprintf("Your booking %s is received", b.ReferenceCode)

	plain := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Thank you for booking with %s. Your request %s has been received and is pending confirmation.\n"+
			"We will contact you shortly at %s.\n\n%s\n%s\n",
		b.CustomerName, company.Name, b.ReferenceCode, b.CustomerPhone,
		company.Phone, company.Website,
	)

	inner := fmt.Sprintf(`<h2>Thank you, %s</h2>
<p>Your request has been received and is <span class="status">%s</span> confirmation.</p>
<table>%s</table>
<p>%s · %s · %s</p>`,
		b.CustomerName, b.Status, detailRows(b),
		company.Name, company.Phone, company.Website)

	params := bookingParams(b, company)
	params["to_email"] = b.CustomerEmail
	params["subject"] = subject

	return Message{
		Envelope: utils.EmailEnvelope{
			To:        b.CustomerEmail,
			Subject:   subject,
			PlainBody: plain,
			HTMLBody:  wrapHTML("Booking received", inner),
		},
		Params: params,
	}
}

// RenderStatusUpdate builds the status change email sent to the customer.
func RenderStatusUpdate(b models.Booking, oldStatus string, company models.CompanySetting) Message {
	subject := fmt.Sprintf("Booking %s update: %s", b.ReferenceCode, b.Status)

	plain := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your booking %s status changed from %s to %s.\n\n%s\n%s\n",
		b.CustomerName, b.ReferenceCode, oldStatus, b.Status,
		company.Name, company.Phone,
	)

	inner := fmt.Sprintf(`<h2>Booking update</h2>
<p>Hi %s, your booking <strong>%s</strong> moved from <em>%s</em> to <span class="status">%s</span>.</p>
<table>%s</table>`,
		b.CustomerName, b.ReferenceCode, oldStatus, b.Status, detailRows(b))

	params := bookingParams(b, company)
	params["to_email"] = b.CustomerEmail
	params["subject"] = subject
	params["old_status"] = oldStatus

	return Message{
		Envelope: utils.EmailEnvelope{
			To:        b.CustomerEmail,
			Subject:   subject,
			PlainBody: plain,
			HTMLBody:  wrapHTML("Booking update", inner),
		},
		Params: params,
	}
}
