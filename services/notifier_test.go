package services

import (
	"strings"
	"sync"
	"testing"

	"limo-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSender captures every submitted message.
type recordingSender struct {
	mu       sync.Mutex
	messages []Message
}

func (r *recordingSender) Send(msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return nil
}

func (r *recordingSender) all() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

func testCompany() models.CompanySetting {
	return models.CompanySetting{
		Name:    "LuxRide Chauffeur Services",
		Phone:   "+1 (555) 010-7788",
		Email:   "office@luxride.local",
		Website: "https://luxride.example.com",
	}
}

func testBooking(status string) models.Booking {
	return models.Booking{
		ID:            7,
		ReferenceCode: "LIMO-AB12CD34",
		Status:        status,
		CustomerName:  "John Doe",
		CustomerEmail: "john@x.com",
		CustomerPhone: "+1",
		VehicleType:   "luxury-sedan",
		Passengers:    2,
	}
}

func TestRenderAdminAlert(t *testing.T) {
	msg := RenderAdminAlert(testBooking(models.StatusPending), testCompany(), "admin@luxride.local")

	assert.Equal(t, "admin@luxride.local", msg.Envelope.To)
	assert.Contains(t, msg.Envelope.Subject, "LIMO-AB12CD34")
	assert.Contains(t, msg.Envelope.HTMLBody, "John Doe")
	assert.Contains(t, msg.Envelope.HTMLBody, "luxury-sedan")
	assert.Equal(t, "admin@luxride.local", msg.Params["to_email"])
	assert.Equal(t, "7", msg.Params["booking_id"])
	assert.Equal(t, "2", msg.Params["passengers"])
	assert.Equal(t, "LuxRide Chauffeur Services", msg.Params["company_name"])
}

func TestRenderCustomerConfirmation(t *testing.T) {
	msg := RenderCustomerConfirmation(testBooking(models.StatusPending), testCompany())

	assert.Equal(t, "john@x.com", msg.Envelope.To)
	assert.Contains(t, msg.Envelope.PlainBody, "LIMO-AB12CD34")
	assert.Contains(t, msg.Envelope.HTMLBody, models.StatusPending)
	assert.Equal(t, models.StatusPending, msg.Params["booking_status"])
}

func TestRenderStatusUpdateCarriesOldAndNew(t *testing.T) {
	msg := RenderStatusUpdate(testBooking(models.StatusConfirmed), models.StatusPending, testCompany())

	assert.Equal(t, "john@x.com", msg.Envelope.To)
	assert.Equal(t, models.StatusPending, msg.Params["old_status"])
	assert.Equal(t, models.StatusConfirmed, msg.Params["booking_status"])
	assert.Contains(t, msg.Envelope.HTMLBody, models.StatusPending)
	assert.Contains(t, msg.Envelope.HTMLBody, models.StatusConfirmed)
}

func TestDispatchNewBookingSendsTwoEmails(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifier(nil, sender)

	n.Dispatch(Notification{Kind: KindNewBooking, Booking: testBooking(models.StatusPending)})

	msgs := sender.all()
	require.Len(t, msgs, 2)
	assert.NotEqual(t, msgs[0].Envelope.To, msgs[1].Envelope.To)
	assert.Equal(t, "john@x.com", msgs[1].Envelope.To)
}

func TestDispatchStatusChangeSendsOneEmail(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifier(nil, sender)

	n.Dispatch(Notification{
		Kind:      KindStatusChanged,
		Booking:   testBooking(models.StatusConfirmed),
		OldStatus: models.StatusPending,
	})

	msgs := sender.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, "john@x.com", msgs[0].Envelope.To)
	assert.True(t, strings.Contains(msgs[0].Envelope.Subject, models.StatusConfirmed))
}

func TestDispatchSurvivesFailingSender(t *testing.T) {
	sender := &failingSender{}
	n := NewNotifier(nil, sender)

	// must not panic or return anything; failures are logged and swallowed
	n.Dispatch(Notification{Kind: KindNewBooking, Booking: testBooking(models.StatusPending)})
	assert.Equal(t, 2, sender.count())
}

func TestPublishThroughWorker(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifier(nil, sender)
	n.Start()

	n.Publish(Notification{Kind: KindNewBooking, Booking: testBooking(models.StatusPending)})
	n.Stop()

	assert.Len(t, sender.all(), 2)
}
