// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"limo-backend/models"
	"limo-backend/utils"

	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("booking_not_found")

// BookingService wraps *gorm.DB and owns the booking workflow: customer
// submissions and admin status transitions, each publishing a notification
// event after the write lands.
type BookingService struct {
	DB       *gorm.DB
	Notifier BookingNotifier
}

func NewBookingService(db *gorm.DB, notifier BookingNotifier) *BookingService {
	return &BookingService{DB: db, Notifier: notifier}
}

// Submit persists a customer booking. Status is forced to pending and a
// unique reference code is assigned, retrying on index collision. The
// notification event is published after the write; whatever happens to the
// emails, the submission has already succeeded.
func (s *BookingService) Submit(booking models.Booking) (models.Booking, error) {
	booking.ID = 0
	booking.Status = models.StatusPending
	booking.CustomerName = strings.TrimSpace(booking.CustomerName)
	booking.CustomerEmail = strings.TrimSpace(booking.CustomerEmail)
	if booking.Passengers < 1 {
		booking.Passengers = 1
	}

	maxRetries := 5
	var createErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		code, err := utils.GenerateReferenceCode(8)
		if err != nil {
			return models.Booking{}, fmt.Errorf("failed to generate reference code: %w", err)
		}
		booking.ReferenceCode = "LIMO-" + code

		createErr = s.DB.Create(&booking).Error
		if createErr == nil {
			break
		}

		lc := strings.ToLower(createErr.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") || strings.Contains(lc, "constraint") {
			log.Printf("reference code collision (attempt %d) - retrying", attempt+1)
			continue
		}
		return models.Booking{}, fmt.Errorf("failed to create booking: %w", createErr)
	}
	if createErr != nil {
		return models.Booking{}, fmt.Errorf("failed to create booking after retries: %w", createErr)
	}

	if s.Notifier != nil {
		s.Notifier.Publish(Notification{Kind: KindNewBooking, Booking: booking})
	}

	return booking, nil
}

// UpdateStatus sets a new status on an existing booking. Any status value is
// accepted; the transition table is advisory (out-of-table moves get a log
// line, nothing more). A missing id aborts before any write.
func (s *BookingService) UpdateStatus(id uint, status string) (models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("failed to find booking: %w", err)
	}

	oldStatus := booking.Status
	status = strings.TrimSpace(status)

	if status != oldStatus && !models.IsAllowedTransition(oldStatus, status) {
		log.Printf("booking %d: transition %q -> %q is outside the usual workflow", id, oldStatus, status)
	}

	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if err := s.DB.Model(&booking).Updates(updates).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to update booking status: %w", err)
	}
	if err := s.DB.First(&booking, id).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to reload booking: %w", err)
	}

	if s.Notifier != nil && status != oldStatus {
		s.Notifier.Publish(Notification{Kind: KindStatusChanged, Booking: booking, OldStatus: oldStatus})
	}

	return booking, nil
}

func (s *BookingService) GetByID(id uint) (models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, err
	}
	return booking, nil
}

// List returns bookings newest first with id-cursor pagination. cursor==0
// starts from the top; the returned cursor is 0 when the page is the last.
func (s *BookingService) List(limit int, cursor uint) ([]models.Booking, uint, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := s.DB.Order("id DESC").Limit(limit + 1)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	var next uint
	if len(bookings) > limit {
		bookings = bookings[:limit]
		next = bookings[len(bookings)-1].ID
	}
	return bookings, next, nil
}

// ListByEmail returns a customer's own bookings, matched by stored email.
func (s *BookingService) ListByEmail(email string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Where("customer_email = ?", strings.TrimSpace(email)).
		Order("id DESC").Find(&bookings).Error
	return bookings, err
}

// Delete removes a booking. Exposed for completeness; the dashboard does not
// call it in the normal flow.
func (s *BookingService) Delete(id uint) error {
	res := s.DB.Delete(&models.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}
