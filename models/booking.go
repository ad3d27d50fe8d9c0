package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking statuses. The transition graph is informational only; the update
// path accepts any value (see AllowedNextStatuses).
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"reference_code,omitempty"`
	Status        string `gorm:"column:status;size:64;index" json:"status"`

	// Customer contact as submitted. Ownership is matched by email; there is
	// no FK to an authenticated user in the primary creation path.
	CustomerName  string `gorm:"column:customer_name;size:255" json:"customer_name"`
	CustomerEmail string `gorm:"column:customer_email;size:150;index" json:"customer_email"`
	CustomerPhone string `gorm:"column:customer_phone;size:50" json:"customer_phone"`

	VehicleType string `gorm:"column:vehicle_type;size:64" json:"vehicle_type"`
	Passengers  int    `gorm:"column:passengers;default:1" json:"passengers"`

	PickupDate      string `gorm:"column:pickup_date;size:32" json:"pickup_date,omitempty"`
	PickupTime      string `gorm:"column:pickup_time;size:32" json:"pickup_time,omitempty"`
	PickupLocation  string `gorm:"column:pickup_location;size:255" json:"pickup_location,omitempty"`
	DropoffLocation string `gorm:"column:dropoff_location;size:255" json:"dropoff_location,omitempty"`
	SpecialRequests string `gorm:"column:special_requests;type:text" json:"special_requests,omitempty"`

	// Free-form extras the frontend may attach (flight number, child seats...).
	Extras datatypes.JSON `gorm:"column:extras" json:"extras,omitempty"`
}

// AllowedNextStatuses is the pure transition table for the booking status
// machine. Callers that want to tighten the workflow can consult it; the
// update path itself does not reject out-of-table transitions.
func AllowedNextStatuses(status string) []string {
	switch status {
	case StatusPending:
		return []string{StatusConfirmed, StatusInProgress, StatusCancelled}
	case StatusConfirmed:
		return []string{StatusInProgress, StatusCancelled}
	case StatusInProgress:
		return []string{StatusCompleted, StatusCancelled}
	default:
		// completed / cancelled are terminal in practice; unknown values
		// have no table entry.
		return nil
	}
}

// IsAllowedTransition reports whether next appears in the transition table
// for the current status.
func IsAllowedTransition(current, next string) bool {
	for _, s := range AllowedNextStatuses(current) {
		if s == next {
			return true
		}
	}
	return false
}
