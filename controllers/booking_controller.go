// controllers/booking_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"limo-backend/middleware"
	"limo-backend/models"
	"limo-backend/services"
	"limo-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

// SubmitBookingRequest is the customer-facing booking form. Contact fields,
// vehicle selection and passenger count are required; the rest is optional.
type SubmitBookingRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	VehicleType   string `json:"vehicle_type" binding:"required"`
	Passengers    int    `json:"passengers" binding:"required,min=1"`

	PickupDate      string         `json:"pickup_date"`
	PickupTime      string         `json:"pickup_time"`
	PickupLocation  string         `json:"pickup_location"`
	DropoffLocation string         `json:"dropoff_location"`
	SpecialRequests string         `json:"special_requests"`
	Extras          datatypes.JSON `json:"extras"`
}

type UpdateStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
	AdminSvc   *services.AdminService
}

func NewBookingController(svc *services.BookingService, admins *services.AdminService) *BookingController {
	return &BookingController{BookingSvc: svc, AdminSvc: admins}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return 0, false
	}
	return uint(id), true
}

func parsePagination(c *gin.Context) (limit int, cursor uint) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if cur, err := strconv.ParseUint(c.Query("cursor"), 10, 32); err == nil {
		cursor = uint(cur)
	}
	return limit, cursor
}

// CreateBooking handles POST /api/bookings (public). The response is sent
// as soon as the document is written; notification outcome never affects it.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req SubmitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking payload: "+err.Error())
		return
	}

	booking, err := bc.BookingSvc.Submit(models.Booking{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		VehicleType:     req.VehicleType,
		Passengers:      req.Passengers,
		PickupDate:      req.PickupDate,
		PickupTime:      req.PickupTime,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		SpecialRequests: req.SpecialRequests,
		Extras:          req.Extras,
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create booking")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// GetBookings handles GET /api/bookings (admin): newest first, paginated.
func (bc *BookingController) GetBookings(c *gin.Context) {
	limit, cursor := parsePagination(c)
	bookings, next, err := bc.BookingSvc.List(limit, cursor)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"bookings": bookings, "next_cursor": next})
}

// GetMyBookings handles GET /api/bookings/mine: the caller's own bookings,
// matched by the token email.
func (bc *BookingController) GetMyBookings(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmail)
	bookings, err := bc.BookingSvc.ListByEmail(email)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// GetBooking handles GET /api/bookings/:id. Admins see any booking; other
// callers only their own (matched by stored email).
func (bc *BookingController) GetBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := bc.BookingSvc.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking")
		return
	}

	email := c.GetString(middleware.CtxUserEmail)
	if !bc.AdminSvc.IsAdmin(email) && !strings.EqualFold(email, booking.CustomerEmail) {
		utils.JSONError(c, http.StatusForbidden, "not the booking owner")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, booking)
}

// UpdateBookingStatus handles PATCH /api/bookings/:id/status (admin). Any
// status value is accepted; a missing booking aborts before any write.
func (bc *BookingController) UpdateBookingStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload UpdateStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}

	booking, err := bc.BookingSvc.UpdateStatus(id, payload.Status)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update booking")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, booking)
}

// DeleteBooking handles DELETE /api/bookings/:id (admin). Present for
// completeness; the dashboard does not use it.
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := bc.BookingSvc.Delete(id); err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete booking")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
