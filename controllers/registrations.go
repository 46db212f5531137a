package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/felixdarko/eventplanner-api/apperror"
	"github.com/felixdarko/eventplanner-api/models"
	"github.com/felixdarko/eventplanner-api/store"
)

// ServiceFee is the flat booking fee applied to paid events, in currency
// units. Free events carry no fee.
const ServiceFee = 9.99

// RegistrationsHandler serves the registration ledger: event sign-up,
// per-user history, payment preview and confirmation lookup.
type RegistrationsHandler struct {
	ledger  store.RegistrationLedger
	catalog *store.EventCatalog
}

func NewRegistrationsHandler(ledger store.RegistrationLedger, catalog *store.EventCatalog) *RegistrationsHandler {
	return &RegistrationsHandler{ledger: ledger, catalog: catalog}
}

// RegisterEventInput is the request body for registering to an event. The
// eventId is deliberately not checked against the catalog; unauthenticated
// registrations use the "guest" userId.
type RegisterEventInput struct {
	EventID             string `json:"eventId" binding:"required"`
	UserID              string `json:"userId"`
	FirstName           string `json:"firstName" binding:"required"`
	LastName            string `json:"lastName" binding:"required"`
	Email               string `json:"email" binding:"required,email"`
	Phone               string `json:"phone" binding:"required"`
	Company             string `json:"company"`
	DietaryRestrictions string `json:"dietaryRestrictions"`
	AdditionalNotes     string `json:"additionalNotes"`
}

// PaymentSummaryInput carries the event to price.
type PaymentSummaryInput struct {
	EventID string `json:"eventId" binding:"required"`
}

// Create records a registration and returns the assigned ticket id.
func (h *RegistrationsHandler) Create(c *gin.Context) {
	var input RegisterEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperror.NewValidation(err.Error(), err))
		return
	}

	if input.UserID == "" {
		input.UserID = models.GuestUserID
	}

	reg := models.Registration{
		EventID:             input.EventID,
		UserID:              input.UserID,
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		Email:               input.Email,
		Phone:               input.Phone,
		Company:             input.Company,
		DietaryRestrictions: input.DietaryRestrictions,
		AdditionalNotes:     input.AdditionalNotes,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.ledger.Insert(ctx, &reg); err != nil {
		fail(c, apperror.NewInternal("Could not create registration", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Registration successful!",
		"registration": reg,
		"ticketId":     reg.TicketID,
	})
}

// ListByUser returns all registrations for a user in insertion order.
func (h *RegistrationsHandler) ListByUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	regs, err := h.ledger.ListByUser(ctx, c.Param("userId"))
	if err != nil {
		fail(c, apperror.NewInternal("Could not fetch registrations", err))
		return
	}

	c.JSON(http.StatusOK, regs)
}

// PaymentSummary previews the price breakdown for an event. The service
// fee applies only to paid events.
func (h *RegistrationsHandler) PaymentSummary(c *gin.Context) {
	var input PaymentSummaryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperror.NewValidation(err.Error(), err))
		return
	}

	ev, err := h.catalog.Get(input.EventID)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, apperror.NewNotFound("Event not found"))
		return
	}

	fee := 0.0
	if ev.Price > 0 {
		fee = ServiceFee
	}

	c.JSON(http.StatusOK, gin.H{
		"eventTitle":  ev.Title,
		"eventTicket": ev.Price,
		"serviceFee":  fee,
		"total":       ev.Price + fee,
	})
}

// Confirmation joins a registration with the live catalog's display fields
// for its event. An unknown event id fails rather than falling back to a
// wrong default.
func (h *RegistrationsHandler) Confirmation(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	reg, err := h.ledger.FindByTicketID(ctx, c.Param("ticketId"))
	if errors.Is(err, store.ErrNotFound) {
		fail(c, apperror.NewNotFound("Registration not found"))
		return
	}
	if err != nil {
		fail(c, apperror.NewInternal("Could not fetch registration", err))
		return
	}

	ev, err := h.catalog.Get(reg.EventID)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, apperror.NewNotFound("Event not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"registration": reg,
		"event":        ev.Summary(),
		"ticketId":     reg.TicketID,
	})
}
