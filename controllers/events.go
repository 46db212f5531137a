package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/felixdarko/eventplanner-api/apperror"
	"github.com/felixdarko/eventplanner-api/models"
	"github.com/felixdarko/eventplanner-api/store"
)

// EventsHandler serves the event catalog.
type EventsHandler struct {
	catalog *store.EventCatalog
}

func NewEventsHandler(catalog *store.EventCatalog) *EventsHandler {
	return &EventsHandler{catalog: catalog}
}

// CreateEventInput is the request body for creating an event.
type CreateEventInput struct {
	Title       string  `json:"title" binding:"required"`
	Organizer   string  `json:"organizer"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Location    string  `json:"location"`
	Price       float64 `json:"price" binding:"gte=0"`
	Description string  `json:"description"`
}

// List returns events filtered by the optional category and search query
// parameters.
func (h *EventsHandler) List(c *gin.Context) {
	category := c.Query("category")
	search := c.Query("search")

	c.JSON(http.StatusOK, h.catalog.List(category, search))
}

// Get returns a single event by id.
func (h *EventsHandler) Get(c *gin.Context) {
	ev, err := h.catalog.Get(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		fail(c, apperror.NewNotFound("Event not found"))
		return
	}

	c.JSON(http.StatusOK, ev)
}

// Categories returns "All" followed by the distinct event categories.
func (h *EventsHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Categories())
}

// Create adds a new event to the catalog.
func (h *EventsHandler) Create(c *gin.Context) {
	var input CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperror.NewValidation(err.Error(), err))
		return
	}

	ev := h.catalog.Create(models.Event{
		Title:       input.Title,
		Organizer:   input.Organizer,
		Category:    input.Category,
		Date:        input.Date,
		Time:        input.Time,
		Location:    input.Location,
		Price:       input.Price,
		Description: input.Description,
	})

	c.JSON(http.StatusCreated, ev)
}

// Update merges the supplied fields into an existing event.
func (h *EventsHandler) Update(c *gin.Context) {
	var patch models.Event
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, apperror.NewValidation(err.Error(), err))
		return
	}

	ev, err := h.catalog.Update(c.Param("id"), patch)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, apperror.NewNotFound("Event not found"))
		return
	}

	c.JSON(http.StatusOK, ev)
}

// Delete removes an event from the catalog.
func (h *EventsHandler) Delete(c *gin.Context) {
	if err := h.catalog.Delete(c.Param("id")); errors.Is(err, store.ErrNotFound) {
		fail(c, apperror.NewNotFound("Event not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
