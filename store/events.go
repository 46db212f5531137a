package store

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/felixdarko/eventplanner-api/models"
)

// CategoryAll is the sentinel category that matches every event.
const CategoryAll = "All"

// EventCatalog is the in-memory event list. Reads dominate; mutations
// (create/update/delete) hold the write lock.
type EventCatalog struct {
	mu     sync.RWMutex
	events []models.Event
}

// NewEventCatalog builds a catalog holding a copy of the given events.
func NewEventCatalog(seed []models.Event) *EventCatalog {
	events := make([]models.Event, len(seed))
	copy(events, seed)
	return &EventCatalog{events: events}
}

// SeedEvents returns the stock catalog entries.
func SeedEvents() []models.Event {
	return []models.Event{
		{
			ID:          "1",
			Title:       "Tech Conference 2025",
			Organizer:   "TechEvents Inc.",
			Category:    "Technology",
			Date:        "2025-09-15",
			Time:        "9:00 AM - 6:00 PM",
			Location:    "San Francisco, CA",
			Price:       299,
			Rating:      4.8,
			Attendees:   1250,
			Description: "Join industry leaders for a day of innovation, networking, and cutting-edge technology discussions.",
		},
		{
			ID:          "2",
			Title:       "Design Workshop",
			Organizer:   "Creative Studio",
			Category:    "Design",
			Date:        "2025-09-22",
			Time:        "2:00 PM - 5:00 PM",
			Location:    "New York, NY",
			Price:       149,
			Rating:      4.9,
			Attendees:   85,
			Description: "Hands-on workshop covering the latest design trends and tools for modern digital experiences.",
		},
		{
			ID:          "3",
			Title:       "Startup Pitch Night",
			Organizer:   "Startup Hub",
			Category:    "Business",
			Date:        "2025-09-28",
			Time:        "7:00 PM - 10:00 PM",
			Location:    "Austin, TX",
			Price:       0,
			Rating:      4.7,
			Attendees:   200,
			Description: "Watch promising startups pitch their ideas to investors and network with entrepreneurs.",
		},
	}
}

// List returns the events matching the given filters. Category filters by
// exact match unless it is "All" or empty; search matches the term
// case-insensitively against title, organizer or location (any of them).
// Both filters compose with AND. An empty search matches everything.
func (c *EventCatalog) List(category, search string) []models.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []models.Event{}
	term := strings.ToLower(search)
	for _, ev := range c.events {
		if category != "" && category != CategoryAll && ev.Category != category {
			continue
		}
		if term != "" && !matchesSearch(&ev, term) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func matchesSearch(ev *models.Event, term string) bool {
	return strings.Contains(strings.ToLower(ev.Title), term) ||
		strings.Contains(strings.ToLower(ev.Organizer), term) ||
		strings.Contains(strings.ToLower(ev.Location), term)
}

// Get returns the event with the given id, or ErrNotFound.
func (c *EventCatalog) Get(id string) (models.Event, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, ev := range c.events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return models.Event{}, ErrNotFound
}

// Categories returns "All" followed by the distinct categories among the
// current events, in order of first occurrence.
func (c *EventCatalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []string{CategoryAll}
	seen := map[string]bool{}
	for _, ev := range c.events {
		if !seen[ev.Category] {
			seen[ev.Category] = true
			out = append(out, ev.Category)
		}
	}
	return out
}

// Create adds a new event with a generated id and zeroed rating/attendees.
func (c *EventCatalog) Create(ev models.Event) models.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	ev.ID = uuid.NewString()
	ev.Rating = 0
	ev.Attendees = 0
	c.events = append(c.events, ev)
	return ev
}

// Update merges the non-zero fields of patch into the event with the given
// id and returns the result, or ErrNotFound.
func (c *EventCatalog) Update(id string, patch models.Event) (models.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.events {
		if c.events[i].ID != id {
			continue
		}
		ev := &c.events[i]
		if patch.Title != "" {
			ev.Title = patch.Title
		}
		if patch.Organizer != "" {
			ev.Organizer = patch.Organizer
		}
		if patch.Category != "" {
			ev.Category = patch.Category
		}
		if patch.Date != "" {
			ev.Date = patch.Date
		}
		if patch.Time != "" {
			ev.Time = patch.Time
		}
		if patch.Location != "" {
			ev.Location = patch.Location
		}
		if patch.Description != "" {
			ev.Description = patch.Description
		}
		if patch.Price != 0 {
			ev.Price = patch.Price
		}
		return *ev, nil
	}
	return models.Event{}, ErrNotFound
}

// Delete removes the event with the given id, or returns ErrNotFound.
func (c *EventCatalog) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.events {
		if c.events[i].ID == id {
			c.events = append(c.events[:i], c.events[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
