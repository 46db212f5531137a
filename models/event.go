package models

// Event is a catalog entry visitors can browse and register for.
// The catalog is seeded at startup; ids are plain strings so that seed
// entries keep their well-known ids ("1", "2", "3").
type Event struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Organizer   string  `json:"organizer"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	Attendees   int     `json:"attendees"`
	Description string  `json:"description"`
}

// EventSummary is the display-only slice of an event joined onto a
// registration confirmation.
type EventSummary struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

// Summary returns the confirmation view of the event.
func (e *Event) Summary() EventSummary {
	return EventSummary{Title: e.Title, Date: e.Date, Time: e.Time, Location: e.Location}
}
