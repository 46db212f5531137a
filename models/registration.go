package models

import "time"

// GuestUserID marks a registration submitted without an account.
const GuestUserID = "guest"

// StatusConfirmed is the only registration status the system issues today;
// there is no payment gating or failure state.
const StatusConfirmed = "confirmed"

// Registration is one user's (or guest's) registration to an event.
// Records are immutable once written; TicketID is the external lookup key.
type Registration struct {
	ID                  string    `bson:"_id" json:"id"`
	EventID             string    `bson:"event_id" json:"eventId"`
	UserID              string    `bson:"user_id" json:"userId"`
	TicketID            string    `bson:"ticket_id" json:"ticketId"`
	FirstName           string    `bson:"first_name" json:"firstName"`
	LastName            string    `bson:"last_name" json:"lastName"`
	Email               string    `bson:"email" json:"email"`
	Phone               string    `bson:"phone" json:"phone"`
	Company             string    `bson:"company,omitempty" json:"company"`
	DietaryRestrictions string    `bson:"dietary_restrictions,omitempty" json:"dietaryRestrictions"`
	AdditionalNotes     string    `bson:"additional_notes,omitempty" json:"additionalNotes"`
	RegistrationDate    time.Time `bson:"registration_date" json:"registrationDate"`
	Status              string    `bson:"status" json:"status"`
}
