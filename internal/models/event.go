package models

import (
	"github.com/google/uuid"
)

// Event is a registrable event. Slug is unique and derived from Title.
type Event struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Details          *string   `json:"details"`
	MaximumAttendees *int      `json:"maximumAttendees"`
}

// EventSummary is an event together with its current attendee count.
type EventSummary struct {
	Event
	AttendeesAmount int `json:"attendeesAmount"`
}
