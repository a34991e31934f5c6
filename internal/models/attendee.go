package models

import (
	"time"

	"github.com/google/uuid"
)

// Attendee is a person registered for an event, unique per (event, email).
type Attendee struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	EventID   uuid.UUID `json:"eventId"`
	CreatedAt time.Time `json:"createdAt"`
}

// AttendeeListItem is one row of an event's attendee list.
type AttendeeListItem struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"createdAt"`
	CheckedInAt *time.Time `json:"checkedInAt"`
}

// Badge is what an attendee presents at the door.
type Badge struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	EventTitle string `json:"eventTitle"`
	CheckInURL string `json:"checkInURL"`
}
