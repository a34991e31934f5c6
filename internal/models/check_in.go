package models

import "time"

// CheckIn records that an attendee arrived. At most one per attendee.
type CheckIn struct {
	ID         int64     `json:"id"`
	AttendeeID int64     `json:"attendeeId"`
	CreatedAt  time.Time `json:"createdAt"`
}
