package registrations

// capacityReached reports whether an event that allows at most maximum attendees
// is full with count registrations. A nil maximum means unlimited.
func capacityReached(maximum *int, count int) bool {
	return maximum != nil && count >= *maximum
}
