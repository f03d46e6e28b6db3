package domain

import "time"

// Venue is a sports facility owned by a facility owner. New venues start
// unapproved and become bookable only after an admin approves them.
type Venue struct {
	ID          int64
	OwnerID     int64
	Name        string
	Slug        string
	Description string
	Address     string
	City        string
	State       string
	Country     string
	Amenities   []string
	Approved    bool
	CreatedAt   time.Time
}
