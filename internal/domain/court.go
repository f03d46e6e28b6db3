package domain

// Court is a bookable unit inside a venue. PricePerHour is in the smallest
// currency unit; OpenTime/CloseTime are whole hours in [0,24) with
// OpenTime < CloseTime.
type Court struct {
	ID           int64
	VenueID      int64
	Name         string
	Sport        string
	PricePerHour int64
	Currency     string
	OpenTime     int
	CloseTime    int
}
