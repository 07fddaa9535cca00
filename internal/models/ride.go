package models

// Ride is a saved set of participants and trip directions.
// Calculations are not part of the ride; they are recomputed on read.
type Ride struct {
	// ID is the unique identifier for the ride (UUID format).
	ID string `json:"id"`

	// Title is the human-readable name. Auto-generated from participants when empty.
	Title string `json:"title"`

	Participants []Participant `json:"participants"`

	Outbound Optional[Trip] `json:"outbound"`
	Return   Optional[Trip] `json:"return"`

	// CreatedAt is the Unix timestamp when the ride was saved.
	CreatedAt int64 `json:"created_at"`
}
