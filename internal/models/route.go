package models

// Stop represents a point on a trip's route.
type Stop struct {
	// ID is the unique identifier for the stop.
	ID string `json:"id"`

	// Name is the label shown for the stop (e.g., "Home", "Office").
	Name string `json:"name"`

	// Address is the street address used for distance lookups.
	Address string `json:"address"`

	// Entering lists the participant IDs who board at this stop.
	// Ignored on the final stop because no leg departs from it.
	Entering []string `json:"entering"`

	// Exiting lists the participant IDs who alight at this stop.
	// Meaningless on the first stop, but tolerated.
	Exiting []string `json:"exiting"`
}

// Label returns the stop name, falling back to the address.
func (s Stop) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Address
}

// Leg is the portion of a trip between two consecutive stops.
type Leg struct {
	From Stop `json:"from"`
	To   Stop `json:"to"`

	// Distance is in kilometers. Zero is valid and contributes zero cost.
	Distance float64 `json:"distance"`

	// Passengers are the participant IDs in the vehicle during this leg,
	// in boarding order.
	Passengers []string `json:"passengers"`
}

// Trip is one authored trip direction, as supplied by the caller.
type Trip struct {
	// Stops is the ordered route. At least 2 stops are needed for a leg.
	Stops []Stop `json:"stops"`

	// Distances[i] is the distance in km between Stops[i] and Stops[i+1].
	Distances []float64 `json:"distances"`

	// TotalCost is the amount paid for this trip.
	TotalCost float64 `json:"total_cost"`

	// PaidByID is the participant who fronted the money. Empty if unknown.
	PaidByID string `json:"paid_by_id,omitempty"`
}
