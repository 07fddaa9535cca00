package models

// LegDetail is one participant's share of a single leg.
type LegDetail struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Cost float64 `json:"cost"`

	// SharedWith is the passenger count on the leg ("split 3 ways").
	SharedWith int `json:"shared_with"`
}

// ParticipantCost is one participant's calculated share of a trip or ride.
// An entry exists for every known participant, even when the cost is zero.
type ParticipantCost struct {
	ParticipantID   string      `json:"participant_id"`
	ParticipantName string      `json:"participant_name"`
	TotalCost       float64     `json:"total_cost"`
	LegDetails      []LegDetail `json:"leg_details"`
}

// RideCalculation is the cost split of one trip direction.
type RideCalculation struct {
	TotalCost     float64 `json:"total_cost"`
	TotalDistance float64 `json:"total_distance"`

	// ParticipantCosts follows the participant list order.
	ParticipantCosts []ParticipantCost `json:"participant_costs"`

	Legs []Leg `json:"legs"`

	// PaidByID is who fronted the money for this trip. Empty if unspecified.
	PaidByID string `json:"paid_by_id,omitempty"`
}

// FullRideCalculation merges the outbound and return trips into one ledger.
type FullRideCalculation struct {
	Outbound Optional[RideCalculation] `json:"outbound"`
	Return   Optional[RideCalculation] `json:"return"`

	// CombinedCosts follows the participant list order.
	CombinedCosts []ParticipantCost `json:"combined_costs"`

	TotalCost     float64 `json:"total_cost"`
	TotalDistance float64 `json:"total_distance"`
}

// Settlement is a single instructed transfer: From owes To Amount.
type Settlement struct {
	FromID   string  `json:"from_id"`
	FromName string  `json:"from_name"`
	ToID     string  `json:"to_id"`
	ToName   string  `json:"to_name"`
	Amount   float64 `json:"amount"`
}
