// Package api defines the RideService RPC contract: request and response
// messages, procedure names, and Connect handler and client constructors.
// Messages are plain Go structs carried by a JSON codec.
package api

import "github.com/mmynk/ridesplit/internal/models"

// CalculateRequest asks for a one-off calculation without saving anything.
type CalculateRequest struct {
	Participants []models.Participant         `json:"participants"`
	Outbound     models.Optional[models.Trip] `json:"outbound"`
	Return       models.Optional[models.Trip] `json:"return"`

	// Language is a BCP 47 tag for the share text ("pt-BR", "en-US").
	Language string `json:"language,omitempty"`
}

type CalculateResponse struct {
	Calculation models.FullRideCalculation `json:"calculation"`
	Settlements []models.Settlement        `json:"settlements"`
	ShareText   string                     `json:"share_text"`
}

// EstimateDistancesRequest asks for the driving distance of every gap between stops.
type EstimateDistancesRequest struct {
	Stops []models.Stop `json:"stops"`
}

type EstimateDistancesResponse struct {
	// Distances[i] is the distance in km between Stops[i] and Stops[i+1].
	Distances []float64 `json:"distances"`
}

// SaveRideRequest stores a ride so it can be reopened with a share token.
type SaveRideRequest struct {
	Title        string                       `json:"title,omitempty"`
	Participants []models.Participant         `json:"participants"`
	Outbound     models.Optional[models.Trip] `json:"outbound"`
	Return       models.Optional[models.Trip] `json:"return"`
}

type SaveRideResponse struct {
	RideID string `json:"ride_id"`

	// ShareToken opens the ride read-only. It goes in share links.
	ShareToken string `json:"share_token"`

	// OwnerToken also allows DeleteRide. Keep it with the creator.
	OwnerToken string `json:"owner_token"`
}

// GetRideRequest reopens the ride named by the share token in the
// Authorization header.
type GetRideRequest struct {
	Language string `json:"language,omitempty"`
}

type GetRideResponse struct {
	Ride        models.Ride                `json:"ride"`
	Calculation models.FullRideCalculation `json:"calculation"`
	Settlements []models.Settlement        `json:"settlements"`
	ShareText   string                     `json:"share_text"`
}

// DeleteRideRequest deletes the ride named by the owner token in the
// Authorization header. A view-only share token is rejected.
type DeleteRideRequest struct{}

type DeleteRideResponse struct{}
