package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/mmynk/ridesplit/internal/auth"
	"github.com/mmynk/ridesplit/internal/calculator"
	"github.com/mmynk/ridesplit/internal/format"
	"github.com/mmynk/ridesplit/internal/middleware"
	"github.com/mmynk/ridesplit/internal/models"
	"github.com/mmynk/ridesplit/internal/routing"
	"github.com/mmynk/ridesplit/internal/storage"
	"github.com/mmynk/ridesplit/pkg/api"
)

var _ api.RideServiceHandler = (*RideService)(nil)

// ErrNoDistanceLookup is returned by EstimateDistances when no routing backend is configured.
var ErrNoDistanceLookup = errors.New("distance lookup is not configured")

// RideService implements the Connect RideService
type RideService struct {
	store     storage.Store
	shares    *auth.ShareManager
	distances routing.DistanceLookup
}

// NewRideService creates a new RideService. distances may be nil, in which
// case EstimateDistances fails with FailedPrecondition.
func NewRideService(store storage.Store, shares *auth.ShareManager, distances routing.DistanceLookup) *RideService {
	return &RideService{
		store:     store,
		shares:    shares,
		distances: distances,
	}
}

// Calculate computes costs, settlements and share text without saving.
func (s *RideService) Calculate(ctx context.Context, req *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	msg := req.Msg
	if err := calculator.ValidateRide(msg.Participants, msg.Outbound, msg.Return); err != nil {
		slog.Warn("Calculate: invalid ride", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	full, settlements := calculate(msg.Participants, msg.Outbound, msg.Return)
	lang := format.ParseLanguage(msg.Language)

	slog.Info("Ride calculated",
		"participants", len(msg.Participants),
		"total_cost", full.TotalCost,
		"total_distance", full.TotalDistance,
		"settlements", len(settlements),
	)

	return connect.NewResponse(&api.CalculateResponse{
		Calculation: full,
		Settlements: settlements,
		ShareText:   format.ShareText(full, settlements, lang),
	}), nil
}

// EstimateDistances looks up the driving distance between consecutive stops.
func (s *RideService) EstimateDistances(ctx context.Context, req *connect.Request[api.EstimateDistancesRequest]) (*connect.Response[api.EstimateDistancesResponse], error) {
	if s.distances == nil {
		return nil, connect.NewError(connect.CodeFailedPrecondition, ErrNoDistanceLookup)
	}

	stops := req.Msg.Stops
	if len(stops) < 2 {
		return nil, connect.NewError(connect.CodeInvalidArgument, calculator.ErrTooFewStops)
	}

	distances, err := routing.LegDistances(ctx, s.distances, stops)
	if err != nil {
		slog.Error("EstimateDistances failed", "stops", len(stops), "error", err)
		if errors.Is(err, routing.ErrNoRoute) {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}

	return connect.NewResponse(&api.EstimateDistancesResponse{Distances: distances}), nil
}

// SaveRide stores the ride inputs and returns a share token for it.
func (s *RideService) SaveRide(ctx context.Context, req *connect.Request[api.SaveRideRequest]) (*connect.Response[api.SaveRideResponse], error) {
	msg := req.Msg
	if err := calculator.ValidateRide(msg.Participants, msg.Outbound, msg.Return); err != nil {
		slog.Warn("SaveRide: invalid ride", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	ride := &models.Ride{
		Title:        msg.Title,
		Participants: msg.Participants,
		Outbound:     msg.Outbound,
		Return:       msg.Return,
	}
	if err := s.store.CreateRide(ctx, ride); err != nil {
		slog.Error("Failed to save ride", "error", err)
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to save ride: %w", err))
	}

	shareToken, err := s.shares.Generate(ride.ID, auth.ScopeView)
	if err != nil {
		slog.Error("Failed to generate share token", "ride_id", ride.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	ownerToken, err := s.shares.Generate(ride.ID, auth.ScopeOwner)
	if err != nil {
		slog.Error("Failed to generate owner token", "ride_id", ride.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Ride saved", "ride_id", ride.ID, "title", ride.Title)

	return connect.NewResponse(&api.SaveRideResponse{
		RideID:     ride.ID,
		ShareToken: shareToken,
		OwnerToken: ownerToken,
	}), nil
}

// GetRide loads the shared ride and recomputes its calculation.
func (s *RideService) GetRide(ctx context.Context, req *connect.Request[api.GetRideRequest]) (*connect.Response[api.GetRideResponse], error) {
	ride, err := s.sharedRide(ctx)
	if err != nil {
		return nil, err
	}

	full, settlements := calculate(ride.Participants, ride.Outbound, ride.Return)
	lang := format.ParseLanguage(req.Msg.Language)

	return connect.NewResponse(&api.GetRideResponse{
		Ride:        *ride,
		Calculation: full,
		Settlements: settlements,
		ShareText:   format.ShareText(full, settlements, lang),
	}), nil
}

// DeleteRide removes the ride. It needs the owner token issued by SaveRide.
func (s *RideService) DeleteRide(ctx context.Context, req *connect.Request[api.DeleteRideRequest]) (*connect.Response[api.DeleteRideResponse], error) {
	rideID := middleware.GetRideID(ctx)
	if rideID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	if !middleware.GetScope(ctx).Allows(auth.ScopeOwner) {
		return nil, connect.NewError(connect.CodePermissionDenied, auth.ErrOwnerRequired)
	}

	if err := s.store.DeleteRide(ctx, rideID); err != nil {
		return nil, storeError("DeleteRide", rideID, err)
	}

	slog.Info("Ride deleted", "ride_id", rideID)

	return connect.NewResponse(&api.DeleteRideResponse{}), nil
}

func (s *RideService) sharedRide(ctx context.Context) (*models.Ride, error) {
	rideID := middleware.GetRideID(ctx)
	if rideID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	ride, err := s.store.GetRide(ctx, rideID)
	if err != nil {
		return nil, storeError("GetRide", rideID, err)
	}
	return ride, nil
}

// storeError maps a storage error to a Connect error.
func storeError(op, rideID string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	slog.Error(op+" failed", "ride_id", rideID, "error", err)
	return connect.NewError(connect.CodeInternal, err)
}

func calculate(participants []models.Participant, outbound, returnTrip models.Optional[models.Trip]) (models.FullRideCalculation, []models.Settlement) {
	full, settlements := calculator.CalculateRide(participants, outbound, returnTrip)
	for _, pc := range full.CombinedCosts {
		slog.Debug("Participant cost",
			"participant", pc.ParticipantID,
			"total", pc.TotalCost,
			"legs", len(pc.LegDetails),
		)
	}
	return full, settlements
}
