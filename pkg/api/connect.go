package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// RideServiceName is the fully-qualified name of the RideService service.
const RideServiceName = "ridesplit.v1.RideService"

// Procedure names, used as HTTP paths.
const (
	RideServiceCalculateProcedure         = "/ridesplit.v1.RideService/Calculate"
	RideServiceEstimateDistancesProcedure = "/ridesplit.v1.RideService/EstimateDistances"
	RideServiceSaveRideProcedure          = "/ridesplit.v1.RideService/SaveRide"
	RideServiceGetRideProcedure           = "/ridesplit.v1.RideService/GetRide"
	RideServiceDeleteRideProcedure        = "/ridesplit.v1.RideService/DeleteRide"
)

// RideServiceHandler is implemented by the server.
type RideServiceHandler interface {
	Calculate(context.Context, *connect.Request[CalculateRequest]) (*connect.Response[CalculateResponse], error)
	EstimateDistances(context.Context, *connect.Request[EstimateDistancesRequest]) (*connect.Response[EstimateDistancesResponse], error)
	SaveRide(context.Context, *connect.Request[SaveRideRequest]) (*connect.Response[SaveRideResponse], error)
	GetRide(context.Context, *connect.Request[GetRideRequest]) (*connect.Response[GetRideResponse], error)
	DeleteRide(context.Context, *connect.Request[DeleteRideRequest]) (*connect.Response[DeleteRideResponse], error)
}

// NewRideServiceHandler builds an HTTP handler for the service and returns
// the path to mount it on. The JSON codec is always registered.
func NewRideServiceHandler(svc RideServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(RideServiceCalculateProcedure,
		connect.NewUnaryHandler(RideServiceCalculateProcedure, svc.Calculate, opts...))
	mux.Handle(RideServiceEstimateDistancesProcedure,
		connect.NewUnaryHandler(RideServiceEstimateDistancesProcedure, svc.EstimateDistances, opts...))
	mux.Handle(RideServiceSaveRideProcedure,
		connect.NewUnaryHandler(RideServiceSaveRideProcedure, svc.SaveRide, opts...))
	mux.Handle(RideServiceGetRideProcedure,
		connect.NewUnaryHandler(RideServiceGetRideProcedure, svc.GetRide, opts...))
	mux.Handle(RideServiceDeleteRideProcedure,
		connect.NewUnaryHandler(RideServiceDeleteRideProcedure, svc.DeleteRide, opts...))

	return "/" + RideServiceName + "/", mux
}

// RideServiceClient calls a RideService over HTTP.
type RideServiceClient struct {
	calculate         *connect.Client[CalculateRequest, CalculateResponse]
	estimateDistances *connect.Client[EstimateDistancesRequest, EstimateDistancesResponse]
	saveRide          *connect.Client[SaveRideRequest, SaveRideResponse]
	getRide           *connect.Client[GetRideRequest, GetRideResponse]
	deleteRide        *connect.Client[DeleteRideRequest, DeleteRideResponse]
}

// NewRideServiceClient creates a client for the service at baseURL
// (e.g. "http://localhost:8080").
func NewRideServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *RideServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)

	return &RideServiceClient{
		calculate: connect.NewClient[CalculateRequest, CalculateResponse](
			httpClient, baseURL+RideServiceCalculateProcedure, opts...),
		estimateDistances: connect.NewClient[EstimateDistancesRequest, EstimateDistancesResponse](
			httpClient, baseURL+RideServiceEstimateDistancesProcedure, opts...),
		saveRide: connect.NewClient[SaveRideRequest, SaveRideResponse](
			httpClient, baseURL+RideServiceSaveRideProcedure, opts...),
		getRide: connect.NewClient[GetRideRequest, GetRideResponse](
			httpClient, baseURL+RideServiceGetRideProcedure, opts...),
		deleteRide: connect.NewClient[DeleteRideRequest, DeleteRideResponse](
			httpClient, baseURL+RideServiceDeleteRideProcedure, opts...),
	}
}

func (c *RideServiceClient) Calculate(ctx context.Context, req *connect.Request[CalculateRequest]) (*connect.Response[CalculateResponse], error) {
	return c.calculate.CallUnary(ctx, req)
}

func (c *RideServiceClient) EstimateDistances(ctx context.Context, req *connect.Request[EstimateDistancesRequest]) (*connect.Response[EstimateDistancesResponse], error) {
	return c.estimateDistances.CallUnary(ctx, req)
}

func (c *RideServiceClient) SaveRide(ctx context.Context, req *connect.Request[SaveRideRequest]) (*connect.Response[SaveRideResponse], error) {
	return c.saveRide.CallUnary(ctx, req)
}

func (c *RideServiceClient) GetRide(ctx context.Context, req *connect.Request[GetRideRequest]) (*connect.Response[GetRideResponse], error) {
	return c.getRide.CallUnary(ctx, req)
}

func (c *RideServiceClient) DeleteRide(ctx context.Context, req *connect.Request[DeleteRideRequest]) (*connect.Response[DeleteRideResponse], error) {
	return c.deleteRide.CallUnary(ctx, req)
}
