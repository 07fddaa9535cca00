package api

import "log/slog"

// tripCount is the number of directions present in a ride input.
func tripCount(present ...bool) int {
	n := 0
	for _, p := range present {
		if p {
			n++
		}
	}
	return n
}

func (r *CalculateRequest) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("participants", len(r.Participants)),
		slog.Int("trips", tripCount(r.Outbound.IsPresent(), r.Return.IsPresent())),
		slog.String("language", r.Language),
	}
}

func (r *EstimateDistancesRequest) LogAttrs() []slog.Attr {
	return []slog.Attr{slog.Int("stops", len(r.Stops))}
}

func (r *SaveRideRequest) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("participants", len(r.Participants)),
		slog.Int("trips", tripCount(r.Outbound.IsPresent(), r.Return.IsPresent())),
	}
}

func (r *SaveRideResponse) LogAttrs() []slog.Attr {
	return []slog.Attr{slog.String("saved_ride_id", r.RideID)}
}
