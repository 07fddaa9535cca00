package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// logAttrer is implemented by request and response messages that add their
// own fields (participant counts, ride IDs) to the RPC log line.
type logAttrer interface {
	LogAttrs() []slog.Attr
}

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with the procedure, the shared ride ID, the duration, fields contributed
// by the messages, and the error code if the call failed.
// Place it after ShareToken so the ride ID is known.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()

			attrs := []slog.Attr{slog.String("procedure", req.Spec().Procedure)}
			if rideID := GetRideID(ctx); rideID != "" {
				attrs = append(attrs, slog.String("ride_id", rideID), slog.String("scope", string(GetScope(ctx))))
			}
			attrs = appendMessageAttrs(attrs, req.Any())

			resp, err := next(ctx, req)

			attrs = append(attrs, slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			if err != nil {
				code := connect.CodeOf(err)
				attrs = append(attrs, slog.String("code", code.String()), slog.Any("error", err))
				slog.LogAttrs(ctx, levelForCode(code), "RPC error", attrs...)
				return resp, err
			}

			if resp != nil {
				attrs = appendMessageAttrs(attrs, resp.Any())
			}
			slog.LogAttrs(ctx, slog.LevelInfo, "RPC ok", attrs...)
			return resp, nil
		}
	}
}

func appendMessageAttrs(attrs []slog.Attr, msg any) []slog.Attr {
	if la, ok := msg.(logAttrer); ok {
		return append(attrs, la.LogAttrs()...)
	}
	return attrs
}

// levelForCode logs caller mistakes as warnings and server faults as errors.
func levelForCode(code connect.Code) slog.Level {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeNotFound, connect.CodeUnauthenticated,
		connect.CodePermissionDenied, connect.CodeFailedPrecondition, connect.CodeCanceled:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
