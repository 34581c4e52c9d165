package grpc

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/NaufalHusnianto/Agnivolt/pkg/common"
	pb "github.com/NaufalHusnianto/Agnivolt/pkg/grpc/turbine_service"
)

// requestDeviceID finds the device a request is about: the value of a
// StringValue, or the device_id field of a Struct.
func requestDeviceID(req any) (string, bool) {
	switch r := req.(type) {
	case *wrapperspb.StringValue:
		return strings.TrimSpace(r.GetValue()), true
	case *structpb.Struct:
		field, ok := r.GetFields()[fieldDeviceID]
		if !ok {
			return "", false
		}
		return strings.TrimSpace(field.GetStringValue()), true
	default:
		return "", false
	}
}

// CreateRateLimitInterceptor applies the per-device limiter to the listed
// full method names. Requests without a device id, or for a device that is
// not registered, pass through so the handler can reject them.
func (s *TurbineServer) CreateRateLimitInterceptor(targetMethods []string) grpc.UnaryServerInterceptor {
	targetMethodMap := common.Reducer(targetMethods,
		func(m map[string]bool, method string) map[string]bool {
			m[method] = true
			return m
		},
		map[string]bool{},
	)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if _, ok := targetMethodMap[info.FullMethod]; ok {
			if deviceID, ok := requestDeviceID(req); ok && deviceID != "" {
				// unregistered devices go straight to the handler, which
				// rejects them without creating a limiter entry
				if info.FullMethod != pb.TurbineService_RegisterDevice_FullMethodName && !s.registered(ctx, deviceID) {
					return handler(ctx, req)
				}
				if !s.CheckDeviceLimiter(deviceID) {
					return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded")
				}
			}
		}

		return handler(ctx, req)
	}
}
