package grpc

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/NaufalHusnianto/Agnivolt/pkg/grpc/turbine_service"
	"github.com/NaufalHusnianto/Agnivolt/pkg/iot"
)

type TurbineServer struct {
	Iot              *iot.IOT
	RateLimiterStore *iot.RateLimiterStore

	// Now is the clock used for "today" and history cutoffs; nil means time.Now.
	Now func() time.Time

	pb.UnimplementedTurbineServiceServer
}

func (s *TurbineServer) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *TurbineServer) GetLimiter(deviceID string) *rate.Limiter {
	if s.RateLimiterStore == nil {
		return nil
	} else {
		return s.RateLimiterStore.GetLimiter(deviceID)
	}
}

func (s *TurbineServer) CheckDeviceLimiter(deviceID string) bool {
	limiter := s.GetLimiter(deviceID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (s *TurbineServer) registered(ctx context.Context, deviceID string) bool {
	ok, err := s.Iot.Registry.IsRegistered(ctx, deviceID)
	return err == nil && ok
}

// admitDevice checks registration before the limiter so unknown ids never
// get a limiter entry.
func (s *TurbineServer) admitDevice(ctx context.Context, deviceID string) error {
	ok, err := s.Iot.Registry.IsRegistered(ctx, deviceID)
	if err != nil {
		return toStatus(err)
	}
	if !ok {
		return toStatus(fmt.Errorf("%w: %q", iot.ErrNotRegistered, deviceID))
	}
	if !s.CheckDeviceLimiter(deviceID) {
		return status.Errorf(codes.ResourceExhausted, "rate limit exceeded")
	}
	return nil
}
