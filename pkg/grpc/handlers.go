package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	z "github.com/Oudwins/zog"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/NaufalHusnianto/Agnivolt/pkg/common"
	pb "github.com/NaufalHusnianto/Agnivolt/pkg/grpc/turbine_service"
	"github.com/NaufalHusnianto/Agnivolt/pkg/iot"
	"github.com/NaufalHusnianto/Agnivolt/pkg/models"
	"github.com/NaufalHusnianto/Agnivolt/pkg/series"
)

const (
	fieldDeviceID = "device_id"
	fieldRange    = "range"
	fieldMetrics  = "metrics"
	fieldRate     = "rate"
	fieldBurst    = "burst"
)

const liveStreamBuffer = 16

func validateDeviceID(deviceID *string) z.ZogIssueList {
	*deviceID = strings.TrimSpace(*deviceID)
	var deviceIdValidator = z.String().Min(1).Required()
	return deviceIdValidator.Validate(deviceID)
}

func toStatus(err error) error {
	var code codes.Code
	switch {
	case errors.Is(err, iot.ErrEmptyInput):
		code = codes.InvalidArgument
	case errors.Is(err, iot.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, iot.ErrAlreadyRegistered):
		code = codes.AlreadyExists
	case errors.Is(err, iot.ErrNotRegistered):
		code = codes.FailedPrecondition
	case errors.Is(err, iot.ErrRemoteFailure):
		code = codes.Unavailable
	default:
		code = codes.Internal
		common.GetLoggerWith(common.LoggerNameGrpcServer).Error("Request failed", zap.Error(err))
	}
	return status.Error(code, err.Error())
}

// toStruct converts a JSON-shaped value into a Struct. The JSON tags of the
// models define the field names on both transports.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func issuesMessage(issues z.ZogIssueList) string {
	return strings.Join(common.Mapper(issues, func(issue *z.ZogIssue) string { return issue.Error() }), "; ")
}

func invalidArgument(issues z.ZogIssueList) error {
	return status.Errorf(codes.InvalidArgument, "validation error: %s", issuesMessage(issues))
}

func (s *TurbineServer) ListDevices(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	devices, err := s.Iot.Registry.ListDevices(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]any{"devices": devices})
}

func (s *TurbineServer) RegisterDevice(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	deviceID := req.GetValue()
	if issues := validateDeviceID(&deviceID); issues != nil {
		return nil, toStatus(fmt.Errorf("%w: %s", iot.ErrEmptyInput, issuesMessage(issues)))
	}

	device, err := s.Iot.Registry.RegisterDevice(ctx, deviceID)
	if err != nil {
		if s.RateLimiterStore != nil && !errors.Is(err, iot.ErrAlreadyRegistered) {
			s.RateLimiterStore.Forget(deviceID)
		}
		return nil, toStatus(err)
	}
	return toStruct(device)
}

func (s *TurbineServer) RemoveDevice(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	deviceID := req.GetValue()
	if issues := validateDeviceID(&deviceID); issues != nil {
		return nil, invalidArgument(issues)
	}

	if err := s.Iot.Registry.RemoveDevice(ctx, deviceID); err != nil {
		return nil, toStatus(err)
	}
	if s.RateLimiterStore != nil {
		s.RateLimiterStore.Forget(deviceID)
	}
	return &emptypb.Empty{}, nil
}

func (s *TurbineServer) GetLive(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	deviceID := req.GetValue()
	if issues := validateDeviceID(&deviceID); issues != nil {
		return nil, invalidArgument(issues)
	}

	today := s.now().Format(common.DateLayout)
	indicators, err := s.Iot.Live.GetLive(ctx, deviceID, today)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]any{"date": today, "indicators": indicators})
}

// WatchLive streams today's indicators, the current reading first and then
// one message per change, until the client cancels.
func (s *TurbineServer) WatchLive(req *wrapperspb.StringValue, stream pb.TurbineService_WatchLiveServer) error {
	deviceID := req.GetValue()
	if issues := validateDeviceID(&deviceID); issues != nil {
		return invalidArgument(issues)
	}

	ctx := stream.Context()
	if err := s.admitDevice(ctx, deviceID); err != nil {
		return err
	}

	today := s.now().Format(common.DateLayout)
	updates := make(chan []models.Indicator, liveStreamBuffer)
	unsubscribe, err := s.Iot.Live.WatchLive(ctx, deviceID, today, func(indicators []models.Indicator) {
		select {
		case updates <- indicators:
		default:
			common.GetLoggerWith(common.LoggerNameGrpcServer).
				Warn("Dropping live update for slow client", zap.String("device_id", deviceID))
		}
	})
	if err != nil {
		return toStatus(err)
	}
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case indicators := <-updates:
			msg, err := toStruct(map[string]any{"date": today, "indicators": indicators})
			if err != nil {
				return err
			}
			if err := stream.Send(msg); err != nil {
				return err
			}
		}
	}
}

func (s *TurbineServer) GetHistory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()

	deviceID := fields[fieldDeviceID].GetStringValue()
	if issues := validateDeviceID(&deviceID); issues != nil {
		return nil, invalidArgument(issues)
	}

	rng := series.RangeWeek
	if v, ok := fields[fieldRange]; ok && v.GetStringValue() != "" {
		rng = series.Range(v.GetStringValue())
	}

	var metricNames []string
	for _, v := range fields[fieldMetrics].GetListValue().GetValues() {
		if name := v.GetStringValue(); name != "" {
			metricNames = append(metricNames, name)
		}
	}

	history, err := s.Iot.History.GetHistory(ctx, deviceID, rng, metricNames, s.now())
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(history)
}

func (s *TurbineServer) SetLimiter(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	fields := req.GetFields()

	deviceID := fields[fieldDeviceID].GetStringValue()
	if issues := validateDeviceID(&deviceID); issues != nil {
		return nil, invalidArgument(issues)
	}

	rateValue, hasRate := fields[fieldRate]
	burstValue, hasBurst := fields[fieldBurst]
	if !hasRate || !hasBurst {
		return nil, status.Errorf(codes.InvalidArgument, "validation error: rate and burst are required")
	}

	deviceRate := rateValue.GetNumberValue()
	deviceBurst := int(burstValue.GetNumberValue())
	var rateValidator = z.Float64().GT(0).Required()
	if issues := rateValidator.Validate(&deviceRate); issues != nil {
		return nil, invalidArgument(issues)
	}
	var burstValidator = z.Int().GT(0).Required()
	if issues := burstValidator.Validate(&deviceBurst); issues != nil {
		return nil, invalidArgument(issues)
	}

	if s.RateLimiterStore == nil {
		return nil, status.Errorf(codes.FailedPrecondition, "RateLimiterStore is not used. No effect.")
	}
	if !s.registered(ctx, deviceID) {
		return nil, toStatus(fmt.Errorf("%w: %q", iot.ErrNotRegistered, deviceID))
	}

	s.RateLimiterStore.SetLimiter(deviceID, rate.Limit(deviceRate), deviceBurst)
	return &emptypb.Empty{}, nil
}
