package iot

import (
	"context"
	"fmt"

	"github.com/NaufalHusnianto/Agnivolt/pkg/common"
	"github.com/NaufalHusnianto/Agnivolt/pkg/models"
	"github.com/NaufalHusnianto/Agnivolt/pkg/remote"
	"go.uber.org/zap"
)

func readingFields(snap remote.Snapshot) (map[string]any, error) {
	fields := map[string]any{}
	if !snap.Exists() {
		return fields, nil
	}
	if err := snap.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrRemoteFailure, snap.Path, err)
	}
	return fields, nil
}

func (i *IOT) getLive(ctx context.Context, deviceID string, day string) ([]models.Indicator, error) {
	if err := i.requireRegistered(ctx, deviceID); err != nil {
		return nil, err
	}

	snap, err := i.Remote.Get(ctx, remote.DailyPath(deviceID, day))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteFailure, err)
	}

	fields, err := readingFields(snap)
	if err != nil {
		return nil, err
	}
	return i.catalog().Map(fields), nil
}

// watchLive delivers mapped indicators for every change of the day's
// record. Records that fail to decode are logged and skipped.
func (i *IOT) watchLive(ctx context.Context, deviceID string, day string, cb func([]models.Indicator)) (remote.Unsubscribe, error) {
	if err := i.requireRegistered(ctx, deviceID); err != nil {
		return nil, err
	}

	logger := common.GetCoreLogger(common.LoggerCategoryLive)
	catalog := i.catalog()

	unsubscribe, err := i.Remote.Subscribe(ctx, remote.DailyPath(deviceID, day), func(snap remote.Snapshot) {
		fields, err := readingFields(snap)
		if err != nil {
			logger.Warn("Skipping undecodable reading", zap.String("device_id", deviceID), zap.Error(err))
			return
		}
		cb(catalog.Map(fields))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteFailure, err)
	}

	logger.Info("Watching live readings", zap.String("device_id", deviceID), zap.String("day", day))
	return unsubscribe, nil
}

type ILiveImpl struct {
	iot *IOT
}

func (il *ILiveImpl) GetLive(ctx context.Context, deviceID string, day string) ([]models.Indicator, error) {
	return il.iot.getLive(ctx, deviceID, day)
}

func (il *ILiveImpl) WatchLive(ctx context.Context, deviceID string, day string, cb func([]models.Indicator)) (remote.Unsubscribe, error) {
	return il.iot.watchLive(ctx, deviceID, day, cb)
}

func (i *IOT) GetILive() ILive {
	return &ILiveImpl{iot: i}
}
