package iot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/NaufalHusnianto/Agnivolt/pkg/common"
	"github.com/NaufalHusnianto/Agnivolt/pkg/models"
	"github.com/NaufalHusnianto/Agnivolt/pkg/remote"
	"github.com/NaufalHusnianto/Agnivolt/pkg/series"
	"go.uber.org/zap"
)

func (i *IOT) dailyRecords(ctx context.Context, deviceID string) (map[string]models.DailyAggregate, error) {
	logger := common.GetCoreLogger(common.LoggerCategoryHistory)

	snap, err := i.Remote.Get(ctx, remote.DailyDataPath(deviceID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteFailure, err)
	}

	records := map[string]models.DailyAggregate{}
	if !snap.Exists() {
		return records, nil
	}

	var raw map[string]json.RawMessage
	if err := snap.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrRemoteFailure, snap.Path, err)
	}

	for date, value := range raw {
		var record models.DailyAggregate
		if err := json.Unmarshal(value, &record); err != nil {
			logger.Warn("Skipping malformed daily record",
				zap.String("device_id", deviceID), zap.String("date", date), zap.Error(err))
			continue
		}
		records[date] = record
	}
	return records, nil
}

func (i *IOT) getHistory(
	ctx context.Context,
	deviceID string,
	rng series.Range,
	metrics []string,
	now time.Time,
) (models.HistorySeries, error) {
	if err := i.requireRegistered(ctx, deviceID); err != nil {
		return models.HistorySeries{}, err
	}

	records, err := i.dailyRecords(ctx, deviceID)
	if err != nil {
		return models.HistorySeries{}, err
	}

	if len(metrics) == 0 {
		metrics = i.catalog().ChartMetrics
	}

	history := series.BuildHistory(deviceID, records, rng, metrics, now)

	common.GetCoreLogger(common.LoggerCategoryHistory).Debug("History built",
		zap.String("device_id", deviceID),
		zap.String("range", string(rng)),
		zap.Int("days", len(history.Labels)),
	)
	return history, nil
}

type IHistoryImpl struct {
	iot *IOT
}

func (ih *IHistoryImpl) GetHistory(
	ctx context.Context,
	deviceID string,
	rng series.Range,
	metrics []string,
	now time.Time,
) (models.HistorySeries, error) {
	return ih.iot.getHistory(ctx, deviceID, rng, metrics, now)
}

func (i *IOT) GetIHistory() IHistory {
	return &IHistoryImpl{iot: i}
}
