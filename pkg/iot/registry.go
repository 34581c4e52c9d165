package iot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/NaufalHusnianto/Agnivolt/pkg/common"
	"github.com/NaufalHusnianto/Agnivolt/pkg/metrics"
	"github.com/NaufalHusnianto/Agnivolt/pkg/models"
	"github.com/NaufalHusnianto/Agnivolt/pkg/remote"
	"go.uber.org/zap"
)

// DevicesKey holds the whole registry as one JSON array.
const DevicesKey = "devices"

func (i *IOT) loadDevices(ctx context.Context) ([]models.Device, error) {
	raw, found, err := i.KV.Get(ctx, DevicesKey)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrStorageFailure, DevicesKey, err)
	}

	devices := []models.Device{}
	if !found || strings.TrimSpace(raw) == "" {
		return devices, nil
	}

	if err := json.Unmarshal([]byte(raw), &devices); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrStorageFailure, DevicesKey, err)
	}
	if devices == nil {
		devices = []models.Device{}
	}
	return devices, nil
}

func (i *IOT) saveDevices(ctx context.Context, devices []models.Device) error {
	raw, err := json.Marshal(devices)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStorageFailure, DevicesKey, err)
	}
	if err := i.KV.Set(ctx, DevicesKey, string(raw)); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorageFailure, DevicesKey, err)
	}
	return nil
}

func (i *IOT) turbineExists(ctx context.Context, deviceID string) (bool, error) {
	snap, err := i.Remote.Get(ctx, remote.TurbinePath(deviceID))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRemoteFailure, err)
	}
	return snap.Exists(), nil
}

func (i *IOT) listDevices(ctx context.Context) ([]models.Device, error) {
	devices, err := i.loadDevices(ctx)
	metrics.ObserveRegistry("list", metrics.Result(err))
	return devices, err
}

func (i *IOT) registerDevice(ctx context.Context, rawID string) (models.Device, error) {
	logger := common.GetCoreLogger(common.LoggerCategoryRegistry)

	device, err := i.doRegisterDevice(ctx, rawID)
	metrics.ObserveRegistry("register", registerOutcome(err))

	if err != nil {
		logger.Info("Device registration rejected", zap.String("device_id", rawID), zap.Error(err))
		return models.Device{}, err
	}

	logger.Info("Device registered", zap.Reflect("device", device))
	return device, nil
}

func (i *IOT) doRegisterDevice(ctx context.Context, rawID string) (models.Device, error) {
	deviceID := strings.TrimSpace(rawID)
	if deviceID == "" {
		return models.Device{}, ErrEmptyInput
	}

	exists, err := i.turbineExists(ctx, deviceID)
	if err != nil {
		common.GetCoreLogger(common.LoggerCategoryRegistry).
			Warn("Remote existence check failed", zap.String("device_id", deviceID), zap.Error(err))
		return models.Device{}, fmt.Errorf("%w: %q (%w)", ErrNotFound, deviceID, err)
	}
	if !exists {
		return models.Device{}, fmt.Errorf("%w: %q", ErrNotFound, deviceID)
	}

	i.registryMu.Lock()
	defer i.registryMu.Unlock()

	devices, err := i.loadDevices(ctx)
	if err != nil {
		return models.Device{}, err
	}

	if slices.ContainsFunc(devices, func(d models.Device) bool { return d.ID == deviceID }) {
		return models.Device{}, fmt.Errorf("%w: %q", ErrAlreadyRegistered, deviceID)
	}

	device := models.NewDevice(deviceID)
	if err := i.saveDevices(ctx, append(devices, device)); err != nil {
		return models.Device{}, err
	}
	return device, nil
}

func registerOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ErrRemoteFailure):
		return "remote_failure"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyRegistered):
		return "already_registered"
	default:
		return metrics.ResultError
	}
}

func (i *IOT) removeDevice(ctx context.Context, rawID string) error {
	deviceID := strings.TrimSpace(rawID)
	logger := common.GetCoreLogger(common.LoggerCategoryRegistry)

	i.registryMu.Lock()
	defer i.registryMu.Unlock()

	devices, err := i.loadDevices(ctx)
	if err != nil {
		metrics.ObserveRegistry("remove", metrics.ResultError)
		return err
	}

	kept := common.Filter(devices, func(d models.Device) bool { return d.ID != deviceID })
	if len(kept) == len(devices) {
		metrics.ObserveRegistry("remove", "noop")
		return nil
	}

	err = i.saveDevices(ctx, kept)
	metrics.ObserveRegistry("remove", metrics.Result(err))
	if err == nil {
		logger.Info("Device removed", zap.String("device_id", deviceID))
	}
	return err
}

func (i *IOT) isRegistered(ctx context.Context, deviceID string) (bool, error) {
	devices, err := i.loadDevices(ctx)
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(devices, func(d models.Device) bool { return d.ID == deviceID }), nil
}

// requireRegistered goes through the wired registry service so a mocked
// registry also gates history and live reads.
func (i *IOT) requireRegistered(ctx context.Context, deviceID string) error {
	if i.Registry == nil {
		return fmt.Errorf("registry service not available")
	}
	ok, err := i.Registry.IsRegistered(ctx, deviceID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotRegistered, deviceID)
	}
	return nil
}

type IRegistryImpl struct {
	iot *IOT
}

func (ir *IRegistryImpl) ListDevices(ctx context.Context) ([]models.Device, error) {
	return ir.iot.listDevices(ctx)
}

func (ir *IRegistryImpl) RegisterDevice(ctx context.Context, deviceID string) (models.Device, error) {
	return ir.iot.registerDevice(ctx, deviceID)
}

func (ir *IRegistryImpl) RemoveDevice(ctx context.Context, deviceID string) error {
	return ir.iot.removeDevice(ctx, deviceID)
}

func (ir *IRegistryImpl) IsRegistered(ctx context.Context, deviceID string) (bool, error) {
	return ir.iot.isRegistered(ctx, deviceID)
}

func (i *IOT) GetIRegistry() IRegistry {
	return &IRegistryImpl{iot: i}
}
