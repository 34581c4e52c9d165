package iot

import (
	"context"
	"sync"
	"time"

	"github.com/NaufalHusnianto/Agnivolt/pkg/models"
	"github.com/NaufalHusnianto/Agnivolt/pkg/remote"
	"github.com/NaufalHusnianto/Agnivolt/pkg/series"
)

//go:generate mockgen -destination=mocks/mock_iot.go -package=mocks . IRegistry,IHistory,ILive,IKVStore

// IKVStore is the local durable string key-value store.
type IKVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

type IRegistry interface {
	ListDevices(ctx context.Context) ([]models.Device, error)
	RegisterDevice(ctx context.Context, deviceID string) (models.Device, error)
	RemoveDevice(ctx context.Context, deviceID string) error
	IsRegistered(ctx context.Context, deviceID string) (bool, error)
}

type IHistory interface {
	GetHistory(ctx context.Context, deviceID string, rng series.Range, metrics []string, now time.Time) (models.HistorySeries, error)
}

type ILive interface {
	GetLive(ctx context.Context, deviceID string, day string) ([]models.Indicator, error)
	WatchLive(ctx context.Context, deviceID string, day string, cb func([]models.Indicator)) (remote.Unsubscribe, error)
}

type IOT struct {
	KV      IKVStore
	Remote  remote.IStore
	Catalog *Catalog

	Registry IRegistry
	History  IHistory
	Live     ILive

	// serializes read-modify-write of the device list
	registryMu sync.Mutex
}

type ServiceOpts struct {
	Registry IRegistry
	History  IHistory
	Live     ILive
}

func (i *IOT) WithServices(opts ServiceOpts) *IOT {
	if opts.Registry != nil {
		i.Registry = opts.Registry
	}
	if opts.History != nil {
		i.History = opts.History
	}
	if opts.Live != nil {
		i.Live = opts.Live
	}
	return i
}

// WithDefaultServices wires the built-in implementations.
func (i *IOT) WithDefaultServices() *IOT {
	return i.WithServices(ServiceOpts{
		Registry: i.GetIRegistry(),
		History:  i.GetIHistory(),
		Live:     i.GetILive(),
	})
}

func (i *IOT) catalog() *Catalog {
	if i.Catalog == nil {
		return DefaultCatalog()
	}
	return i.Catalog
}
