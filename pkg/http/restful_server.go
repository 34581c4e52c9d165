package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/NaufalHusnianto/Agnivolt/pkg/iot"
	"github.com/NaufalHusnianto/Agnivolt/pkg/metrics"
)

type RestfulServer struct {
	Server           *gin.Engine
	Iot              *iot.IOT
	RateLimiterStore *iot.RateLimiterStore

	// Now is the clock used for "today" and history cutoffs; nil means time.Now.
	Now func() time.Time
}

func (rs *RestfulServer) now() time.Time {
	if rs.Now == nil {
		return time.Now()
	}
	return rs.Now()
}

func (rs *RestfulServer) GetLimiter(deviceID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(deviceID)
	}
}

func (rs *RestfulServer) CheckDeviceLimiter(deviceID string) bool {
	limiter := rs.GetLimiter(deviceID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(deviceID string, deviceRate float64, deviceBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(deviceID, rate.Limit(deviceRate), deviceBurst)
}

func (rs *RestfulServer) ForgetLimiter(deviceID string) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.Forget(deviceID)
}

func (rs *RestfulServer) Setup() {
	metrics.Register(prometheus.DefaultRegisterer)

	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rs.Server.GET("/devices", rs.ListDevices)
	rs.Server.POST("/devices", rs.RegisterDevice)

	devices := rs.Server.Group("/devices/:device_id")
	{
		devices.DELETE("", rs.RemoveDevice)
		devices.GET("/live", rs.GetLive)
		devices.GET("/live/stream", rs.StreamLive)
		devices.GET("/history", rs.GetHistory)
		devices.GET("/history/export", rs.ExportHistory)
		devices.POST("/limiter", rs.PostLimiter)
	}
}
