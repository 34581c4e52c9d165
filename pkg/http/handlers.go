package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"github.com/NaufalHusnianto/Agnivolt/pkg/common"
	"github.com/NaufalHusnianto/Agnivolt/pkg/export"
	"github.com/NaufalHusnianto/Agnivolt/pkg/iot"
	"github.com/NaufalHusnianto/Agnivolt/pkg/models"
	"github.com/NaufalHusnianto/Agnivolt/pkg/series"
)

const liveStreamBuffer = 16

func errorStatus(err error) int {
	switch {
	case errors.Is(err, iot.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, iot.ErrNotFound), errors.Is(err, iot.ErrNotRegistered):
		return http.StatusNotFound
	case errors.Is(err, iot.ErrAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, iot.ErrRemoteFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (rs *RestfulServer) abortWithError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		common.GetLoggerWith(common.LoggerNameRestfulServer).
			Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// validationMessage joins the issue messages of a failed zog parse.
func validationMessage[E error](issues map[string][]E) string {
	var msgs []string
	for _, list := range issues {
		for _, issue := range list {
			if msg := issue.Error(); !slices.Contains(msgs, msg) {
				msgs = append(msgs, msg)
			}
		}
	}
	slices.Sort(msgs)
	return strings.Join(msgs, "; ")
}

func (rs *RestfulServer) limited(c *gin.Context, deviceID string) bool {
	if rs.CheckDeviceLimiter(deviceID) {
		return false
	}
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
	return true
}

// requireRegistered answers 404 for devices missing from the registry.
func (rs *RestfulServer) requireRegistered(c *gin.Context, deviceID string) bool {
	ok, err := rs.Iot.Registry.IsRegistered(c.Request.Context(), deviceID)
	if err != nil {
		rs.abortWithError(c, err)
		return false
	}
	if !ok {
		rs.abortWithError(c, fmt.Errorf("%w: %q", iot.ErrNotRegistered, deviceID))
		return false
	}
	return true
}

// admitDevice checks registration before the limiter so unknown ids never
// get a limiter entry.
func (rs *RestfulServer) admitDevice(c *gin.Context, deviceID string) bool {
	return rs.requireRegistered(c, deviceID) && !rs.limited(c, deviceID)
}

func (rs *RestfulServer) ListDevices(c *gin.Context) {
	devices, err := rs.Iot.Registry.ListDevices(c.Request.Context())
	if err != nil {
		rs.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, devices)
}

type RegisterRequest struct {
	ID string `json:"id" zog:"id"`
}

var registerRequestSchema = z.Struct(z.Shape{
	"ID": z.String().Required(),
})

func (rs *RestfulServer) RegisterDevice(c *gin.Context) {
	var req RegisterRequest
	if errs := registerRequestSchema.Parse(zhttp.Request(c.Request), &req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(errs)})
		return
	}

	deviceID := strings.TrimSpace(req.ID)
	if deviceID != "" && rs.limited(c, deviceID) {
		return
	}

	device, err := rs.Iot.Registry.RegisterDevice(c.Request.Context(), deviceID)
	if err != nil {
		if !errors.Is(err, iot.ErrAlreadyRegistered) {
			rs.ForgetLimiter(deviceID)
		}
		rs.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, device)
}

func (rs *RestfulServer) RemoveDevice(c *gin.Context) {
	deviceID := c.Param("device_id")

	if rs.limited(c, deviceID) {
		return
	}

	if err := rs.Iot.Registry.RemoveDevice(c.Request.Context(), deviceID); err != nil {
		rs.abortWithError(c, err)
		return
	}
	rs.ForgetLimiter(deviceID)

	c.Status(http.StatusNoContent)
}

func (rs *RestfulServer) GetLive(c *gin.Context) {
	deviceID := c.Param("device_id")

	if !rs.admitDevice(c, deviceID) {
		return
	}

	day, ok := rs.liveDay(c)
	if !ok {
		return
	}

	indicators, err := rs.Iot.Live.GetLive(c.Request.Context(), deviceID, day)
	if err != nil {
		rs.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, indicators)
}

func (rs *RestfulServer) liveDay(c *gin.Context) (string, bool) {
	day := c.Query("date")
	if day == "" {
		return rs.now().Format(common.DateLayout), true
	}
	if _, err := series.ParseDate(day); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid date %q", day)})
		return "", false
	}
	return day, true
}

// StreamLive pushes the day's indicators as server-sent "indicators" events,
// the current reading first and then one event per change, until the client
// goes away.
func (rs *RestfulServer) StreamLive(c *gin.Context) {
	deviceID := c.Param("device_id")

	if !rs.admitDevice(c, deviceID) {
		return
	}

	day, ok := rs.liveDay(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	updates := make(chan []models.Indicator, liveStreamBuffer)
	unsubscribe, err := rs.Iot.Live.WatchLive(ctx, deviceID, day, func(indicators []models.Indicator) {
		select {
		case updates <- indicators:
		default:
			common.GetLoggerWith(common.LoggerNameRestfulServer).
				Warn("Dropping live update for slow client", zap.String("device_id", deviceID))
		}
	})
	if err != nil {
		rs.abortWithError(c, err)
		return
	}
	defer unsubscribe()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case indicators := <-updates:
			c.SSEvent("indicators", indicators)
			return true
		}
	})
}

func historyQuery(c *gin.Context) (series.Range, []string) {
	rng := series.Range(c.DefaultQuery("range", string(series.RangeWeek)))
	return rng, common.SplitList(c.Query("metrics"))
}

func (rs *RestfulServer) GetHistory(c *gin.Context) {
	deviceID := c.Param("device_id")

	if !rs.admitDevice(c, deviceID) {
		return
	}

	rng, metricNames := historyQuery(c)
	history, err := rs.Iot.History.GetHistory(c.Request.Context(), deviceID, rng, metricNames, rs.now())
	if err != nil {
		rs.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (rs *RestfulServer) ExportHistory(c *gin.Context) {
	deviceID := c.Param("device_id")

	if !rs.admitDevice(c, deviceID) {
		return
	}

	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatXLSX)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rng, metricNames := historyQuery(c)
	history, err := rs.Iot.History.GetHistory(c.Request.Context(), deviceID, rng, metricNames, rs.now())
	if err != nil {
		rs.abortWithError(c, err)
		return
	}

	data, err := export.Export(history, format)
	if err != nil {
		rs.abortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(history, format)))
	c.Data(http.StatusOK, format.ContentType(), data)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate" zog:"rate"`
	Burst int     `json:"burst" zog:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"Rate":  z.Float64().GT(0).Required(),
	"Burst": z.Int().GT(0).Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req LimiterRequest
	if errs := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(errs)})
		return
	}

	if !rs.requireRegistered(c, deviceID) {
		return
	}

	rs.SetLimiter(deviceID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
