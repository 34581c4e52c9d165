package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/NaufalHusnianto/Agnivolt/pkg/iot/mocks"
	_ "github.com/NaufalHusnianto/Agnivolt/pkg/testing"

	"github.com/NaufalHusnianto/Agnivolt/pkg/common"
	"github.com/NaufalHusnianto/Agnivolt/pkg/db"
	"github.com/NaufalHusnianto/Agnivolt/pkg/iot"
	"github.com/NaufalHusnianto/Agnivolt/pkg/models"
	"github.com/NaufalHusnianto/Agnivolt/pkg/remote"
)

var testNow = time.Date(2024, 12, 15, 10, 30, 0, 0, time.UTC)

func setupTestServerWithLimiter(t *testing.T, limiter *iot.RateLimiterStore) (*RestfulServer, *remote.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbInstance, err := db.Open(db.UseNamedMemorySqliteDialector(uuid.NewString()))
	require.NoError(t, err)

	store := remote.NewMemoryStore()
	iotObj := (&iot.IOT{KV: dbInstance.KVStore(), Remote: store}).WithDefaultServices()

	rs := &RestfulServer{
		Server:           gin.New(),
		Iot:              iotObj,
		RateLimiterStore: limiter,
		Now:              func() time.Time { return testNow },
	}

	rs.Setup()

	return rs, store
}

func setupTestServer(t *testing.T) (*RestfulServer, *remote.MemoryStore) {
	// default we use no limiter, if need, use setupTestServerWithLimiter
	return setupTestServerWithLimiter(t, nil)
}

func seedTurbine(t *testing.T, store *remote.MemoryStore, deviceID string) {
	t.Helper()
	err := store.Set(context.Background(), remote.DailyDataPath(deviceID), map[string]any{
		"2024-12-01": map[string]any{"count": 4, "total_voltage": 880, "total_current": 20},
		"2024-12-15": map[string]any{"count": 1, "total_voltage": 230, "total_current": 6, "tegangan": 230.5, "rpm": 1490},
	})
	require.NoError(t, err)
}

func doRequest(rs *RestfulServer, method, target string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestHealthCheck(t *testing.T) {
	rs, _ := setupTestServer(t)

	w := doRequest(rs, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRegisterListRemove(t *testing.T) {
	common.SetTestLoggerNop()

	rs, store := setupTestServer(t)
	seedTurbine(t, store, "7")
	seedTurbine(t, store, "8")

	w := doRequest(rs, http.MethodPost, "/devices", RegisterRequest{ID: "7"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"7","name":"Turbine 7","status":"Connected"}`, w.Body.String())

	w = doRequest(rs, http.MethodPost, "/devices", RegisterRequest{ID: "8"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(rs, http.MethodGet, "/devices", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var devices []models.Device
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &devices))
	assert.Equal(t, []models.Device{models.NewDevice("7"), models.NewDevice("8")}, devices)

	w = doRequest(rs, http.MethodDelete, "/devices/7", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(rs, http.MethodDelete, "/devices/unknown", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(rs, http.MethodGet, "/devices", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &devices))
	assert.Equal(t, []models.Device{models.NewDevice("8")}, devices)
}

func TestListDevices_Empty(t *testing.T) {
	rs, _ := setupTestServer(t)

	w := doRequest(rs, http.MethodGet, "/devices", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRegisterDevice_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs, store := setupTestServer(t)
	seedTurbine(t, store, "7")

	{
		// empty payload should be rejected
		w := doRequest(rs, http.MethodPost, "/devices", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotEmpty(t, errorBody(t, w))
	}

	{
		// whitespace only is an empty id
		w := doRequest(rs, http.MethodPost, "/devices", RegisterRequest{ID: "   "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		w := doRequest(rs, http.MethodPost, "/devices", RegisterRequest{ID: "404"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, errorBody(t, w), "not found")
	}

	{
		w := doRequest(rs, http.MethodPost, "/devices", RegisterRequest{ID: "7"})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doRequest(rs, http.MethodPost, "/devices", RegisterRequest{ID: "7"})
		assert.Equal(t, http.StatusConflict, w.Code)
	}
}

func TestRegisterDevice_StorageFailure(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIRegistry := mocks.NewMockIRegistry(ctrl)
	rs.Iot.Registry = mockIRegistry
	mockIRegistry.EXPECT().
		RegisterDevice(gomock.Any(), gomock.Eq("7")).
		Return(models.Device{}, iot.ErrStorageFailure).
		Times(1)

	w := doRequest(rs, http.MethodPost, "/devices", RegisterRequest{ID: "7"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, iot.ErrStorageFailure.Error(), errorBody(t, w))
}

func TestGetLive(t *testing.T) {
	common.SetTestLoggerNop()

	rs, store := setupTestServer(t)
	seedTurbine(t, store, "7")

	w := doRequest(rs, http.MethodGet, "/devices/7/live", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "unregistered device")

	require.Equal(t, http.StatusCreated, doRequest(rs, http.MethodPost, "/devices", RegisterRequest{ID: "7"}).Code)

	w = doRequest(rs, http.MethodGet, "/devices/7/live", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var indicators []models.Indicator
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &indicators))
	require.Len(t, indicators, 6)
	assert.Equal(t, models.Indicator{Key: "tegangan", Label: "Voltage", Unit: "Volt", Value: 230.5}, indicators[0])
	assert.Equal(t, 1490.0, indicators[3].Value)

	w = doRequest(rs, http.MethodGet, "/devices/7/live?date=2024-12-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &indicators))
	assert.Zero(t, indicators[0].Value)

	w = doRequest(rs, http.MethodGet, "/devices/7/live?date=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHistory(t *testing.T) {
	common.SetTestLoggerNop()

	rs, store := setupTestServer(t)
	seedTurbine(t, store, "7")
	require.Equal(t, http.StatusCreated, doRequest(rs, http.MethodPost, "/devices", RegisterRequest{ID: "7"}).Code)

	w := doRequest(rs, http.MethodGet, "/devices/7/history?range=1m", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history models.HistorySeries
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Equal(t, []string{"2024-12-01", "2024-12-15"}, history.Labels)
	assert.Equal(t, []float64{220, 230}, history.Series["voltage"])
	assert.Equal(t, []float64{5, 6}, history.Series["current"])

	// default range is a week
	w = doRequest(rs, http.MethodGet, "/devices/7/history?metrics=voltage", nil)
	require.Equal(t, http.StatusOK, w.Code)
	history = models.HistorySeries{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Equal(t, "7d", history.Range)
	assert.Equal(t, []string{"2024-12-15"}, history.Labels)
	assert.Len(t, history.Series, 1)
}

func TestGetHistory_ServiceError(t *testing.T) {
	common.SetTestLoggerNop()

	rs, store := setupTestServer(t)
	seedTurbine(t, store, "7")
	require.Equal(t, http.StatusCreated, doRequest(rs, http.MethodPost, "/devices", RegisterRequest{ID: "7"}).Code)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIHistory := mocks.NewMockIHistory(ctrl)
	rs.Iot.History = mockIHistory
	mockIHistory.EXPECT().
		GetHistory(gomock.Any(), "7", gomock.Any(), gomock.Any(), testNow).
		Return(models.HistorySeries{}, errors.Join(iot.ErrRemoteFailure, errors.New("timeout"))).
		Times(1)

	w := doRequest(rs, http.MethodGet, "/devices/7/history", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestExportHistory(t *testing.T) {
	common.SetTestLoggerNop()

	rs, store := setupTestServer(t)
	seedTurbine(t, store, "7")
	require.Equal(t, http.StatusCreated, doRequest(rs, http.MethodPost, "/devices", RegisterRequest{ID: "7"}).Code)

	w := doRequest(rs, http.MethodGet, "/devices/7/history/export?range=1m&format=pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "turbine-7-history-1m.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = doRequest(rs, http.MethodGet, "/devices/7/history/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/vnd.openxmlformats"))

	w = doRequest(rs, http.MethodGet, "/devices/7/history/export?format=csv", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t)
	doRequest(rs, http.MethodGet, "/devices", nil)

	w := doRequest(rs, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "agnivolt_registry_operations_total")
}

func TestDeviceRoutesWithLimiter(t *testing.T) {
	common.SetTestLoggerNop()

	rs, store := setupTestServerWithLimiter(t, iot.NewRateLimiterStore(2, 2)) // 2 req/sec, burst 2
	seedTurbine(t, store, "7")

	// the registration itself takes one token
	require.Equal(t, http.StatusCreated, doRequest(rs, http.MethodPost, "/devices", RegisterRequest{ID: "7"}).Code)

	w := doRequest(rs, http.MethodGet, "/devices/7/live", nil)
	require.Equal(t, http.StatusOK, w.Code, "request 2 should be allowed")

	w = doRequest(rs, http.MethodGet, "/devices/7/live", nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code, "request 3 should be rate limited")
	assert.NotEmpty(t, errorBody(t, w))

	w = doRequest(rs, http.MethodPost, "/devices/7/limiter", LimiterRequest{Rate: 10, Burst: 10})
	require.Equal(t, http.StatusOK, w.Code, "limiter request should be allowed")

	w = doRequest(rs, http.MethodGet, "/devices/7/live", nil)
	require.Equal(t, http.StatusOK, w.Code, "request after limiter update should be allowed")

	// removing the device drops its limiter
	require.Equal(t, http.StatusNoContent, doRequest(rs, http.MethodDelete, "/devices/7", nil).Code)
	assert.Zero(t, rs.RateLimiterStore.Len())
}

func TestLimiter(t *testing.T) {
	common.SetTestLoggerNop()

	rs, store := setupTestServerWithLimiter(t, iot.NewRateLimiterStore(0, 0))

	deviceID := uuid.NewString()
	seedTurbine(t, store, deviceID)
	_, err := rs.Iot.Registry.RegisterDevice(context.Background(), deviceID)
	require.NoError(t, err)

	// nothing should pass below
	for _, target := range []string{"/live", "/live/stream", "/history", "/history/export"} {
		w := doRequest(rs, http.MethodGet, "/devices/"+deviceID+target, nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code, target)
	}
	w := doRequest(rs, http.MethodDelete, "/devices/"+deviceID, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	w = doRequest(rs, http.MethodPost, "/devices", RegisterRequest{ID: uuid.NewString()})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestLimiter_UnregisteredDevicesGetNoEntry(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServerWithLimiter(t, iot.NewRateLimiterStore(2, 2))

	for i := 0; i < 5; i++ {
		deviceID := uuid.NewString()
		for _, target := range []string{"/live", "/live/stream", "/history", "/history/export"} {
			w := doRequest(rs, http.MethodGet, "/devices/"+deviceID+target, nil)
			assert.Equal(t, http.StatusNotFound, w.Code, target)
		}
		w := doRequest(rs, http.MethodPost, "/devices/"+deviceID+"/limiter", LimiterRequest{Rate: 1, Burst: 1})
		assert.Equal(t, http.StatusNotFound, w.Code)

		// a failed registration releases the entry it took
		w = doRequest(rs, http.MethodPost, "/devices", RegisterRequest{ID: deviceID})
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	assert.Zero(t, rs.RateLimiterStore.Len())
}

func TestPostLimiter_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	{
		rs, store := setupTestServerWithLimiter(t, iot.NewRateLimiterStore(2, 2))
		seedTurbine(t, store, "7")
		require.Equal(t, http.StatusCreated, doRequest(rs, http.MethodPost, "/devices", RegisterRequest{ID: "7"}).Code)

		// empty payload should be rejected
		w := doRequest(rs, http.MethodPost, "/devices/7/limiter", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		// non-positive limits would lock the device out
		w = doRequest(rs, http.MethodPost, "/devices/7/limiter", map[string]any{"rate": -1, "burst": 0})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		w = doRequest(rs, http.MethodPost, "/devices/7/limiter", map[string]any{"rate": 0, "burst": 5})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		w = doRequest(rs, http.MethodPost, "/devices/7/limiter", map[string]any{"rate": 5, "burst": -2})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doRequest(rs, http.MethodGet, "/devices/7/history", nil)
		assert.Equal(t, http.StatusOK, w.Code, "rejected limiter must not replace the current one")
	}

	{
		// without limiter store setup limiter should be allowed and just return ok (but no effect)
		rs, store := setupTestServer(t)
		seedTurbine(t, store, "7")
		require.Equal(t, http.StatusCreated, doRequest(rs, http.MethodPost, "/devices", RegisterRequest{ID: "7"}).Code)

		w := doRequest(rs, http.MethodPost, "/devices/7/limiter", LimiterRequest{Rate: 2, Burst: 2})
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

// readEvents decodes the data lines of a server-sent event stream.
func readEvents(body io.Reader, out chan<- []models.Indicator) {
	defer close(out)
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		data, ok := strings.CutPrefix(scanner.Text(), "data:")
		if !ok {
			continue
		}
		var indicators []models.Indicator
		if err := json.Unmarshal([]byte(data), &indicators); err != nil {
			continue
		}
		out <- indicators
	}
}

func nextEvent(t *testing.T, events <-chan []models.Indicator) []models.Indicator {
	t.Helper()
	select {
	case indicators, ok := <-events:
		require.True(t, ok, "stream closed")
		return indicators
	case <-time.After(3 * time.Second):
		require.FailNow(t, "no event received")
		return nil
	}
}

func TestStreamLive(t *testing.T) {
	common.SetTestLoggerNop()

	rs, store := setupTestServer(t)
	seedTurbine(t, store, "7")
	require.Equal(t, http.StatusCreated, doRequest(rs, http.MethodPost, "/devices", RegisterRequest{ID: "7"}).Code)

	server := httptest.NewServer(rs.Server)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/devices/7/live/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := make(chan []models.Indicator, 4)
	go readEvents(resp.Body, events)

	first := nextEvent(t, events)
	require.Len(t, first, 6)
	assert.Equal(t, 230.5, first[0].Value)

	err = store.Set(context.Background(), remote.DailyPath("7", "2024-12-15"), map[string]any{
		"count": 2, "tegangan": 228.0, "rpm": 1500,
	})
	require.NoError(t, err)

	second := nextEvent(t, events)
	require.Len(t, second, 6)
	assert.Equal(t, 228.0, second[0].Value)
	assert.Equal(t, 1500.0, second[3].Value)
}

func TestStreamLive_Errors(t *testing.T) {
	common.SetTestLoggerNop()

	rs, store := setupTestServer(t)
	seedTurbine(t, store, "7")

	w := doRequest(rs, http.MethodGet, "/devices/7/live/stream", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "unregistered device")

	require.Equal(t, http.StatusCreated, doRequest(rs, http.MethodPost, "/devices", RegisterRequest{ID: "7"}).Code)

	w = doRequest(rs, http.MethodGet, "/devices/7/live/stream?date=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
