package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/NaufalHusnianto/Agnivolt/pkg/common"
	pb "github.com/NaufalHusnianto/Agnivolt/pkg/grpc/turbine_service"
	"github.com/NaufalHusnianto/Agnivolt/pkg/remote"
)

// The server under test must run with REMOTE_TYPE=redis against the same
// Redis so the seeded turbines pass the registration check.

var maxDevices int = 1000
var seedDays int = 30
var httpHostPort string = "127.0.0.1:1080"
var grpcHostPort string = "127.0.0.1:1081"
var redisAddr string = "127.0.0.1:6379"

var grpcClient pb.TurbineServiceClient
var httpClient *resty.Client

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

func main() {
	if addr := os.Getenv(common.EnvKeyRemoteRedisAddr); addr != "" {
		redisAddr = addr
	}

	deviceIDs := make([]string, maxDevices)
	for i := range maxDevices {
		deviceIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v device IDs\n", maxDevices)

	store := remote.NewRedisStore(remote.NewRedisClient(redisAddr, os.Getenv(common.EnvKeyRemoteRedisPassword), 0))
	if err := store.Ping(context.Background()); err != nil {
		log.Fatal("Failed to connect to redis:", err)
	}

	startTime := time.Now()
	for i, deviceID := range deviceIDs {
		seedTurbine(store, deviceID)
		fmt.Printf("\rseeded remote data for device %v", i)
	}
	fmt.Printf("\rseeded %v days for %v devices in %v seconds\n", seedDays, maxDevices, time.Since(startTime).Seconds())

	httpClient = resty.New().SetBaseURL("http://" + httpHostPort).SetTimeout(10 * time.Second)
	resp, err := httpClient.R().Get("/healthz")
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	if resp.StatusCode() != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = pb.NewTurbineServiceClient(conn)

	fmt.Printf("gRPC client connected\n")

	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := range maxDevices {
		wg.Add(1)
		go func() {
			defer wg.Done()
			registerDevice(deviceIDs[i])
			fmt.Printf("\rregistered device %v", i)
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rregistered %v devices: used time=%v seconds, throughput=%v action/second\n",
		maxDevices, usedTime.Seconds(), float64(maxDevices)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := range maxDevices {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doAction(deviceIDs[i])
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v devices: used time=%v seconds, throughput=%v action/second\n",
		maxDevices, usedTime.Seconds(), float64(maxDevices*3)/usedTime.Seconds(),
	)
}

func flipCoin() bool {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Int31n(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndMu.Lock()
	val := min + rnd.Float64()*(max-min)
	rndMu.Unlock()
	multiplier := math.Pow10(decimal)
	return math.Round(val*multiplier) / multiplier
}

func seedTurbine(store *remote.RedisStore, deviceID string) {
	ctx := context.Background()
	today := time.Now().UTC()
	for d := range seedDays {
		date := today.AddDate(0, 0, -d).Format(common.DateLayout)
		count := 1 + int(rndFloat64(0, 1440, 0))
		record := map[string]any{
			"count":         count,
			"total_voltage": float64(count) * rndFloat64(210, 235, 2),
			"total_current": float64(count) * rndFloat64(0, 12, 2),
			"tegangan":      rndFloat64(210, 235, 2),
			"arus":          rndFloat64(0, 12, 2),
			"daya":          rndFloat64(0, 2500, 1),
			"rpm":           rndFloat64(0, 1800, 0),
			"flowRate":      rndFloat64(0, 40, 2),
			"water_level":   rndFloat64(0, 3, 2),
		}
		if err := store.Set(ctx, remote.DailyPath(deviceID, date), record); err != nil {
			log.Fatalf("seed %s/%s: %v", deviceID, date, err)
		}
	}
}

func registerDevice(deviceID string) {
	if flipCoin() {
		resp, err := httpClient.R().SetBody(map[string]string{"id": deviceID}).Post("/devices")
		if err != nil {
			panic(err)
		}
		if resp.StatusCode() != http.StatusCreated {
			panic(fmt.Sprintf("register %s: status %d: %s", deviceID, resp.StatusCode(), resp.String()))
		}
	} else {
		if _, err := grpcClient.RegisterDevice(context.Background(), wrapperspb.String(deviceID)); err != nil {
			panic(fmt.Sprintf("register %s: %v", deviceID, err))
		}
	}
}

func doAction(deviceID string) {
	actions := []func(){
		genGetLiveAction(deviceID),
		genGetHistoryAction(deviceID),
		genListDevicesAction(),
	}
	actionNames := []string{
		"GetLive",
		"GetHistory",
		"ListDevices",
	}
	rndMu.Lock()
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	rndMu.Unlock()
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for device %v", actionNames[index], deviceID)
		time.Sleep(time.Duration(100+rndFloat64(0, 1000, 0)) * time.Millisecond)
	}
}

func genGetLiveAction(deviceID string) func() {
	return func() {
		if flipCoin() {
			resp, err := httpClient.R().Get("/devices/" + deviceID + "/live")
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			if resp.StatusCode() != http.StatusOK {
				fmt.Printf("\nresponse status code != 200: %v\n", resp.StatusCode())
			}
		} else {
			if _, err := grpcClient.GetLive(context.Background(), wrapperspb.String(deviceID)); err != nil {
				fmt.Printf("\nerror: %v\n", err)
			}
		}
	}
}

func genGetHistoryAction(deviceID string) func() {
	return func() {
		if flipCoin() {
			resp, err := httpClient.R().
				SetQueryParams(map[string]string{"range": "1m", "metrics": "voltage,current"}).
				Get("/devices/" + deviceID + "/history")
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			if resp.StatusCode() != http.StatusOK {
				fmt.Printf("\nresponse status code != 200: %v\n", resp.StatusCode())
			}
		} else {
			req, _ := structpb.NewStruct(map[string]any{
				"device_id": deviceID,
				"range":     "1m",
				"metrics":   []any{"voltage", "current"},
			})
			if _, err := grpcClient.GetHistory(context.Background(), req); err != nil {
				fmt.Printf("\nerror: %v\n", err)
			}
		}
	}
}

func genListDevicesAction() func() {
	return func() {
		resp, err := httpClient.R().Get("/devices")
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		if resp.StatusCode() != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp.StatusCode())
		}
	}
}
