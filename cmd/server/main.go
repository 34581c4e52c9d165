package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"

	"github.com/NaufalHusnianto/Agnivolt/pkg/common"
	"github.com/NaufalHusnianto/Agnivolt/pkg/db"
	iotGrpc "github.com/NaufalHusnianto/Agnivolt/pkg/grpc"
	pb "github.com/NaufalHusnianto/Agnivolt/pkg/grpc/turbine_service"
	iotHttp "github.com/NaufalHusnianto/Agnivolt/pkg/http"
	"github.com/NaufalHusnianto/Agnivolt/pkg/iot"
	"github.com/NaufalHusnianto/Agnivolt/pkg/remote"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	iotDbType := os.Getenv(common.EnvKeyIOTDBType)
	switch iotDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown IOT_DB_TYPE: " + iotDbType)
	}

	grpcHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyIOTGrpcHostPort))
	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyIOTHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyIOTDefaultRate), 64); err != nil {
		log.Fatal("Invalid IOT_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyIOTDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid IOT_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	logger := common.GetLogger()

	remoteConfig, err := remote.ConfigFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	remoteStore, err := remote.New(context.Background(), remoteConfig)
	if err != nil {
		log.Fatalf("failed to create remote store: %v", err)
	}
	logger.Info("Remote store ready", zap.String("backend", remoteConfig.Type))

	catalog := iot.DefaultCatalog()
	if catalogPath := strings.TrimSpace(os.Getenv(common.EnvKeyIOTIndicatorCatalog)); catalogPath != "" {
		if catalog, err = iot.LoadCatalog(catalogPath); err != nil {
			log.Fatalf("failed to load indicator catalog %s: %v", catalogPath, err)
		}
		logger.Info("Indicator catalog loaded", zap.String("path", catalogPath))
	}

	iotCore := (&iot.IOT{
		KV:      dbInstance.KVStore(),
		Remote:  remoteStore,
		Catalog: catalog,
	}).WithDefaultServices()

	if grpcHostPort != "" {
		logger.Info("Starting gRPC server on port " + grpcHostPort)
		go func() {
			turbineGrpcServer := iotGrpc.TurbineServer{
				Iot:              iotCore,
				RateLimiterStore: iot.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
			}
			interceptor := turbineGrpcServer.CreateRateLimitInterceptor([]string{
				pb.TurbineService_RegisterDevice_FullMethodName,
				pb.TurbineService_RemoveDevice_FullMethodName,
				pb.TurbineService_GetLive_FullMethodName,
				pb.TurbineService_GetHistory_FullMethodName,
			})
			s := grpc.NewServer(grpc.UnaryInterceptor(interceptor))
			pb.RegisterTurbineServiceServer(s, &turbineGrpcServer)
			logger.Info("gRPC server created with:",
				zap.String("default_limiter",
					fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

			listener, err := net.Listen("tcp", grpcHostPort)
			if err != nil {
				log.Fatalf("failed to listen: %v", err)
			}

			logger.Info("start gRPC server on " + grpcHostPort)
			if err := s.Serve(listener); err != nil {
				log.Fatalf("grpc server failed to serve: %v", err)
			}
		}()
	}

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	rs := &iotHttp.RestfulServer{
		Server:           gin.Default(),
		Iot:              iotCore,
		RateLimiterStore: iot.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
