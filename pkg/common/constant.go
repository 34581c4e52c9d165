package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyIOTDBType string = "IOT_DB_TYPE"
	EnvKeyIOTDbPath string = "IOT_DB_PATH"

	EnvKeyIOTHttpHostPort string = "IOT_HTTP_HOST_PORT"
	EnvKeyIOTGrpcHostPort string = "IOT_GRPC_HOST_PORT"

	EnvKeyIOTDefaultRate  string = "IOT_DEFAULT_RATE"
	EnvKeyIOTDefaultBurst string = "IOT_DEFAULT_BURST"

	EnvKeyIOTIndicatorCatalog string = "IOT_INDICATOR_CATALOG"
	EnvKeyIOTLogDir           string = "IOT_LOG_DIR"

	EnvKeyRemoteType          string = "REMOTE_TYPE"
	EnvKeyRemoteFirebaseURL   string = "REMOTE_FIREBASE_URL"
	EnvKeyRemoteFirebaseAuth  string = "REMOTE_FIREBASE_AUTH"
	EnvKeyRemoteRedisAddr     string = "REMOTE_REDIS_ADDR"
	EnvKeyRemoteRedisPassword string = "REMOTE_REDIS_PASSWORD"
	EnvKeyRemoteRedisDB       string = "REMOTE_REDIS_DB"
	EnvKeyRemotePollInterval  string = "REMOTE_POLL_INTERVAL"

	LoggerNameIOTCore       string = "iot_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameGrpcServer    string = "grpc_server"
	LoggerNameRemoteStore   string = "remote_store"
	LoggerFieldIOTCategory  string = "category"
	LoggerCategoryRegistry  string = "registry"
	LoggerCategoryHistory   string = "history"
	LoggerCategoryLive      string = "live"
	LoggerFieldBackend      string = "backend"

	// DateLayout is the key format of daily records in the remote tree.
	DateLayout string = "2006-01-02"
)
