package config

// EnvPrefix is empty because every field carries its fully qualified key.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv    = "MARKETPLACE_APP_ENV"
	EnvPort      = "MARKETPLACE_APP_PORT"
	EnvLogLevel  = "MARKETPLACE_LOG_LEVEL"
	EnvLogFormat = "MARKETPLACE_LOG_FORMAT"

	EnvDBDSN    = "MARKETPLACE_DB_DSN"
	EnvDBDriver = "MARKETPLACE_DB_DRIVER"
	EnvDBHost   = "MARKETPLACE_DB_HOST"
	EnvDBUser   = "MARKETPLACE_DB_USER"
	EnvDBName   = "MARKETPLACE_DB_NAME"

	EnvRedisURL = "MARKETPLACE_REDIS_URL"

	EnvJWTSecret = "MARKETPLACE_JWT_SECRET"
	EnvJWTIssuer = "MARKETPLACE_JWT_ISSUER"

	EnvUseSQLite = "MARKETPLACE_USE_SQLITE"

	EnvCheckoutTaxRate       = "MARKETPLACE_CHECKOUT_TAX_RATE"
	EnvCheckoutShippingCents = "MARKETPLACE_CHECKOUT_FLAT_SHIPPING_CENTS"
	EnvCheckoutOrderAttempts = "MARKETPLACE_CHECKOUT_ORDER_NUMBER_ATTEMPTS"
	EnvCheckoutMaxParallel   = "MARKETPLACE_CHECKOUT_MAX_PARALLEL_GROUPS"

	EnvGCPProjectID     = "MARKETPLACE_GCP_PROJECT_ID"
	EnvPubSubOrderTopic = "MARKETPLACE_PUBSUB_ORDERS_TOPIC"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
