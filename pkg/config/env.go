package config

// EnvPrefix is handed to envconfig. Tagged fields resolve through their
// full tag name as the fallback key.
const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file:storefront.db?cache=shared"
)

const (
	EnvAppEnv         = "STOREFRONT_APP_ENV"
	EnvPort           = "STOREFRONT_APP_PORT"
	EnvLogLevel       = "STOREFRONT_LOG_LEVEL"
	EnvDBDSN          = "STOREFRONT_DB_DSN"
	EnvDBDriver       = "STOREFRONT_DB_DRIVER"
	EnvDBHost         = "STOREFRONT_DB_HOST"
	EnvDBPort         = "STOREFRONT_DB_PORT"
	EnvDBUser         = "STOREFRONT_DB_USER"
	EnvDBPassword     = "STOREFRONT_DB_PASSWORD"
	EnvDBName         = "STOREFRONT_DB_NAME"
	EnvRedisURL       = "STOREFRONT_REDIS_URL"
	EnvJWTSecret      = "STOREFRONT_JWT_SECRET"
	EnvJWTIssuer      = "STOREFRONT_JWT_ISSUER"
	EnvJWTExpMins     = "STOREFRONT_JWT_EXPIRATION_MINUTES"
	EnvCORSOrigins    = "STOREFRONT_CORS_ALLOWED_ORIGINS"
	EnvUseSQLite      = "STOREFRONT_USE_SQLITE"
	EnvRejectInactive = "STOREFRONT_WISHLIST_REJECT_INACTIVE"
	EnvViewsLimit     = "STOREFRONT_BLOG_VIEWS_LIMIT"
	EnvMaxBodyBytes   = "STOREFRONT_MAX_BODY_BYTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
