package config

const EnvPrefix = "condopos"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	JournalDriverSQLite   = "sqlite"
	JournalDriverPostgres = "postgres"
)

// Env var names used by tests and tooling.
const (
	EnvAppEnv          = "CONDOPOS_APP_ENV"
	EnvPort            = "CONDOPOS_APP_PORT"
	EnvUpstreamBaseURL = "CONDOPOS_UPSTREAM_BASE_URL"
	EnvJWTSecret       = "CONDOPOS_JWT_SECRET"
	EnvJWTIssuer       = "CONDOPOS_JWT_ISSUER"
	EnvJWTExpMins      = "CONDOPOS_JWT_EXPIRATION_MINUTES"
	EnvJournalDriver   = "CONDOPOS_JOURNAL_DRIVER"
	EnvJournalDSN      = "CONDOPOS_JOURNAL_DSN"
	EnvRedisURL        = "CONDOPOS_REDIS_URL"
)
