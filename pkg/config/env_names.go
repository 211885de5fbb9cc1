package config

// EnvPrefix is the envconfig prefix shared by every GigLedger binary.
const EnvPrefix = "GIGLEDGER"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv    = "GIGLEDGER_APP_ENV"
	EnvPort      = "GIGLEDGER_APP_PORT"
	EnvRedisURL  = "GIGLEDGER_REDIS_URL"
	EnvJWTSecret = "GIGLEDGER_JWT_SECRET"
	EnvJWTIssuer = "GIGLEDGER_JWT_ISSUER"
)

const (
	EnvDBDSN  = "GIGLEDGER_DB_DSN"
	EnvDBHost = "GIGLEDGER_DB_HOST"
	EnvDBUser = "GIGLEDGER_DB_USER"
	EnvDBName = "GIGLEDGER_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
