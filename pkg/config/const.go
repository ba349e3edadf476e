package config

const (
	EnvPrefix = "shoppix"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SHOPPIX_DB_DSN"
	EnvDBHost = "SHOPPIX_DB_HOST"
	EnvDBUser = "SHOPPIX_DB_USER"
	EnvDBName = "SHOPPIX_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
