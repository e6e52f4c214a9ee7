package models

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	CORS     CORSConfig
	Store    StoreConfig
	Mongo    MongoConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NSQ      NSQConfig
	JWT      JWTConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout int // in seconds
}

// CORSConfig lists the origins allowed to call the API from a browser
type CORSConfig struct {
	AllowedOrigins []string
}

// Store drivers accepted by StoreConfig.Driver
const (
	StoreDriverMongo    = "mongo"
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// StoreConfig selects the transaction document store
type StoreConfig struct {
	Driver string
}

// MongoConfig contains MongoDB connection configuration
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    int // in seconds
}

// DatabaseConfig contains PostgreSQL connection configuration
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NSQConfig contains the nsqd address events are published to.
// Publishing is disabled when Address is empty.
type NSQConfig struct {
	Address string
}

// JWTConfig contains bearer token verification configuration
type JWTConfig struct {
	Secret          string
	CredentialsPath string // file holding the signing secret, takes precedence over Secret
	Expiration      int    // in minutes
	Issuer          string
}

// NewRelicConfig contains New Relic APM configuration
type NewRelicConfig struct {
	Enabled     bool
	LicenseKey  string
	AppName     string
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
