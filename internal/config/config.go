package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Mongo  MongoConfig
	Ingest IngestConfig
	DB     DBConfig
	Ledger LedgerConfig
	S3     S3Config
	Server ServerConfig
	Log    LogConfig
}

// MongoConfig holds document store connection settings.
type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Hosts          []string      `mapstructure:"hosts"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	AuthSource     string        `mapstructure:"auth_source"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// IngestConfig holds batch ingest settings.
type IngestConfig struct {
	BatchSize       int               `mapstructure:"batch_size"`
	ValidationLevel string            `mapstructure:"validation_level"`
	Coercion        string            `mapstructure:"coercion"`
	Precheck        bool              `mapstructure:"precheck"`
	ProgressEvery   int               `mapstructure:"progress_every"`
	DataDir         string            `mapstructure:"data_dir"`
	Sources         map[string]string `mapstructure:"sources"`
}

// DBConfig holds PostgreSQL connection settings for the run ledger.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LedgerConfig toggles recording of ingest runs in PostgreSQL.
type LedgerConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	// AllowedOrigins lists origins permitted to read the report API cross-origin.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// datasetNames lists the keys accepted under ingest.sources.
var datasetNames = []string{"customers", "products", "orders", "order_items"}

// Load reads configuration from environment variables with the ECOMLOAD_
// prefix, layered over the optional config file at path (or ECOMLOAD_CONFIG).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ECOMLOAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv("ECOMLOAD_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	// Mongo defaults
	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.hosts", "localhost:27017")
	v.SetDefault("mongo.username", "")
	v.SetDefault("mongo.password", "")
	v.SetDefault("mongo.auth_source", "admin")
	v.SetDefault("mongo.database", "ecommerce")
	v.SetDefault("mongo.connect_timeout", "10s")

	// Ingest defaults
	v.SetDefault("ingest.batch_size", 5000)
	v.SetDefault("ingest.validation_level", "moderate")
	v.SetDefault("ingest.coercion", "null")
	v.SetDefault("ingest.precheck", false)
	v.SetDefault("ingest.progress_every", 0)
	v.SetDefault("ingest.data_dir", "data")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "ecomload")
	v.SetDefault("db.password", "ecomload_secret")
	v.SetDefault("db.name", "ecomload_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 5)
	v.SetDefault("db.max_idle", 2)
	v.SetDefault("ledger.enabled", false)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "ecomload-data")
	v.SetDefault("s3.endpoint", "")

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"mongo.uri":               "ECOMLOAD_MONGO_URI",
		"mongo.hosts":             "ECOMLOAD_MONGO_HOSTS",
		"mongo.username":          "ECOMLOAD_MONGO_USERNAME",
		"mongo.password":          "ECOMLOAD_MONGO_PASSWORD",
		"mongo.auth_source":       "ECOMLOAD_MONGO_AUTH_SOURCE",
		"mongo.database":          "ECOMLOAD_MONGO_DATABASE",
		"mongo.connect_timeout":   "ECOMLOAD_MONGO_CONNECT_TIMEOUT",
		"ingest.batch_size":       "ECOMLOAD_INGEST_BATCH_SIZE",
		"ingest.validation_level": "ECOMLOAD_INGEST_VALIDATION_LEVEL",
		"ingest.coercion":         "ECOMLOAD_INGEST_COERCION",
		"ingest.precheck":         "ECOMLOAD_INGEST_PRECHECK",
		"ingest.progress_every":   "ECOMLOAD_INGEST_PROGRESS_EVERY",
		"ingest.data_dir":         "ECOMLOAD_INGEST_DATA_DIR",
		"db.host":                 "ECOMLOAD_DB_HOST",
		"db.port":                 "ECOMLOAD_DB_PORT",
		"db.user":                 "ECOMLOAD_DB_USER",
		"db.password":             "ECOMLOAD_DB_PASSWORD",
		"db.name":                 "ECOMLOAD_DB_NAME",
		"db.sslmode":              "ECOMLOAD_DB_SSLMODE",
		"db.max_open":             "ECOMLOAD_DB_MAX_OPEN",
		"db.max_idle":             "ECOMLOAD_DB_MAX_IDLE",
		"ledger.enabled":          "ECOMLOAD_LEDGER_ENABLED",
		"s3.region":               "ECOMLOAD_S3_REGION",
		"s3.bucket":               "ECOMLOAD_S3_BUCKET",
		"s3.endpoint":             "ECOMLOAD_S3_ENDPOINT",
		"s3.access_key":           "ECOMLOAD_S3_ACCESS_KEY",
		"s3.secret_key":           "ECOMLOAD_S3_SECRET_KEY",
		"server.port":             "ECOMLOAD_SERVER_PORT",
		"server.read_timeout":     "ECOMLOAD_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "ECOMLOAD_SERVER_WRITE_TIMEOUT",
		"server.environment":      "ECOMLOAD_SERVER_ENVIRONMENT",
		"server.allowed_origins":  "ECOMLOAD_SERVER_ALLOWED_ORIGINS",
		"log.level":               "ECOMLOAD_LOG_LEVEL",
		"log.format":              "ECOMLOAD_LOG_FORMAT",
	}
	for _, name := range datasetNames {
		envBindings["ingest.sources."+name] = "ECOMLOAD_INGEST_SOURCES_" + strings.ToUpper(name)
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Container platforms set a PORT env var. Use it if ECOMLOAD_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ECOMLOAD_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Mongo = MongoConfig{
		URI:            v.GetString("mongo.uri"),
		Hosts:          stringList(v, "mongo.hosts"),
		Username:       v.GetString("mongo.username"),
		Password:       v.GetString("mongo.password"),
		AuthSource:     v.GetString("mongo.auth_source"),
		Database:       v.GetString("mongo.database"),
		ConnectTimeout: v.GetDuration("mongo.connect_timeout"),
	}

	sources := make(map[string]string)
	for _, name := range datasetNames {
		if loc := v.GetString("ingest.sources." + name); loc != "" {
			sources[name] = loc
		}
	}
	cfg.Ingest = IngestConfig{
		BatchSize:       v.GetInt("ingest.batch_size"),
		ValidationLevel: v.GetString("ingest.validation_level"),
		Coercion:        v.GetString("ingest.coercion"),
		Precheck:        v.GetBool("ingest.precheck"),
		ProgressEvery:   v.GetInt("ingest.progress_every"),
		DataDir:         v.GetString("ingest.data_dir"),
		Sources:         sources,
	}

	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Ledger = LedgerConfig{
		Enabled: v.GetBool("ledger.enabled"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		// Either a comma-separated string or a list in the config file
		AllowedOrigins: stringList(v, "server.allowed_origins"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}

// stringList reads key as a list. Config files may give a sequence; env vars
// and defaults give a comma-separated string.
func stringList(v *viper.Viper, key string) []string {
	var out []string
	for _, item := range v.GetStringSlice(key) {
		out = append(out, splitList(item)...)
	}
	return out
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
