package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	Admin    AdminConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Elastic  ElasticsearchConfig
	Pipeline PipelineConfig
}

type ServerConfig struct {
	AppEnv   string
	GRPCPort string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
	FilePath          string
}

type PostgresConfig struct {
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type AdminConfig struct {
	Token string
}

// RedisConfig is optional: an empty Addr disables caching and the seed lock.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig is optional: no brokers means catalog events are not published.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// ElasticsearchConfig is optional: no addresses means DB-only search.
type ElasticsearchConfig struct {
	Addresses []string
	Username  string
	Password  string
}

type PipelineConfig struct {
	SourceDir     string
	ExtractedFile string
	OverrideFile  string
	ExpandedFile  string
	ExpandedCSV   string
	PolicyFile    string
	Seed          int64
	Year          int
	BatchSize     int
	EnsureSchema  bool
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:   getEnv("APP_ENV", "dev"),
			GRPCPort: getEnv("GRPC_PORT", ":8082"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
			FilePath:          getEnv("LOGGER_FILE", ""),
		},
		Postgres: PostgresConfig{
			URL:             getEnv("DATABASE_URL", ""),
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "minerhaolan"),
			Password:        getEnv("POSTGRES_PASSWORD", "minerhaolan"),
			DBName:          getEnv("POSTGRES_DB", "minerhaolan"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		Admin: AdminConfig{
			Token: getEnv("ADMIN_TOKEN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvSlice("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC_CATALOG", "catalog.events"),
			GroupID: getEnv("KAFKA_GROUP_CATALOG", "catalog-service"),
		},
		Elastic: ElasticsearchConfig{
			Addresses: getEnvSlice("ELASTICSEARCH_ADDRESSES", nil),
			Username:  getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:  getEnv("ELASTICSEARCH_PASSWORD", ""),
		},
		Pipeline: PipelineConfig{
			SourceDir:     getEnv("CATALOG_SOURCE_DIR", "scrape/products"),
			ExtractedFile: getEnv("CATALOG_EXTRACTED_FILE", "data/products.json"),
			OverrideFile:  getEnv("CATALOG_OVERRIDE_FILE", "data/products_manual.json"),
			ExpandedFile:  getEnv("CATALOG_EXPANDED_FILE", "data/products_expanded.json"),
			ExpandedCSV:   getEnv("CATALOG_EXPANDED_CSV", ""),
			PolicyFile:    getEnv("CATALOG_POLICY_FILE", ""),
			Seed:          getEnvInt64("PIPELINE_SEED", 0),
			Year:          getEnvInt("PIPELINE_YEAR", 0),
			BatchSize:     getEnvInt("SEED_BATCH_SIZE", 50),
			EnsureSchema:  getEnvBool("SEED_ENSURE_SCHEMA", true),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.AppEnv == "dev"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		if strings.TrimSpace(value) == "" {
			return fallback
		}
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}
