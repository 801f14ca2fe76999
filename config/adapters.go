package config

import (
	"time"

	"github.com/fashionnova610-sys/Minerhaolan/pkg/broker"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/cache"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/database/postgres"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/logger"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/search"
)

// ZapLoggerConfig maps the environment onto the zap setup; development
// environments log human-readable debug output.
func (c *Config) ZapLoggerConfig() *logger.ZapLoggerConfig {
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          c.Logger.Encoding,
		Level:             c.Logger.Level,
		DisableCaller:     c.Logger.DisableCaller,
		DisableStacktrace: c.Logger.DisableStacktrace,
		FilePath:          c.Logger.FilePath,
	}
	if c.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}
	return logConfig
}

func (c *Config) PostgresConfig() *postgres.Config {
	return &postgres.Config{
		URL:             c.Postgres.URL,
		Host:            c.Postgres.Host,
		Port:            c.Postgres.Port,
		User:            c.Postgres.User,
		Password:        c.Postgres.Password,
		DBName:          c.Postgres.DBName,
		SSLMode:         c.Postgres.SSLMode,
		MaxOpenConns:    c.Postgres.MaxOpenConns,
		MaxIdleConns:    c.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(c.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(c.Postgres.ConnMaxIdleTime) * time.Second,
	}
}

func (c *Config) RedisEnabled() bool { return c.Redis.Addr != "" }

func (c *Config) CacheConfig() *cache.Config {
	return &cache.Config{Addr: c.Redis.Addr, Password: c.Redis.Password, DB: c.Redis.DB}
}

func (c *Config) KafkaEnabled() bool { return len(c.Kafka.Brokers) > 0 }

func (c *Config) BrokerConfig() *broker.Config {
	return &broker.Config{Brokers: c.Kafka.Brokers, Topic: c.Kafka.Topic, GroupID: c.Kafka.GroupID}
}

func (c *Config) ElasticEnabled() bool { return len(c.Elastic.Addresses) > 0 }

func (c *Config) SearchConfig() *search.Config {
	return &search.Config{Addresses: c.Elastic.Addresses, Username: c.Elastic.Username, Password: c.Elastic.Password}
}
