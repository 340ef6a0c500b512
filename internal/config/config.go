package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		Name string `toml:"name"`
		Env  string `toml:"env"`
	} `toml:"app"`

	API struct {
		Host string `toml:"host"`
		Port string `toml:"port"`
	} `toml:"api"`

	DB struct {
		Host     string `toml:"host"`
		Port     int    `toml:"port"`
		User     string `toml:"user"`
		Password string `toml:"password"`
		Name     string `toml:"name"`
		SSLMode  string `toml:"sslMode"`
	} `toml:"db"`

	Redis struct {
		Addr     string `toml:"addr"`
		Password string `toml:"password"`
		DB       int    `toml:"db"`
	} `toml:"redis"`

	ZenSend struct {
		APIKey         string        `toml:"apiKey"`
		URL            string        `toml:"url"`
		VerifyURL      string        `toml:"verifyUrl"`
		RequestTimeout time.Duration `toml:"requestTimeout"`
		KeepAlive      time.Duration `toml:"keepAlive"`
	} `toml:"zensend"`

	Verification struct {
		SessionTTL time.Duration `toml:"sessionTtl"`
	} `toml:"verification"`

	Scheduler struct {
		Interval     time.Duration `toml:"interval"`
		BatchTimeout time.Duration `toml:"batchTimeout"`
	} `toml:"scheduler"`

	Worker struct {
		BatchSize         int           `toml:"batchSize"`
		MaxWorkers        int           `toml:"maxWorkers"`
		PerMessageTimeout time.Duration `toml:"perMessageTimeout"`
	} `toml:"worker"`

	Kafka struct {
		Brokers []string `toml:"brokers"`
		Topic   string   `toml:"topic"`
		GroupID string   `toml:"groupId"`
	} `toml:"kafka"`

	Log struct {
		Level      string `toml:"level"`
		FileName   string `toml:"fileName"`
		MaxSize    int    `toml:"maxSize"`
		MaxBackups int    `toml:"maxBackups"`
		MaxAge     int    `toml:"maxAge"`
	} `toml:"log"`
}

// New builds the configuration. Values come from, in increasing priority:
// built-in defaults, the TOML file named by CONFIG_FILE, and the environment
// (including a .env file).
func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			log.Printf("[Config] Ignoring config file %s: %v", path, err)
		}
	}

	// App
	cfg.App.Name = getEnv("APP_NAME", or(cfg.App.Name, "zensend-gateway"))
	cfg.App.Env = getEnv("APP_ENV", or(cfg.App.Env, "development"))

	// API
	cfg.API.Host = getEnv("API_HOST", or(cfg.API.Host, "0.0.0.0"))
	cfg.API.Port = getEnv("API_PORT", or(cfg.API.Port, "8080"))

	// DB
	cfg.DB.Host = getEnv("DB_HOST", or(cfg.DB.Host, "db"))
	cfg.DB.Port = getInt("DB_PORT", or(cfg.DB.Port, 5432))
	cfg.DB.User = getEnv("DB_USER", or(cfg.DB.User, "root"))
	cfg.DB.Password = getEnv("DB_PASSWORD", or(cfg.DB.Password, "123456"))
	cfg.DB.Name = getEnv("DB_NAME", or(cfg.DB.Name, "db_zensend"))
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", or(cfg.DB.SSLMode, "disable"))

	// Redis
	cfg.Redis.Addr = getEnv("REDIS_ADDR", or(cfg.Redis.Addr, "redis:6379"))
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getInt("REDIS_DB", cfg.Redis.DB)

	// ZenSend
	cfg.ZenSend.APIKey = getEnv("ZENSEND_API_KEY", cfg.ZenSend.APIKey)
	cfg.ZenSend.URL = getEnv("ZENSEND_URL", or(cfg.ZenSend.URL, "https://api.zensend.io"))
	cfg.ZenSend.VerifyURL = getEnv("ZENSEND_VERIFY_URL", or(cfg.ZenSend.VerifyURL, "https://verify.zensend.io"))
	cfg.ZenSend.RequestTimeout = getDuration("ZENSEND_REQUEST_TIMEOUT", or(cfg.ZenSend.RequestTimeout, 10*time.Second))
	cfg.ZenSend.KeepAlive = getDuration("ZENSEND_KEEP_ALIVE", or(cfg.ZenSend.KeepAlive, 5*time.Second))

	cfg.Verification.SessionTTL = getDuration("VERIFY_SESSION_TTL", or(cfg.Verification.SessionTTL, 10*time.Minute))

	// Scheduler
	cfg.Scheduler.Interval = getDuration("SCHEDULER_INTERVAL", or(cfg.Scheduler.Interval, 5*time.Second))
	cfg.Scheduler.BatchTimeout = getDuration("SCHEDULER_BATCH_TIMEOUT", or(cfg.Scheduler.BatchTimeout, 30*time.Second))

	// Worker / message processing
	cfg.Worker.BatchSize = getInt("MESSAGE_BATCH_SIZE", or(cfg.Worker.BatchSize, 100))
	cfg.Worker.MaxWorkers = getInt("MESSAGE_MAX_WORKERS", or(cfg.Worker.MaxWorkers, 4))
	cfg.Worker.PerMessageTimeout = getDuration("MESSAGE_PER_MESSAGE_TIMEOUT", or(cfg.Worker.PerMessageTimeout, 5*time.Second))

	// Kafka ingest is disabled unless brokers are configured.
	cfg.Kafka.Brokers = getList("KAFKA_BROKERS", cfg.Kafka.Brokers)
	cfg.Kafka.Topic = getEnv("KAFKA_TOPIC", or(cfg.Kafka.Topic, "zensend-outbox"))
	cfg.Kafka.GroupID = getEnv("KAFKA_GROUP_ID", or(cfg.Kafka.GroupID, "zensend-gateway"))

	// Log
	cfg.Log.Level = getEnv("LOG_LEVEL", or(cfg.Log.Level, "info"))
	cfg.Log.FileName = getEnv("LOG_FILE", cfg.Log.FileName)
	cfg.Log.MaxSize = getInt("LOG_MAX_SIZE_MB", or(cfg.Log.MaxSize, 100))
	cfg.Log.MaxBackups = getInt("LOG_MAX_BACKUPS", or(cfg.Log.MaxBackups, 5))
	cfg.Log.MaxAge = getInt("LOG_MAX_AGE_DAYS", or(cfg.Log.MaxAge, 30))

	return cfg
}

// or returns v unless it is the zero value, in which case def is returned.
func or[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}

// KafkaEnabled reports whether the outbox consumer should run.
func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

// IsDevelopment reports whether the app runs in a local development environment.
func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(c.App.Env) {
	case "dev", "development", "local":
		return true
	}
	return false
}
