package configs

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"shoeshop/configs/loader"
)

type DBConfig struct {
	User           string        `validate:"required"`
	Password       string        `validate:"required"`
	Name           string        `validate:"required"`
	Host           string        `validate:"required"`
	Port           string        `validate:"required"`
	ConnectTimeout time.Duration `validate:"required"`
	Retries        int           `validate:"required"`
}

type RedisConfig struct {
	Host         string        `validate:"required"`
	DB           int           `validate:"required"`
	User         string        `validate:"required"`
	Password     string        `validate:"required"`
	MaxRetries   int           `validate:"required"`
	DialTimeout  time.Duration `validate:"required"`
	ReadTimeout  time.Duration `validate:"required"`
	WriteTimeout time.Duration `validate:"required"`
	Capacity     int           `validate:"required"`
	TTL          time.Duration
}

type KafkaConfig struct {
	BootstrapServers     string `validate:"required"`
	AutoCommitIntervalMs int    `validate:"required"`
	AutoOffsetReset      string `validate:"required"`
	SessionTimeoutMs     int    `validate:"required"`
	Topic                string `validate:"required"`
	ConsumerGroup        string `validate:"required"`
	FlushTimeout         int    `validate:"required"`
}

type MongoConfig struct {
	URI      string `validate:"required"`
	Database string `validate:"required"`
	Timeout  time.Duration
}

type SMTPConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	From       string
	RequireTLS bool
	Timeout    time.Duration
}

type HttpConfig struct {
	Port         string        `validate:"required"`
	MetricsPort  string        `validate:"required"`
	ReadTimeout  time.Duration `validate:"required"`
	WriteTimeout time.Duration `validate:"required"`
	IdleTimeout  time.Duration `validate:"required"`
}

// ShopConfig holds the business knobs of the shop itself.
type ShopConfig struct {
	CostPerKm         float64
	LowStockThreshold int
	RetryCount        int
}

type Config struct {
	DB   DBConfig
	RD   RedisConfig
	KF   KafkaConfig
	MG   MongoConfig
	SMTP SMTPConfig
	HTTP HttpConfig
	Shop ShopConfig
	Env  string
}

// MustLoad parses the command line, so flags a binary declares before calling it are set
// afterwards whether or not APP_ENV is present.
func MustLoad(loader loader.ConfigLoader) *Config {
	const op = "configs.MustLoad"
	env, err := parseEnv(flag.CommandLine, os.Args[1:], os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatalf("%s: %+v", op, err)
	}

	cfg, err := Load(loader, env)
	if err != nil {
		log.Fatalf("%s: %+v", op, err)
	}
	return cfg
}

// parseEnv parses args into fs and resolves the environment. APP_ENV wins over -env.
func parseEnv(fs *flag.FlagSet, args []string, appEnv string) (string, error) {
	envFlag := fs.String("env", "dev", "Environment type")
	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("parse flags: %w", err)
	}
	if appEnv != "" {
		return appEnv, nil
	}
	return *envFlag, nil
}

// Load builds and validates the config without exiting, so callers and tests can inspect the error.
func Load(loader loader.ConfigLoader, env string) (*Config, error) {
	envs, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	cfg := &Config{
		DB: DBConfig{
			User:           envs["POSTGRES_USER"],
			Password:       envs["POSTGRES_PASSWORD"],
			Name:           envs["POSTGRES_DB"],
			Host:           envs["POSTGRES_HOST"],
			Port:           envs["POSTGRES_PORT"],
			ConnectTimeout: getEnvAsDuration(envs["POSTGRES_CONNECT_TIMEOUT"], 5*time.Second),
			Retries:        getEnvAsInt(envs["POSTGRES_RETRIES"], 1),
		},
		RD: RedisConfig{
			Host:         envs["REDIS_HOST"],
			DB:           getEnvAsInt(envs["REDIS_DB"], 0),
			User:         envs["REDIS_USER"],
			Password:     envs["REDIS_PASSWORD"],
			MaxRetries:   getEnvAsInt(envs["REDIS_MAX_RETRIES"], 3),
			DialTimeout:  getEnvAsDuration(envs["REDIS_DIAL_TIMEOUT"], 5*time.Second),
			ReadTimeout:  getEnvAsDuration(envs["REDIS_READ_TIMEOUT"], 5*time.Second),
			WriteTimeout: getEnvAsDuration(envs["REDIS_WRITE_TIMEOUT"], 5*time.Second),
			Capacity:     getEnvAsInt(envs["REDIS_CAPACITY"], 100),
			TTL:          getEnvAsDuration(envs["REDIS_TTL"], 10*time.Minute),
		},
		KF: KafkaConfig{
			BootstrapServers:     envs["KAFKA_BOOTSTRAP_SERVERS"],
			AutoCommitIntervalMs: getEnvAsInt(envs["KAFKA_AUTO_COMMIT_INTERVAL_MS"], 1000),
			AutoOffsetReset:      getEnvAsString(envs["KAFKA_AUTO_OFFSET_RESET"], "earliest"),
			SessionTimeoutMs:     getEnvAsInt(envs["KAFKA_SESSION_TIMEOUT_MS"], 6000),
			Topic:                getEnvAsString(envs["KAFKA_TOPIC"], "restock-requests"),
			ConsumerGroup:        getEnvAsString(envs["KAFKA_CONSUMER_GROUP"], "shoeshop-restock"),
			FlushTimeout:         getEnvAsInt(envs["KAFKA_FLUSH_TIMEOUT"], 5000),
		},
		MG: MongoConfig{
			URI:      envs["MONGO_URI"],
			Database: getEnvAsString(envs["MONGO_DB"], "shoeshop"),
			Timeout:  getEnvAsDuration(envs["MONGO_TIMEOUT"], 10*time.Second),
		},
		SMTP: SMTPConfig{
			Host:       getEnvAsString(envs["SMTP_HOST"], "localhost"),
			Port:       getEnvAsInt(envs["SMTP_PORT"], 587),
			User:       envs["SMTP_USER"],
			Password:   envs["SMTP_PASSWORD"],
			From:       getEnvAsString(envs["SMTP_FROM"], "inventory@shoeshop.local"),
			RequireTLS: getEnvAsBool(envs["SMTP_REQUIRE_TLS"], true),
			Timeout:    getEnvAsDuration(envs["SMTP_TIMEOUT"], 15*time.Second),
		},
		HTTP: HttpConfig{
			Port:         getEnvAsString(envs["HTTP_PORT"], "8080"),
			MetricsPort:  getEnvAsString(envs["METRICS_PORT"], "8082"),
			ReadTimeout:  getEnvAsDuration(envs["HTTP_READ_TIMEOUT"], 10*time.Second),
			WriteTimeout: getEnvAsDuration(envs["HTTP_WRITE_TIMEOUT"], 10*time.Second),
			IdleTimeout:  getEnvAsDuration(envs["HTTP_IDLE_TIMEOUT"], 60*time.Second),
		},
		Shop: ShopConfig{
			CostPerKm:         getEnvAsFloat(envs["SHOP_COST_PER_KM"], 45),
			LowStockThreshold: getEnvAsInt(envs["SHOP_LOW_STOCK_THRESHOLD"], 5),
			RetryCount:        getEnvAsInt(envs["SHOP_RETRY_COUNT"], 3),
		},
		Env: env,
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("error validation config: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DB.User == "" || cfg.DB.Password == "" || cfg.DB.Name == "" ||
		cfg.DB.Host == "" || cfg.DB.Port == "" || cfg.DB.Retries <= 0 || cfg.DB.ConnectTimeout <= 0*time.Second {
		return fmt.Errorf("incorrect database config fields")
	}

	if cfg.RD.Host == "" || cfg.RD.DialTimeout <= 0*time.Second || cfg.RD.ReadTimeout <= 0*time.Second || cfg.RD.
		WriteTimeout <= 0*time.Second || cfg.RD.Capacity <= 0 || cfg.RD.MaxRetries <= 0 {
		return fmt.Errorf("incorrect cache config fields")
	}

	if cfg.KF.BootstrapServers == "" || cfg.KF.AutoCommitIntervalMs <= 0 || cfg.KF.SessionTimeoutMs <= 0 ||
		cfg.KF.Topic == "" || cfg.KF.ConsumerGroup == "" || cfg.KF.AutoOffsetReset == "" ||
		cfg.KF.FlushTimeout <= 0 {
		return fmt.Errorf("incorrect kafka config fields")
	}

	if cfg.MG.URI == "" || cfg.MG.Database == "" || cfg.MG.Timeout <= 0*time.Second {
		return fmt.Errorf("incorrect mongo config fields")
	}

	if cfg.HTTP.Port == "" || cfg.HTTP.MetricsPort == "" || cfg.HTTP.ReadTimeout <= 0*time.Second ||
		cfg.HTTP.WriteTimeout <= 0*time.Second || cfg.HTTP.IdleTimeout <= 0*time.Second {
		return fmt.Errorf("incorrect http config fields")
	}

	if cfg.Shop.CostPerKm < 0 || cfg.Shop.LowStockThreshold < 0 || cfg.Shop.RetryCount <= 0 {
		return fmt.Errorf("incorrect shop config fields")
	}
	return nil
}

func getEnvAsString(strValue string, defaultValue string) string {
	if strValue == "" {
		return defaultValue
	}
	return strValue
}

func getEnvAsDuration(strValue string, defaultValue time.Duration) time.Duration {
	const op = "configs.getEnvAsDuration"
	if strValue == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(strValue)
	if err != nil {
		log.Printf("%s:forbidden value for %s, using default: %v", op,
			strValue, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsInt(strValue string, defaultValue int) int {
	const op = "configs.getEnvAsInt"
	if strValue == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("%s:forbidden value for %s, using default: %v", op, strValue,
			defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(strValue string, defaultValue float64) float64 {
	const op = "configs.getEnvAsFloat"
	if strValue == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(strValue, 64)
	if err != nil {
		log.Printf("%s:forbidden value for %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(strValue string, defaultValue bool) bool {
	const op = "configs.getEnvAsBool"
	if strValue == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(strValue)
	if err != nil {
		log.Printf("%s:forbidden value for %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}
