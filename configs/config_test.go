package configs

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapLoader struct {
	envs map[string]string
	err  error
}

func (l mapLoader) Load() (map[string]string, error) {
	return l.envs, l.err
}

func validEnvs() map[string]string {
	return map[string]string{
		"POSTGRES_USER":           "shop",
		"POSTGRES_PASSWORD":       "secret",
		"POSTGRES_DB":             "shoeshop",
		"POSTGRES_HOST":           "localhost",
		"POSTGRES_PORT":           "5432",
		"REDIS_HOST":              "localhost:6379",
		"KAFKA_BOOTSTRAP_SERVERS": "localhost:9092",
		"MONGO_URI":               "mongodb://localhost:27017",
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults are applied", func(t *testing.T) {
		cfg, err := Load(mapLoader{envs: validEnvs()}, "local")
		require.NoError(t, err)

		assert.Equal(t, "local", cfg.Env)
		assert.Equal(t, 5*time.Second, cfg.DB.ConnectTimeout)
		assert.Equal(t, 100, cfg.RD.Capacity)
		assert.Equal(t, "restock-requests", cfg.KF.Topic)
		assert.Equal(t, "8080", cfg.HTTP.Port)
		assert.Equal(t, "8082", cfg.HTTP.MetricsPort)
		assert.Equal(t, 45.0, cfg.Shop.CostPerKm)
		assert.Equal(t, 5, cfg.Shop.LowStockThreshold)
		assert.True(t, cfg.SMTP.RequireTLS)
		assert.Equal(t, 15*time.Second, cfg.SMTP.Timeout)
	})

	t.Run("overrides and bad values", func(t *testing.T) {
		envs := validEnvs()
		envs["SHOP_COST_PER_KM"] = "60.5"
		envs["REDIS_TTL"] = "not-a-duration"
		envs["SHOP_LOW_STOCK_THRESHOLD"] = "abc"
		envs["SMTP_REQUIRE_TLS"] = "false"

		cfg, err := Load(mapLoader{envs: envs}, "dev")
		require.NoError(t, err)

		assert.Equal(t, 60.5, cfg.Shop.CostPerKm)
		assert.Equal(t, 10*time.Minute, cfg.RD.TTL)
		assert.Equal(t, 5, cfg.Shop.LowStockThreshold)
		assert.False(t, cfg.SMTP.RequireTLS)
	})

	t.Run("missing database fields", func(t *testing.T) {
		envs := validEnvs()
		delete(envs, "POSTGRES_PASSWORD")

		_, err := Load(mapLoader{envs: envs}, "dev")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "incorrect database config fields")
	})

	t.Run("missing mongo uri", func(t *testing.T) {
		envs := validEnvs()
		delete(envs, "MONGO_URI")

		_, err := Load(mapLoader{envs: envs}, "dev")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "incorrect mongo config fields")
	})

	t.Run("loader failure", func(t *testing.T) {
		_, err := Load(mapLoader{err: errors.New("boom")}, "dev")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config load failed")
	})
}

func TestGetEnvAsBool(t *testing.T) {
	assert.True(t, getEnvAsBool("", true))
	assert.False(t, getEnvAsBool("0", true))
	assert.True(t, getEnvAsBool("TRUE", false))
	assert.False(t, getEnvAsBool("sometimes", false))
}

func TestParseEnv(t *testing.T) {
	t.Run("app flags are parsed when APP_ENV is set", func(t *testing.T) {
		fs := flag.NewFlagSet("mockRestockProducer", flag.ContinueOnError)
		n := fs.Int("n", 1, "")

		env, err := parseEnv(fs, []string{"-n", "25", "-env", "local"}, "prod")
		require.NoError(t, err)

		assert.Equal(t, "prod", env)
		assert.Equal(t, 25, *n)
	})

	t.Run("flag used without APP_ENV", func(t *testing.T) {
		fs := flag.NewFlagSet("shoeshop", flag.ContinueOnError)

		env, err := parseEnv(fs, []string{"-env", "local"}, "")
		require.NoError(t, err)
		assert.Equal(t, "local", env)
	})

	t.Run("default env", func(t *testing.T) {
		env, err := parseEnv(flag.NewFlagSet("shoeshop", flag.ContinueOnError), nil, "")
		require.NoError(t, err)
		assert.Equal(t, "dev", env)
	})

	t.Run("unknown flag", func(t *testing.T) {
		fs := flag.NewFlagSet("shoeshop", flag.ContinueOnError)
		fs.SetOutput(io.Discard)

		_, err := parseEnv(fs, []string{"-bogus"}, "")
		assert.Error(t, err)
	})
}
