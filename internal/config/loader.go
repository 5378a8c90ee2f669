package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies MARKETFEED_* environment variable overrides,
// and returns the final Config. The returned Config has NOT been validated;
// callers should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env if present; missing files are fine.
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides overwrites Config fields from MARKETFEED_* environment
// variables when set. Operators inject secrets at deploy time this way
// without touching the TOML file.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Polymarket.GammaHost, "MARKETFEED_POLYMARKET_GAMMA_HOST")
	setInt(&cfg.Polymarket.TopLimit, "MARKETFEED_POLYMARKET_TOP_LIMIT")
	setBool(&cfg.Polymarket.Mock, "MARKETFEED_POLYMARKET_MOCK")

	setStr(&cfg.APIFootball.BaseURL, "MARKETFEED_API_FOOTBALL_BASE_URL")
	setStr(&cfg.APIFootball.APIKey, "MARKETFEED_API_FOOTBALL_API_KEY")
	setStr(&cfg.APIFootball.APIKey, "RAPIDAPI_KEY") // compatibility alias
	setInt(&cfg.APIFootball.LeagueID, "MARKETFEED_API_FOOTBALL_LEAGUE_ID")
	setInt(&cfg.APIFootball.DaysAhead, "MARKETFEED_API_FOOTBALL_DAYS_AHEAD")
	setBool(&cfg.APIFootball.Mock, "MARKETFEED_API_FOOTBALL_MOCK")

	setStr(&cfg.Database.DSN, "MARKETFEED_DATABASE_DSN")
	setStr(&cfg.Database.DSN, "DATABASE_URL") // compatibility alias
	setStr(&cfg.Database.Host, "MARKETFEED_DATABASE_HOST")
	setInt(&cfg.Database.Port, "MARKETFEED_DATABASE_PORT")
	setStr(&cfg.Database.Database, "MARKETFEED_DATABASE_NAME")
	setStr(&cfg.Database.User, "MARKETFEED_DATABASE_USER")
	setStr(&cfg.Database.Password, "MARKETFEED_DATABASE_PASSWORD")
	setStr(&cfg.Database.SSLMode, "MARKETFEED_DATABASE_SSL_MODE")
	setInt(&cfg.Database.PoolMaxConns, "MARKETFEED_DATABASE_POOL_MAX_CONNS")
	setInt(&cfg.Database.PoolMinConns, "MARKETFEED_DATABASE_POOL_MIN_CONNS")
	setBool(&cfg.Database.RunMigrations, "MARKETFEED_DATABASE_RUN_MIGRATIONS")

	setBool(&cfg.Redis.Enabled, "MARKETFEED_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "MARKETFEED_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "MARKETFEED_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "MARKETFEED_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "MARKETFEED_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "MARKETFEED_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "MARKETFEED_REDIS_TLS_ENABLED")

	setBool(&cfg.S3.Enabled, "MARKETFEED_S3_ENABLED")
	setStr(&cfg.S3.Endpoint, "MARKETFEED_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "MARKETFEED_S3_REGION")
	setStr(&cfg.S3.Bucket, "MARKETFEED_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "MARKETFEED_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "MARKETFEED_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "MARKETFEED_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "MARKETFEED_S3_FORCE_PATH_STYLE")

	setBool(&cfg.Pipeline.Enabled, "MARKETFEED_PIPELINE_ENABLED")
	setDuration(&cfg.Pipeline.SyncInterval, "MARKETFEED_PIPELINE_SYNC_INTERVAL")
	setBool(&cfg.Pipeline.DryRun, "MARKETFEED_PIPELINE_DRY_RUN")

	setBool(&cfg.Server.Enabled, "MARKETFEED_SERVER_ENABLED")
	setInt(&cfg.Server.Port, "MARKETFEED_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "MARKETFEED_SERVER_CORS_ORIGINS")
	setStr(&cfg.Server.APIKey, "MARKETFEED_SERVER_API_KEY")

	setStr(&cfg.Mode, "MARKETFEED_MODE")
	setStr(&cfg.LogLevel, "MARKETFEED_LOG_LEVEL")
}

// Typed env-var helpers. Each only mutates the target when the variable is
// present and non-empty.

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
