package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/yungbote/foodgram-backend/internal/platform/envutil"
)

const insecureJWTSecret = "defaultsecret"

// Duration decodes TOML strings such as "720h" or "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config is read from an optional TOML file named by CONFIG_FILE, then from
// the environment. Environment values win.
type Config struct {
	Port           string   `toml:"port"`
	ServiceName    string   `toml:"service_name"`
	Environment    string   `toml:"environment"`
	RequestTimeout Duration `toml:"request_timeout"`
	ShutdownGrace  Duration `toml:"shutdown_grace"`

	Log struct {
		Mode      string `toml:"mode"`
		Level     string `toml:"level"`
		Redaction bool   `toml:"redaction"`
		HashSalt  string `toml:"hash_salt"`
	} `toml:"log"`

	Database struct {
		Driver           string   `toml:"driver"`
		PostgresHost     string   `toml:"postgres_host"`
		PostgresPort     string   `toml:"postgres_port"`
		PostgresUser     string   `toml:"postgres_user"`
		PostgresPassword string   `toml:"postgres_password"`
		PostgresName     string   `toml:"postgres_name"`
		PostgresSSLMode  string   `toml:"postgres_sslmode"`
		SQLitePath       string   `toml:"sqlite_path"`
		SlowThreshold    Duration `toml:"slow_threshold"`
	} `toml:"database"`

	Auth struct {
		JWTSecretKey   string   `toml:"jwt_secret_key"`
		AccessTokenTTL Duration `toml:"access_token_ttl"`
	} `toml:"auth"`

	Recipes struct {
		PageSize       int    `toml:"page_size"`
		MaxPageSize    int    `toml:"max_page_size"`
		CookingTimeMin int    `toml:"cooking_time_min"`
		CookingTimeMax int    `toml:"cooking_time_max"`
		AmountMin      int    `toml:"amount_min"`
		AmountMax      int    `toml:"amount_max"`
		ImagePrefix    string `toml:"image_prefix"`
		DataDir        string `toml:"data_dir"`
	} `toml:"recipes"`

	Storage struct {
		Mode            string `toml:"mode"`
		MediaRoot       string `toml:"media_root"`
		MediaURL        string `toml:"media_url"`
		Bucket          string `toml:"bucket"`
		CredentialsJSON string `toml:"credentials_json"`
		CredentialsFile string `toml:"credentials_file"`
		GCSEndpoint     string `toml:"gcs_endpoint"`
		S3Region        string `toml:"s3_region"`
		S3Endpoint      string `toml:"s3_endpoint"`
		S3AccessKey     string `toml:"s3_access_key"`
		S3SecretKey     string `toml:"s3_secret_key"`
	} `toml:"storage"`

	Cache struct {
		RedisAddr     string   `toml:"redis_addr"`
		RedisPassword string   `toml:"redis_password"`
		RedisDB       int      `toml:"redis_db"`
		TTL           Duration `toml:"ttl"`
		Size          int      `toml:"size"`
	} `toml:"cache"`

	CORSAllowOrigins []string `toml:"cors_allow_origins"`
}

func defaultConfig() Config {
	var cfg Config
	cfg.Port = "8080"
	cfg.ServiceName = "foodgram"
	cfg.Environment = "development"
	cfg.RequestTimeout = Duration{30 * time.Second}
	cfg.ShutdownGrace = Duration{10 * time.Second}

	cfg.Log.Mode = "development"
	cfg.Log.Redaction = true

	cfg.Database.Driver = "postgres"
	cfg.Database.PostgresHost = "localhost"
	cfg.Database.PostgresPort = "5432"
	cfg.Database.PostgresUser = "postgres"
	cfg.Database.PostgresName = "foodgram"
	cfg.Database.SQLitePath = "foodgram.db"
	cfg.Database.SlowThreshold = Duration{200 * time.Millisecond}

	cfg.Auth.AccessTokenTTL = Duration{30 * 24 * time.Hour}

	cfg.Recipes.PageSize = 6
	cfg.Recipes.MaxPageSize = 100
	cfg.Recipes.CookingTimeMin = 1
	cfg.Recipes.CookingTimeMax = 10080
	cfg.Recipes.AmountMin = 1
	cfg.Recipes.AmountMax = 10000
	cfg.Recipes.ImagePrefix = "recipes/images/"
	cfg.Recipes.DataDir = "data"

	cfg.Storage.Mode = "local"
	cfg.Storage.MediaRoot = "media"
	cfg.Storage.MediaURL = "/media"

	cfg.Cache.TTL = Duration{10 * time.Minute}
	cfg.Cache.Size = 256
	return cfg
}

func LoadConfig() (Config, error) {
	cfg := defaultConfig()
	if path := envutil.String("CONFIG_FILE", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	if cfg.Auth.JWTSecretKey == "" {
		if strings.EqualFold(cfg.Environment, "production") {
			return Config{}, fmt.Errorf("JWT_SECRET_KEY is required in production")
		}
		cfg.Auth.JWTSecretKey = insecureJWTSecret
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Port = envutil.String("PORT", cfg.Port)
	cfg.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.ServiceName)
	cfg.Environment = envutil.String("ENVIRONMENT", cfg.Environment)
	cfg.RequestTimeout.Duration = envutil.Duration("REQUEST_TIMEOUT", cfg.RequestTimeout.Duration)
	cfg.ShutdownGrace.Duration = envutil.Duration("SHUTDOWN_GRACE", cfg.ShutdownGrace.Duration)

	cfg.Log.Mode = envutil.String("LOG_MODE", cfg.Log.Mode)
	cfg.Log.Level = envutil.String("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Redaction = envutil.Bool("LOG_REDACTION_ENABLED", cfg.Log.Redaction)
	cfg.Log.HashSalt = envutil.String("LOG_HASH_SALT", cfg.Log.HashSalt)

	cfg.Database.Driver = envutil.String("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.PostgresHost = envutil.String("POSTGRES_HOST", cfg.Database.PostgresHost)
	cfg.Database.PostgresPort = envutil.String("POSTGRES_PORT", cfg.Database.PostgresPort)
	cfg.Database.PostgresUser = envutil.String("POSTGRES_USER", cfg.Database.PostgresUser)
	cfg.Database.PostgresPassword = envutil.String("POSTGRES_PASSWORD", cfg.Database.PostgresPassword)
	cfg.Database.PostgresName = envutil.String("POSTGRES_NAME", cfg.Database.PostgresName)
	cfg.Database.PostgresSSLMode = envutil.String("POSTGRES_SSLMODE", cfg.Database.PostgresSSLMode)
	cfg.Database.SQLitePath = envutil.String("SQLITE_PATH", cfg.Database.SQLitePath)
	cfg.Database.SlowThreshold.Duration = envutil.Duration("DB_SLOW_THRESHOLD", cfg.Database.SlowThreshold.Duration)

	cfg.Auth.JWTSecretKey = envutil.String("JWT_SECRET_KEY", cfg.Auth.JWTSecretKey)
	cfg.Auth.AccessTokenTTL.Duration = envutil.Duration("ACCESS_TOKEN_TTL", cfg.Auth.AccessTokenTTL.Duration)

	cfg.Recipes.PageSize = envutil.Int("PAGE_SIZE", cfg.Recipes.PageSize)
	cfg.Recipes.MaxPageSize = envutil.Int("MAX_PAGE_SIZE", cfg.Recipes.MaxPageSize)
	cfg.Recipes.CookingTimeMin = envutil.Int("COOKING_TIME_MIN", cfg.Recipes.CookingTimeMin)
	cfg.Recipes.CookingTimeMax = envutil.Int("COOKING_TIME_MAX", cfg.Recipes.CookingTimeMax)
	cfg.Recipes.AmountMin = envutil.Int("AMOUNT_MIN", cfg.Recipes.AmountMin)
	cfg.Recipes.AmountMax = envutil.Int("AMOUNT_MAX", cfg.Recipes.AmountMax)
	cfg.Recipes.ImagePrefix = envutil.String("RECIPE_IMAGE_PREFIX", cfg.Recipes.ImagePrefix)
	cfg.Recipes.DataDir = envutil.String("DATA_DIR", cfg.Recipes.DataDir)

	cfg.Storage.Mode = envutil.String("OBJECT_STORAGE_MODE", cfg.Storage.Mode)
	cfg.Storage.MediaRoot = envutil.String("MEDIA_ROOT", cfg.Storage.MediaRoot)
	cfg.Storage.MediaURL = envutil.String("MEDIA_URL", cfg.Storage.MediaURL)
	cfg.Storage.Bucket = envutil.String("RECIPE_IMAGE_BUCKET", cfg.Storage.Bucket)
	cfg.Storage.CredentialsJSON = envutil.String("GCS_CREDENTIALS_JSON", cfg.Storage.CredentialsJSON)
	cfg.Storage.CredentialsFile = envutil.String("GOOGLE_APPLICATION_CREDENTIALS", cfg.Storage.CredentialsFile)
	cfg.Storage.GCSEndpoint = envutil.String("GCS_ENDPOINT", cfg.Storage.GCSEndpoint)
	cfg.Storage.S3Region = envutil.String("S3_REGION", cfg.Storage.S3Region)
	cfg.Storage.S3Endpoint = envutil.String("S3_ENDPOINT", cfg.Storage.S3Endpoint)
	cfg.Storage.S3AccessKey = envutil.String("S3_ACCESS_KEY", cfg.Storage.S3AccessKey)
	cfg.Storage.S3SecretKey = envutil.String("S3_SECRET_KEY", cfg.Storage.S3SecretKey)

	cfg.Cache.RedisAddr = envutil.String("REDIS_ADDR", cfg.Cache.RedisAddr)
	cfg.Cache.RedisPassword = envutil.String("REDIS_PASSWORD", cfg.Cache.RedisPassword)
	cfg.Cache.RedisDB = envutil.Int("REDIS_DB", cfg.Cache.RedisDB)
	cfg.Cache.TTL.Duration = envutil.Duration("CACHE_TTL", cfg.Cache.TTL.Duration)
	cfg.Cache.Size = envutil.Int("CACHE_SIZE", cfg.Cache.Size)

	cfg.CORSAllowOrigins = envutil.List("CORS_ALLOW_ORIGINS", cfg.CORSAllowOrigins)
}
