package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings. Values come from an optional YAML file
// and are then overridden by environment variables.
type Config struct {
	Port        string   `yaml:"port"`
	BaseURL     string   `yaml:"baseUrl"`
	DatabaseURL string   `yaml:"databaseUrl"`
	RedisURL    string   `yaml:"redisUrl"`
	CORSOrigins []string `yaml:"corsOrigins"`

	SessionSecret string `yaml:"sessionSecret"`
	AdminToken    string `yaml:"adminToken"`

	Match     MatchConfig     `yaml:"match"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Jobs      JobsConfig      `yaml:"jobs"`
	Mail      MailConfig      `yaml:"mail"`
	Storage   StorageConfig   `yaml:"storage"`
	Preview   PreviewConfig   `yaml:"preview"`

	GoogleCredentialsPath string `yaml:"googleCredentialsPath"`
}

// MatchConfig tunes the code-match flow
type MatchConfig struct {
	CandidateLimit int           `yaml:"candidateLimit"`
	ResultLimit    int           `yaml:"resultLimit"`
	MinCodeLength  int           `yaml:"minCodeLength"`
	CacheTTL       time.Duration `yaml:"cacheTtl"`
}

// RateLimitConfig applies per visitor on write routes
type RateLimitConfig struct {
	RequestsPerSecond int `yaml:"requestsPerSecond"`
	Burst             int `yaml:"burst"`
}

// JobsConfig holds cron specs for background jobs
type JobsConfig struct {
	ViewFlushSpec   string `yaml:"viewFlushSpec"`
	MatchPruneSpec  string `yaml:"matchPruneSpec"`
	MatchRetainDays int    `yaml:"matchRetainDays"`
}

// MailConfig points at a Resend-compatible HTTP mail API
type MailConfig struct {
	APIURL string `yaml:"apiUrl"`
	APIKey string `yaml:"apiKey"`
	From   string `yaml:"from"`
}

// StorageConfig configures the MinIO bucket used for rendered previews
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"useSsl"`
	PublicURL string `yaml:"publicUrl"`
}

// PreviewConfig configures headless Chrome rendering
type PreviewConfig struct {
	ChromePath string `yaml:"chromePath"`
	CacheDir   string `yaml:"cacheDir"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Port:        "8080",
		BaseURL:     "http://localhost:8080",
		CORSOrigins: []string{"*"},
		Match: MatchConfig{
			CandidateLimit: 60,
			ResultLimit:    6,
			MinCodeLength:  50,
			CacheTTL:       24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		},
		Jobs: JobsConfig{
			ViewFlushSpec:   "@every 1m",
			MatchPruneSpec:  "@daily",
			MatchRetainDays: 90,
		},
		Mail: MailConfig{
			APIURL: "https://api.resend.com/emails",
		},
		Storage: StorageConfig{
			Bucket: "design-previews",
		},
		Preview: PreviewConfig{
			CacheDir: "cache/previews",
		},
	}
}

// Load reads the YAML file at path (if it exists) on top of the defaults,
// then applies environment overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// optional
		default:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Port, "PORT")
	// PORT from some hosts comes as ":8080"
	cfg.Port = strings.TrimPrefix(cfg.Port, ":")
	setString(&cfg.BaseURL, "BASE_URL")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.RedisURL, "REDIS_URL")
	setString(&cfg.SessionSecret, "SESSION_SECRET")
	setString(&cfg.AdminToken, "ADMIN_TOKEN")
	setString(&cfg.GoogleCredentialsPath, "GOOGLE_APPLICATION_CREDENTIALS")

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSOrigins = origins
	}

	setInt(&cfg.Match.CandidateLimit, "MATCH_CANDIDATE_LIMIT")
	setInt(&cfg.Match.ResultLimit, "MATCH_RESULT_LIMIT")
	setInt(&cfg.RateLimit.RequestsPerSecond, "RATE_LIMIT_RPS")
	setInt(&cfg.RateLimit.Burst, "RATE_LIMIT_BURST")
	setString(&cfg.Jobs.ViewFlushSpec, "VIEW_FLUSH_SPEC")

	setString(&cfg.Mail.APIURL, "MAIL_API_URL")
	setString(&cfg.Mail.APIKey, "MAIL_API_KEY")
	setString(&cfg.Mail.From, "MAIL_FROM")

	setString(&cfg.Storage.Endpoint, "MINIO_ENDPOINT")
	setString(&cfg.Storage.AccessKey, "MINIO_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "MINIO_SECRET_KEY")
	setString(&cfg.Storage.Bucket, "MINIO_BUCKET")
	setString(&cfg.Storage.PublicURL, "MINIO_PUBLIC_URL")
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		cfg.Storage.UseSSL, _ = strconv.ParseBool(v)
	}

	setString(&cfg.Preview.ChromePath, "CHROME_PATH")
	setString(&cfg.Preview.CacheDir, "PREVIEW_CACHE_DIR")

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = databaseURLFromParts()
	}
}

// databaseURLFromParts builds a DSN from DB_HOST, DB_USER, ... when DATABASE_URL is unset
func databaseURLFromParts() string {
	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return ""
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, os.Getenv("DB_PASSWORD"), dbname, sslmode)
}

// Validate checks the settings that have no usable default
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database connection not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	if c.Match.CandidateLimit <= 0 {
		return fmt.Errorf("match.candidateLimit must be greater than 0")
	}
	if c.Match.ResultLimit <= 0 {
		return fmt.Errorf("match.resultLimit must be greater than 0")
	}
	if c.Match.MinCodeLength <= 0 {
		return fmt.Errorf("match.minCodeLength must be greater than 0")
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rateLimit requestsPerSecond and burst must be greater than 0")
	}
	return nil
}

// StorageEnabled reports whether MinIO settings are complete
func (c *Config) StorageEnabled() bool {
	return c.Storage.Endpoint != "" && c.Storage.AccessKey != "" && c.Storage.SecretKey != ""
}

func setString(dst *string, key string) {
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
