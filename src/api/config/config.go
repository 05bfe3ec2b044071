package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	MySQLDSN string
	// RedisURL is optional; empty disables the shared breed cache and the
	// event stream.
	RedisURL string
	Port     string

	CatAPIURL      string
	CatAPIKey      string
	BreedTimeout   time.Duration
	BreedCacheTTL  time.Duration
	BreedCacheSize int

	// JWTSecret, when set, requires a bearer token on mutating routes.
	JWTSecret   string
	CORSOrigins []string
	RateLimit   int
	RateWindow  time.Duration

	EnableSSL bool
	SSLCert   string
	SSLKey    string

	MetricsEnabled bool
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Load reads the configuration from the environment. Logging settings are
// owned by the command line flags (LOG_LEVEL, LOG_FILE) and are not read here.
func Load() (Config, error) {
	cfg := Config{
		MySQLDSN:  getenv("MYSQL_DSN", "spycats:spycats@tcp(127.0.0.1:3306)/spycats"),
		RedisURL:  getenv("REDIS_URL", ""),
		Port:      getenv("PORT", "8000"),
		CatAPIURL: getenv("CAT_API_URL", "https://api.thecatapi.com/v1"),
		CatAPIKey: getenv("CAT_API_KEY", ""),
		JWTSecret: getenv("JWT_SECRET", ""),
		SSLCert:   getenv("SSL_CERT", ""),
		SSLKey:    getenv("SSL_KEY", ""),
	}
	cfg.CORSOrigins = splitList(getenv("CORS_ORIGINS", "http://localhost:3000"))

	var err error
	if cfg.BreedTimeout, err = durationEnv("BREED_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.BreedCacheTTL, err = durationEnv("BREED_CACHE_TTL", "1h"); err != nil {
		return Config{}, err
	}
	if cfg.RateWindow, err = durationEnv("RATE_WINDOW", "1m"); err != nil {
		return Config{}, err
	}
	if cfg.BreedCacheSize, err = intEnv("BREED_CACHE_SIZE", "512"); err != nil {
		return Config{}, err
	}
	if cfg.RateLimit, err = intEnv("RATE_LIMIT", "120"); err != nil {
		return Config{}, err
	}
	if cfg.EnableSSL, err = boolEnv("ENABLE_SSL", "false"); err != nil {
		return Config{}, err
	}
	if cfg.MetricsEnabled, err = boolEnv("METRICS_ENABLED", "true"); err != nil {
		return Config{}, err
	}

	if cfg.EnableSSL && (cfg.SSLCert == "" || cfg.SSLKey == "") {
		return Config{}, fmt.Errorf("ENABLE_SSL requires SSL_CERT and SSL_KEY")
	}
	return cfg, nil
}

// TLSEnabled reports whether the server should terminate TLS itself.
func (c Config) TLSEnabled() bool {
	return c.EnableSSL && c.SSLCert != "" && c.SSLKey != ""
}

func durationEnv(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenv(key, def))
	if err != nil {
		return 0, fmt.Errorf("env %s: %w", key, err)
	}
	return d, nil
}

func intEnv(key, def string) (int, error) {
	n, err := strconv.Atoi(getenv(key, def))
	if err != nil {
		return 0, fmt.Errorf("env %s: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("env %s: must not be negative", key)
	}
	return n, nil
}

func boolEnv(key, def string) (bool, error) {
	b, err := strconv.ParseBool(getenv(key, def))
	if err != nil {
		return false, fmt.Errorf("env %s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
