package config

import (
	"errors"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env                string            `mapstructure:"env"`
	LogLevel           string            `mapstructure:"log_level"`
	LogType            string            `mapstructure:"log_type"`
	ServiceName        string            `mapstructure:"service_name"`
	Port               string            `mapstructure:"port"`
	Version            string            `mapstructure:"version"`
	CorsMaxAgeHours    time.Duration     `mapstructure:"cors_max_age_hours"`
	ApiUrlPath         string            `mapstructure:"api_url_path"`
	CacheSettings      *CacheConfig      `mapstructure:"cache"`
	HttpClientSettings *HttpClientConfig `mapstructure:"http_client"`
	TelemetrySettings  *TelemetryConfig  `mapstructure:"telemetry"`
}

// CacheConfig is used by the serve mode only. Empty Servers selects the in-process cache.
type CacheConfig struct {
	Servers         []string      `mapstructure:"servers"`
	TtlForRobotsTxt time.Duration `mapstructure:"ttl_for_robots_txt"`
}

type HttpClientConfig struct {
	RobotsRequestTimeout      time.Duration `mapstructure:"robots_request_timeout"`
	PageRequestTimeout        time.Duration `mapstructure:"page_request_timeout"`
	MaxBodySize               int           `mapstructure:"max_body_size"`
	MaxIdleConnections        int           `mapstructure:"max_idle_connections"`
	MaxIdleConnectionsPerHost int           `mapstructure:"max_idle_connections_per_host"`
	MaxConnectionsPerHost     int           `mapstructure:"max_connections_per_host"`
	IdleConnectionTimeout     time.Duration `mapstructure:"idle_connection_timeout"`
	TlsHandshakeTimeout       time.Duration `mapstructure:"tls_handshake_timeout"`
	DialTimeout               time.Duration `mapstructure:"dial_timeout"`
	DialKeepAlive             time.Duration `mapstructure:"dial_keep_alive"`
	TlsInsecureSkipVerify     bool          `mapstructure:"tls_insecure_skip_verify"`
}

type TelemetryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	CollectorUrl string `mapstructure:"collector_url"`
}

// MustLoad reads config.yaml from the working directory when it exists. Every key has a default,
// so the checker runs without any file. Environment variables override both (http_client.dial_timeout
// becomes HTTP_CLIENT_DIAL_TIMEOUT).
func MustLoad() *Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file.", slog.String("err", err.Error()))
	}

	v := viper.New()
	v.AddConfigPath(path.Join("."))
	v.SetConfigName("config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Error("can't initialize config file.", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Error("error unmarshalling viper config.", slog.String("err", err.Error()))
		os.Exit(1)
	}

	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_type", "text")
	v.SetDefault("service_name", "bots-checker")
	v.SetDefault("port", "8080")
	v.SetDefault("version", "dev")
	v.SetDefault("cors_max_age_hours", 12*time.Hour)
	v.SetDefault("api_url_path", "/api/v1")

	v.SetDefault("cache.servers", []string{})
	v.SetDefault("cache.ttl_for_robots_txt", time.Hour)

	v.SetDefault("http_client.robots_request_timeout", 10*time.Second)
	v.SetDefault("http_client.page_request_timeout", 30*time.Second)
	v.SetDefault("http_client.max_body_size", 10*1024*1024)
	v.SetDefault("http_client.max_idle_connections", 10)
	v.SetDefault("http_client.max_idle_connections_per_host", 2)
	v.SetDefault("http_client.max_connections_per_host", 0)
	v.SetDefault("http_client.idle_connection_timeout", 30*time.Second)
	v.SetDefault("http_client.tls_handshake_timeout", 10*time.Second)
	v.SetDefault("http_client.dial_timeout", 10*time.Second)
	v.SetDefault("http_client.dial_keep_alive", 30*time.Second)
	v.SetDefault("http_client.tls_insecure_skip_verify", false)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.collector_url", "localhost:4318")
}
