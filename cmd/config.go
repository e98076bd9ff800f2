package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	defaultHTTPPort       = "8080"
	defaultLogLevel       = "info"
	defaultPoolReportSpec = "0 * * * * *"
	defaultDBSslMode      = "disable"
)

type Config struct {
	HTTPPort       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	LogLevel       string
	PoolReportSpec string
}

// LoadConfig reads configuration in order: .env (if present), environment, flags.
// Flags are parsed from args, which excludes the program name.
func LoadConfig(envFile string, args []string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		slog.Warn("Env file not loaded", "file", envFile, "error", err)
	}

	config := Config{
		HTTPPort:       envOr("HTTP_PORT", defaultHTTPPort),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         envOr("DB_PORT", "5432"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBSslMode:      envOr("DB_SSLMODE", defaultDBSslMode),
		LogLevel:       envOr("LOG_LEVEL", defaultLogLevel),
		PoolReportSpec: envOr("POOL_REPORT_SPEC", defaultPoolReportSpec),
	}

	flags := pflag.NewFlagSet("dispatch", pflag.ContinueOnError)
	flags.StringVar(&config.HTTPPort, "http-port", config.HTTPPort, "port to listen on")
	flags.StringVar(&config.LogLevel, "log-level", config.LogLevel, "debug, info, warn or error")
	flags.StringVar(&config.PoolReportSpec, "pool-report-spec", config.PoolReportSpec, "cron spec (with seconds) of the pool report")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate reports every missing or malformed setting.
func (c Config) Validate() error {
	var errList []error
	if err := validatePort("HTTP_PORT", c.HTTPPort); err != nil {
		errList = append(errList, err)
	}
	if err := validatePort("DB_PORT", c.DBPort); err != nil {
		errList = append(errList, err)
	}
	if c.DBHost == "" {
		errList = append(errList, errors.New("DB_HOST is required"))
	}
	if c.DBName == "" {
		errList = append(errList, errors.New("DB_NAME is required"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errList = append(errList, err)
	}
	return errors.Join(errList...)
}

// DSN renders the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func validatePort(name, value string) error {
	p, err := strconv.Atoi(value)
	if err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid %s: %q", name, value)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
