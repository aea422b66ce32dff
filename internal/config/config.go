package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	AppPort string `yaml:"app_port"`

	DBDriver   string `yaml:"db_driver"`
	SQLitePath string `yaml:"sqlite_path"`

	MySQLHost string `yaml:"mysql_host"`
	MySQLPort string `yaml:"mysql_port"`
	MySQLDB   string `yaml:"mysql_db"`
	MySQLUser string `yaml:"mysql_user"`
	MySQLPass string `yaml:"mysql_pass"`

	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`

	IdempTTLSecs int `yaml:"idempotency_ttl_seconds"`

	LogLevel        string `yaml:"log_level"`
	RepaymentSplit  string `yaml:"repayment_split"`
	OverdueScanCron string `yaml:"overdue_scan_cron"`
}

func defaults() *Config {
	return &Config{
		AppPort:    "8080",
		DBDriver:   DriverMySQL,
		SQLitePath: "ledger.db",
		MySQLHost:  "mysql",
		MySQLPort:  "3306",
		MySQLDB:    "ledger",
		MySQLUser:  "ledger",
		MySQLPass:  "ledger",

		RedisAddr:    "redis:6379",
		IdempTTLSecs: 300,

		LogLevel:        "info",
		RepaymentSplit:  "principal",
		OverdueScanCron: "0 * * * *",
	}
}

// Load builds the config from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables.
func Load() (*Config, error) {
	c := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := c.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := c.overrideWithEnv(); err != nil {
		return nil, err
	}
	c.RepaymentSplit = strings.ToLower(strings.TrimSpace(c.RepaymentSplit))
	return c, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func setenv(dst *string, k string) {
	if v := os.Getenv(k); v != "" {
		*dst = v
	}
}

func setenvInt(dst *int, k string) error {
	v := os.Getenv(k)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", k, v, err)
	}
	*dst = n
	return nil
}

func (c *Config) overrideWithEnv() error {
	setenv(&c.AppPort, "APP_PORT")
	setenv(&c.DBDriver, "DB_DRIVER")
	setenv(&c.SQLitePath, "SQLITE_PATH")
	setenv(&c.MySQLHost, "MYSQL_HOST")
	setenv(&c.MySQLPort, "MYSQL_PORT")
	setenv(&c.MySQLDB, "MYSQL_DB")
	setenv(&c.MySQLUser, "MYSQL_USER")
	setenv(&c.MySQLPass, "MYSQL_PASS")
	setenv(&c.RedisAddr, "REDIS_ADDR")
	setenv(&c.LogLevel, "LOG_LEVEL")
	setenv(&c.RepaymentSplit, "REPAYMENT_SPLIT")
	setenv(&c.OverdueScanCron, "OVERDUE_SCAN_CRON")
	if err := setenvInt(&c.RedisDB, "REDIS_DB"); err != nil {
		return err
	}
	return setenvInt(&c.IdempTTLSecs, "IDEMPOTENCY_TTL_SECONDS")
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (want mysql or sqlite)", c.DBDriver)
	}
	if c.IdempTTLSecs <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL_SECONDS must be positive, got %d", c.IdempTTLSecs)
	}
	switch c.RepaymentSplit {
	case "principal", "amortized":
	default:
		return fmt.Errorf("unknown REPAYMENT_SPLIT %q (want principal or amortized)", c.RepaymentSplit)
	}
	if c.OverdueScanCron != "" {
		if _, err := cron.ParseStandard(c.OverdueScanCron); err != nil {
			return fmt.Errorf("invalid OVERDUE_SCAN_CRON %q: %w", c.OverdueScanCron, err)
		}
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME/DATE scanning into time.Time
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
