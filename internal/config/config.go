package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr string

	// SnowflakeNode distinguishes ID generators across instances.
	SnowflakeNode int64

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	// Document numbering prefixes, e.g. INV/2425/0001.
	InvoicePrefix  string
	PurchasePrefix string

	// Path of the company profile JSON consumed by tax determination
	// and e-invoice assembly.
	CompanyProfilePath string

	// Directory where generated e-invoice JSON files are written.
	EInvoiceDir string

	// StrictLines rejects invoice lines referencing unknown products
	// instead of silently skipping them.
	StrictLines bool
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:            getenv("APP_SERVICE", "billpro"),
		AppVersion:         getenv("APP_VERSION", "0.1.0"),
		Environment:        getenv("ENVIRONMENT", "development"),
		HTTPAddr:           getenv("HTTP_ADDR", ":8080"),
		SnowflakeNode:      int64(getenvInt("SNOWFLAKE_NODE", 1)),
		DBType:             getenv("DATABASE_TYPE", "sqlite"),
		DBHost:             getenv("DATABASE_HOST", "localhost"),
		DBPort:             getenv("DATABASE_PORT", "5432"),
		DBName:             getenv("DATABASE_NAME", "billpro"),
		DBUser:             getenv("DATABASE_USER", "billpro"),
		DBPassword:         getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:          getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:      getenvInt("DATABASE_MAX_IDLE_CONN", 2),
		DBMaxOpenConn:      getenvInt("DATABASE_MAX_OPEN_CONN", 10),
		DBConnMaxLifetime:  getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),
		InvoicePrefix:      getenv("INVOICE_PREFIX", "INV"),
		PurchasePrefix:     getenv("PURCHASE_PREFIX", "PUR"),
		CompanyProfilePath: getenv("COMPANY_PROFILE_PATH", "config/company.json"),
		EInvoiceDir:        getenv("EINVOICE_DIR", "einvoices"),
		StrictLines:        getenvBool("BILLING_STRICT_LINES", false),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
