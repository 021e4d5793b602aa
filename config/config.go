package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	LIM_EF=100
//	LIM_NORM=200
//	UPLOAD_MAX_BYTES=33554432
//	AUDIT_ENABLED=true
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=custopulse
//	POSTGRES_SSLMODE=disable
type Config struct {
	Server     ServerConfig     // HTTP server configuration
	Processing ProcessingConfig // thresholds and upload limits
	Audit      AuditConfig      // run audit log toggle
	Postgres   PostgresConfig   // PostgreSQL connection settings (audit log)
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// ProcessingConfig holds the defaults used when a request omits a threshold.
//
// Fields:
//   - LimEf: default efficiency threshold (lim_ef).
//   - LimNorm: default normality threshold (lim_norm).
//   - MaxUploadBytes: cap on the whole multipart body.
type ProcessingConfig struct {
	LimEf          float64
	LimNorm        float64
	MaxUploadBytes int64
}

// AuditConfig controls whether run metadata is stored in PostgreSQL.
type AuditConfig struct {
	Enabled bool
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and read by main and app wiring.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("LIM_EF", 100.0)
	viper.SetDefault("LIM_NORM", 200.0)
	viper.SetDefault("UPLOAD_MAX_BYTES", int64(32<<20))

	viper.SetDefault("AUDIT_ENABLED", false)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "custopulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Processing: ProcessingConfig{
			LimEf:          viper.GetFloat64("LIM_EF"),
			LimNorm:        viper.GetFloat64("LIM_NORM"),
			MaxUploadBytes: viper.GetInt64("UPLOAD_MAX_BYTES"),
		},
		Audit: AuditConfig{
			Enabled: viper.GetBool("AUDIT_ENABLED"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// DSN builds the PostgreSQL connection string used by database/sql.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// validateConfig terminates the application when required variables are missing.
// Postgres settings are only required when the audit log is enabled.
func validateConfig() {
	if missing := missingFields(AppConfig); len(missing) > 0 {
		log.Fatalf("missing or invalid environment variables: %v\n", missing)
	}
}

func missingFields(c Config) []string {
	var missing []string

	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if c.Processing.MaxUploadBytes <= 0 {
		missing = append(missing, "UPLOAD_MAX_BYTES")
	}
	if c.Processing.LimEf < 0 {
		missing = append(missing, "LIM_EF")
	}
	if c.Processing.LimNorm < c.Processing.LimEf {
		missing = append(missing, "LIM_NORM")
	}

	if !c.Audit.Enabled {
		return missing
	}
	if c.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if c.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if c.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if c.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if c.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	return missing
}
