package migration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"hdlt/internal/config"
)

// DefaultDatabaseName is the history database used when DB_DATABASE is unset
const DefaultDatabaseName = "hdlt_history"

// DatabaseManager manages the run history database
type DatabaseManager struct {
	config *config.Config
}

// NewDatabaseManager creates a new DatabaseManager
func NewDatabaseManager(cfg *config.Config) *DatabaseManager {
	return &DatabaseManager{config: cfg}
}

// DSN returns the data source name for the history database.
// HDLT_DB_DSN wins; otherwise it is assembled from DB_HOST, DB_PORT, DB_USERNAME,
// DB_PASSWORD and DB_DATABASE, read from the environment or the test root .env file.
func (dm *DatabaseManager) DSN() (string, error) {
	// .env file might not exist, that's okay - use environment variables
	_ = godotenv.Load(filepath.Join(dm.config.TestRoot, ".env"))

	if dsn := os.Getenv("HDLT_DB_DSN"); dsn != "" {
		parsed, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "", fmt.Errorf("invalid HDLT_DB_DSN: %w", err)
		}
		parsed.ParseTime = true
		return parsed.FormatDSN(), nil
	}

	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = getenv("DB_HOST", "127.0.0.1") + ":" + getenv("DB_PORT", "3306")
	mc.User = getenv("DB_USERNAME", "root")
	mc.Passwd = os.Getenv("DB_PASSWORD")
	mc.DBName = getenv("DB_DATABASE", DefaultDatabaseName)
	mc.ParseTime = true

	if !isValidDatabaseName(mc.DBName) {
		return "", fmt.Errorf("invalid database name: %s", mc.DBName)
	}
	return mc.FormatDSN(), nil
}

// Open connects to the history database, creating it first if it does not exist
func (dm *DatabaseManager) Open(ctx context.Context) (*sql.DB, error) {
	dsn, err := dm.DSN()
	if err != nil {
		return nil, err
	}
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	if err := dm.ensureDatabase(ctx, mc); err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// ensureDatabase connects to the server (without a database) and creates mc.DBName
func (dm *DatabaseManager) ensureDatabase(ctx context.Context, mc *mysql.Config) error {
	if !isValidDatabaseName(mc.DBName) {
		return fmt.Errorf("invalid database name: %s", mc.DBName)
	}

	server := mc.Clone()
	server.DBName = ""
	db, err := sql.Open("mysql", server.FormatDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database server: %w", err)
	}

	exists, err := databaseExists(ctx, db, mc.DBName)
	if err != nil {
		return fmt.Errorf("failed to check database %s: %w", mc.DBName, err)
	}
	if exists {
		return nil
	}

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", mc.DBName)
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create database %s: %w", mc.DBName, err)
	}
	return nil
}

// databaseExists checks if a database exists
func databaseExists(ctx context.Context, db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRowContext(ctx, query, dbName).Scan(&exists)
	return exists, err
}

// isValidDatabaseName validates database name (basic check)
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	for _, r := range name {
		if !(r == '_' || r == '$' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	upper := strings.ToUpper(name)
	for _, word := range []string{"DROP", "DELETE", "TRUNCATE"} {
		if upper == word {
			return false
		}
	}
	return true
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
