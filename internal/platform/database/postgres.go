package database

import (
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/Raiyyanpatel/PrepVerse/internal/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

var DB *sql.DB

func Connect() {
	var err error
	DB, err = sql.Open("pgx", config.AppConfig.DBConnStr)
	if err != nil {
		slog.Error("opening database failed", "err", err)
		os.Exit(1)
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err = DB.Ping(); err != nil {
		slog.Error("connecting to database failed", "err", err)
		os.Exit(1)
	}

	slog.Info("connected to PostgreSQL")
}

func Close() {
	if DB != nil {
		DB.Close()
		slog.Info("database connection closed")
	}
}
