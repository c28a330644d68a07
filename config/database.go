package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the shared GORM handle. InitDB must run before any handler uses it.
var DB *gorm.DB

// InitDB opens the MySQL connection described by the DB_* environment
// variables. Connection failure is fatal: nothing in the service works
// without the store.
func InitDB() {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USERNAME"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_DATABASE"),
	)

	// SQL statements are logged except in production, where DEBUG_SQL=true
	// turns them back on.
	logLevel := logger.Info
	if strings.ToLower(os.Getenv("ENVIRONMENT")) == "production" &&
		strings.ToLower(os.Getenv("DEBUG_SQL")) != "true" {
		logLevel = logger.Warn
	}

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.New(
			log.New(LogWriter, "\r\n", log.LstdFlags),
			logger.Config{LogLevel: logLevel},
		),
	})
	if err != nil {
		log.Fatal("Database connection failed:", err)
	}

	log.Println("Database ready")
}
