package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB           *sql.DB
	ListenAddr   string
	JWTSecret    string
	NotifySecret string
	KioskToken   string
	Location     *time.Location
	CronEnabled  bool
}

var AppConfig *Config

// Load reads .env (if present) and environment variables, opens the
// database pool and populates AppConfig.
func Load() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnvInt("DB_PORT", 5432)
	user := getEnv("DB_USER", "postgres")
	password := os.Getenv("DB_PASSWORD")
	dbname := getEnv("DB_NAME", "mentor_manager")
	sslmode := getEnv("DB_SSLMODE", "disable")

	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s connect_timeout=10",
		host, port, user, dbname, sslmode)
	if password != "" {
		psqlInfo += " password=" + password
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		return fmt.Errorf("cannot establish database connection: %w", err)
	}

	tzName := getEnv("APP_TIMEZONE", "America/New_York")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Printf("Invalid APP_TIMEZONE %q, falling back to local time: %v", tzName, err)
		loc = time.Local
	}

	AppConfig = &Config{
		DB:           db,
		ListenAddr:   getEnv("LISTEN_ADDR", ":8080"),
		JWTSecret:    getEnv("JWT_SECRET", "mentor-manager-dev-secret"),
		NotifySecret: os.Getenv("NOTIFY_SECRET"),
		KioskToken:   os.Getenv("KIOSK_TOKEN"),
		Location:     loc,
		CronEnabled:  os.Getenv("NOTIFY_CRON") == "true",
	}

	log.Println("Database connected successfully")
	return nil
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

// GetLocation returns the deployment's local timezone. All schedule
// decisions (shift dates, notification windows) are made in this zone.
func GetLocation() *time.Location {
	if AppConfig == nil || AppConfig.Location == nil {
		return time.Local
	}
	return AppConfig.Location
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
