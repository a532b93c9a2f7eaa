package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Auth providers understood by AuthProvider.
const (
	AuthProviderLocal    = "local"
	AuthProviderFirebase = "firebase"
)

type Config struct {
	Port                    string
	Env                     string
	PostgresURL             string
	MongoURI                string
	MongoDatabase           string
	AuthProvider            string
	FirebaseCredentialsPath string
	JWTSecret               string
	SessionTTL              time.Duration
	AuthCodeTTL             time.Duration
	RequestTimeout          time.Duration
	AutoMigrate             bool
	DBLogLevel              string
}

// Load reads the configuration from the environment, loading a .env file first if one exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		PostgresURL:             getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "quillpost"),
		AuthProvider:            getEnv("AUTH_PROVIDER", AuthProviderLocal),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		SessionTTL:              getDuration("SESSION_TTL", 72*time.Hour),
		AuthCodeTTL:             getDuration("AUTH_CODE_TTL", 5*time.Minute),
		RequestTimeout:          getDuration("REQUEST_TIMEOUT", 15*time.Second),
		AutoMigrate:             getBool("AUTO_MIGRATE", true),
		DBLogLevel:              getEnv("DB_LOG_LEVEL", "warn"),
	}
}

// IsProduction reports whether the server runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration %q for %s, using %s", value, key, defaultValue)
		return defaultValue
	}
	return d
}

func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Invalid boolean %q for %s, using %t", value, key, defaultValue)
		return defaultValue
	}
	return b
}
