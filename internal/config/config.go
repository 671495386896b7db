package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string

	// BlobBackend selects the local collection storage: file, redis or mongo.
	BlobBackend string
	DataDir     string
	RedisAddr   string
	RedisDB     int
	MongoURI    string
	MongoDB     string

	// SyncInterval is the polling period of the subscription loop.
	SyncInterval time.Duration

	LogLevel  string
	LogPretty bool
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "questboard_user"),
		DBPassword: getEnv("DB_PASSWORD", "questboard_pass"),
		DBName:     getEnv("DB_NAME", "questboard_db"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		BlobBackend: getEnv("BLOB_BACKEND", "file"),
		DataDir:     getEnv("DATA_DIR", "./data"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "questboard"),

		SyncInterval: time.Duration(getEnvInt("SYNC_INTERVAL_MS", 2000)) * time.Millisecond,

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnv("LOG_PRETTY", "false") == "true",
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("⚠️  %s is not a number, using default %d", key, defaultVal)
	}
	return defaultVal
}
