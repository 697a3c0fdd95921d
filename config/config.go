package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything the server reads from the environment. It is
// built once in main and handed to each component, nothing reads env vars
// after startup.
type Config struct {
	Port            int
	MongoURL        string
	MongoDB         string
	AdminToken      string
	JWTSecret       string
	PythonBin       string
	InferenceScript string
	ModelPath       string
	TempDir         string
	ResultsDir      string
	InferenceLimit  time.Duration
	BucketName      string
	AWSRegion       string
}

func Load() *Config {
	return &Config{
		Port:            getEnvAsInt("PORT", 3000),
		MongoURL:        getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "obrafoto"),
		AdminToken:      os.Getenv("ADMIN_TOKEN"),
		JWTSecret:       getEnv("JWT_SECRET", "obrafoto-dev"),
		PythonBin:       getEnv("PYTHON_BIN", "python3"),
		InferenceScript: getEnv("INFERENCE_SCRIPT", "inference_test.py"),
		ModelPath:       getEnv("MODEL_PATH", "weights_26.pt"),
		TempDir:         getEnv("TEMP_DIR", "temp"),
		ResultsDir:      getEnv("RESULTS_DIR", "results"),
		InferenceLimit:  time.Duration(getEnvAsInt("INFERENCE_TIMEOUT_SECONDS", 120)) * time.Second,
		BucketName:      os.Getenv("BUCKET_NAME"),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
	}
}

// MirrorEnabled reports whether uploads should also be copied to S3.
func (c *Config) MirrorEnabled() bool {
	return c.BucketName != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
