package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port      string
	MongoURI  string
	MongoDB   string
	JWTSecret string

	// TokenTTL controls the exp claim of issued tokens. Zero means
	// tokens are issued without an expiry.
	TokenTTL time.Duration

	UploadDir   string
	BlobBackend string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// AuthRequired gates the mutating notice routes behind token auth.
	AuthRequired bool
	// StrictDelete makes a failed blob removal fail the delete request
	// instead of being logged and tolerated.
	StrictDelete bool

	CORSAllowedOrigins []string
}

func Load() *Config {
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getenv("TOKEN_TTL", "0s"))
	if err != nil {
		ttl = 0
	}

	cfg := &Config{
		Port:           getenv("PORT", "5000"),
		MongoURI:       getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:        getenv("MONGO_DB", "resmedx"),
		JWTSecret:      getenv("JWT_SECRET", ""),
		TokenTTL:       ttl,
		UploadDir:      getenv("UPLOAD_DIR", "./uploads"),
		BlobBackend:    getenv("BLOB_BACKEND", "local"),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", "minio:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "notices"),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",
		AuthRequired:   getenv("AUTH_REQUIRED", "false") == "true",
		StrictDelete:   getenv("STRICT_DELETE", "false") == "true",
	}

	for _, o := range strings.Split(getenv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
