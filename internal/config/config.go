package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	AppEnv   string
	HTTPAddr string

	UploadDir string
	BaseURL   string

	MongoURI string
	MongoDB  string

	CORSOrigins string

	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseBucket     string

	LLMProvider     string
	GeminiAPIKey    string
	DefaultLLMModel string
	VisionLLMModel  string

	AdsAPIKey string
	AdsAPIURL string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func Load() Config {
	cfg := Config{
		AppEnv:   getenv("APP_ENV", "development"),
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		UploadDir: getenv("UPLOAD_DIR", "./uploads"),
		BaseURL:   os.Getenv("BASE_URL"),

		MongoURI: getenv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:  getenv("MONGODB_DB", "kleinanzeigen"),

		CORSOrigins: getenv("CORS_ORIGINS", "*"),

		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		SupabaseBucket:     getenv("SUPABASE_STORAGE_BUCKET", "uploads"),

		LLMProvider:     getenv("LLM_PROVIDER", "gemini"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		DefaultLLMModel: getenv("DEFAULT_LLM_MODEL", "gemini-1.5-pro"),
		VisionLLMModel:  getenv("VISION_LLM_MODEL", "gemini-1.5-flash"),

		AdsAPIKey: os.Getenv("ADS_API_KEY"),
		AdsAPIURL: getenv("ADS_API_URL", "https://api.kleinanzeigen-agent.de/ads/v1"),
	}
	if cfg.MongoURI == "" {
		panic(fmt.Errorf("MONGODB_URI is required"))
	}
	return cfg
}

// CORSOriginList splits the comma-separated CORS_ORIGINS value.
func (c Config) CORSOriginList() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
