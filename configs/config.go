package config

import "os"

type Config struct {
	MetaAppID          string
	MetaAppSecret      string
	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectBase  string
	FrontendBase       string
	PostgresURI        string
	SecretKey          string
	OpenAIAPIKey       string
	Port               string
}

func LoadConfig() *Config {
	return &Config{
		MetaAppID:          getEnv("META_APP_ID", ""),
		MetaAppSecret:      getEnv("META_APP_SECRET", ""),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectBase:  getEnv("OAUTH_REDIRECT_BASE", "http://127.0.0.1:8000"),
		FrontendBase:       getEnv("FRONTEND_BASE", "http://localhost:5173"),
		PostgresURI:        getEnv("POSTGRES_URI", ""),
		SecretKey:          getEnv("SECRET_KEY", ""),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		Port:               getEnv("PORT", "8000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
