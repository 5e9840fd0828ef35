package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port     string
	Timezone string
	DBPath   string

	LogLevel  string
	LogFormat string

	LLMProvider  string // openai|gemini|mock|none
	LLMEndpoint  string
	LLMAPIKey    string
	LLMModel     string
	GeminiAPIKey string
	GeminiModel  string

	JWTSecret      string
	EnableDevLogin bool
	ChatDailyLimit int

	CORSAllowOrigins []string
	ClimateCSV       string
	ClimateXLSX      string
	WardrobeDomains  []string
}

// Load reads .env (if present) and the process environment. It never fails;
// a missing .env is reported through the returned warning.
func Load() (AppConfig, error) {
	envErr := godotenv.Load()

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	limit, err := strconv.Atoi(get("CHAT_DAILY_LIMIT", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}

	cfg := AppConfig{
		Port:     get("PORT", "8080"),
		Timezone: get("TZ", "UTC"),
		DBPath:   get("DB_PATH", "olivia.db"),

		LogLevel:  get("LOG_LEVEL", "info"),
		LogFormat: get("LOG_FORMAT", "json"),

		LLMProvider:  strings.ToLower(get("LLM_PROVIDER", "")),
		LLMEndpoint:  get("LLM_ENDPOINT", "https://api.openai.com"),
		LLMAPIKey:    get("LLM_API_KEY", ""),
		LLMModel:     get("LLM_MODEL", "gpt-4o-mini"),
		GeminiAPIKey: get("GEMINI_API_KEY", ""),
		GeminiModel:  get("GEMINI_MODEL", "gemini-1.5-flash"),

		JWTSecret:      get("JWT_SECRET", ""),
		EnableDevLogin: get("ENABLE_DEV_LOGIN", "false") == "true",
		ChatDailyLimit: limit,

		CORSAllowOrigins: splitList(get("CORS_ALLOW_ORIGINS", "*")),
		ClimateCSV:       get("CLIMATE_CSV", "./CityClimate.csv"),
		ClimateXLSX:      get("CLIMATE_XLSX", "./ClimateNormals.xlsx"),
		WardrobeDomains:  splitList(get("WARDROBE_ALLOWED_DOMAINS", "")),
	}
	if cfg.LLMProvider == "" {
		switch {
		case cfg.GeminiAPIKey != "":
			cfg.LLMProvider = "gemini"
		case cfg.LLMAPIKey != "":
			cfg.LLMProvider = "openai"
		default:
			cfg.LLMProvider = "none"
		}
	}
	return cfg, envErr
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
