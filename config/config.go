package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App        AppConfig
	Supabase   SupabaseConfig
	ElevenLabs ElevenLabsConfig
	Cache      CacheConfig
}

type AppConfig struct {
	Name               string
	Version            string
	Port               string
	Debug              bool
	Environment        string
	BasePath           string
	StaticDir          string
	TrustedProxies     []string
	CorsAllowedOrigins []string
}

type SupabaseConfig struct {
	URL           string
	AnonKey       string
	StorageBucket string
	TracksTable   string
	SignedURLTTL  time.Duration
}

type ElevenLabsConfig struct {
	APIKey           string
	BaseURL          string
	ModelID          string
	Timeout          time.Duration
	CreditsPerSecond float64
}

type CacheConfig struct {
	TrackTTL    time.Duration
	RecentLimit int
}

// Global provides access to the loaded configuration globally.
var Global *Config

// Load reads configuration from a .env file (if present) and environment
// variables. Missing provider credentials are tolerated here: the affected
// subsystem answers 503 at call time instead of crashing startup.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_BASE_PATH", "")
	v.SetDefault("APP_STATIC_DIR", "static")
	v.SetDefault("SUPABASE_STORAGE_BUCKET", "music-tracks")
	v.SetDefault("SUPABASE_TRACKS_TABLE", "user_tracks")
	v.SetDefault("SUPABASE_SIGNED_URL_TTL_HOURS", 24*365)
	v.SetDefault("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io/v1")
	v.SetDefault("ELEVENLABS_MODEL_ID", "music_v1")
	v.SetDefault("ELEVENLABS_TIMEOUT_SECONDS", 120)
	// Rough empirical price point: 788 credits for a 35 second track.
	v.SetDefault("ELEVENLABS_CREDITS_PER_SECOND", 22.5)
	v.SetDefault("TRACK_CACHE_TTL_MINUTES", 15)
	v.SetDefault("TRACK_CACHE_RECENT_LIMIT", 5)

	cfg := &Config{
		App: AppConfig{
			Name:               "VuGru Music MVP",
			Version:            "v1.0.0",
			Port:               v.GetString("APP_PORT"),
			Debug:              v.GetBool("APP_DEBUG"),
			Environment:        v.GetString("APP_ENV"),
			BasePath:           v.GetString("APP_BASE_PATH"),
			StaticDir:          v.GetString("APP_STATIC_DIR"),
			TrustedProxies:     splitList(v.GetString("APP_TRUSTED_PROXIES")),
			CorsAllowedOrigins: splitList(v.GetString("APP_CORS_ALLOWED_ORIGINS")),
		},
		Supabase: SupabaseConfig{
			URL:           strings.TrimSuffix(v.GetString("SUPABASE_URL"), "/"),
			AnonKey:       v.GetString("SUPABASE_ANON_KEY"),
			StorageBucket: v.GetString("SUPABASE_STORAGE_BUCKET"),
			TracksTable:   v.GetString("SUPABASE_TRACKS_TABLE"),
			SignedURLTTL:  time.Duration(v.GetInt("SUPABASE_SIGNED_URL_TTL_HOURS")) * time.Hour,
		},
		ElevenLabs: ElevenLabsConfig{
			APIKey:           v.GetString("ELEVENLABS_API_KEY"),
			BaseURL:          strings.TrimSuffix(v.GetString("ELEVENLABS_BASE_URL"), "/"),
			ModelID:          v.GetString("ELEVENLABS_MODEL_ID"),
			Timeout:          time.Duration(v.GetInt("ELEVENLABS_TIMEOUT_SECONDS")) * time.Second,
			CreditsPerSecond: v.GetFloat64("ELEVENLABS_CREDITS_PER_SECOND"),
		},
		Cache: CacheConfig{
			TrackTTL:    time.Duration(v.GetInt("TRACK_CACHE_TTL_MINUTES")) * time.Minute,
			RecentLimit: v.GetInt("TRACK_CACHE_RECENT_LIMIT"),
		},
	}

	Global = cfg
	return cfg
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
