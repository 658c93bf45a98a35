package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	CORS       CORSConfig
	Generation GenerationConfig
	Upload     UploadConfig
	PDF        PDFConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GenerationConfig holds settings for the external text-generation service.
type GenerationConfig struct {
	Provider    string        `mapstructure:"provider"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Endpoint    string        `mapstructure:"endpoint"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Temperature float64       `mapstructure:"temperature"`
}

// Enabled reports whether a provider and credential are configured.
func (g *GenerationConfig) Enabled() bool {
	return g.Provider != "" && g.Provider != "none" && g.APIKey != ""
}

// UploadConfig limits document uploads.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload limit in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB << 20
}

// PDFConfig holds PDF extraction settings.
type PDFConfig struct {
	LicenseKey string `mapstructure:"license_key"`
}

// Load reads configuration from environment variables with the REPORTRX_ prefix.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("REPORTRX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// CORS defaults
	v.SetDefault("cors.allowed_origins", "http://localhost:3000")

	// Generation defaults
	v.SetDefault("generation.provider", "openai")
	v.SetDefault("generation.api_key", "")
	v.SetDefault("generation.model", "")
	v.SetDefault("generation.endpoint", "")
	v.SetDefault("generation.timeout", "4500ms")
	v.SetDefault("generation.temperature", 0.2)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 10)

	v.SetDefault("pdf.license_key", "")

	// Bind environment variables explicitly for nested keys. Names after the
	// first are legacy aliases.
	envBindings := map[string][]string{
		"server.port":             {"REPORTRX_SERVER_PORT"},
		"server.read_timeout":     {"REPORTRX_SERVER_READ_TIMEOUT"},
		"server.write_timeout":    {"REPORTRX_SERVER_WRITE_TIMEOUT"},
		"server.shutdown_timeout": {"REPORTRX_SERVER_SHUTDOWN_TIMEOUT"},
		"server.environment":      {"REPORTRX_SERVER_ENVIRONMENT"},
		"log.level":               {"REPORTRX_LOG_LEVEL"},
		"log.format":              {"REPORTRX_LOG_FORMAT"},
		"cors.allowed_origins":    {"REPORTRX_CORS_ALLOWED_ORIGINS", "FRONTEND_URL"},
		"generation.provider":     {"REPORTRX_GENERATION_PROVIDER"},
		"generation.api_key":      {"REPORTRX_GENERATION_API_KEY", "OPENAI_API_KEY"},
		"generation.model":        {"REPORTRX_GENERATION_MODEL", "OPENAI_MODEL"},
		"generation.endpoint":     {"REPORTRX_GENERATION_ENDPOINT", "OPENAI_API_BASE"},
		"generation.timeout":      {"REPORTRX_GENERATION_TIMEOUT"},
		"generation.temperature":  {"REPORTRX_GENERATION_TEMPERATURE"},
		"upload.max_file_size_mb": {"REPORTRX_UPLOAD_MAX_FILE_SIZE_MB"},
		"pdf.license_key":         {"REPORTRX_PDF_LICENSE_KEY", "UNIDOC_LICENSE_API_KEY"},
	}
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if REPORTRX_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("REPORTRX_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitOrigins(v.GetString("cors.allowed_origins")),
	}
	cfg.Generation = GenerationConfig{
		Provider:    strings.ToLower(strings.TrimSpace(v.GetString("generation.provider"))),
		APIKey:      strings.TrimSpace(v.GetString("generation.api_key")),
		Model:       v.GetString("generation.model"),
		Endpoint:    v.GetString("generation.endpoint"),
		Timeout:     v.GetDuration("generation.timeout"),
		Temperature: v.GetFloat64("generation.temperature"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.PDF = PDFConfig{
		LicenseKey: v.GetString("pdf.license_key"),
	}

	return cfg, nil
}

// splitOrigins parses a comma-separated origin list, dropping trailing slashes.
func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
