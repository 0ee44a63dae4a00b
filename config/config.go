package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// JwtKey es la clave HMAC para firmar y validar los tokens de sesión.
var JwtKey []byte

// App agrupa la configuración de ejecución cargada desde variables de entorno.
type App struct {
	Env          string
	HTTPPort     string
	DatabaseURL  string
	RedisAddr    string
	UploadDir    string
	AuthCacheTTL time.Duration
	MaxUploadMB  int64
}

// Load lee el archivo .env (si existe) y construye la configuración con
// valores por defecto razonables para desarrollo.
func Load() App {
	if err := godotenv.Load(); err != nil {
		slog.Info("No se encontró archivo .env, se usan solo variables de entorno")
	}

	JwtKey = []byte(getEnv("JWT_KEY", "clave-de-desarrollo-cambiar"))

	return App{
		Env:          getEnv("APP_ENV", "dev"),
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		DatabaseURL:  os.Getenv("DB_URL"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		UploadDir:    getEnv("UPLOAD_DIR", "./static/uploads"),
		AuthCacheTTL: durationEnv("AUTH_CACHE_TTL", 10*time.Minute),
		MaxUploadMB:  int64Env("MAX_UPLOAD_MB", 10),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			slog.Warn("Duración inválida, se usa el valor por defecto", "variable", key, "error", err)
			return fallback
		}
		return d
	}
	return fallback
}

func int64Env(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
		slog.Warn("Entero inválido, se usa el valor por defecto", "variable", key)
	}
	return fallback
}
