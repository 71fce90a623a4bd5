// internal/config/config.go
package config

import "os"

type Config struct {
	Porta       string
	DatabaseDSN string
	JWTSecret   string
	Ambiente    string
}

// Load lê a configuração do ambiente com padrões de desenvolvimento.
// O .env, quando existir, é carregado pelo main antes desta chamada.
func Load() Config {
	return Config{
		Porta:       getEnv("PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=painel port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", "troque-este-segredo"),
		Ambiente:    getEnv("APP_ENV", "development"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
