package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config regroupe toute la configuration du service, chargée depuis
// l'environnement (avec support d'un fichier .env en développement)
type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"tienda"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"tienda"`
	DBName     string `envconfig:"DB_NAME" default:"tiendadb"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// JWTSecret signe les tokens d'authentification (HS256)
	JWTSecret string `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	// TokenTTL durée de vie des tokens émis
	TokenTTL time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	// PIIKey clé AES-256 (hex, 64 caractères) pour le chiffrement des
	// champs personnels des clients
	PIIKey string `envconfig:"PII_KEY" default:"0000000000000000000000000000000000000000000000000000000000000000"`

	// StatsCacheTTL durée de validité du cache des statistiques
	StatsCacheTTL time.Duration `envconfig:"STATS_CACHE_TTL" default:"5m"`

	// RateLimit requêtes par seconde autorisées par le middleware HTTP
	RateLimit float64 `envconfig:"RATE_LIMIT" default:"50"`
	// RateBurst taille du burst autorisé
	RateBurst int `envconfig:"RATE_BURST" default:"100"`

	LogJSON bool `envconfig:"LOG_JSON" default:"false"`
}

// Load charge la configuration depuis l'environnement.
// Le fichier .env est optionnel: son absence n'est pas une erreur.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConnString construit la connection string PostgreSQL
func (c *Config) ConnString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
