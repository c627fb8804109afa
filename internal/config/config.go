package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuracion del servicio.
type Config struct {
	HTTPPort    string `env:"PORT" envDefault:"3000"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`

	// Origenes permitidos para CORS; ademas de esta lista se acepta
	// cualquier subdominio *.vercel.app (deploys de preview del frontend).
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:3000,https://blog.100jsprojects.com"`

	// Fragmento de URL que identifica fotos subidas al storage propio,
	// en contraste con las servidas por el CDN de Google.
	StorageMarker string `env:"STORAGE_PUBLIC_MARKER" envDefault:"supabase.co/storage"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuracion desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
