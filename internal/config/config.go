package config

import (
	"crypto"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/golang-jwt/jwt/v4"
)

const jwtSigningAlgorithmEd25519 = "EdDSA"

// DeleteMode controls how customers are removed from store
type DeleteMode string

const (
	// DeleteModeSoft marks customer as disabled
	DeleteModeSoft DeleteMode = "soft"
	// DeleteModeHard removes customer entry
	DeleteModeHard DeleteMode = "hard"
)

type HTTPCfg struct {
	Port            int           `env:"HTTP_PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type GrpcCfg struct {
	Port int `env:"GRPC_PORT" envDefault:"3010"`
}

type LogCfg struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

type MongoCfg struct {
	Host        string `env:"MONGO_HOST" envDefault:"mongo-customers"`
	User        string `env:"MONGO_USER" envDefault:""`
	Password    string `env:"MONGO_PASSWORD" envDefault:""`
	Port        int    `env:"MONGO_PORT" envDefault:"27017"`
	Database    string `env:"MONGO_DB" envDefault:"customers"`
	MaxPoolSize int    `env:"MONGO_MAX_POOL_SIZE" envDefault:"100"`
}

type PostgresCfg struct {
	Host        string `env:"POSTGRES_HOST" envDefault:"pg-customers"`
	User        string `env:"POSTGRES_USER"`
	Password    string `env:"POSTGRES_PASSWORD"`
	Database    string `env:"POSTGRES_DB"`
	SslMode     string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	Port        int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PoolMaxConn int    `env:"POSTGRES_POOL_MAX_CONN" envDefault:"100"`
}

type RedisCfg struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"redis-customers:6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type CountryCfg struct {
	BaseURL    string        `env:"COUNTRIES_API_URL" envDefault:"https://restcountries.com/v3.1"`
	Timeout    time.Duration `env:"COUNTRIES_API_TIMEOUT" envDefault:"5s"`
	TimeToLive time.Duration `env:"COUNTRIES_CACHE_TIME_TO_LIVE" envDefault:"24h"`
}

type CustomerCfg struct {
	DeleteMode DeleteMode    `env:"CUSTOMERS_DELETE_MODE" envDefault:"soft"`
	CacheTTL   time.Duration `env:"CUSTOMERS_CACHE_TIME_TO_LIVE" envDefault:"10m"`
}

type JwtCfg struct {
	Issuer         string        `env:"AUTH_JWT_ISSUER" envDefault:"customer-registry"`
	TimeToLive     time.Duration `env:"AUTH_JWT_TIME_TO_LIVE" envDefault:"10m"`
	PrivateKeyFile string        `env:"AUTH_JWT_PRIVATE_KEY_FILE"`
	PublicKeyFile  string        `env:"AUTH_JWT_PUBLIC_KEY_FILE"`
	SigningMethod  jwt.SigningMethod
	PrivateKey     crypto.PrivateKey
	PublicKey      crypto.PublicKey
}

type AuthCfg struct {
	JwtCfg JwtCfg
}

type Config struct {
	HTTPCfg     HTTPCfg
	GrpcCfg     GrpcCfg
	LogCfg      LogCfg
	MongoCfg    MongoCfg
	PostgresCfg PostgresCfg
	RedisCfg    RedisCfg
	CountryCfg  CountryCfg
	CustomerCfg CustomerCfg
	AuthCfg     AuthCfg
}

// Build reads config from environment
func Build() (Config, error) {
	var cfg Config
	opts := env.Options{RequiredIfNoDef: true}

	if err := env.Parse(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}

	switch cfg.CustomerCfg.DeleteMode {
	case DeleteModeSoft, DeleteModeHard:
	default:
		return cfg, fmt.Errorf("unknown customers delete mode %q", cfg.CustomerCfg.DeleteMode)
	}

	jwtCfg := &cfg.AuthCfg.JwtCfg
	jwtCfg.SigningMethod = jwt.GetSigningMethod(jwtSigningAlgorithmEd25519)

	jwtPrivateKeyBytes, err := os.ReadFile(jwtCfg.PrivateKeyFile)
	if err != nil {
		return cfg, fmt.Errorf("failed to read private key file for jwt - %w", err)
	}

	jwtPrivateKey, err := jwt.ParseEdPrivateKeyFromPEM(jwtPrivateKeyBytes)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse private key for jwt - %w", err)
	}
	jwtCfg.PrivateKey = jwtPrivateKey

	jwtPublicKeyBytes, err := os.ReadFile(jwtCfg.PublicKeyFile)
	if err != nil {
		return cfg, fmt.Errorf("failed to read public key file for jwt - %w", err)
	}

	jwtPublicKey, err := jwt.ParseEdPublicKeyFromPEM(jwtPublicKeyBytes)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse public key for jwt - %w", err)
	}
	jwtCfg.PublicKey = jwtPublicKey

	return cfg, nil
}
