package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

// AuthConfig drives first-party JWT issuance and validation.
type AuthConfig struct {
	SecretKey   string        `mapstructure:"secretKey"`
	Issuer      string        `mapstructure:"issuer"`
	Audience    string        `mapstructure:"audience"`
	TokenExpiry time.Duration `mapstructure:"tokenExpiry"`
}

type Config struct {
	Mode   string `mapstructure:"mode"`
	Dotenv string `mapstructure:"dotenv"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
		Redis struct {
			Addr     string `mapstructure:"addr"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"repositories"`
	Auth   AuthConfig `mapstructure:"auth"`
	Gemini struct {
		Model string `mapstructure:"model"`
	} `mapstructure:"gemini"`
	Session struct {
		TTL time.Duration `mapstructure:"TTL"`
	} `mapstructure:"session"`
	Narration struct {
		Timeout  time.Duration `mapstructure:"timeout"`
		CacheTTL time.Duration `mapstructure:"cacheTTL"`
	} `mapstructure:"narration"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}

	// Secrets come from the environment, never from the checked-in file.
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.Auth.SecretKey = secret
	}
	if password := os.Getenv("POSTGRES_PASSWORD"); password != "" {
		config.Repositories.Postgres.Password = password
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		config.Repositories.Redis.Password = password
	}

	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
