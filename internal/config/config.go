package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Mail     MailConfig
	App      AppConfig
}

type ServerConfig struct {
	Port    string
	AppName string `mapstructure:"app_name"`
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	TimeZone    string
	TablePrefix string `mapstructure:"table_prefix"`
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	// SessionTTLHours covers login sessions; LinkTTLMinutes covers the
	// activation and password-reset links sent by email.
	SessionTTLHours int `mapstructure:"session_ttl_hours"`
	LinkTTLMinutes  int `mapstructure:"link_ttl_minutes"`
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type AppConfig struct {
	// FrontendURL is the base the activation/reset links point at.
	FrontendURL string `mapstructure:"frontend_url"`
	BcryptCost  int    `mapstructure:"bcrypt_cost"`
}

func LoadConfig() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.port", ":8080")
	viper.SetDefault("jwt.session_ttl_hours", 24)
	viper.SetDefault("jwt.link_ttl_minutes", 25)
	viper.SetDefault("app.bcrypt_cost", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Error reading config file, %s", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	if config.JWT.Secret == "" {
		log.Fatal("jwt.secret must be configured")
	}

	return &config
}
