package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Clinic ClinicConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// ClinicConfig identifies the single doctor the queue is bound to. The
// account is seeded at bootstrap if it does not exist yet; startup is fatal
// without it since no token can be issued with no doctor bound.
type ClinicConfig struct {
	DoctorEmail    string
	DoctorPassword string
	DoctorName     string
}

// ErrDoctorNotConfigured is returned when the bound doctor settings are absent
var ErrDoctorNotConfigured = errors.New("MOCK_DOCTOR_EMAIL and MOCK_DOCTOR_PASSWORD must be set")

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional when real environment variables are present
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Clinic: ClinicConfig{
			DoctorEmail:    viper.GetString("MOCK_DOCTOR_EMAIL"),
			DoctorPassword: viper.GetString("MOCK_DOCTOR_PASSWORD"),
			DoctorName:     viper.GetString("MOCK_DOCTOR_NAME"),
		},
	}

	if config.Clinic.DoctorEmail == "" || config.Clinic.DoctorPassword == "" {
		return nil, ErrDoctorNotConfigured
	}
	if config.Clinic.DoctorName == "" {
		config.Clinic.DoctorName = "Dr. Gregory House"
	}

	return config, nil
}
