package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

// Public holds settings safe to share with clients and logs.
type Public struct {
	JwtTTL          time.Duration `yaml:"jwt_ttl"`           // access token lifetime
	RefreshTTL      time.Duration `yaml:"refresh_ttl"`       // refresh token lifetime
	ActivationTTL   time.Duration `yaml:"activation_ttl"`    // activation link lifetime
	PasswordResetTTL time.Duration `yaml:"password_reset_ttl"` // reset link lifetime
	JobsPerPage     int           `yaml:"jobs_per_page"`
	DispatchWorkers int           `yaml:"dispatch_workers"`
	BaseURL         string        `yaml:"base_url"` // used to build activation/reset links
	SecureCookies   bool          `yaml:"secure_cookies"`
	LogLevel        string        `yaml:"log_level"`
	LogJSON         bool          `yaml:"log_json"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
	Pg     Pg     `yaml:"pg"`
	Redis  Redis  `yaml:"redis"`
	Smtp   Smtp   `yaml:"smtp"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	Db       int    `yaml:"db"`
}

type Smtp struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	From       string `yaml:"from"`
	SenderName string `yaml:"sender_name"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder.
// Missing optional fields fall back to defaults.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Public.JwtTTL == 0 {
		c.Public.JwtTTL = 15 * time.Minute
	}
	if c.Public.RefreshTTL == 0 {
		c.Public.RefreshTTL = 7 * 24 * time.Hour
	}
	if c.Public.ActivationTTL == 0 {
		c.Public.ActivationTTL = 24 * time.Hour
	}
	if c.Public.PasswordResetTTL == 0 {
		c.Public.PasswordResetTTL = time.Hour
	}
	if c.Public.JobsPerPage == 0 {
		c.Public.JobsPerPage = 9
	}
	if c.Public.DispatchWorkers == 0 {
		c.Public.DispatchWorkers = 4
	}
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
}
