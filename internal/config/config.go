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

type Public struct {
	Address       string        `yaml:"address"`
	SessionTTL    time.Duration `yaml:"session_ttl"` // nanoseconds, plain integer in yaml
	SecureCookies bool          `yaml:"secure_cookies"`
	LogLevel      string        `yaml:"log_level"`
	LogJSON       bool          `yaml:"log_json"`
	TemplatesDir  string        `yaml:"templates_dir"`
	StaticDir     string        `yaml:"static_dir"`
}

type Private struct {
	SessionKey string    `yaml:"session_key"`
	Pg         Pg        `yaml:"pg"`
	SeedAdmin  SeedAdmin `yaml:"seed_admin"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

// SeedAdmin describes the single administrator account created on first
// run against an empty database. The password arrives pre-hashed so the
// plaintext never has to live in a config file.
type SeedAdmin struct {
	Email        string `yaml:"email"`
	Name         string `yaml:"name"`
	PasswordHash string `yaml:"password_hash"`
}

func (c *Config) SessionKey() string {
	return c.Private.SessionKey
}

func (c *Config) SessionTTL() time.Duration {
	return c.Public.SessionTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	return &Config{public, private}
}
