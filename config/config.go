package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (p Postgres) ConnStr() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s", p.Host, p.User, p.Password, p.DBName, p.Port, p.SSLMode)
}

type Sqlite struct {
	Path string `mapstructure:"path"`
}

type Database struct {
	Driver   string   `mapstructure:"driver"`
	Postgres Postgres `mapstructure:"postgres"`
	Sqlite   Sqlite   `mapstructure:"sqlite"`
}

type Nats struct {
	Enabled          bool   `mapstructure:"enabled"`
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Stream           string `mapstructure:"stream"`
	GeneratedSubject string `mapstructure:"generatedSubject"`
}

func (n Nats) ConnStr() string {
	return fmt.Sprintf("nats://%s:%s", n.Host, n.Port)
}

type OpenAI struct {
	APIKey  string        `mapstructure:"apiKey"`
	BaseURL string        `mapstructure:"baseURL"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Ollama struct {
	Host   string            `mapstructure:"host"`
	Port   string            `mapstructure:"port"`
	Models map[string]string `mapstructure:"models"`
}

func (o *Ollama) Address() string {
	return fmt.Sprintf("http://%s:%s", o.Host, o.Port)
}

type LLM struct {
	Backend  string `mapstructure:"backend"`
	Timezone string `mapstructure:"timezone"`
}

// Location resolves the timezone the season is derived in.
func (l LLM) Location() (*time.Location, error) {
	if l.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(l.Timezone)
}

type Server struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type Recorder struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queueSize"`
}

type Config struct {
	Server   Server   `mapstructure:"server"`
	OpenAI   OpenAI   `mapstructure:"openai"`
	LLM      LLM      `mapstructure:"llm"`
	Ollama   Ollama   `mapstructure:"ollama"`
	Database Database `mapstructure:"database"`
	Nats     Nats     `mapstructure:"nats"`
	Recorder Recorder `mapstructure:"recorder"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("openai.apiKey", "")
	v.SetDefault("openai.baseURL", "https://api.openai.com/v1")
	v.SetDefault("openai.timeout", "120s")

	v.SetDefault("llm.backend", "openai")
	v.SetDefault("llm.timezone", "Asia/Tokyo")

	v.SetDefault("ollama.host", "localhost")
	v.SetDefault("ollama.port", "11434")
	v.SetDefault("ollama.models", map[string]string{
		"gpt-4o": "llama3.1",
		"o3":     "qwen3",
	})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.sqlite.path", "bento.db")
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", "5432")
	v.SetDefault("database.postgres.user", "postgres")
	v.SetDefault("database.postgres.password", "")
	v.SetDefault("database.postgres.database", "bento")
	v.SetDefault("database.postgres.sslmode", "disable")

	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.host", "localhost")
	v.SetDefault("nats.port", "4222")
	v.SetDefault("nats.stream", "BENTO")
	v.SetDefault("nats.generatedSubject", "bento.menus.generated")

	v.SetDefault("recorder.workers", 2)
	v.SetDefault("recorder.queueSize", 100)
}

// LoadConfig reads the YAML file at path (skipped when path is empty) on top
// of the defaults. Environment variables override both, with "." in a key
// replaced by "_" (SERVER_PORT, NATS_ENABLED, ...). OPENAI_API_KEY maps to
// openai.apiKey.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv("openai.apiKey", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &config, nil
}

// LoadEnvFile loads KEY=VALUE pairs from the given .env files into the
// process environment. Missing files are ignored.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}

	return nil
}
