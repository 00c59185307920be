package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Store      StoreConfig      `yaml:"store"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// MaxConns bounds concurrent store operations; callers beyond it wait for a
// free connection.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN,POSTGRES_URI" env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"0"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
	ConnectAttempts uint          `yaml:"connect_attempts"   env:"DATABASE_CONNECT_ATTEMPTS"   env-default:"5"`
}

// StoreConfig selects how concurrent writers of the same key are reconciled.
type StoreConfig struct {
	Policy string `yaml:"policy" env:"STORE_POLICY" env-default:"check_then_insert"`
}

// EnrichmentConfig holds settings of the text-generation backend.
// The API key may be empty at startup; the client then fails on first use.
type EnrichmentConfig struct {
	APIKey      string        `yaml:"api_key"     env:"OPENAI_API_KEY"`
	BaseURL     string        `yaml:"base_url"    env:"ENRICH_BASE_URL"    env-default:"https://api.openai.com/v1"`
	Model       string        `yaml:"model"       env:"ENRICH_MODEL"       env-default:"gpt-4.1-mini"`
	Temperature float64       `yaml:"temperature" env:"ENRICH_TEMPERATURE" env-default:"0"`
	MaxTokens   int           `yaml:"max_tokens"  env:"ENRICH_MAX_TOKENS"  env-default:"300"`
	Timeout     time.Duration `yaml:"timeout"     env:"ENRICH_TIMEOUT"     env-default:"30s"`
	PromptPath  string        `yaml:"prompt_path" env:"ENRICH_PROMPT_PATH" env-default:"./assets/word_detail_prompt.txt"`
}

// DictionaryConfig holds lookup and listing settings.
type DictionaryConfig struct {
	DefaultPageSize int `yaml:"default_page_size" env:"DICT_DEFAULT_PAGE_SIZE" env-default:"20"`
	// MaxPageSize clamps caller-supplied limits when > 0. Zero means unbounded.
	MaxPageSize int `yaml:"max_page_size" env:"DICT_MAX_PAGE_SIZE" env-default:"0"`
	// GenerateTimeout bounds one enrichment call, including the HTTP round trip.
	GenerateTimeout time.Duration `yaml:"generate_timeout" env:"DICT_GENERATE_TIMEOUT" env-default:"45s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Policy names accepted by StoreConfig.Policy.
const (
	PolicyCheckThenInsert = "check_then_insert"
	PolicyUpsert          = "upsert"
)
