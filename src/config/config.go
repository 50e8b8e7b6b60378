package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Store backends
const (
	StoreSqlite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config is everything the wall reads from the environment. Keys are
// WHISPER_* environment variables, except the wallet address which keeps
// the name the front-end used.
type Config struct {
	DataDir         string
	DatabaseName    string
	Store           string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RedisPrefix     string
	Host            string
	Port            string
	LogLevel        string
	SimulateLatency bool
	RateLimit       float64
	WalletAddress   string
}

// Load reads an optional .env file, then the environment, then the optional
// config file. An empty configFile skips the last step.
func Load(configFile string) (c *Config, err error) {
	if _, statErr := os.Stat(".env"); statErr == nil {
		if err = godotenv.Load(".env"); err != nil {
			return nil, errors.Wrap(err, "loading .env")
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("whisper")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// the one key that is not prefixed
	if err = v.BindEnv("wallet_address", "MIDNIGHT_WALLET_ADDRESS"); err != nil {
		return nil, errors.Wrap(err, "binding wallet address")
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err = v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", configFile)
		}
	}

	c = &Config{
		DataDir:         v.GetString("data_dir"),
		DatabaseName:    v.GetString("database_name"),
		Store:           strings.ToLower(v.GetString("store")),
		RedisAddr:       v.GetString("redis_addr"),
		RedisPassword:   v.GetString("redis_password"),
		RedisDB:         v.GetInt("redis_db"),
		RedisPrefix:     v.GetString("redis_prefix"),
		Host:            v.GetString("host"),
		Port:            v.GetString("port"),
		LogLevel:        v.GetString("log_level"),
		SimulateLatency: v.GetBool("simulate_latency"),
		RateLimit:       v.GetFloat64("rate_limit"),
		WalletAddress:   strings.TrimSpace(v.GetString("wallet_address")),
	}
	err = c.Check()
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", ".")
	v.SetDefault("database_name", "whisperchain.db")
	v.SetDefault("store", StoreSqlite)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_prefix", "whisperchain")
	v.SetDefault("host", "localhost")
	v.SetDefault("port", "8003")
	v.SetDefault("log_level", "info")
	v.SetDefault("simulate_latency", false)
	v.SetDefault("rate_limit", 5)
}

// Check validates the values, call it again after overriding fields.
func (c *Config) Check() error {
	switch c.Store {
	case StoreSqlite, StoreRedis, StoreMemory:
	default:
		return errors.Errorf("unknown store '%s', want sqlite, redis or memory", c.Store)
	}
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if c.RateLimit < 0 {
		return errors.New("rate_limit must not be negative")
	}
	return nil
}

// DatabasePath is the sqlite file inside the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, c.DatabaseName)
}

// Addr is the address the wall server listens on.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}
