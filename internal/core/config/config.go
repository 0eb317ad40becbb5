package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level string
	JSON  bool
}

type DB struct {
	Driver         string
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	MaxOpenConns   int
	MaxIdleConns   int
	ConnMaxLifeMin int
	AutoMigrate    bool
	LogLevel       string
	ReadyAttempts  int
	ReadyDelaySec  int
}

type Redis struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheCfg struct {
	UsersTTLSec int `mapstructure:"users_ttl_sec"`
}

type Config struct {
	App   App
	Log   Log
	DB    DB       `mapstructure:"db"`
	Redis Redis    `mapstructure:"redis"`
	Cache CacheCfg `mapstructure:"cache"`
}

// Addr renders host:port for the redis client.
func (r Redis) Addr() string { return fmt.Sprintf("%s:%d", r.Host, r.Port) }

// Load reads an optional YAML file and lets APP_-prefixed environment
// variables override any key (APP_DB_HOST, APP_REDIS_PORT, ...). Every key
// has a default, so running with no file and no env works out of the box.
func Load(path string) *Config {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindLegacyEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			log.Fatalf("read config %s: %v", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "users-backend")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 10)
	v.SetDefault("app.http.idletimeoutsec", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "users")
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 5)
	v.SetDefault("db.connmaxlifemin", 30)
	v.SetDefault("db.automigrate", true)
	v.SetDefault("db.loglevel", "warn")
	v.SetDefault("db.readyattempts", 5)
	v.SetDefault("db.readydelaysec", 5)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.users_ttl_sec", 30)
}

// bindLegacyEnv keeps the bare POSTGRES_*/REDIS_* variables working; deploys
// that predate the APP_ prefix still set these (usually via .env).
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("db.host", "APP_DB_HOST", "POSTGRES_HOST")
	_ = v.BindEnv("db.port", "APP_DB_PORT", "POSTGRES_PORT")
	_ = v.BindEnv("db.user", "APP_DB_USER", "POSTGRES_USER")
	_ = v.BindEnv("db.password", "APP_DB_PASSWORD", "POSTGRES_PASSWORD")
	_ = v.BindEnv("db.name", "APP_DB_NAME", "POSTGRES_DB")
	_ = v.BindEnv("redis.host", "APP_REDIS_HOST", "REDIS_HOST")
	_ = v.BindEnv("redis.port", "APP_REDIS_PORT", "REDIS_PORT")
}
