package config

import (
	"os"
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
	Name          string
	Env           string // "development" / "production"
	TemplatesGlob string
	HTTP          HTTP
}

type Log struct {
	Level      string
	JSON       bool
	File       string // empty = stdout only
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
}

type Redis struct {
	Enable   bool   `mapstructure:"enable"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Session struct {
	Secret     string
	CookieName string
	TTLHours   int
	Secure     bool
}

// Bootstrap controls schema/seed initialization. Eager runs it before the
// server listens; FailFast makes an initialization error fatal instead of
// serving degraded and retrying on each request.
type Bootstrap struct {
	Eager    bool
	FailFast bool
}

type Seed struct {
	Username string
	Password string
	Email    string
}

type Config struct {
	App       App
	Log       Log
	DB        DB
	Redis     Redis `mapstructure:"redis"`
	Session   Session
	Bootstrap Bootstrap
	Seed      Seed
}

// Load reads an optional yaml file plus APP_-prefixed environment
// overrides (APP_DB_DSN, APP_SESSION_SECRET, ...). Every key has a
// default, so a missing config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "admin-console")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.templatesglob", "web/templates/*.html")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 3000)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 10)
	v.SetDefault("app.http.idletimeoutsec", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxsizemb", 100)
	v.SetDefault("log.maxbackups", 3)
	v.SetDefault("log.maxagedays", 14)
	v.SetDefault("log.compress", true)

	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.dsn", "root@tcp(127.0.0.1:3306)/admin_console?parseTime=true&charset=utf8mb4")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 5)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.loglevel", "warn")

	v.SetDefault("redis.enable", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("session.secret", "dev-session-secret")
	v.SetDefault("session.cookiename", "admin_session")
	v.SetDefault("session.ttlhours", 24)
	v.SetDefault("session.secure", false)

	v.SetDefault("bootstrap.eager", true)
	v.SetDefault("bootstrap.failfast", true)

	v.SetDefault("seed.username", "admin")
	v.SetDefault("seed.password", "admin123")
	v.SetDefault("seed.email", "admin@example.com")
}
