package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string
	}
	Log struct {
		Level string
	}
	Database struct {
		DSN string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	JWT struct {
		Secret string
		TTL    time.Duration
	}
	Game struct {
		// Store selects the saved game backend: file, memory, redis or postgres.
		Store           string
		SaveFile        string
		Seed            int64 // 0 = time based
		DecisionTimeout time.Duration
	}
}

var C Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.ttl", "24h")
	v.SetDefault("game.store", "file")
	v.SetDefault("game.savefile", "blackjack.sav")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.decisiontimeout", "10m")
}

// Load reads .env, then path (missing file is fine), then BLACKJACK_* env vars.
func Load(path string) error {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("BLACKJACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows
	for _, k := range []string{"database.dsn", "redis.password", "jwt.secret"} {
		_ = v.BindEnv(k)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return err
	}
	C = c
	return nil
}
