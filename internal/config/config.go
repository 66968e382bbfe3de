package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

type Config struct {
	Addr           string
	AllowOrigins   string
	DataDir        string
	LogLevel       log.Level
	StrictCastling bool
}

// Load reads flags from args, falling back to CHESS_* environment variables
// and then to the defaults.
func Load(args []string) (Config, error) {
	var cfg Config
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Addr, "addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	fs.StringVar(&cfg.AllowOrigins, "allow-origins", getenv("CHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma-separated CORS origins")
	fs.StringVar(&cfg.DataDir, "data-dir", getenv("CHESS_DATA_DIR", ""), "results database directory (empty keeps results in memory)")
	level := fs.String("log-level", getenv("CHESS_LOG_LEVEL", "info"), "debug, info, warn or error")
	fs.BoolVar(&cfg.StrictCastling, "strict-castling", getenb("CHESS_STRICT_CASTLING", false), "forbid castling out of or through check")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	lvl, err := log.ParseLevel(*level)
	if err != nil {
		return Config{}, fmt.Errorf("log level: %w", err)
	}
	cfg.LogLevel = lvl
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
