package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DBUrl       string
	TokenSecret string
	TokenTTL    time.Duration
	FactorsFile string
	PublicDir   string
	LogJSON     bool
	Debug       bool
}

// Load reads an optional .env file into the environment, then parses the
// command line. Environment values become flag defaults.
func Load(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}
	return ParseFlags(args)
}

func ParseFlags(args []string) (cfg Config, err error) {
	fs := flag.NewFlagSet("campus-footprint", flag.ContinueOnError)

	var host string
	fs.StringVar(&host, "host", env("FOOTPRINT_HOST", "0.0.0.0"), "listen host name")
	var port uint
	fs.UintVar(&port, "port", uint(envInt("FOOTPRINT_PORT", 8080)), "listen port number")
	fs.StringVar(&cfg.DBUrl, "db-url", env("FOOTPRINT_DB_URL", "footprint.sqlite"), "path to SQLite3 DB file")
	fs.StringVar(&cfg.TokenSecret, "token-secret", env("FOOTPRINT_TOKEN_SECRET", ""), "secret key for admin token signing")
	var ttl uint
	fs.UintVar(&ttl, "token-ttl", uint(envInt("FOOTPRINT_TOKEN_TTL", 120)), "token TTL in seconds")
	fs.StringVar(&cfg.FactorsFile, "factors", env("FOOTPRINT_FACTORS", ""), "YAML file overriding emission factors")
	fs.StringVar(&cfg.PublicDir, "public-dir", env("FOOTPRINT_PUBLIC_DIR", "public"), "directory of the dashboard front end")
	fs.BoolVar(&cfg.LogJSON, "log-json", envBool("FOOTPRINT_LOG_JSON"), "log as JSON lines")
	fs.BoolVar(&cfg.Debug, "debug", envBool("FOOTPRINT_DEBUG"), "log at DEBUG level")
	if err = fs.Parse(args); err != nil {
		return
	}

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.TokenTTL = time.Duration(ttl) * time.Second

	if cfg.TokenSecret == "" {
		err = errors.New("missing parameter -token-secret")
	}

	return
}

func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func envBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
