package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DBUrl       string
	OpenAIKey   string
	OpenAIModel string
	Debug       bool
}

func ParseFlags() (cfg Config, err error) {
	// .env is optional; flags and the real environment win
	godotenv.Load()

	var host string
	flag.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", 8080, "listen port number (default 8080)")
	flag.StringVar(&cfg.DBUrl, "db-url", "formgen.sqlite", "path to SQLite3 DB file (default formgen.sqlite)")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIModel = os.Getenv("OPENAI_MODEL")
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	var errs *multierror.Error
	if port > 65535 {
		errs = multierror.Append(errs, errors.New("invalid parameter -port: out of range"))
	}
	if cfg.DBUrl == "" {
		errs = multierror.Append(errs, errors.New("missing parameter -db-url"))
	}
	err = errs.ErrorOrNil()

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
