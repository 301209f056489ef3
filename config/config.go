package config

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"gitlab.com/MikeTTh/env"
)

// Config is the whole startup configuration: where the backend lives,
// where drafts are kept, and how long a request may take.
type Config struct {
	BackendURL     string
	DraftDBPath    string
	RequestTimeout time.Duration
	Debug          bool
}

// FromEnv reads configuration from the environment. Only BACKEND_URL is
// mandatory; everything else has a workable default.
func FromEnv() (cfg Config, err error) {
	cfg.BackendURL = env.String("BACKEND_URL", "")
	cfg.DraftDBPath = env.String("DRAFT_DB_PATH", "drafts.sqlite")

	ttl, err := strconv.Atoi(env.String("REQUEST_TIMEOUT_SECONDS", "15"))
	if err != nil {
		return cfg, errors.New("REQUEST_TIMEOUT_SECONDS is not a number")
	}
	cfg.RequestTimeout = time.Duration(ttl) * time.Second
	cfg.Debug = env.String("DEBUG", "") != ""

	err = cfg.validate()
	return
}

func (cfg Config) validate() error {
	if cfg.BackendURL == "" {
		return errors.New("missing environment variable BACKEND_URL")
	}
	u, err := url.Parse(cfg.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("BACKEND_URL is not an absolute URL")
	}
	if cfg.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	return nil
}
