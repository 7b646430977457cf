package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Config struct {
	Port               string
	Env                string // either prod or dev, dev disables https redirects and security headers
	SessionKey         []byte
	SentryDSN          string
	SiteName           string
	SiteHost           string
	URLProtocol        string
	SessionIdleTimeout time.Duration // alerts of a session idle for longer are dropped
	SessionSweepEvery  time.Duration
	ListingsFile       string // optional YAML catalogue replacing the bundled listings
}

func LoadConfig() (Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		return Config{}, fmt.Errorf("PORT cannot be empty")
	}
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		return Config{}, fmt.Errorf("ENV cannot be empty")
	}
	sessionKeyString := os.Getenv("SESSION_KEY")
	if sessionKeyString == "" {
		return Config{}, fmt.Errorf("SESSION_KEY cannot be empty")
	}
	sessionKeyBytes, err := base64.StdEncoding.DecodeString(sessionKeyString)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode session key to bytes")
	}
	siteName := os.Getenv("SITE_NAME")
	if siteName == "" {
		siteName = "Job Alerts Agent"
	}
	siteHost := os.Getenv("SITE_HOST")
	if siteHost == "" {
		siteHost = "localhost"
	}
	sessionIdleTimeout := 12 * time.Hour
	if s := os.Getenv("SESSION_IDLE_TIMEOUT"); s != "" {
		sessionIdleTimeout, err = time.ParseDuration(s)
		if err != nil {
			return Config{}, errors.Wrapf(err, "unable to parse SESSION_IDLE_TIMEOUT %q", s)
		}
		if sessionIdleTimeout <= 0 {
			return Config{}, fmt.Errorf("SESSION_IDLE_TIMEOUT must be positive, got %q", s)
		}
	}
	sweepEvery := sessionIdleTimeout / 4
	if sweepEvery > 10*time.Minute {
		sweepEvery = 10 * time.Minute
	}
	if sweepEvery < time.Second {
		sweepEvery = time.Second
	}
	urlProtocol := "http://"
	if !strings.EqualFold(env, "dev") {
		urlProtocol = "https://"
	}

	return Config{
		Port:               port,
		Env:                env,
		SessionKey:         sessionKeyBytes,
		SentryDSN:          os.Getenv("SENTRY_DSN"),
		SiteName:           siteName,
		SiteHost:           siteHost,
		URLProtocol:        urlProtocol,
		SessionIdleTimeout: sessionIdleTimeout,
		SessionSweepEvery:  sweepEvery,
		ListingsFile:       os.Getenv("LISTINGS_FILE"),
	}, nil
}
