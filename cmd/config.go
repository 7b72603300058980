package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"helpdispatch/internal/pkg/errs"
)

const (
	defaultHTTPPort           = "8080"
	defaultDispatchWorkers    = 8
	defaultDispatchQueueSize  = 1000
	defaultNetworkCallTimeout = 5 * time.Second
	defaultMessagesLang       = "en"
	defaultLogLevel           = "info"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// AppBaseURL hosts the push endpoint (/api/push/job-alert).
	AppBaseURL         string
	MediaUploadBaseURL string
	MediaBucket        string
	DispatchWorkers    int
	DispatchQueueSize  int
	NetworkCallTimeout time.Duration
	DispatchSweepCron  string
	DispatchStaleAfter time.Duration
	MessagesLang       string
	LogLevel           string
}

// ConfigFromEnv reads the configuration through getenv, usually os.Getenv.
// Unset optional values take their defaults; malformed numbers and durations
// are errors.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:           withDefault(getenv("HTTP_PORT"), defaultHTTPPort),
		DBHost:             getenv("DB_HOST"),
		DBPort:             getenv("DB_PORT"),
		DBUser:             getenv("DB_USER"),
		DBPassword:         getenv("DB_PASSWORD"),
		DBName:             getenv("DB_NAME"),
		DBSslMode:          withDefault(getenv("DB_SSLMODE"), "disable"),
		AppBaseURL:         getenv("APP_BASE_URL"),
		MediaUploadBaseURL: getenv("MEDIA_UPLOAD_BASE_URL"),
		MediaBucket:        getenv("MEDIA_BUCKET"),
		DispatchSweepCron:  getenv("DISPATCH_SWEEP_SCHEDULE"),
		MessagesLang:       withDefault(getenv("MESSAGES_LANG"), defaultMessagesLang),
		LogLevel:           withDefault(getenv("LOG_LEVEL"), defaultLogLevel),
	}

	var err error
	errList := make([]error, 0, 4)

	cfg.DispatchWorkers, err = intOr(getenv("DISPATCH_WORKERS"), "DISPATCH_WORKERS", defaultDispatchWorkers)
	errList = append(errList, err)
	cfg.DispatchQueueSize, err = intOr(getenv("DISPATCH_QUEUE_SIZE"), "DISPATCH_QUEUE_SIZE", defaultDispatchQueueSize)
	errList = append(errList, err)
	cfg.NetworkCallTimeout, err = durationOr(getenv("NETWORK_CALL_TIMEOUT"), "NETWORK_CALL_TIMEOUT", defaultNetworkCallTimeout)
	errList = append(errList, err)
	cfg.DispatchStaleAfter, err = durationOr(getenv("DISPATCH_STALE_AFTER"), "DISPATCH_STALE_AFTER", 0)
	errList = append(errList, err)

	if err = errors.Join(errList...); err != nil {
		return Config{}, err
	}

	if cfg.DBHost == "" || cfg.DBName == "" {
		return Config{}, errs.NewValueIsRequiredError("DB_HOST and DB_NAME")
	}
	if cfg.AppBaseURL == "" {
		return Config{}, errs.NewValueIsRequiredError("APP_BASE_URL")
	}
	if cfg.MediaBucket == "" {
		return Config{}, errs.NewValueIsRequiredError("MEDIA_BUCKET")
	}

	return cfg, nil
}

// DSN is the libpq connection string of the database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, withDefault(c.DBPort, "5432"), c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intOr(raw, name string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%q is not a positive integer", raw))
	}
	return v, nil
}

// durationOr accepts Go durations ("5s", "1m30s") and bare seconds ("5").
func durationOr(raw, name string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%q is not a positive duration", raw))
	}
	return d, nil
}
