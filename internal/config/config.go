package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/jellydator/validation"
	"github.com/jellydator/validation/is"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const envPrefix = "PINGREPORT"

const DefaultUpstreamURL = "http://localhost:3000/ping"

// App holds the settings shared by the report command and the pong server.
// Every field has a default, so an empty environment yields a working config.
// Variables are read with the PINGREPORT_ prefix only, e.g. PINGREPORT_UPSTREAM_URL.
type App struct {
	UpstreamURL string `split_words:"true" default:"http://localhost:3000/ping"`
	LogLevel    string `split_words:"true" default:"warn"`
	Port        string `default:"3000"`
}

func NewApp() (App, error) {
	var app App
	if err := envconfig.Process(envPrefix, &app); err != nil {
		return App{}, fmt.Errorf("process environment: %w", err)
	}

	if err := app.Validate(); err != nil {
		return App{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return app, nil
}

func (a App) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.UpstreamURL, validation.Required, validation.By(httpURL)),
		validation.Field(&a.LogLevel, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&a.Port, validation.Required, is.Port),
	)
}

// Level converts LogLevel to a zap level. It assumes Validate has passed.
func (a App) Level() zapcore.Level {
	level, err := zapcore.ParseLevel(a.LogLevel)
	if err != nil {
		return zapcore.WarnLevel
	}
	return level
}

func httpURL(value any) error {
	raw, _ := value.(string)
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must be an http or https url")
	}
	if u.Host == "" {
		return errors.New("must contain a host")
	}
	return nil
}
