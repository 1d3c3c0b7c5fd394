package api

import (
	"log/slog"
	"time"

	"github.com/Adaptare-Software/workshop-registration/checkout"
	"github.com/Adaptare-Software/workshop-registration/landing"
	"github.com/Adaptare-Software/workshop-registration/registration"
)

type Environment int

const (
	LOCAL Environment = iota
	PROD
)

type DB interface {
	registration.Repository
}

type API struct {
	db       DB
	sessions *checkout.Sessions
	landing  landing.Content
	logger   *slog.Logger
	env      Environment

	allowedOrigin string
	location      *time.Location
}

type Option func(*API)

// WithAllowedOrigin sets the single CORS origin accepted in PROD.
func WithAllowedOrigin(origin string) Option {
	return func(a *API) {
		a.allowedOrigin = origin
	}
}

// WithLocation sets the time zone dates are shown in on the admin page.
func WithLocation(loc *time.Location) Option {
	return func(a *API) {
		a.location = loc
	}
}

func NewAPI(db DB, sessions *checkout.Sessions, logger *slog.Logger, env Environment, opts ...Option) *API {
	a := &API{
		db:       db,
		sessions: sessions,
		landing:  landing.Default(),
		logger:   logger,
		env:      env,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
