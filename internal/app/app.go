// Package app wires the client together: session persistence, the request
// pipeline, and one service set chosen at startup. The mock/real decision
// is made exactly once here; nothing downstream ever re-checks it.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"moviecat/internal/config"
	"moviecat/internal/confirm"
	"moviecat/internal/fixtures"
	"moviecat/internal/memdb"
	"moviecat/internal/nav"
	"moviecat/internal/transport"
	"moviecat/pkg/adminops"
	"moviecat/pkg/authsvc"
	"moviecat/pkg/movies"
	"moviecat/pkg/ratings"
	"moviecat/pkg/recommend"
	"moviecat/pkg/requests"
	"moviecat/pkg/session"
)

// Artificial delay for mock services when the config asks for it, roughly
// what a nearby backend answers in.
const mockLatency = 300 * time.Millisecond

// App is the composed client.
type App struct {
	Config   config.Config
	Sessions *session.Store
	Gate     *confirm.Gate
	Routes   *nav.Table

	Auth      authsvc.Service
	Movies    movies.Service
	Ratings   ratings.Service
	Recommend recommend.Service
	Requests  requests.Service
	Admin     adminops.Service
}

// New composes the client from configuration. The persisted session is
// restored before any service can issue a request.
func New(cfg config.Config) (*App, error) {
	var storage session.Storage
	if cfg.RedisAddr != "" {
		storage = session.NewRedisStorage(cfg.RedisAddr, cfg.RedisPassword, 0)
	} else {
		fileStorage, err := session.NewFileStorage(cfg.SessionFile)
		if err != nil {
			return nil, err
		}
		storage = fileStorage
	}
	sessions := session.NewStore(storage)
	if err := sessions.Restore(); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	app := &App{
		Config:   cfg,
		Sessions: sessions,
		Gate:     confirm.NewGate(),
		Routes:   nav.Default(),
	}

	if cfg.MockData {
		if err := app.composeMock(); err != nil {
			return nil, err
		}
		slog.Info("running against mock data", "latency", cfg.MockLatency)
		return app, nil
	}
	if err := app.composeHTTP(); err != nil {
		return nil, err
	}
	slog.Info("running against backend", "apiURL", cfg.APIURL)
	return app, nil
}

func (a *App) composeMock() error {
	latency := time.Duration(0)
	if a.Config.MockLatency {
		latency = mockLatency
	}
	db := memdb.New(fixtures.Movies(), fixtures.Ratings())

	auth, err := authsvc.NewMemoryService(a.Sessions, a.Config.JWTSecret, latency)
	if err != nil {
		return fmt.Errorf("build mock auth: %w", err)
	}
	a.Auth = auth
	a.Movies = movies.NewMemoryService(db, latency)
	a.Ratings = ratings.NewMemoryService(db, a.Sessions, latency)
	a.Recommend = recommend.NewMemoryService(a.Sessions, latency)
	a.Requests = requests.NewMemoryService(db, a.Sessions, latency)
	a.Admin = adminops.NewMemoryService(db, len(fixtures.Users()), latency)
	return nil
}

func (a *App) composeHTTP() error {
	timeout, err := config.ParseRequestTimeout(a.Config.RequestTimeout)
	if err != nil {
		return err
	}
	client := transport.New(transport.Config{
		BaseURL: a.Config.APIURL,
		Tokens:  a.Sessions,
		Timeout: timeout,
		OnUnauthorized: func() {
			// The backend rejected our credential; drop it so the next
			// request goes out anonymous instead of repeating the 401.
			if err := a.Sessions.Clear(); err != nil {
				slog.Warn("failed to clear session after 401", "error", err)
			}
		},
	})

	a.Auth = authsvc.NewHTTPService(client, a.Sessions)
	a.Movies = movies.NewHTTPService(client)
	a.Ratings = ratings.NewHTTPService(client)
	a.Recommend = recommend.NewHTTPService(client, a.Config.WSURL, a.Sessions)
	a.Requests = requests.NewHTTPService(client)
	a.Admin = adminops.NewHTTPService(client)
	return nil
}
