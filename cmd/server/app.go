package main

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/docentlabs/docent/internal/agents"
	"github.com/docentlabs/docent/internal/config"
	"github.com/docentlabs/docent/internal/elevenlabs"
	"github.com/docentlabs/docent/internal/gemini"
	"github.com/docentlabs/docent/internal/organizations"
	"github.com/docentlabs/docent/internal/storage"
	"github.com/docentlabs/docent/internal/vapi"
	"github.com/docentlabs/docent/internal/venues"
	"github.com/docentlabs/docent/internal/visitor"
	"github.com/docentlabs/docent/pkg/middleware"
	"github.com/docentlabs/docent/pkg/routes"
)

// Application wires the domain systems, vendor clients, and HTTP handlers.
type Application struct {
	config *config.Config
	db     *sql.DB
	logger *slog.Logger

	agents        agents.System
	venues        venues.System
	organizations organizations.System
	store         storage.System

	elevenLabs *elevenlabs.Client
	vapi       *vapi.Client
	gemini     *gemini.Client
}

// NewApplication constructs all subsystems from configuration.
func NewApplication(cfg *config.Config, db *sql.DB, logger *slog.Logger) (*Application, error) {
	store, err := storage.New(cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	return &Application{
		config:        cfg,
		db:            db,
		logger:        logger,
		agents:        agents.New(db, logger, cfg.Pagination),
		venues:        venues.New(db, logger, cfg.Pagination),
		organizations: organizations.New(db, logger, cfg.Pagination),
		store:         store,
		elevenLabs:    elevenlabs.NewClient(cfg.ElevenLabs, logger),
		vapi:          vapi.NewClient(cfg.Vapi, cfg.Gemini, cfg.Webhooks, logger),
		gemini:        gemini.NewClient(cfg.Gemini, logger),
	}, nil
}

// Routes assembles the full request handler: route groups, health probes,
// and the middleware chain.
func (app *Application) Routes() http.Handler {
	registrar := routes.NewRegistrar()

	groups := []routes.Group{
		agents.NewHandler(app.agents, app.elevenLabs, app.vapi, app.logger, app.config.Pagination).Routes(),
		venues.NewHandler(app.venues, app.store, app.logger, app.config.Pagination, app.config.Storage.MaxUploadSizeBytes()).Routes(),
		organizations.NewHandler(app.organizations, app.logger, app.config.Pagination).Routes(),
		visitor.NewHandler(app.agents, app.venues, app.organizations, app.logger).Routes(),
		gemini.NewHandler(app.gemini, app.logger).Routes(),
	}

	for _, group := range groups {
		registrar.RegisterGroup(group)
	}

	registrar.RegisterRoute(routes.Route{Method: "GET", Pattern: "/healthz", Handler: app.healthz})
	registrar.RegisterRoute(routes.Route{Method: "GET", Pattern: "/readyz", Handler: app.readyz})

	handler := registrar.Build()
	handler = middleware.Logger(app.logger)(handler)

	if app.config.CORS.Enabled {
		handler = middleware.CORS(middleware.CORSOptions{
			Origins:          app.config.CORS.Origins,
			AllowedMethods:   app.config.CORS.AllowedMethods,
			AllowedHeaders:   app.config.CORS.AllowedHeaders,
			AllowCredentials: app.config.CORS.AllowCredentials,
			MaxAge:           app.config.CORS.MaxAge,
		})(handler)
	}

	return handler
}

func (app *Application) healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (app *Application) readyz(w http.ResponseWriter, r *http.Request) {
	if err := app.db.PingContext(r.Context()); err != nil {
		app.logger.Error("readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("database unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
