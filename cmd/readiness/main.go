package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	adapthttp "readiness/internal/adapter/http"
	"readiness/internal/adapter/postgres"
	"readiness/internal/app"
	"readiness/internal/config"
	"readiness/internal/domain"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
)

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		slog.Error("db open", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	sessionRepo := postgres.NewSessionRepo(db)

	sampleSvc := app.NewSampleService(db)
	readinessSvc := app.NewReadinessService(db)
	importSvc := app.NewImportService(sampleSvc, db)
	authSvc := app.NewAuthService(db, sessionRepo)

	oidcConfig := adapthttp.OIDCConfig{}
	if cfg.SSOEnabled() {
		provider, err := oidc.NewProvider(context.Background(), cfg.OIDCIssuer)
		if err != nil {
			slog.Error("oidc provider", "issuer", cfg.OIDCIssuer, "error", err)
			os.Exit(1)
		}
		oidcConfig = adapthttp.OIDCConfig{
			Enabled:  true,
			Provider: provider,
			OAuth2Config: &oauth2.Config{
				ClientID:     cfg.OIDCClientID,
				ClientSecret: cfg.OIDCClientSecret,
				RedirectURL:  cfg.OIDCRedirectURL,
				Endpoint:     provider.Endpoint(),
				Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
			},
		}
		slog.Info("sso enabled", "issuer", cfg.OIDCIssuer)
	}

	go sweepSessions(sessionRepo, cfg.SessionSweepInterval)

	srv := adapthttp.New(sampleSvc, readinessSvc, importSvc, authSvc, oidcConfig, cfg.WebDir)
	slog.Info("listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server", "error", err)
		os.Exit(1)
	}
}

func sweepSessions(sessions domain.SessionRepository, interval time.Duration) {
	for {
		time.Sleep(interval)
		if err := sessions.DeleteExpired(context.Background()); err != nil {
			slog.Warn("session sweep", "error", err)
		}
	}
}
