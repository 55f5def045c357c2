package adapthttp

import (
	"net/http"

	"readiness/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/oauth2"
)

// OIDCConfig carries the optional single sign-on configuration.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config *oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	samples     *app.SampleService
	readiness   *app.ReadinessService
	imports     *app.ImportService
	authSvc     *app.AuthService
	oidcConfig  OIDCConfig
	webDir      string
	disableAuth bool
}

// New creates a Server wired to the given application services.
func New(samples *app.SampleService, readiness *app.ReadinessService, imports *app.ImportService, authSvc *app.AuthService, oidcConfig OIDCConfig, webDir string) *Server {
	return &Server{
		samples:    samples,
		readiness:  readiness,
		imports:    imports,
		authSvc:    authSvc,
		oidcConfig: oidcConfig,
		webDir:     webDir,
	}
}

// WithoutAuth turns off session checking. Used by tests and single-user
// deployments behind a trusted proxy.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/config", s.handleConfig)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/setup", s.handleSetupUser)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	protected := http.NewServeMux()
	protected.HandleFunc("/metrics", s.handleMetrics)
	protected.HandleFunc("/metrics/today", s.handleMetricsToday)
	protected.HandleFunc("/metrics/delete", s.handleMetricsDelete)
	protected.HandleFunc("/readiness/daily", s.handleReadinessDaily)
	protected.HandleFunc("/readiness/today", s.handleReadinessToday)
	protected.HandleFunc("/platforms", s.handlePlatforms)
	protected.HandleFunc("/platforms/connect", s.handlePlatformConnect)
	protected.HandleFunc("/platforms/disconnect", s.handlePlatformDisconnect)
	protected.HandleFunc("/import/", s.handleImport)
	api.Handle("/", s.authMiddleware(protected))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/metrics", promhttp.Handler())
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
