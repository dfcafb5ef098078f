// Package server receives universal links over HTTP.
//
// A request for https://{domain}/products/42 that reaches this server is
// turned into a browsing-web activity and dispatched exactly as the platform
// would dispatch it to a running app. The server also publishes the
// apple-app-site-association file that claims those paths for the app.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
)

// Dispatcher is the part of an app the server drives.
type Dispatcher interface {
	HandleActivity(a router.Activity) (bool, error)
	Parse(raw string) (*route.Route, error)
}

// LinkPaths are the URL paths claimed for the app in apple-app-site-association.
var LinkPaths = []string{"/home", "/products", "/products/*", "/profile/*", "/settings", "/cart"}

// Server serves universal links and the site association file.
type Server struct {
	dispatcher Dispatcher
	appIDs     []string
	mux        chi.Router
	logger     *slog.Logger
}

// New creates a server dispatching to d. appIDs are the team-prefixed bundle
// ids published in apple-app-site-association.
func New(d Dispatcher, appIDs []string) *Server {
	s := &Server{
		dispatcher: d,
		appIDs:     appIDs,
		logger:     internal.GetLogger().With("component", "server"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.health)
	r.Get("/.well-known/apple-app-site-association", s.siteAssociation)
	r.Get("/apple-app-site-association", s.siteAssociation)
	r.Get("/*", s.universalLink)

	s.mux = r
	return s
}

// Handler returns the HTTP handler, for tests or an external server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type linkResponse struct {
	URL     string       `json:"url"`
	Handled bool         `json:"handled"`
	Route   *route.Route `json:"route,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func (s *Server) universalLink(w http.ResponseWriter, r *http.Request) {
	raw := "https://" + r.Host + r.URL.EscapedPath()
	if r.URL.RawQuery != "" {
		raw += "?" + r.URL.RawQuery
	}

	resp := linkResponse{URL: raw}
	if rt, err := s.dispatcher.Parse(raw); err == nil {
		resp.Route = rt
	}

	handled, err := s.dispatcher.HandleActivity(router.Activity{
		Type:       constants.ActivityTypeBrowsingWeb,
		WebpageURL: raw,
	})
	resp.Handled = handled

	switch {
	case err != nil:
		s.logger.Error("universal link dispatch failed", "url", raw, "error", err, "request_id", middleware.GetReqID(r.Context()))
		resp.Error = err.Error()
		writeJSON(w, http.StatusInternalServerError, resp)
	case !handled:
		writeJSON(w, http.StatusNotFound, resp)
	default:
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type siteAssociation struct {
	AppLinks appLinks `json:"applinks"`
}

type appLinks struct {
	Apps    []string        `json:"apps"`
	Details []appLinkDetail `json:"details"`
}

type appLinkDetail struct {
	AppID string   `json:"appID"`
	Paths []string `json:"paths"`
}

func (s *Server) siteAssociation(w http.ResponseWriter, _ *http.Request) {
	doc := siteAssociation{AppLinks: appLinks{Apps: []string{}, Details: []appLinkDetail{}}}
	for _, id := range s.appIDs {
		doc.AppLinks.Details = append(doc.AppLinks.Details, appLinkDetail{AppID: id, Paths: LinkPaths})
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		internal.GetLogger().Error("encode response", "error", err)
	}
}
